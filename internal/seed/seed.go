// Package seed holds the compiled-in mock data the store starts with.
package seed

import (
	"fmt"
	"log"
	"os"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Products returns the default catalog.
func Products() []models.Product {
	return []models.Product{
		{
			ID: 1, Name: "Quantum Noise-Canceling Headphones", Price: 299.99, Category: models.CategoryElectronics,
			Image:       "https://picsum.photos/id/1/600/600",
			Description: "Immersive sound with next-gen active noise cancellation and 40-hour battery life.",
			Rating:      4.8, Featured: true, Stock: 25, Tags: []string{"audio", "wireless"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/TearsOfSteel.mp4",
		},
		{
			ID: 2, Name: "Cyberpunk Streetwear Jacket", Price: 120.00, Category: models.CategoryFashion,
			Image:       "https://picsum.photos/id/2/600/600",
			Description: "Water-resistant, reflective material designed for the urban explorer.",
			Rating:      4.5, Stock: 40, Tags: []string{"outerwear"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerJoyrides.mp4",
		},
		{
			ID: 3, Name: "Minimalist Smart Watch", Price: 199.50, Category: models.CategoryElectronics,
			Image:       "https://picsum.photos/id/3/600/600",
			Description: "Track your vitals with style. Sapphire glass display and titanium casing.",
			Rating:      4.7, Featured: true, Stock: 18, Tags: []string{"wearable"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerBlazes.mp4",
		},
		{
			ID: 4, Name: "Ergonomic Mechanical Keyboard", Price: 149.99, Category: models.CategoryElectronics,
			Image:       "https://picsum.photos/id/4/600/600",
			Description: "Hot-swappable switches with RGB underglow for the ultimate typing experience.",
			Rating:      4.9, Stock: 32, Tags: []string{"peripherals"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerEscapes.mp4",
		},
		{
			ID: 5, Name: "Smart Home Assistant Hub", Price: 89.99, Category: models.CategoryHome,
			Image:       "https://picsum.photos/id/5/600/600",
			Description: "Control your entire home with voice commands. Compatible with all major protocols.",
			Rating:      4.3, Stock: 50, Tags: []string{"smart-home"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/ElephantsDream.mp4",
		},
		{
			ID: 6, Name: "Designer Sunglasses", Price: 180.00, Category: models.CategoryAccessories,
			Image:       "https://picsum.photos/id/6/600/600",
			Description: "UV400 protection with a sleek, modern frame design.",
			Rating:      4.6, Stock: 22,
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/ForBiggerFun.mp4",
		},
		{
			ID: 7, Name: "Portable 4K Projector", Price: 450.00, Category: models.CategoryElectronics,
			Image:       "https://picsum.photos/id/7/600/600",
			Description: "Cinema quality anywhere you go. 2000 lumens brightness.",
			Rating:      4.4, Featured: true, Stock: 9, Tags: []string{"video"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/BigBuckBunny.mp4",
		},
		{
			ID: 8, Name: "Ceramic Coffee Set", Price: 65.00, Category: models.CategoryHome,
			Image:       "https://picsum.photos/id/8/600/600",
			Description: "Handcrafted ceramic set for the perfect morning brew.",
			Rating:      4.8, Stock: 60, Tags: []string{"kitchen"},
			Video: "https://storage.googleapis.com/gtv-videos-bucket/sample/Sintel.mp4",
		},
	}
}

// Users returns the seeded accounts. The first one is the administrator.
func Users(adminEmail string) []models.User {
	lastLogin := time.Date(2044, time.October, 14, 9, 30, 0, 0, time.UTC)
	return []models.User{
		{
			ID: 1, Name: "System Administrator", Email: models.NormalizeEmail(adminEmail), IsAdmin: true,
			Avatar:      "https://i.pravatar.cc/150?u=sar-admin",
			MemberSince: "January 2040", Rank: "Architect", LastLogin: lastLogin,
		},
		{
			ID: 2, Name: "Alex Chen", Email: "alex.c@sar-legacy.net",
			Avatar:      "https://i.pravatar.cc/150?u=a042581f4e29026024d",
			MemberSince: "September 2042", Rank: "Elite", Credits: 2450, TierProgress: 75,
			LastLogin: lastLogin, TotalSpent: 559.98,
		},
		{
			ID: 3, Name: "Mira Okafor", Email: "mira.o@sar-legacy.net",
			Avatar:      "https://i.pravatar.cc/150?u=mira-okafor",
			MemberSince: "March 2043", Rank: "Initiate", Credits: 300, TierProgress: 20,
			LastLogin: lastLogin.Add(-72 * time.Hour),
		},
	}
}

// Orders returns the historic orders of the seeded customers.
func Orders() []models.Order {
	return []models.Order{
		{
			ID: "SAR-9921", UserID: 2, Date: time.Date(2044, time.October, 12, 0, 0, 0, 0, time.UTC),
			Items: []models.OrderItem{
				{ProductID: 1, Name: "Quantum Noise-Canceling Headphones", Quantity: 1},
				{ProductID: 9, Name: "Neural Link Adapter", Quantity: 1},
			},
			Total: 349.99, Status: models.OrderStatusDelivered,
			CustomerName: "Alex Chen", ShippingAddress: "12 Neon Row, Neo Tokyo 10042",
		},
		{
			ID: "SAR-8823", UserID: 2, Date: time.Date(2044, time.September, 28, 0, 0, 0, 0, time.UTC),
			Items: []models.OrderItem{
				{ProductID: 5, Name: "Smart Home Assistant Hub", Quantity: 1},
			},
			Total: 89.99, Status: models.OrderStatusDelivered,
			CustomerName: "Alex Chen", ShippingAddress: "12 Neon Row, Neo Tokyo 10042",
		},
		{
			ID: "SAR-7710", UserID: 2, Date: time.Date(2044, time.August, 15, 0, 0, 0, 0, time.UTC),
			Items: []models.OrderItem{
				{ProductID: 2, Name: "Cyberpunk Streetwear Jacket", Quantity: 1},
			},
			Total: 120.00, Status: models.OrderStatusProcessing,
			CustomerName: "Alex Chen", ShippingAddress: "12 Neon Row, Neo Tokyo 10042",
		},
	}
}

type catalogFile struct {
	Products []models.Product `yaml:"products"`
}

// LoadProducts reads a catalog from a YAML file of the form
//
//	products:
//	  - id: 1
//	    name: ...
//
// Every product must pass the same validation as an admin-created one.
func LoadProducts(path string) ([]models.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing catalog file: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog file %s has no products", path)
	}

	validate := validator.New()
	seen := make(map[int]bool, len(file.Products))
	for i, p := range file.Products {
		if err := validate.Struct(p); err != nil {
			return nil, fmt.Errorf("catalog file %s: product %d (id %d): %w", path, i, p.ID, err)
		}
		if p.ID != 0 && seen[p.ID] {
			return nil, fmt.Errorf("catalog file %s: product %d: duplicate id %d", path, i, p.ID)
		}
		seen[p.ID] = true
	}
	return file.Products, nil
}

// Populate writes the mock data into empty repositories. Repositories that
// already hold records (a persistent backend after a restart) are left alone.
func Populate(products repositories.ProductRepository, users repositories.UserRepository, orders repositories.OrderRepository, catalog []models.Product, adminEmail string) error {
	existing, err := products.GetAll()
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		for i := range catalog {
			if err := products.Create(&catalog[i]); err != nil {
				return fmt.Errorf("seeding product %s: %w", catalog[i].Name, err)
			}
		}
		log.Printf("Seeded %d products", len(catalog))
	}

	existingUsers, err := users.GetAll()
	if err != nil {
		return err
	}
	if len(existingUsers) == 0 {
		seeded := Users(adminEmail)
		for i := range seeded {
			if err := users.Create(&seeded[i]); err != nil {
				return fmt.Errorf("seeding user %s: %w", seeded[i].Email, err)
			}
		}
		seededOrders := Orders()
		for i := range seededOrders {
			if err := orders.Create(&seededOrders[i]); err != nil {
				return fmt.Errorf("seeding order %s: %w", seededOrders[i].ID, err)
			}
		}
		log.Printf("Seeded %d users and %d orders", len(seeded), len(seededOrders))
	}
	return nil
}
