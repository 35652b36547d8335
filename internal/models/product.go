package models

import "strings"

// Category is one of the fixed product categories.
type Category string

const (
	// CategoryAll is a filter sentinel; no product carries it.
	CategoryAll         Category = "All"
	CategoryElectronics Category = "Electronics"
	CategoryFashion     Category = "Fashion"
	CategoryHome        Category = "Home"
	CategoryAccessories Category = "Accessories"
)

// Categories lists the categories a product may belong to, in display order.
var Categories = []Category{CategoryElectronics, CategoryFashion, CategoryHome, CategoryAccessories}

// ParseCategory maps user input onto a Category. Empty input is treated as CategoryAll.
func ParseCategory(s string) (Category, bool) {
	if strings.TrimSpace(s) == "" {
		return CategoryAll, true
	}
	if strings.EqualFold(s, string(CategoryAll)) {
		return CategoryAll, true
	}
	for _, c := range Categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

// Product represents a product in the catalog.
type Product struct {
	ID          int      `json:"id" gorm:"primaryKey;autoIncrement:false" yaml:"id"`
	Name        string   `json:"name" gorm:"type:varchar(200)" validate:"required,max=200" yaml:"name"`
	Price       float64  `json:"price" validate:"gte=0" yaml:"price"`
	Category    Category `json:"category" gorm:"type:varchar(32);index" validate:"required,oneof=Electronics Fashion Home Accessories" yaml:"category"`
	Description string   `json:"description" validate:"max=2000" yaml:"description"`
	Image       string   `json:"image" yaml:"image"`
	Rating      float64  `json:"rating" validate:"gte=0,lte=5" yaml:"rating"`
	Featured    bool     `json:"featured,omitempty" yaml:"featured"`
	Video       string   `json:"video,omitempty" yaml:"video"`
	Stock       int      `json:"stock" validate:"gte=0" yaml:"stock"`
	Tags        []string `json:"tags,omitempty" gorm:"serializer:json" yaml:"tags"`
}

// Matches reports whether the product belongs to category (CategoryAll matches everything)
// and whether its name or description contains search, ignoring case.
func (p Product) Matches(category Category, search string) bool {
	if category != CategoryAll && category != "" && p.Category != category {
		return false
	}
	if search == "" {
		return true
	}
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q)
}
