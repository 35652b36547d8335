// Package app assembles the storefront from its configuration.
package app

import (
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"storefront/internal/analytics"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/llm"
	"storefront/internal/middleware"
	"storefront/internal/repositories"
	"storefront/internal/seed"
	"storefront/internal/services"
	"storefront/internal/state"
	"storefront/pkg/rabbitmq"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/streadway/amqp"
	"gorm.io/gorm"
)

// Options replace collaborators that are otherwise built from the config.
type Options struct {
	Clock     services.Clock
	Generator llm.Generator
	Tracker   analytics.Tracker
}

// App is a fully wired storefront.
type App struct {
	Config   *config.Config
	Fiber    *fiber.App
	Sessions *state.Store

	Catalog  *services.CatalogService
	Cart     *services.CartService
	Wishlist *services.WishlistService
	Auth     *services.AuthService
	Orders   *services.OrderService
	Checkout *services.CheckoutService
	Admin    *services.AdminService
	Chat     *services.ChatService

	db         *gorm.DB
	mqClient   *rabbitmq.Client
	dispatcher *analytics.Dispatcher
	stop       chan struct{}
	wg         sync.WaitGroup
	closeOnce  sync.Once
}

// New builds repositories, seeds them, connects the optional backends and
// registers every route.
func New(cfg *config.Config, opts Options) (*App, error) {
	a := &App{
		Config: cfg,
		stop:   make(chan struct{}),
	}
	if err := a.init(opts); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

func (a *App) init(opts Options) error {
	cfg := a.Config
	clock := opts.Clock
	if clock == nil {
		clock = services.RealClock{}
	}

	productRepo, userRepo, orderRepo, err := a.openRepositories()
	if err != nil {
		return err
	}

	catalog := seed.Products()
	if cfg.Catalog.SeedFile != "" {
		if catalog, err = seed.LoadProducts(cfg.Catalog.SeedFile); err != nil {
			return err
		}
	}
	if err := seed.Populate(productRepo, userRepo, orderRepo, catalog, cfg.Auth.AdminEmail); err != nil {
		return fmt.Errorf("failed to seed repositories: %w", err)
	}

	if cfg.RabbitMQ.Enabled {
		a.mqClient, err = rabbitmq.NewClient(rabbitmq.Config{
			URL:    cfg.RabbitMQ.URL,
			Queues: []string{cfg.RabbitMQ.OrderQueue, cfg.RabbitMQ.AnalyticsQueue},
		})
		if err != nil {
			return err
		}
	}

	tracker := opts.Tracker
	if tracker == nil {
		tracker = a.newTracker()
	}

	generator := opts.Generator
	if generator == nil {
		generator = newGenerator(cfg.Chat)
	}

	// A nil *rabbitmq.Client must not become a non-nil Publisher.
	var publisher services.Publisher
	if a.mqClient != nil {
		publisher = a.mqClient
	}

	a.Sessions = state.NewStore(clock.Now)
	a.Catalog = services.NewCatalogService(productRepo, tracker, cfg.Store.Currency)
	a.Cart = services.NewCartService(a.Sessions, productRepo, tracker, cfg.Store.Currency)
	a.Wishlist = services.NewWishlistService(a.Sessions, productRepo, a.Cart, tracker, cfg.Store.Currency)
	a.Orders = services.NewOrderService(orderRepo, userRepo, publisher, cfg.RabbitMQ.OrderQueue, clock)
	a.Checkout = services.NewCheckoutService(a.Sessions, a.Orders, tracker, cfg.Store.Currency, cfg.Checkout.ProcessingDelay, clock)
	a.Admin = services.NewAdminService(productRepo, userRepo, a.Orders)
	a.Chat = services.NewChatService(generator, a.Sessions, productRepo, cfg.Store.Name, cfg.Chat.MaxHistory)
	a.Auth, err = services.NewAuthService(userRepo, cfg.Auth, tracker, clock)
	if err != nil {
		return err
	}

	if a.mqClient != nil && cfg.RabbitMQ.Consume {
		err := a.mqClient.Consume(cfg.RabbitMQ.OrderQueue, func(msg amqp.Delivery) error {
			return a.Orders.HandleOrderEvent(msg.Body)
		})
		if err != nil {
			return err
		}
	}

	a.Fiber = a.newFiber()
	a.startSweeper()
	return nil
}

func (a *App) openRepositories() (repositories.ProductRepository, repositories.UserRepository, repositories.OrderRepository, error) {
	cfg := a.Config.Database
	if cfg.Driver == "memory" {
		return repositories.NewMockProductRepository(),
			repositories.NewMockUserRepository(),
			repositories.NewMockOrderRepository(),
			nil
	}

	db, err := database.Open(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	a.db = db
	return repositories.NewGORMProductRepository(db),
		repositories.NewGORMUserRepository(db),
		repositories.NewGORMOrderRepository(db),
		nil
}

func (a *App) newTracker() analytics.Tracker {
	cfg := a.Config.Analytics
	var sinks analytics.MultiSink
	if cfg.Log {
		sinks = append(sinks, analytics.LogSink{})
	}
	if cfg.Enabled {
		sinks = append(sinks, analytics.NewPixelSink(cfg.Endpoint, cfg.PixelID, cfg.AccessToken, cfg.Timeout))
	}
	if a.mqClient != nil && a.Config.RabbitMQ.AnalyticsQueue != "" {
		sinks = append(sinks, analytics.NewQueueSink(a.mqClient, a.Config.RabbitMQ.AnalyticsQueue))
	}
	if len(sinks) == 0 {
		return analytics.Nop{}
	}
	a.dispatcher = analytics.NewDispatcher(sinks, cfg.BufferSize, cfg.Timeout)
	return a.dispatcher
}

// newGenerator returns nil when the provider cannot be set up, which leaves
// the assistant offline.
func newGenerator(cfg config.ChatConfig) llm.Generator {
	generator, err := llm.New(cfg.Provider, llm.Options{
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		APIKeyEnv:   cfg.APIKeyEnv,
		BaseURL:     cfg.BaseURL,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.Timeout,
	})
	if err != nil {
		log.Printf("Chat assistant offline: %v", err)
		return nil
	}
	log.Printf("Chat assistant using %s", generator.Model())
	return generator
}

func (a *App) newFiber() *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: a.Config.Store.Name,
		// Handlers pass request strings to background analytics delivery.
		Immutable: true,
	})

	app.Use(recover.New())
	if a.Config.Server.RequestLog {
		app.Use(logger.New())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:  a.Config.Server.AllowOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + middleware.HeaderSessionID,
		ExposeHeaders: middleware.HeaderSessionID,
	}))

	app.Get("/health", a.handleHealth)

	apiV1 := app.Group("/api/v1", middleware.Session(), middleware.RequestTimeout(a.Config.Server.RequestTimeout))
	handlers.NewSessionHandler(a.Sessions).RegisterRoutes(apiV1)
	handlers.NewCatalogHandler(a.Catalog).RegisterRoutes(apiV1)
	handlers.NewCartHandler(a.Cart).RegisterRoutes(apiV1)
	handlers.NewWishlistHandler(a.Wishlist).RegisterRoutes(apiV1)
	handlers.NewCheckoutHandler(a.Checkout, a.Auth).RegisterRoutes(apiV1)
	handlers.NewAuthHandler(a.Auth).RegisterRoutes(apiV1)
	handlers.NewOrderHandler(a.Orders, a.Auth).RegisterRoutes(apiV1)
	handlers.NewChatHandler(a.Chat).RegisterRoutes(apiV1)
	handlers.NewAdminHandler(a.Admin, a.Catalog, a.Auth).RegisterRoutes(apiV1)

	return app
}

func (a *App) handleHealth(c *fiber.Ctx) error {
	mq := "disabled"
	if a.mqClient != nil {
		mq = "connected"
	}
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":   "healthy",
		"time":     time.Now().Format(time.RFC3339),
		"store":    a.Config.Store.Name,
		"database": a.Config.Database.Driver,
		"rabbitmq": mq,
		"chat":     a.Chat.Online(),
		"sessions": a.Sessions.Len(),
	})
}

// startSweeper periodically forgets idle sessions.
func (a *App) startSweeper() {
	cfg := a.Config.Session
	if cfg.SweepInterval <= 0 || cfg.IdleTimeout <= 0 {
		return
	}
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		ticker := time.NewTicker(cfg.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-a.stop:
				return
			case <-ticker.C:
				if n := a.Sessions.Sweep(cfg.IdleTimeout); n > 0 {
					log.Printf("Dropped %d idle sessions", n)
				}
			}
		}
	}()
}

// Listen serves HTTP on the configured address until Shutdown.
func (a *App) Listen() error {
	log.Printf("Starting server on %s", a.Config.Server.Addr)
	return a.Fiber.Listen(a.Config.Server.Addr)
}

// Shutdown stops the HTTP server and releases every backend.
func (a *App) Shutdown() error {
	var errs []error
	if a.Fiber != nil {
		if err := a.Fiber.Shutdown(); err != nil {
			errs = append(errs, fmt.Errorf("fiber shutdown: %w", err))
		}
	}
	errs = append(errs, a.Close())
	return errors.Join(errs...)
}

// Close releases background workers and connections. It is safe to call twice.
func (a *App) Close() error {
	var errs []error
	a.closeOnce.Do(func() {
		close(a.stop)
		a.wg.Wait()

		// Drain analytics before the queue connection goes away.
		if a.dispatcher != nil {
			if err := a.dispatcher.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if a.mqClient != nil {
			if err := a.mqClient.Close(); err != nil {
				errs = append(errs, err)
			}
		}
		if a.db != nil {
			if err := database.Close(a.db); err != nil {
				errs = append(errs, err)
			}
		}
	})
	return errors.Join(errs...)
}
