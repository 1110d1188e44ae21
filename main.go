package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/viper"
	amqp "github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"footshop/internal/handlers"
	"footshop/internal/models"
	"footshop/internal/repositories"
	"footshop/internal/services"
	"footshop/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "footshop.db")
	viper.SetDefault("DATABASE_MAX_CONNS", 10)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")
	dev := viper.GetString("APP_ENV") == "development"

	// --- Database ---
	db, err := openDatabase(viper.GetString("DATABASE_DRIVER"), viper.GetString("DATABASE_DSN"))
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Category{}); err != nil {
		log.Fatalf("Failed to migrate database schema: %v", err)
	}

	// Bounded connection pool; requests queue for a free connection rather
	// than failing immediately.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to access database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(viper.GetInt("DATABASE_MAX_CONNS"))

	if err := seedCatalog(db); err != nil {
		log.Printf("Warning: failed to seed catalog: %v", err)
	}

	// --- Optional RabbitMQ client for catalog events ---
	var events services.EventPublisher
	var mqClient *rabbitmq.Client
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Fatalf("Failed to initialize RabbitMQ client: %v", err)
		}
		defer mqClient.Close()
		events = mqClient

		// Consume catalog events so downstream processing (stock sync,
		// cache invalidation) has a hook; for now each event is logged.
		go func() {
			log.Println("Starting catalog events consumer...")
			if err := mqClient.ConsumeCatalogEvents(logCatalogEvent); err != nil {
				log.Printf("Failed to start catalog events consumer: %v", err)
			}
		}()
	} else {
		log.Println("RABBITMQ_URL not set, catalog events disabled")
	}

	app := NewApp(db, events, dev)

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// logCatalogEvent handles consumed catalog change events. Returning nil acks
// the delivery; the consumer loop nacks and requeues on error.
func logCatalogEvent(msg amqp.Delivery) error {
	log.Printf("Catalog event (tag %d): %s", msg.DeliveryTag, msg.Body)
	return nil
}

// NewApp wires the repositories, service and handlers into a Fiber app.
// events may be nil when no message broker is configured.
func NewApp(db *gorm.DB, events services.EventPublisher, dev bool) *fiber.App {
	productRepo := repositories.NewGORMProductRepository(db)
	categoryRepo := repositories.NewGORMCategoryRepository(db)
	catalog := services.NewCatalogService(productRepo, categoryRepo, events)

	productHandler := handlers.NewProductHandler(catalog, dev)
	categoryHandler := handlers.NewCategoryHandler(catalog, dev)

	app := fiber.New()

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New()) // all origins, like the storefront expects

	// --- API Routes ---
	productHandler.RegisterRoutes(app)
	categoryHandler.RegisterRoutes(app)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"success":   true,
			"message":   "Server is up and running",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	// Unmatched routes get the generic envelope.
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Endpoint not found",
		})
	})

	return app
}

// openDatabase opens a GORM connection for the configured driver. sqlite is
// the development default; postgres is selected for everything else.
func openDatabase(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// seedCatalog populates an empty database with a starter catalog. A
// non-empty products table is left untouched.
func seedCatalog(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	categories := []models.Category{
		{Name: "Shoes", Slug: "shoes"},
		{Name: "Jerseys", Slug: "jerseys"},
		{Name: "Balls", Slug: "balls"},
		{Name: "Accessories", Slug: "accessories"},
	}
	if err := db.Create(&categories).Error; err != nil {
		return err
	}

	hot := "Hot"
	hotClass := "badge-hot"
	sale := "Sale"
	saleClass := "badge-sale"
	products := []models.Product{
		{Name: "Predator Elite FG", Price: "2.500.000", Image: "/img/predator-elite.png", Category: "Shoes", Badge: &hot, BadgeClass: &hotClass, Stock: 12},
		{Name: "Mercurial Vapor 16", Price: "3.100.000", Image: "/img/mercurial-vapor.png", Category: "Shoes", Stock: 8},
		{Name: "Home Jersey 2026", Price: "890.000", Image: "/img/home-jersey.png", Category: "Jerseys", Badge: &sale, BadgeClass: &saleClass, Stock: 30},
		{Name: "Match Ball Pro", Price: "650.000", Image: "/img/match-ball.png", Category: "Balls", Stock: 20},
		{Name: "Goalkeeper Gloves", Price: "420.000", Image: "/img/gk-gloves.png", Category: "Accessories", Stock: 0},
	}
	if err := db.Create(&products).Error; err != nil {
		return err
	}

	log.Printf("Seeded catalog with %d categories and %d products", len(categories), len(products))
	return nil
}
