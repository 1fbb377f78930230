package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"boutique/internal/handlers"
	"boutique/internal/middleware"
	"boutique/internal/models"
	"boutique/internal/repositories"
	"boutique/internal/services"
	"boutique/pkg/logger"
	"boutique/pkg/mailer"
	"boutique/pkg/rabbitmq"
)

// NewApp wires repositories, services and handlers into a Fiber app. All
// collaborators are passed in explicitly; mq and mail may be nil.
func NewApp(db *gorm.DB, mq *rabbitmq.Client, mail mailer.Mailer, jwtSecret, adminEmail string) (*fiber.App, *services.AuthService) {
	productRepo := repositories.NewGORMProductRepository(db)
	userRepo := repositories.NewGORMUserRepository(db)
	contactRepo := repositories.NewGORMContactRepository(db)

	productService := services.NewProductService(productRepo, mq)
	authService := services.NewAuthService(userRepo, jwtSecret)
	cartService := services.NewCartService(userRepo, productRepo)
	contactService := services.NewContactService(contactRepo, mail, mq, adminEmail)
	statsService := services.NewStatsService(productRepo, userRepo, contactRepo)

	productHandler := handlers.NewProductHandler(productService)
	authHandler := handlers.NewAuthHandler(authService)
	cartHandler := handlers.NewCartHandler(cartService)
	contactHandler := handlers.NewContactHandler(contactService)
	statsHandler := handlers.NewStatsHandler(statsService)

	app := fiber.New(fiber.Config{
		BodyLimit: 32 << 20, // five 5MB images plus form fields
	})
	app.Use(fiberlogger.New())
	app.Use(cors.New())

	authRequired := middleware.AuthRequired(authService)

	api := app.Group("/api")
	productHandler.RegisterRoutes(api, authRequired)
	authHandler.RegisterRoutes(api, authRequired)
	cartHandler.RegisterRoutes(api, authRequired)
	contactHandler.RegisterRoutes(api, authRequired)
	statsHandler.RegisterRoutes(api, authRequired)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	return app, authService
}

// openDatabase connects to Postgres when a DSN is configured and falls
// back to a local SQLite file otherwise.
func openDatabase(dsn, sqlitePath string) (*gorm.DB, error) {
	if dsn != "" {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(sqlitePath), &gorm.Config{})
}

func main() {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("DATABASE_DSN", "")
	viper.SetDefault("DATABASE_PATH", "boutique.db")
	viper.SetDefault("JWT_SECRET", "dev_jwt_secret")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("SMTP_HOST", "")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("ADMIN_EMAIL", "")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DEV_MODE", false)
	viper.AutomaticEnv()

	logger.Init("boutique", viper.GetBool("DEV_MODE"))
	logger.SetLevel(viper.GetString("LOG_LEVEL"))

	db, err := openDatabase(viper.GetString("DATABASE_DSN"), viper.GetString("DATABASE_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := db.AutoMigrate(&models.Product{}, &models.User{}, &models.Contact{}); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	// The broker is optional: without it the API still serves requests,
	// it just stops publishing catalog and contact events.
	var mqClient *rabbitmq.Client
	if url := viper.GetString("RABBITMQ_URL"); url != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: url})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, event publication disabled")
			mqClient = nil
		} else {
			defer mqClient.Close()
		}
	}

	var mail mailer.Mailer
	if host := viper.GetString("SMTP_HOST"); host != "" {
		mail = mailer.NewSMTPMailer(mailer.Config{
			Host:     host,
			Port:     viper.GetInt("SMTP_PORT"),
			Username: viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASS"),
			From:     viper.GetString("SMTP_FROM"),
		})
	} else {
		log.Warn().Msg("SMTP not configured, contact emails disabled")
	}

	app, _ := NewApp(db, mqClient, mail, viper.GetString("JWT_SECRET"), viper.GetString("ADMIN_EMAIL"))

	// Audit consumer for catalog events.
	if mqClient != nil {
		err := mqClient.Consume(rabbitmq.CatalogQueue, func(msg amqp.Delivery) error {
			log.Info().Uint64("delivery_tag", msg.DeliveryTag).
				RawJSON("event", msg.Body).Msg("catalog event")
			return nil
		})
		if err != nil {
			log.Warn().Err(err).Msg("failed to start catalog event consumer")
		}
	}

	appPort := viper.GetString("APP_PORT")
	log.Info().Str("port", appPort).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")

	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
}
