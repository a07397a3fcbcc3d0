package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/streadway/amqp"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"fireguard/internal/config"
	"fireguard/internal/handlers"
	"fireguard/internal/metrics"
	"fireguard/internal/models"
	"fireguard/internal/repositories"
	"fireguard/internal/services"
	"fireguard/pkg/rabbitmq"
	"fireguard/pkg/sheets"
)

func main() {
	// .env is a dev convenience; absence is fine.
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogger(cfg)

	app, mqClient := buildApp(cfg)
	if mqClient != nil {
		defer mqClient.Close()
		startEnquiryConsumer(mqClient)
	}

	log.Info().Str("port", cfg.AppPort).Str("env", cfg.Environment).Msg("starting server")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.AppPort); err != nil {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	<-quit
	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped")
}

func setupLogger(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if !cfg.IsProduction() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
}

// buildApp wires the store, repositories, services and routes into a fiber
// app. Split from main so tests can exercise the wired app without
// listening on a port.
func buildApp(cfg *config.Config) (*fiber.App, *rabbitmq.Client) {
	ctx := context.Background()

	// The sheet store is nil when unconfigured or unreachable; every
	// repository knows how to degrade.
	var store sheets.RangeStore
	if client := sheets.Connect(ctx, sheets.Config{
		SpreadsheetID:       cfg.SheetsID,
		ServiceAccountEmail: cfg.ServiceAccountEmail,
		PrivateKey:          cfg.ServiceAccountKey,
	}); client != nil {
		store = client
	}

	// RabbitMQ is optional: enquiry submission works without the
	// notification pipeline.
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Warn().Err(err).Msg("rabbitmq unavailable, enquiry events disabled")
		} else {
			mqClient = client
		}
	}

	productRepo := repositories.NewSheetProductRepository(store)
	enquiryRepo := repositories.NewSheetEnquiryRepository(store, cfg.AllowUnpersistedEnquiries)
	userRepo := buildUserRepo(cfg, store)

	productService := services.NewProductService(productRepo)
	var publisher services.EnquiryPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	enquiryService := services.NewEnquiryService(enquiryRepo, publisher)
	analyticsService := services.NewAnalyticsService(enquiryRepo)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenDuration, services.AdminConfig{
		Email:        cfg.AdminEmail,
		PasswordHash: cfg.AdminPasswordHash,
		AllowDevAuth: !cfg.IsProduction(),
	})

	app := fiber.New(fiber.Config{DisableStartupMessage: cfg.IsProduction()})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowCredentials: true,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use("/api", limiter.New(limiter.Config{
		Max:        100,
		Expiration: 15 * time.Minute,
	}))
	app.Use(metrics.RequestCounter())

	api := app.Group("/api")
	handlers.NewProductHandler(productService, cfg.IsProduction()).RegisterRoutes(api)
	handlers.NewEnquiryHandler(enquiryService, cfg.IsProduction()).RegisterRoutes(api)
	handlers.NewAuthHandler(authService, cfg.IsProduction()).RegisterRoutes(api)
	handlers.NewAdminHandler(authService, productService, enquiryService, analyticsService, cfg.IsProduction()).RegisterRoutes(api)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"sheets":    store != nil,
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	return app, mqClient
}

// buildUserRepo picks the user store: a database when DATABASE_DSN is set,
// the Users sheet when the store is up, the seeded in-memory fallback
// otherwise.
func buildUserRepo(cfg *config.Config, store sheets.RangeStore) repositories.UserRepository {
	if cfg.DatabaseDSN != "" {
		var dialector gorm.Dialector
		switch cfg.DatabaseDriver {
		case "postgres":
			dialector = postgres.Open(cfg.DatabaseDSN)
		default:
			dialector = sqlite.Open(cfg.DatabaseDSN)
		}
		db, err := gorm.Open(dialector, &gorm.Config{})
		if err != nil {
			log.Warn().Err(err).Msg("database unavailable, falling back for user store")
		} else {
			if err := db.AutoMigrate(&models.User{}); err != nil {
				log.Warn().Err(err).Msg("user table migration failed")
			}
			log.Info().Str("driver", cfg.DatabaseDriver).Msg("user store: database")
			return repositories.NewGORMUserRepository(db)
		}
	}
	if store != nil {
		log.Info().Msg("user store: users sheet")
		return repositories.NewSheetUserRepository(store)
	}
	log.Info().Msg("user store: in-memory dev fallback")
	return repositories.NewMemoryUserRepository()
}

// startEnquiryConsumer drains the enquiry event queue. In this deployment
// the consumer only logs; the sales notification worker is external.
func startEnquiryConsumer(mqClient *rabbitmq.Client) {
	err := mqClient.ConsumeEnquiryEvents(func(msg amqp.Delivery) error {
		log.Info().Uint64("tag", msg.DeliveryTag).RawJSON("event", msg.Body).Msg("enquiry event")
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("failed to start enquiry consumer")
	}
}
