package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/streadway/amqp"
	"go.uber.org/zap"

	"linkbio/config"
	"linkbio/internal/handlers"
	"linkbio/internal/middleware"
	"linkbio/internal/models"
	"linkbio/internal/repositories"
	"linkbio/internal/services"
	"linkbio/pkg/cache"
	"linkbio/pkg/database"
	"linkbio/pkg/logger"
	"linkbio/pkg/metrics"
	"linkbio/pkg/rabbitmq"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.MustInit(logger.Config{
		Development: cfg.App.IsDevelopment(),
		Level:       os.Getenv("LOG_LEVEL"),
	})
	defer func() { _ = logger.Sync() }()

	// --- Storage ---
	db, err := database.NewGorm(cfg.Postgres)
	if err != nil {
		log.Fatal("Failed to connect to Postgres", zap.Error(err))
	}
	if err := database.AutoMigrate(db, &models.User{}, &models.Link{}); err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Connected to Postgres successfully")

	// --- RabbitMQ (optional: link events are best-effort) ---
	mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQ.URL})
	if err != nil {
		log.Warn("RabbitMQ unavailable, link events disabled", zap.Error(err))
		mqClient = nil
	} else {
		defer mqClient.Close()
	}

	// --- Redis (optional: profile cache) ---
	redisClient, err := cache.NewClient(ctx, cfg.Redis)
	if err != nil {
		log.Warn("Redis unavailable, profile caching disabled", zap.Error(err))
		redisClient = nil
	} else {
		defer redisClient.Close()
	}

	// --- Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	linkRepo := repositories.NewGORMLinkRepository(db)

	// --- Services ---
	tokenTTL := time.Duration(cfg.JWT.TTLMinutes) * time.Minute
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, tokenTTL)

	// A typed nil *rabbitmq.Client inside the interface would dodge the
	// service's nil check, so only assign when connected.
	var publisher services.LinkEventPublisher
	if mqClient != nil {
		publisher = mqClient
	}
	linkService := services.NewLinkService(linkRepo, publisher, log)
	profileService := services.NewProfileService(userRepo, linkRepo, redisClient, log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService, log)
	linkHandler := handlers.NewLinkHandler(linkService, log)
	profileHandler := handlers.NewProfileHandler(profileService, log)

	// --- Fiber app ---
	app := fiber.New()

	app.Use(middleware.Recovery(log))
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(log))
	app.Use(middleware.CORS())
	app.Use(middleware.Metrics())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// --- API Routes ---
	api := app.Group("/api")

	// Public auth routes
	authHandler.RegisterRoutes(api)

	// Protected link routes
	protected := api.Group("", middleware.AuthRequired(authService))
	linkHandler.RegisterRoutes(protected)

	// Public profile catch-all; registered last so /api/:name cannot shadow
	// the routes above.
	profileHandler.RegisterRoutes(api)

	// --- Prometheus metrics side server ---
	if !cfg.App.IsDevelopment() {
		promServer := metrics.NewServer(cfg.Metrics.Port)
		go func() {
			log.Info("Starting Prometheus metrics server", zap.Int("port", cfg.Metrics.Port))
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error("Prometheus metrics server stopped unexpectedly", zap.Error(err))
			}
		}()
		defer func() {
			if err := promServer.Close(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Warn("Failed to close Prometheus server", zap.Error(err))
			}
		}()
	}

	// --- Link event consumer ---
	if mqClient != nil {
		go func() {
			log.Info("Starting RabbitMQ consumer for link events")
			handler := func(msg amqp.Delivery) error {
				log.Info("Received link event", zap.ByteString("body", msg.Body))
				return nil
			}
			if err := mqClient.ConsumeLinkEvents(handler); err != nil {
				log.Error("Failed to start RabbitMQ consumer", zap.Error(err))
			}
		}()
	}

	// --- Start HTTP server ---
	log.Info("Starting server", zap.String("port", cfg.App.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(cfg.App.Port); err != nil {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	<-quit
	log.Info("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Error("Error during Fiber shutdown", zap.Error(err))
	}

	log.Info("Server gracefully stopped")
}
