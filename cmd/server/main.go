package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"booklending-service/internal/application/services"
	"booklending-service/internal/config"
	"booklending-service/internal/delivery/handler"
	"booklending-service/internal/infrastructure"
	pgstore "booklending-service/internal/infrastructure/db/postgres"
	"booklending-service/internal/infrastructure/events"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.JWTSecret == "" {
		log.Fatal("❌ JWT_SECRET must be set")
	}

	db, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("❌ Failed to connect to Postgres:", err)
	}
	if err := pgstore.AutoMigrate(db); err != nil {
		log.Fatal("❌ Failed to run migrations:", err)
	}
	log.Println("✅ Connected to Postgres.")

	// The cache is optional: a miss on startup degrades to uncached reads.
	var redisService *infrastructure.RedisService
	redisService, err = infrastructure.NewRedisService(cfg.RedisURL, cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		log.Println("Redis unavailable, continuing without cache:", err)
		redisService = nil
	} else {
		log.Println("✅ Connected to Redis.")
		defer redisService.Close()
	}

	// Same for the event broker.
	var publisher *events.Publisher
	if cfg.NatsURL != "" {
		publisher, err = events.Connect(cfg.NatsURL)
		if err != nil {
			log.Println("NATS unavailable, continuing without events:", err)
			publisher = nil
		} else {
			defer publisher.Close()
		}
	}

	jwtService := infrastructure.NewJWTService(cfg.JWTSecret)
	emailService := infrastructure.NewEmailService(cfg.EmailAPIKey, cfg.EmailSenderName, cfg.EmailSender, cfg.BaseURL)
	rateLimiter := infrastructure.NewRateLimiter(cfg.RateLimitWindow, cfg.RateLimitMaxRequests)

	userRepo := pgstore.NewUserRepository(db)
	bookRepo := pgstore.NewBookRepository(db)
	requestRepo := pgstore.NewBorrowRequestRepository(db)
	loanRepo := pgstore.NewLoanRepository(db)
	idempotencyRepo := pgstore.NewIdempotencyRepository(db)
	transactor := pgstore.NewTxManager(db)

	userService := services.NewUserService(userRepo, jwtService, redisService, emailService, rateLimiter)
	catalogService := services.NewCatalogService(bookRepo, requestRepo, userRepo, transactor)
	lendingService := services.NewLendingService(bookRepo, requestRepo, loanRepo, userRepo, idempotencyRepo, transactor, redisService, publisher)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	handler.RegisterRoutes(
		e,
		jwtService,
		handler.NewAuthHandler(userService),
		handler.NewBookHandler(catalogService),
		handler.NewLendingHandler(lendingService),
	)

	go func() {
		log.Println("🚀 Server running on :" + cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("❌ Server stopped:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Println("Graceful shutdown failed:", err)
	}
	log.Println("Server stopped.")
}
