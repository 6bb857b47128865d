package main

import (
	"propmarket/internal/app"
	"propmarket/pkg/cache"
	"propmarket/pkg/config"
	"propmarket/pkg/database"
	"propmarket/pkg/logger"
	"propmarket/pkg/queue"
	"propmarket/pkg/s3"
)

// @title           PropMarket API
// @version         1.0
// @description     Property listing marketplace with package checkout and offer negotiation

// @contact.name   API Support

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	if cfg.JWTSecret == "your-secret-key-change-in-production" || cfg.JWTSecret == "" {
		panic("JWT_SECRET must be set in environment variables")
	}
	if cfg.PaymentServerKey == "" {
		panic("PAYMENT_SERVER_KEY must be set in environment variables")
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	// Migrations are handled by goose - see cmd/migrate/main.go

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	// The broker is optional: checkout and offers degrade to not publishing
	// events when it is unreachable.
	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Warn("RabbitMQ unavailable, events disabled: %v", err)
		queueClient = nil
	}

	app.Run(cfg, log, db, s3Client, queueClient, redisClient)
}
