package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	marketHTTP "propmarket/internal/controller/http"
	"propmarket/internal/repo/persistent"
	"propmarket/internal/usecase"
	"propmarket/pkg/config"
	"propmarket/pkg/jwt"
	"propmarket/pkg/logger"
	"propmarket/pkg/middleware"
	"propmarket/pkg/payment"
	"propmarket/pkg/queue"
	"propmarket/pkg/s3"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "propmarket/docs" // Swagger docs
)

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, queueClient *queue.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)
	gateway := payment.NewClient(cfg)

	// Initialize repositories
	userRepo := persistent.NewUserRepository(db)
	propertyRepo := persistent.NewPropertyRepository(db)
	packageRepo := persistent.NewPackageRepository(db)
	orderRepo := persistent.NewOrderRepository(db)
	offerRepo := persistent.NewOfferRepository(db)
	txnRepo := persistent.NewTransactionRepository(db)

	// A nil *queue.Client stored in the interface would not compare equal to
	// nil inside the use cases, so only assign when the client exists.
	var events usecase.EventPublisher
	if queueClient != nil {
		events = queueClient
	}

	// Initialize use cases
	authUseCase := usecase.NewAuthUseCase(userRepo, jwtService, s3Client, log)
	propertyUseCase := usecase.NewPropertyUseCase(propertyRepo, userRepo, s3Client, redisClient, log)
	packageUseCase := usecase.NewPackageUseCase(packageRepo)
	checkoutUseCase := usecase.NewCheckoutUseCase(orderRepo, packageRepo, userRepo, gateway, s3Client, events, cfg.PaymentServerKey, log)
	offerUseCase := usecase.NewOfferUseCase(offerRepo, propertyRepo, events, log)
	txnUseCase := usecase.NewTransactionUseCase(txnRepo, propertyRepo, s3Client, log)

	// Initialize HTTP handlers
	authHandler := marketHTTP.NewAuthHandler(authUseCase)
	propertyHandler := marketHTTP.NewPropertyHandler(propertyUseCase, log)
	packageHandler := marketHTTP.NewPackageHandler(packageUseCase, log)
	checkoutHandler := marketHTTP.NewCheckoutHandler(checkoutUseCase, log)
	offerHandler := marketHTTP.NewOfferHandler(offerUseCase, log)
	txnHandler := marketHTTP.NewTransactionHandler(txnUseCase, log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	// Public routes. The payment notification endpoint authenticates via the
	// gateway signature instead of a bearer token.
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/properties", propertyHandler.Search)
		api.GET("/properties/:id", propertyHandler.Get)
		api.GET("/packages", packageHandler.ListActive)
		api.POST("/payments/notification", checkoutHandler.Notification)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	protected.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))

	{
		protected.GET("/auth/me", authHandler.Me)
		protected.POST("/auth/avatar", authHandler.UploadAvatar)

		protected.POST("/properties", propertyHandler.Create)
		protected.GET("/properties/mine", propertyHandler.ListMine)
		protected.PUT("/properties/:id", propertyHandler.Update)
		protected.DELETE("/properties/:id", propertyHandler.Delete)
		protected.POST("/properties/:id/images", propertyHandler.UploadImage)

		protected.POST("/orders/checkout", checkoutHandler.Checkout)
		protected.GET("/orders", checkoutHandler.ListOrders)
		protected.POST("/orders/:id/proof", checkoutHandler.UploadProof)

		protected.POST("/offers", offerHandler.CreateOffer)
		protected.POST("/offers/:id/actions", offerHandler.Act)
		protected.GET("/offers/:id/history", offerHandler.History)
		protected.GET("/offers/mine", offerHandler.ListMyOffers)
		protected.GET("/offers/incoming", offerHandler.ListIncomingOffers)

		protected.POST("/transactions/buy", txnHandler.Buy)
		protected.POST("/transactions/:id/proof", txnHandler.AttachProof)
		protected.PATCH("/transactions/:id/status", txnHandler.UpdateStatus)
		protected.GET("/transactions/purchases", txnHandler.ListPurchases)
		protected.GET("/transactions/sales", txnHandler.ListSales)
	}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRole("admin"))

	{
		admin.GET("/orders", checkoutHandler.ListAllOrders)
		admin.GET("/transactions", txnHandler.ListAll)
		admin.GET("/packages", packageHandler.List)
		admin.POST("/packages", packageHandler.Create)
		admin.PUT("/packages/:id", packageHandler.Update)
		admin.DELETE("/packages/:id", packageHandler.Deactivate)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		log.Info("Marketplace API starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down marketplace API...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if queueClient != nil {
		queueClient.Close()
	}

	// Shutdown server
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
		panic(err)
	}

	log.Info("Marketplace API exited")
}
