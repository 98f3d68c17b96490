package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/migrations"
	"storefront/internal/models"
	"storefront/internal/redis"
	"storefront/internal/repository"
	"storefront/internal/services"
	"storefront/pkg/notifier"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize Redis cart store
	cartStore, err := redis.Initialize(cfg.RedisURL, time.Duration(cfg.CartTTL)*time.Second)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	// Initialize notification gateway client
	notifierClient := notifier.NewClient(cfg.NotifierAPIURL, cfg.NotifierUsername, cfg.NotifierPassword)

	// Initialize repositories
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Initialize services
	pricing := services.NewFlatRatePolicy(cfg.ShippingFlatRate, cfg.FreeShippingMin, cfg.TaxRatePercent)
	notificationService := services.NewNotificationService(notifierClient)
	catalogService := services.NewCatalogService(productRepo)
	cartService := services.NewCartService(cartStore, productRepo, pricing)
	orderService := services.NewOrderService(orderRepo, productRepo, historyRepo, cartStore, pricing, notificationService)
	userService := services.NewUserService(userRepo)
	jwtService := auth.NewJWTService(cfg.JWTSecret, time.Duration(cfg.TokenExpiryMinutes)*time.Minute)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, jwtService)
	catalogHandler := handlers.NewCatalogHandler(catalogService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(catalogService, orderService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	api.Use(middleware.OptionalAuth(jwtService))
	{
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		api.GET("/products", catalogHandler.ListProducts)
		api.GET("/products/:slug", catalogHandler.GetProduct)

		api.GET("/cart", cartHandler.GetCart)
		api.DELETE("/cart", cartHandler.ClearCart)
		api.POST("/cart/items", cartHandler.AddItem)
		api.PUT("/cart/items/:product_id", cartHandler.UpdateItem)
		api.DELETE("/cart/items/:product_id", cartHandler.RemoveItem)

		api.POST("/checkout", orderHandler.Checkout)
		api.GET("/orders/:number", orderHandler.GetOrder)
	}

	my := api.Group("/my")
	my.Use(middleware.RequireAuth(jwtService))
	{
		my.GET("/orders", orderHandler.GetMyOrders)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(jwtService), middleware.RequireRole(string(models.RoleAdmin)))
	{
		admin.GET("/products", adminHandler.ListProducts)
		admin.POST("/products", adminHandler.CreateProduct)
		admin.PUT("/products/:id", adminHandler.UpdateProduct)
		admin.DELETE("/products/:id", adminHandler.DeleteProduct)

		admin.GET("/orders", adminHandler.ListOrders)
		admin.GET("/orders/:id", adminHandler.GetOrder)
		admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
		admin.PUT("/orders/:id/payment-status", adminHandler.UpdatePaymentStatus)
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
