package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/migrations"
	"storefront/internal/models"
	"storefront/internal/repository"
	"storefront/internal/services"
)

func main() {
	fmt.Println("Initializing database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Create tables and the default admin account
	if err := migrations.RunMigrations(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed a sample catalog
	fmt.Println("Creating sample products...")
	productRepo := repository.NewProductRepository(db)
	catalogService := services.NewCatalogService(productRepo)

	discount := func(v float64) *decimal.Decimal {
		d := decimal.NewFromFloat(v)
		return &d
	}

	samples := []*models.Product{
		{
			Name:          "Classic Cotton T-Shirt",
			SKU:           "TSH-001",
			Description:   "Plain crew-neck cotton t-shirt.",
			Price:         decimal.NewFromFloat(450),
			StockQuantity: 120,
			IsActive:      true,
		},
		{
			Name:          "Leather Messenger Bag",
			SKU:           "BAG-014",
			Description:   "Full-grain leather bag with laptop sleeve.",
			Price:         decimal.NewFromFloat(3200),
			DiscountPrice: discount(2700),
			StockQuantity: 8,
			IsActive:      true,
		},
		{
			Name:          "Stainless Water Bottle 750ml",
			SKU:           "BOT-750",
			Description:   "Double-walled, keeps drinks cold for 24h.",
			Price:         decimal.NewFromFloat(900),
			StockQuantity: 40,
			IsActive:      true,
		},
	}

	for _, product := range samples {
		if err := catalogService.CreateProduct(product); err != nil {
			log.Printf("Warning: Failed to create product %q: %v", product.Name, err)
			continue
		}
		fmt.Printf("Created product %q (slug %s)\n", product.Name, product.Slug)
	}

	fmt.Println("Database initialization completed successfully!")
}
