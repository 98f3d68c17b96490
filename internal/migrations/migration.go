package migrations

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"storefront/internal/auth"
	"storefront/internal/models"
)

// RunMigrations runs all database migrations and creates default data
func RunMigrations(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
	)
	if err != nil {
		return err
	}

	// Create default data
	if err := createDefaultAdmin(db); err != nil {
		log.Printf("Warning: Failed to create default admin user: %v", err)
	}

	log.Println("Database migrations completed successfully!")
	return nil
}

// createDefaultAdmin seeds the back-office admin account on first boot.
func createDefaultAdmin(db *gorm.DB) error {
	var existing models.User
	err := db.Where("role = ?", string(models.RoleAdmin)).First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	log.Println("Creating default admin user...")
	hash, err := auth.HashPassword("changeme123")
	if err != nil {
		return err
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        "admin@storefront.local",
		PasswordHash: hash,
		Role:         string(models.RoleAdmin),
		IsActive:     true,
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	log.Println("Admin user created successfully")
	log.Println("Email: admin@storefront.local")
	log.Println("Password: changeme123")
	return nil
}
