package repository

import (
	"errors"

	"gorm.io/gorm"

	"storefront/internal/models"
)

type ProductRepository interface {
	Create(product *models.Product) error
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	GetAll() ([]models.Product, error)
	GetActive() ([]models.Product, error)
	Update(product *models.Product) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(product *models.Product) error {
	product.Normalize()
	return r.db.Create(product).Error
}

func (r *productRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	err := r.db.First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Find(&products).Error
	return products, err
}

func (r *productRepository) GetActive() ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("is_active = ?", true).Find(&products).Error
	return products, err
}

func (r *productRepository) Update(product *models.Product) error {
	product.Normalize()
	return r.db.Save(product).Error
}

// Delete soft-deletes: historical orders keep referencing the row.
func (r *productRepository) Delete(id uint) error {
	return r.db.Delete(&models.Product{}, id).Error
}

func (r *productRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Product{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// decrementStockTx is a single conditional update, never a read-then-write,
// so two orders racing for the last unit can never both succeed. The derived
// stock_status is recomputed from the post-decrement quantity in the same
// transaction. The order repository runs it once per line inside the order
// creation transaction.
func decrementStockTx(tx *gorm.DB, id uint, quantity int) error {
	res := tx.Model(&models.Product{}).
		Where("id = ? AND stock_quantity >= ?", id, quantity).
		UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", quantity))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// The product vanished mid-checkout; the whole order rolls
				// back with a business-rule error, not a lookup miss.
				return &models.UnavailableProductError{ProductID: id}
			}
			return err
		}
		return &models.InsufficientStockError{
			ProductID:   id,
			ProductName: product.Name,
			Requested:   quantity,
			Available:   product.StockQuantity,
		}
	}

	var product models.Product
	if err := tx.First(&product, id).Error; err != nil {
		return err
	}
	return tx.Model(&product).
		UpdateColumn("stock_status", string(models.ComputeStockStatus(product.StockQuantity))).Error
}
