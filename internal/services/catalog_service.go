package services

import (
	"strings"

	"github.com/google/uuid"

	"storefront/internal/models"
	"storefront/internal/repository"
)

type CatalogService interface {
	CreateProduct(product *models.Product) error
	UpdateProduct(product *models.Product) error
	DeleteProduct(id uint) error
	GetProductByID(id uint) (*models.Product, error)
	GetProductBySlug(slug string) (*models.Product, error)
	GetActiveProducts() ([]models.Product, error)
	GetAllProducts() ([]models.Product, error)
}

type catalogService struct {
	productRepo repository.ProductRepository
}

func NewCatalogService(productRepo repository.ProductRepository) CatalogService {
	return &catalogService{productRepo: productRepo}
}

func (s *catalogService) CreateProduct(product *models.Product) error {
	slug, err := s.uniqueSlug(models.Slugify(product.Name))
	if err != nil {
		return err
	}
	product.Slug = slug
	return s.productRepo.Create(product)
}

func (s *catalogService) UpdateProduct(product *models.Product) error {
	// Slug stays stable across renames; storefront URLs keep working.
	return s.productRepo.Update(product)
}

// DeleteProduct marks the product logically removed. Rows stay behind the
// soft delete so historical order items keep a valid reference.
func (s *catalogService) DeleteProduct(id uint) error {
	return s.productRepo.Delete(id)
}

func (s *catalogService) GetProductByID(id uint) (*models.Product, error) {
	return s.productRepo.GetByID(id)
}

func (s *catalogService) GetProductBySlug(slug string) (*models.Product, error) {
	return s.productRepo.GetBySlug(slug)
}

func (s *catalogService) GetActiveProducts() ([]models.Product, error) {
	return s.productRepo.GetActive()
}

func (s *catalogService) GetAllProducts() ([]models.Product, error) {
	return s.productRepo.GetAll()
}

// uniqueSlug appends a short random suffix when the derived slug is taken.
func (s *catalogService) uniqueSlug(slug string) (string, error) {
	taken, err := s.productRepo.SlugExists(slug)
	if err != nil {
		return "", err
	}
	if !taken {
		return slug, nil
	}
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return slug + "-" + suffix, nil
}
