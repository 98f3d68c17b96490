package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"storefront/internal/models"
)

type OrderRepository interface {
	// CreateWithStockDecrement writes the order, its items and every stock
	// decrement as one transaction. Any insufficient stock rolls the whole
	// thing back.
	CreateWithStockDecrement(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(orderNumber string) (*models.Order, error)
	GetByUserID(userID uint) ([]models.Order, error)
	GetByDateRange(startDate, endDate time.Time) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	// UpdateStatusWithHistory transitions the status and appends the audit
	// row in one transaction.
	UpdateStatusWithHistory(order *models.Order, newStatus, comment string, changedBy *uint) error
	UpdatePaymentStatus(order *models.Order, newStatus string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) CreateWithStockDecrement(order *models.Order) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, item := range order.Items {
			if item.ProductID == nil {
				continue
			}
			if err := decrementStockTx(tx, *item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		// Items are created through the association in the same transaction.
		return tx.Create(order).Error
	})
}

func (r *orderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", orderNumber).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByUserID(userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Where("user_id = ?", userID).Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Where("created_at BETWEEN ? AND ?", startDate, endDate).Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").Order("created_at DESC").Find(&orders).Error
	return orders, err
}

func (r *orderRepository) UpdateStatusWithHistory(order *models.Order, newStatus, comment string, changedBy *uint) error {
	oldStatus := order.Status
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(order).UpdateColumn("status", newStatus).Error; err != nil {
			return err
		}
		history := &models.OrderStatusHistory{
			OrderID:   order.ID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Comment:   comment,
			ChangedBy: changedBy,
		}
		return tx.Create(history).Error
	})
}

func (r *orderRepository) UpdatePaymentStatus(order *models.Order, newStatus string) error {
	return r.db.Model(order).UpdateColumn("payment_status", newStatus).Error
}
