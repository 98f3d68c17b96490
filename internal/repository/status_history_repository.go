package repository

import (
	"gorm.io/gorm"

	"storefront/internal/models"
)

// StatusHistoryRepository reads the append-only audit log. Rows are written
// by OrderRepository.UpdateStatusWithHistory inside the transition
// transaction; nothing ever updates or deletes them.
type StatusHistoryRepository interface {
	GetByOrderID(orderID uint) ([]models.OrderStatusHistory, error)
}

type statusHistoryRepository struct {
	db *gorm.DB
}

func NewStatusHistoryRepository(db *gorm.DB) StatusHistoryRepository {
	return &statusHistoryRepository{db: db}
}

func (r *statusHistoryRepository) GetByOrderID(orderID uint) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&history).Error
	return history, err
}
