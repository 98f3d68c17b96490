package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is an immutable snapshot of a product at purchase time. Name, SKU
// and price are copied onto the row so later catalog edits never touch it;
// ProductID is kept as a nullable reference because the product may be
// removed long after the order shipped.
type OrderItem struct {
	ID          uint            `json:"id" gorm:"primaryKey"`
	OrderID     uint            `json:"order_id" gorm:"not null;index"`
	ProductID   *uint           `json:"product_id" gorm:"index"`
	ProductName string          `json:"product_name" gorm:"not null"`
	ProductSKU  string          `json:"product_sku" gorm:"size:100"`
	Quantity    int             `json:"quantity" gorm:"not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(12,2);not null"`
	Subtotal    decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	CreatedAt   time.Time       `json:"created_at"`
}
