package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a financial record: created exactly once from a non-empty cart,
// never deleted, and its items are a frozen snapshot of the catalog at
// purchase time.
type Order struct {
	ID            uint            `json:"id" gorm:"primaryKey"`
	OrderNumber   string          `json:"order_number" gorm:"size:64;not null;uniqueIndex"`
	UserID        *uint           `json:"user_id" gorm:"index"` // nil for guest checkout
	Status        string          `json:"status" gorm:"size:20;not null;default:'pending'"`
	PaymentStatus string          `json:"payment_status" gorm:"size:20;not null;default:'pending'"`
	PaymentMethod string          `json:"payment_method" gorm:"size:50"`
	Subtotal      decimal.Decimal `json:"subtotal" gorm:"type:decimal(12,2);not null"`
	Tax           decimal.Decimal `json:"tax" gorm:"type:decimal(12,2);not null"`
	ShippingCost  decimal.Decimal `json:"shipping_cost" gorm:"type:decimal(12,2);not null"`
	Discount      decimal.Decimal `json:"discount" gorm:"type:decimal(12,2);not null"`
	Total         decimal.Decimal `json:"total" gorm:"type:decimal(12,2);not null"`

	CustomerName         string `json:"customer_name" gorm:"not null"`
	CustomerEmail        string `json:"customer_email" gorm:"not null"`
	CustomerPhone        string `json:"customer_phone"`
	ShippingAddress      string `json:"shipping_address" gorm:"not null"`
	ShippingCity         string `json:"shipping_city" gorm:"not null"`
	ShippingPostalCode   string `json:"shipping_postal_code"`
	ShippingRegion       string `json:"shipping_region"`
	ShippingNeighborhood string `json:"shipping_neighborhood"`
	Notes                string `json:"notes" gorm:"type:text"`

	Items         []OrderItem          `json:"items" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderProcessing OrderStatus = "processing"
	OrderShipped    OrderStatus = "shipped"
	OrderDelivered  OrderStatus = "delivered"
	OrderCancelled  OrderStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentRefunded PaymentStatus = "refunded"
)

// ValidOrderStatus reports whether s is a known order status. Transitions
// between known statuses are deliberately unrestricted: logistics sometimes
// require reverting a status, so the admin tool accepts any known value and
// the audit log records it.
func ValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

func ValidPaymentStatus(s string) bool {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentPaid, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// ValidPaymentTransition reports whether the payment machine allows moving
// from one status to the other. Money movement is stricter than logistics:
// pending goes to paid or failed, only paid can be refunded, and failed and
// refunded are terminal.
func ValidPaymentTransition(from, to string) bool {
	switch PaymentStatus(from) {
	case PaymentPending:
		return to == string(PaymentPaid) || to == string(PaymentFailed)
	case PaymentPaid:
		return to == string(PaymentRefunded)
	}
	return false
}
