package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	Name          string           `json:"name" gorm:"not null"`
	Slug          string           `json:"slug" gorm:"size:255;not null;uniqueIndex"`
	SKU           string           `json:"sku" gorm:"size:100;index"`
	Description   string           `json:"description" gorm:"type:text"`
	ImageURL      string           `json:"image_url"`
	Price         decimal.Decimal  `json:"price" gorm:"type:decimal(12,2);not null"`
	DiscountPrice *decimal.Decimal `json:"discount_price" gorm:"type:decimal(12,2)"`
	StockQuantity int              `json:"stock_quantity" gorm:"not null;default:0"`
	StockStatus   string           `json:"stock_status" gorm:"size:20;not null;default:'out_of_stock'"`
	IsActive      bool             `json:"is_active" gorm:"default:true"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
	DeletedAt     gorm.DeletedAt   `json:"deleted_at" gorm:"index"`
}

type StockStatus string

const (
	InStock    StockStatus = "in_stock"
	LowStock   StockStatus = "low_stock"
	OutOfStock StockStatus = "out_of_stock"
)

// low-stock threshold: more than this many units counts as in_stock
const lowStockThreshold = 10

// ComputeStockStatus derives the stock status from a quantity. It is the only
// place the derivation rule lives; stock_status is never set independently.
func ComputeStockStatus(quantity int) StockStatus {
	switch {
	case quantity > lowStockThreshold:
		return InStock
	case quantity > 0:
		return LowStock
	default:
		return OutOfStock
	}
}

// HasDiscount reports whether the discount price is set and actually lower
// than the regular price. A discount_price >= price does not count.
func (p *Product) HasDiscount() bool {
	return p.DiscountPrice != nil && p.DiscountPrice.LessThan(p.Price)
}

// EffectivePrice is the price a customer pays right now: the discount price
// when a valid discount is set, the regular price otherwise.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.HasDiscount() {
		return *p.DiscountPrice
	}
	return p.Price
}

// DiscountPercentage derives the rounded percentage saved, 0 when no valid
// discount is set.
func (p *Product) DiscountPercentage() int {
	if !p.HasDiscount() || p.Price.IsZero() {
		return 0
	}
	pct := p.Price.Sub(*p.DiscountPrice).Div(p.Price).Mul(decimal.NewFromInt(100))
	return int(pct.Round(0).IntPart())
}

// Available reports whether the product can currently be added to a cart.
func (p *Product) Available() bool {
	return p.IsActive && !p.DeletedAt.Valid
}

// Normalize recomputes every derived field from its source field. Repositories
// call it before each write so derived values can never drift.
func (p *Product) Normalize() {
	if p.Slug == "" {
		p.Slug = Slugify(p.Name)
	}
	p.StockStatus = string(ComputeStockStatus(p.StockQuantity))
}

// Slugify turns a product name into a URL-safe slug: lowercase, runs of
// non-alphanumeric characters collapsed to single hyphens.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
