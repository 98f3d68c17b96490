package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestComputeStockStatus(t *testing.T) {
	tests := []struct {
		quantity int
		expected StockStatus
	}{
		{0, OutOfStock},
		{1, LowStock},
		{10, LowStock},
		{11, InStock},
		{500, InStock},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ComputeStockStatus(tt.quantity), "quantity %d", tt.quantity)
	}
}

func TestEffectivePrice(t *testing.T) {
	t.Run("no discount", func(t *testing.T) {
		p := Product{Price: decimal.NewFromInt(1000)}
		assert.False(t, p.HasDiscount())
		assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(1000)))
	})

	t.Run("valid discount", func(t *testing.T) {
		p := Product{Price: decimal.NewFromInt(1000), DiscountPrice: decPtr(800)}
		assert.True(t, p.HasDiscount())
		assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(800)))
	})

	t.Run("discount not below price does not count", func(t *testing.T) {
		p := Product{Price: decimal.NewFromInt(1000), DiscountPrice: decPtr(1000)}
		assert.False(t, p.HasDiscount())
		assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(1000)))

		p.DiscountPrice = decPtr(1200)
		assert.False(t, p.HasDiscount())
		assert.True(t, p.EffectivePrice().Equal(decimal.NewFromInt(1000)))
	})
}

func TestDiscountPercentage(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected int
	}{
		{"no discount", Product{Price: decimal.NewFromInt(1000)}, 0},
		{"flat 20 percent", Product{Price: decimal.NewFromInt(1000), DiscountPrice: decPtr(800)}, 20},
		{"rounds up", Product{Price: decimal.NewFromInt(300), DiscountPrice: decPtr(100)}, 67},
		{"rounds down", Product{Price: decimal.NewFromInt(300), DiscountPrice: decPtr(200)}, 33},
		{"zero price", Product{Price: decimal.Zero, DiscountPrice: decPtr(0)}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.DiscountPercentage())
		})
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"Classic Cotton T-Shirt", "classic-cotton-t-shirt"},
		{"  Leading & Trailing  ", "leading-trailing"},
		{"Ünïcode Stripped", "n-code-stripped"},
		{"already-a-slug", "already-a-slug"},
		{"UPPER 100% Cotton", "upper-100-cotton"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, Slugify(tt.name), "name %q", tt.name)
	}
}

func TestNormalize(t *testing.T) {
	p := Product{Name: "Garden Hose 25m", StockQuantity: 4, StockStatus: "in_stock"}
	p.Normalize()

	// stock_status is always recomputed from stock_quantity; a stale value
	// never survives a write.
	assert.Equal(t, string(LowStock), p.StockStatus)
	assert.Equal(t, "garden-hose-25m", p.Slug)

	// An explicit slug is kept.
	p2 := Product{Name: "Garden Hose 25m", Slug: "hose-25"}
	p2.Normalize()
	assert.Equal(t, "hose-25", p2.Slug)
}

func TestAvailable(t *testing.T) {
	active := Product{IsActive: true}
	assert.True(t, active.Available())

	inactive := Product{IsActive: false}
	assert.False(t, inactive.Available())
}
