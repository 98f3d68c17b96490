package models

import "github.com/shopspring/decimal"

// Cart is the working state of one shopping session: a mapping from product ID
// to quantity. It lives in Redis under the owning session/user key and is never
// persisted beyond that session.
type Cart struct {
	Lines map[uint]int `json:"lines"`
}

func NewCart() *Cart {
	return &Cart{Lines: map[uint]int{}}
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CartLine is one cart entry enriched with live catalog data for display.
// Unavailable lines (product deleted or deactivated since it was added) are
// rendered but excluded from totals.
type CartLine struct {
	ProductID   uint            `json:"product_id"`
	Name        string          `json:"name"`
	ImageURL    string          `json:"image_url"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	LineTotal   decimal.Decimal `json:"line_total"`
	Unavailable bool            `json:"unavailable"`
}

type CartSummary struct {
	Lines     []CartLine      `json:"lines"`
	ItemCount int             `json:"item_count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Shipping  decimal.Decimal `json:"shipping"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
}
