package services

import "github.com/shopspring/decimal"

// PricingPolicy supplies the shipping and tax amounts for an order subtotal.
// The order factory treats it as an external rule so the rates can change
// without touching the checkout flow.
type PricingPolicy interface {
	ShippingCost(subtotal decimal.Decimal, city string) decimal.Decimal
	TaxAmount(subtotal decimal.Decimal) decimal.Decimal
}

type flatRatePolicy struct {
	flatRate        decimal.Decimal
	freeShippingMin decimal.Decimal // zero disables the free-shipping threshold
	taxRatePercent  decimal.Decimal
}

func NewFlatRatePolicy(flatRate, freeShippingMin, taxRatePercent float64) PricingPolicy {
	return &flatRatePolicy{
		flatRate:        decimal.NewFromFloat(flatRate),
		freeShippingMin: decimal.NewFromFloat(freeShippingMin),
		taxRatePercent:  decimal.NewFromFloat(taxRatePercent),
	}
}

func (p *flatRatePolicy) ShippingCost(subtotal decimal.Decimal, city string) decimal.Decimal {
	if p.freeShippingMin.IsPositive() && subtotal.GreaterThanOrEqual(p.freeShippingMin) {
		return decimal.Zero
	}
	return p.flatRate
}

func (p *flatRatePolicy) TaxAmount(subtotal decimal.Decimal) decimal.Decimal {
	if p.taxRatePercent.IsZero() {
		return decimal.Zero
	}
	return subtotal.Mul(p.taxRatePercent).Div(decimal.NewFromInt(100)).Round(2)
}
