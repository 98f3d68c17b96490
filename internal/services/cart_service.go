package services

import (
	"context"
	"errors"
	"sort"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// CartStore is the session-scoped cart storage; the Redis client implements
// it in production.
type CartStore interface {
	GetCart(ctx context.Context, key string) (*models.Cart, error)
	SaveCart(ctx context.Context, key string, cart *models.Cart) error
	DeleteCart(ctx context.Context, key string) error
}

type CartService interface {
	AddItem(ctx context.Context, cartKey string, productID uint, quantity int) (*models.Cart, error)
	UpdateItem(ctx context.Context, cartKey string, productID uint, quantity int) (*models.Cart, error)
	RemoveItem(ctx context.Context, cartKey string, productID uint) (*models.Cart, error)
	Clear(ctx context.Context, cartKey string) error
	GetCart(ctx context.Context, cartKey string) (*models.Cart, error)
	GetSummary(ctx context.Context, cartKey string) (*models.CartSummary, error)
}

type cartService struct {
	store       CartStore
	productRepo repository.ProductRepository
	pricing     PricingPolicy
}

func NewCartService(store CartStore, productRepo repository.ProductRepository, pricing PricingPolicy) CartService {
	return &cartService{store: store, productRepo: productRepo, pricing: pricing}
}

// AddItem puts quantity units of the product into the cart, summing with any
// existing line. Stock is deliberately not checked here: carts are long-lived
// and stock is volatile, so availability is validated at checkout instead.
func (s *cartService) AddItem(ctx context.Context, cartKey string, productID uint, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if !product.Available() {
		return nil, models.ErrProductNotFound
	}

	cart, err := s.store.GetCart(ctx, cartKey)
	if err != nil {
		return nil, err
	}

	cart.Lines[productID] += quantity
	if err := s.store.SaveCart(ctx, cartKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// UpdateItem replaces the line quantity; zero removes the line.
func (s *cartService) UpdateItem(ctx context.Context, cartKey string, productID uint, quantity int) (*models.Cart, error) {
	if quantity < 0 {
		return nil, models.ErrInvalidQuantity
	}

	cart, err := s.store.GetCart(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	if _, ok := cart.Lines[productID]; !ok {
		return nil, models.ErrLineNotFound
	}

	if quantity == 0 {
		delete(cart.Lines, productID)
	} else {
		cart.Lines[productID] = quantity
	}

	if err := s.store.SaveCart(ctx, cartKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem is idempotent: removing an absent line is a no-op.
func (s *cartService) RemoveItem(ctx context.Context, cartKey string, productID uint) (*models.Cart, error) {
	cart, err := s.store.GetCart(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	if _, ok := cart.Lines[productID]; !ok {
		return cart, nil
	}

	delete(cart.Lines, productID)
	if err := s.store.SaveCart(ctx, cartKey, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (s *cartService) Clear(ctx context.Context, cartKey string) error {
	return s.store.DeleteCart(ctx, cartKey)
}

func (s *cartService) GetCart(ctx context.Context, cartKey string) (*models.Cart, error) {
	return s.store.GetCart(ctx, cartKey)
}

// GetSummary enriches each line with live catalog data. A line whose product
// has since been deleted or deactivated is rendered as unavailable and
// excluded from the totals rather than failing the whole summary.
func (s *cartService) GetSummary(ctx context.Context, cartKey string) (*models.CartSummary, error) {
	cart, err := s.store.GetCart(ctx, cartKey)
	if err != nil {
		return nil, err
	}

	productIDs := make([]uint, 0, len(cart.Lines))
	for id := range cart.Lines {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	// Each goroutine writes only its own index, so no locking is needed.
	lines := make([]models.CartLine, len(productIDs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)

	for idx, id := range productIDs {
		idx, id := idx, id
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			quantity := cart.Lines[id]
			product, err := s.productRepo.GetByID(id)
			if errors.Is(err, models.ErrProductNotFound) || (err == nil && !product.Available()) {
				lines[idx] = models.CartLine{ProductID: id, Quantity: quantity, Unavailable: true}
				return nil
			}
			if err != nil {
				return err
			}

			unit := product.EffectivePrice()
			lines[idx] = models.CartLine{
				ProductID: id,
				Name:      product.Name,
				ImageURL:  product.ImageURL,
				UnitPrice: unit,
				Quantity:  quantity,
				LineTotal: unit.Mul(decimal.NewFromInt(int64(quantity))),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &models.CartSummary{
		Lines:    lines,
		Subtotal: decimal.Zero,
	}
	for _, line := range lines {
		if line.Unavailable {
			continue
		}
		summary.ItemCount += line.Quantity
		summary.Subtotal = summary.Subtotal.Add(line.LineTotal)
	}
	summary.Shipping = s.pricing.ShippingCost(summary.Subtotal, "")
	summary.Tax = s.pricing.TaxAmount(summary.Subtotal)
	summary.Total = summary.Subtotal.Add(summary.Shipping).Add(summary.Tax)
	return summary, nil
}
