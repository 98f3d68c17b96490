package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/mail"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"storefront/internal/models"
	"storefront/internal/repository"
)

// CheckoutPayload is the customer/shipping input to order creation.
type CheckoutPayload struct {
	CustomerName         string `json:"customer_name"`
	CustomerEmail        string `json:"customer_email"`
	CustomerPhone        string `json:"customer_phone"`
	ShippingAddress      string `json:"shipping_address"`
	ShippingCity         string `json:"shipping_city"`
	ShippingPostalCode   string `json:"shipping_postal_code"`
	ShippingRegion       string `json:"shipping_region"`
	ShippingNeighborhood string `json:"shipping_neighborhood"`
	PaymentMethod        string `json:"payment_method"`
	Notes                string `json:"notes"`
}

type OrderService interface {
	CreateOrder(ctx context.Context, cartKey string, userID *uint, payload *CheckoutPayload) (*models.Order, error)
	GetOrderByID(id uint) (*models.Order, error)
	GetOrderByNumber(orderNumber string) (*models.Order, error)
	GetOrdersByUser(userID uint) ([]models.Order, error)
	GetAllOrders() ([]models.Order, error)
	GetStatusHistory(orderID uint) ([]models.OrderStatusHistory, error)
	UpdateStatus(orderID uint, newStatus, comment string, changedBy *uint) (*models.Order, error)
	UpdatePaymentStatus(orderID uint, newStatus string) (*models.Order, error)
}

type orderService struct {
	orderRepo     repository.OrderRepository
	productRepo   repository.ProductRepository
	historyRepo   repository.StatusHistoryRepository
	cartStore     CartStore
	pricing       PricingPolicy
	notifications NotificationService
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.StatusHistoryRepository,
	cartStore CartStore,
	pricing PricingPolicy,
	notifications NotificationService,
) OrderService {
	return &orderService{
		orderRepo:     orderRepo,
		productRepo:   productRepo,
		historyRepo:   historyRepo,
		cartStore:     cartStore,
		pricing:       pricing,
		notifications: notifications,
	}
}

// CreateOrder turns the cart under cartKey into an immutable order.
//
// Every check runs before any database write: payload validation, the
// empty-cart check, then a fresh fetch of each product to verify it is still
// active and has enough stock. Unit prices are snapshotted from the product's
// effective price at this moment, not from anything cached in the cart. The
// order, its items and the stock decrements then commit as one transaction;
// a concurrent depletion rolls everything back and surfaces the offending
// product. Only after a successful commit does the cart get cleared and the
// confirmation notification go out, and neither failure undoes the order.
func (s *orderService) CreateOrder(ctx context.Context, cartKey string, userID *uint, payload *CheckoutPayload) (*models.Order, error) {
	if err := payload.validate(); err != nil {
		return nil, err
	}

	cart, err := s.cartStore.GetCart(ctx, cartKey)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		return nil, models.ErrEmptyCart
	}

	productIDs := make([]uint, 0, len(cart.Lines))
	for id := range cart.Lines {
		productIDs = append(productIDs, id)
	}
	sort.Slice(productIDs, func(i, j int) bool { return productIDs[i] < productIDs[j] })

	subtotal := decimal.Zero
	items := make([]models.OrderItem, 0, len(productIDs))
	for _, id := range productIDs {
		quantity := cart.Lines[id]

		product, err := s.productRepo.GetByID(id)
		if errors.Is(err, models.ErrProductNotFound) {
			return nil, &models.UnavailableProductError{ProductID: id}
		}
		if err != nil {
			return nil, err
		}
		if !product.Available() {
			return nil, &models.UnavailableProductError{ProductID: product.ID, ProductName: product.Name}
		}
		if quantity > product.StockQuantity {
			return nil, &models.InsufficientStockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   quantity,
				Available:   product.StockQuantity,
			}
		}

		unitPrice := product.EffectivePrice()
		lineSubtotal := unitPrice.Mul(decimal.NewFromInt(int64(quantity)))
		productID := product.ID
		items = append(items, models.OrderItem{
			ProductID:   &productID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    quantity,
			Price:       unitPrice,
			Subtotal:    lineSubtotal,
		})
		subtotal = subtotal.Add(lineSubtotal)
	}

	shipping := s.pricing.ShippingCost(subtotal, payload.ShippingCity)
	tax := s.pricing.TaxAmount(subtotal)
	discount := decimal.Zero
	total := subtotal.Add(shipping).Add(tax).Sub(discount)

	order := &models.Order{
		OrderNumber:          GenerateOrderNumber(),
		UserID:               userID,
		Status:               string(models.OrderPending),
		PaymentStatus:        string(models.PaymentPending),
		PaymentMethod:        payload.PaymentMethod,
		Subtotal:             subtotal,
		Tax:                  tax,
		ShippingCost:         shipping,
		Discount:             discount,
		Total:                total,
		CustomerName:         payload.CustomerName,
		CustomerEmail:        payload.CustomerEmail,
		CustomerPhone:        payload.CustomerPhone,
		ShippingAddress:      payload.ShippingAddress,
		ShippingCity:         payload.ShippingCity,
		ShippingPostalCode:   payload.ShippingPostalCode,
		ShippingRegion:       payload.ShippingRegion,
		ShippingNeighborhood: payload.ShippingNeighborhood,
		Notes:                payload.Notes,
		Items:                items,
	}

	if err := s.orderRepo.CreateWithStockDecrement(order); err != nil {
		return nil, err
	}

	// Post-commit side effects: non-fatal, the order stands either way.
	if err := s.cartStore.DeleteCart(ctx, cartKey); err != nil {
		log.Printf("Warning: failed to clear cart %s after order %s: %v", cartKey, order.OrderNumber, err)
	}
	if err := s.notifications.NotifyOrderCreated(order); err != nil {
		log.Printf("Warning: failed to send confirmation for order %s: %v", order.OrderNumber, err)
	}

	return order, nil
}

func (s *orderService) GetOrderByID(id uint) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

func (s *orderService) GetOrderByNumber(orderNumber string) (*models.Order, error) {
	return s.orderRepo.GetByOrderNumber(orderNumber)
}

func (s *orderService) GetOrdersByUser(userID uint) ([]models.Order, error) {
	return s.orderRepo.GetByUserID(userID)
}

func (s *orderService) GetAllOrders() ([]models.Order, error) {
	return s.orderRepo.GetAll()
}

func (s *orderService) GetStatusHistory(orderID uint) ([]models.OrderStatusHistory, error) {
	return s.historyRepo.GetByOrderID(orderID)
}

// UpdateStatus accepts any transition between known statuses. Forward-only
// progression is deliberately not enforced: admins sometimes have to revert a
// shipment, and the audit row records every change either way.
func (s *orderService) UpdateStatus(orderID uint, newStatus, comment string, changedBy *uint) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, &models.ValidationError{Fields: map[string]string{"status": "unknown order status: " + newStatus}}
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	oldStatus := order.Status

	if err := s.orderRepo.UpdateStatusWithHistory(order, newStatus, comment, changedBy); err != nil {
		return nil, err
	}

	if order.UserID != nil {
		if err := s.notifications.NotifyOrderStatus(order, oldStatus); err != nil {
			log.Printf("Warning: failed to send status notification for order %s: %v", order.OrderNumber, err)
		}
	}

	return order, nil
}

// UpdatePaymentStatus drives the payment machine independently of the order
// status; no rule links the two. Unlike the permissive order machine, the
// payment arrows are enforced: pending moves to paid or failed, and only a
// paid order can be refunded.
func (s *orderService) UpdatePaymentStatus(orderID uint, newStatus string) (*models.Order, error) {
	if !models.ValidPaymentStatus(newStatus) {
		return nil, &models.ValidationError{Fields: map[string]string{"payment_status": "unknown payment status: " + newStatus}}
	}

	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		return nil, err
	}
	if !models.ValidPaymentTransition(order.PaymentStatus, newStatus) {
		return nil, &models.ValidationError{Fields: map[string]string{
			"payment_status": fmt.Sprintf("cannot move payment status from %s to %s", order.PaymentStatus, newStatus),
		}}
	}

	if err := s.orderRepo.UpdatePaymentStatus(order, newStatus); err != nil {
		return nil, err
	}
	return order, nil
}

// GenerateOrderNumber builds a customer-safe order number that is independent
// of the primary key: a UTC timestamp for readability plus a random suffix so
// two orders in the same millisecond still differ.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "ORD-" + time.Now().UTC().Format("20060102150405") + "-" + suffix
}

func (p *CheckoutPayload) validate() error {
	fields := map[string]string{}
	if strings.TrimSpace(p.CustomerName) == "" {
		fields["customer_name"] = "customer name is required"
	}
	if strings.TrimSpace(p.CustomerEmail) == "" {
		fields["customer_email"] = "customer email is required"
	} else if _, err := mail.ParseAddress(p.CustomerEmail); err != nil {
		fields["customer_email"] = "customer email is not a valid address"
	}
	if strings.TrimSpace(p.ShippingAddress) == "" {
		fields["shipping_address"] = "shipping address is required"
	}
	if strings.TrimSpace(p.ShippingCity) == "" {
		fields["shipping_city"] = "shipping city is required"
	}
	if strings.TrimSpace(p.PaymentMethod) == "" {
		fields["payment_method"] = "payment method is required"
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}
