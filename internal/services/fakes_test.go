package services

import (
	"context"
	"sync"
	"time"

	"storefront/internal/models"
)

// In-memory doubles for the cart store, catalog and order persistence. The
// product table is shared between the product and order fakes so the order
// fake can reproduce the storage layer's all-or-nothing decrement semantics.

type fakeCartStore struct {
	mu      sync.Mutex
	carts   map[string]*models.Cart
	deleted []string
	getErr  error
	saveErr error
	delErr  error
}

func newFakeCartStore() *fakeCartStore {
	return &fakeCartStore{carts: map[string]*models.Cart{}}
}

func copyCart(cart *models.Cart) *models.Cart {
	out := models.NewCart()
	for id, qty := range cart.Lines {
		out.Lines[id] = qty
	}
	return out
}

func (s *fakeCartStore) GetCart(ctx context.Context, key string) (*models.Cart, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	cart, ok := s.carts[key]
	if !ok {
		return models.NewCart(), nil
	}
	return copyCart(cart), nil
}

func (s *fakeCartStore) SaveCart(ctx context.Context, key string, cart *models.Cart) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[key] = copyCart(cart)
	return nil
}

func (s *fakeCartStore) DeleteCart(ctx context.Context, key string) error {
	if s.delErr != nil {
		return s.delErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, key)
	s.deleted = append(s.deleted, key)
	return nil
}

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[uint]*models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint]*models.Product{}}
}

func (r *fakeProductRepo) put(product *models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product.Normalize()
	clone := *product
	r.products[product.ID] = &clone
}

func (r *fakeProductRepo) Create(product *models.Product) error {
	r.put(product)
	return nil
}

func (r *fakeProductRepo) GetByID(id uint) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	product, ok := r.products[id]
	if !ok {
		return nil, models.ErrProductNotFound
	}
	clone := *product
	return &clone, nil
}

func (r *fakeProductRepo) GetBySlug(slug string) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, product := range r.products {
		if product.Slug == slug {
			clone := *product
			return &clone, nil
		}
	}
	return nil, models.ErrProductNotFound
}

func (r *fakeProductRepo) GetAll() ([]models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Product
	for _, product := range r.products {
		out = append(out, *product)
	}
	return out, nil
}

func (r *fakeProductRepo) GetActive() ([]models.Product, error) {
	all, _ := r.GetAll()
	var out []models.Product
	for _, product := range all {
		if product.IsActive {
			out = append(out, product)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) Update(product *models.Product) error {
	r.put(product)
	return nil
}

func (r *fakeProductRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) SlugExists(slug string) (bool, error) {
	_, err := r.GetBySlug(slug)
	return err == nil, nil
}

type fakeOrderRepo struct {
	mu       sync.Mutex
	products *fakeProductRepo
	orders   []*models.Order
	history  []models.OrderStatusHistory
	nextID   uint
}

func newFakeOrderRepo(products *fakeProductRepo) *fakeOrderRepo {
	return &fakeOrderRepo{products: products, nextID: 1}
}

func (r *fakeOrderRepo) CreateWithStockDecrement(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products.mu.Lock()
	defer r.products.mu.Unlock()

	// Check every line before touching anything: a failed line must leave no
	// partial decrement behind, matching the real transaction's rollback.
	for _, item := range order.Items {
		if item.ProductID == nil {
			continue
		}
		product, ok := r.products.products[*item.ProductID]
		if !ok {
			return &models.UnavailableProductError{ProductID: *item.ProductID}
		}
		if product.StockQuantity < item.Quantity {
			return &models.InsufficientStockError{
				ProductID:   *item.ProductID,
				ProductName: product.Name,
				Requested:   item.Quantity,
				Available:   product.StockQuantity,
			}
		}
	}
	for _, item := range order.Items {
		if item.ProductID == nil {
			continue
		}
		product := r.products.products[*item.ProductID]
		product.StockQuantity -= item.Quantity
		product.StockStatus = string(models.ComputeStockStatus(product.StockQuantity))
	}

	order.ID = r.nextID
	r.nextID++
	order.CreatedAt = time.Now()
	for i := range order.Items {
		order.Items[i].OrderID = order.ID
	}
	r.orders = append(r.orders, order)
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (r *fakeOrderRepo) GetByOrderNumber(orderNumber string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.OrderNumber == orderNumber {
			return order, nil
		}
	}
	return nil, models.ErrOrderNotFound
}

func (r *fakeOrderRepo) GetByUserID(userID uint) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, order := range r.orders {
		if order.UserID != nil && *order.UserID == userID {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetByDateRange(startDate, endDate time.Time) ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, order := range r.orders {
		if !order.CreatedAt.Before(startDate) && !order.CreatedAt.After(endDate) {
			out = append(out, *order)
		}
	}
	return out, nil
}

func (r *fakeOrderRepo) GetAll() ([]models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Order
	for _, order := range r.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (r *fakeOrderRepo) UpdateStatusWithHistory(order *models.Order, newStatus, comment string, changedBy *uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append(r.history, models.OrderStatusHistory{
		OrderID:   order.ID,
		OldStatus: order.Status,
		NewStatus: newStatus,
		Comment:   comment,
		ChangedBy: changedBy,
		CreatedAt: time.Now(),
	})
	order.Status = newStatus
	return nil
}

func (r *fakeOrderRepo) UpdatePaymentStatus(order *models.Order, newStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	order.PaymentStatus = newStatus
	return nil
}

// GetByOrderID lets the fake double as the history repository.
func (r *fakeOrderRepo) GetByOrderID(orderID uint) ([]models.OrderStatusHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.OrderStatusHistory
	for _, row := range r.history {
		if row.OrderID == orderID {
			out = append(out, row)
		}
	}
	return out, nil
}

type statusNotification struct {
	orderNumber string
	oldStatus   string
	newStatus   string
}

type fakeNotificationService struct {
	mu      sync.Mutex
	created []string
	status  []statusNotification
	err     error
}

func (n *fakeNotificationService) NotifyOrderCreated(order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.created = append(n.created, order.OrderNumber)
	return nil
}

func (n *fakeNotificationService) NotifyOrderStatus(order *models.Order, oldStatus string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.status = append(n.status, statusNotification{
		orderNumber: order.OrderNumber,
		oldStatus:   oldStatus,
		newStatus:   order.Status,
	})
	return nil
}
