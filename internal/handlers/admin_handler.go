package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
)

type AdminHandler struct {
	catalogService services.CatalogService
	orderService   services.OrderService
}

func NewAdminHandler(catalogService services.CatalogService, orderService services.OrderService) *AdminHandler {
	return &AdminHandler{catalogService: catalogService, orderService: orderService}
}

type productRequest struct {
	Name          string   `json:"name" binding:"required"`
	SKU           string   `json:"sku"`
	Description   string   `json:"description"`
	ImageURL      string   `json:"image_url"`
	Price         float64  `json:"price" binding:"required"`
	DiscountPrice *float64 `json:"discount_price"`
	StockQuantity int      `json:"stock_quantity"`
	IsActive      *bool    `json:"is_active"`
}

func (r *productRequest) validate() error {
	fields := map[string]string{}
	if r.Price < 0 {
		fields["price"] = "price must not be negative"
	}
	if r.DiscountPrice != nil && *r.DiscountPrice < 0 {
		fields["discount_price"] = "discount price must not be negative"
	}
	if r.StockQuantity < 0 {
		fields["stock_quantity"] = "stock quantity must not be negative"
	}
	if len(fields) > 0 {
		return &models.ValidationError{Fields: fields}
	}
	return nil
}

func (r *productRequest) apply(product *models.Product) {
	product.Name = r.Name
	product.SKU = r.SKU
	product.Description = r.Description
	product.ImageURL = r.ImageURL
	product.Price = decimal.NewFromFloat(r.Price)
	if r.DiscountPrice != nil {
		dp := decimal.NewFromFloat(*r.DiscountPrice)
		product.DiscountPrice = &dp
	} else {
		product.DiscountPrice = nil
	}
	product.StockQuantity = r.StockQuantity
	if r.IsActive != nil {
		product.IsActive = *r.IsActive
	}
}

func (h *AdminHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.GetAllProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err)
		return
	}

	product := &models.Product{IsActive: true}
	req.apply(product)
	if err := h.catalogService.CreateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "product": product})
}

func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	product, err := h.catalogService.GetProductByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}
	if err := req.validate(); err != nil {
		respondError(c, err)
		return
	}

	req.apply(product)
	if err := h.catalogService.UpdateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}

func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	if err := h.catalogService.DeleteProduct(uint(id)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "product deleted"})
}

func (h *AdminHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.GetAllOrders()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}

func (h *AdminHandler) GetOrder(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	order, err := h.orderService.GetOrderByID(uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	history, err := h.orderService.GetStatusHistory(order.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	order.StatusHistory = history
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req struct {
		Status  string `json:"status" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	var changedBy *uint
	if claims := middleware.GetClaims(c); claims != nil {
		adminID := claims.UserID
		changedBy = &adminID
	}

	order, err := h.orderService.UpdateStatus(uint(id), req.Status, req.Comment, changedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *AdminHandler) UpdatePaymentStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid order id"})
		return
	}

	var req struct {
		PaymentStatus string `json:"payment_status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	order, err := h.orderService.UpdatePaymentStatus(uint(id), req.PaymentStatus)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}
