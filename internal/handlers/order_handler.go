package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"
)

type OrderHandler struct {
	orderService services.OrderService
}

func NewOrderHandler(orderService services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

func (h *OrderHandler) Checkout(c *gin.Context) {
	key, ok := requireCartKey(c)
	if !ok {
		return
	}

	var payload services.CheckoutPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	var userID *uint
	if claims := middleware.GetClaims(c); claims != nil {
		id := claims.UserID
		userID = &id
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), key, userID, &payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "order": order})
}

// GetOrder looks an order up by its public order number. Guests may fetch
// their own order this way; an order owned by a user is only visible to that
// user or an admin.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orderService.GetOrderByNumber(c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	if order.UserID != nil {
		claims := middleware.GetClaims(c)
		if claims == nil || (claims.UserID != *order.UserID && claims.Role != string(models.RoleAdmin)) {
			respondError(c, models.ErrForbidden)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "order": order})
}

func (h *OrderHandler) GetMyOrders(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
		return
	}

	orders, err := h.orderService.GetOrdersByUser(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orders": orders})
}
