package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/middleware"
	"storefront/internal/services"
)

type CartHandler struct {
	cartService services.CartService
}

func NewCartHandler(cartService services.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// cartKey resolves the cart owner: the authenticated user when present,
// otherwise the anonymous session from the X-Session-ID header.
func cartKey(c *gin.Context) (string, bool) {
	if claims := middleware.GetClaims(c); claims != nil {
		return "user:" + strconv.FormatUint(uint64(claims.UserID), 10), true
	}
	if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
		return "session:" + sessionID, true
	}
	return "", false
}

func requireCartKey(c *gin.Context) (string, bool) {
	key, ok := cartKey(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "missing X-Session-ID header"})
	}
	return key, ok
}

func (h *CartHandler) GetCart(c *gin.Context) {
	key, ok := requireCartKey(c)
	if !ok {
		return
	}

	summary, err := h.cartService.GetSummary(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": summary})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	key, ok := requireCartKey(c)
	if !ok {
		return
	}

	var req struct {
		ProductID uint `json:"product_id" binding:"required"`
		Quantity  int  `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	cart, err := h.cartService.AddItem(c.Request.Context(), key, req.ProductID, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	key, ok := requireCartKey(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	cart, err := h.cartService.UpdateItem(c.Request.Context(), key, uint(productID), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	key, ok := requireCartKey(c)
	if !ok {
		return
	}

	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), key, uint(productID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "cart": cart})
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	key, ok := requireCartKey(c)
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "cart cleared"})
}
