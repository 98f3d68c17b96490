package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/services"
)

type CatalogHandler struct {
	catalogService services.CatalogService
}

func NewCatalogHandler(catalogService services.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	products, err := h.catalogService.GetActiveProducts()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "products": products})
}

func (h *CatalogHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !product.Available() {
		respondError(c, models.ErrProductNotFound)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "product": product})
}
