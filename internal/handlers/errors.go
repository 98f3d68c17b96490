package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
)

// respondError maps the error taxonomy onto HTTP: 422 for malformed input,
// 400 for business-rule failures, 404/403 for lookups and ownership, 500 for
// everything else (logged, never swallowed).
func respondError(c *gin.Context, err error) {
	var validationErr *models.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"success": false,
			"message": validationErr.Error(),
			"fields":  validationErr.Fields,
		})
		return
	}

	var stockErr *models.InsufficientStockError
	if errors.As(err, &stockErr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": stockErr.Error()})
		return
	}

	// A product that vanished from a cart line is a business-rule failure
	// naming the product, not a lookup miss.
	var unavailableErr *models.UnavailableProductError
	if errors.As(err, &unavailableErr) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": unavailableErr.Error()})
		return
	}

	switch {
	case errors.Is(err, models.ErrEmptyCart),
		errors.Is(err, models.ErrInvalidQuantity),
		errors.Is(err, models.ErrLineNotFound),
		errors.Is(err, models.ErrEmailTaken):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, models.ErrProductNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, models.ErrBadCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"success": false, "message": err.Error()})
	default:
		log.Printf("Internal error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "internal server error"})
	}
}
