package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront/internal/models"
)

func respondTo(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/checkout", nil)
	respondError(c, err)
	return w
}

func TestRespondError_Mapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
	}{
		{"validation", &models.ValidationError{Fields: map[string]string{"price": "negative"}}, http.StatusUnprocessableEntity},
		{"insufficient stock", &models.InsufficientStockError{ProductID: 1, ProductName: "Widget", Requested: 2, Available: 1}, http.StatusBadRequest},
		{"unavailable product", &models.UnavailableProductError{ProductID: 1, ProductName: "Widget"}, http.StatusBadRequest},
		{"empty cart", models.ErrEmptyCart, http.StatusBadRequest},
		{"product lookup miss", models.ErrProductNotFound, http.StatusNotFound},
		{"order lookup miss", models.ErrOrderNotFound, http.StatusNotFound},
		{"bad credentials", models.ErrBadCredentials, http.StatusUnauthorized},
		{"forbidden", models.ErrForbidden, http.StatusForbidden},
		{"infrastructure", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := respondTo(t, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRespondError_UnavailableProductNamesIt(t *testing.T) {
	// A product that vanished from a cart line during checkout is a 400 that
	// tells the customer which line failed; only pure lookups stay 404.
	w := respondTo(t, &models.UnavailableProductError{ProductID: 3, ProductName: "Rare Gadget"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Rare Gadget")
}
