package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
)

func newTestRouter(jwtService *auth.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	router.GET("/me", RequireAuth(jwtService), func(c *gin.Context) {
		claims := GetClaims(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	router.GET("/admin", RequireAuth(jwtService), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	router.GET("/public", OptionalAuth(jwtService), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"authed": GetClaims(c) != nil})
	})
	return router
}

func doRequest(router *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRequireAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	router := newTestRouter(jwtService)

	t.Run("missing token", func(t *testing.T) {
		w := doRequest(router, "/me", "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := doRequest(router, "/me", "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(7, "jordan@example.com", "customer")
		require.NoError(t, err)
		w := doRequest(router, "/me", token)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	router := newTestRouter(jwtService)

	t.Run("customer forbidden", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(7, "jordan@example.com", "customer")
		require.NoError(t, err)
		w := doRequest(router, "/admin", token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin allowed", func(t *testing.T) {
		token, _, err := jwtService.GenerateToken(1, "admin@storefront.local", "admin")
		require.NoError(t, err)
		w := doRequest(router, "/admin", token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestOptionalAuth(t *testing.T) {
	jwtService := auth.NewJWTService("test-secret", time.Hour)
	router := newTestRouter(jwtService)

	w := doRequest(router, "/public", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":false`)

	token, _, err := jwtService.GenerateToken(7, "jordan@example.com", "customer")
	require.NoError(t, err)
	w = doRequest(router, "/public", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authed":true`)
}
