package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
)

const ClaimsContextKey = "claims"

// ExtractToken pulls the bearer token from the Authorization header.
func ExtractToken(c *gin.Context) string {
	if authHeader := c.GetHeader("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return ""
}

// RequireAuth rejects requests without a valid access token and puts the
// claims on the request context.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			return
		}

		claims, err := jwtService.ValidateToken(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": err.Error()})
			return
		}

		c.Set(ClaimsContextKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Used on storefront routes where guests and
// logged-in customers share the same endpoints.
func OptionalAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := ExtractToken(c); tokenString != "" {
			if claims, err := jwtService.ValidateToken(tokenString); err == nil {
				c.Set(ClaimsContextKey, claims)
			}
		}
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "authentication required"})
			return
		}
		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"success": false, "message": "insufficient permissions"})
	}
}

// GetClaims returns the authenticated claims, or nil for anonymous requests.
func GetClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(ClaimsContextKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
