package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/services"
)

type AuthHandler struct {
	userService services.UserService
	jwtService  *auth.JWTService
}

func NewAuthHandler(userService services.UserService, jwtService *auth.JWTService) *AuthHandler {
	return &AuthHandler{userService: userService, jwtService: jwtService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Phone    string `json:"phone"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	user, err := h.userService.Register(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooShort) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "user": user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request format"})
		return
	}

	user, err := h.userService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, expiresAt, err := h.jwtService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"token":      token,
		"expires_at": expiresAt,
		"user":       user,
	})
}
