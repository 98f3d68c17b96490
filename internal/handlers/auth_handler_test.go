package handlers

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"storefront/internal/auth"
	"storefront/internal/models"
)

type stubUserService struct {
	registerErr error
	user        *models.User
}

func (s *stubUserService) Register(name, email, phone, password string) (*models.User, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	return s.user, nil
}

func (s *stubUserService) Authenticate(email, password string) (*models.User, error) {
	return nil, models.ErrBadCredentials
}

func (s *stubUserService) GetUserByID(id uint) (*models.User, error) { return s.user, nil }
func (s *stubUserService) GetAllUsers() ([]models.User, error)       { return nil, nil }
func (s *stubUserService) UpdateUser(user *models.User) error        { return nil }
func (s *stubUserService) DeactivateUser(id uint) error              { return nil }

func newAuthTestRouter(users *stubUserService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(users, auth.NewJWTService("test-secret", time.Hour))
	router.POST("/auth/register", handler.Register)
	return router
}

func TestRegister_ShortPassword(t *testing.T) {
	// The sentinel may arrive wrapped from the service layer and must still be
	// recognized as a 400, not fall through to a 500.
	users := &stubUserService{registerErr: fmt.Errorf("hashing password: %w", auth.ErrPasswordTooShort)}
	router := newAuthTestRouter(users)

	w := doJSON(router, http.MethodPost, "/auth/register",
		`{"name":"Jordan","email":"jordan@example.com","password":"short"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "at least 8 characters")
}

func TestRegister_EmailTaken(t *testing.T) {
	users := &stubUserService{registerErr: models.ErrEmailTaken}
	router := newAuthTestRouter(users)

	w := doJSON(router, http.MethodPost, "/auth/register",
		`{"name":"Jordan","email":"jordan@example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "already registered")
}
