package services

import (
	"errors"

	"storefront/internal/auth"
	"storefront/internal/models"
	"storefront/internal/repository"
)

type UserService interface {
	Register(name, email, phone, password string) (*models.User, error)
	Authenticate(email, password string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	GetAllUsers() ([]models.User, error)
	UpdateUser(user *models.User) error
	DeactivateUser(id uint) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Register(name, email, phone, password string) (*models.User, error) {
	if _, err := s.userRepo.GetByEmail(email); err == nil {
		return nil, models.ErrEmailTaken
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: hash,
		Role:         string(models.RoleCustomer),
		IsActive:     true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) Authenticate(email, password string) (*models.User, error) {
	user, err := s.userRepo.GetByEmail(email)
	if errors.Is(err, models.ErrUserNotFound) {
		return nil, models.ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !auth.CheckPassword(password, user.PasswordHash) {
		return nil, models.ErrBadCredentials
	}
	return user, nil
}

func (s *userService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func (s *userService) GetAllUsers() ([]models.User, error) {
	return s.userRepo.GetAll()
}

func (s *userService) UpdateUser(user *models.User) error {
	return s.userRepo.Update(user)
}

func (s *userService) DeactivateUser(id uint) error {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	user.IsActive = false
	return s.userRepo.Update(user)
}
