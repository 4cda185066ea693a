package services

import (
	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/pkg/auth"
	"github.com/epicurean/epicurean/pkg/logger"
)

// SignupParams is the registration form.
type SignupParams struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Phone    string `json:"phone" validate:"nullable,max=50"`
}

// AuthService handles signup, login, and profile reads against the
// identity store.
type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Signup registers a customer account and returns a session token.
func (s *AuthService) Signup(p SignupParams) (string, models.User, error) {
	if _, err := s.users.FindByEmail(p.Email); err == nil {
		return "", models.User{}, Validationf("an account with this email already exists")
	}

	hash, err := auth.HashPassword(p.Password)
	if err != nil {
		return "", models.User{}, Persistence("hash password", err)
	}

	user := models.User{
		Name:     p.Name,
		Email:    p.Email,
		Password: hash,
		Phone:    p.Phone,
		Role:     models.RoleCustomer,
	}
	if err := s.users.Create(&user); err != nil {
		return "", models.User{}, Persistence("create user", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	logger.Info("auth: signup", "user", user.ID)
	return token, user, nil
}

// Login verifies credentials and returns a session token.
func (s *AuthService) Login(email, password string) (string, models.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil || !auth.CheckPassword(user.Password, password) {
		return "", models.User{}, Validationf("invalid email or password")
	}

	token, err := auth.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", models.User{}, err
	}
	return token, user, nil
}

// Profile fetches the account backing a session.
func (s *AuthService) Profile(userID uint) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, Persistence("load profile", err)
	}
	return user, nil
}

// UpdateProfile saves the delivery pre-fill fields on the account.
func (s *AuthService) UpdateProfile(userID uint, phone, address, city, postalCode string) (models.User, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return models.User{}, Persistence("load profile", err)
	}
	user.Phone = phone
	user.Address = address
	user.City = city
	user.PostalCode = postalCode
	if err := s.users.Update(&user); err != nil {
		return models.User{}, Persistence("update profile", err)
	}
	return user, nil
}
