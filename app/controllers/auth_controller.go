package controllers

import (
	"net/http"

	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/bind"
	"github.com/epicurean/epicurean/pkg/middleware"
	"github.com/epicurean/epicurean/pkg/response"
)

type AuthController struct {
	service *services.AuthService
	users   *repositories.UserRepository
}

func NewAuthController(service *services.AuthService, users *repositories.UserRepository) *AuthController {
	return &AuthController{service: service, users: users}
}

// Signup registers a customer account.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var params services.SignupParams
	if errs, err := bind.JSON(r, &params); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Signup(params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Created(w, map[string]interface{}{"token": token, "user": user})
}

// Login exchanges credentials for a session token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.service.Login(body.Email, body.Password)
	if err != nil {
		response.Error(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	response.Success(w, map[string]interface{}{"token": token, "user": user})
}

// Profile returns the authenticated account.
func (c *AuthController) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	user, err := c.service.Profile(userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, user)
}

// UpdateProfile saves the delivery pre-fill fields.
func (c *AuthController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Phone      string `json:"phone" validate:"nullable,max=50"`
		Address    string `json:"address" validate:"nullable,max=255"`
		City       string `json:"city" validate:"nullable,max=100"`
		PostalCode string `json:"postalCode" validate:"nullable,max=20"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	user, err := c.service.UpdateProfile(userID, body.Phone, body.Address, body.City, body.PostalCode)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, user)
}
