// Package controllers holds the HTTP handlers. Controllers decode and
// validate requests, resolve the acting identity, call into services, and
// translate service errors onto the response envelope.
package controllers

import (
	"errors"
	"net/http"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/middleware"
	"github.com/epicurean/epicurean/pkg/response"
)

// actorFrom resolves the full acting identity for an authenticated
// request. The token carries only id and role; profile fields come from
// the identity store.
func actorFrom(r *http.Request, users *repositories.UserRepository) (models.Actor, bool) {
	userID, ok := middleware.UserIDFromCtx(r)
	if !ok {
		return models.Actor{}, false
	}
	user, err := users.FindByID(userID)
	if err != nil {
		return models.Actor{}, false
	}
	return user.Actor(), true
}

// respondServiceError maps the service error taxonomy onto HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	var (
		validation *services.ValidationError
		authz      *services.AuthorizationError
		persist    *services.PersistenceError
	)
	switch {
	case errors.As(err, &validation):
		response.Error(w, http.StatusBadRequest, validation.Msg)
	case errors.As(err, &authz):
		response.Error(w, http.StatusForbidden, authz.Msg)
	case errors.As(err, &persist):
		response.Error(w, http.StatusInternalServerError, "something went wrong, please try again")
	default:
		response.Error(w, http.StatusInternalServerError, "internal server error")
	}
}
