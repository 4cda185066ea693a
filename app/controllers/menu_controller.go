package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/bind"
	"github.com/epicurean/epicurean/pkg/response"
)

type MenuController struct {
	catalog *services.CatalogService
	users   *repositories.UserRepository
}

func NewMenuController(catalog *services.CatalogService, users *repositories.UserRepository) *MenuController {
	return &MenuController{catalog: catalog, users: users}
}

// List serves the catalog. The usingFallback flag tells clients they are
// looking at demo data.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	response.Success(w, c.catalog.ListItems(r.Context()))
}

type menuItemBody struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description" validate:"nullable,max=1000"`
	Price        float64 `json:"price" validate:"required,numeric,gte=0"`
	Category     string  `json:"category" validate:"required,in=starters,mains,desserts,drinks"`
	Image        string  `json:"image" validate:"nullable"`
	IsVegetarian bool    `json:"isVegetarian"`
	IsSpicy      bool    `json:"isSpicy"`
	IsAvailable  bool    `json:"isAvailable"`
}

func (b menuItemBody) toModel(id string) models.MenuItem {
	return models.MenuItem{
		ID:           id,
		Name:         b.Name,
		Description:  b.Description,
		Price:        b.Price,
		Category:     b.Category,
		Image:        b.Image,
		IsVegetarian: b.IsVegetarian,
		IsSpicy:      b.IsSpicy,
		IsAvailable:  b.IsAvailable,
	}
}

// Create adds a menu item. Admin only.
func (c *MenuController) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body menuItemBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item := body.toModel("")
	if err := c.catalog.CreateItem(r.Context(), actor, &item); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Created(w, item)
}

// Update replaces a menu item. Admin only.
func (c *MenuController) Update(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body menuItemBody
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item := body.toModel(chi.URLParam(r, "id"))
	if err := c.catalog.UpdateItem(r.Context(), actor, item); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, item)
}

// Delete removes a menu item. Admin only.
func (c *MenuController) Delete(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}
	if err := c.catalog.DeleteItem(r.Context(), actor, chi.URLParam(r, "id")); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, nil)
}
