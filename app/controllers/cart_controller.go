package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicurean/epicurean/app/cart"
	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/bind"
	"github.com/epicurean/epicurean/pkg/kvstore"
	"github.com/epicurean/epicurean/pkg/middleware"
	"github.com/epicurean/epicurean/pkg/response"
)

// sessionHeader carries a guest cart's identity before sign-in.
const sessionHeader = "X-Session-ID"

type CartController struct {
	kv      kvstore.Store
	catalog *services.CatalogService
}

func NewCartController(kv kvstore.Store, catalog *services.CatalogService) *CartController {
	return &CartController{kv: kv, catalog: catalog}
}

// open resolves the cart for this request: the user's cart when
// authenticated, the session cart otherwise.
func (c *CartController) open(r *http.Request) (*cart.Store, bool) {
	if userID, ok := middleware.UserIDFromCtx(r); ok {
		return cart.Open(c.kv, cart.Key(userID)), true
	}
	if sid := r.Header.Get(sessionHeader); sid != "" {
		return cart.Open(c.kv, cart.GuestKey(sid)), true
	}
	return nil, false
}

func cartPayload(s *cart.Store) map[string]interface{} {
	return map[string]interface{}{
		"items":     s.Lines(),
		"total":     s.Total(),
		"itemCount": s.ItemCount(),
	}
}

// Show returns the current cart contents.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	s, ok := c.open(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "sign in or supply a session id")
		return
	}
	response.Success(w, cartPayload(s))
}

// AddItem puts one unit of a menu item in the cart.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	s, ok := c.open(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "sign in or supply a session id")
		return
	}

	var body struct {
		ItemID string `json:"itemId" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	item, found := c.lookupItem(r, body.ItemID)
	if !found {
		response.NotFound(w)
		return
	}

	added, err := s.AddItem(item)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	payload := cartPayload(s)
	if added {
		payload["message"] = item.Name + " added to cart"
	} else {
		payload["message"] = item.Name + " quantity increased"
	}
	response.Success(w, payload)
}

// lookupItem finds a menu item through the catalog service, so items from
// the fallback catalog resolve the same way as live ones.
func (c *CartController) lookupItem(r *http.Request, itemID string) (models.MenuItem, bool) {
	catalog := c.catalog.ListItems(r.Context())
	for _, item := range catalog.Items {
		if item.ID == itemID && item.IsAvailable {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// UpdateItem replaces a line's quantity. Zero removes the line.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	s, ok := c.open(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "sign in or supply a session id")
		return
	}

	var body struct {
		Quantity *int `json:"quantity" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := s.SetQuantity(chi.URLParam(r, "itemId"), *body.Quantity); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, cartPayload(s))
}

// RemoveItem deletes a line from the cart.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s, ok := c.open(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "sign in or supply a session id")
		return
	}
	if err := s.RemoveItem(chi.URLParam(r, "itemId")); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, cartPayload(s))
}

// Clear empties the cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	s, ok := c.open(r)
	if !ok {
		response.Error(w, http.StatusBadRequest, "sign in or supply a session id")
		return
	}
	if err := s.Clear(); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, cartPayload(s))
}
