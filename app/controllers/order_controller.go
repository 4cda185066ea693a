package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/epicurean/epicurean/app/cart"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/bind"
	"github.com/epicurean/epicurean/pkg/kvstore"
	"github.com/epicurean/epicurean/pkg/response"
)

type OrderController struct {
	orders *services.OrderService
	users  *repositories.UserRepository
	kv     kvstore.Store
}

func NewOrderController(orders *services.OrderService, users *repositories.UserRepository, kv kvstore.Store) *OrderController {
	return &OrderController{orders: orders, users: users, kv: kv}
}

// Checkout converts the caller's cart into an order.
func (c *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var params services.CheckoutParams
	if errs, err := bind.JSON(r, &params); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	store := cart.Open(c.kv, cart.Key(actor.UserID))
	orderID, err := c.orders.CreateOrder(r.Context(), store, actor, params)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Created(w, map[string]string{
		"orderId": orderID,
		"message": "Order placed successfully!",
	})
}

// MyOrders lists the caller's orders, newest first.
func (c *OrderController) MyOrders(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orders, err := c.orders.MyOrders(r.Context(), actor)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, orders)
}

// Show returns one order. Customers may only read their own.
func (c *OrderController) Show(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}
	order, err := c.orders.GetOrder(r.Context(), actor, chi.URLParam(r, "id"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, order)
}

// All lists every order for the admin dashboard, optionally filtered by
// ?status=.
func (c *OrderController) All(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}
	orders, err := c.orders.AllOrders(r.Context(), actor, r.URL.Query().Get("status"))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, orders)
}

// TransitionStatus moves an order to a new fulfilment state. Admin only.
func (c *OrderController) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r, c.users)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var body struct {
		Status string `json:"status" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	} else if len(errs) > 0 {
		response.ValidationError(w, errs)
		return
	}

	if err := c.orders.TransitionStatus(r.Context(), chi.URLParam(r, "id"), body.Status, actor); err != nil {
		respondServiceError(w, err)
		return
	}
	response.Success(w, map[string]string{"status": body.Status})
}
