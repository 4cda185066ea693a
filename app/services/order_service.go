package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/pkg/event"
	"github.com/epicurean/epicurean/pkg/logger"
	"github.com/epicurean/epicurean/pkg/metrics"
)

// Domain events fired by the order lifecycle. The notification dispatcher
// and the confirmation email job subscribe to these.
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderStatusChanged is the payload of EventOrderStatusChanged.
type OrderStatusChanged struct {
	Order    models.Order
	Previous string
	Actor    models.Actor
}

// Delivery fees and estimates per delivery option. Unknown options get the
// standard values.
const (
	defaultDeliveryFee      = 2.99
	taxRate                 = 0.08
	defaultDeliveryEstimate = "30-45 minutes"
)

var deliveryFees = map[string]float64{
	"standard":  2.99,
	"express":   5.99,
	"scheduled": 2.99,
}

var deliveryEstimates = map[string]string{
	"standard":  "30-45 minutes",
	"express":   "15-25 minutes",
	"scheduled": "At selected time",
}

// Cart is the slice of the cart store the order lifecycle needs at
// checkout.
type Cart interface {
	Lines() []models.CartLine
	Total() float64
	Clear() error
}

// Dispatcher delivers best-effort user-facing alerts. Every method is
// fire-and-forget; failures never propagate into the ordering flow.
type Dispatcher interface {
	RequestPermission(actor models.Actor) bool
	Notify(kind string, payload interface{})
	PlayAlertSound()
}

// CheckoutParams carries the checkout form fields into CreateOrder.
type CheckoutParams struct {
	DeliveryOption       string `json:"deliveryOption"`
	PaymentMethod        string `json:"paymentMethod" validate:"required"`
	DeliveryAddress      string `json:"deliveryAddress" validate:"required"`
	City                 string `json:"city" validate:"required"`
	PostalCode           string `json:"postalCode" validate:"required"`
	DeliveryInstructions string `json:"deliveryInstructions" validate:"nullable"`
	EstimatedDelivery    string `json:"estimatedDelivery" validate:"nullable"`
}

func nowUTC() time.Time { return time.Now().UTC() }

// OrderStore is the persistence surface the order lifecycle needs.
// Implemented by repositories.OrderRepository.
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (string, error)
	UpdateStatus(ctx context.Context, orderID, status string) error
	FindByID(ctx context.Context, orderID string) (models.Order, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error)
	ListAll(ctx context.Context, status string) ([]models.Order, error)
	Subscribe(ctx context.Context, scope repositories.FeedScope) *repositories.Feed
}

// OrderService owns the cart-to-order conversion and the status lifecycle.
type OrderService struct {
	orders     OrderStore
	dispatcher Dispatcher // optional
}

func NewOrderService(orders OrderStore, dispatcher Dispatcher) *OrderService {
	return &OrderService{orders: orders, dispatcher: dispatcher}
}

// CreateOrder freezes the cart into an order, derives the monetary fields,
// persists it, and only then clears the cart. On repository failure the
// cart is left untouched and a PersistenceError surfaces.
func (s *OrderService) CreateOrder(ctx context.Context, c Cart, actor models.Actor, p CheckoutParams) (string, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return "", Validationf("cart is empty")
	}
	if !actor.IsCustomer() {
		return "", Validationf("checkout requires an authenticated customer")
	}

	subtotal := c.Total()
	fee, ok := deliveryFees[p.DeliveryOption]
	if !ok {
		fee = defaultDeliveryFee
	}
	tax := subtotal * taxRate

	estimate := p.EstimatedDelivery
	if estimate == "" {
		estimate = deliveryEstimates[p.DeliveryOption]
	}
	if estimate == "" {
		estimate = defaultDeliveryEstimate
	}

	paymentStatus := "pending"
	if p.PaymentMethod == "card" {
		paymentStatus = "paid"
	}

	now := nowUTC()
	order := models.Order{
		CustomerID:           actor.UserID,
		CustomerName:         actor.Name,
		CustomerEmail:        actor.Email,
		CustomerPhone:        actor.Phone,
		Items:                lines,
		Subtotal:             subtotal,
		DeliveryFee:          fee,
		Tax:                  tax,
		Total:                subtotal + fee + tax,
		Status:               models.StatusPending,
		PaymentStatus:        paymentStatus,
		PaymentMethod:        p.PaymentMethod,
		DeliveryAddress:      p.DeliveryAddress,
		City:                 p.City,
		PostalCode:           p.PostalCode,
		DeliveryInstructions: p.DeliveryInstructions,
		EstimatedDelivery:    estimate,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	orderID, err := s.orders.Create(ctx, &order)
	if err != nil {
		return "", Persistence("create order", err)
	}

	// The order is durable; the cart clear is best-effort from here.
	if err := c.Clear(); err != nil {
		logger.Warn("orders: cart clear after checkout failed", "order", orderID, "error", err)
	}

	if s.dispatcher != nil {
		s.dispatcher.RequestPermission(actor)
	}

	option := p.DeliveryOption
	if _, ok := deliveryFees[option]; !ok {
		option = "standard"
	}
	metrics.OrdersCreated.WithLabelValues(option).Inc()
	event.FireAsync(EventOrderCreated, order)

	logger.Info("orders: created",
		"order", orderID, "customer", actor.UserID, "total", order.Total)
	return orderID, nil
}

// TransitionStatus sets an order's status. Admin only; any known status
// value is accepted, including moving backward. Progression is not
// enforced.
func (s *OrderService) TransitionStatus(ctx context.Context, orderID, status string, actor models.Actor) error {
	if !actor.IsAdmin() {
		return Authorizationf("only admins transition order status")
	}
	if !models.KnownStatus(status) {
		return Validationf("unknown order status %q", status)
	}

	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Validationf("order %s not found", orderID)
		}
		return Persistence("load order", err)
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return Persistence("update order status", err)
	}

	previous := order.Status
	order.Status = status
	order.UpdatedAt = nowUTC()

	metrics.OrderStatusTransitions.WithLabelValues(status).Inc()
	event.FireAsync(EventOrderStatusChanged, OrderStatusChanged{
		Order:    order,
		Previous: previous,
		Actor:    actor,
	})

	logger.Info("orders: status transition",
		"order", orderID, "from", previous, "to", status, "by", actor.UserID)
	return nil
}

// MyOrders lists the actor's own orders, newest first.
func (s *OrderService) MyOrders(ctx context.Context, actor models.Actor) ([]models.Order, error) {
	if actor.Anonymous() {
		return nil, Validationf("sign in to view orders")
	}
	orders, err := s.orders.ListByCustomer(ctx, actor.UserID)
	if err != nil {
		return nil, Persistence("list orders", err)
	}
	return orders, nil
}

// AllOrders lists every order for the admin dashboard, optionally filtered
// by status.
func (s *OrderService) AllOrders(ctx context.Context, actor models.Actor, status string) ([]models.Order, error) {
	if !actor.IsAdmin() {
		return nil, Authorizationf("only admins list all orders")
	}
	if status != "" && !models.KnownStatus(status) {
		return nil, Validationf("unknown order status %q", status)
	}
	orders, err := s.orders.ListAll(ctx, status)
	if err != nil {
		return nil, Persistence("list orders", err)
	}
	return orders, nil
}

// GetOrder fetches one order; customers may only read their own.
func (s *OrderService) GetOrder(ctx context.Context, actor models.Actor, orderID string) (models.Order, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Order{}, Validationf("order %s not found", orderID)
		}
		return models.Order{}, Persistence("load order", err)
	}
	if !actor.IsAdmin() && order.CustomerID != actor.UserID {
		return models.Order{}, Authorizationf("not your order")
	}
	return order, nil
}
