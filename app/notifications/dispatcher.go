// Package notifications delivers best-effort user-facing alerts.
//
// The Dispatcher pushes JSON messages over the WebSocket hub: desktop-style
// notifications and sound cues to admins, order updates to the owning
// customer, toasts to whoever acted. Subscribe wires the dispatcher to the
// order lifecycle events and queues the confirmation email. Everything
// here is fire-and-forget; a failed delivery never reaches the ordering
// flow.
package notifications

import (
	"encoding/json"
	"fmt"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/event"
	"github.com/epicurean/epicurean/pkg/logger"
	"github.com/epicurean/epicurean/pkg/queue"
	"github.com/epicurean/epicurean/pkg/ws"
)

// Hub is the process-wide notification hub. The server bootstrap runs it
// and the stream controller upgrades connections into it.
var Hub = ws.NewHub()

// message is the wire shape pushed to browsers.
type message struct {
	Type    string      `json:"type"`
	Title   string      `json:"title,omitempty"`
	Body    string      `json:"body,omitempty"`
	Message string      `json:"message,omitempty"`
	Order   interface{} `json:"order,omitempty"`
	Sticky  bool        `json:"sticky,omitempty"`
}

// Dispatcher implements the alert surface consumed by the order lifecycle.
type Dispatcher struct {
	hub *ws.Hub
}

func NewDispatcher(hub *ws.Hub) *Dispatcher {
	return &Dispatcher{hub: hub}
}

// RequestPermission nudges the actor's browser to ask for notification
// permission. The browser answers asynchronously, so the return value only
// reports that the nudge was sent.
func (d *Dispatcher) RequestPermission(actor models.Actor) bool {
	if actor.Anonymous() {
		return false
	}
	d.toUser(actor.UserID, message{Type: "permission_request"})
	return true
}

// Notify routes an alert by kind. "new_order" and "toast" go to admins;
// "order_update" goes to the order's customer.
func (d *Dispatcher) Notify(kind string, payload interface{}) {
	switch kind {
	case "new_order":
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		d.toRole(models.RoleAdmin, message{
			Type:   "notification",
			Title:  "🍽️ New Order Received!",
			Body:   fmt.Sprintf("Order #%s from %s - $%.2f", shortID(order.ID), order.CustomerName, order.Total),
			Order:  order,
			Sticky: true,
		})
	case "order_update":
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		d.toUser(order.CustomerID, message{
			Type:  "notification",
			Title: "📦 Order Update",
			Body:  fmt.Sprintf("Your order #%s is now %s", shortID(order.ID), models.StatusPhrase(order.Status)),
			Order: order,
		})
	case "toast":
		text, ok := payload.(string)
		if !ok {
			return
		}
		d.toRole(models.RoleAdmin, message{Type: "toast", Message: text})
	default:
		logger.Debug("notifications: unknown kind", "kind", kind)
	}
}

// PlayAlertSound cues the short audible alert on admin dashboards.
func (d *Dispatcher) PlayAlertSound() {
	d.toRole(models.RoleAdmin, message{Type: "sound"})
}

func (d *Dispatcher) toRole(role string, m message) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	d.hub.SendToRole(role, data)
}

func (d *Dispatcher) toUser(userID uint, m message) {
	data, err := json.Marshal(m)
	if err != nil {
		return
	}
	d.hub.SendToUser(userID, data)
}

// shortID trims an order id to its last 8 characters for display.
func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[len(id)-8:]
}

// Subscribe hooks the dispatcher into the order lifecycle events and
// registers the email job. Call once at boot, after the hub is running.
func Subscribe(d *Dispatcher) {
	queue.Register("notifications.ConfirmationEmailJob", func() queue.Job {
		return &ConfirmationEmailJob{}
	})

	event.Listen(services.EventOrderCreated, func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}
		if err := queue.Dispatch(ConfirmationEmailJob{Order: order}); err != nil {
			logger.Warn("notifications: queue confirmation email", "error", err)
		}
	})

	event.Listen(services.EventOrderStatusChanged, func(payload interface{}) {
		change, ok := payload.(services.OrderStatusChanged)
		if !ok {
			return
		}
		d.Notify("order_update", change.Order)
		d.toUser(change.Actor.UserID, message{
			Type:    "toast",
			Message: fmt.Sprintf("Order status updated to %s", models.StatusPhrase(change.Order.Status)),
		})
	})
}
