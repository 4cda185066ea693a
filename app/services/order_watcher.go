package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/pkg/metrics"
)

// OrderWatcher owns a live subscription to the order feed for one actor.
// Admins watch every order; customers watch their own. On each feed
// delivery it diffs the order id set against the previously observed set
// and raises alerts for newly arrived pending orders.
//
// Start replaces any live subscription, so callers re-Start the watcher
// whenever the scoping actor changes. A stopped subscription never
// delivers again.
type OrderWatcher struct {
	repo       OrderStore
	dispatcher Dispatcher

	mu   sync.Mutex
	feed *repositories.Feed
}

func NewOrderWatcher(repo OrderStore, dispatcher Dispatcher) *OrderWatcher {
	return &OrderWatcher{repo: repo, dispatcher: dispatcher}
}

// Start opens the feed scoped to actor, tearing down any previous
// subscription first.
func (w *OrderWatcher) Start(ctx context.Context, actor models.Actor) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()

	scope := repositories.FeedScope{CustomerID: actor.UserID}
	if actor.IsAdmin() {
		scope.CustomerID = 0
	}

	if actor.IsAdmin() && w.dispatcher != nil {
		w.dispatcher.RequestPermission(actor)
	}

	feed := w.repo.Subscribe(ctx, scope)
	w.feed = feed
	metrics.WatchersActive.Inc()
	go w.run(actor, feed.C)
}

// Stop tears down the live subscription. Safe to call when not started.
func (w *OrderWatcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.stopLocked()
}

func (w *OrderWatcher) stopLocked() {
	if w.feed != nil {
		w.feed.Stop()
		w.feed = nil
	}
}

func (w *OrderWatcher) run(actor models.Actor, feed <-chan []models.Order) {
	defer metrics.WatchersActive.Dec()

	seen := make(map[string]bool)
	first := true
	for orders := range feed {
		fresh := diffNewOrders(&seen, orders)

		// The first delivery is historical backlog, not news.
		if first {
			first = false
			continue
		}
		if !actor.IsAdmin() || w.dispatcher == nil {
			continue
		}

		for _, order := range fresh {
			if order.Status != models.StatusPending {
				continue
			}
			w.dispatcher.Notify("new_order", order)
			w.dispatcher.PlayAlertSound()
			w.dispatcher.Notify("toast", fmt.Sprintf(
				"New order from %s - $%.2f", order.CustomerName, order.Total))
		}
	}
}

// diffNewOrders returns the orders whose ids were not in *seen, then
// replaces *seen with the delivered id set. Replacing rather than merging
// keeps the set in step with the feed: an order filtered out of one
// snapshot does not stay "seen" forever.
func diffNewOrders(seen *map[string]bool, orders []models.Order) []models.Order {
	var fresh []models.Order
	current := make(map[string]bool, len(orders))
	for _, o := range orders {
		current[o.ID] = true
		if !(*seen)[o.ID] {
			fresh = append(fresh, o)
		}
	}
	*seen = current
	return fresh
}
