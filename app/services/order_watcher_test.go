package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/epicurean/epicurean/app/models"
)

func orderIDs(orders []models.Order) []string {
	var ids []string
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	return ids
}

func snapshot(ids ...string) []models.Order {
	orders := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		orders = append(orders, models.Order{ID: id, Status: models.StatusPending})
	}
	return orders
}

func TestDiffNewOrders(t *testing.T) {
	seen := map[string]bool{}

	fresh := diffNewOrders(&seen, snapshot("a", "b"))
	assert.Equal(t, []string{"a", "b"}, orderIDs(fresh), "everything is new on the first delivery")

	fresh = diffNewOrders(&seen, snapshot("a", "b", "c"))
	assert.Equal(t, []string{"c"}, orderIDs(fresh))

	fresh = diffNewOrders(&seen, snapshot("a", "b"))
	assert.Empty(t, fresh, "a shrinking snapshot has no new orders")

	// "c" fell out of the snapshot above, so its reappearance counts as new.
	fresh = diffNewOrders(&seen, snapshot("a", "b", "c"))
	assert.Equal(t, []string{"c"}, orderIDs(fresh))
}

// deliver runs the watcher loop over the given snapshots and returns the
// dispatcher observations.
func deliver(actor models.Actor, snapshots ...[]models.Order) *fakeDispatcher {
	d := &fakeDispatcher{}
	w := NewOrderWatcher(newFakeOrderStore(), d)

	feed := make(chan []models.Order, len(snapshots))
	for _, s := range snapshots {
		feed <- s
	}
	close(feed)

	w.run(actor, feed)
	return d
}

func TestWatcherSkipsBacklog(t *testing.T) {
	d := deliver(admin, snapshot("a", "b"))
	assert.Empty(t, d.notifications, "the first delivery is backlog, not news")
	assert.Zero(t, d.sounds)
}

func TestWatcherAlertsOnFreshPendingOrders(t *testing.T) {
	first := snapshot("a")
	second := append(snapshot("a"), models.Order{
		ID:           "b",
		Status:       models.StatusPending,
		CustomerName: "Ada Lovelace",
		Total:        24.59,
	})

	d := deliver(admin, first, second)

	require.Equal(t, []string{"new_order", "toast"}, d.kinds())
	assert.Equal(t, 1, d.sounds)

	order, ok := d.notifications[0].Payload.(models.Order)
	require.True(t, ok)
	assert.Equal(t, "b", order.ID)
	assert.Equal(t, "New order from Ada Lovelace - $24.59", d.notifications[1].Payload)
}

func TestWatcherIgnoresNonPendingArrivals(t *testing.T) {
	first := snapshot("a")
	second := append(snapshot("a"), models.Order{ID: "b", Status: models.StatusConfirmed})

	d := deliver(admin, first, second)
	assert.Empty(t, d.notifications, "only pending arrivals raise alerts")
}

func TestWatcherSilentForCustomers(t *testing.T) {
	d := deliver(customer, snapshot("a"), snapshot("a", "b"))
	assert.Empty(t, d.notifications)
	assert.Zero(t, d.sounds)
}

func TestWatcherNoRepeatAlerts(t *testing.T) {
	first := snapshot("a")
	second := snapshot("a", "b")

	d := deliver(admin, first, second, second, second)
	assert.Equal(t, []string{"new_order", "toast"}, d.kinds(), "an order alerts once")
}
