package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/app/repositories"
)

// ─── Fakes ────────────────────────────────────────────────────────────────────

type fakeOrderStore struct {
	orders    map[string]models.Order
	created   []models.Order
	updates   map[string]string
	createErr error
	updateErr error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{
		orders:  map[string]models.Order{},
		updates: map[string]string{},
	}
}

func (f *fakeOrderStore) Create(ctx context.Context, order *models.Order) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	if order.ID == "" {
		order.ID = fmt.Sprintf("order-%d", len(f.created)+1)
	}
	f.created = append(f.created, *order)
	f.orders[order.ID] = *order
	return order.ID, nil
}

func (f *fakeOrderStore) UpdateStatus(ctx context.Context, orderID, status string) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return mongo.ErrNoDocuments
	}
	order.Status = status
	f.orders[orderID] = order
	f.updates[orderID] = status
	return nil
}

func (f *fakeOrderStore) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return models.Order{}, mongo.ErrNoDocuments
	}
	return order, nil
}

func (f *fakeOrderStore) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) ListAll(ctx context.Context, status string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (f *fakeOrderStore) Subscribe(ctx context.Context, scope repositories.FeedScope) *repositories.Feed {
	return &repositories.Feed{}
}

type fakeCart struct {
	lines    []models.CartLine
	cleared  bool
	clearErr error
}

func (c *fakeCart) Lines() []models.CartLine { return c.lines }

func (c *fakeCart) Total() float64 {
	var total float64
	for _, l := range c.lines {
		total += l.UnitPrice * float64(l.Quantity)
	}
	return total
}

func (c *fakeCart) Clear() error {
	if c.clearErr != nil {
		return c.clearErr
	}
	c.cleared = true
	c.lines = nil
	return nil
}

type fakeDispatcher struct {
	permissionAsks int
	notifications  []struct {
		Kind    string
		Payload interface{}
	}
	sounds int
}

func (d *fakeDispatcher) RequestPermission(actor models.Actor) bool {
	d.permissionAsks++
	return true
}

func (d *fakeDispatcher) Notify(kind string, payload interface{}) {
	d.notifications = append(d.notifications, struct {
		Kind    string
		Payload interface{}
	}{kind, payload})
}

func (d *fakeDispatcher) PlayAlertSound() { d.sounds++ }

func (d *fakeDispatcher) kinds() []string {
	var out []string
	for _, n := range d.notifications {
		out = append(out, n.Kind)
	}
	return out
}

// ─── CreateOrder ──────────────────────────────────────────────────────────────

var customer = models.Actor{
	UserID: 7,
	Name:   "Ada Lovelace",
	Email:  "ada@example.com",
	Phone:  "+1 (555) 123-4567",
	Role:   models.RoleCustomer,
}

func checkout() CheckoutParams {
	return CheckoutParams{
		DeliveryOption:  "standard",
		PaymentMethod:   "cash",
		DeliveryAddress: "1 Analytical Way",
		City:            "London",
		PostalCode:      "N1 7AA",
	}
}

func twentyDollarCart() *fakeCart {
	return &fakeCart{lines: []models.CartLine{
		{ItemID: "m1", Name: "Margherita Pizza", UnitPrice: 10, Quantity: 2},
	}}
}

func TestCreateOrderEmptyCart(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)

	_, err := svc.CreateOrder(context.Background(), &fakeCart{}, customer, checkout())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, store.created, "nothing may be persisted for an empty cart")
}

func TestCreateOrderRequiresCustomer(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)

	for _, actor := range []models.Actor{
		{},
		{UserID: 2, Role: models.RoleAdmin},
	} {
		_, err := svc.CreateOrder(context.Background(), twentyDollarCart(), actor, checkout())
		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	}
	assert.Empty(t, store.created)
}

func TestCreateOrderStandardCash(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)
	cart := twentyDollarCart()

	id, err := svc.CreateOrder(context.Background(), cart, customer, checkout())
	require.NoError(t, err)
	require.NotEmpty(t, id)
	require.Len(t, store.created, 1)

	order := store.created[0]
	assert.InDelta(t, 20.00, order.Subtotal, 1e-9)
	assert.InDelta(t, 2.99, order.DeliveryFee, 1e-9)
	assert.InDelta(t, 1.60, order.Tax, 1e-9)
	assert.InDelta(t, 24.59, order.Total, 1e-9)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.Equal(t, "pending", order.PaymentStatus)
	assert.Equal(t, "30-45 minutes", order.EstimatedDelivery)
	assert.Equal(t, customer.UserID, order.CustomerID)
	assert.Equal(t, customer.Name, order.CustomerName)
	assert.True(t, cart.cleared, "cart clears after a durable order")
}

func TestCreateOrderExpressCard(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)

	p := checkout()
	p.DeliveryOption = "express"
	p.PaymentMethod = "card"

	_, err := svc.CreateOrder(context.Background(), twentyDollarCart(), customer, p)
	require.NoError(t, err)

	order := store.created[0]
	assert.InDelta(t, 5.99, order.DeliveryFee, 1e-9)
	assert.InDelta(t, 27.59, order.Total, 1e-9)
	assert.Equal(t, "paid", order.PaymentStatus)
	assert.Equal(t, "15-25 minutes", order.EstimatedDelivery)
}

func TestCreateOrderEstimates(t *testing.T) {
	cases := []struct {
		option   string
		explicit string
		want     string
		wantFee  float64
	}{
		{"standard", "", "30-45 minutes", 2.99},
		{"express", "", "15-25 minutes", 5.99},
		{"scheduled", "", "At selected time", 2.99},
		{"scheduled", "Today at 7pm", "Today at 7pm", 2.99},
		{"teleport", "", "30-45 minutes", 2.99},
	}
	for _, tc := range cases {
		t.Run(tc.option, func(t *testing.T) {
			store := newFakeOrderStore()
			svc := NewOrderService(store, nil)

			p := checkout()
			p.DeliveryOption = tc.option
			p.EstimatedDelivery = tc.explicit

			_, err := svc.CreateOrder(context.Background(), twentyDollarCart(), customer, p)
			require.NoError(t, err)
			assert.Equal(t, tc.want, store.created[0].EstimatedDelivery)
			assert.InDelta(t, tc.wantFee, store.created[0].DeliveryFee, 1e-9)
		})
	}
}

func TestCreateOrderFreezesCartLines(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)
	cart := &fakeCart{lines: []models.CartLine{
		{ItemID: "m1", Name: "Margherita Pizza", UnitPrice: 14.99, Quantity: 1},
		{ItemID: "m8", Name: "Tiramisu", UnitPrice: 8.99, Quantity: 2},
	}}

	_, err := svc.CreateOrder(context.Background(), cart, customer, checkout())
	require.NoError(t, err)

	order := store.created[0]
	require.Len(t, order.Items, 2)
	assert.Equal(t, "Tiramisu", order.Items[1].Name)
	assert.Equal(t, 2, order.Items[1].Quantity)
	assert.InDelta(t, 14.99+2*8.99, order.Subtotal, 1e-9)
}

func TestCreateOrderPersistenceFailureKeepsCart(t *testing.T) {
	store := newFakeOrderStore()
	store.createErr = errors.New("mongo down")
	svc := NewOrderService(store, nil)
	cart := twentyDollarCart()

	_, err := svc.CreateOrder(context.Background(), cart, customer, checkout())

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.ErrorContains(t, perr, "create order")
	assert.False(t, cart.cleared, "cart must survive a failed checkout")
	assert.NotEmpty(t, cart.Lines())
}

func TestCreateOrderClearFailureStillSucceeds(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)
	cart := twentyDollarCart()
	cart.clearErr = errors.New("kv down")

	id, err := svc.CreateOrder(context.Background(), cart, customer, checkout())
	require.NoError(t, err, "the order is durable even when the cart clear fails")
	assert.NotEmpty(t, id)
}

func TestCreateOrderAsksNotificationPermission(t *testing.T) {
	store := newFakeOrderStore()
	d := &fakeDispatcher{}
	svc := NewOrderService(store, d)

	_, err := svc.CreateOrder(context.Background(), twentyDollarCart(), customer, checkout())
	require.NoError(t, err)
	assert.Equal(t, 1, d.permissionAsks)
}

// ─── TransitionStatus ─────────────────────────────────────────────────────────

var admin = models.Actor{UserID: 1, Name: "Grace", Role: models.RoleAdmin}

func storeWithOrder(status string) (*fakeOrderStore, string) {
	store := newFakeOrderStore()
	order := models.Order{
		CustomerID: customer.UserID,
		Status:     status,
	}
	id, _ := store.Create(context.Background(), &order)
	return store, id
}

func TestTransitionStatusAdminOnly(t *testing.T) {
	store, id := storeWithOrder(models.StatusPending)
	svc := NewOrderService(store, nil)

	err := svc.TransitionStatus(context.Background(), id, models.StatusConfirmed, customer)

	var aerr *AuthorizationError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, models.StatusPending, store.orders[id].Status, "denied transition must not touch the order")
}

func TestTransitionStatusUnknownStatus(t *testing.T) {
	store, id := storeWithOrder(models.StatusPending)
	svc := NewOrderService(store, nil)

	err := svc.TransitionStatus(context.Background(), id, "shipped", admin)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, models.StatusPending, store.orders[id].Status)
}

func TestTransitionStatusUnknownOrder(t *testing.T) {
	store := newFakeOrderStore()
	svc := NewOrderService(store, nil)

	err := svc.TransitionStatus(context.Background(), "ghost", models.StatusConfirmed, admin)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestTransitionStatusAnyDirection(t *testing.T) {
	store, id := storeWithOrder(models.StatusDelivered)
	svc := NewOrderService(store, nil)

	// Moving backward is allowed; progression is not enforced.
	require.NoError(t, svc.TransitionStatus(context.Background(), id, models.StatusPreparing, admin))
	assert.Equal(t, models.StatusPreparing, store.orders[id].Status)

	require.NoError(t, svc.TransitionStatus(context.Background(), id, models.StatusCancelled, admin))
	assert.Equal(t, models.StatusCancelled, store.orders[id].Status)
}

// ─── Reads ────────────────────────────────────────────────────────────────────

func TestGetOrderOwnership(t *testing.T) {
	store, id := storeWithOrder(models.StatusPending)
	svc := NewOrderService(store, nil)

	_, err := svc.GetOrder(context.Background(), customer, id)
	assert.NoError(t, err, "customers read their own orders")

	_, err = svc.GetOrder(context.Background(), admin, id)
	assert.NoError(t, err, "admins read any order")

	stranger := models.Actor{UserID: 99, Role: models.RoleCustomer}
	_, err = svc.GetOrder(context.Background(), stranger, id)
	var aerr *AuthorizationError
	require.ErrorAs(t, err, &aerr)
}

func TestMyOrdersRequiresAuth(t *testing.T) {
	svc := NewOrderService(newFakeOrderStore(), nil)

	_, err := svc.MyOrders(context.Background(), models.Actor{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestAllOrders(t *testing.T) {
	store, _ := storeWithOrder(models.StatusPending)
	svc := NewOrderService(store, nil)

	_, err := svc.AllOrders(context.Background(), customer, "")
	var aerr *AuthorizationError
	require.ErrorAs(t, err, &aerr)

	_, err = svc.AllOrders(context.Background(), admin, "shipped")
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	orders, err := svc.AllOrders(context.Background(), admin, models.StatusPending)
	require.NoError(t, err)
	assert.Len(t, orders, 1)
}
