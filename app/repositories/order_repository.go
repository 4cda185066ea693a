package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/pkg/logger"
	"github.com/epicurean/epicurean/pkg/mongodb"
)

const ordersCollection = "orders"

// feedPollInterval drives the fallback poller when change streams are not
// available (standalone Mongo without a replica set).
const feedPollInterval = 3 * time.Second

// OrderRepository persists orders in Mongo and exposes a live feed of
// scoped order snapshots.
type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: mongodb.Collection(ordersCollection)}
}

// Create inserts order and returns its generated id.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) (string, error) {
	if order.ID == "" {
		order.ID = primitive.NewObjectID().Hex()
	}
	if _, err := r.col.InsertOne(ctx, order); err != nil {
		return "", err
	}
	return order.ID, nil
}

// UpdateStatus sets the order's status and refreshes updatedAt. No other
// field is touched.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{"status": status, "updatedAt": time.Now().UTC()}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// FindByID fetches a single order.
func (r *OrderRepository) FindByID(ctx context.Context, orderID string) (models.Order, error) {
	var order models.Order
	err := r.col.FindOne(ctx, bson.M{"_id": orderID}).Decode(&order)
	return order, err
}

// ListByCustomer returns the customer's orders, newest first.
func (r *OrderRepository) ListByCustomer(ctx context.Context, customerID uint) ([]models.Order, error) {
	return r.list(ctx, bson.M{"customerId": customerID})
}

// ListAll returns every order, newest first, optionally filtered by status.
func (r *OrderRepository) ListAll(ctx context.Context, status string) ([]models.Order, error) {
	filter := bson.M{}
	if status != "" {
		filter["status"] = status
	}
	return r.list(ctx, filter)
}

func (r *OrderRepository) list(ctx context.Context, filter bson.M) ([]models.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orders []models.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ─── Feed ─────────────────────────────────────────────────────────────────────

// FeedScope bounds a feed subscription. CustomerID 0 means all orders
// (admin view).
type FeedScope struct {
	CustomerID uint
}

func (s FeedScope) filter() bson.M {
	if s.CustomerID == 0 {
		return bson.M{}
	}
	return bson.M{"customerId": s.CustomerID}
}

// Feed is a live subscription to scoped order snapshots. Snapshots arrive
// on C, newest order first. Stop tears the subscription down; C is closed
// and no further snapshots are delivered.
type Feed struct {
	C      <-chan []models.Order
	cancel context.CancelFunc
	done   chan struct{}
}

// Stop ends the subscription. Safe to call more than once, and safe on a
// hand-built feed that carries only a channel.
func (f *Feed) Stop() {
	if f.cancel != nil {
		f.cancel()
	}
	if f.done != nil {
		<-f.done
	}
}

// Subscribe opens a feed for the given scope. The first snapshot is
// delivered immediately; afterwards a change stream on the orders
// collection triggers re-reads, degrading to interval polling when change
// streams are unavailable.
func (r *OrderRepository) Subscribe(ctx context.Context, scope FeedScope) *Feed {
	ctx, cancel := context.WithCancel(ctx)
	ch := make(chan []models.Order, 8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		defer close(ch)

		r.deliver(ctx, scope, ch)

		stream, err := r.col.Watch(ctx, mongo.Pipeline{})
		if err != nil {
			logger.Warn("orders: change stream unavailable, polling", "error", err)
			r.poll(ctx, scope, ch)
			return
		}
		defer stream.Close(context.Background())

		for stream.Next(ctx) {
			r.deliver(ctx, scope, ch)
		}
		if ctx.Err() == nil && stream.Err() != nil {
			logger.Warn("orders: change stream ended, polling", "error", stream.Err())
			r.poll(ctx, scope, ch)
		}
	}()

	return &Feed{C: ch, cancel: cancel, done: done}
}

func (r *OrderRepository) poll(ctx context.Context, scope FeedScope, ch chan<- []models.Order) {
	ticker := time.NewTicker(feedPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.deliver(ctx, scope, ch)
		}
	}
}

func (r *OrderRepository) deliver(ctx context.Context, scope FeedScope, ch chan<- []models.Order) {
	orders, err := r.list(ctx, scope.filter())
	if err != nil {
		if ctx.Err() == nil {
			logger.Warn("orders: feed read failed", "error", err)
		}
		return
	}
	select {
	case <-ctx.Done():
	case ch <- orders:
	}
}
