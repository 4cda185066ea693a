// Package mongodb owns the shared MongoDB client used by the order and menu
// repositories and the async log handler.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epicurean/epicurean/config"
)

var client *mongo.Client

// Connect dials MongoDB and verifies the connection with a ping.
func Connect() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	opts := options.Client().ApplyURI(config.MongoURI()).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(20)

	c, err := mongo.Connect(ctx, opts)
	if err != nil {
		return fmt.Errorf("mongodb: connect: %w", err)
	}

	if err := c.Ping(ctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return fmt.Errorf("mongodb: ping: %w", err)
	}

	client = c
	return nil
}

// Collection returns a handle in the configured application database, or nil
// when Connect has not been called. Callers that only build object graphs
// (route listing, tests) tolerate the nil handle.
func Collection(name string) *mongo.Collection {
	if client == nil {
		return nil
	}
	return client.Database(config.MongoDatabase()).Collection(name)
}

// Client exposes the raw client for change streams and shutdown.
func Client() *mongo.Client { return client }

// Disconnect closes the client. Safe to call when Connect never succeeded.
func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	return client.Disconnect(ctx)
}
