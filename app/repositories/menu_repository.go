package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/pkg/mongodb"
)

const menuCollection = "menu_items"

// MenuRepository persists catalog entries in Mongo.
type MenuRepository struct {
	col *mongo.Collection
}

func NewMenuRepository() *MenuRepository {
	return &MenuRepository{col: mongodb.Collection(menuCollection)}
}

// All returns every menu item, sorted by category then name.
func (r *MenuRepository) All(ctx context.Context) ([]models.MenuItem, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "category", Value: 1},
		{Key: "name", Value: 1},
	})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var items []models.MenuItem
	if err := cur.All(ctx, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID fetches a single menu item.
func (r *MenuRepository) FindByID(ctx context.Context, id string) (models.MenuItem, error) {
	var item models.MenuItem
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	return item, err
}

// Create inserts item, generating an id when absent.
func (r *MenuRepository) Create(ctx context.Context, item *models.MenuItem) error {
	if item.ID == "" {
		item.ID = primitive.NewObjectID().Hex()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	_, err := r.col.InsertOne(ctx, item)
	return err
}

// Update replaces the stored item.
func (r *MenuRepository) Update(ctx context.Context, item models.MenuItem) error {
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete removes the item with id.
func (r *MenuRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// ReplaceAll wipes the collection and inserts items. Used by the seeder.
func (r *MenuRepository) ReplaceAll(ctx context.Context, items []models.MenuItem) error {
	if _, err := r.col.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	docs := make([]interface{}, len(items))
	for i, item := range items {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = time.Now().UTC()
		}
		docs[i] = item
	}
	_, err := r.col.InsertMany(ctx, docs)
	return err
}
