package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/epicurean/epicurean/app/models"
)

type fakeMenuStore struct {
	items   []models.MenuItem
	allErr  error
	created []models.MenuItem
	deleted []string
}

func (f *fakeMenuStore) All(ctx context.Context) ([]models.MenuItem, error) {
	return f.items, f.allErr
}

func (f *fakeMenuStore) FindByID(ctx context.Context, id string) (models.MenuItem, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.MenuItem{}, mongo.ErrNoDocuments
}

func (f *fakeMenuStore) Create(ctx context.Context, item *models.MenuItem) error {
	f.created = append(f.created, *item)
	f.items = append(f.items, *item)
	return nil
}

func (f *fakeMenuStore) Update(ctx context.Context, item models.MenuItem) error {
	for i := range f.items {
		if f.items[i].ID == item.ID {
			f.items[i] = item
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeMenuStore) Delete(ctx context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.deleted = append(f.deleted, id)
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func TestListItemsServesRemoteCatalog(t *testing.T) {
	store := &fakeMenuStore{items: []models.MenuItem{
		{ID: "m1", Name: "Margherita Pizza", Price: 14.99},
	}}
	svc := NewCatalogService(store)

	catalog := svc.ListItems(context.Background())
	assert.False(t, catalog.UsingFallback)
	require.Len(t, catalog.Items, 1)
	assert.Equal(t, "Margherita Pizza", catalog.Items[0].Name)
}

func TestListItemsFallsBackOnError(t *testing.T) {
	store := &fakeMenuStore{allErr: errors.New("mongo down")}
	svc := NewCatalogService(store)

	catalog := svc.ListItems(context.Background())
	assert.True(t, catalog.UsingFallback)
	assert.Len(t, catalog.Items, len(FallbackCatalog()))
}

func TestListItemsFallsBackOnEmptyCatalog(t *testing.T) {
	svc := NewCatalogService(&fakeMenuStore{})

	catalog := svc.ListItems(context.Background())
	assert.True(t, catalog.UsingFallback)
	assert.NotEmpty(t, catalog.Items)
}

func TestFallbackCatalogShape(t *testing.T) {
	items := FallbackCatalog()
	require.Len(t, items, 8)

	assert.Equal(t, "Margherita Pizza", items[0].Name)
	assert.InDelta(t, 14.99, items[0].Price, 1e-9)
	assert.Equal(t, "Tiramisu", items[7].Name)
	assert.InDelta(t, 8.99, items[7].Price, 1e-9)

	seen := map[string]bool{}
	for _, it := range items {
		assert.NotEmpty(t, it.ID)
		assert.False(t, seen[it.ID], "duplicate fallback id %s", it.ID)
		seen[it.ID] = true
		assert.True(t, it.IsAvailable, "%s must be orderable", it.Name)
		assert.Greater(t, it.Price, 0.0)
	}
}

func TestMenuWritesAreAdminOnly(t *testing.T) {
	store := &fakeMenuStore{items: []models.MenuItem{{ID: "m1", Name: "Margherita Pizza"}}}
	svc := NewCatalogService(store)
	ctx := context.Background()

	var aerr *AuthorizationError
	item := models.MenuItem{ID: "m2", Name: "Bruschetta", Price: 7.99}

	require.ErrorAs(t, svc.CreateItem(ctx, customer, &item), &aerr)
	require.ErrorAs(t, svc.UpdateItem(ctx, customer, item), &aerr)
	require.ErrorAs(t, svc.DeleteItem(ctx, customer, "m1"), &aerr)
	assert.Empty(t, store.created)
	assert.Empty(t, store.deleted)

	require.NoError(t, svc.CreateItem(ctx, admin, &item))
	require.NoError(t, svc.DeleteItem(ctx, admin, "m1"))
	assert.Equal(t, []string{"m1"}, store.deleted)
}

func TestMenuWritesOnMissingItem(t *testing.T) {
	svc := NewCatalogService(&fakeMenuStore{})
	ctx := context.Background()

	var verr *ValidationError
	require.ErrorAs(t, svc.UpdateItem(ctx, admin, models.MenuItem{ID: "ghost"}), &verr)
	require.ErrorAs(t, svc.DeleteItem(ctx, admin, "ghost"), &verr)
}
