package services

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/pkg/cache"
	"github.com/epicurean/epicurean/pkg/logger"
)

const (
	catalogCacheKey = "menu:catalog"
	catalogCacheTTL = 5 * time.Minute
)

// Catalog is what ListItems hands back: the items plus a flag telling the
// client it is looking at the bundled demo catalog rather than live data.
type Catalog struct {
	Items         []models.MenuItem `json:"items"`
	UsingFallback bool              `json:"usingFallback"`
}

// MenuStore is the persistence surface the catalog needs. Implemented by
// repositories.MenuRepository.
type MenuStore interface {
	All(ctx context.Context) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id string) (models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item models.MenuItem) error
	Delete(ctx context.Context, id string) error
}

// CatalogService serves the menu, caching reads in Redis and degrading to
// the bundled fallback catalog when the remote source is empty or failing.
type CatalogService struct {
	repo MenuStore
}

func NewCatalogService(repo MenuStore) *CatalogService {
	return &CatalogService{repo: repo}
}

// ListItems never fails: remote catalog first (through the cache), bundled
// fallback when the remote is empty or errors.
func (s *CatalogService) ListItems(ctx context.Context) Catalog {
	var items []models.MenuItem
	if cache.Get(catalogCacheKey, &items) && len(items) > 0 {
		return Catalog{Items: items}
	}

	items, err := s.repo.All(ctx)
	if err != nil || len(items) == 0 {
		if err != nil {
			logger.Warn("catalog: remote fetch failed, serving fallback", "error", err)
		}
		return Catalog{Items: FallbackCatalog(), UsingFallback: true}
	}

	if err := cache.Set(catalogCacheKey, items, catalogCacheTTL); err != nil {
		logger.Debug("catalog: cache set failed", "error", err)
	}
	return Catalog{Items: items}
}

// CreateItem adds a menu item. Admin only.
func (s *CatalogService) CreateItem(ctx context.Context, actor models.Actor, item *models.MenuItem) error {
	if !actor.IsAdmin() {
		return Authorizationf("only admins manage the menu")
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return Persistence("create menu item", err)
	}
	s.invalidate()
	return nil
}

// UpdateItem replaces a menu item. Admin only.
func (s *CatalogService) UpdateItem(ctx context.Context, actor models.Actor, item models.MenuItem) error {
	if !actor.IsAdmin() {
		return Authorizationf("only admins manage the menu")
	}
	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Validationf("menu item %s not found", item.ID)
		}
		return Persistence("update menu item", err)
	}
	s.invalidate()
	return nil
}

// DeleteItem removes a menu item. Admin only.
func (s *CatalogService) DeleteItem(ctx context.Context, actor models.Actor, id string) error {
	if !actor.IsAdmin() {
		return Authorizationf("only admins manage the menu")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Validationf("menu item %s not found", id)
		}
		return Persistence("delete menu item", err)
	}
	s.invalidate()
	return nil
}

func (s *CatalogService) invalidate() {
	if err := cache.Del(catalogCacheKey); err != nil {
		logger.Debug("catalog: cache invalidation failed", "error", err)
	}
}
