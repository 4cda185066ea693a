// Package seeders loads initial data into the stores.
package seeders

import (
	"context"

	"github.com/epicurean/epicurean/app/repositories"
	"github.com/epicurean/epicurean/app/services"
	"github.com/epicurean/epicurean/pkg/logger"
)

// SeedMenu wipes the menu collection and loads the bundled sample catalog.
// Run through `epicurean db:seed`.
func SeedMenu(ctx context.Context) error {
	repo := repositories.NewMenuRepository()
	items := services.FallbackCatalog()
	if err := repo.ReplaceAll(ctx, items); err != nil {
		return err
	}
	logger.Info("seed: menu items loaded", "count", len(items))
	return nil
}
