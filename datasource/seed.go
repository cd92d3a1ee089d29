package datasource

import (
	"context"
	"errors"
	"fmt"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

// Seed copies items, ids included, into every enabled backend whose menu is
// empty. It reports how many items each backend received.
func (r *Resolver) Seed(ctx context.Context, items []models.MenuItem) (map[string]int, error) {
	seeded := make(map[string]int, len(r.backends))
	var errs []error
	for _, b := range r.backends {
		existing, err := b.ListMenu(ctx, store.MenuFilter{Limit: 1})
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}
		if len(existing) > 0 {
			r.logger.Info("backend already has a menu, skipping seed", "backend", b.Name())
			seeded[b.Name()] = 0
			continue
		}
		for _, item := range items {
			candidate := item
			if err := b.CreateMenuItem(ctx, &candidate); err != nil {
				errs = append(errs, fmt.Errorf("%s: seed %q: %w", b.Name(), item.Name, err))
				break
			}
			seeded[b.Name()]++
		}
	}
	return seeded, errors.Join(errs...)
}
