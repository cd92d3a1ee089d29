package datasource

import (
	"context"
	"errors"
	"strings"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

// GetMenu returns available items. It never fails: when no backend has data
// the static menu answers, and an empty list is a valid answer.
func (r *Resolver) GetMenu(ctx context.Context) []models.MenuItem {
	return r.listMenu(ctx, "menu", store.MenuFilter{AvailableOnly: true})
}

// GetBestsellers returns up to limit available bestsellers by salesCount,
// highest first.
func (r *Resolver) GetBestsellers(ctx context.Context, limit int) []models.MenuItem {
	if limit <= 0 {
		limit = DefaultBestsellerLimit
	}
	return r.listMenu(ctx, "bestsellers", store.MenuFilter{AvailableOnly: true, BestsellersOnly: true, Limit: limit})
}

func (r *Resolver) listMenu(ctx context.Context, op string, filter store.MenuFilter) []models.MenuItem {
	items, err := attempt(r, op, func(b store.Backend) ([]models.MenuItem, error) {
		return b.ListMenu(ctx, filter)
	}, nonEmpty)
	if err == nil {
		return items
	}

	if r.static != nil {
		items, err = r.static.ListMenu(ctx, filter)
		if err == nil && items != nil {
			r.logger.Debug("serving static menu", "op", op, "count", len(items))
			return items
		}
		if err != nil {
			r.logger.Warn("static menu failed", "op", op, "error", err)
		}
	}
	return []models.MenuItem{}
}

// GetMenuItem looks id up through the backends, then the static menu.
func (r *Resolver) GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error) {
	item, err := attempt(r, "get menu item", func(b store.Backend) (*models.MenuItem, error) {
		return b.GetMenuItem(ctx, id)
	}, notNil)
	if err == nil {
		return item, nil
	}
	if r.static != nil {
		if item, serr := r.static.GetMenuItem(ctx, id); serr == nil {
			return item, nil
		}
	}
	// backends were down, so the item may exist after all
	if errors.Is(err, ErrNoBackend) && len(r.backends) > 0 {
		return nil, err
	}
	return nil, ErrMenuItemNotFound
}

func validateMenuItem(item *models.MenuItem) error {
	item.Name = strings.TrimSpace(item.Name)
	if item.Name == "" {
		return invalid("name is required")
	}
	if item.Price < 0 {
		return invalid("price must not be negative")
	}
	if item.SalesCount < 0 {
		return invalid("salesCount must not be negative")
	}
	return nil
}

// AddMenuItem stores a new item in the first backend that accepts it. The
// static menu is read-only, so with no working backend the write fails.
func (r *Resolver) AddMenuItem(ctx context.Context, item models.MenuItem) (*models.MenuItem, error) {
	if err := validateMenuItem(&item); err != nil {
		return nil, err
	}
	item.ID = ""
	return attempt(r, "add menu item", func(b store.Backend) (*models.MenuItem, error) {
		candidate := item
		if err := b.CreateMenuItem(ctx, &candidate); err != nil {
			return nil, err
		}
		return &candidate, nil
	}, notNil)
}

// UpdateMenuItem applies patch to the item in whichever backend holds it.
func (r *Resolver) UpdateMenuItem(ctx context.Context, id string, patch models.MenuItemPatch) (*models.MenuItem, error) {
	item, err := attempt(r, "update menu item", func(b store.Backend) (*models.MenuItem, error) {
		current, err := b.GetMenuItem(ctx, id)
		if err != nil {
			return nil, err
		}
		patch.Apply(current)
		if err := validateMenuItem(current); err != nil {
			return nil, err
		}
		if err := b.UpdateMenuItem(ctx, current); err != nil {
			return nil, err
		}
		return current, nil
	}, notNil)
	switch {
	case err == nil:
		return item, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrMenuItemNotFound
	}
	return nil, err
}
