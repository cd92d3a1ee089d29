// Package static serves the sample menu bundled with the binary. It is the
// last tier of the menu fallback chain and is never mutated.
package static

import (
	"cmp"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"

	"brewheaven-api/models"
	"brewheaven-api/store"
)

//go:embed menu.json
var bundledMenu []byte

// Dataset is an immutable ordered list of menu items. Safe for concurrent use.
type Dataset struct {
	items []models.MenuItem
}

// Bundled parses the menu shipped with the binary.
func Bundled() (*Dataset, error) {
	return Parse(bundledMenu)
}

// Parse builds a dataset from a JSON array of menu items.
func Parse(data []byte) (*Dataset, error) {
	var items []models.MenuItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parse static menu: %w", err)
	}
	return New(items), nil
}

// New copies items into a dataset, preserving their order.
func New(items []models.MenuItem) *Dataset {
	return &Dataset{items: slices.Clone(items)}
}

func (d *Dataset) Name() string { return "static" }

// Items returns a copy of every item in declared order.
func (d *Dataset) Items() []models.MenuItem {
	return slices.Clone(d.items)
}

// ListMenu applies filter to the dataset. It never fails; an empty result is
// a valid answer.
func (d *Dataset) ListMenu(_ context.Context, filter store.MenuFilter) ([]models.MenuItem, error) {
	out := make([]models.MenuItem, 0, len(d.items))
	for _, item := range d.items {
		if filter.Match(item) {
			out = append(out, item)
		}
	}
	if filter.BestsellersOnly {
		slices.SortStableFunc(out, func(a, b models.MenuItem) int {
			return cmp.Compare(b.SalesCount, a.SalesCount)
		})
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (d *Dataset) GetMenuItem(_ context.Context, id string) (*models.MenuItem, error) {
	for _, item := range d.items {
		if item.ID == id {
			found := item
			return &found, nil
		}
	}
	return nil, store.ErrNotFound
}
