// Package store declares the capabilities a persistence backend offers to
// the data source resolver, plus the errors backends report.
//
// Backends translate their driver errors: a missing record becomes
// ErrNotFound, every other failure becomes ErrUnavailable.
//
// UpdateOrderStatus only applies when the order is still in change.From and
// reports ErrConflict otherwise.
package store

import (
	"context"
	"errors"

	"brewheaven-api/models"
)

var (
	ErrUnavailable = errors.New("backend unavailable")
	ErrNotFound    = errors.New("record not found")
	// ErrConflict means a conditional write found the record changed since
	// it was read.
	ErrConflict = errors.New("record changed concurrently")
)

// MenuFilter selects menu items. Bestsellers are always ordered by
// salesCount descending; otherwise the backend's natural order is kept.
type MenuFilter struct {
	AvailableOnly   bool
	BestsellersOnly bool
	Limit           int // 0 means no limit
}

// Match reports whether item passes the filter predicates (Limit excluded).
func (f MenuFilter) Match(item models.MenuItem) bool {
	if f.AvailableOnly && !item.Available {
		return false
	}
	if f.BestsellersOnly && !item.IsBestseller {
		return false
	}
	return true
}

type MenuSource interface {
	ListMenu(ctx context.Context, filter MenuFilter) ([]models.MenuItem, error)
	GetMenuItem(ctx context.Context, id string) (*models.MenuItem, error)
}

type MenuWriter interface {
	CreateMenuItem(ctx context.Context, item *models.MenuItem) error
	UpdateMenuItem(ctx context.Context, item *models.MenuItem) error
}

type OrderSink interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrder(ctx context.Context, id string) (*models.Order, error)
	ListOrders(ctx context.Context) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, change models.StatusChange) error
}

type MessageLog interface {
	AppendMessage(ctx context.Context, msg *models.Message) error
	ListMessages(ctx context.Context) ([]models.Message, error)
}

// Backend is a live persistent store able to serve every capability.
type Backend interface {
	Name() string
	MenuSource
	MenuWriter
	OrderSink
	MessageLog
}
