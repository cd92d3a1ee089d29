package datasource

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"brewheaven-api/chatbot"
	"brewheaven-api/models"
	"brewheaven-api/statemachine"
	"brewheaven-api/store"
)

// OrderLine is one requested cart line. Price is what the client believed
// the item cost; it is ignored in favour of the menu price.
type OrderLine struct {
	MenuItemID string  `json:"menuItemId"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price,omitempty"`
}

type OrderRequest struct {
	CustomerName string      `json:"customerName"`
	Items        []OrderLine `json:"items"`
	Notes        string      `json:"notes"`
}

func (req *OrderRequest) validate() error {
	req.CustomerName = strings.TrimSpace(req.CustomerName)
	if req.CustomerName == "" {
		return invalid("customerName is required")
	}
	if len(req.Items) == 0 {
		return invalid("items must not be empty")
	}
	for i, line := range req.Items {
		if strings.TrimSpace(line.MenuItemID) == "" {
			return invalid("items[%d]: menuItemId is required", i)
		}
		if line.Quantity < 1 {
			return invalid("items[%d]: quantity must be at least 1", i)
		}
	}
	return nil
}

// priceLines snapshots each line at the authoritative menu price.
func (r *Resolver) priceLines(ctx context.Context, lines []OrderLine) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(lines))
	var total float64
	for _, line := range lines {
		menuItem, err := r.GetMenuItem(ctx, line.MenuItemID)
		if errors.Is(err, ErrMenuItemNotFound) {
			return nil, 0, fmt.Errorf("%w %s", ErrUnknownMenuItem, line.MenuItemID)
		}
		if err != nil {
			return nil, 0, err
		}
		if !menuItem.Available {
			return nil, 0, invalid("menu item '%s' is not available", menuItem.Name)
		}
		total += menuItem.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			MenuItemID: menuItem.ID,
			Name:       menuItem.Name,
			Quantity:   line.Quantity,
			Price:      menuItem.Price,
		})
	}
	return items, roundCents(total), nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// CreateOrder validates req, prices it from the menu and stores it in the
// first backend that accepts it. There is no ephemeral fallback: if every
// backend fails the order fails with ErrNoBackend. A confirmation message is
// logged best-effort afterwards.
func (r *Resolver) CreateOrder(ctx context.Context, req OrderRequest) (*models.Order, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	items, total, err := r.priceLines(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	now := r.now()
	order := models.Order{
		CustomerName: req.CustomerName,
		Items:        items,
		TotalPrice:   total,
		Notes:        strings.TrimSpace(req.Notes),
		Status:       models.StatusPending,
		History: []models.StatusChange{
			{To: models.StatusPending, ChangedBy: "customer", Note: "Order placed", At: now},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := attempt(r, "create order", func(b store.Backend) (*models.Order, error) {
		candidate := order
		if err := b.CreateOrder(ctx, &candidate); err != nil {
			return nil, err
		}
		return &candidate, nil
	}, notNil)
	if err != nil {
		return nil, fmt.Errorf("%w: order was not stored", ErrNoBackend)
	}

	confirmation := fmt.Sprintf("Order placed for %s. Order ID: %s. Total: %s",
		created.CustomerName, created.ID, chatbot.FormatPrice(created.TotalPrice))
	if _, err := r.AppendMessage(ctx, confirmation, models.SenderBot); err != nil {
		r.logger.Warn("order confirmation message dropped", "order_id", created.ID, "error", err)
	}
	return created, nil
}

// ListOrders returns orders newest first from the first backend that has
// any. All backends empty yields an empty list; all failing yields ErrNoBackend.
func (r *Resolver) ListOrders(ctx context.Context) ([]models.Order, error) {
	orders, err := attempt(r, "list orders", func(b store.Backend) ([]models.Order, error) {
		return b.ListOrders(ctx)
	}, nonEmpty)
	switch {
	case err == nil:
		return orders, nil
	case errors.Is(err, errEmpty), errors.Is(err, store.ErrNotFound):
		return []models.Order{}, nil
	}
	return nil, err
}

func (r *Resolver) GetOrder(ctx context.Context, id string) (*models.Order, error) {
	order, err := attempt(r, "get order", func(b store.Backend) (*models.Order, error) {
		return b.GetOrder(ctx, id)
	}, notNil)
	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, store.ErrNotFound), errors.Is(err, errEmpty):
		return nil, ErrOrderNotFound
	}
	return nil, err
}

// UpdateOrderStatus moves an order to status if the state machine allows
// the transition for actor, recording it in the order history. The write is
// conditional on the status that was checked, so a concurrent change turns
// into ErrInvalidTransition.
func (r *Resolver) UpdateOrderStatus(ctx context.Context, id string, status models.OrderStatus, actor models.UserRole, changedBy, note string) (*models.Order, error) {
	if !status.Valid() {
		return nil, invalid("unknown status %q", status)
	}
	order, err := attempt(r, "update order status", func(b store.Backend) (*models.Order, error) {
		current, err := b.GetOrder(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := statemachine.CanTransition(current.Status, status, actor); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
		}
		change := models.StatusChange{
			From:      current.Status,
			To:        status,
			ChangedBy: changedBy,
			Note:      note,
			At:        r.now(),
		}
		err = b.UpdateOrderStatus(ctx, id, status, change)
		if errors.Is(err, store.ErrConflict) {
			return nil, fmt.Errorf("%w: order %s is no longer %s", ErrInvalidTransition, id, current.Status)
		}
		if err != nil {
			return nil, err
		}
		current.Status = status
		current.History = append(current.History, change)
		current.UpdatedAt = change.At
		return current, nil
	}, notNil)
	switch {
	case err == nil:
		return order, nil
	case errors.Is(err, store.ErrNotFound):
		return nil, ErrOrderNotFound
	}
	return nil, err
}
