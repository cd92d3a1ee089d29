// Package events announces order lifecycle changes to other services.
// Publishing is best-effort: callers log a failed publish and carry on.
package events

import (
	"context"
	"encoding/json"
	"time"

	"brewheaven-api/models"
)

type Kind string

const (
	OrderCreated       Kind = "order.created"
	OrderStatusChanged Kind = "order.status_changed"
)

// OrderEvent is the JSON body of every published message. The routing key
// is the event Kind.
type OrderEvent struct {
	Type           Kind               `json:"type"`
	OrderID        string             `json:"orderId"`
	CustomerName   string             `json:"customerName"`
	Status         models.OrderStatus `json:"status"`
	PreviousStatus models.OrderStatus `json:"previousStatus,omitempty"`
	TotalPrice     float64            `json:"totalPrice"`
	ItemCount      int                `json:"itemCount"`
	ChangedBy      string             `json:"changedBy,omitempty"`
	OccurredAt     time.Time          `json:"occurredAt"`
}

func (e OrderEvent) Encode() ([]byte, error) {
	return json.Marshal(e)
}

func NewOrderCreated(order *models.Order) OrderEvent {
	return OrderEvent{
		Type:         OrderCreated,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		TotalPrice:   order.TotalPrice,
		ItemCount:    itemCount(order),
		OccurredAt:   order.CreatedAt,
	}
}

// NewStatusChanged describes the latest entry of the order's history.
func NewStatusChanged(order *models.Order) OrderEvent {
	ev := OrderEvent{
		Type:         OrderStatusChanged,
		OrderID:      order.ID,
		CustomerName: order.CustomerName,
		Status:       order.Status,
		TotalPrice:   order.TotalPrice,
		ItemCount:    itemCount(order),
		OccurredAt:   order.UpdatedAt,
	}
	if n := len(order.History); n > 0 {
		last := order.History[n-1]
		ev.PreviousStatus = last.From
		ev.ChangedBy = last.ChangedBy
		ev.OccurredAt = last.At
	}
	return ev
}

func itemCount(order *models.Order) int {
	n := 0
	for _, item := range order.Items {
		n += item.Quantity
	}
	return n
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, OrderEvent) error { return nil }
func (Noop) Close() error                              { return nil }
