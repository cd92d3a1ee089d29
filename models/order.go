package models

import "time"

// OrderStatus represents all possible states of a cafe order
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPreparing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           string         `json:"id" gorm:"type:varchar(36);primaryKey" bson:"_id,omitempty"`
	CustomerName string         `json:"customerName" gorm:"not null" bson:"customerName"`
	Items        []OrderItem    `json:"items" gorm:"serializer:json;not null" bson:"items"`
	TotalPrice   float64        `json:"totalPrice" gorm:"not null" bson:"totalPrice"`
	Notes        string         `json:"notes" bson:"notes"`
	Status       OrderStatus    `json:"status" gorm:"not null;default:'Pending';index" bson:"status"`
	History      []StatusChange `json:"statusHistory,omitempty" gorm:"serializer:json" bson:"statusHistory"`
	CreatedAt    time.Time      `json:"createdAt" gorm:"index" bson:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt" bson:"updatedAt"`
}

// OrderItem is a snapshot of a menu line at checkout time
type OrderItem struct {
	MenuItemID string  `json:"menuItemId" bson:"menuItemId"`
	Name       string  `json:"name" bson:"name"`
	Quantity   int     `json:"quantity" bson:"quantity"`
	Price      float64 `json:"price" bson:"price"`
}

// StatusChange tracks every status change, an audit trail kept on the order
type StatusChange struct {
	From      OrderStatus `json:"from,omitempty" bson:"from,omitempty"`
	To        OrderStatus `json:"to" bson:"to"`
	ChangedBy string      `json:"changedBy,omitempty" bson:"changedBy,omitempty"`
	Note      string      `json:"note,omitempty" bson:"note,omitempty"`
	At        time.Time   `json:"at" bson:"at"`
}
