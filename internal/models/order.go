package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ParseStatus maps a wire value onto a known status.
func ParseStatus(value string) (OrderStatus, bool) {
	switch OrderStatus(value) {
	case StatusPending, StatusConfirmed, StatusPreparing, StatusReady, StatusCompleted, StatusCancelled:
		return OrderStatus(value), true
	}
	return "", false
}

// OrderItem is a snapshot of a menu item at order time. Later menu edits do
// not touch it.
type OrderItem struct {
	MenuItemID string  `bson:"menu_item_id" json:"menu_item_id"`
	Name       string  `bson:"name" json:"name"`
	Price      float64 `bson:"price" json:"price"`
	Quantity   int     `bson:"quantity" json:"quantity"`
}

// Customer captures pickup contact details embedded in the order.
type Customer struct {
	Name  string `bson:"name" json:"name"`
	Phone string `bson:"phone" json:"phone"`
	Notes string `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Order defines the persisted order document. The UUID doubles as the Mongo
// document id; order_number carries its own unique index.
type Order struct {
	ID          string      `bson:"_id" json:"id"`
	OrderNumber string      `bson:"order_number" json:"order_number"`
	Items       []OrderItem `bson:"items" json:"items"`
	Customer    Customer    `bson:"customer" json:"customer"`
	PickupTime  time.Time   `bson:"pickup_time" json:"pickup_time"`
	Total       float64     `bson:"total" json:"total"`
	Status      OrderStatus `bson:"status" json:"status"`
	CreatedAt   time.Time   `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time   `bson:"updated_at" json:"updated_at"`
}
