package domain

import (
	"errors"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "Pending"
	OrderCompleted OrderStatus = "Completed"
	OrderCancelled OrderStatus = "Cancelled"
)

// Valid reports whether s is a known order status.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderCompleted, OrderCancelled:
		return true
	}
	return false
}

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrClientNotFound     = errors.New("client not found")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrFinishDateRequired = errors.New("finish date is required when the order is completed")
)

// Order is a single tailoring job belonging to exactly one client.
type Order struct {
	ID         string      `json:"id"`
	ClientID   string      `json:"clientId"`
	Items      string      `json:"items"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"createdAt"`
	FinishDate *time.Time  `json:"finishDate,omitempty"`
}

// Toggle flips the order between Pending and Completed. Completing stamps
// the finish date; reverting clears it. Cancelled is terminal and cannot
// be toggled out of — it is only reachable through an explicit update.
func (o *Order) Toggle(now time.Time) error {
	switch o.Status {
	case OrderPending:
		o.Status = OrderCompleted
		o.FinishDate = &now
	case OrderCompleted:
		o.Status = OrderPending
		o.FinishDate = nil
	default:
		return ErrInvalidTransition
	}
	return nil
}

// CheckFinishDate enforces the invariant that a completed order carries
// a finish date.
func (o *Order) CheckFinishDate() error {
	if o.Status == OrderCompleted && o.FinishDate == nil {
		return ErrFinishDateRequired
	}
	return nil
}

// Client links a user account to its tailoring records (orders,
// measurements, appointments).
type Client struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
