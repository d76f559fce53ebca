// Package queue defines the message payloads exchanged over the broker and
// the background consumer that records them.
package queue

import (
	"time"

	"github.com/campusmerch/store/internal/model"
)

// OrderConfirmedEvent is published when an order is persisted. It carries
// enough detail for downstream consumers (receipts, analytics) to act
// without reading the primary store.
type OrderConfirmedEvent struct {
	OrderID       string           `json:"order_id"`
	StudentID     string           `json:"student_id"`
	StoreKeeperID string           `json:"store_keeper_id"`
	Items         []OrderItemEvent `json:"items"`
	TotalAmount   float64          `json:"total_amount"`
	ConfirmedAt   string           `json:"confirmed_at"`
}

// OrderItemEvent is one line of the confirmed order.
type OrderItemEvent struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// NewOrderConfirmedEvent maps a persisted order onto its event payload.
func NewOrderConfirmedEvent(o model.Order) OrderConfirmedEvent {
	items := make([]OrderItemEvent, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemEvent{ProductID: it.ProductID, Quantity: it.Quantity, Price: it.Price})
	}
	return OrderConfirmedEvent{
		OrderID:       o.ID,
		StudentID:     o.StudentID,
		StoreKeeperID: o.StoreKeeperID,
		Items:         items,
		TotalAmount:   o.TotalAmount,
		ConfirmedAt:   o.CreatedAt.UTC().Format(time.RFC3339),
	}
}
