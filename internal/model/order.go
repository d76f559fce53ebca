package model

import "time"

// OrderStatusConfirmed is the only order status: orders are confirmed on
// creation and never transition. No payment processing exists.
const OrderStatusConfirmed = "confirmed"

// OrderItem is one line of an order. Price is the unit price at the time
// the order was placed.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// Order records a student purchase from a single storekeeper. Every item
// must reference a product owned by that storekeeper.
type Order struct {
	ID            string      `json:"id"`
	StudentID     string      `json:"studentId"`
	StoreKeeperID string      `json:"storeKeeperId"`
	Items         []OrderItem `json:"items"`
	TotalAmount   float64     `json:"totalAmount"`
	Status        string      `json:"status"`
	CreatedAt     time.Time   `json:"createdAt"`
}
