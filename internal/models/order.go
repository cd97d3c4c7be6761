package models

import "time"

// Order statuses. Orders are created as "pending" by a purchase and are
// never mutated afterwards; the remaining statuses exist for the dashboard.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

type Order struct {
	ID        string      `json:"id"`
	UserID    int         `json:"user_id"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	Items     []OrderItem `json:"items,omitempty"`
}

// OrderItem is one line of an order. Price is the sweet's unit price
// captured at purchase time; later price changes do not touch it.
type OrderItem struct {
	ID        int     `json:"id,omitempty"`
	OrderID   string  `json:"order_id,omitempty"`
	SweetID   int     `json:"sweet_id"`
	SweetName string  `json:"sweet_name,omitempty"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}
