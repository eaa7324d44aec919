package orderitem

import (
	"time"
)

// OrderItem represents an item within an order. PriceCents is a snapshot of
// the product price at order creation time; ProductName is response shaping
// only and is never persisted.
type OrderItem struct {
	ID          string    `json:"id"`
	OrderID     string    `json:"orderId"`
	ProductID   int64     `json:"productId"`
	Quantity    int       `json:"quantity"`
	PriceCents  int64     `json:"priceCents"`
	ProductName string    `json:"name,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
