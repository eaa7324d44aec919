package order

import (
	"errors"
	"time"

	"github.com/stxcorp/orders-ms/internal/service/models/orderitem"
)

var (
	// ErrOrderNotFound is returned when no order exists for the requested id.
	ErrOrderNotFound = errors.New("order not found")
	// ErrCreateFailed is the generic error surfaced to callers when order
	// creation fails for any reason. The real cause is logged server-side.
	ErrCreateFailed = errors.New("order creation failed")
	// ErrEmptyOrder is returned when a creation request carries no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
)

// Order represents an order in the system.
type Order struct {
	ID              string                `json:"id"`
	Status          Status                `json:"status"`
	TotalPriceCents int64                 `json:"totalPriceCents"`
	TotalItems      int                   `json:"totalItems"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
	OrderItems      []orderitem.OrderItem `json:"items"`
}

// NewOrderItemModel is a single requested line in an order creation request.
type NewOrderItemModel struct {
	ProductID int64
	Quantity  int
}

// NewOrderModel represents an order creation request after input validation.
type NewOrderModel struct {
	Items []NewOrderItemModel
}

// ProductIDs returns the distinct set of product ids referenced by the request.
func (m NewOrderModel) ProductIDs() []int64 {
	seen := make(map[int64]struct{}, len(m.Items))
	ids := make([]int64, 0, len(m.Items))
	for _, item := range m.Items {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}

	return ids
}
