package order

import (
	"database/sql/driver"
	"errors"
)

// Status is the lifecycle status of an order. Transitions are deliberately
// unguarded: any valid status may replace any other.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusPaid      Status = "PAID"
	StatusDelivered Status = "DELIVERED"
	StatusCancelled Status = "CANCELLED"
)

var ErrInvalidStatus = errors.New("invalid order status")

// Statuses lists every valid order status.
func Statuses() []Status {
	return []Status{StatusPending, StatusPaid, StatusDelivered, StatusCancelled}
}

func (s Status) String() string {
	return string(s)
}

// Valid reports whether the status is a member of the enumerated set.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusDelivered, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s Status) Value() (driver.Value, error) {
	return s.String(), nil
}

func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.Valid() {
		return "", ErrInvalidStatus
	}

	return status, nil
}
