package orders

import (
	"errors"
	"fmt"

	"tantawan/internal/models"
)

var (
	// ErrNotFound is returned when no order matches the given id or number.
	ErrNotFound = errors.New("order not found")

	// ErrDuplicateOrderNumber signals that the unique index on order_number
	// rejected an insert. Recovered internally by the allocation retry loop.
	ErrDuplicateOrderNumber = errors.New("duplicate order number")

	// ErrNumberAllocationExhausted is returned once the retry loop gives up.
	ErrNumberAllocationExhausted = errors.New("order number allocation exhausted")
)

// ValidationError describes a user-fixable problem with the submitted cart.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InvalidTransitionError rejects a status change the workflow does not allow.
type InvalidTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid status transition %s -> %s", e.From, e.To)
}
