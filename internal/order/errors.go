package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrEmptySelection    = errors.New("no items selected")
	ErrInvalidQuantity   = errors.New("quantity must be positive")
	ErrUnknownItem       = errors.New("item not on the menu")
	ErrInvalidStatus     = errors.New("unknown order status")
	ErrInvalidTransition = errors.New("status transition not allowed")
	ErrForbidden         = errors.New("caller may not perform this transition")
	ErrNothingDue        = errors.New("no completed orders to pay")
)
