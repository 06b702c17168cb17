package orderbook

import "errors"

// Every failure the engine reports is one of these sentinels, carried
// inside a Rejected event. None of them is fatal: the book is left
// unchanged by the failing request and the next request proceeds normally.
var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrDuplicateOrderID = errors.New("duplicate order id")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrInvalidPrice     = errors.New("price must be positive")
	ErrAmendNoOp        = errors.New("amend carries neither price nor quantity")
)
