package orderbook

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is the book's unit of storage: a resting limit order or the
// remainder of one. Identity fields never change after insertion; only
// RemainingQty is reduced as the order trades.
type Order struct {
	ID           uuid.UUID
	Side         Side
	Price        decimal.Decimal
	OriginalQty  decimal.Decimal
	RemainingQty decimal.Decimal

	// Sequence is the book-assigned arrival counter. Within a price level
	// orders queue in ascending sequence; an in-place quantity amend keeps
	// the original sequence.
	Sequence  uint64
	Timestamp time.Time
}

// Request is the closed set of inputs the engine accepts. Exactly one of
// NewLimitOrder, NewMarketOrder, CancelOrder or AmendOrder is passed per
// Process call.
type Request interface {
	isRequest()
}

type NewLimitOrder struct {
	ID        uuid.UUID
	Side      Side
	Price     decimal.Decimal
	Qty       decimal.Decimal
	Timestamp time.Time
}

type NewMarketOrder struct {
	ID        uuid.UUID
	Side      Side
	Qty       decimal.Decimal
	Timestamp time.Time
}

type CancelOrder struct {
	ID uuid.UUID
}

// AmendOrder changes the price and/or remaining quantity of a resting
// order. Absent fields (Valid == false) are left untouched.
type AmendOrder struct {
	ID       uuid.UUID
	NewPrice decimal.NullDecimal
	NewQty   decimal.NullDecimal
}

func (NewLimitOrder) isRequest()  {}
func (NewMarketOrder) isRequest() {}
func (CancelOrder) isRequest()    {}
func (AmendOrder) isRequest()     {}
