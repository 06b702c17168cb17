package orderbook

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EventType tags the state transitions the engine reports.
type EventType string

const (
	EventAccepted        EventType = "accepted"
	EventPartiallyFilled EventType = "partially_filled"
	EventFilled          EventType = "filled"
	EventCancelled       EventType = "cancelled"
	EventAmended         EventType = "amended"
	EventRejected        EventType = "rejected"
)

// Event describes one state transition. It carries a full snapshot of the
// order it refers to, so consumers can audit the stream without ever
// reading the book. Events are returned to the caller and never stored.
type Event struct {
	Type    EventType
	OrderID uuid.UUID
	Side    Side
	Kind    OrderKind

	// Price is null for market-order acceptances; fills always carry the
	// resting order's price.
	Price decimal.NullDecimal
	Qty   decimal.Decimal

	// RetainedPriority is set on Amended events: true when the order kept
	// its queue position, false when it was moved to the back.
	RetainedPriority bool

	// Reason is set on Rejected events to one of the package sentinels.
	Reason error

	Timestamp time.Time
}

func rejected(id uuid.UUID, reason error, ts time.Time) Event {
	return Event{
		Type:      EventRejected,
		OrderID:   id,
		Reason:    reason,
		Timestamp: ts,
	}
}

func somePrice(p decimal.Decimal) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: p, Valid: true}
}
