package orderbook

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Option configures an Engine.
type Option func(*Engine)

// WithClock substitutes the time source used for event timestamps.
func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithLogger attaches a logger; the engine debug-logs each processed
// request. Logging never alters results.
func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// Engine is the sole mutator of a Book. It is strictly synchronous and
// single-threaded: Process runs every request to a terminal result before
// returning, and callers must serialize calls per book. Independent books
// share no state and may run in parallel.
type Engine struct {
	book  *Book
	clock Clock
	log   *zap.Logger
}

func NewEngine(book *Book, opts ...Option) *Engine {
	e := &Engine{book: book, clock: systemClock{}, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Book exposes the engine's book for read queries.
func (e *Engine) Book() *Book { return e.book }

// Process applies one request and returns the ordered event sequence
// describing what happened. Emission order is part of the contract:
// Accepted precedes any fill, fills appear in trade order, and within one
// trade the taker's event precedes the maker's. A request fails with at
// most one terminal Rejected event and leaves the book untouched.
func (e *Engine) Process(req Request) []Event {
	var events []Event
	switch r := req.(type) {
	case NewLimitOrder:
		events = e.processLimit(r)
	case NewMarketOrder:
		events = e.processMarket(r)
	case CancelOrder:
		events = e.processCancel(r)
	case AmendOrder:
		events = e.processAmend(r)
	}
	e.log.Debug("request processed",
		zap.String("pair", e.book.pair),
		zap.String("request", requestName(req)),
		zap.Int("events", len(events)),
	)
	return events
}

func (e *Engine) processLimit(req NewLimitOrder) []Event {
	now := e.clock.Now()
	if !req.Qty.IsPositive() {
		return []Event{rejected(req.ID, ErrInvalidQuantity, now)}
	}
	if !req.Price.IsPositive() {
		return []Event{rejected(req.ID, ErrInvalidPrice, now)}
	}
	if e.book.contains(req.ID) {
		return []Event{rejected(req.ID, ErrDuplicateOrderID, now)}
	}

	events := []Event{{
		Type:      EventAccepted,
		OrderID:   req.ID,
		Side:      req.Side,
		Kind:      Limit,
		Price:     somePrice(req.Price),
		Qty:       req.Qty,
		Timestamp: now,
	}}

	remaining := e.match(&events, req.ID, req.Side, Limit, req.Qty, somePrice(req.Price))

	if remaining.IsPositive() {
		_ = e.book.add(&Order{
			ID:           req.ID,
			Side:         req.Side,
			Price:        req.Price,
			OriginalQty:  req.Qty,
			RemainingQty: remaining,
			Timestamp:    req.Timestamp,
		})
	}
	return events
}

func (e *Engine) processMarket(req NewMarketOrder) []Event {
	now := e.clock.Now()
	if !req.Qty.IsPositive() {
		return []Event{rejected(req.ID, ErrInvalidQuantity, now)}
	}
	if e.book.contains(req.ID) {
		return []Event{rejected(req.ID, ErrDuplicateOrderID, now)}
	}

	events := []Event{{
		Type:      EventAccepted,
		OrderID:   req.ID,
		Side:      req.Side,
		Kind:      Market,
		Qty:       req.Qty,
		Timestamp: now,
	}}

	// No price constraint; the unmatched remainder is discarded silently
	// because a market order never rests.
	e.match(&events, req.ID, req.Side, Market, req.Qty, decimal.NullDecimal{})
	return events
}

func (e *Engine) processCancel(req CancelOrder) []Event {
	now := e.clock.Now()
	o, err := e.book.remove(req.ID)
	if err != nil {
		return []Event{rejected(req.ID, err, now)}
	}
	return []Event{{
		Type:      EventCancelled,
		OrderID:   o.ID,
		Side:      o.Side,
		Kind:      Limit,
		Price:     somePrice(o.Price),
		Qty:       o.RemainingQty,
		Timestamp: now,
	}}
}

func (e *Engine) processAmend(req AmendOrder) []Event {
	now := e.clock.Now()
	if !req.NewPrice.Valid && !req.NewQty.Valid {
		return []Event{rejected(req.ID, ErrAmendNoOp, now)}
	}
	if req.NewQty.Valid && !req.NewQty.Decimal.IsPositive() {
		return []Event{rejected(req.ID, ErrInvalidQuantity, now)}
	}
	if req.NewPrice.Valid && !req.NewPrice.Decimal.IsPositive() {
		return []Event{rejected(req.ID, ErrInvalidPrice, now)}
	}
	ent, ok := e.book.lookup(req.ID)
	if !ok {
		return []Event{rejected(req.ID, ErrOrderNotFound, now)}
	}
	order := ent.order

	price := order.Price
	if req.NewPrice.Valid {
		price = req.NewPrice.Decimal
	}
	qty := order.RemainingQty
	if req.NewQty.Valid {
		qty = req.NewQty.Decimal
	}

	// Time priority is a claim tied to a standing commitment: a quantity
	// decrease at the same price keeps it, anything that could raise fill
	// probability or size forfeits it. Amends never re-match; a repriced
	// order waits for the next incoming order.
	retained := price.Equal(order.Price) && qty.LessThanOrEqual(order.RemainingQty)
	if retained {
		e.book.resize(order.ID, qty)
	} else {
		moved, _ := e.book.remove(order.ID)
		moved.Price = price
		moved.RemainingQty = qty
		if qty.GreaterThan(moved.OriginalQty) {
			moved.OriginalQty = qty
		}
		moved.Timestamp = now
		_ = e.book.add(moved)
	}

	return []Event{{
		Type:             EventAmended,
		OrderID:          order.ID,
		Side:             order.Side,
		Kind:             Limit,
		Price:            somePrice(price),
		Qty:              qty,
		RetainedPriority: retained,
		Timestamp:        now,
	}}
}

// match runs the price-time matching loop for an incoming order against
// the opposite ladder and returns the unmatched remainder. limit is null
// for market orders. Trades always execute at the resting order's price.
func (e *Engine) match(events *[]Event, takerID uuid.UUID, side Side, kind OrderKind, qty decimal.Decimal, limit decimal.NullDecimal) decimal.Decimal {
	for qty.IsPositive() {
		maker := e.book.best(side.Opposite())
		if maker == nil {
			break
		}
		if limit.Valid && !crosses(side, limit.Decimal, maker.Price) {
			break
		}

		tradeQty := decimal.Min(qty, maker.RemainingQty)
		deal := e.clock.Now()
		qty = qty.Sub(tradeQty)
		e.book.reduce(maker.ID, tradeQty)

		takerType := EventPartiallyFilled
		if qty.IsZero() {
			takerType = EventFilled
		}
		*events = append(*events, Event{
			Type:      takerType,
			OrderID:   takerID,
			Side:      side,
			Kind:      kind,
			Price:     somePrice(maker.Price),
			Qty:       tradeQty,
			Timestamp: deal,
		})

		makerType := EventPartiallyFilled
		if maker.RemainingQty.IsZero() {
			makerType = EventFilled
		}
		*events = append(*events, Event{
			Type:      makerType,
			OrderID:   maker.ID,
			Side:      maker.Side,
			Kind:      Limit,
			Price:     somePrice(maker.Price),
			Qty:       tradeQty,
			Timestamp: deal,
		})

		if maker.RemainingQty.IsZero() {
			_, _ = e.book.remove(maker.ID)
		}
	}
	return qty
}

// crosses reports whether a limit order at limit would trade against a
// resting order at makerPrice.
func crosses(takerSide Side, limit, makerPrice decimal.Decimal) bool {
	if takerSide == Bid {
		return makerPrice.LessThanOrEqual(limit)
	}
	return makerPrice.GreaterThanOrEqual(limit)
}

func requestName(req Request) string {
	switch req.(type) {
	case NewLimitOrder:
		return "new_limit_order"
	case NewMarketOrder:
		return "new_market_order"
	case CancelOrder:
		return "cancel_order"
	case AmendOrder:
		return "amend_order"
	default:
		return "unknown"
	}
}
