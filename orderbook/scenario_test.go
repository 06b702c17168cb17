package orderbook

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Replays the reference trace end to end and checks every event and every
// intermediate spread.
func TestReferenceTrace(t *testing.T) {
	e := newTestEngine(t)
	book := e.Book()

	ids := make([]uuid.UUID, 8)
	for i := range ids {
		ids[i] = uuid.New()
	}

	spread := func(wantBid, wantAsk string) {
		t.Helper()
		q := book.Spread()
		require.True(t, q.Bid.Valid, "expected a best bid")
		require.True(t, q.Ask.Valid, "expected a best ask")
		assert.True(t, q.Bid.Decimal.Equal(d(t, wantBid)), "bid %s, want %s", q.Bid.Decimal, wantBid)
		assert.True(t, q.Ask.Decimal.Equal(d(t, wantAsk)), "ask %s, want %s", q.Ask.Decimal, wantAsk)
	}

	// 1: first bid; spread unavailable while one side is empty
	events := e.Process(limit(ids[1], Bid, d(t, "41711.760112"), d(t, "0.15")))
	require.Equal(t, []EventType{EventAccepted}, eventTypes(events))
	assert.False(t, book.Spread().Spread.Valid)

	// 2: first ask; no cross
	events = e.Process(limit(ids[2], Ask, d(t, "41712.60777901"), d(t, "1.0223")))
	require.Equal(t, []EventType{EventAccepted}, eventTypes(events))
	spread("41711.760112", "41712.60777901")

	// 3: low bid, rests below the best
	events = e.Process(limit(ids[3], Bid, d(t, "1.01"), d(t, "0.4")))
	require.Equal(t, []EventType{EventAccepted}, eventTypes(events))
	spread("41711.760112", "41712.60777901")

	// 4: ask at 1.03 crosses the 41711.760112 bid: 0.15 trades at the
	// resting bid's price, the 0.35 remainder rests at 1.03
	events = e.Process(limit(ids[4], Ask, d(t, "1.03"), d(t, "0.5")))
	require.Equal(t, []EventType{EventAccepted, EventPartiallyFilled, EventFilled}, eventTypes(events))
	assert.Equal(t, ids[4], events[1].OrderID)
	assert.True(t, events[1].Qty.Equal(d(t, "0.15")))
	assert.True(t, events[1].Price.Decimal.Equal(d(t, "41711.760112")))
	assert.Equal(t, ids[1], events[2].OrderID)
	assert.True(t, events[2].Qty.Equal(d(t, "0.15")))
	spread("1.01", "1.03")

	// 5: market buy 0.90 fills 0.35 @ 1.03 and 0.55 @ 41712.60777901
	events = e.Process(NewMarketOrder{ID: ids[5], Side: Bid, Qty: d(t, "0.90"), Timestamp: time.Now()})
	require.Equal(t, []EventType{
		EventAccepted,
		EventPartiallyFilled, EventFilled,
		EventFilled, EventPartiallyFilled,
	}, eventTypes(events))
	assert.True(t, events[1].Qty.Equal(d(t, "0.35")))
	assert.True(t, events[1].Price.Decimal.Equal(d(t, "1.03")))
	assert.Equal(t, ids[4], events[2].OrderID)
	assert.True(t, events[3].Qty.Equal(d(t, "0.55")))
	assert.True(t, events[3].Price.Decimal.Equal(d(t, "41712.60777901")))
	assert.Equal(t, ids[2], events[4].OrderID)
	spread("1.01", "41712.60777901")

	// the partially filled ask keeps exact remaining quantity
	rest, ok := book.lookup(ids[2])
	require.True(t, ok)
	assert.True(t, rest.order.RemainingQty.Equal(d(t, "0.4723")))

	// 6: non-crossing ask
	events = e.Process(limit(ids[6], Ask, d(t, "1.05"), d(t, "0.5")))
	require.Equal(t, []EventType{EventAccepted}, eventTypes(events))
	spread("1.01", "1.05")

	// 7: bid at 1.06 takes the 1.05 ask, remainder rests
	events = e.Process(limit(ids[7], Bid, d(t, "1.06"), d(t, "0.6")))
	require.Equal(t, []EventType{EventAccepted, EventPartiallyFilled, EventFilled}, eventTypes(events))
	assert.True(t, events[1].Qty.Equal(d(t, "0.5")))
	assert.True(t, events[1].Price.Decimal.Equal(d(t, "1.05")))
	assert.Equal(t, ids[6], events[2].OrderID)
	spread("1.06", "41712.60777901")

	// final book: bids 1.06 (0.1) and 1.01 (0.4), ask 41712.60777901 (0.4723)
	depth := book.Depth(0)
	require.Len(t, depth.Bids, 2)
	require.Len(t, depth.Asks, 1)
	assert.True(t, depth.Bids[0].Price.Equal(d(t, "1.06")))
	assert.True(t, depth.Bids[0].Qty.Equal(d(t, "0.1")))
	assert.True(t, depth.Bids[1].Price.Equal(d(t, "1.01")))
	assert.True(t, depth.Asks[0].Qty.Equal(d(t, "0.4723")))
}
