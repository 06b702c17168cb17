package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"matchbook/orderbook"
)

func process(t *testing.T, e *orderbook.Engine, r *Recorder, req orderbook.Request) []orderbook.Event {
	t.Helper()
	events := e.Process(req)
	r.Observe(events)
	r.SetResting(e.Book())
	return events
}

func TestRecorderCountsEvents(t *testing.T) {
	rec := New("BTC_USD")
	e := orderbook.NewEngine(orderbook.NewBook("BTC_USD"))

	qty := decimal.NewFromInt(1)
	price := decimal.NewFromInt(100)

	process(t, e, rec, orderbook.NewLimitOrder{ID: uuid.New(), Side: orderbook.Ask, Price: price, Qty: qty, Timestamp: time.Now()})
	events := process(t, e, rec, orderbook.NewLimitOrder{ID: uuid.New(), Side: orderbook.Bid, Price: price, Qty: qty, Timestamp: time.Now()})
	require.Len(t, events, 3)

	accepted := testutil.ToFloat64(rec.events.WithLabelValues(string(orderbook.EventAccepted)))
	filled := testutil.ToFloat64(rec.events.WithLabelValues(string(orderbook.EventFilled)))
	assert.Equal(t, 2.0, accepted)
	assert.Equal(t, 2.0, filled)

	// one trade of qty 1, counted once
	assert.Equal(t, 1.0, testutil.ToFloat64(rec.tradedVolume))

	// book is empty again
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.restingBids))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.restingAsks))
}

func TestRecorderCountsRejections(t *testing.T) {
	rec := New("BTC_USD")
	e := orderbook.NewEngine(orderbook.NewBook("BTC_USD"))

	process(t, e, rec, orderbook.CancelOrder{ID: uuid.New()})
	rejected := testutil.ToFloat64(rec.events.WithLabelValues(string(orderbook.EventRejected)))
	assert.Equal(t, 1.0, rejected)
}

func TestRecorderRestingGauges(t *testing.T) {
	rec := New("BTC_USD")
	e := orderbook.NewEngine(orderbook.NewBook("BTC_USD"))

	price := decimal.NewFromInt(100)
	process(t, e, rec, orderbook.NewLimitOrder{ID: uuid.New(), Side: orderbook.Bid, Price: price, Qty: decimal.NewFromInt(1), Timestamp: time.Now()})
	process(t, e, rec, orderbook.NewLimitOrder{ID: uuid.New(), Side: orderbook.Bid, Price: price, Qty: decimal.NewFromInt(2), Timestamp: time.Now()})

	assert.Equal(t, 2.0, testutil.ToFloat64(rec.restingBids))
	assert.Equal(t, 0.0, testutil.ToFloat64(rec.restingAsks))
}

func TestHandlerServesMetrics(t *testing.T) {
	rec := New("BTC_USD")
	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, req)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "matchbook_traded_volume_total")
}
