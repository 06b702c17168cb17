// Package metrics exposes Prometheus metrics for a matching engine.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"matchbook/orderbook"
)

// Recorder collects engine event counts on a private registry so multiple
// engines can run in one process without collector collisions.
type Recorder struct {
	registry *prometheus.Registry

	events       *prometheus.CounterVec
	tradedVolume prometheus.Counter
	restingBids  prometheus.Gauge
	restingAsks  prometheus.Gauge
}

// New builds a Recorder labelled with the engine's pair.
func New(pair string) *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	labels := prometheus.Labels{"pair": pair}

	return &Recorder{
		registry: reg,
		events: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "events_total",
			Help:        "Engine events emitted, by event type.",
			ConstLabels: labels,
		}, []string{"type"}),
		tradedVolume: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   "matchbook",
			Name:        "traded_volume_total",
			Help:        "Cumulative base quantity traded.",
			ConstLabels: labels,
		}),
		restingBids: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "matchbook",
			Name:        "resting_bid_orders",
			Help:        "Open orders on the bid side.",
			ConstLabels: labels,
		}),
		restingAsks: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   "matchbook",
			Name:        "resting_ask_orders",
			Help:        "Open orders on the ask side.",
			ConstLabels: labels,
		}),
	}
}

// Observe records the event batch one Process call produced. Taker fill
// events carry the traded quantity once per trade, so volume is summed from
// the taker side only.
func (r *Recorder) Observe(events []orderbook.Event) {
	for i, ev := range events {
		r.events.WithLabelValues(string(ev.Type)).Inc()

		switch ev.Type {
		case orderbook.EventPartiallyFilled, orderbook.EventFilled:
			// events come in taker/maker pairs; the taker is first
			if takerFill(events, i) {
				v, _ := ev.Qty.Float64()
				r.tradedVolume.Add(v)
			}
		}
	}
}

// SetResting updates the open-order gauges from the book.
func (r *Recorder) SetResting(book *orderbook.Book) {
	r.restingBids.Set(float64(book.SideLen(orderbook.Bid)))
	r.restingAsks.Set(float64(book.SideLen(orderbook.Ask)))
}

// Handler serves this recorder's registry.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Serve exposes the metrics endpoint on addr in the background.
func (r *Recorder) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", r.Handler())
	go func() {
		_ = http.ListenAndServe(addr, mux)
	}()
}

// takerFill reports whether the fill at index i belongs to the incoming
// order. Fills alternate taker, maker after the leading Accepted event.
func takerFill(events []orderbook.Event, i int) bool {
	n := 0
	for j := 0; j < i; j++ {
		switch events[j].Type {
		case orderbook.EventPartiallyFilled, orderbook.EventFilled:
			n++
		}
	}
	return n%2 == 0
}
