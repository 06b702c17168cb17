// Replays a short request sequence against a fresh book and logs every
// event and the spread after each request.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"matchbook/config"
	"matchbook/logger"
	"matchbook/metrics"
	"matchbook/orderbook"
)

func mustDecimal(num string) decimal.Decimal {
	dec, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return dec
}

func main() {
	configPath := flag.String("config", "", "path to YAML config (optional)")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	log, err := logger.New(cfg.Logging)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	var ids orderbook.IDGenerator = orderbook.UUIDGenerator{}
	if cfg.IDMode == config.IDModeSequential {
		ids = &orderbook.SequenceGenerator{}
	}

	book := orderbook.NewBook(cfg.Pair)
	engine := orderbook.NewEngine(book, orderbook.WithLogger(log))

	rec := metrics.New(cfg.Pair)
	if cfg.MetricsAddr != "" {
		rec.Serve(cfg.MetricsAddr)
		log.Info("metrics endpoint up", zap.String("addr", cfg.MetricsAddr))
	}

	requests := []orderbook.Request{
		orderbook.NewLimitOrder{ID: ids.NewID(), Side: orderbook.Bid, Price: mustDecimal("41711.760112"), Qty: mustDecimal("0.15"), Timestamp: time.Now()},
		orderbook.NewLimitOrder{ID: ids.NewID(), Side: orderbook.Ask, Price: mustDecimal("41712.60777901"), Qty: mustDecimal("1.0223"), Timestamp: time.Now()},
		orderbook.NewLimitOrder{ID: ids.NewID(), Side: orderbook.Bid, Price: mustDecimal("1.01"), Qty: mustDecimal("0.4"), Timestamp: time.Now()},
		orderbook.NewLimitOrder{ID: ids.NewID(), Side: orderbook.Ask, Price: mustDecimal("1.03"), Qty: mustDecimal("0.5"), Timestamp: time.Now()},
		orderbook.NewMarketOrder{ID: ids.NewID(), Side: orderbook.Bid, Qty: mustDecimal("0.90"), Timestamp: time.Now()},
		orderbook.NewLimitOrder{ID: ids.NewID(), Side: orderbook.Ask, Price: mustDecimal("1.05"), Qty: mustDecimal("0.5"), Timestamp: time.Now()},
		orderbook.NewLimitOrder{ID: ids.NewID(), Side: orderbook.Bid, Price: mustDecimal("1.06"), Qty: mustDecimal("0.6"), Timestamp: time.Now()},
	}

	for _, req := range requests {
		events := engine.Process(req)
		rec.Observe(events)
		rec.SetResting(book)

		for _, ev := range events {
			fields := []zap.Field{
				zap.String("order_id", ev.OrderID.String()),
				zap.String("side", string(ev.Side)),
				zap.String("qty", ev.Qty.String()),
			}
			if ev.Price.Valid {
				fields = append(fields, zap.String("price", ev.Price.Decimal.String()))
			}
			if ev.Reason != nil {
				fields = append(fields, zap.Error(ev.Reason))
			}
			log.Info(string(ev.Type), fields...)
		}

		quote := book.Spread()
		if quote.Spread.Valid {
			log.Info("spread",
				zap.String("bid", quote.Bid.Decimal.String()),
				zap.String("ask", quote.Ask.Decimal.String()),
				zap.String("spread", quote.Spread.Decimal.String()),
			)
		} else {
			log.Info("spread not available")
		}
	}

	depth := book.Depth(0)
	log.Info("final book",
		zap.String("pair", depth.Pair),
		zap.Int("bid_levels", len(depth.Bids)),
		zap.Int("ask_levels", len(depth.Asks)),
		zap.Int("open_orders", book.Len()),
	)
}
