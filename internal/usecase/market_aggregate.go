package usecase

import (
	"context"
	"fmt"
	"time"

	"SectorPulse/internal/domain/models"
	drepo "SectorPulse/internal/domain/repository"
	"SectorPulse/pkg/cache"
	applogger "SectorPulse/pkg/logger"
)

// MarketAggregator retrieves and concatenates the three indicator tables for
// a sector's instrument list. One provider query per symbol per indicator
// kind, sequential, in symbol order. Provider errors are not caught here;
// the analyzer decides whether to isolate or abort.
type MarketAggregator struct {
	md     drepo.MarketData
	cache  cache.Service
	ttl    time.Duration
	logger *applogger.Logger
}

// AggregatorOption configures MarketAggregator.
type AggregatorOption func(*MarketAggregator)

// WithCache enables caching of per-(kind, symbol, date) provider responses.
func WithCache(c cache.Service, ttl time.Duration) AggregatorOption {
	return func(a *MarketAggregator) {
		a.cache = c
		a.ttl = ttl
	}
}

// WithAggregatorLogger injects a structured logger.
func WithAggregatorLogger(l *applogger.Logger) AggregatorOption {
	return func(a *MarketAggregator) { a.logger = l }
}

// NewMarketAggregator creates a MarketAggregator.
func NewMarketAggregator(md drepo.MarketData, opts ...AggregatorOption) *MarketAggregator {
	a := &MarketAggregator{md: md, ttl: 6 * time.Hour}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate fetches daily, money-flow and margin rows for every symbol on the
// trade date and concatenates them per indicator kind. A symbol with no rows
// for a kind contributes nothing; if no symbol has rows, that table is empty.
func (a *MarketAggregator) Aggregate(ctx context.Context, symbols []string, tradeDate string) (daily, moneyFlow, margin models.IndicatorTable, err error) {
	for _, sym := range symbols {
		rows, err := a.fetch(ctx, "daily", sym, tradeDate, func() ([]models.IndicatorRow, error) {
			return a.md.FetchDaily(ctx, sym, tradeDate, tradeDate)
		})
		if err != nil {
			return daily, moneyFlow, margin, fmt.Errorf("aggregate daily %s: %w", sym, err)
		}
		daily.Append(rows...)

		rows, err = a.fetch(ctx, "moneyflow", sym, tradeDate, func() ([]models.IndicatorRow, error) {
			return a.md.FetchMoneyFlow(ctx, sym, tradeDate)
		})
		if err != nil {
			return daily, moneyFlow, margin, fmt.Errorf("aggregate moneyflow %s: %w", sym, err)
		}
		moneyFlow.Append(rows...)

		rows, err = a.fetch(ctx, "margin", sym, tradeDate, func() ([]models.IndicatorRow, error) {
			return a.md.FetchMargin(ctx, sym, tradeDate)
		})
		if err != nil {
			return daily, moneyFlow, margin, fmt.Errorf("aggregate margin %s: %w", sym, err)
		}
		margin.Append(rows...)
	}
	return daily, moneyFlow, margin, nil
}

// fetch serves one (kind, symbol, date) query through the cache when enabled.
// Cache failures fall back to the provider; only provider errors propagate.
func (a *MarketAggregator) fetch(ctx context.Context, kind, symbol, tradeDate string, query func() ([]models.IndicatorRow, error)) ([]models.IndicatorRow, error) {
	if a.cache == nil {
		return query()
	}

	key := cache.GenerateKeyWithParams("md:"+kind, symbol, tradeDate)
	var cached []models.IndicatorRow
	if err := a.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	rows, err := query()
	if err != nil {
		return nil, err
	}
	if err := a.cache.Set(ctx, key, rows, a.ttl); err != nil && a.logger != nil {
		a.logger.Warn("market cache set failed",
			applogger.String("key", key),
			applogger.Error(err),
		)
	}
	return rows, nil
}
