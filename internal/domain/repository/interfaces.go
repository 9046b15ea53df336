package repository

import (
	"context"

	"SectorPulse/internal/domain/models"
)

// MarketData queries the market-data provider for one indicator kind at a
// time. Implementations return an empty slice when the provider has no rows
// (not an error) and an error only on transport/API failure.
type MarketData interface {
	// FetchDaily returns daily OHLCV rows for one symbol over a date range
	// (YYYYMMDD, inclusive).
	FetchDaily(ctx context.Context, symbol, startDate, endDate string) ([]models.IndicatorRow, error)
	// FetchMoneyFlow returns money-flow rows for one symbol on a trade date.
	FetchMoneyFlow(ctx context.Context, symbol, tradeDate string) ([]models.IndicatorRow, error)
	// FetchMargin returns margin-trading rows for one symbol on a trade date.
	FetchMargin(ctx context.Context, symbol, tradeDate string) ([]models.IndicatorRow, error)
}

// SectorUniverse supplies the ordered sector -> symbols universe for a run.
type SectorUniverse interface {
	Sectors(ctx context.Context) ([]models.SectorDefinition, error)
}

// AnalysisStore is the append-only persistence boundary for analysis records.
// Save assigns CreatedAt; there is no update or delete.
type AnalysisStore interface {
	Save(ctx context.Context, record *models.AnalysisRecord) error
	Latest(ctx context.Context, limit int) ([]models.AnalysisRecord, error)
	Health(ctx context.Context) error
}

// RecordPublisher emits persisted analysis records to downstream consumers.
// Publishing is best effort; failures never affect the run.
type RecordPublisher interface {
	PublishRecord(ctx context.Context, record *models.AnalysisRecord) error
	Close() error
}

// Metrics records pipeline observability signals.
type Metrics interface {
	RecordSectorScore(sector string, score float64)
	RecordAnalysis(sector string, degraded bool)
	RecordError(kind string)
	RecordLatency(op string, seconds float64)
}
