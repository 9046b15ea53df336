package usecase

import (
	"context"
	"fmt"
	"time"

	"SectorPulse/internal/domain/models"
	drepo "SectorPulse/internal/domain/repository"
	domsvc "SectorPulse/internal/domain/service"
	"SectorPulse/internal/services/scoring"
	applogger "SectorPulse/pkg/logger"
	"SectorPulse/pkg/util"
)

// SectorAnalyzer drives one analysis run over the sector universe:
// aggregate -> score -> narrative -> persist, one sector at a time.
//
// Failure isolation is asymmetric on purpose: aggregation and persistence
// failures abort the run, narrative failures degrade the single sector and
// the loop continues.
type SectorAnalyzer struct {
	universe  drepo.SectorUniverse
	agg       *MarketAggregator
	narrative domsvc.Narrative
	store     drepo.AnalysisStore
	publisher drepo.RecordPublisher
	metrics   drepo.Metrics
	logger    *applogger.Logger
}

// NewSectorAnalyzer creates a SectorAnalyzer. The publisher and logger are
// optional; everything else is required.
func NewSectorAnalyzer(
	universe drepo.SectorUniverse,
	agg *MarketAggregator,
	narrative domsvc.Narrative,
	store drepo.AnalysisStore,
	publisher drepo.RecordPublisher,
	metrics drepo.Metrics,
	logger *applogger.Logger,
) *SectorAnalyzer {
	return &SectorAnalyzer{
		universe:  universe,
		agg:       agg,
		narrative: narrative,
		store:     store,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Run executes one full analysis pass. An empty tradeDate defaults to today
// (YYYYMMDD). Every sector in the universe yields exactly one persisted
// record; a degraded narrative stands in for a failed one.
func (s *SectorAnalyzer) Run(ctx context.Context, tradeDate string) ([]models.AnalysisRecord, error) {
	start := time.Now()
	if tradeDate == "" {
		tradeDate = util.TodayTradeDate()
	}

	sectors, err := s.universe.Sectors(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve universe: %w", err)
	}

	results := make([]models.AnalysisRecord, 0, len(sectors))
	for _, sector := range sectors {
		record, err := s.analyzeSector(ctx, sector, tradeDate)
		if err != nil {
			s.metrics.RecordError("run")
			return results, err
		}
		results = append(results, *record)
	}

	s.metrics.RecordLatency("run", time.Since(start).Seconds())
	if s.logger != nil {
		s.logger.Info("analysis run complete",
			applogger.String("trade_date", tradeDate),
			applogger.Int("sectors", len(results)),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return results, nil
}

func (s *SectorAnalyzer) analyzeSector(ctx context.Context, sector models.SectorDefinition, tradeDate string) (*models.AnalysisRecord, error) {
	daily, moneyFlow, margin, err := s.agg.Aggregate(ctx, sector.Symbols, tradeDate)
	if err != nil {
		s.metrics.RecordError("aggregate")
		return nil, fmt.Errorf("sector %s: %w", sector.Name, err)
	}

	// External heat source is not wired; the scalar stays an explicit argument.
	const newsHeat = 0.0
	score := scoring.Score(daily, moneyFlow, margin, newsHeat)
	s.metrics.RecordSectorScore(sector.Name, score)

	summary := models.SectorSummary{
		Date:    tradeDate,
		Sector:  sector.Name,
		Symbols: sector.Symbols,
		Score:   score,
		Stats: models.SummaryStats{
			Count:     len(sector.Symbols),
			AvgPctChg: daily.Mean(scoring.ColPctChg),
			NetMFVol:  moneyFlow.Mean(scoring.ColNetMFVol),
		},
	}

	analysis, err := s.narrative.Analyze(ctx, sector.Name, summary)
	if err != nil {
		// Narrative failures never abort the batch.
		if s.logger != nil {
			s.logger.Error("narrative analysis failed",
				applogger.String("sector", sector.Name),
				applogger.Error(err),
			)
		}
		s.metrics.RecordError("narrative")
		analysis = models.DegradedResult(sector.Name, err)
	}
	s.metrics.RecordAnalysis(sector.Name, analysis.Degraded)

	record := &models.AnalysisRecord{Summary: summary, Analysis: analysis}
	if err := s.store.Save(ctx, record); err != nil {
		s.metrics.RecordError("persist")
		return nil, fmt.Errorf("save sector %s: %w", sector.Name, err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishRecord(ctx, record); err != nil && s.logger != nil {
			s.logger.Warn("record publish failed",
				applogger.String("sector", sector.Name),
				applogger.Error(err),
			)
		}
	}

	return record, nil
}
