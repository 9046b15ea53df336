package scheduler

import (
	"context"
	"fmt"
	"time"

	"SectorPulse/internal/usecase"
	applogger "SectorPulse/pkg/logger"

	"github.com/robfig/cron/v3"
)

// Default: daily at 15:10 local market time, after the close.
const defaultSpec = "10 15 * * *"

// Scheduler triggers the daily analysis run on a cron schedule. Scheduled and
// on-demand runs are not mutually excluded; both may persist records for the
// same trade date.
type Scheduler struct {
	analyzer *usecase.SectorAnalyzer
	cron     *cron.Cron
	logger   *applogger.Logger
}

// New creates a Scheduler in the given timezone (empty means local).
func New(analyzer *usecase.SectorAnalyzer, timezone string, logger *applogger.Logger) (*Scheduler, error) {
	loc := time.Local
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("scheduler timezone: %w", err)
		}
	}
	return &Scheduler{
		analyzer: analyzer,
		cron:     cron.New(cron.WithLocation(loc)),
		logger:   logger,
	}, nil
}

// Start registers the job and begins the schedule.
func (s *Scheduler) Start(spec string) error {
	if spec == "" {
		spec = defaultSpec
	}

	_, err := s.cron.AddFunc(spec, s.run)
	if err != nil {
		return fmt.Errorf("scheduler spec %q: %w", spec, err)
	}

	s.cron.Start()
	if s.logger != nil {
		s.logger.Info("scheduler started", applogger.String("spec", spec))
	}
	return nil
}

// Stop stops the schedule; a run already in flight completes.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	if s.logger != nil {
		s.logger.Info("scheduler stopped")
	}
}

func (s *Scheduler) run() {
	if s.logger != nil {
		s.logger.Info("scheduled analysis starting")
	}
	results, err := s.analyzer.Run(context.Background(), "")
	if err != nil {
		if s.logger != nil {
			s.logger.Error("scheduled analysis failed", applogger.Error(err))
		}
		return
	}
	if s.logger != nil {
		s.logger.Info("scheduled analysis complete", applogger.Int("sectors", len(results)))
	}
}
