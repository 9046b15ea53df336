//go:build wireinject
// +build wireinject

package di

import (
	"SectorPulse/pkg/config"
	"SectorPulse/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire will generate the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,

		// Infrastructure clients
		ProvideClickHouseClient,
		ProvideKafkaProducer,
		ProvideCache,

		// Repositories
		ProvideAnalysisStore,
		ProvideRecordPublisher,
		ProvideUniverse,

		// External services
		ProvideMarketData,
		ProvideNarrative,

		// Use cases
		ProvideAggregator,
		ProvideAnalyzer,
		ProvideScheduler,

		// HTTP + application server
		ProvideHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
