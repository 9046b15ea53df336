package di

import (
	"context"
	"fmt"
	"time"

	"SectorPulse/internal/domain/repository"
	domsvc "SectorPulse/internal/domain/service"
	"SectorPulse/internal/handler/api"
	internalrepo "SectorPulse/internal/repository"
	"SectorPulse/internal/service/scheduler"
	"SectorPulse/internal/service/tushare"
	"SectorPulse/internal/services/narrative"
	"SectorPulse/internal/usecase"
	pkgcache "SectorPulse/pkg/cache"
	pkgch "SectorPulse/pkg/clickhouse"
	"SectorPulse/pkg/config"
	pkgkafka "SectorPulse/pkg/kafka"
	applogger "SectorPulse/pkg/logger"
	"SectorPulse/pkg/metrics"
	"SectorPulse/pkg/server"
)

// ProvideLogger creates the application logger from config.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := cfg.Log.Level
	if level == "" {
		level = "info"
	}
	format := cfg.Log.Format
	if format == "" {
		format = "console"
	}
	output := cfg.Log.Output
	if output == "" {
		output = "stdout"
	}
	l, err := applogger.New(&applogger.Config{Level: level, Format: format, Output: output})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return l, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// ProvideClickHouseClient creates a ClickHouse client and ensures the schema.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	table := AnalysisTable(cfg)
	if err := client.InitSchema(ctx, []string{
		fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s", cfg.ClickHouse.Database),
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			created_at DateTime64(3),
			trade_date String,
			sector String,
			degraded UInt8,
			record String
		) ENGINE=MergeTree ORDER BY created_at`, table),
	}); err != nil {
		_ = client.Close() // best-effort close
		return nil, fmt.Errorf("clickhouse schema: %w", err)
	}

	return client, nil
}

// AnalysisTable returns the fully qualified analysis table name.
func AnalysisTable(cfg *config.Config) string {
	table := cfg.ClickHouse.Table
	if table == "" {
		table = "sector_analysis"
	}
	return cfg.ClickHouse.Database + "." + table
}

// ProvideAnalysisStore creates the ClickHouse analysis store.
func ProvideAnalysisStore(chClient *pkgch.Client, cfg *config.Config, l *applogger.Logger) repository.AnalysisStore {
	store := internalrepo.NewCHAnalysisStore(chClient, AnalysisTable(cfg))
	store.SetLogger(l)
	return store
}

// ProvideKafkaProducer creates a Kafka producer, or nil when Kafka is disabled.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	if !cfg.Kafka.Enabled {
		return nil, nil
	}
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvideRecordPublisher creates a Kafka record publisher, or nil without Kafka.
func ProvideRecordPublisher(producer *pkgkafka.Producer, cfg *config.Config) repository.RecordPublisher {
	if producer == nil {
		return nil
	}
	topic := cfg.Kafka.Topic
	if topic == "" {
		topic = "sector-analyses"
	}
	return internalrepo.NewKafkaRecordPublisher(producer, topic)
}

// kafkaLogPublisher adapts the Kafka producer to the log collector interface.
type kafkaLogPublisher struct {
	producer *pkgkafka.Producer
}

func (p *kafkaLogPublisher) PublishMessage(ctx context.Context, topic string, payload interface{}) error {
	return p.producer.Publish(ctx, topic, nil, payload)
}

// AttachLogCollector ships aggregated error logs to Kafka when configured.
func AttachLogCollector(l *applogger.Logger, producer *pkgkafka.Producer, cfg *config.Config) {
	if producer == nil || cfg.Kafka.LogTopic == "" {
		return
	}
	l.AddCollector(&applogger.CollectionConfig{
		TimeInterval:   30 * time.Second,
		CountThreshold: 100,
		Topic:          cfg.Kafka.LogTopic,
		Publisher:      &kafkaLogPublisher{producer: producer},
	})
}

// ProvideCache creates the layered market-data cache, or nil when disabled.
func ProvideCache(cfg *config.Config) (pkgcache.Service, error) {
	if !cfg.Cache.Enabled {
		return nil, nil
	}
	redisCache, err := pkgcache.NewRedisCache(
		pkgcache.WithRedisHost(cfg.Cache.Redis.Host),
		pkgcache.WithRedisPort(cfg.Cache.Redis.Port),
		pkgcache.WithRedisPassword(cfg.Cache.Redis.Password),
		pkgcache.WithRedisDB(cfg.Cache.Redis.DB),
		pkgcache.WithRedisPrefix(cfg.Cache.Redis.Prefix),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return pkgcache.NewLayeredCache(redisCache), nil
}

// ProvideMarketData creates the Tushare market-data client.
func ProvideMarketData(cfg *config.Config) repository.MarketData {
	return tushare.New(cfg.Tushare.APIURL, cfg.Tushare.Token, cfg.Tushare.Timeout)
}

// ProvideNarrative creates the SiliconFlow narrative client.
func ProvideNarrative(cfg *config.Config) domsvc.Narrative {
	return narrative.New(cfg.SiliconFlow.APIURL, cfg.SiliconFlow.APIKey, cfg.SiliconFlow.Model)
}

// ProvideUniverse creates the config-backed sector universe.
func ProvideUniverse(cfg *config.Config) (repository.SectorUniverse, error) {
	return internalrepo.NewConfigUniverse(cfg.Sectors)
}

// ProvideAggregator creates the market data aggregator.
func ProvideAggregator(md repository.MarketData, cacheSvc pkgcache.Service, cfg *config.Config, l *applogger.Logger) *usecase.MarketAggregator {
	opts := []usecase.AggregatorOption{usecase.WithAggregatorLogger(l)}
	if cacheSvc != nil {
		ttl := cfg.Cache.TTL
		if ttl <= 0 {
			ttl = 6 * time.Hour
		}
		opts = append(opts, usecase.WithCache(cacheSvc, ttl))
	}
	return usecase.NewMarketAggregator(md, opts...)
}

// ProvideAnalyzer creates the sector analyzer use case.
func ProvideAnalyzer(
	universe repository.SectorUniverse,
	agg *usecase.MarketAggregator,
	narr domsvc.Narrative,
	store repository.AnalysisStore,
	pub repository.RecordPublisher,
	m repository.Metrics,
	l *applogger.Logger,
) *usecase.SectorAnalyzer {
	return usecase.NewSectorAnalyzer(universe, agg, narr, store, pub, m, l)
}

// ProvideScheduler creates the daily cron scheduler.
func ProvideScheduler(analyzer *usecase.SectorAnalyzer, cfg *config.Config, l *applogger.Logger) (*scheduler.Scheduler, error) {
	if !cfg.Scheduler.Enabled {
		return nil, nil
	}
	return scheduler.New(analyzer, cfg.Scheduler.Timezone, l)
}

// ProvideHandler creates the HTTP handler.
func ProvideHandler(l *applogger.Logger, analyzer *usecase.SectorAnalyzer, store repository.AnalysisStore) *api.AnalysisEchoHandler {
	return api.NewAnalysisEchoHandler(l, analyzer, store)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.AnalysisEchoHandler,
	sched *scheduler.Scheduler,
	chClient *pkgch.Client,
	producer *pkgkafka.Producer,
	pub repository.RecordPublisher,
	cacheSvc pkgcache.Service,
) *server.App {
	AttachLogCollector(l, producer, cfg)
	return server.New(cfg, l, handler, sched, chClient, pub, cacheSvc)
}
