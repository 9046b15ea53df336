package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"SectorPulse/internal/domain/repository"
	"SectorPulse/internal/handler/api"
	"SectorPulse/internal/service/scheduler"
	pkgcache "SectorPulse/pkg/cache"
	pkgch "SectorPulse/pkg/clickhouse"
	"SectorPulse/pkg/config"
	xhttp "SectorPulse/pkg/http"
	applogger "SectorPulse/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg        *config.Config
	logger     *applogger.Logger
	handler    *api.AnalysisEchoHandler
	sched      *scheduler.Scheduler
	chClient   *pkgch.Client
	publisher  repository.RecordPublisher
	cache      pkgcache.Service
	httpServer *xhttp.Server
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	l *applogger.Logger,
	handler *api.AnalysisEchoHandler,
	sched *scheduler.Scheduler,
	chClient *pkgch.Client,
	publisher repository.RecordPublisher,
	cacheSvc pkgcache.Service,
) *App {
	return &App{
		cfg:       cfg,
		logger:    l,
		handler:   handler,
		sched:     sched,
		chClient:  chClient,
		publisher: publisher,
		cache:     cacheSvc,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx := context.Background()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	if a.sched != nil {
		if err := a.sched.Start(a.cfg.Scheduler.Spec); err != nil {
			a.logger.Error("scheduler start error", applogger.Error(err))
			return err
		}
	}

	if err := a.httpServer.Start(); err != nil {
		a.logger.Error("http server start error", applogger.Error(err))
		return err
	}
	a.logger.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	if a.sched != nil {
		a.sched.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.publisher != nil {
		if err := a.publisher.Close(); err != nil {
			a.logger.Warn("publisher close error", applogger.Error(err))
		}
	}

	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}

	if closer, ok := a.cache.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
