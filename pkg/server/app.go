package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	domrepo "PropSight/internal/domain/repository"
	"PropSight/internal/usecase"
	pkgch "PropSight/pkg/clickhouse"
	"PropSight/pkg/config"
	xhttp "PropSight/pkg/http"
	pkgkafka "PropSight/pkg/kafka"
	applogger "PropSight/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg         *config.Config
	logger      *applogger.Logger
	collector   *usecase.ListingCollector
	consumer    *pkgkafka.Consumer
	kh          pkgkafka.MessageHandler
	chClient    *pkgch.Client
	reportStore domrepo.ReportStore
	httpServer  *xhttp.Server
	httpHandler xhttp.Handler
	Proc        *usecase.ListingProcessor
}

// New creates a new App instance with all dependencies.
func New(
	cfg *config.Config,
	logger *applogger.Logger,
	collector *usecase.ListingCollector,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	chClient *pkgch.Client,
	reportStore domrepo.ReportStore,
	handler xhttp.Handler,
) *App {
	return &App{
		cfg:         cfg,
		logger:      logger,
		collector:   collector,
		consumer:    consumer,
		kh:          kh,
		chClient:    chClient,
		reportStore: reportStore,
		httpHandler: handler,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	l := a.logger

	a.httpServer = xhttp.NewServer(a.httpHandler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
	)

	// Start collector
	go func() {
		if err := a.collector.Start(ctx); err != nil {
			l.Error("collector error", applogger.Error(err))
		}
	}()
	l.Info("collector started",
		applogger.String("provider", a.cfg.Provider.Mode),
		applogger.Strings("markets", a.cfg.Provider.Markets),
	)

	// Start consumer if configured
	if a.consumer != nil && a.kh != nil {
		a.consumer.RegisterHandler(a.kh)
		go func() {
			if err := a.consumer.Start(); err != nil {
				l.Error("kafka consumer error", applogger.Error(err))
			}
		}()
		l.Info("kafka consumer started", applogger.String("topic", a.kh.Topic()))
	}

	// Start HTTP server
	if err := a.httpServer.Start(); err != nil {
		l.Error("http server start error", applogger.Error(err))
		return err
	}

	// Wait for interrupt
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	l.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// shutdown gracefully stops all services.
func (a *App) shutdown(ctx context.Context) error {
	l := a.logger

	// Stop collector (pipeline + feed)
	if err := a.collector.Shutdown(ctx); err != nil {
		l.Warn("collector stop error", applogger.Error(err))
	}

	// Shutdown HTTP server
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		l.Error("http shutdown error", applogger.Error(err))
	}

	// Stop consumer
	if a.consumer != nil {
		if err := a.consumer.Stop(ctx); err != nil {
			l.Warn("kafka consumer stop error", applogger.Error(err))
		}
	}

	// Close processor resources (publisher/snapshot store)
	if a.Proc != nil {
		a.Proc.Close()
	}

	// Close infrastructure clients
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			l.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.reportStore != nil {
		if err := a.reportStore.Close(); err != nil {
			l.Warn("report store close error", applogger.Error(err))
		}
	}

	l.Info("shutdown complete")
	return nil
}
