package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"finboard/internal/backend"
	"finboard/internal/config"
	"finboard/internal/events"
	apphttp "finboard/internal/http"
	applog "finboard/internal/log"
	"finboard/internal/services"
	"finboard/internal/session"
)

func main() {
	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	result, err := backend.Create(backend.Config{
		Type:      backend.Type(cfg.DataBackend),
		SQLiteDSN: cfg.SQLiteDSN,
	}, logger.WithComponent(applog.ComponentBackend).Logger)
	if err != nil {
		logger.Error("Failed to initialize ledger store", "error", err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	// Event publishing is optional; a broker that is down must not keep
	// the dashboard from starting.
	var publisher *events.Publisher
	if cfg.AMQPURL != "" {
		publisher, err = events.NewPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Warn("Event publisher unavailable, continuing without it", "error", err)
			publisher = nil
		} else {
			logger.Info("Event publisher connected", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	svc := services.NewLedgerService(result.Store, publisher)
	sessions := session.NewManager(result.Store, cfg.SessionTTL)

	srv := apphttp.NewServer(":"+cfg.Port, svc, sessions, apphttp.Options{
		MaxUploadBytes: cfg.MaxUploadBytes,
		SamplePath:     cfg.SampleDataPath,
	})
	srv.Handler = applog.Middleware(logger.WithComponent(applog.ComponentHTTP))(srv.Handler)
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting finboard server", "port", cfg.Port, applog.FieldBackend, cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
	}

	sessions.Stop()
	if err := svc.Close(); err != nil {
		logger.Warn("Service close error", "error", err)
	}
	if result.Cleanup != nil {
		if err := result.Cleanup(); err != nil {
			logger.Warn("Store cleanup error", "error", err)
		}
	}
	logger.Info("Server stopped gracefully")
}
