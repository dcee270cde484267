// cmd/marketplace-server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"pbf-marketplace/internal/api"
	"pbf-marketplace/internal/common/config"
	"pbf-marketplace/internal/common/events"
	"pbf-marketplace/internal/common/logger"
	"pbf-marketplace/internal/common/observability"
	"pbf-marketplace/internal/services/directory"
	"pbf-marketplace/internal/services/intake"
	"pbf-marketplace/internal/services/notifier"
	requirementstore "pbf-marketplace/internal/services/requirement-store"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting marketplace server...",
		zap.String("environment", cfg.App.Environment),
		zap.String("storage", cfg.Storage.Backend),
		zap.Bool("sendEmail", cfg.Notifications.SendEmail),
	)

	obs, err := observability.New(cfg.App.Name, cfg.Tracing, nil)
	if err != nil {
		zapLog.Fatal("observability init failed", zap.Error(err))
	}
	defer obs.Shutdown(context.Background())

	ctx := context.Background()

	// --- Requirement store with retry ---
	var (
		store      requirementstore.Store
		closeStore func() error
	)
	err = retryWithBackoff(func() error {
		var err error
		store, closeStore, err = requirementstore.Open(ctx, cfg.Storage, nil)
		return err
	}, 10, 2*time.Second, zapLog, fmt.Sprintf("%s store connection", cfg.Storage.Backend))
	if err != nil {
		zapLog.Fatal("requirement store failed after retries", zap.Error(err))
	}
	defer closeStore()
	zapLog.Info("Requirement store ready", zap.String("backend", cfg.Storage.Backend))

	// --- Notifier ---
	var transport notifier.Transport
	if cfg.Notifications.SendEmail {
		transport, err = notifier.NewTransport(ctx, cfg.Notifications, cfg.Integrations)
		if err != nil {
			zapLog.Fatal("notification transport init failed", zap.Error(err))
		}
		zapLog.Info("Live notifications enabled", zap.String("transport", transport.Name()))
		verifyTransport(ctx, transport, zapLog)
	} else {
		zapLog.Info("Email disabled, notifications will be logged only")
	}

	n, err := notifier.New(notifier.Config{
		SendEmail:       cfg.Notifications.SendEmail,
		FromEmail:       cfg.Notifications.FromEmail,
		DispatchTimeout: config.GetDuration(cfg.Notifications.DispatchTimeout),
	}, transport, log)
	if err != nil {
		zapLog.Fatal("notifier init failed", zap.Error(err))
	}

	// --- Events ---
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Kafka.Enabled {
		publisher = events.NewKafkaPublisher(cfg.Events.Kafka.Brokers, cfg.Events.Kafka.Topic)
		zapLog.Info("Kafka publisher enabled",
			zap.Strings("brokers", cfg.Events.Kafka.Brokers),
			zap.String("topic", cfg.Events.Kafka.Topic),
		)
	}
	defer publisher.Close()

	dir, err := directory.Load(cfg.Directory)
	if err != nil {
		zapLog.Fatal("farmer directory load failed", zap.Error(err))
	}
	zapLog.Info("Farmer directory loaded", zap.Int("farmers", dir.Len()))

	svc := intake.NewService(intake.ServiceDependencies{
		Store:         store,
		Directory:     dir,
		Notifier:      n,
		Publisher:     publisher,
		Observability: obs,
		Logger:        log,
	}, &intake.Config{MaxConcurrent: cfg.Notifications.MaxConcurrent})

	server := api.NewHTTPServer(cfg.Server, api.NewServer(api.Dependencies{
		Requirements: svc,
		Farmers:      dir,
		EmailEnabled: cfg.Notifications.SendEmail,
		Logger:       log,
		CORSOrigins:  cfg.Server.CORSAllowedOrigins,
	}))

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining requests...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("HTTP server shutdown failed", zap.Error(err))
	}

	zapLog.Info("Marketplace server stopped")
}

// verifyTransport checks relay credentials once at startup. A failure is
// logged and the server keeps running; each dispatch reports its own outcome.
func verifyTransport(ctx context.Context, transport notifier.Transport, zapLog *zap.Logger) {
	v, ok := transport.(notifier.Verifier)
	if !ok {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := v.Verify(ctx); err != nil {
		zapLog.Warn("Notification transport check failed", zap.String("transport", transport.Name()), zap.Error(err))
		return
	}
	zapLog.Info("Notification transport ready", zap.String("transport", transport.Name()))
}
