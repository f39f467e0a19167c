package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/lawbotvn/lawbot/internal/adapters/http"
	"github.com/lawbotvn/lawbot/internal/bootstrap"
	"github.com/lawbotvn/lawbot/internal/config"
	"github.com/lawbotvn/lawbot/internal/observability/logging"
	"github.com/lawbotvn/lawbot/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	logger := logging.NewJSONLogger("api", cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	// A failed initial load keeps the server up in the not-ready state;
	// the next reload signal retries.
	if err := app.Assistant.Load(ctx); err != nil {
		logger.Error("initial_load_failed", "error", err)
	}

	go func() {
		err := app.Queue.SubscribeIndexRebuilt(ctx, func(ctx context.Context) error {
			logger.Info("index_reload_signal")
			return app.Assistant.Load(ctx)
		})
		if err != nil && ctx.Err() == nil {
			logger.Error("reload_subscription_failed", "error", err)
		}
	}()

	serverMetrics := metrics.NewServerMetrics("api")
	router := httpadapter.NewRouter(app.Assistant, serverMetrics, cfg).Handler()
	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("api_listening", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("api server error: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("api_shutdown_error", "error", err)
	}
}
