package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cvmaker-backend/internal/bootstrap"
	"cvmaker-backend/internal/shared/config"
	"cvmaker-backend/internal/shared/server"
	"cvmaker-backend/internal/shared/telemetry"
)

const shutdownTimeout = 20 * time.Second

func main() {
	cfg := config.Load()
	if err := telemetry.Init(cfg.LogLevel); err != nil {
		telemetry.Error("telemetry.init_failed", map[string]any{"err": err})
	}
	defer telemetry.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.Build(ctx, cfg)
	if err != nil {
		telemetry.Error("bootstrap.failed", map[string]any{"err": err})
		os.Exit(1)
	}
	defer app.Close()

	srv := &http.Server{
		Addr:              server.Addr(cfg.Port),
		Handler:           app.Router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		telemetry.Info("api.listening", map[string]any{"addr": srv.Addr, "env": cfg.Env})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			telemetry.Error("api.serve_failed", map[string]any{"err": err})
			os.Exit(1)
		}
	case <-ctx.Done():
	}

	telemetry.Info("api.shutting_down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		telemetry.Error("api.shutdown_failed", map[string]any{"err": err})
	}
}
