package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/vkazan/tlarun/internal/ctxlog"
)

// healthHandler replies 200 OK, logging each hit the way the teacher's
// own healthHandler does.
func (a *App) healthHandler(ctx context.Context) http.HandlerFunc {
	logger := ctxlog.FromContext(ctx)
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "OK")
	}
}

// startHealthcheckServer starts the optional health endpoint while a
// Reachable exploration runs, matching the teacher's own
// healthCheckServer: disabled entirely when the port is non-positive,
// started in a goroutine otherwise so it never blocks Run.
func (a *App) startHealthcheckServer(ctx context.Context) {
	logger := ctxlog.FromContext(ctx)
	if a.config.HealthcheckPort <= 0 {
		logger.Debug("Health check server not started: disabled")
		return
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", a.healthHandler(ctx))
	addr := fmt.Sprintf(":%d", a.config.HealthcheckPort)
	a.httpServer = &http.Server{Addr: addr, Handler: mux}

	go func() {
		logger.Info("health check server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("health check server failed unexpectedly", "error", err)
		}
	}()
}

// closeHealthcheckServer shuts the health server down gracefully, a
// no-op if it was never started.
func (a *App) closeHealthcheckServer(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if a.httpServer == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	logger.Debug("shutting down health check server")
	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("health check server shutdown failed", "error", err)
		return err
	}
	return nil
}
