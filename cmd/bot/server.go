package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/phrazzld/cunningbot/internal/events"
)

// httpShutdownBudget bounds how long in-flight requests may take to finish.
const httpShutdownBudget = 10 * time.Second

// startHTTPServer serves router until ctx is done or the listener fails.
// On a shutdown signal it announces the shutdown before draining requests.
func (app *application) startHTTPServer(ctx context.Context, router http.Handler) error {
	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.config.Server.Port)),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		app.logger.Info("starting server", "port", app.config.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	var failure error
	select {
	case <-ctx.Done():
		app.logger.Info("shutdown signal received, shutting down")
		app.emitLifecycle(context.WithoutCancel(ctx), events.TypeBotStopping, "signal")
	case err := <-serveErr:
		if err != nil {
			app.logger.Error("server failed", "error", err)
			failure = err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), httpShutdownBudget)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("server shutdown failed", "error", err)
		return errors.Join(failure, fmt.Errorf("server shutdown failed: %w", err))
	}

	app.logger.Info("server shutdown completed")
	return failure
}
