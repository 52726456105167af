// The server binary exposes the webhook surface: a liveness probe on the
// root path and an acknowledgement endpoint for inbound post events.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"notigram/internal/config"
	httphandler "notigram/internal/handler/http"
	"notigram/internal/observability/logging"
)

func main() {
	logger := logging.NewLogger()

	addr := ":" + config.LoadEnvString("SERVER_PORT", "8080")
	srv := &http.Server{
		Addr:              addr,
		Handler:           httphandler.NewRouter(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown failed", slog.Any("error", err))
	}
	logger.Info("server stopped")
}
