package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// ObsServer serves the worker's observability endpoints on one port:
//
//   - GET /healthz       liveness, always 200
//   - GET /healthz/ready readiness, 200 once the scheduler is running
//   - GET /metrics       Prometheus exposition
//
// It shuts down gracefully when its context is cancelled.
type ObsServer struct {
	addr    string
	logger  *slog.Logger
	isReady atomic.Bool
	server  *http.Server
}

type healthResponse struct {
	Status string `json:"status"`
}

// NewObsServer builds the observability server for the given port. The
// server is not started; call Start.
func NewObsServer(port int, logger *slog.Logger) *ObsServer {
	return &ObsServer{
		addr:   fmt.Sprintf(":%d", port),
		logger: logger,
	}
}

// Start serves until ctx is cancelled. Returns http.ErrServerClosed on a
// graceful shutdown.
func (o *ObsServer) Start(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", o.handleLiveness)
	mux.HandleFunc("/healthz/ready", o.handleReadiness)
	mux.Handle("/metrics", promhttp.Handler())

	o.server = &http.Server{
		Addr:         o.addr,
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		o.logger.Info("observability server starting", slog.String("addr", o.addr))
		if err := o.server.ListenAndServe(); err != nil {
			errChan <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		o.logger.Info("observability server shutting down")
		if err := o.server.Shutdown(shutdownCtx); err != nil {
			o.logger.Error("observability server shutdown failed", slog.Any("error", err))
			return err
		}
		return http.ErrServerClosed

	case err := <-errChan:
		if err != http.ErrServerClosed {
			o.logger.Error("observability server failed", slog.Any("error", err))
		}
		return err
	}
}

// SetReady flips the readiness state reported by /healthz/ready.
func (o *ObsServer) SetReady(ready bool) {
	o.isReady.Store(ready)
	o.logger.Info("worker readiness changed", slog.Bool("ready", ready))
}

func (o *ObsServer) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeHealth(w, http.StatusOK, "ok")
}

func (o *ObsServer) handleReadiness(w http.ResponseWriter, _ *http.Request) {
	if o.isReady.Load() {
		writeHealth(w, http.StatusOK, "ok")
		return
	}
	writeHealth(w, http.StatusServiceUnavailable, "not ready")
}

func writeHealth(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: message})
}
