// Package http wires the minimal HTTP surface of the pipeline: a hello
// route and a submission stub for future bot-driven post delivery.
package http

import (
	"io"
	"log/slog"
	"net/http"

	"notigram/internal/handler/http/requestid"
	"notigram/internal/handler/http/respond"
)

// maxSubmissionBytes bounds the accepted submission body.
const maxSubmissionBytes = 1 << 20

// NewRouter builds the stub router. POST /posts only acknowledges receipt:
// submitted drafts are not persisted yet.
func NewRouter(logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, respond.Result{Code: 0, Message: "hello, world"})
	})

	mux.HandleFunc("POST /posts", func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxSubmissionBytes))
		if err != nil {
			respond.Error(w, http.StatusBadRequest, err)
			return
		}

		logger.Info("post submission received",
			slog.String("request_id", requestid.FromContext(r.Context())),
			slog.Int("bytes", len(body)))

		respond.JSON(w, http.StatusOK, respond.Result{Code: 0, Message: "Received."})
	})

	return requestid.Middleware(mux)
}
