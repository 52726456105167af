// Package respond provides small helpers for writing JSON HTTP responses.
package respond

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Result is the JSON envelope shared with the CLI: code 0 means success,
// non-zero codes are known, expected empty-result conditions.
type Result struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON writes a JSON response with the given status code and body.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; the failure can only be logged.
		slog.Default().Error("failed to encode JSON response",
			slog.Int("status_code", status),
			slog.Any("error", err))
	}
}

// Error writes a JSON error envelope with the given status code.
func Error(w http.ResponseWriter, status int, err error) {
	JSON(w, status, map[string]string{"error": err.Error()})
}
