// Package observability centralizes the cross-cutting runtime concerns of
// the binaries.
//
// Subpackages:
//   - logging: structured logging with slog, plus context propagation
//
// Worker-facing metrics live next to their owner in internal/infra/worker.
package observability
