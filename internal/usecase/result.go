// Package usecase holds the shared operation result contract: every
// top-level operation resolves to a code and a message.
package usecase

// Result codes. Code 0 is success; non-zero codes are known, expected
// empty-result conditions, distinct from failure (errors are returned
// separately and propagate to the invoking surface).
const (
	CodeOK    = 0
	CodeEmpty = 1
)

// Result is the outcome of one top-level operation.
type Result struct {
	Code    int
	Message string
}

// OK builds a success result.
func OK(message string) Result {
	return Result{Code: CodeOK, Message: message}
}

// Empty builds a successful no-op result for an expected empty condition.
func Empty(message string) Result {
	return Result{Code: CodeEmpty, Message: message}
}
