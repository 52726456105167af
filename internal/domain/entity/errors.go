package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrNotFound indicates that a requested page was not found
	ErrNotFound = errors.New("page not found")

	// ErrTooManyCovers indicates that a post carries more cover images than
	// the chat platform's album limit (10). The send aborts before any
	// remote call is made.
	ErrTooManyCovers = errors.New("too many covers")
)

// UnsupportedBlockError indicates that a content block of a kind outside
// the supported set (or a nested block) was encountered during translation.
// It is fatal to the formatting of the current post, not a silent skip.
type UnsupportedBlockError struct {
	Kind   BlockKind
	Nested bool
}

// Error returns a message naming the offending block kind.
func (e *UnsupportedBlockError) Error() string {
	if e.Nested {
		return fmt.Sprintf("unsupported nested block of kind: %s", e.Kind)
	}
	return fmt.Sprintf("unsupported block kind: %s", e.Kind)
}

// IsUnsupportedBlock reports whether err wraps an UnsupportedBlockError.
func IsUnsupportedBlock(err error) bool {
	var target *UnsupportedBlockError
	return errors.As(err, &target)
}
