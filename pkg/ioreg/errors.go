package ioreg

import (
	"errors"
	"fmt"
)

// ErrFormat matches every error caused by malformed registry output.
var ErrFormat = errors.New("malformed ioreg output")

// FormatError describes where a registry dump stopped making sense.
type FormatError struct {
	// Line is 1-based.
	Line   int
	Reason string
	Text   string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("ioreg line %d: %s: %q", e.Line, e.Reason, e.Text)
}

// Is makes errors.Is(err, ErrFormat) true.
func (e *FormatError) Is(target error) bool {
	return target == ErrFormat
}
