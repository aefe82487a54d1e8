package document

import (
	"errors"
	"fmt"
)

// ErrMalformedMarkup reports markup that cannot be decomposed into the
// supported block/inline grammar.
var ErrMalformedMarkup = errors.New("malformed markup")

// ParseError locates a markup problem. It matches ErrMalformedMarkup under
// errors.Is.
type ParseError struct {
	// Offset is the byte offset of the offending token in the input.
	Offset int
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed markup at byte %d: %s: %v", e.Offset, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed markup at byte %d: %s", e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrMalformedMarkup, e.Err}
	}
	return []error{ErrMalformedMarkup}
}
