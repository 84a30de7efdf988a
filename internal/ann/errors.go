package ann

import (
	"errors"
	"fmt"
)

// ErrTooManyFields is returned when an entry has more tokens than the schema.
var ErrTooManyFields = errors.New("too many fields in annotation entry")

// DecodeError reports a malformed annotation entry.
type DecodeError struct {
	Entry  string // offending entry, after whitespace trimming
	Index  int    // 0-based entry index within the ANN value
	Tokens int    // number of '|' separated tokens found
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ann decode error in entry %d: %d fields, expected at most %d: %q",
		e.Index, e.Tokens, NumFields, e.Entry)
}

// Unwrap allows errors.Is(err, ErrTooManyFields).
func (e *DecodeError) Unwrap() error {
	return ErrTooManyFields
}
