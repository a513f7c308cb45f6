package decoder

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField     = errors.New("missing required field")
	ErrUnsupportedFrame = errors.New("unsupported frame type")
)

// DecodeError reports a frame that could not be turned into a snapshot.
// Field names the offending JSON path when the failure is field specific.
type DecodeError struct {
	Field string
	Err   error
}

func (e *DecodeError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("decode frame: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("decode frame: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func missing(field string) error {
	return &DecodeError{Field: field, Err: ErrMissingField}
}
