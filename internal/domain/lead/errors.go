package lead

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrUnknownVariant = errors.New("unknown form variant")
	ErrUnknownResult  = errors.New("unknown submission result")
)

// ValidationError is returned when the draft fails the schema. No request was sent.
type ValidationError struct {
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("lead validation failed: %s", strings.Join(names, ", "))
}

// ServerError is returned when the broker answers with a non-2xx status.
type ServerError struct {
	StatusCode int
	StatusText string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("broker responded %d %s", e.StatusCode, e.StatusText)
}

// TransportError is returned when the request could not complete.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("broker request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err carries field errors.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
