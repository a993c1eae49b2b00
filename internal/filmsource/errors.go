package filmsource

import (
	"errors"
	"fmt"
)

// Load error kinds. Every failed load wraps exactly one of these, so callers
// can tell them apart with errors.Is.
var (
	ErrTransport    = errors.New("transport error")
	ErrHTTPStatus   = errors.New("http status error")
	ErrFormat       = errors.New("invalid data format")
	ErrEmptyDataset = errors.New("empty dataset")
)

// LoadError describes a failed dataset load
type LoadError struct {
	Kind       error
	Source     string
	StatusCode int
	Err        error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case ErrHTTPStatus:
		return fmt.Sprintf("HTTP error! status: %d", e.StatusCode)
	case ErrEmptyDataset:
		return "Empty dataset"
	case ErrFormat:
		if e.Err != nil {
			return fmt.Sprintf("Invalid data format: %v", e.Err)
		}
		return "Invalid data format"
	default:
		if e.Err != nil {
			return fmt.Sprintf("failed to load %s: %v", e.Source, e.Err)
		}
		return fmt.Sprintf("failed to load %s", e.Source)
	}
}

// Unwrap exposes both the kind and the underlying cause
func (e *LoadError) Unwrap() []error {
	errs := []error{e.Kind}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func newLoadError(kind error, source string, err error) *LoadError {
	return &LoadError{Kind: kind, Source: source, Err: err}
}
