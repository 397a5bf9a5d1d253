// Package input provides input adapters for tour sources.
package input

import (
	"context"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// StdinSource is the source name that selects standard input.
const StdinSource = "-"

// TourAdapter loads tour tips from a source.
type TourAdapter interface {
	// Name returns the adapter identifier (e.g., "file", "stdin").
	Name() string

	// Import loads the tips in tour order.
	Import(ctx context.Context) ([]model.Descriptor, error)
}

// NewAdapter creates a TourAdapter for the given source: "-" reads standard
// input, anything else is a file path.
func NewAdapter(source string, opts Options) (TourAdapter, error) {
	switch source {
	case "":
		return nil, &AdapterError{
			Source:  source,
			Message: "no tour source given",
		}
	case StdinSource:
		return NewStdinAdapter(opts), nil
	default:
		return NewFileAdapter(source, opts), nil
	}
}

// AdapterError represents an adapter-related error.
type AdapterError struct {
	Source  string
	Message string
	Err     error
}

func (e *AdapterError) Error() string {
	msg := e.Message
	if e.Source != "" {
		msg = e.Source + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *AdapterError) Unwrap() error {
	return e.Err
}
