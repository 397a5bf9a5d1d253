package input

import (
	"context"
	"io"
	"os"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// maxStdinSize caps how much of standard input is read.
const maxStdinSize = 10 * 1024 * 1024

// StdinAdapter reads a tour from standard input.
type StdinAdapter struct {
	reader io.Reader
	opts   Options
}

// NewStdinAdapter creates a new StdinAdapter reading from os.Stdin.
func NewStdinAdapter(opts Options) *StdinAdapter {
	return &StdinAdapter{reader: os.Stdin, opts: opts}
}

// NewStdinAdapterWithReader creates a new StdinAdapter with a custom reader.
func NewStdinAdapterWithReader(r io.Reader, opts Options) *StdinAdapter {
	return &StdinAdapter{reader: r, opts: opts}
}

// Name returns the adapter identifier.
func (a *StdinAdapter) Name() string {
	return "stdin"
}

// Import reads the whole input and decodes it. JSON and TOML are detected
// from the content; anything else is read as YAML.
func (a *StdinAdapter) Import(ctx context.Context) ([]model.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(a.reader, maxStdinSize))
	if err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "failed to read stdin",
			Err:     err,
		}
	}

	if len(data) == 0 {
		return nil, nil
	}

	tips, err := DecodeTour(data, SniffFormat(data), a.opts)
	if err != nil {
		return nil, &AdapterError{
			Source:  "stdin",
			Message: "invalid tour",
			Err:     err,
		}
	}
	return tips, nil
}
