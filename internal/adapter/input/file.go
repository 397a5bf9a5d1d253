package input

import (
	"context"
	"os"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// FileAdapter reads a tour from a YAML, JSON or TOML file.
type FileAdapter struct {
	path string
	opts Options
}

// NewFileAdapter creates a FileAdapter. The format follows the extension.
func NewFileAdapter(path string, opts Options) *FileAdapter {
	return &FileAdapter{path: path, opts: opts}
}

// Name returns the adapter identifier.
func (a *FileAdapter) Name() string {
	return "file"
}

// Path returns the tour file path.
func (a *FileAdapter) Path() string {
	return a.path
}

// Import reads and decodes the tour file.
func (a *FileAdapter) Import(ctx context.Context) ([]model.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(a.path)
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "failed to read tour",
			Err:     err,
		}
	}

	tips, err := DecodeTour(data, FormatForPath(a.path), a.opts)
	if err != nil {
		return nil, &AdapterError{
			Source:  a.path,
			Message: "invalid tour",
			Err:     err,
		}
	}
	return tips, nil
}
