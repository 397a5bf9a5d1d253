// Package output provides output formatters for computed tooltip layouts.
package output

import (
	"fmt"
	"io"

	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// Entry is one laid-out tip.
type Entry struct {
	Index      int              `json:"index" yaml:"index"` // 1-based tour position
	Descriptor model.Descriptor `json:"descriptor" yaml:"descriptor"`
	Bounds     model.Bounds     `json:"bounds" yaml:"bounds"`
	Layout     geometry.Layout  `json:"layout" yaml:"layout"`
}

// Formatter formats layouts for output.
type Formatter interface {
	// Format writes formatted entries to the writer.
	Format(w io.Writer, entries []Entry) error
}

// FormatType represents an output format type.
type FormatType string

const (
	FormatJSON  FormatType = "json"
	FormatYAML  FormatType = "yaml"
	FormatPlain FormatType = "plain"
	FormatIDs   FormatType = "ids"
)

// NewFormatter creates a formatter for the specified format type.
func NewFormatter(format FormatType, opts FormatterOptions) (Formatter, error) {
	switch format {
	case FormatJSON:
		return NewJSONFormatter(opts), nil
	case FormatYAML:
		return NewYAMLFormatter(opts), nil
	case FormatIDs:
		return NewIDsFormatter(), nil
	case FormatPlain, "":
		return NewPlainFormatter(opts)
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

// FormatterOptions configures formatter behavior.
type FormatterOptions struct {
	Template   string // Custom template for plain format
	ShowIndex  bool   // Show 1-based index prefix
	TextMaxLen int    // Maximum text length (0 = unlimited)
}

// DefaultFormatterOptions returns sensible defaults for plain output.
func DefaultFormatterOptions() FormatterOptions {
	return FormatterOptions{
		ShowIndex:  true,
		TextMaxLen: 40,
	}
}

// Entries pairs each descriptor with its layout.
func Entries(engine *geometry.Engine, tips []model.Descriptor, b model.Bounds) []Entry {
	entries := make([]Entry, 0, len(tips))
	for i, d := range tips {
		entries = append(entries, Entry{
			Index:      i + 1,
			Descriptor: d,
			Bounds:     b,
			Layout:     engine.Layout(d, b),
		})
	}
	return entries
}
