package input

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// Format is a tour file encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// FormatForPath picks the format from the file extension. Unknown
// extensions are read as YAML.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// SniffFormat guesses the format of data read without a file name.
func SniffFormat(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return FormatJSON
	}
	for _, line := range strings.Split(string(trimmed), "\n") {
		line = strings.TrimSpace(line)
		if line == "[[tips]]" || strings.HasPrefix(line, "[defaults") {
			return FormatTOML
		}
	}
	return FormatYAML
}

// Options are the styles tips start from before the file's own defaults
// and per-tip overrides are applied.
type Options struct {
	Drawing     model.DrawingStyle
	Positioning model.PositioningStyle
}

// DefaultOptions returns the library's point-based styles.
func DefaultOptions() Options {
	return Options{
		Drawing:     model.DefaultDrawingStyle(),
		Positioning: model.DefaultPositioningStyle(),
	}
}

// ErrMissingAnchor is returned for tips without an anchor.
var ErrMissingAnchor = errors.New("anchor is required")

// tourFile is the on-disk tour layout.
type tourFile struct {
	Defaults struct {
		Drawing     *drawingEntry     `json:"drawing" yaml:"drawing" toml:"drawing"`
		Positioning *positioningEntry `json:"positioning" yaml:"positioning" toml:"positioning"`
	} `json:"defaults" yaml:"defaults" toml:"defaults"`
	Tips []tipEntry `json:"tips" yaml:"tips" toml:"tips"`
}

type tipEntry struct {
	ID          string            `json:"id" yaml:"id" toml:"id"`
	Anchor      *model.Point      `json:"anchor" yaml:"anchor" toml:"anchor"`
	Arrow       string            `json:"arrow" yaml:"arrow" toml:"arrow"`
	Text        string            `json:"text" yaml:"text" toml:"text"`
	Drawing     *drawingEntry     `json:"drawing" yaml:"drawing" toml:"drawing"`
	Positioning *positioningEntry `json:"positioning" yaml:"positioning" toml:"positioning"`
}

// drawingEntry holds optional style overrides; nil fields keep the
// inherited value.
type drawingEntry struct {
	Foreground  *string    `json:"foreground" yaml:"foreground" toml:"foreground"`
	Background  *string    `json:"background" yaml:"background" toml:"background"`
	Border      *string    `json:"border" yaml:"border" toml:"border"`
	BorderWidth *float64   `json:"border_width" yaml:"border_width" toml:"border_width"`
	ArrowHeight *float64   `json:"arrow_height" yaml:"arrow_height" toml:"arrow_height"`
	ArrowWidth  *float64   `json:"arrow_width" yaml:"arrow_width" toml:"arrow_width"`
	Font        *fontEntry `json:"font" yaml:"font" toml:"font"`
}

type fontEntry struct {
	Family *string  `json:"family" yaml:"family" toml:"family"`
	Size   *float64 `json:"size" yaml:"size" toml:"size"`
}

type positioningEntry struct {
	HorizontalInset *float64 `json:"horizontal_inset" yaml:"horizontal_inset" toml:"horizontal_inset"`
	VerticalInset   *float64 `json:"vertical_inset" yaml:"vertical_inset" toml:"vertical_inset"`
	MaxWidth        *float64 `json:"max_width" yaml:"max_width" toml:"max_width"`
}

func (e *drawingEntry) apply(s model.DrawingStyle) model.DrawingStyle {
	if e == nil {
		return s
	}
	set(&s.ForegroundColor, e.Foreground)
	set(&s.BackgroundColor, e.Background)
	set(&s.BorderColor, e.Border)
	set(&s.BorderWidth, e.BorderWidth)
	set(&s.ArrowHeight, e.ArrowHeight)
	set(&s.ArrowWidth, e.ArrowWidth)
	if e.Font != nil {
		set(&s.Font.Family, e.Font.Family)
		set(&s.Font.Size, e.Font.Size)
	}
	return s
}

func (e *positioningEntry) apply(s model.PositioningStyle) model.PositioningStyle {
	if e == nil {
		return s
	}
	set(&s.HorizontalInset, e.HorizontalInset)
	set(&s.VerticalInset, e.VerticalInset)
	set(&s.MaxWidth, e.MaxWidth)
	return s
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// DecodeTour parses a tour document. Unknown keys are rejected so typos in
// style names do not pass silently. Tips without an id get a ULID.
func DecodeTour(data []byte, format Format, opts Options) ([]model.Descriptor, error) {
	var file tourFile
	if err := decode(data, format, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s tour: %w", format, err)
	}

	drawing := file.Defaults.Drawing.apply(opts.Drawing)
	positioning := file.Defaults.Positioning.apply(opts.Positioning)

	tips := make([]model.Descriptor, 0, len(file.Tips))
	for i, entry := range file.Tips {
		d, err := entry.descriptor(drawing, positioning)
		if err != nil {
			return nil, fmt.Errorf("tip %d: %w", i, err)
		}
		tips = append(tips, d)
	}
	return tips, nil
}

func (e tipEntry) descriptor(drawing model.DrawingStyle, positioning model.PositioningStyle) (model.Descriptor, error) {
	if e.Anchor == nil {
		return model.Descriptor{}, ErrMissingAnchor
	}

	side := model.ArrowTop
	if e.Arrow != "" {
		var err error
		if side, err = model.ParseArrowSide(e.Arrow); err != nil {
			return model.Descriptor{}, err
		}
	}

	id := e.ID
	if id == "" {
		var err error
		if id, err = model.NewID(); err != nil {
			return model.Descriptor{}, err
		}
	}

	d := model.Descriptor{
		ID:          id,
		Anchor:      *e.Anchor,
		Side:        side,
		Text:        e.Text,
		Drawing:     e.Drawing.apply(drawing),
		Positioning: e.Positioning.apply(positioning),
	}
	if err := d.Validate(); err != nil {
		return model.Descriptor{}, err
	}
	return d, nil
}

func decode(data []byte, format Format, v any) error {
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		return dec.Decode(v)
	case FormatTOML:
		return toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(v)
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
			return err
		}
		return nil
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}
