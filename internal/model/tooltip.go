// Package model defines the core data structures for tipwalk.
package model

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
)

// Point is a coordinate in screen (or frame-local) units.
type Point struct {
	X float64 `json:"x" yaml:"x" toml:"x"`
	Y float64 `json:"y" yaml:"y" toml:"y"`
}

// Size is a width/height pair in screen units.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Bounds is the viewport a tooltip must stay within.
// It is supplied by the host for every layout call.
type Bounds struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// MaxX returns the right edge of the bounds.
func (b Bounds) MaxX() float64 {
	return b.Width
}

// MaxY returns the bottom edge of the bounds.
func (b Bounds) MaxY() float64 {
	return b.Height
}

// Frame is a placed rectangle: origin plus size.
type Frame struct {
	Origin Point `json:"origin" yaml:"origin"`
	Size   Size  `json:"size" yaml:"size"`
}

// MinX returns the left edge.
func (f Frame) MinX() float64 { return f.Origin.X }

// MaxX returns the right edge.
func (f Frame) MaxX() float64 { return f.Origin.X + f.Size.Width }

// MinY returns the top edge.
func (f Frame) MinY() float64 { return f.Origin.Y }

// MaxY returns the bottom edge.
func (f Frame) MaxY() float64 { return f.Origin.Y + f.Size.Height }

// Contains reports whether p lies inside the frame (edges inclusive).
func (f Frame) Contains(p Point) bool {
	return p.X >= f.MinX() && p.X <= f.MaxX() && p.Y >= f.MinY() && p.Y <= f.MaxY()
}

// ArrowSide selects the edge of the tooltip that carries the arrow.
type ArrowSide int

const (
	// ArrowTop places the arrow on the top edge; the body sits below the anchor.
	ArrowTop ArrowSide = iota
	// ArrowBottom places the arrow on the bottom edge; the body sits above the anchor.
	ArrowBottom
)

// ArrowSideNames maps arrow sides to their textual form.
var ArrowSideNames = map[ArrowSide]string{
	ArrowTop:    "top",
	ArrowBottom: "bottom",
}

// String returns "top" or "bottom".
func (s ArrowSide) String() string {
	if name, ok := ArrowSideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("ArrowSide(%d)", int(s))
}

// Valid reports whether s is a known arrow side.
func (s ArrowSide) Valid() bool {
	_, ok := ArrowSideNames[s]
	return ok
}

// ParseArrowSide parses "top" or "bottom" (case-insensitive).
func ParseArrowSide(s string) (ArrowSide, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return ArrowTop, nil
	case "bottom":
		return ArrowBottom, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidSide, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ArrowSide) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSide, int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ArrowSide) UnmarshalText(text []byte) error {
	side, err := ParseArrowSide(string(text))
	if err != nil {
		return err
	}
	*s = side
	return nil
}

// Font describes the typeface used to measure and draw tooltip text.
type Font struct {
	Family string  `json:"family" yaml:"family" toml:"family"`
	Size   float64 `json:"size" yaml:"size" toml:"size"`
}

// DrawingStyle holds the cosmetic attributes of a tooltip.
// Only ArrowHeight and Font influence geometry.
type DrawingStyle struct {
	ForegroundColor string  `json:"foreground" yaml:"foreground" toml:"foreground"`
	BackgroundColor string  `json:"background" yaml:"background" toml:"background"`
	BorderColor     string  `json:"border" yaml:"border" toml:"border"`
	BorderWidth     float64 `json:"border_width" yaml:"border_width" toml:"border_width"`
	ArrowHeight     float64 `json:"arrow_height" yaml:"arrow_height" toml:"arrow_height"`
	ArrowWidth      float64 `json:"arrow_width" yaml:"arrow_width" toml:"arrow_width"`
	Font            Font    `json:"font" yaml:"font" toml:"font"`
}

// PositioningStyle holds the text padding and wrapping width.
type PositioningStyle struct {
	HorizontalInset float64 `json:"horizontal_inset" yaml:"horizontal_inset" toml:"horizontal_inset"`
	VerticalInset   float64 `json:"vertical_inset" yaml:"vertical_inset" toml:"vertical_inset"`
	MaxWidth        float64 `json:"max_width" yaml:"max_width" toml:"max_width"`
}

// Default style values, in points.
const (
	DefaultArrowHeight     = 10
	DefaultArrowWidth      = 10
	DefaultBorderWidth     = 0.5
	DefaultFontFamily      = "system"
	DefaultFontSize        = 18
	DefaultHorizontalInset = 15
	DefaultVerticalInset   = 15
	DefaultMaxWidth        = 250
)

// DefaultDrawingStyle returns the stock drawing style: black on white, 10pt arrow.
func DefaultDrawingStyle() DrawingStyle {
	return DrawingStyle{
		ForegroundColor: "#000000",
		BackgroundColor: "#ffffff",
		BorderColor:     "#000000",
		BorderWidth:     DefaultBorderWidth,
		ArrowHeight:     DefaultArrowHeight,
		ArrowWidth:      DefaultArrowWidth,
		Font:            Font{Family: DefaultFontFamily, Size: DefaultFontSize},
	}
}

// DefaultPositioningStyle returns the stock insets and wrapping width.
func DefaultPositioningStyle() PositioningStyle {
	return PositioningStyle{
		HorizontalInset: DefaultHorizontalInset,
		VerticalInset:   DefaultVerticalInset,
		MaxWidth:        DefaultMaxWidth,
	}
}

// Descriptor is one tooltip: where it points, which side carries the arrow,
// what it says and how it looks. Treat it as immutable once queued.
type Descriptor struct {
	ID          string           `json:"id" yaml:"id"`
	Anchor      Point            `json:"anchor" yaml:"anchor"`
	Side        ArrowSide        `json:"arrow" yaml:"arrow"`
	Text        string           `json:"text" yaml:"text"`
	Drawing     DrawingStyle     `json:"drawing" yaml:"drawing"`
	Positioning PositioningStyle `json:"positioning" yaml:"positioning"`
}

// Validation errors.
var (
	ErrEmptyID         = errors.New("id cannot be empty")
	ErrEmptyText       = errors.New("text cannot be empty")
	ErrInvalidSide     = errors.New("arrow side must be top or bottom")
	ErrNegativeSize    = errors.New("insets, max width and arrow size must not be negative")
	ErrNonFiniteAnchor = errors.New("anchor coordinates must be finite")
)

// NewID generates a fresh ULID string.
func NewID() (string, error) {
	id, err := ulid.New(ulid.Timestamp(time.Now()), rand.Reader)
	if err != nil {
		return "", fmt.Errorf("failed to generate ULID: %w", err)
	}
	return id.String(), nil
}

// NewDescriptor creates a Descriptor with a generated ULID and default styles.
func NewDescriptor(anchor Point, side ArrowSide, text string) (*Descriptor, error) {
	id, err := NewID()
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		ID:          id,
		Anchor:      anchor,
		Side:        side,
		Text:        text,
		Drawing:     DefaultDrawingStyle(),
		Positioning: DefaultPositioningStyle(),
	}, nil
}

// Validate checks that the descriptor is well formed.
// The geometry engine assumes validated input and never fails on its own.
func (d *Descriptor) Validate() error {
	if d.ID == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(d.Text) == "" {
		return ErrEmptyText
	}
	if !d.Side.Valid() {
		return ErrInvalidSide
	}
	if !isFinite(d.Anchor.X) || !isFinite(d.Anchor.Y) {
		return ErrNonFiniteAnchor
	}
	if d.Positioning.HorizontalInset < 0 ||
		d.Positioning.VerticalInset < 0 ||
		d.Positioning.MaxWidth < 0 ||
		d.Drawing.ArrowHeight < 0 ||
		d.Drawing.ArrowWidth < 0 ||
		d.Drawing.BorderWidth < 0 {
		return ErrNegativeSize
	}
	return nil
}

// TextTruncated returns the text collapsed to one line and cut to maxLen runes.
func (d *Descriptor) TextTruncated(maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	text := []rune(strings.Join(strings.Fields(d.Text), " "))
	if len(text) <= maxLen {
		return string(text)
	}
	if maxLen <= 3 {
		return string(text[:maxLen])
	}
	return string(text[:maxLen-3]) + "..."
}

// Clone returns a copy of the descriptor. All fields are values, so a
// shallow copy is already deep.
func (d *Descriptor) Clone() *Descriptor {
	clone := *d
	return &clone
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
