package geometry

import (
	"github.com/jmylchreest/tipwalk/internal/model"
)

// Layout is the complete placement of one tooltip for one screen size.
// Frame is in screen coordinates; Arrow, Body and TextOrigin are local to
// the frame.
type Layout struct {
	TextSize    model.Size  `json:"text_size" yaml:"text_size"`
	FrameSize   model.Size  `json:"frame_size" yaml:"frame_size"`
	RectShift   float64     `json:"rect_shift" yaml:"rect_shift"`
	ArrowShift  float64     `json:"arrow_shift" yaml:"arrow_shift"`
	Frame       model.Frame `json:"frame" yaml:"frame"`
	Arrow       Arrow       `json:"arrow" yaml:"arrow"`
	Body        model.Frame `json:"body" yaml:"body"`
	TextOrigin  model.Point `json:"text_origin" yaml:"text_origin"`
	WrapWidth   float64     `json:"wrap_width" yaml:"wrap_width"`
	ScreenInset float64     `json:"screen_inset" yaml:"screen_inset"`
	Lines       []string    `json:"lines,omitempty" yaml:"lines,omitempty"`

	// Clamped is set when the tooltip did not fit the screen at its
	// requested width and was narrowed.
	Clamped bool `json:"clamped" yaml:"clamped"`
}

// ArrowTip returns the arrow tip in screen coordinates.
func (l Layout) ArrowTip() model.Point {
	return model.Point{
		X: l.Frame.Origin.X + l.Arrow.Tip.X,
		Y: l.Frame.Origin.Y + l.Arrow.Tip.Y,
	}
}

// Engine lays out descriptors with a fixed measurer and constants.
type Engine struct {
	Measurer  Measurer
	Constants Constants
}

// NewEngine creates a layout engine.
func NewEngine(m Measurer, c Constants) *Engine {
	return &Engine{Measurer: m, Constants: c}
}

// Layout computes the placement of d within b.
//
// When the frame is wider than the screen minus both insets, the text is
// measured again at the widest width that fits, and the frame is clamped
// to the available width if it still overflows. If even the insets and
// padding do not fit, the screen inset collapses to zero and the frame
// spans the whole screen.
func (e *Engine) Layout(d model.Descriptor, b model.Bounds) Layout {
	c := e.Constants
	ah := d.Drawing.ArrowHeight
	pos := d.Positioning
	padding := 2 * pos.HorizontalInset

	inset := c.ScreenInset
	wrap := pos.MaxWidth
	text := TextSize(e.Measurer, d.Text, d.Drawing.Font, wrap, ah)
	frame := FrameSize(text, pos, ah, c.TextLayerAdjustment)

	clamped := false
	if avail := b.Width - 2*inset; frame.Width > avail {
		clamped = true
		if avail > padding {
			wrap = avail - padding
			text = TextSize(e.Measurer, d.Text, d.Drawing.Font, wrap, ah)
			frame = FrameSize(text, pos, ah, c.TextLayerAdjustment)
			if frame.Width > avail {
				frame.Width = avail
				text.Width = avail - padding
			}
		} else {
			inset = 0
			// Wrap at least one column wide; zero would disable wrapping.
			wrap = max(b.Width-padding, 1)
			text = TextSize(e.Measurer, d.Text, d.Drawing.Font, wrap, ah)
			frame = FrameSize(text, pos, ah, c.TextLayerAdjustment)
			if frame.Width > b.Width {
				frame.Width = b.Width
				text.Width = max(b.Width-padding, 0)
			}
		}
	}

	rectShift := HorizontalShift(d.Anchor.X, frame.Width, b, inset)
	arrowShift := ArrowShift(d.Anchor.X, ah, b, inset+c.ArrowMargin)
	localX := ArrowLocalX(frame.Width, rectShift, arrowShift)

	l := Layout{
		TextSize:    text,
		FrameSize:   frame,
		RectShift:   rectShift,
		ArrowShift:  arrowShift,
		Frame:       FrameFor(d.Anchor, d.Side, frame, rectShift),
		Arrow:       ArrowGeometry(d.Side, frame, ah, localX),
		Body:        BodyRect(d.Side, frame, ah),
		TextOrigin:  TextOrigin(d.Side, pos, ah),
		WrapWidth:   wrap,
		ScreenInset: inset,
		Clamped:     clamped,
	}

	if lb, ok := e.Measurer.(LineBreaker); ok {
		l.Lines = lb.Lines(d.Text, d.Drawing.Font, wrap)
	}

	return l
}
