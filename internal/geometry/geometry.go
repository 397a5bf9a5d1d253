// Package geometry computes tooltip placement: the body frame, the arrow
// triangle and the shifts that keep both away from the screen edges.
//
// Every function here is a pure function of its arguments. Nothing is
// cached, so a layout can never go stale when a descriptor or the screen
// bounds change; callers simply lay out again.
package geometry

import (
	"math"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// Measurer reports the size text occupies when wrapped at maxWidth.
type Measurer interface {
	Measure(text string, font model.Font, maxWidth float64) model.Size
}

// LineBreaker is implemented by measurers that can also return the wrapped
// lines they measured. Hosts that draw text themselves use it.
type LineBreaker interface {
	Lines(text string, font model.Font, maxWidth float64) []string
}

// Default constants, in points.
const (
	DefaultScreenInset         = 10
	DefaultArrowMargin         = 2
	DefaultTextLayerAdjustment = 2
)

// Constants are the tunable margins of the layout.
type Constants struct {
	// ScreenInset is the minimum distance between the body and the screen edge.
	ScreenInset float64
	// ArrowMargin is added to ScreenInset when clamping the arrow.
	ArrowMargin float64
	// TextLayerAdjustment is extra body height for text renderers that
	// overshoot their measured height by a unit or two.
	TextLayerAdjustment float64
}

// DefaultConstants returns the point-based defaults.
func DefaultConstants() Constants {
	return Constants{
		ScreenInset:         DefaultScreenInset,
		ArrowMargin:         DefaultArrowMargin,
		TextLayerAdjustment: DefaultTextLayerAdjustment,
	}
}

// TextSize measures text, rounds both axes up to whole units and widens the
// result to at least arrowHeight so the arrow base never exceeds the body.
func TextSize(m Measurer, text string, font model.Font, maxWidth, arrowHeight float64) model.Size {
	size := m.Measure(text, font, maxWidth)
	size.Width = math.Ceil(size.Width)
	size.Height = math.Ceil(size.Height)

	if size.Width < arrowHeight {
		size.Width = arrowHeight
	}
	return size
}

// FrameSize adds the insets, the arrow and the text layer adjustment to the
// measured text size.
func FrameSize(text model.Size, p model.PositioningStyle, arrowHeight, adjustment float64) model.Size {
	return model.Size{
		Width:  text.Width + 2*p.HorizontalInset,
		Height: text.Height + 2*p.VerticalInset + arrowHeight + adjustment,
	}
}

// HorizontalShift returns how far the body, nominally centered on anchorX,
// must move right (positive) or left (negative) to stay inset from the
// screen edges.
func HorizontalShift(anchorX, frameWidth float64, b model.Bounds, inset float64) float64 {
	return clampSpan(anchorX-frameWidth/2, anchorX+frameWidth/2, b, inset)
}

// ArrowShift is HorizontalShift applied to the arrow's own span
// [anchorX-arrowHeight, anchorX+arrowHeight], using margin as the inset.
func ArrowShift(anchorX, arrowHeight float64, b model.Bounds, margin float64) float64 {
	return clampSpan(anchorX-arrowHeight, anchorX+arrowHeight, b, margin)
}

// clampSpan moves [minX, maxX] inside [inset, b.MaxX()-inset].
// The left edge wins when both sides overflow.
func clampSpan(minX, maxX float64, b model.Bounds, inset float64) float64 {
	switch {
	case minX < inset:
		return inset - minX
	case maxX > b.MaxX()-inset:
		return (b.MaxX() - inset) - maxX
	default:
		return 0
	}
}

// ArrowLocalX is the arrow tip's x in frame-local coordinates. The body
// shift is undone so the arrow stays over the anchor, then the arrow's own
// shift is applied.
func ArrowLocalX(frameWidth, rectShift, arrowShift float64) float64 {
	return frameWidth/2 - rectShift + arrowShift
}

// FrameFor places a body of the given size so its arrow edge touches anchor.
func FrameFor(anchor model.Point, side model.ArrowSide, size model.Size, rectShift float64) model.Frame {
	origin := model.Point{X: anchor.X - size.Width/2 + rectShift, Y: anchor.Y}
	if side == model.ArrowBottom {
		origin.Y = anchor.Y - size.Height
	}
	return model.Frame{Origin: origin, Size: size}
}

// Arrow is the triangle in frame-local coordinates.
type Arrow struct {
	Tip   model.Point `json:"tip" yaml:"tip"`
	Left  model.Point `json:"left" yaml:"left"`
	Right model.Point `json:"right" yaml:"right"`
}

// ArrowGeometry returns the arrow triangle with its tip at localX on the
// anchor-facing edge.
func ArrowGeometry(side model.ArrowSide, frameSize model.Size, arrowHeight, localX float64) Arrow {
	if side == model.ArrowBottom {
		baseY := frameSize.Height - arrowHeight
		return Arrow{
			Tip:   model.Point{X: localX, Y: frameSize.Height},
			Left:  model.Point{X: localX - arrowHeight, Y: baseY},
			Right: model.Point{X: localX + arrowHeight, Y: baseY},
		}
	}
	return Arrow{
		Tip:   model.Point{X: localX, Y: 0},
		Left:  model.Point{X: localX - arrowHeight, Y: arrowHeight},
		Right: model.Point{X: localX + arrowHeight, Y: arrowHeight},
	}
}

// BodyRect is the rectangle part of the tooltip in frame-local coordinates.
func BodyRect(side model.ArrowSide, frameSize model.Size, arrowHeight float64) model.Frame {
	body := model.Frame{
		Size: model.Size{Width: frameSize.Width, Height: frameSize.Height - arrowHeight},
	}
	if side == model.ArrowTop {
		body.Origin.Y = arrowHeight
	}
	return body
}

// TextOrigin is the top-left corner of the text block in frame-local
// coordinates.
func TextOrigin(side model.ArrowSide, p model.PositioningStyle, arrowHeight float64) model.Point {
	origin := model.Point{X: p.HorizontalInset, Y: p.VerticalInset}
	if side == model.ArrowTop {
		origin.Y += arrowHeight
	}
	return origin
}
