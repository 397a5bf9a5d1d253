package geometry

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/tipwalk/internal/measure"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// fixedMeasurer always reports the same size.
type fixedMeasurer struct {
	size model.Size
}

func (m fixedMeasurer) Measure(string, model.Font, float64) model.Size {
	return m.size
}

// gridMeasurer treats every byte as a 10x20 cell and wraps at maxWidth.
type gridMeasurer struct{}

const (
	gridCellW = 10
	gridCellH = 20
)

func (gridMeasurer) perLine(text string, maxWidth float64) int {
	perLine := len(text)
	if maxWidth > 0 && float64(len(text)*gridCellW) > maxWidth {
		perLine = max(int(maxWidth/gridCellW), 1)
	}
	return perLine
}

func (g gridMeasurer) Measure(text string, _ model.Font, maxWidth float64) model.Size {
	perLine := g.perLine(text, maxWidth)
	if perLine == 0 {
		return model.Size{}
	}
	lines := (len(text) + perLine - 1) / perLine
	return model.Size{Width: float64(perLine * gridCellW), Height: float64(lines * gridCellH)}
}

func (g gridMeasurer) Lines(text string, _ model.Font, maxWidth float64) []string {
	perLine := g.perLine(text, maxWidth)
	var lines []string
	for len(text) > perLine {
		lines = append(lines, text[:perLine])
		text = text[perLine:]
	}
	return append(lines, text)
}

func descriptor(anchor model.Point, side model.ArrowSide, text string) model.Descriptor {
	return model.Descriptor{
		ID:          "test",
		Anchor:      anchor,
		Side:        side,
		Text:        text,
		Drawing:     model.DefaultDrawingStyle(),
		Positioning: model.DefaultPositioningStyle(),
	}
}

var phone = model.Bounds{Width: 320, Height: 568}

func TestLayout_WorkedExample(t *testing.T) {
	engine := NewEngine(fixedMeasurer{size: model.Size{Width: 180, Height: 40}}, DefaultConstants())
	d := descriptor(model.Point{X: 50, Y: 150}, model.ArrowBottom, "Hello world. This is the first tooltip.")

	l := engine.Layout(d, phone)

	// 180 + 2*15 wide; 40 + 2*15 + 10 + 2 tall.
	assert.Equal(t, model.Size{Width: 210, Height: 82}, l.FrameSize)
	assert.Equal(t, 65.0, l.RectShift)
	assert.Equal(t, 0.0, l.ArrowShift)
	assert.Equal(t, model.Point{X: 10, Y: 68}, l.Frame.Origin)
	assert.Equal(t, l.FrameSize, l.Frame.Size)
	assert.False(t, l.Clamped)

	assert.Equal(t, model.Point{X: 40, Y: 82}, l.Arrow.Tip)
	assert.Equal(t, model.Point{X: 30, Y: 72}, l.Arrow.Left)
	assert.Equal(t, model.Point{X: 50, Y: 72}, l.Arrow.Right)
	assert.Equal(t, d.Anchor, l.ArrowTip())
}

func TestTextSize(t *testing.T) {
	tests := []struct {
		name        string
		measured    model.Size
		arrowHeight float64
		want        model.Size
	}{
		{"rounds up", model.Size{Width: 120.2, Height: 21.5}, 10, model.Size{Width: 121, Height: 22}},
		{"whole values unchanged", model.Size{Width: 40, Height: 20}, 10, model.Size{Width: 40, Height: 20}},
		{"narrow text widened to arrow", model.Size{Width: 3.2, Height: 17.1}, 10, model.Size{Width: 10, Height: 18}},
		{"empty text", model.Size{}, 6, model.Size{Width: 6, Height: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TextSize(fixedMeasurer{size: tt.measured}, "x", model.Font{}, 250, tt.arrowHeight)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFrameSize_Monotonic(t *testing.T) {
	p := model.DefaultPositioningStyle()
	sizes := []float64{0, 1, 10, 37.5, 120, 250}

	for _, w1 := range sizes {
		for _, w2 := range sizes {
			for _, h1 := range sizes {
				for _, h2 := range sizes {
					if w2 < w1 || h2 < h1 {
						continue
					}
					small := FrameSize(model.Size{Width: w1, Height: h1}, p, 10, 2)
					large := FrameSize(model.Size{Width: w2, Height: h2}, p, 10, 2)
					assert.LessOrEqual(t, small.Width, large.Width)
					assert.LessOrEqual(t, small.Height, large.Height)
				}
			}
		}
	}
}

func TestFrameSize(t *testing.T) {
	p := model.PositioningStyle{HorizontalInset: 15, VerticalInset: 15, MaxWidth: 250}
	got := FrameSize(model.Size{Width: 180, Height: 40}, p, 10, 2)
	assert.Equal(t, model.Size{Width: 210, Height: 82}, got)

	got = FrameSize(model.Size{Width: 20, Height: 1}, model.PositioningStyle{HorizontalInset: 2, VerticalInset: 1}, 1, 0)
	assert.Equal(t, model.Size{Width: 24, Height: 4}, got)
}

func TestHorizontalShift(t *testing.T) {
	t.Run("centered anchor does not shift", func(t *testing.T) {
		for x := 120.0; x <= 200; x += 5 {
			assert.Equal(t, 0.0, HorizontalShift(x, 200, phone, 10), "anchor %v", x)
		}
	})

	t.Run("near left edge pins left edge to inset", func(t *testing.T) {
		for x := 0.0; x <= 10; x += 0.5 {
			shift := HorizontalShift(x, 100, phone, 10)
			assert.InDelta(t, 10.0, x-50+shift, 1e-9, "anchor %v", x)
		}
	})

	t.Run("near right edge pins right edge to inset", func(t *testing.T) {
		shift := HorizontalShift(315, 100, phone, 10)
		assert.Equal(t, -55.0, shift)
		assert.Equal(t, 310.0, 315+50+shift)
	})
}

func TestArrowShift(t *testing.T) {
	assert.Equal(t, 0.0, ArrowShift(160, 10, phone, 12))
	// span [-5, 15] must start at 12
	assert.Equal(t, 17.0, ArrowShift(5, 10, phone, 12))
	// span [305, 325] must end at 308
	assert.Equal(t, -17.0, ArrowShift(315, 10, phone, 12))
}

func TestFrameFor(t *testing.T) {
	size := model.Size{Width: 100, Height: 60}

	top := FrameFor(model.Point{X: 200, Y: 200}, model.ArrowTop, size, 0)
	assert.Equal(t, model.Point{X: 150, Y: 200}, top.Origin)

	bottom := FrameFor(model.Point{X: 200, Y: 200}, model.ArrowBottom, size, -5)
	assert.Equal(t, model.Point{X: 145, Y: 140}, bottom.Origin)
	assert.Equal(t, size, bottom.Size)
}

func TestArrowGeometry(t *testing.T) {
	size := model.Size{Width: 100, Height: 60}

	top := ArrowGeometry(model.ArrowTop, size, 10, 30)
	assert.Equal(t, model.Point{X: 30, Y: 0}, top.Tip)
	assert.Equal(t, model.Point{X: 20, Y: 10}, top.Left)
	assert.Equal(t, model.Point{X: 40, Y: 10}, top.Right)

	bottom := ArrowGeometry(model.ArrowBottom, size, 10, 30)
	assert.Equal(t, model.Point{X: 30, Y: 60}, bottom.Tip)
	assert.Equal(t, model.Point{X: 20, Y: 50}, bottom.Left)
	assert.Equal(t, model.Point{X: 40, Y: 50}, bottom.Right)
}

func TestBodyRectAndTextOrigin(t *testing.T) {
	size := model.Size{Width: 100, Height: 60}
	p := model.PositioningStyle{HorizontalInset: 15, VerticalInset: 5}

	top := BodyRect(model.ArrowTop, size, 10)
	assert.Equal(t, model.Frame{Origin: model.Point{Y: 10}, Size: model.Size{Width: 100, Height: 50}}, top)
	assert.Equal(t, model.Point{X: 15, Y: 15}, TextOrigin(model.ArrowTop, p, 10))

	bottom := BodyRect(model.ArrowBottom, size, 10)
	assert.Equal(t, model.Frame{Size: model.Size{Width: 100, Height: 50}}, bottom)
	assert.Equal(t, model.Point{X: 15, Y: 5}, TextOrigin(model.ArrowBottom, p, 10))
}

func TestLayout_TopArrowSitsBelowAnchor(t *testing.T) {
	engine := NewEngine(fixedMeasurer{size: model.Size{Width: 100, Height: 40}}, DefaultConstants())
	d := descriptor(model.Point{X: 200, Y: 200}, model.ArrowTop, "final tooltip")

	l := engine.Layout(d, phone)

	assert.Equal(t, 200.0, l.Frame.Origin.Y)
	assert.Equal(t, 135.0, l.Frame.Origin.X)
	assert.Equal(t, d.Anchor, l.ArrowTip())
	assert.Equal(t, 10.0, l.Body.Origin.Y)
}

func TestLayout_ArrowTipStaysInsideFrame(t *testing.T) {
	engine := NewEngine(gridMeasurer{}, DefaultConstants())
	texts := []string{"hi", "a medium length tooltip", strings.Repeat("long text ", 12)}

	for _, side := range []model.ArrowSide{model.ArrowTop, model.ArrowBottom} {
		for _, text := range texts {
			for x := 0.0; x <= phone.Width; x += 4 {
				d := descriptor(model.Point{X: x, Y: 300}, side, text)
				l := engine.Layout(d, phone)

				assert.GreaterOrEqual(t, l.Arrow.Tip.X, 0.0, "side=%s x=%v text=%q", side, x, text)
				assert.LessOrEqual(t, l.Arrow.Tip.X, l.FrameSize.Width, "side=%s x=%v text=%q", side, x, text)
				assert.GreaterOrEqual(t, l.Frame.MinX(), 10.0-1e-9)
				assert.LessOrEqual(t, l.Frame.MaxX(), phone.Width-10+1e-9)
			}
		}
	}
}

func TestLayout_OversizeTextWrapsNarrower(t *testing.T) {
	engine := NewEngine(gridMeasurer{}, DefaultConstants())
	narrow := model.Bounds{Width: 200, Height: 400}
	d := descriptor(model.Point{X: 100, Y: 300}, model.ArrowBottom, strings.Repeat("x", 100))

	l := engine.Layout(d, narrow)

	require.True(t, l.Clamped)
	assert.Equal(t, 150.0, l.WrapWidth)
	assert.Equal(t, model.Size{Width: 150, Height: 140}, l.TextSize)
	assert.Equal(t, 180.0, l.FrameSize.Width)
	assert.Equal(t, 10.0, l.Frame.MinX())
	assert.Equal(t, 190.0, l.Frame.MaxX())
	assert.Equal(t, 10.0, l.ScreenInset)
	assert.Len(t, l.Lines, 7)
}

func TestLayout_OversizeUnbreakableIsClampedToAvailable(t *testing.T) {
	engine := NewEngine(fixedMeasurer{size: model.Size{Width: 400, Height: 20}}, DefaultConstants())
	d := descriptor(model.Point{X: 20, Y: 300}, model.ArrowTop, "unbreakable")

	l := engine.Layout(d, phone)

	require.True(t, l.Clamped)
	assert.Equal(t, 300.0, l.FrameSize.Width)
	assert.Equal(t, 270.0, l.TextSize.Width)
	assert.Equal(t, 10.0, l.Frame.MinX())
	assert.Equal(t, 310.0, l.Frame.MaxX())
}

func TestLayout_ScreenNarrowerThanPaddingDropsInset(t *testing.T) {
	engine := NewEngine(gridMeasurer{}, DefaultConstants())
	tiny := model.Bounds{Width: 20, Height: 100}
	d := descriptor(model.Point{X: 10, Y: 50}, model.ArrowTop, "hello")

	l := engine.Layout(d, tiny)

	require.True(t, l.Clamped)
	assert.Equal(t, 0.0, l.ScreenInset)
	assert.Equal(t, 20.0, l.FrameSize.Width)
	assert.Equal(t, 0.0, l.Frame.MinX())
	assert.Equal(t, 20.0, l.Frame.MaxX())
	assert.False(t, math.IsNaN(l.Arrow.Tip.X))

	// The text still wraps, one cell per line.
	assert.Equal(t, 1.0, l.WrapWidth)
	assert.Equal(t, []string{"h", "e", "l", "l", "o"}, l.Lines)
	assert.Equal(t, 100.0, l.TextSize.Height)
	assert.Equal(t, 142.0, l.FrameSize.Height)
}

func TestLayout_NarrowTerminalStillWraps(t *testing.T) {
	engine := NewEngine(measure.NewCellMeasurer(), Constants{ScreenInset: 1})
	d := model.Descriptor{
		ID:          "narrow",
		Anchor:      model.Point{X: 2.5, Y: 1},
		Side:        model.ArrowTop,
		Text:        "ab cd",
		Drawing:     model.DrawingStyle{ArrowHeight: 1},
		Positioning: model.PositioningStyle{HorizontalInset: 2, MaxWidth: 40},
	}

	l := engine.Layout(d, model.Bounds{Width: 5, Height: 20})

	require.True(t, l.Clamped)
	assert.Equal(t, []string{"a", "b", "c", "d"}, l.Lines)
	assert.Equal(t, 4.0, l.TextSize.Height)
	assert.Equal(t, 5.0, l.FrameSize.Width)
	assert.Equal(t, 0.0, l.Frame.MinX())
}

func TestLayout_RecomputesForNewBounds(t *testing.T) {
	engine := NewEngine(fixedMeasurer{size: model.Size{Width: 180, Height: 40}}, DefaultConstants())
	d := descriptor(model.Point{X: 300, Y: 150}, model.ArrowBottom, "resize me")

	wide := engine.Layout(d, model.Bounds{Width: 1024, Height: 768})
	narrow := engine.Layout(d, phone)

	assert.Equal(t, 0.0, wide.RectShift)
	assert.Equal(t, -95.0, narrow.RectShift)
	assert.NotEqual(t, wide.Frame, narrow.Frame)
}

func TestLayout_LinesOnlyFromLineBreakers(t *testing.T) {
	d := descriptor(model.Point{X: 160, Y: 150}, model.ArrowBottom, "abc")

	fixed := NewEngine(fixedMeasurer{size: model.Size{Width: 30, Height: 20}}, DefaultConstants())
	assert.Nil(t, fixed.Layout(d, phone).Lines)

	grid := NewEngine(gridMeasurer{}, DefaultConstants())
	assert.Equal(t, []string{"abc"}, grid.Layout(d, phone).Lines)
}
