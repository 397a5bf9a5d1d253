package measure

import (
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"

	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/model"
)

var (
	_ geometry.Measurer    = (*CellMeasurer)(nil)
	_ geometry.LineBreaker = (*CellMeasurer)(nil)
	_ geometry.Measurer    = (*MonospaceMeasurer)(nil)
	_ geometry.LineBreaker = (*MonospaceMeasurer)(nil)
)

func TestWrapLines(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"fits on one line", "hello world", 20, []string{"hello world"}},
		{"breaks between words", "hello world", 5, []string{"hello", "world"}},
		{"packs words greedily", "a bb ccc dd e", 6, []string{"a bb", "ccc dd", "e"}},
		{"collapses whitespace", "  spaced    out  ", 20, []string{"spaced out"}},
		{"keeps explicit newlines", "one\ntwo", 20, []string{"one", "two"}},
		{"keeps blank paragraphs", "one\n\ntwo", 20, []string{"one", "", "two"}},
		{"breaks long words", "abcdefgh", 3, []string{"abc", "def", "gh"}},
		{"long word after short one", "hi abcdefg", 4, []string{"hi", "abcd", "efg"}},
		{"no limit", "a b c", 0, []string{"a b c"}},
		{"empty", "", 10, []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, wrapLines(tt.text, tt.limit, runewidth.StringWidth))
		})
	}
}

func TestWrapLines_WideRunes(t *testing.T) {
	lines := wrapLines("日本語テキスト", 4, runewidth.StringWidth)
	assert.Equal(t, []string{"日本", "語テ", "キス", "ト"}, lines)

	// A glyph wider than the limit still makes progress.
	lines = wrapLines("日本", 1, runewidth.StringWidth)
	assert.Equal(t, []string{"日", "本"}, lines)
}

func TestCellMeasurer(t *testing.T) {
	m := NewCellMeasurer()

	assert.Equal(t, model.Size{Width: 11, Height: 1}, m.Measure("hello world", model.Font{}, 40))
	assert.Equal(t, model.Size{Width: 5, Height: 2}, m.Measure("hello world", model.Font{}, 5))
	assert.Equal(t, model.Size{Width: 5, Height: 2}, m.Measure("hello world", model.Font{}, 5.9))
	assert.Equal(t, model.Size{Width: 6, Height: 1}, m.Measure("日本語", model.Font{}, 40))
	assert.Equal(t, []string{"hello", "world"}, m.Lines("hello world", model.Font{}, 7))
}

func TestCellMeasurer_IgnoresANSI(t *testing.T) {
	m := NewCellMeasurer()
	styled := "\x1b[1mbold\x1b[0m text"
	assert.Equal(t, model.Size{Width: 9, Height: 1}, m.Measure(styled, model.Font{}, 40))
}

func TestMonospaceMeasurer(t *testing.T) {
	m := NewMonospaceMeasurer()
	font := model.Font{Family: "mono", Size: 10}

	size := m.Measure("hello", font, 250)
	assert.InDelta(t, 30.0, size.Width, 1e-9)
	assert.InDelta(t, 12.0, size.Height, 1e-9)

	// 20pt at 6pt per column leaves 3 columns.
	size = m.Measure("hello", font, 20)
	assert.InDelta(t, 18.0, size.Width, 1e-9)
	assert.InDelta(t, 24.0, size.Height, 1e-9)
	assert.Equal(t, []string{"hel", "lo"}, m.Lines("hello", font, 20))
}

func TestMonospaceMeasurer_DefaultFontSize(t *testing.T) {
	m := NewMonospaceMeasurer()
	size := m.Measure("ab", model.Font{}, 0)
	assert.InDelta(t, 2*model.DefaultFontSize*DefaultAdvanceRatio, size.Width, 1e-9)
	assert.InDelta(t, model.DefaultFontSize*DefaultLineSpacing, size.Height, 1e-9)
}

func TestMonospaceMeasurer_WithEngine(t *testing.T) {
	engine := geometry.NewEngine(NewMonospaceMeasurer(), geometry.DefaultConstants())
	d, err := model.NewDescriptor(model.Point{X: 150, Y: 250}, model.ArrowBottom, "How about this? This is the second tooltip.")
	if !assert.NoError(t, err) {
		return
	}

	l := engine.Layout(*d, model.Bounds{Width: 320, Height: 568})

	assert.LessOrEqual(t, l.TextSize.Width, d.Positioning.MaxWidth)
	assert.Greater(t, len(l.Lines), 1)
	assert.GreaterOrEqual(t, l.Frame.MinX(), 10.0)
	assert.LessOrEqual(t, l.Frame.MaxX(), 310.0)
	assert.Equal(t, d.Anchor.Y, l.Frame.MaxY())
}
