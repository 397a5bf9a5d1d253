package measure

import (
	"math"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// CellMeasurer measures text in terminal cells: one unit per column and
// one per line. The font is ignored. ANSI escape sequences in the text do
// not count towards the width.
type CellMeasurer struct{}

// NewCellMeasurer creates a terminal cell measurer.
func NewCellMeasurer() *CellMeasurer {
	return &CellMeasurer{}
}

// Measure returns the wrapped size of text in cells.
func (m *CellMeasurer) Measure(text string, font model.Font, maxWidth float64) model.Size {
	lines := m.Lines(text, font, maxWidth)
	return model.Size{
		Width:  float64(widest(lines, ansi.StringWidth)),
		Height: float64(len(lines)),
	}
}

// Lines returns text wrapped at maxWidth cells.
func (m *CellMeasurer) Lines(text string, _ model.Font, maxWidth float64) []string {
	return wrapLines(text, int(math.Floor(maxWidth)), ansi.StringWidth)
}

// Monospace defaults.
const (
	DefaultAdvanceRatio = 0.6
	DefaultLineSpacing  = 1.2
)

// MonospaceMeasurer approximates a fixed-pitch font in points. Each column
// advances Font.Size*AdvanceRatio and each line takes Font.Size*LineSpacing.
// East Asian wide runes count as two columns.
type MonospaceMeasurer struct {
	AdvanceRatio float64
	LineSpacing  float64
}

// NewMonospaceMeasurer creates a measurer with the default metrics.
func NewMonospaceMeasurer() *MonospaceMeasurer {
	return &MonospaceMeasurer{
		AdvanceRatio: DefaultAdvanceRatio,
		LineSpacing:  DefaultLineSpacing,
	}
}

// Measure returns the wrapped size of text in points.
func (m *MonospaceMeasurer) Measure(text string, font model.Font, maxWidth float64) model.Size {
	lines := m.Lines(text, font, maxWidth)
	size := fontSize(font)
	return model.Size{
		Width:  float64(widest(lines, runewidth.StringWidth)) * size * m.AdvanceRatio,
		Height: float64(len(lines)) * size * m.LineSpacing,
	}
}

// Lines returns text wrapped to the number of columns that fit maxWidth.
func (m *MonospaceMeasurer) Lines(text string, font model.Font, maxWidth float64) []string {
	cols := 0
	if maxWidth > 0 {
		advance := fontSize(font) * m.AdvanceRatio
		cols = max(int(math.Floor(maxWidth/advance)), 1)
	}
	return wrapLines(text, cols, runewidth.StringWidth)
}

func fontSize(font model.Font) float64 {
	if font.Size <= 0 {
		return model.DefaultFontSize
	}
	return font.Size
}
