// Package canvas is a fixed-size grid of terminal cells. Tooltips are drawn
// into it from a geometry.Layout and the grid is rendered with lipgloss, one
// style run at a time.
package canvas

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// StyleKey selects the style a cell is rendered with.
type StyleKey uint8

const (
	StyleScreen StyleKey = iota
	StyleMarker
	StyleMuted
	StyleBody
	StyleBorder
	StyleText
	StyleArrow
)

// Styles maps style keys to lipgloss styles. Missing keys render unstyled.
type Styles map[StyleKey]lipgloss.Style

// Cell is one terminal cell. A wide rune occupies its cell and marks the
// next one as a continuation.
type Cell struct {
	Rune         rune
	Style        StyleKey
	continuation bool
}

// Canvas is a width x height grid of cells.
type Canvas struct {
	width  int
	height int
	cells  []Cell
}

// New creates a canvas filled with blank screen cells.
func New(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	c := &Canvas{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
	c.Clear()
	return c
}

// Width returns the number of columns.
func (c *Canvas) Width() int { return c.width }

// Height returns the number of rows.
func (c *Canvas) Height() int { return c.height }

// Bounds returns the canvas size as layout bounds.
func (c *Canvas) Bounds() model.Bounds {
	return model.Bounds{Width: float64(c.width), Height: float64(c.height)}
}

// Clear resets every cell to a blank screen cell.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' ', Style: StyleScreen}
	}
}

func (c *Canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.width && y < c.height
}

// Cell returns the cell at x, y. Cells outside the canvas are blank.
func (c *Canvas) Cell(x, y int) Cell {
	if !c.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.width+x]
}

// Set writes one rune. Writes outside the canvas are dropped. A rune too
// wide to fit at the right edge is replaced by a space.
func (c *Canvas) Set(x, y int, r rune, style StyleKey) {
	if !c.inside(x, y) {
		return
	}

	// Overwriting half of a wide rune leaves a blank in the other half.
	if cur := c.cells[y*c.width+x]; cur.continuation && x > 0 {
		c.cells[y*c.width+x-1] = Cell{Rune: ' ', Style: c.cells[y*c.width+x-1].Style}
	} else if runewidth.RuneWidth(cur.Rune) == 2 && x+1 < c.width {
		c.cells[y*c.width+x+1] = Cell{Rune: ' ', Style: cur.Style}
	}

	if runewidth.RuneWidth(r) == 2 {
		if x+1 >= c.width {
			c.cells[y*c.width+x] = Cell{Rune: ' ', Style: style}
			return
		}
		c.cells[y*c.width+x] = Cell{Rune: r, Style: style}
		c.cells[y*c.width+x+1] = Cell{Rune: ' ', Style: style, continuation: true}
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Style: style}
}

// WriteString writes s starting at x, y and stops before column limit.
// It returns the column after the last rune written.
func (c *Canvas) WriteString(x, y int, s string, style StyleKey, limit int) int {
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if x+w > limit {
			break
		}
		c.Set(x, y, r, style)
		x += w
	}
	return x
}

// Fill sets every cell of the rectangle to r.
func (c *Canvas) Fill(x, y, w, h int, r rune, style StyleKey) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			c.Set(col, row, r, style)
		}
	}
}

// Lines returns the canvas as text, one string per row, trailing blanks
// removed.
func (c *Canvas) Lines() []string {
	lines := make([]string, c.height)
	for y := 0; y < c.height; y++ {
		var sb strings.Builder
		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.continuation {
				continue
			}
			sb.WriteRune(cell.Rune)
		}
		lines[y] = strings.TrimRight(sb.String(), " ")
	}
	return lines
}

// String returns Lines joined by newlines.
func (c *Canvas) String() string {
	return strings.Join(c.Lines(), "\n")
}

// Render renders the canvas with styles. Consecutive cells sharing a style
// are rendered as one run.
func (c *Canvas) Render(styles Styles) string {
	var out strings.Builder
	var run strings.Builder

	for y := 0; y < c.height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}

		current := StyleScreen
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if style, ok := styles[current]; ok {
				out.WriteString(style.Render(run.String()))
			} else {
				out.WriteString(run.String())
			}
			run.Reset()
		}

		for x := 0; x < c.width; x++ {
			cell := c.cells[y*c.width+x]
			if cell.continuation {
				continue
			}
			if cell.Style != current {
				flush()
				current = cell.Style
			}
			run.WriteRune(cell.Rune)
		}
		flush()
	}

	return out.String()
}

// cell converts a layout coordinate to a cell index.
func cell(v float64) int {
	return int(math.Floor(v))
}

// span converts a layout length to a number of cells.
func span(v float64) int {
	return int(math.Round(v))
}
