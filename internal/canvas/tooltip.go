package canvas

import (
	"github.com/jmylchreest/tipwalk/internal/geometry"
	"github.com/jmylchreest/tipwalk/internal/model"
)

// Box-drawing glyphs.
const (
	glyphTopLeft     = '╭'
	glyphTopRight    = '╮'
	glyphBottomLeft  = '╰'
	glyphBottomRight = '╯'
	glyphHorizontal  = '─'
	glyphVertical    = '│'
	glyphJoinUp      = '┴'
	glyphJoinDown    = '┬'
	glyphArrowUp     = '▲'
	glyphArrowDown   = '▼'
	glyphSlash       = '╱'
	glyphBackslash   = '╲'
)

// AnchorPoint converts an anchor cell into the layout point the arrow tip
// should touch: the bottom edge of the cell for a top arrow and the top
// edge for a bottom arrow, horizontally centered.
func AnchorPoint(x, y int, side model.ArrowSide) model.Point {
	p := model.Point{X: float64(x) + 0.5, Y: float64(y)}
	if side == model.ArrowTop {
		p.Y++
	}
	return p
}

// AnchorCell is the inverse of AnchorPoint.
func AnchorCell(p model.Point, side model.ArrowSide) (int, int) {
	y := cell(p.Y)
	if side == model.ArrowTop {
		y--
	}
	return cell(p.X), y
}

// CellAnchors returns copies of tips with every anchor converted from a cell
// with AnchorPoint.
func CellAnchors(tips []model.Descriptor) []model.Descriptor {
	out := make([]model.Descriptor, len(tips))
	for i, d := range tips {
		d.Anchor = AnchorPoint(int(d.Anchor.X), int(d.Anchor.Y), d.Side)
		out[i] = d
	}
	return out
}

// DrawMarker draws the anchor marker glyph.
func (c *Canvas) DrawMarker(x, y int, marker string, style StyleKey) {
	if marker == "" {
		return
	}
	c.WriteString(x, y, marker, style, c.width)
}

// DrawTooltip draws the tooltip body, border, arrow and text lines of l.
// Lines come from l.Lines and are clipped to the body.
func (c *Canvas) DrawTooltip(l geometry.Layout, side model.ArrowSide) {
	fx := cell(l.Frame.Origin.X)
	fy := cell(l.Frame.Origin.Y)
	fw := span(l.Frame.Size.Width)

	bx := fx + cell(l.Body.Origin.X)
	by := fy + cell(l.Body.Origin.Y)
	bw := fw
	bh := span(l.Body.Size.Height)
	if bw < 2 || bh < 1 {
		return
	}

	c.Fill(bx, by, bw, bh, ' ', StyleBody)
	c.drawBorder(bx, by, bw, bh)

	arrowRows := span(l.FrameSize.Height) - bh
	arrowTop := fy
	if side == model.ArrowBottom {
		arrowTop = by + bh
	}
	tipX := cell(l.Frame.Origin.X + l.Arrow.Tip.X)
	c.drawArrow(side, tipX, arrowTop, arrowRows)

	// Join the arrow to the border unless it sits on a corner.
	if arrowRows > 0 && bh > 1 && tipX > bx && tipX < bx+bw-1 {
		if side == model.ArrowBottom {
			c.Set(tipX, by+bh-1, glyphJoinDown, StyleBorder)
		} else {
			c.Set(tipX, by, glyphJoinUp, StyleBorder)
		}
	}

	tx := fx + cell(l.TextOrigin.X)
	ty := fy + cell(l.TextOrigin.Y)
	limit := bx + bw - 1
	if bh == 1 {
		limit = bx + bw
	}
	for i, line := range l.Lines {
		row := ty + i
		if bh > 1 && row >= by+bh-1 {
			break
		}
		c.WriteString(tx, row, line, StyleText, limit)
	}
}

func (c *Canvas) drawBorder(x, y, w, h int) {
	if h == 1 {
		// No room for a box; the body is a plain band.
		return
	}

	right := x + w - 1
	bottom := y + h - 1

	for col := x + 1; col < right; col++ {
		c.Set(col, y, glyphHorizontal, StyleBorder)
		c.Set(col, bottom, glyphHorizontal, StyleBorder)
	}
	for row := y + 1; row < bottom; row++ {
		c.Set(x, row, glyphVertical, StyleBorder)
		c.Set(right, row, glyphVertical, StyleBorder)
	}
	c.Set(x, y, glyphTopLeft, StyleBorder)
	c.Set(right, y, glyphTopRight, StyleBorder)
	c.Set(x, bottom, glyphBottomLeft, StyleBorder)
	c.Set(right, bottom, glyphBottomRight, StyleBorder)
}

// drawArrow draws rows arrow rows starting at top. The tip row is the
// first row for a top arrow and the last one for a bottom arrow.
func (c *Canvas) drawArrow(side model.ArrowSide, tipX, top, rows int) {
	for r := 0; r < rows; r++ {
		// r counts rows away from the tip.
		row := top + r
		tip, left, right := glyphArrowUp, glyphSlash, glyphBackslash
		if side == model.ArrowBottom {
			row = top + rows - 1 - r
			tip, left, right = glyphArrowDown, glyphBackslash, glyphSlash
		}

		if r == 0 {
			c.Set(tipX, row, tip, StyleArrow)
			continue
		}
		for col := tipX - r + 1; col < tipX+r; col++ {
			c.Set(col, row, ' ', StyleBody)
		}
		c.Set(tipX-r, row, left, StyleArrow)
		c.Set(tipX+r, row, right, StyleArrow)
	}
}

// Hit reports whether cell x, y lies on the tooltip frame of l, arrow
// included.
func Hit(l geometry.Layout, x, y int) bool {
	fx := cell(l.Frame.Origin.X)
	fy := cell(l.Frame.Origin.Y)
	fw := span(l.Frame.Size.Width)
	fh := span(l.Frame.Size.Height)
	return x >= fx && x < fx+fw && y >= fy && y < fy+fh
}
