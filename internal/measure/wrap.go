// Package measure provides text measurers for the geometry engine.
//
// CellMeasurer works in terminal cells and is what the terminal host uses.
// MonospaceMeasurer approximates a fixed-pitch font in points for hosts
// (and the layout command) that think in pixels.
package measure

import (
	"strings"
)

// widthFunc reports the display width of s in columns.
type widthFunc func(s string) int

// wrapLines greedily word-wraps text to limit columns. Explicit newlines
// are kept, runs of whitespace collapse to one space, and words wider than
// limit are broken. A limit of zero or less disables wrapping.
func wrapLines(text string, limit int, width widthFunc) []string {
	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapParagraph(para, limit, width)...)
	}
	return lines
}

func wrapParagraph(para string, limit int, width widthFunc) []string {
	words := strings.Fields(para)
	if len(words) == 0 {
		return []string{""}
	}
	if limit <= 0 {
		return []string{strings.Join(words, " ")}
	}

	var (
		lines []string
		cur   strings.Builder
		curW  int
	)
	flush := func() {
		lines = append(lines, cur.String())
		cur.Reset()
		curW = 0
	}

	for _, word := range words {
		ww := width(word)
		for ww > limit {
			if curW > 0 {
				flush()
			}
			head, rest := splitWidth(word, limit, width)
			lines = append(lines, head)
			word = rest
			ww = width(word)
		}
		if word == "" {
			continue
		}

		switch {
		case curW == 0:
			cur.WriteString(word)
			curW = ww
		case curW+1+ww <= limit:
			cur.WriteByte(' ')
			cur.WriteString(word)
			curW += 1 + ww
		default:
			flush()
			cur.WriteString(word)
			curW = ww
		}
	}
	if curW > 0 || len(lines) == 0 {
		flush()
	}
	return lines
}

// splitWidth cuts s after at most limit columns. At least one rune is
// always taken so wrapping makes progress on glyphs wider than limit.
func splitWidth(s string, limit int, width widthFunc) (string, string) {
	used := 0
	for i, r := range s {
		rw := width(string(r))
		if used+rw > limit && i > 0 {
			return s[:i], s[i:]
		}
		used += rw
	}
	return s, ""
}

func widest(lines []string, width widthFunc) int {
	w := 0
	for _, line := range lines {
		w = max(w, width(line))
	}
	return w
}
