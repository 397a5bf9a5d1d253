package output

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/dustin/go-humanize"

	"github.com/jmylchreest/tipwalk/internal/model"
)

// PlainFormatter formats layouts as plain text, one line per tip.
type PlainFormatter struct {
	opts     FormatterOptions
	template *template.Template
}

// NewPlainFormatter creates a new plain text formatter. A custom template
// that fails to parse is an error.
func NewPlainFormatter(opts FormatterOptions) (*PlainFormatter, error) {
	f := &PlainFormatter{opts: opts}

	if opts.Template != "" {
		tmpl, err := template.New("plain").Funcs(templateFuncs()).Parse(opts.Template)
		if err != nil {
			return nil, fmt.Errorf("invalid template: %w", err)
		}
		f.template = tmpl
	}

	return f, nil
}

// Format writes entries as plain text.
func (f *PlainFormatter) Format(w io.Writer, entries []Entry) error {
	for i := range entries {
		if err := f.formatEntry(w, &entries[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *PlainFormatter) formatEntry(w io.Writer, e *Entry) error {
	if f.template != nil {
		if err := f.template.Execute(w, e); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n")
		return err
	}

	l := e.Layout
	var sb strings.Builder

	if f.opts.ShowIndex {
		fmt.Fprintf(&sb, "[%d] ", e.Index)
	}

	fmt.Fprintf(&sb, "%s %s frame=%s,%s %sx%s arrow=%s,%s",
		e.Descriptor.ID,
		e.Descriptor.Side,
		num(l.Frame.Origin.X), num(l.Frame.Origin.Y),
		num(l.Frame.Size.Width), num(l.Frame.Size.Height),
		num(l.ArrowTip().X), num(l.ArrowTip().Y),
	)

	if l.RectShift != 0 {
		fmt.Fprintf(&sb, " shift=%s", num(l.RectShift))
	}
	if l.Clamped {
		sb.WriteString(" clamped")
	}

	text := e.Descriptor.TextTruncated(f.opts.TextMaxLen)
	if f.opts.TextMaxLen <= 0 {
		text = e.Descriptor.TextTruncated(len(e.Descriptor.Text))
	}
	if text != "" {
		fmt.Fprintf(&sb, " %q", text)
	}

	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// num formats a coordinate without trailing zeros.
func num(f float64) string {
	return humanize.Ftoa(f)
}

// templateFuncs returns template helper functions.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"num": num,
		"truncate": func(s string, maxLen int) string {
			d := model.Descriptor{Text: s}
			return d.TextTruncated(maxLen)
		},
		"ordinal": humanize.Ordinal,
	}
}
