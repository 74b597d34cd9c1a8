package layout

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/edlearn/bbml/style"
)

// Span is the atomic renderable unit: a text fragment carrying one resolved
// style. A span never crosses a line boundary.
type Span struct {
	Text  string
	Style style.Style
}

// Width is the rendered column width of the span.
func (s Span) Width() int {
	return runewidth.StringWidth(s.Text)
}

// Line is one terminal row of spans.
type Line struct {
	Spans []Span
}

// Width is the rendered column width of the whole line.
func (l Line) Width() int {
	w := 0
	for _, s := range l.Spans {
		w += s.Width()
	}
	return w
}

// Blank reports whether the line renders no characters.
func (l Line) Blank() bool {
	for _, s := range l.Spans {
		if s.Text != "" {
			return false
		}
	}
	return true
}

// String is the line's text with styling dropped.
func (l Line) String() string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(s.Text)
	}
	return b.String()
}

// Document is the final layout output: lines indexed 0..N, ready for the
// viewer to scroll and clip. It is immutable; a resize produces a fresh
// Document from the same cached runs.
type Document struct {
	Lines []Line
}

// String is the document's plain text, one row per line.
func (d *Document) String() string {
	out := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}
