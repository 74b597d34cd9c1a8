// Package termstyle maps resolved span styles onto terminal attributes and
// renders a laid-out document to an ANSI-styled string. It is the terminal
// side of the pipeline's output boundary; scrolling and clipping stay with
// the caller.
package termstyle

import (
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/edlearn/bbml/layout"
	"github.com/edlearn/bbml/style"
)

// linkColor matches the viewer's blue link text.
const linkColor = lipgloss.Color("4")

// Renderer renders documents with or without color. The zero value renders
// plain text.
type Renderer struct {
	color bool

	mu    sync.Mutex
	cache map[style.Style]ansiStyle
}

// NewRenderer returns a Renderer. With color false, output is the plain
// text of each line, byte-for-byte.
func NewRenderer(color bool) *Renderer {
	return &Renderer{color: color, cache: make(map[style.Style]ansiStyle)}
}

// ansiStyle holds the escape sequences bracketing a styled fragment,
// precomputed once per distinct style so rendering a span is two string
// concatenations instead of a lipgloss render.
type ansiStyle struct {
	prefix string
	suffix string
}

func (a ansiStyle) render(text string) string {
	if a.prefix == "" {
		return text
	}
	return a.prefix + text + a.suffix
}

// Span renders one span.
func (r *Renderer) Span(s layout.Span) string {
	if !r.color {
		return s.Text
	}
	return r.lookup(s.Style).render(s.Text)
}

// Line renders one line.
func (r *Renderer) Line(l layout.Line) string {
	var b strings.Builder
	for _, s := range l.Spans {
		b.WriteString(r.Span(s))
	}
	return b.String()
}

// Document renders the whole document, one terminal row per line.
func (r *Renderer) Document(d *layout.Document) string {
	rows := make([]string, len(d.Lines))
	for i, l := range d.Lines {
		rows[i] = r.Line(l)
	}
	return strings.Join(rows, "\n")
}

func (r *Renderer) lookup(st style.Style) ansiStyle {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.cache[st]; ok {
		return a
	}
	a := buildAnsiStyle(styleFor(st))
	r.cache[st] = a
	return a
}

// styleFor maps a resolved style record to terminal attributes: emphasis
// flags directly, headings bold (underlined through level 4), links blue.
func styleFor(st style.Style) lipgloss.Style {
	ls := lipgloss.NewStyle()
	if st.Bold {
		ls = ls.Bold(true)
	}
	if st.Italic {
		ls = ls.Italic(true)
	}
	if st.Underline {
		ls = ls.Underline(true)
	}
	if st.Heading > 0 {
		ls = ls.Bold(true)
		if st.Heading <= 4 {
			ls = ls.Underline(true)
		}
	}
	if st.Link != "" {
		ls = ls.Foreground(linkColor)
	}
	return ls
}

// buildAnsiStyle extracts the ANSI prefix and suffix from a lipgloss style
// by rendering a marker and splitting around it.
func buildAnsiStyle(ls lipgloss.Style) ansiStyle {
	const marker = "\x00"
	rendered := ls.Render(marker)
	idx := strings.Index(rendered, marker)
	if idx < 0 {
		return ansiStyle{}
	}
	return ansiStyle{prefix: rendered[:idx], suffix: rendered[idx+1:]}
}
