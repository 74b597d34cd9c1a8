// Package layout re-flows a resolved run sequence into discrete lines of
// styled spans for a fixed-width viewport. It is invoked again on every
// width change; the run sequence itself is never re-parsed.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/edlearn/bbml/style"
)

// ErrInvalidWidth rejects a layout call with a non-positive target width.
var ErrInvalidWidth = errors.New("layout: width must be at least 1")

// Config holds the layout policy constants.
type Config struct {
	// Indent is the number of columns each list nesting level contributes.
	Indent int
}

// DefaultConfig matches the compact indentation the course viewer uses.
var DefaultConfig = Config{Indent: 2}

// Layout lays out runs at the given width using DefaultConfig.
func Layout(runs []style.Run, width int) (*Document, error) {
	return LayoutWith(runs, width, DefaultConfig)
}

// LayoutWith lays out runs at the given width. It is pure: the same runs
// and width always produce an identical Document, and the input is never
// mutated, so callers may lay out one run sequence concurrently.
func LayoutWith(runs []style.Run, width int, cfg Config) (*Document, error) {
	if width < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}
	e := engine{width: width, cfg: cfg}
	for _, r := range runs {
		switch r.Kind {
		case style.RunText:
			e.text(r)
		case style.RunLineBreak:
			e.lineBreak()
		case style.RunBlockBreak:
			e.blockBreak()
		case style.RunItemStart:
			e.itemStart(r)
		}
	}
	e.closeLine()
	return &Document{Lines: e.lines}, nil
}

// engine is the per-call layout state. One engine lays out one document and
// is discarded; nothing survives across calls.
type engine struct {
	width int
	cfg   Config

	lines []Line

	cur        []Span // spans of the line being built, nil when no line is open
	pen        int    // rendered width of cur
	hasContent bool   // cur holds more than indent padding

	indent       int  // columns prepended to every new line in this context
	reindent     bool // derive indent from the next placed run's list depth
	pendingSpace bool // a separating space precedes the next word
	pendingBlock bool // one blank line separates the next content
}

// text splits a run into words on whitespace boundaries and places them,
// keeping the run's style per word. Boundary whitespace in the run text
// only requests a separating space; the space itself is attached to the
// span that follows it.
func (e *engine) text(r style.Run) {
	if strings.HasPrefix(r.Text, " ") {
		e.pendingSpace = true
	}
	for i, word := range strings.Fields(r.Text) {
		if i > 0 {
			e.pendingSpace = true
		}
		e.place(word, r.Style)
	}
	if strings.HasSuffix(r.Text, " ") {
		e.pendingSpace = true
	}
}

// place puts one word on the current line, wrapping first if the word plus
// its separating space would exceed the width. A word too wide for the
// usable width is placed alone on its own line, never truncated.
func (e *engine) place(word string, st style.Style) {
	if e.reindent {
		e.indent = e.runIndent(st)
		e.reindent = false
	}
	e.flushBlock()
	e.openLine()

	w := runewidth.StringWidth(word)
	sep := 0
	if e.hasContent && e.pendingSpace {
		sep = 1
	}
	if e.hasContent && e.pen+sep+w > e.width {
		e.closeLine()
		e.openLine()
		sep = 0
	}
	// A word wider than the usable width is force-placed alone, indent
	// padding dropped, so an overflow line is always a single span.
	if !e.hasContent && e.pen+w > e.width && e.pen > 0 {
		e.cur = e.cur[:0]
		e.pen = 0
	}

	text := word
	if sep == 1 {
		text = " " + word
	}
	e.appendSpan(text, st)
	e.pen += sep + w
	e.hasContent = true
	e.pendingSpace = false

	// Single-word overflow: the line is already over width, finalize it
	// immediately so nothing else joins it.
	if e.pen > e.width {
		e.closeLine()
	}
}

// lineBreak finalizes the current line unconditionally, even when empty,
// and keeps the indentation context for the next line.
func (e *engine) lineBreak() {
	if e.cur == nil {
		e.pushLine(Line{})
		return
	}
	if !e.hasContent {
		// Only indent padding so far: the break turns it into a blank line.
		e.cur = nil
		e.pushLine(Line{})
		return
	}
	e.closeLine()
	e.pendingSpace = false
}

// blockBreak ends the current block: the line is finalized and the next
// content is separated by exactly one blank line. Consecutive block breaks
// collapse. The new block's indentation is derived from the run that opens
// it, so a block nested in a list item stays aligned with the item text.
func (e *engine) blockBreak() {
	e.closeLine()
	e.pendingBlock = true
	e.pendingSpace = false
	e.reindent = true
}

// runIndent is the indentation of a fresh block line for the run being
// placed: zero outside lists, otherwise the enclosing item's continuation
// column.
func (e *engine) runIndent(st style.Style) int {
	if st.ListDepth == 0 {
		return 0
	}
	indent := (st.ListDepth - 1) * e.cfg.Indent
	if st.ListMarker != "" {
		indent += runewidth.StringWidth(st.ListMarker) + 1
	}
	return indent
}

// itemStart begins a list item: its own line, base indentation from the
// list depth, the marker plus one space as the first span, and
// marker-aligned indentation for the item's wrapped continuation lines.
func (e *engine) itemStart(r style.Run) {
	e.closeLine()
	e.flushBlock()
	e.pendingSpace = false
	e.reindent = false

	base := 0
	if r.Style.ListDepth > 1 {
		base = (r.Style.ListDepth - 1) * e.cfg.Indent
	}
	marker := r.Text + " "
	e.indent = 0
	e.openLine()
	// Base indentation travels inside the marker span so the item's first
	// line starts as a single span.
	e.appendSpan(strings.Repeat(" ", base)+marker, r.Style)
	e.pen = base + runewidth.StringWidth(marker)
	e.hasContent = true

	// Continuation lines align under the first character of the item text.
	e.indent = base + runewidth.StringWidth(marker)
}

// openLine starts a new line with the current indentation if none is open.
func (e *engine) openLine() {
	if e.cur != nil {
		return
	}
	e.cur = []Span{}
	e.pen = 0
	e.hasContent = false
	if e.indent > 0 {
		e.cur = append(e.cur, Span{Text: strings.Repeat(" ", e.indent)})
		e.pen = e.indent
	}
}

// closeLine pushes the current line if it holds content; a line holding
// only indent padding is discarded.
func (e *engine) closeLine() {
	if e.cur == nil {
		return
	}
	if e.hasContent {
		e.pushLine(Line{Spans: e.cur})
	}
	e.cur = nil
	e.pen = 0
	e.hasContent = false
}

// flushBlock materializes a pending block separation. The blank line is
// only emitted in front of actual content, so a document never ends with
// one, and pushLine keeps it from ever doubling or leading.
func (e *engine) flushBlock() {
	if e.pendingBlock {
		e.pendingBlock = false
		e.pushLine(Line{})
	}
}

// pushLine appends a finished line, enforcing the blank-line policy: never
// a leading blank, never two consecutive blanks.
func (e *engine) pushLine(l Line) {
	if l.Blank() {
		if len(e.lines) == 0 || e.lines[len(e.lines)-1].Blank() {
			return
		}
	}
	e.lines = append(e.lines, l)
}

// appendSpan adds text to the current line, merging into the previous span
// when the style is identical so a styling run is never split needlessly.
func (e *engine) appendSpan(text string, st style.Style) {
	if n := len(e.cur); n > 0 && e.cur[n-1].Style == st {
		e.cur[n-1].Text += text
		return
	}
	e.cur = append(e.cur, Span{Text: text, Style: st})
}
