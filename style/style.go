// Package style flattens the parsed markup tree into an ordered sequence of
// styled runs, the cached intermediate the layout stage re-consumes on every
// viewport resize.
package style

// Style is the fully resolved presentation record attached to a run. It is a
// flat snapshot of the inherited context at the moment the run was emitted;
// later context changes never reach back into emitted runs.
type Style struct {
	Bold      bool
	Italic    bool
	Underline bool

	// Heading is the enclosing heading level, 1..6, or 0 outside headings.
	Heading int

	// ListDepth counts enclosing lists; 0 outside any list. ListMarker is
	// the resolved marker of the innermost enclosing item ("•", "3.").
	ListDepth  int
	ListMarker string

	// Link is the href of the innermost enclosing link, "" outside links.
	Link string
}

// RunKind discriminates the elements of the resolved sequence.
type RunKind int

const (
	// RunText is a unit of text sharing one resolved style.
	RunText RunKind = iota
	// RunLineBreak is an explicit break (<br>): end the current line even
	// if under width, keeping the indentation context.
	RunLineBreak
	// RunBlockBreak is a block boundary: start a fresh line and separate
	// from the previous block by one blank line.
	RunBlockBreak
	// RunItemStart opens a list item; Text carries the resolved marker.
	RunItemStart
)

// Run is one element of the resolved output. Text is set for RunText and
// RunItemStart; Style is a snapshot for every kind.
type Run struct {
	Kind  RunKind
	Text  string
	Style Style
}
