package style

import (
	"errors"
	"fmt"
	"strings"

	"github.com/edlearn/bbml/markup"
)

// ErrInvariant reports a malformed tree reaching the resolver. This is a
// programming defect, not an input problem: the builder can never produce
// such a tree from markup, however malformed.
var ErrInvariant = errors.New("style: tree invariant violated")

// Bullet is the marker for unordered list items.
const Bullet = "•"

// Resolve walks the tree depth-first, carrying the inherited style context,
// and returns the flattened run sequence plus the ordered list of link
// targets encountered. Emphasis flags are monotonic: once set by an
// ancestor they stay set for the whole subtree.
func Resolve(root *markup.Node) ([]Run, []string, error) {
	r := &resolver{}
	if err := r.walk(root, Style{}); err != nil {
		return nil, nil, err
	}
	return r.runs, r.links, nil
}

// listState tracks one enclosing list so items can compute their marker
// from the nearest-enclosing list's kind.
type listState struct {
	ordered bool
	counter int
}

type resolver struct {
	runs  []Run
	links []string
	lists []listState
}

func (r *resolver) emit(run Run) {
	r.runs = append(r.runs, run)
}

func (r *resolver) walk(n *markup.Node, ctx Style) error {
	switch n.Kind {
	case markup.KindText:
		if len(n.Children) > 0 {
			return fmt.Errorf("%w: text leaf with %d children", ErrInvariant, len(n.Children))
		}
		if n.Text != "" {
			r.emit(Run{Kind: RunText, Text: n.Text, Style: ctx})
		}
		return nil

	case markup.KindLineBreak:
		r.emit(Run{Kind: RunLineBreak, Style: ctx})
		return nil

	case markup.KindBold:
		ctx.Bold = true
	case markup.KindItalic:
		ctx.Italic = true
	case markup.KindUnderline:
		ctx.Underline = true

	case markup.KindHeading:
		ctx.Heading = n.Level
		r.emit(Run{Kind: RunBlockBreak, Style: ctx})
		if err := r.walkChildren(n, ctx); err != nil {
			return err
		}
		r.emit(Run{Kind: RunBlockBreak, Style: ctx})
		return nil

	case markup.KindParagraph:
		r.emit(Run{Kind: RunBlockBreak, Style: ctx})
		if err := r.walkChildren(n, ctx); err != nil {
			return err
		}
		r.emit(Run{Kind: RunBlockBreak, Style: ctx})
		return nil

	case markup.KindUnorderedList, markup.KindOrderedList:
		// A nested list flows inside its parent item; only an outermost
		// list is separated from surrounding blocks.
		outermost := ctx.ListDepth == 0
		if outermost {
			r.emit(Run{Kind: RunBlockBreak, Style: ctx})
		}
		r.lists = append(r.lists, listState{ordered: n.Kind == markup.KindOrderedList})
		ctx.ListDepth++
		err := r.walkChildren(n, ctx)
		r.lists = r.lists[:len(r.lists)-1]
		if err != nil {
			return err
		}
		if outermost {
			ctx.ListDepth--
			r.emit(Run{Kind: RunBlockBreak, Style: ctx})
		}
		return nil

	case markup.KindListItem:
		// Items with nothing to show are dropped entirely so ordered lists
		// keep dense numbering.
		if !hasVisible(n) {
			return nil
		}
		ctx.ListMarker = r.nextMarker()
		r.emit(Run{Kind: RunItemStart, Text: ctx.ListMarker, Style: ctx})
		return r.walkChildren(n, ctx)

	case markup.KindLink:
		// Innermost link wins when links nest.
		ctx.Link = n.Href
		if err := r.walkChildren(n, ctx); err != nil {
			return err
		}
		if n.Href != "" {
			idx := len(r.links)
			r.links = append(r.links, n.Href)
			r.emit(Run{Kind: RunText, Text: fmt.Sprintf("[%d]", idx), Style: ctx})
		}
		return nil

	case markup.KindRoot:
		// fall through to children
	}

	return r.walkChildren(n, ctx)
}

func (r *resolver) walkChildren(n *markup.Node, ctx Style) error {
	for _, child := range n.Children {
		if err := r.walk(child, ctx); err != nil {
			return err
		}
	}
	return nil
}

// hasVisible reports whether the subtree contributes any visible output:
// non-whitespace text, or a link reference.
func hasVisible(n *markup.Node) bool {
	switch n.Kind {
	case markup.KindText:
		return strings.TrimSpace(n.Text) != ""
	case markup.KindLink:
		if n.Href != "" {
			return true
		}
	}
	for _, child := range n.Children {
		if hasVisible(child) {
			return true
		}
	}
	return false
}

// nextMarker computes the marker for the next item of the innermost list:
// a bullet for unordered lists, a strictly increasing 1-based number for
// ordered ones. An item outside any list still gets a bullet.
func (r *resolver) nextMarker() string {
	if len(r.lists) == 0 {
		return Bullet
	}
	l := &r.lists[len(r.lists)-1]
	if !l.ordered {
		return Bullet
	}
	l.counter++
	return fmt.Sprintf("%d.", l.counter)
}
