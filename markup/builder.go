package markup

import (
	"io"
	"log/slog"
	"math"
)

// tagKinds is the recognition table: tag name to node kind. Everything
// absent here is unwrapped so its content stays visible.
var tagKinds = map[string]Kind{
	"p":      KindParagraph,
	"div":    KindParagraph,
	"tr":     KindParagraph,
	"br":     KindLineBreak,
	"b":      KindBold,
	"strong": KindBold,
	"i":      KindItalic,
	"em":     KindItalic,
	"u":      KindUnderline,
	"h1":     KindHeading,
	"h2":     KindHeading,
	"h3":     KindHeading,
	"h4":     KindHeading,
	"h5":     KindHeading,
	"h6":     KindHeading,
	"ul":     KindUnorderedList,
	"ol":     KindOrderedList,
	"li":     KindListItem,
	"a":      KindLink,
}

// passthrough tags are known structural wrappers with no presentation of
// their own. They are unwrapped like unknown tags but without the debug log.
var passthrough = map[string]bool{
	"span":  true,
	"table": true,
	"thead": true,
	"tbody": true,
	"tfoot": true,
	"td":    true,
	"th":    true,
	"body":  true,
	"html":  true,
}

// dropContent tags carry no displayable text; everything inside them is
// discarded rather than unwrapped.
var dropContent = map[string]bool{
	"script": true,
	"style":  true,
	"head":   true,
}

// Builder assembles a document tree from the token stream, recovering from
// malformed nesting the way browsers do rather than failing: mismatched
// close tags auto-close intervening elements, unrecognized tags are
// unwrapped, and anything still open at end-of-input is implicitly closed.
type Builder struct {
	log *slog.Logger
}

// NewBuilder returns a Builder that reports skipped markup to log at debug
// level. A nil log discards.
func NewBuilder(log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	return &Builder{log: log}
}

// openElement is one entry of the construction stack: the node plus the
// source tag name it was opened under, so </b> and </strong> close exactly
// what opened them.
type openElement struct {
	node *Node
	name string
}

// Build consumes the token stream and returns the document root. It never
// fails; the recovery policies above absorb every malformed input.
func (b *Builder) Build(tz *Tokenizer) *Node {
	root := &Node{Kind: KindRoot}
	stack := []openElement{{node: root}}
	top := func() *Node { return stack[len(stack)-1].node }

	// Depth of nested drop-content tags currently open, 0 when outside.
	dropping := 0

	for {
		tok, ok := tz.Next()
		if !ok {
			break // implicitly closes everything still open
		}

		switch tok.Type {
		case Text, EntityRef:
			if dropping > 0 || tok.Text == "" {
				continue
			}
			top().append(&Node{Kind: KindText, Text: tok.Text})

		case TagOpen:
			if dropping > 0 {
				if dropContent[tok.Name] {
					dropping++
				}
				continue
			}
			if dropContent[tok.Name] {
				dropping = 1
				continue
			}
			kind, recognized := tagKinds[tok.Name]
			if !recognized {
				if !passthrough[tok.Name] {
					b.log.Debug("skipping unknown tag", "tag", tok.Name)
				}
				continue
			}
			node := &Node{Kind: kind}
			switch kind {
			case KindHeading:
				node.Level = int(tok.Name[1] - '0')
			case KindLink:
				node.Href, _ = tok.Attr("href")
			}
			top().append(node)
			if kind == KindLineBreak {
				continue // void element, never opened
			}
			if !tok.SelfClosing {
				stack = append(stack, openElement{node: node, name: tok.Name})
			}

		case TagClose:
			if dropping > 0 {
				if dropContent[tok.Name] {
					dropping--
				}
				continue
			}
			if tok.Name == "td" || tok.Name == "th" {
				// Keep adjacent table cells from running together.
				top().append(&Node{Kind: KindText, Text: " "})
				continue
			}
			if _, recognized := tagKinds[tok.Name]; !recognized {
				continue
			}
			// Pop up to and including the first matching open tag. Elements
			// in between are implicitly closed. A stray close with no match
			// is ignored.
			for i := len(stack) - 1; i > 0; i-- {
				if stack[i].name == tok.Name {
					stack = stack[:i]
					break
				}
			}
		}
	}

	return root
}
