// Package bbml renders BbML — the constrained HTML subset used by course
// content pages — into styled, wrapped text for a fixed-width terminal
// viewport.
//
// The pipeline has four stages: tokenize, build a tree, resolve styles,
// lay out lines. Parse runs the first three and caches the resolved run
// sequence; Content.Layout re-runs only the last stage, so a terminal
// resize never re-parses. Parsing tolerates arbitrarily malformed input;
// the only fatal condition in the whole pipeline is a non-positive layout
// width.
package bbml

import (
	"fmt"
	"log/slog"

	"github.com/edlearn/bbml/layout"
	"github.com/edlearn/bbml/markdown"
	"github.com/edlearn/bbml/markup"
	"github.com/edlearn/bbml/style"
)

// Option configures parsing.
type Option func(*options)

type options struct {
	log *slog.Logger
}

// WithLogger reports recoverable oddities (skipped unknown tags) to log at
// debug level. The default discards them.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) { o.log = log }
}

// Content is a parsed document: the resolved style runs, cached for repeated
// layout calls, plus the links encountered in document order. Content is
// immutable after Parse; independent goroutines may lay it out concurrently.
type Content struct {
	runs  []style.Run
	links []string
}

// Parse runs the markup through tokenizer, tree builder and style resolver.
// Malformed markup never fails; a non-nil error means a renderer defect
// (style.ErrInvariant), not bad input.
func Parse(src string, opts ...Option) (*Content, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tz := markup.NewTokenizer(src)
	root := markup.NewBuilder(o.log).Build(tz)
	runs, links, err := style.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("resolve styles: %w", err)
	}
	return &Content{runs: runs, links: links}, nil
}

// ParseMarkdown converts markdown to HTML and parses the result.
func ParseMarkdown(src []byte, opts ...Option) (*Content, error) {
	html, err := markdown.ToHTML(src)
	if err != nil {
		return nil, err
	}
	return Parse(html, opts...)
}

// Links returns the link targets in document order. The slice is a copy;
// indexes match the [n] reference markers in the rendered text.
func (c *Content) Links() []string {
	out := make([]string, len(c.links))
	copy(out, c.links)
	return out
}

// Layout lays the cached runs out at the given width with the default
// policy. It is the resize entry point: cheap enough to run on every
// terminal size change.
func (c *Content) Layout(width int) (*layout.Document, error) {
	return layout.Layout(c.runs, width)
}

// LayoutWith lays the cached runs out with an explicit policy.
func (c *Content) LayoutWith(width int, cfg layout.Config) (*layout.Document, error) {
	return layout.LayoutWith(c.runs, width, cfg)
}

// Render is the one-shot convenience: parse and lay out in a single call,
// returning the document and the links it references.
func Render(src string, width int) (*layout.Document, []string, error) {
	content, err := Parse(src)
	if err != nil {
		return nil, nil, err
	}
	doc, err := content.Layout(width)
	if err != nil {
		return nil, nil, err
	}
	return doc, content.Links(), nil
}
