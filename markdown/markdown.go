// Package markdown converts markdown course attachments to HTML so they
// flow through the same rendering pipeline as BbML pages.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// ToHTML converts markdown source to HTML. GFM tables and strikethrough
// are enabled; unknown constructs in the produced HTML degrade tolerantly
// downstream anyway.
func ToHTML(src []byte) (string, error) {
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	var buf bytes.Buffer
	if err := md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
