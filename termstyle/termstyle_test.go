package termstyle

import (
	"strings"
	"testing"

	"github.com/edlearn/bbml"
)

func TestRenderer_PlainMatchesLineText(t *testing.T) {
	doc, _, err := bbml.Render("<h5>T</h5><p><b>bold</b> plain</p>", 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r := NewRenderer(false)
	if got, want := r.Document(doc), doc.String(); got != want {
		t.Errorf("plain output mismatch:\ngot  %q\nwant %q", got, want)
	}
}

func TestRenderer_ColorKeepsTextAndLineCount(t *testing.T) {
	doc, _, err := bbml.Render(`<ul><li><a href="u">link</a></li><li>two</li></ul>`, 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	r := NewRenderer(true)
	out := r.Document(doc)

	rows := strings.Split(out, "\n")
	if len(rows) != len(doc.Lines) {
		t.Fatalf("expected %d rows, got %d", len(doc.Lines), len(rows))
	}
	// Styling may add escape sequences around the text but never alters it.
	for i, l := range doc.Lines {
		for _, s := range l.Spans {
			if !strings.Contains(rows[i], s.Text) {
				t.Errorf("row %d: span %q missing from %q", i, s.Text, rows[i])
			}
		}
	}
}

func TestRenderer_ZeroValueRendersPlain(t *testing.T) {
	var r Renderer
	doc, _, err := bbml.Render("hello", 80)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := r.Document(doc); got != "hello" {
		t.Errorf("expected plain text, got %q", got)
	}
}
