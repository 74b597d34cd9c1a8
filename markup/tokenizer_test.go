package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func collect(t *testing.T, input string) []Token {
	t.Helper()
	tz := NewTokenizer(input)
	var toks []Token
	for {
		tok, ok := tz.Next()
		if !ok {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestTokenizer_TagsAndText(t *testing.T) {
	got := collect(t, "<p>Hello</p>")
	want := []Token{
		{Type: TagOpen, Name: "p"},
		{Type: Text, Text: "Hello"},
		{Type: TagClose, Name: "p"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_Attributes(t *testing.T) {
	got := collect(t, `<a href="x y" id=5 hidden class='c'>`)
	if len(got) != 1 || got[0].Type != TagOpen {
		t.Fatalf("expected one TagOpen, got %+v", got)
	}
	want := []Attr{
		{Name: "href", Value: "x y"},
		{Name: "id", Value: "5"},
		{Name: "hidden", Value: ""},
		{Name: "class", Value: "c"},
	}
	if diff := cmp.Diff(want, got[0].Attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_SelfClosing(t *testing.T) {
	got := collect(t, "<br/>")
	if len(got) != 1 || got[0].Type != TagOpen || got[0].Name != "br" || !got[0].SelfClosing {
		t.Fatalf("expected self-closing br, got %+v", got)
	}
}

func TestTokenizer_Entities(t *testing.T) {
	got := collect(t, "Fish &amp; Chips &#169; &hearts;")
	want := []Token{
		{Type: Text, Text: "Fish "},
		{Type: EntityRef, Text: "&"},
		{Type: Text, Text: " Chips "},
		{Type: EntityRef, Text: "©"},
		{Type: Text, Text: " "},
		{Type: EntityRef, Text: "♥"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_UnknownEntityStaysLiteral(t *testing.T) {
	got := collect(t, "a &bogus; b")
	want := []Token{
		{Type: Text, Text: "a "},
		{Type: Text, Text: "&bogus; b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_MalformedAngleIsText(t *testing.T) {
	got := collect(t, "1 < 2")
	want := []Token{
		{Type: Text, Text: "1 "},
		{Type: Text, Text: "< 2"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_UnterminatedTagClosedAtEOF(t *testing.T) {
	got := collect(t, `text<b class="unfinished`)
	want := []Token{
		{Type: Text, Text: "text"},
		{Type: TagOpen, Name: "b", Attrs: []Attr{{Name: "class", Value: "unfinished"}}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_CommentsAndDoctypeSkipped(t *testing.T) {
	got := collect(t, "<!DOCTYPE html>a<!-- note -->b<!-- unterminated")
	want := []Token{
		{Type: Text, Text: "a"},
		{Type: Text, Text: "b"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_WhitespaceCollapsedAtBoundaries(t *testing.T) {
	got := collect(t, "<b>Hi</b> \n there")
	want := []Token{
		{Type: TagOpen, Name: "b"},
		{Type: Text, Text: "Hi"},
		{Type: TagClose, Name: "b"},
		{Type: Text, Text: " there"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer_Restartable(t *testing.T) {
	tz := NewTokenizer("<p>x</p>")
	var first []Token
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		first = append(first, tok)
	}
	tz.Reset()
	var second []Token
	for {
		tok, ok := tz.Next()
		if !ok {
			break
		}
		second = append(second, tok)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("replay differs (-first +second):\n%s", diff)
	}
}
