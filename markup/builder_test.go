package markup

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func build(t *testing.T, src string) *Node {
	t.Helper()
	return NewBuilder(nil).Build(NewTokenizer(src))
}

func TestBuilder_Nesting(t *testing.T) {
	root := build(t, "<p><b>x</b> y</p>")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindParagraph, Children: []*Node{
			{Kind: KindBold, Children: []*Node{
				{Kind: KindText, Text: "x"},
			}},
			{Kind: KindText, Text: " y"},
		}},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_UnclosedTagsImplicitlyClosed(t *testing.T) {
	root := build(t, "<b>bold<i>both")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindBold, Children: []*Node{
			{Kind: KindText, Text: "bold"},
			{Kind: KindItalic, Children: []*Node{
				{Kind: KindText, Text: "both"},
			}},
		}},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_MismatchedCloseAutoCloses(t *testing.T) {
	root := build(t, "<b><i>x</b>y")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindBold, Children: []*Node{
			{Kind: KindItalic, Children: []*Node{
				{Kind: KindText, Text: "x"},
			}},
		}},
		{Kind: KindText, Text: "y"},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_UnknownTagUnwrapped(t *testing.T) {
	root := build(t, `<font color="red">keep <b>me</b></font>`)
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindText, Text: "keep "},
		{Kind: KindBold, Children: []*Node{
			{Kind: KindText, Text: "me"},
		}},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_ScriptContentDropped(t *testing.T) {
	root := build(t, "<script>var x = 1;</script>hi<style>p { color: red }</style>")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindText, Text: "hi"},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_StrayCloseIgnored(t *testing.T) {
	root := build(t, "</b>text")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindText, Text: "text"},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_HeadingLevelAndLinkHref(t *testing.T) {
	root := build(t, `<h4>T</h4><a href="g.com">x</a>`)
	if len(root.Children) != 2 {
		t.Fatalf("expected 2 children, got %d", len(root.Children))
	}
	h := root.Children[0]
	if h.Kind != KindHeading || h.Level != 4 {
		t.Errorf("expected heading level 4, got kind=%s level=%d", h.Kind, h.Level)
	}
	a := root.Children[1]
	if a.Kind != KindLink || a.Href != "g.com" {
		t.Errorf("expected link to g.com, got kind=%s href=%q", a.Kind, a.Href)
	}
}

func TestBuilder_LineBreakIsVoid(t *testing.T) {
	root := build(t, "a<br>b<br/>c")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindText, Text: "a"},
		{Kind: KindLineBreak},
		{Kind: KindText, Text: "b"},
		{Kind: KindLineBreak},
		{Kind: KindText, Text: "c"},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilder_TableCellsSeparated(t *testing.T) {
	root := build(t, "<table><tr><td>a</td><td>b</td></tr></table>")
	want := &Node{Kind: KindRoot, Children: []*Node{
		{Kind: KindParagraph, Children: []*Node{
			{Kind: KindText, Text: "a"},
			{Kind: KindText, Text: " "},
			{Kind: KindText, Text: "b"},
			{Kind: KindText, Text: " "},
		}},
	}}
	if diff := cmp.Diff(want, root); diff != "" {
		t.Errorf("tree mismatch (-want +got):\n%s", diff)
	}
}
