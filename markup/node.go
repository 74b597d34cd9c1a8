package markup

// Kind is the tag kind of a Node, drawn from the closed set of constructs
// the renderer models. Markup outside this set never produces a Node: the
// builder unwraps it and keeps its content.
type Kind int

const (
	KindRoot Kind = iota
	KindParagraph
	KindLineBreak
	KindBold
	KindItalic
	KindUnderline
	KindHeading
	KindUnorderedList
	KindOrderedList
	KindListItem
	KindLink
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRoot:
		return "root"
	case KindParagraph:
		return "paragraph"
	case KindLineBreak:
		return "line-break"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindUnderline:
		return "underline"
	case KindHeading:
		return "heading"
	case KindUnorderedList:
		return "unordered-list"
	case KindOrderedList:
		return "ordered-list"
	case KindListItem:
		return "list-item"
	case KindLink:
		return "link"
	case KindText:
		return "text"
	}
	return "unknown"
}

// Node is one element of the parsed document tree. A parent exclusively owns
// its children; nothing navigates child-to-parent after construction.
//
// A KindText node carries Text and must have no children. Every other kind
// may have zero or more children.
type Node struct {
	Kind     Kind
	Level    int    // heading level 1..6, KindHeading only
	Href     string // link target, KindLink only
	Text     string // KindText only
	Children []*Node
}

func (n *Node) append(child *Node) {
	n.Children = append(n.Children, child)
}
