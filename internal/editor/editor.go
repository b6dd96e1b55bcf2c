// Package editor models the rich-text editor's document tree: block and
// inline elements holding further nodes, and text runs carrying style marks.
package editor

// Node is a node of the editor tree. It is either a *Text or an *Element.
type Node interface {
	// Object reports the editor object type: "text", "block" or "inline".
	Object() string
	isNode()
}

// Text is a run of text with a set of style marks.
type Text struct {
	Text  string
	Marks Marks
}

// Object implements Node.
func (*Text) Object() string { return "text" }
func (*Text) isNode()        {}

// Element is a block or inline element.
//
// Nodes distinguishes "no children declared" (nil) from "declared but empty"
// (a non-nil empty slice); the converters treat the two differently.
type Element struct {
	Type  Kind
	Nodes []Node
	// Href is the link target. Only used by Link elements.
	Href string
}

// Object implements Node.
func (e *Element) Object() string { return e.Type.Object() }
func (*Element) isNode()          {}

// Document is the root of an editor tree.
type Document struct {
	Nodes []Node
}

// NewText creates a text run with the given marks.
func NewText(text string, marks ...Marks) *Text {
	var m Marks
	for _, mark := range marks {
		m |= mark
	}
	return &Text{Text: text, Marks: m}
}

// NewElement creates an element with declared children.
func NewElement(kind Kind, nodes ...Node) *Element {
	if nodes == nil {
		nodes = []Node{}
	}
	return &Element{Type: kind, Nodes: nodes}
}

// NewLeaf creates an element without a children list.
func NewLeaf(kind Kind) *Element {
	return &Element{Type: kind}
}

// NewLink creates a link element pointing at href.
func NewLink(href string, nodes ...Node) *Element {
	el := NewElement(Link, nodes...)
	el.Href = href
	return el
}

// Equal reports whether two documents are structurally identical, including
// the difference between absent and empty children lists.
func Equal(a, b *Document) bool {
	if a == nil || b == nil {
		return a == b
	}
	return equalNodes(a.Nodes, b.Nodes)
}

func equalNodes(a, b []Node) bool {
	if (a == nil) != (b == nil) || len(a) != len(b) {
		return false
	}
	for i := range a {
		if !equalNode(a[i], b[i]) {
			return false
		}
	}
	return true
}

func equalNode(a, b Node) bool {
	switch x := a.(type) {
	case *Text:
		y, ok := b.(*Text)
		return ok && *x == *y
	case *Element:
		y, ok := b.(*Element)
		return ok && x.Type == y.Type && x.Href == y.Href && equalNodes(x.Nodes, y.Nodes)
	}
	return false
}
