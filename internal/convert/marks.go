package convert

import (
	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/editor"
)

// textNode maps a text run onto the AST. Code is terminal and drops the
// other marks; otherwise Strong wraps the text and Emph wraps the result.
func textNode(t *editor.Text) commonmark.Node {
	if t.Marks.Has(editor.Code) {
		return &commonmark.Code{Text: t.Text}
	}

	var n commonmark.Node = &commonmark.Text{Text: t.Text}
	if t.Marks.Has(editor.Bold) {
		n = &commonmark.Strong{Nodes: []commonmark.Node{n}}
	}
	if t.Marks.Has(editor.Italic) {
		n = &commonmark.Emph{Nodes: []commonmark.Node{n}}
	}
	return n
}

// collapseText is the inverse of textNode. It reports false for any inline
// shape textNode cannot produce.
func collapseText(n commonmark.Node) (*editor.Text, bool) {
	switch n := n.(type) {
	case *commonmark.Text:
		return &editor.Text{Text: n.Text}, true
	case *commonmark.Code:
		return &editor.Text{Text: n.Text, Marks: editor.Code}, true
	case *commonmark.Strong:
		if len(n.Nodes) != 1 {
			return nil, false
		}
		inner, ok := n.Nodes[0].(*commonmark.Text)
		if !ok {
			return nil, false
		}
		return &editor.Text{Text: inner.Text, Marks: editor.Bold}, true
	case *commonmark.Emph:
		if len(n.Nodes) != 1 {
			return nil, false
		}
		switch inner := n.Nodes[0].(type) {
		case *commonmark.Text:
			return &editor.Text{Text: inner.Text, Marks: editor.Italic}, true
		case *commonmark.Strong:
			t, ok := collapseText(inner)
			if !ok {
				return nil, false
			}
			t.Marks |= editor.Italic
			return t, true
		}
	}
	return nil, false
}
