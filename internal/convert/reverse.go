package convert

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/editor"
)

// ToEditor converts a CommonMark Document back into an editor document.
// Only shapes the forward converter can produce are accepted; anything else
// fails with ErrUnsupportedStructure. Link titles are discarded.
func (c *Converter) ToEditor(doc *commonmark.Document) (*editor.Document, error) {
	if doc == nil {
		return nil, errors.New("nil commonmark document")
	}
	start := time.Now()
	c.log.ConversionStarted("reverse", len(doc.Nodes))

	nodes, err := c.reverseNodes(doc.Nodes, "")
	if err != nil {
		c.log.ConversionError("reverse", err)
		return nil, err
	}

	c.log.ConversionCompleted("reverse", len(nodes), time.Since(start))
	return &editor.Document{Nodes: nodes}, nil
}

// RoundTrip converts doc forward and back again.
func (c *Converter) RoundTrip(doc *editor.Document) (*editor.Document, error) {
	ast, err := c.ToCommonMark(doc)
	if err != nil {
		return nil, err
	}
	return c.ToEditor(ast)
}

func (c *Converter) reverseNodes(nodes []commonmark.Node, path string) ([]editor.Node, error) {
	out := make([]editor.Node, 0, len(nodes))
	for i, n := range nodes {
		converted, err := c.reverseNode(n, childPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *Converter) reverseNode(n commonmark.Node, path string) (editor.Node, error) {
	unsupported := func() (editor.Node, error) {
		return nil, &NodeError{Err: ErrUnsupportedStructure, Path: path, Node: astString(n)}
	}
	container := func(kind editor.Kind, nodes []commonmark.Node) (editor.Node, error) {
		children, err := c.reverseNodes(nodes, path)
		if err != nil {
			return nil, err
		}
		return &editor.Element{Type: kind, Nodes: children}, nil
	}

	switch n := n.(type) {
	case *commonmark.Paragraph:
		return container(editor.Paragraph, n.Nodes)
	case *commonmark.BlockQuote:
		if n.Nodes == nil {
			return editor.NewLeaf(editor.Quote), nil
		}
		return container(editor.BlockQuote, n.Nodes)
	case *commonmark.ThematicBreak:
		return editor.NewLeaf(editor.HorizontalRule), nil
	case *commonmark.Heading:
		kind, ok := editor.HeadingKind(n.Level)
		if !ok {
			return unsupported()
		}
		return &editor.Element{Type: kind, Nodes: []editor.Node{&editor.Text{Text: n.Text}}}, nil
	case *commonmark.CodeBlock:
		return editor.NewLeaf(editor.CodeBlock), nil
	case *commonmark.HTMLBlock:
		return editor.NewLeaf(editor.HTMLBlock), nil
	case *commonmark.HTMLInline:
		return editor.NewLeaf(editor.HTMLInline), nil
	case *commonmark.List:
		kind := editor.BulletList
		switch n.Type {
		case commonmark.Ordered:
			kind = editor.OrderedList
		case commonmark.Bullet:
		default:
			return unsupported()
		}
		for _, child := range n.Nodes {
			if _, ok := child.(*commonmark.Item); !ok {
				return unsupported()
			}
		}
		return container(kind, n.Nodes)
	case *commonmark.Item:
		if len(n.Nodes) != 1 {
			return unsupported()
		}
		para, ok := n.Nodes[0].(*commonmark.Paragraph)
		if !ok {
			return unsupported()
		}
		// The paragraph's children belong to the list item; paths skip it.
		return container(editor.ListItem, para.Nodes)
	case *commonmark.Link:
		el, err := container(editor.Link, n.Nodes)
		if err != nil {
			return nil, err
		}
		el.(*editor.Element).Href = n.Destination
		return el, nil
	case *commonmark.Text, *commonmark.Code, *commonmark.Strong, *commonmark.Emph:
		t, ok := collapseText(n)
		if !ok {
			return unsupported()
		}
		return t, nil
	}
	return unsupported()
}

func astString(n commonmark.Node) string {
	b, err := json.Marshal(commonmark.ToRaw(n))
	if err != nil {
		return string(n.Tag())
	}
	return string(b)
}
