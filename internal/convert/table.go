package convert

import (
	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/editor"
)

// target describes how one element kind maps onto the AST.
type target struct {
	tag commonmark.Tag
	// slot is set when the target node takes the converted children.
	slot bool
	// flatten is set when the element's children are read by build directly
	// instead of being converted.
	flatten bool
	build   func(el *editor.Element, children []commonmark.Node) (commonmark.Node, error)
}

var table = map[editor.Kind]target{
	editor.Paragraph: {tag: commonmark.TagParagraph, slot: true,
		build: func(_ *editor.Element, children []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.Paragraph{Nodes: orEmpty(children)}, nil
		}},
	// quote has no children slot; only block_quote nests content.
	editor.Quote: {tag: commonmark.TagBlockQuote,
		build: func(*editor.Element, []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.BlockQuote{}, nil
		}},
	editor.HorizontalRule: {tag: commonmark.TagThematicBreak,
		build: func(*editor.Element, []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.ThematicBreak{}, nil
		}},
	editor.HeadingOne:   headingTarget,
	editor.HeadingTwo:   headingTarget,
	editor.HeadingThree: headingTarget,
	editor.HeadingFour:  headingTarget,
	editor.HeadingFive:  headingTarget,
	editor.HeadingSix:   headingTarget,
	editor.BlockQuote: {tag: commonmark.TagBlockQuote, slot: true,
		build: func(_ *editor.Element, children []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.BlockQuote{Nodes: orEmpty(children)}, nil
		}},
	editor.CodeBlock: {tag: commonmark.TagCodeBlock,
		build: func(*editor.Element, []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.CodeBlock{}, nil
		}},
	editor.HTMLBlock: {tag: commonmark.TagHTMLBlock,
		build: func(*editor.Element, []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.HTMLBlock{}, nil
		}},
	editor.HTMLInline: {tag: commonmark.TagHTMLInline,
		build: func(*editor.Element, []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.HTMLInline{}, nil
		}},
	editor.OrderedList: list(commonmark.Ordered),
	editor.BulletList:  list(commonmark.Bullet),
	// Item content lives in a synthesized Paragraph one level down.
	editor.ListItem: {tag: commonmark.TagItem, slot: true,
		build: func(_ *editor.Element, children []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.Item{Nodes: []commonmark.Node{
				&commonmark.Paragraph{Nodes: orEmpty(children)},
			}}, nil
		}},
	editor.Link: {tag: commonmark.TagLink, slot: true,
		build: func(el *editor.Element, children []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.Link{Destination: el.Href, Title: "", Nodes: orEmpty(children)}, nil
		}},
}

// headingTarget reads the level from the element kind.
var headingTarget = target{tag: commonmark.TagHeading, flatten: true,
	build: func(el *editor.Element, _ []commonmark.Node) (commonmark.Node, error) {
		if len(el.Nodes) != 1 {
			return nil, ErrMalformedHeading
		}
		text, ok := el.Nodes[0].(*editor.Text)
		if !ok {
			return nil, ErrMalformedHeading
		}
		return &commonmark.Heading{Level: el.Type.HeadingLevel(), Text: text.Text}, nil
	}}

func list(typ commonmark.ListType) target {
	return target{tag: commonmark.TagList, slot: true,
		build: func(_ *editor.Element, children []commonmark.Node) (commonmark.Node, error) {
			return &commonmark.List{Type: typ, Tight: true, Nodes: orEmpty(children)}, nil
		}}
}

func orEmpty(nodes []commonmark.Node) []commonmark.Node {
	if nodes == nil {
		return []commonmark.Node{}
	}
	return nodes
}
