// Package commonmark holds the typed CommonMark AST and the schema adapter
// that converts it to and from the namespaced raw object form.
package commonmark

import (
	"fmt"
	"strings"
)

// Namespace prefixes every $class in the raw form.
const Namespace = "org.accordproject.commonmark"

// Tag identifies a node type.
type Tag string

// Node types in the CommonMark model.
const (
	TagDocument      Tag = "Document"
	TagParagraph     Tag = "Paragraph"
	TagBlockQuote    Tag = "BlockQuote"
	TagThematicBreak Tag = "ThematicBreak"
	TagHeading       Tag = "Heading"
	TagCodeBlock     Tag = "CodeBlock"
	TagHTMLBlock     Tag = "HtmlBlock"
	TagHTMLInline    Tag = "HtmlInline"
	TagList          Tag = "List"
	TagItem          Tag = "Item"
	TagLink          Tag = "Link"
	TagText          Tag = "Text"
	TagCode          Tag = "Code"
	TagStrong        Tag = "Strong"
	TagEmph          Tag = "Emph"
)

var knownTags = map[Tag]bool{
	TagDocument: true, TagParagraph: true, TagBlockQuote: true, TagThematicBreak: true,
	TagHeading: true, TagCodeBlock: true, TagHTMLBlock: true, TagHTMLInline: true,
	TagList: true, TagItem: true, TagLink: true, TagText: true, TagCode: true,
	TagStrong: true, TagEmph: true,
}

// Class returns the fully qualified $class of the tag.
func (t Tag) Class() string { return Namespace + "." + string(t) }

// ParseClass returns the tag named by a fully qualified $class.
func ParseClass(class string) (Tag, error) {
	name, ok := strings.CutPrefix(class, Namespace+".")
	if !ok {
		return "", fmt.Errorf("class %q is not in namespace %s", class, Namespace)
	}
	if !knownTags[Tag(name)] {
		return "", fmt.Errorf("unknown class %q", class)
	}
	return Tag(name), nil
}

// Node is a node of the AST.
type Node interface {
	Tag() Tag
	isNode()
}

// Container is a node with a children slot.
type Container interface {
	Node
	Children() []Node
}

// ListType is the kind of a List.
type ListType string

const (
	Ordered ListType = "ordered"
	Bullet  ListType = "bullet"
)

type Document struct {
	Xmlns string
	Nodes []Node
}

type Paragraph struct {
	Nodes []Node
}

// BlockQuote keeps a nil Nodes distinct from an empty one.
type BlockQuote struct {
	Nodes []Node
}

type ThematicBreak struct{}

// Heading has no children; its content is flattened into Text.
type Heading struct {
	Level int
	Text  string
}

type CodeBlock struct{}

type HTMLBlock struct{}

type HTMLInline struct{}

type List struct {
	Type  ListType
	Tight bool
	Nodes []Node
}

type Item struct {
	Nodes []Node
}

type Link struct {
	Destination string
	Title       string
	Nodes       []Node
}

type Text struct {
	Text string
}

type Code struct {
	Text string
}

type Strong struct {
	Nodes []Node
}

type Emph struct {
	Nodes []Node
}

func (*Document) Tag() Tag      { return TagDocument }
func (*Paragraph) Tag() Tag     { return TagParagraph }
func (*BlockQuote) Tag() Tag    { return TagBlockQuote }
func (*ThematicBreak) Tag() Tag { return TagThematicBreak }
func (*Heading) Tag() Tag       { return TagHeading }
func (*CodeBlock) Tag() Tag     { return TagCodeBlock }
func (*HTMLBlock) Tag() Tag     { return TagHTMLBlock }
func (*HTMLInline) Tag() Tag    { return TagHTMLInline }
func (*List) Tag() Tag          { return TagList }
func (*Item) Tag() Tag          { return TagItem }
func (*Link) Tag() Tag          { return TagLink }
func (*Text) Tag() Tag          { return TagText }
func (*Code) Tag() Tag          { return TagCode }
func (*Strong) Tag() Tag        { return TagStrong }
func (*Emph) Tag() Tag          { return TagEmph }

func (*Document) isNode()      {}
func (*Paragraph) isNode()     {}
func (*BlockQuote) isNode()    {}
func (*ThematicBreak) isNode() {}
func (*Heading) isNode()       {}
func (*CodeBlock) isNode()     {}
func (*HTMLBlock) isNode()     {}
func (*HTMLInline) isNode()    {}
func (*List) isNode()          {}
func (*Item) isNode()          {}
func (*Link) isNode()          {}
func (*Text) isNode()          {}
func (*Code) isNode()          {}
func (*Strong) isNode()        {}
func (*Emph) isNode()          {}

func (n *Document) Children() []Node   { return n.Nodes }
func (n *Paragraph) Children() []Node  { return n.Nodes }
func (n *BlockQuote) Children() []Node { return n.Nodes }
func (n *List) Children() []Node       { return n.Nodes }
func (n *Item) Children() []Node       { return n.Nodes }
func (n *Link) Children() []Node       { return n.Nodes }
func (n *Strong) Children() []Node     { return n.Nodes }
func (n *Emph) Children() []Node       { return n.Nodes }
