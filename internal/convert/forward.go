// Package convert maps editor trees onto CommonMark ASTs and back.
package convert

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/editor"
	"github.com/gerunddev/slatemark/internal/logger"
)

// Xmlns is stamped on every Document produced by the forward converter.
const Xmlns = "slate"

// Converter converts in both directions. It holds no per-call state, so one
// Converter may be shared across goroutines.
type Converter struct {
	adapter      commonmark.SchemaAdapter
	leafChildren LeafChildrenPolicy
	log          *logger.Logger
	table        map[editor.Kind]target
}

// NewConverter creates a converter with the default schema adapter and the
// LeafChildrenError policy.
func NewConverter(opts ...Option) *Converter {
	c := &Converter{
		adapter: commonmark.NewAdapter(),
		log:     logger.Discard(),
		table:   table,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = NewConverter()

// ToCommonMark converts doc with a default Converter.
func ToCommonMark(doc *editor.Document) (*commonmark.Document, error) {
	return defaultConverter.ToCommonMark(doc)
}

// ToEditor converts doc with a default Converter.
func ToEditor(doc *commonmark.Document) (*editor.Document, error) {
	return defaultConverter.ToEditor(doc)
}

// ToCommonMark converts an editor document into a validated CommonMark
// Document. On error no tree is returned.
func (c *Converter) ToCommonMark(doc *editor.Document) (*commonmark.Document, error) {
	if doc == nil {
		return nil, errors.New("nil editor document")
	}
	start := time.Now()
	c.log.ConversionStarted("forward", len(doc.Nodes))

	nodes, err := c.convertNodes(doc.Nodes, "")
	if err != nil {
		c.log.ConversionError("forward", err)
		return nil, err
	}

	out, err := commonmark.Validate(c.adapter, &commonmark.Document{Xmlns: Xmlns, Nodes: nodes})
	if err != nil {
		c.log.ConversionError("forward", err)
		return nil, fmt.Errorf("failed to validate document: %w", err)
	}

	c.log.ConversionCompleted("forward", len(out.Nodes), time.Since(start))
	return out, nil
}

func (c *Converter) convertNodes(nodes []editor.Node, path string) ([]commonmark.Node, error) {
	out := make([]commonmark.Node, 0, len(nodes))
	for i, n := range nodes {
		converted, err := c.convertNode(n, childPath(path, i))
		if err != nil {
			return nil, err
		}
		out = append(out, converted)
	}
	return out, nil
}

func (c *Converter) convertNode(n editor.Node, path string) (commonmark.Node, error) {
	switch n := n.(type) {
	case *editor.Text:
		return textNode(n), nil
	case *editor.Element:
		return c.convertElement(n, path)
	}
	return nil, &NodeError{Err: ErrUnrecognizedNode, Path: path, Node: editor.String(n)}
}

func (c *Converter) convertElement(el *editor.Element, path string) (commonmark.Node, error) {
	fail := func(err error) (commonmark.Node, error) {
		return nil, &NodeError{Err: err, Path: path, Node: editor.String(el)}
	}

	entry, ok := c.table[el.Type]
	if !ok {
		return fail(ErrUnrecognizedNode)
	}

	var children []commonmark.Node
	switch {
	case entry.flatten || el.Nodes == nil:
	case !entry.slot:
		if c.leafChildren == LeafChildrenError {
			return fail(ErrMissingChildrenSlot)
		}
	default:
		var err error
		children, err = c.convertNodes(el.Nodes, path)
		if err != nil {
			return nil, err
		}
	}

	n, err := entry.build(el, children)
	if err != nil {
		return fail(err)
	}
	if children != nil {
		if _, ok := n.(commonmark.Container); !ok {
			return fail(ErrInvalidParent)
		}
	}
	return n, nil
}

// MappingEntry describes how one element kind is converted.
type MappingEntry struct {
	Kind editor.Kind
	Tag  commonmark.Tag
	// Children reports whether the target node takes converted children.
	Children bool
}

// Mapping lists the element kinds the converter understands, sorted by kind.
func Mapping() []MappingEntry {
	entries := make([]MappingEntry, 0, len(table))
	for kind, t := range table {
		entries = append(entries, MappingEntry{Kind: kind, Tag: t.tag, Children: t.slot})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Kind < entries[j].Kind })
	return entries
}
