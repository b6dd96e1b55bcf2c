package convert

import (
	"fmt"

	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/logger"
)

// LeafChildrenPolicy decides what happens when an element whose target has
// no children slot (quote, horizontal_rule, code_block, html_block,
// html_inline) declares children.
type LeafChildrenPolicy int

const (
	// LeafChildrenError fails with ErrMissingChildrenSlot, even for an empty
	// children list.
	LeafChildrenError LeafChildrenPolicy = iota
	// LeafChildrenDrop discards the children.
	LeafChildrenDrop
)

func (p LeafChildrenPolicy) String() string {
	switch p {
	case LeafChildrenError:
		return "error"
	case LeafChildrenDrop:
		return "drop"
	}
	return fmt.Sprintf("LeafChildrenPolicy(%d)", int(p))
}

// ParseLeafChildrenPolicy parses "error" or "drop".
func ParseLeafChildrenPolicy(s string) (LeafChildrenPolicy, error) {
	switch s {
	case "error", "":
		return LeafChildrenError, nil
	case "drop":
		return LeafChildrenDrop, nil
	}
	return 0, fmt.Errorf("invalid leaf children policy %q: must be one of: error, drop", s)
}

// Option configures a Converter.
type Option func(*Converter)

// WithAdapter replaces the schema adapter used to validate forward output.
func WithAdapter(a commonmark.SchemaAdapter) Option {
	return func(c *Converter) {
		c.adapter = a
	}
}

// WithLeafChildren sets the leaf children policy.
func WithLeafChildren(p LeafChildrenPolicy) Option {
	return func(c *Converter) {
		c.leafChildren = p
	}
}

// WithLogger sets the logger. Conversions only log at debug level, plus
// errors.
func WithLogger(l *logger.Logger) Option {
	return func(c *Converter) {
		c.log = l
	}
}
