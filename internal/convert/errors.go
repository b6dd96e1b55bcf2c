package convert

import (
	"errors"
	"fmt"
)

// Structural errors. Every conversion error matches exactly one of these
// with errors.Is.
var (
	ErrUnrecognizedNode     = errors.New("unrecognized node")
	ErrMissingChildrenSlot  = errors.New("node has children but its target has no children slot")
	ErrInvalidParent        = errors.New("parent node has no children slot")
	ErrMalformedHeading     = errors.New("heading must hold exactly one text node")
	ErrUnsupportedStructure = errors.New("unsupported structure")
)

// NodeError reports a structural failure at one node of the tree.
type NodeError struct {
	Err error
	// Path is the slash-separated child index path from the root, e.g. "/2/0".
	Path string
	// Node is the compact JSON form of the offending node.
	Node string
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("%v at %s: %s", e.Err, e.Path, e.Node)
}

func (e *NodeError) Unwrap() error { return e.Err }

func childPath(parent string, i int) string {
	return fmt.Sprintf("%s/%d", parent, i)
}
