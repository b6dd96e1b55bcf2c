package commonmark

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
)

// ErrSchemaValidation is matched by every error the adapter returns.
var ErrSchemaValidation = errors.New("schema validation failed")

// ValidationError describes why a raw tree was rejected.
type ValidationError struct {
	Path   string
	Class  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Class == "" {
		return fmt.Sprintf("%s at %s: %s", ErrSchemaValidation, e.Path, e.Reason)
	}
	return fmt.Sprintf("%s at %s (%s): %s", ErrSchemaValidation, e.Path, e.Class, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrSchemaValidation }

// SchemaAdapter turns a raw tree into a validated, typed Document.
type SchemaAdapter interface {
	FromRaw(raw Raw) (*Document, error)
}

// Adapter is the default SchemaAdapter. It holds no state and is safe for
// concurrent use.
type Adapter struct{}

// NewAdapter creates an Adapter.
func NewAdapter() *Adapter {
	return &Adapter{}
}

// FromRaw validates raw against the CommonMark model and returns the typed
// tree. The root must be a Document.
func (a *Adapter) FromRaw(raw Raw) (*Document, error) {
	if raw == nil {
		return nil, &ValidationError{Path: "/", Reason: "document is empty"}
	}
	n, err := a.node(raw, "/")
	if err != nil {
		return nil, err
	}
	doc, ok := n.(*Document)
	if !ok {
		return nil, &ValidationError{Path: "/", Class: n.Tag().Class(), Reason: "root must be a Document"}
	}
	return doc, nil
}

// Validate passes a typed document through its raw form and a, returning the
// freshly typed copy.
func Validate(a SchemaAdapter, doc *Document) (*Document, error) {
	return a.FromRaw(ToRaw(doc))
}

func (a *Adapter) node(raw map[string]any, path string) (Node, error) {
	class, _ := raw[ClassKey].(string)
	if class == "" {
		return nil, &ValidationError{Path: path, Reason: "missing $class"}
	}
	tag, err := ParseClass(class)
	if err != nil {
		return nil, &ValidationError{Path: path, Class: class, Reason: err.Error()}
	}

	r := &reader{raw: raw, path: path, class: class, seen: map[string]bool{ClassKey: true}}

	var n Node
	switch tag {
	case TagDocument:
		xmlns := r.str("xmlns", false)
		n = &Document{Xmlns: xmlns, Nodes: r.children(a, false)}
		if path != "/" && r.err == nil {
			r.fail("Document must be the root")
		}
	case TagParagraph:
		n = &Paragraph{Nodes: r.children(a, false)}
	case TagBlockQuote:
		n = &BlockQuote{Nodes: r.children(a, true)}
	case TagThematicBreak:
		n = &ThematicBreak{}
	case TagHeading:
		n = &Heading{Level: r.level(), Text: r.str("text", false)}
	case TagCodeBlock:
		n = &CodeBlock{}
	case TagHTMLBlock:
		n = &HTMLBlock{}
	case TagHTMLInline:
		n = &HTMLInline{}
	case TagList:
		n = &List{Type: r.listType(), Tight: r.boolean("tight"), Nodes: r.children(a, false)}
	case TagItem:
		n = &Item{Nodes: r.children(a, false)}
	case TagLink:
		n = &Link{
			Destination: r.str("destination", true),
			Title:       r.str("title", true),
			Nodes:       r.children(a, false),
		}
	case TagText:
		n = &Text{Text: r.str("text", true)}
	case TagCode:
		n = &Code{Text: r.str("text", true)}
	case TagStrong:
		n = &Strong{Nodes: r.children(a, false)}
	case TagEmph:
		n = &Emph{Nodes: r.children(a, false)}
	}

	r.checkUnknown()
	if r.err != nil {
		return nil, r.err
	}
	return n, nil
}

// reader pulls typed properties out of a raw node, remembering the first
// failure and which properties were consumed.
type reader struct {
	raw   map[string]any
	path  string
	class string
	seen  map[string]bool
	err   error
}

func (r *reader) fail(format string, args ...any) {
	if r.err == nil {
		r.err = &ValidationError{Path: r.path, Class: r.class, Reason: fmt.Sprintf(format, args...)}
	}
}

func (r *reader) get(name string, required bool) (any, bool) {
	r.seen[name] = true
	v, ok := r.raw[name]
	if !ok || v == nil {
		if required {
			r.fail("missing required property %q", name)
		}
		return nil, false
	}
	return v, true
}

func (r *reader) str(name string, required bool) string {
	v, ok := r.get(name, required)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		r.fail("property %q must be a string, got %T", name, v)
	}
	return s
}

func (r *reader) level() int {
	v, ok := r.get("level", true)
	if !ok {
		return 0
	}
	var level int
	switch v := v.(type) {
	case string:
		l, err := strconv.Atoi(v)
		if err != nil {
			r.fail("invalid level %q", v)
			return 0
		}
		level = l
	case float64:
		level = int(v)
		if float64(level) != v {
			r.fail("invalid level %v", v)
			return 0
		}
	case int:
		level = v
	default:
		r.fail("invalid level of type %T", v)
		return 0
	}
	if level < 1 || level > 6 {
		r.fail("level %d out of range 1..6", level)
	}
	return level
}

func (r *reader) boolean(name string) bool {
	v, ok := r.get(name, true)
	if !ok {
		return false
	}
	switch v := v.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.fail("invalid boolean %q for %q", v, name)
		}
		return b
	}
	r.fail("property %q must be a boolean, got %T", name, v)
	return false
}

func (r *reader) listType() ListType {
	t := ListType(r.str("type", true))
	if r.err == nil && t != Ordered && t != Bullet {
		r.fail("invalid list type %q", t)
	}
	return t
}

// children reads the "nodes" property. With keepNil an absent property stays
// nil, otherwise it becomes an empty list.
func (r *reader) children(a *Adapter, keepNil bool) []Node {
	v, ok := r.get("nodes", false)
	if !ok {
		if keepNil {
			return nil
		}
		return []Node{}
	}
	list, ok := v.([]any)
	if !ok {
		r.fail("property \"nodes\" must be a list, got %T", v)
		return nil
	}
	nodes := make([]Node, 0, len(list))
	for i, item := range list {
		p := childPath(r.path, i)
		var m map[string]any
		switch item := item.(type) {
		case Raw:
			m = item
		case map[string]any:
			m = item
		default:
			r.fail("child %d must be an object, got %T", i, item)
			return nil
		}
		n, err := a.node(m, p)
		if err != nil {
			if r.err == nil {
				r.err = err
			}
			return nil
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (r *reader) checkUnknown() {
	var unknown []string
	for name := range r.raw {
		if !r.seen[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		r.fail("unknown properties %v", unknown)
	}
}

func childPath(parent string, i int) string {
	if parent == "/" {
		return fmt.Sprintf("/%d", i)
	}
	return fmt.Sprintf("%s/%d", parent, i)
}
