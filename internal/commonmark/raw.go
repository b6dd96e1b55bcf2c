package commonmark

import (
	"encoding/json"
	"strconv"
)

// Raw is the untyped object form of a node, keyed by property name, with the
// node type under "$class". Scalar attributes are strings.
type Raw map[string]any

// ClassKey is the property holding a node's fully qualified type.
const ClassKey = "$class"

// ToRaw converts a typed node into its raw form.
func ToRaw(n Node) Raw {
	r := Raw{ClassKey: n.Tag().Class()}
	switch n := n.(type) {
	case *Document:
		if n.Xmlns != "" {
			r["xmlns"] = n.Xmlns
		}
		r["nodes"] = rawList(n.Nodes)
	case *BlockQuote:
		if n.Nodes != nil {
			r["nodes"] = rawList(n.Nodes)
		}
	case *Heading:
		r["level"] = strconv.Itoa(n.Level)
		r["text"] = n.Text
	case *List:
		r["type"] = string(n.Type)
		r["tight"] = strconv.FormatBool(n.Tight)
		r["nodes"] = rawList(n.Nodes)
	case *Link:
		r["destination"] = n.Destination
		r["title"] = n.Title
		r["nodes"] = rawList(n.Nodes)
	case *Text:
		r["text"] = n.Text
	case *Code:
		r["text"] = n.Text
	case Container:
		r["nodes"] = rawList(n.Children())
	}
	return r
}

func rawList(nodes []Node) []any {
	list := make([]any, 0, len(nodes))
	for _, n := range nodes {
		list = append(list, ToRaw(n))
	}
	return list
}

// Marshal encodes a document as indented JSON in raw form.
func Marshal(doc *Document) ([]byte, error) {
	return json.MarshalIndent(ToRaw(doc), "", "    ")
}

// Unmarshal decodes raw-form JSON and validates it with a default Adapter.
func Unmarshal(data []byte) (*Document, error) {
	var r Raw
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, &ValidationError{Path: "/", Reason: err.Error()}
	}
	return NewAdapter().FromRaw(r)
}
