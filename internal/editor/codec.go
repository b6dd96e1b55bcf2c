package editor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// wireNode is the stored editor format: one struct for every object type.
type wireNode struct {
	Object   string      `json:"object"`
	Type     string      `json:"type,omitempty"`
	Data     *wireData   `json:"data,omitempty"`
	Text     *string     `json:"text,omitempty"`
	Marks    *[]wireMark `json:"marks,omitempty"`
	Nodes    *[]wireNode `json:"nodes,omitempty"`
	Document *wireNode   `json:"document,omitempty"`
}

type wireData struct {
	Href string `json:"href,omitempty"`
}

type wireMark struct {
	Object string `json:"object,omitempty"`
	Type   string `json:"type"`
}

// Decode parses a JSON editor document. Both a bare document object and a
// value object wrapping one are accepted.
func Decode(data []byte) (*Document, error) {
	var w wireNode
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to parse editor document: %w", err)
	}
	if w.Object == "value" {
		if w.Document == nil {
			return nil, fmt.Errorf("value object has no document")
		}
		w = *w.Document
	}
	if w.Object != "document" {
		return nil, fmt.Errorf("expected document object, got %q", w.Object)
	}
	doc := &Document{Nodes: []Node{}}
	if w.Nodes != nil {
		nodes, err := fromWireList(*w.Nodes, "")
		if err != nil {
			return nil, err
		}
		doc.Nodes = nodes
	}
	return doc, nil
}

// DecodeYAML parses an editor document written as YAML. The YAML must have
// the same shape as the JSON format.
func DecodeYAML(data []byte) (*Document, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("failed to parse editor document: %w", err)
	}
	j, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to parse editor document: %w", err)
	}
	return Decode(j)
}

// Load reads an editor document from a .json, .yaml or .yml file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return Decode(data)
	}
}

// Encode writes doc as indented JSON wrapped in a value object.
func Encode(doc *Document) ([]byte, error) {
	inner := wireNode{Object: "document", Nodes: toWireList(doc.Nodes)}
	return json.MarshalIndent(wireNode{Object: "value", Document: &inner}, "", "  ")
}

// EncodeYAML writes doc as YAML in the same shape as Encode.
func EncodeYAML(doc *Document) ([]byte, error) {
	j, err := Encode(doc)
	if err != nil {
		return nil, err
	}
	var v any
	if err := json.Unmarshal(j, &v); err != nil {
		return nil, err
	}
	return yaml.Marshal(v)
}

// String returns the compact JSON form of n, for diagnostics.
func String(n Node) string {
	if n == nil {
		return "null"
	}
	b, err := json.Marshal(toWire(n))
	if err != nil {
		return fmt.Sprintf("%#v", n)
	}
	return string(b)
}

func fromWireList(ws []wireNode, path string) ([]Node, error) {
	nodes := make([]Node, 0, len(ws))
	for i, w := range ws {
		n, err := fromWire(w, fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func fromWire(w wireNode, path string) (Node, error) {
	switch w.Object {
	case "text":
		t := &Text{}
		if w.Text != nil {
			t.Text = *w.Text
		}
		if w.Marks != nil {
			for _, wm := range *w.Marks {
				m, err := ParseMark(wm.Type)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", path, err)
				}
				t.Marks |= m
			}
		}
		return t, nil
	case "block", "inline":
		el := &Element{Type: Kind(w.Type)}
		if w.Data != nil {
			el.Href = w.Data.Href
		}
		if w.Nodes != nil {
			nodes, err := fromWireList(*w.Nodes, path)
			if err != nil {
				return nil, err
			}
			el.Nodes = nodes
		}
		return el, nil
	default:
		return nil, fmt.Errorf("%s: unknown object %q", path, w.Object)
	}
}

func toWireList(nodes []Node) *[]wireNode {
	if nodes == nil {
		return nil
	}
	ws := make([]wireNode, 0, len(nodes))
	for _, n := range nodes {
		ws = append(ws, toWire(n))
	}
	return &ws
}

func toWire(n Node) wireNode {
	switch n := n.(type) {
	case *Text:
		text := n.Text
		marks := []wireMark{}
		for _, name := range n.Marks.Names() {
			marks = append(marks, wireMark{Object: "mark", Type: name})
		}
		return wireNode{Object: "text", Text: &text, Marks: &marks}
	case *Element:
		w := wireNode{Object: n.Object(), Type: string(n.Type), Nodes: toWireList(n.Nodes)}
		if n.Type == Link {
			w.Data = &wireData{Href: n.Href}
		}
		return w
	}
	return wireNode{}
}
