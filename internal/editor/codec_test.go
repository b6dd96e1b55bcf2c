package editor

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleJSON = `{
  "object": "value",
  "document": {
    "object": "document",
    "data": {},
    "nodes": [
      {
        "object": "block",
        "type": "paragraph",
        "nodes": [
          {"object": "text", "text": "Hello ", "marks": []},
          {"object": "text", "text": "world", "marks": [{"object": "mark", "type": "italic"}, {"object": "mark", "type": "bold"}]},
          {
            "object": "inline",
            "type": "link",
            "data": {"href": "https://example.com"},
            "nodes": [{"object": "text", "text": "here", "marks": []}]
          }
        ]
      },
      {"object": "block", "type": "horizontal_rule"}
    ]
  }
}`

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(sampleJSON))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	want := &Document{Nodes: []Node{
		NewElement(Paragraph,
			NewText("Hello "),
			NewText("world", Bold, Italic),
			NewLink("https://example.com", NewText("here")),
		),
		NewLeaf(HorizontalRule),
	}}

	if !Equal(doc, want) {
		t.Errorf("Decode() mismatch (-want +got):\n%s", cmp.Diff(want, doc))
	}
}

func TestDecodeDistinguishesEmptyChildren(t *testing.T) {
	doc, err := Decode([]byte(`{"object":"document","nodes":[
		{"object":"block","type":"quote"},
		{"object":"block","type":"quote","nodes":[]}
	]}`))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	leaf := doc.Nodes[0].(*Element)
	empty := doc.Nodes[1].(*Element)
	if leaf.Nodes != nil {
		t.Errorf("expected nil children for element without nodes, got %v", leaf.Nodes)
	}
	if empty.Nodes == nil {
		t.Error("expected non-nil children for element with empty nodes")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "invalid json",
			input:   `{"object":`,
			wantErr: "failed to parse editor document",
		},
		{
			name:    "not a document",
			input:   `{"object":"block","type":"paragraph"}`,
			wantErr: "expected document object",
		},
		{
			name:    "value without document",
			input:   `{"object":"value"}`,
			wantErr: "value object has no document",
		},
		{
			name:    "unsupported mark",
			input:   `{"object":"document","nodes":[{"object":"text","text":"x","marks":[{"type":"underline"}]}]}`,
			wantErr: `/0: unsupported mark "underline"`,
		},
		{
			name:    "unknown object",
			input:   `{"object":"document","nodes":[{"object":"block","type":"paragraph","nodes":[{"object":"leaf"}]}]}`,
			wantErr: `/0/0: unknown object "leaf"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.input))
			if err == nil {
				t.Fatal("Decode() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Decode() error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestEncodeDecodeKeepsStructure(t *testing.T) {
	doc := &Document{Nodes: []Node{
		NewElement(BulletList,
			NewElement(ListItem, NewText("one", Code)),
			NewElement(ListItem),
		),
		NewLeaf(CodeBlock),
		NewElement(Quote),
	}}

	data, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	back, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !Equal(doc, back) {
		t.Errorf("document changed after encode/decode:\n%s", data)
	}
}

func TestDecodeYAML(t *testing.T) {
	input := `
object: document
nodes:
  - object: block
    type: heading_two
    nodes:
      - object: text
        text: Title
  - object: inline
    type: link
    data:
      href: https://x
    nodes:
      - object: text
        text: go
        marks:
          - type: code
`
	doc, err := DecodeYAML([]byte(input))
	if err != nil {
		t.Fatalf("DecodeYAML() error = %v", err)
	}

	want := &Document{Nodes: []Node{
		NewElement(HeadingTwo, NewText("Title")),
		NewLink("https://x", NewText("go", Code)),
	}}
	if !Equal(doc, want) {
		t.Errorf("DecodeYAML() mismatch (-want +got):\n%s", cmp.Diff(want, doc))
	}
}

func TestLoadByExtension(t *testing.T) {
	tmpDir := t.TempDir()
	doc := &Document{Nodes: []Node{NewElement(Paragraph, NewText("hi", Bold))}}

	jsonData, err := Encode(doc)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	yamlData, err := EncodeYAML(doc)
	if err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}

	files := map[string][]byte{
		"doc.json": jsonData,
		"doc.yaml": yamlData,
		"doc.yml":  yamlData,
	}
	for name, data := range files {
		path := filepath.Join(tmpDir, name)
		if err := os.WriteFile(path, data, 0644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}

		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) error = %v", name, err)
		}
		if !Equal(doc, loaded) {
			t.Errorf("Load(%s) returned a different document", name)
		}
	}
}

func TestString(t *testing.T) {
	got := String(NewText("x", Italic, Bold))
	want := `{"object":"text","text":"x","marks":[{"object":"mark","type":"bold"},{"object":"mark","type":"italic"}]}`
	if got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}

	got = String(NewLeaf(Kind("unknown_kind")))
	want = `{"object":"block","type":"unknown_kind"}`
	if got != want {
		t.Errorf("String() = %s, want %s", got, want)
	}
}
