package commonmark

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func sampleDocument() *Document {
	return &Document{
		Xmlns: "slate",
		Nodes: []Node{
			&Heading{Level: 2, Text: "Title"},
			&Paragraph{Nodes: []Node{
				&Text{Text: "plain "},
				&Emph{Nodes: []Node{&Strong{Nodes: []Node{&Text{Text: "both"}}}}},
				&Code{Text: "x := 1"},
				&Link{Destination: "https://x", Title: "", Nodes: []Node{&Text{Text: "link"}}},
			}},
			&List{Type: Ordered, Tight: true, Nodes: []Node{
				&Item{Nodes: []Node{&Paragraph{Nodes: []Node{&Text{Text: "one"}}}}},
			}},
			&BlockQuote{},
			&BlockQuote{Nodes: []Node{}},
			&ThematicBreak{},
			&CodeBlock{},
			&HTMLBlock{},
			&Paragraph{Nodes: []Node{&HTMLInline{}}},
		},
	}
}

func TestAdapterValidateRoundTrip(t *testing.T) {
	doc := sampleDocument()

	got, err := Validate(NewAdapter(), doc)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("Validate() mismatch (-want +got):\n%s", diff)
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	doc := sampleDocument()

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"$class": "org.accordproject.commonmark.Heading"`) {
		t.Errorf("expected namespaced class in output:\n%s", data)
	}
	if !strings.Contains(string(data), `"level": "2"`) {
		t.Errorf("expected string level in output:\n%s", data)
	}

	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(doc, got); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestToRawBlockQuoteSlot(t *testing.T) {
	if _, ok := ToRaw(&BlockQuote{})["nodes"]; ok {
		t.Error("BlockQuote without children should not have a nodes property")
	}
	if _, ok := ToRaw(&BlockQuote{Nodes: []Node{}})["nodes"]; !ok {
		t.Error("BlockQuote with empty children should have a nodes property")
	}
}

func TestAdapterRejects(t *testing.T) {
	tests := []struct {
		name       string
		raw        Raw
		wantPath   string
		wantReason string
	}{
		{
			name:       "nil raw",
			raw:        nil,
			wantPath:   "/",
			wantReason: "document is empty",
		},
		{
			name:       "missing class",
			raw:        Raw{"nodes": []any{}},
			wantPath:   "/",
			wantReason: "missing $class",
		},
		{
			name:       "wrong namespace",
			raw:        Raw{ClassKey: "org.example.Document"},
			wantPath:   "/",
			wantReason: "not in namespace",
		},
		{
			name:       "unknown tag",
			raw:        Raw{ClassKey: Namespace + ".Table"},
			wantPath:   "/",
			wantReason: "unknown class",
		},
		{
			name:       "root not document",
			raw:        Raw{ClassKey: TagParagraph.Class(), "nodes": []any{}},
			wantPath:   "/",
			wantReason: "root must be a Document",
		},
		{
			name: "bad heading level",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagHeading.Class(), "level": "seven", "text": "x"},
			}},
			wantPath:   "/0",
			wantReason: `invalid level "seven"`,
		},
		{
			name: "heading level out of range",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagHeading.Class(), "level": "9", "text": "x"},
			}},
			wantPath:   "/0",
			wantReason: "out of range",
		},
		{
			name: "missing text",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagParagraph.Class(), "nodes": []any{
					Raw{ClassKey: TagText.Class()},
				}},
			}},
			wantPath:   "/0/0",
			wantReason: `missing required property "text"`,
		},
		{
			name: "bad list type",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagList.Class(), "type": "numbered", "tight": "true", "nodes": []any{}},
			}},
			wantPath:   "/0",
			wantReason: `invalid list type "numbered"`,
		},
		{
			name: "bad tight",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagList.Class(), "type": "bullet", "tight": "yes", "nodes": []any{}},
			}},
			wantPath:   "/0",
			wantReason: `invalid boolean "yes"`,
		},
		{
			name: "unknown property",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagThematicBreak.Class(), "text": "---"},
			}},
			wantPath:   "/0",
			wantReason: "unknown properties [text]",
		},
		{
			name:       "nodes not a list",
			raw:        Raw{ClassKey: TagDocument.Class(), "nodes": "oops"},
			wantPath:   "/",
			wantReason: `property "nodes" must be a list`,
		},
		{
			name:       "child not an object",
			raw:        Raw{ClassKey: TagDocument.Class(), "nodes": []any{"oops"}},
			wantPath:   "/",
			wantReason: "child 0 must be an object",
		},
		{
			name: "nested document",
			raw: Raw{ClassKey: TagDocument.Class(), "nodes": []any{
				Raw{ClassKey: TagDocument.Class(), "nodes": []any{}},
			}},
			wantPath:   "/0",
			wantReason: "Document must be the root",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAdapter().FromRaw(tt.raw)
			if err == nil {
				t.Fatal("FromRaw() expected error, got nil")
			}
			if !errors.Is(err, ErrSchemaValidation) {
				t.Errorf("error %v does not match ErrSchemaValidation", err)
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("error %v is not a *ValidationError", err)
			}
			if verr.Path != tt.wantPath {
				t.Errorf("Path = %q, want %q", verr.Path, tt.wantPath)
			}
			if !strings.Contains(verr.Reason, tt.wantReason) {
				t.Errorf("Reason = %q, want it to contain %q", verr.Reason, tt.wantReason)
			}
		})
	}
}

func TestAdapterAcceptsLooseScalars(t *testing.T) {
	raw := Raw{ClassKey: TagDocument.Class(), "nodes": []any{
		map[string]any{ClassKey: TagHeading.Class(), "level": float64(3), "text": "T"},
		map[string]any{ClassKey: TagList.Class(), "type": "bullet", "tight": false},
	}}

	doc, err := NewAdapter().FromRaw(raw)
	if err != nil {
		t.Fatalf("FromRaw() error = %v", err)
	}

	want := &Document{Nodes: []Node{
		&Heading{Level: 3, Text: "T"},
		&List{Type: Bullet, Tight: false, Nodes: []Node{}},
	}}
	if diff := cmp.Diff(want, doc); diff != "" {
		t.Errorf("FromRaw() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseClass(t *testing.T) {
	tag, err := ParseClass("org.accordproject.commonmark.Emph")
	if err != nil {
		t.Fatalf("ParseClass() error = %v", err)
	}
	if tag != TagEmph {
		t.Errorf("ParseClass() = %s, want Emph", tag)
	}
	if TagStrong.Class() != "org.accordproject.commonmark.Strong" {
		t.Errorf("Class() = %s", TagStrong.Class())
	}
}
