package commands

import (
	"fmt"
	"os"

	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/convert"
	"github.com/gerunddev/slatemark/internal/diff"
	"github.com/gerunddev/slatemark/internal/editor"
	"github.com/gerunddev/slatemark/internal/styles"
)

// ToAST converts an editor document into CommonMark JSON on stdout
func ToAST(args []string) {
	positional, flags := parseArgs(args)
	if len(positional) != 1 {
		fail("usage: slatemark to-ast <file|->")
	}

	e := mustSetup(flags["verbose"])
	defer e.cleanup()

	doc, err := loadEditor(positional[0])
	if err != nil {
		fail("Error reading document: " + err.Error())
	}

	ast, err := e.converter.ToCommonMark(doc)
	if err != nil {
		fail("Conversion failed: " + err.Error())
	}

	out, err := commonmark.Marshal(ast)
	if err != nil {
		fail("Error encoding AST: " + err.Error())
	}
	fmt.Println(string(out))
}

// ToEditor converts CommonMark JSON back into an editor document on stdout.
// Pass --yaml to print YAML instead of JSON.
func ToEditor(args []string) {
	positional, flags := parseArgs(args)
	if len(positional) != 1 {
		fail("usage: slatemark to-editor <file|-> [--yaml]")
	}

	e := mustSetup(flags["verbose"])
	defer e.cleanup()

	data, err := readInput(positional[0])
	if err != nil {
		fail("Error reading AST: " + err.Error())
	}

	ast, err := commonmark.Unmarshal(data)
	if err != nil {
		fail("Invalid AST: " + err.Error())
	}

	doc, err := e.converter.ToEditor(ast)
	if err != nil {
		fail("Conversion failed: " + err.Error())
	}

	var out []byte
	if flags["yaml"] {
		out, err = editor.EncodeYAML(doc)
	} else {
		out, err = editor.Encode(doc)
	}
	if err != nil {
		fail("Error encoding document: " + err.Error())
	}
	fmt.Print(string(out))
	if !flags["yaml"] {
		fmt.Println()
	}
}

// RoundTrip converts a document forward and back and reports whether it
// survived unchanged
func RoundTrip(args []string) {
	positional, flags := parseArgs(args)
	if len(positional) != 1 {
		fail("usage: slatemark roundtrip <file|->")
	}

	e := mustSetup(flags["verbose"])
	defer e.cleanup()

	doc, err := loadEditor(positional[0])
	if err != nil {
		fail("Error reading document: " + err.Error())
	}

	back, err := e.converter.RoundTrip(doc)
	if err != nil {
		fail("Round trip failed: " + err.Error())
	}

	if editor.Equal(doc, back) {
		fmt.Println(styles.SuccessStyle.Render("✓ Document survives the round trip"))
		return
	}

	want, _ := editor.Encode(doc)
	got, _ := editor.Encode(back)
	fmt.Println(styles.ErrorStyle.Render("✗ Round trip changed the document"))
	fmt.Println(diff.Render(diff.Unified(positional[0], "roundtrip", string(want), string(got))))
	os.Exit(1)
}

// Kinds prints the element kind to AST node mapping
func Kinds() {
	fmt.Println(styles.TitleStyle.Render("Element mapping"))
	fmt.Println()
	for _, m := range mappingRows() {
		fmt.Println(m)
	}
}

func mappingRows() []string {
	var rows []string
	for _, m := range convert.Mapping() {
		children := styles.DimStyle.Render("leaf")
		if m.Children {
			children = "children"
		}
		rows = append(rows, fmt.Sprintf("  %s → %s %s",
			styles.KindStyle.Render(fmt.Sprintf("%-15s", m.Kind)),
			styles.TagStyle.Render(fmt.Sprintf("%-45s", m.Tag.Class())),
			children))
	}
	return rows
}
