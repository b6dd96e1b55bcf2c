package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/slatemark/internal/commands"
	"github.com/gerunddev/slatemark/internal/config"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "to-ast", "ast":
		commands.ToAST(os.Args[2:])
	case "to-editor", "editor":
		commands.ToEditor(os.Args[2:])
	case "roundtrip":
		commands.RoundTrip(os.Args[2:])
	case "check", "test":
		commands.Check(os.Args[2:])
	case "browse":
		commands.Browse(os.Args[2:])
	case "kinds":
		commands.Kinds()
	case "version", "-v", "--version":
		fmt.Printf("slatemark v%s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	usage := fmt.Sprintf(`slatemark - Convert between editor documents and CommonMark ASTs

Usage:
  slatemark <command> [options]

Commands:
  to-ast      Convert an editor document (JSON or YAML) to a CommonMark AST
  to-editor   Convert a CommonMark AST back to an editor document (--yaml)
  roundtrip   Check that a document survives conversion both ways
  check       Check fixtures against AST snapshots (--update, --force, --plain)
  browse      Browse fixture results and snapshot diffs
  kinds       List supported element kinds and their AST nodes
  version     Show version information
  help        Show this help message

Use - as the file to read from stdin. --verbose copies the log to stderr.

Examples:
  slatemark to-ast doc.json
  slatemark to-ast doc.yaml > doc.ast.json
  slatemark to-editor doc.ast.json --yaml
  slatemark roundtrip doc.json
  slatemark check testdata
  slatemark check --update
  slatemark browse testdata

Configuration:
  Config file: %s
  State file:  %s
`, config.ConfigPath(), config.StateFilePath())
	fmt.Print(usage)
}
