package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gerunddev/slatemark/internal/config"
	"github.com/gerunddev/slatemark/internal/convert"
	"github.com/gerunddev/slatemark/internal/editor"
	"github.com/gerunddev/slatemark/internal/logger"
	"github.com/gerunddev/slatemark/internal/styles"
)

// env is what every command needs once the configuration is loaded
type env struct {
	cfg       *config.Config
	log       *logger.Logger
	converter *convert.Converter
	cleanup   func()
}

// setup loads the configuration, opens the log file and builds a converter
// that follows the configured leaf children policy. With verbose set the log
// is also written to stderr.
func setup(verbose bool) (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	e := &env{cfg: cfg, log: logger.Discard(), cleanup: func() {}}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var stderr []io.Writer
	if verbose {
		stderr = append(stderr, os.Stderr)
		e.log = logger.NewMultiLogger(level, stderr...)
	}
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
			if l, cleanup, err := logger.NewFileLogger(cfg.LogFile, level, stderr...); err == nil {
				e.log = l
				e.cleanup = cleanup
			}
		}
	}
	e.log.ConfigLoaded(cfg.FixtureDir, cfg.LeafChildren)

	policy, err := convert.ParseLeafChildrenPolicy(cfg.LeafChildren)
	if err != nil {
		e.cleanup()
		return nil, err
	}
	e.converter = convert.NewConverter(
		convert.WithLeafChildren(policy),
		convert.WithLogger(e.log),
	)
	return e, nil
}

// mustSetup is setup for command handlers: it exits on failure
func mustSetup(verbose bool) *env {
	e, err := setup(verbose)
	if err != nil {
		fail(err.Error())
	}
	return e
}

// readInput reads a file, or stdin when path is "-"
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// loadEditor reads an editor document, picking the codec from the extension.
// Stdin is always read as JSON.
func loadEditor(path string) (*editor.Document, error) {
	if path != "-" {
		return editor.Load(path)
	}
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return editor.Decode(data)
}

// parseArgs splits positional arguments from --flags
func parseArgs(args []string) (positional []string, flags map[string]bool) {
	flags = make(map[string]bool)
	for _, arg := range args {
		if len(arg) > 2 && arg[:2] == "--" {
			flags[arg[2:]] = true
			continue
		}
		positional = append(positional, arg)
	}
	return positional, flags
}

func fail(msg string) {
	fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+msg))
	os.Exit(1)
}
