package logger

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging
type Logger struct {
	*log.Logger
}

// New creates a new logger with the given output
func New(w io.Writer) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	})
	return &Logger{Logger: l}
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// ParseLevel maps a config level name onto a log level
func ParseLevel(name string) (log.Level, error) {
	return log.ParseLevel(name)
}

// NewFileLogger creates a logger that appends to a file and copies every
// entry to the extra writers
func NewFileLogger(path string, level log.Level, extra ...io.Writer) (*Logger, func(), error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		f.Close()
	}

	return NewMultiLogger(level, append(extra, f)...), cleanup, nil
}

// NewMultiLogger creates a logger that writes to multiple outputs
func NewMultiLogger(level log.Level, writers ...io.Writer) *Logger {
	return NewWithLevel(io.MultiWriter(writers...), level)
}

// Discard returns a logger that discards all output
func Discard() *Logger {
	return New(io.Discard)
}

// ConversionStarted logs the start of a conversion
func (l *Logger) ConversionStarted(direction string, topLevel int) {
	l.Debug("conversion started",
		"direction", direction,
		"top_level_nodes", topLevel)
}

// ConversionCompleted logs a finished conversion
func (l *Logger) ConversionCompleted(direction string, topLevel int, duration time.Duration) {
	l.Debug("conversion completed",
		"direction", direction,
		"top_level_nodes", topLevel,
		"duration", duration)
}

// ConversionError logs a failed conversion
func (l *Logger) ConversionError(direction string, err error) {
	l.Error("conversion failed",
		"direction", direction,
		"error", err)
}

// CheckStarted logs the start of a fixture check run
func (l *Logger) CheckStarted(runID, dir string) {
	l.Info("check started",
		"run_id", runID,
		"fixture_dir", dir)
}

// CheckCompleted logs the end of a fixture check run
func (l *Logger) CheckCompleted(runID string, checked, failed int, duration time.Duration) {
	l.Info("check completed",
		"run_id", runID,
		"fixtures_checked", checked,
		"failures", failed,
		"duration", duration.Round(time.Millisecond))
}

// FixtureChecked logs a passing fixture
func (l *Logger) FixtureChecked(fixture, snapshot string) {
	l.Info("fixture passed",
		"fixture", fixture,
		"snapshot", snapshot)
}

// FixtureFailed logs a failing fixture
func (l *Logger) FixtureFailed(fixture, reason string, err error) {
	l.Error("fixture failed",
		"fixture", fixture,
		"reason", reason,
		"error", err)
}

// SnapshotWritten logs a created or updated snapshot
func (l *Logger) SnapshotWritten(fixture, snapshot string) {
	l.Warn("snapshot written",
		"fixture", fixture,
		"snapshot", snapshot)
}

// StateError logs a state-related error
func (l *Logger) StateError(operation string, err error) {
	l.Error("state error",
		"operation", operation,
		"error", err)
}

// ConfigLoaded logs successful config loading
func (l *Logger) ConfigLoaded(fixtureDir, leafChildren string) {
	l.Debug("config loaded",
		"fixture_dir", fixtureDir,
		"leaf_children", leafChildren)
}

// Skipped logs when a fixture is skipped
func (l *Logger) Skipped(file, reason string) {
	l.Debug("fixture skipped",
		"file", file,
		"reason", reason)
}
