// Package suite checks a directory of editor fixtures against stored AST
// snapshots and verifies that each fixture survives a round trip.
package suite

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gerunddev/slatemark/internal/commonmark"
	"github.com/gerunddev/slatemark/internal/convert"
	"github.com/gerunddev/slatemark/internal/diff"
	"github.com/gerunddev/slatemark/internal/editor"
	"github.com/gerunddev/slatemark/internal/logger"
	"github.com/gerunddev/slatemark/internal/state"
)

// Status is the outcome of checking one fixture.
type Status string

const (
	StatusPassed  Status = "passed"
	StatusWritten Status = "snapshot written"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Stage names the step at which a fixture failed.
type Stage string

const (
	StageLoad      Stage = "load"
	StageConvert   Stage = "convert"
	StageSnapshot  Stage = "snapshot"
	StageRoundTrip Stage = "roundtrip"
)

// ErrSnapshotMismatch is reported when the AST differs from its snapshot.
var ErrSnapshotMismatch = errors.New("AST does not match snapshot")

// ErrRoundTripMismatch is reported when the reverse conversion does not
// reproduce the fixture.
var ErrRoundTripMismatch = errors.New("round trip changed the document")

// Outcome is the result for a single fixture.
type Outcome struct {
	Fixture  string
	Snapshot string
	Status   Status
	Stage    Stage
	Diff     string
	Err      error
}

// Result represents the result of a check run
type Result struct {
	RunID     string
	Outcomes  []Outcome
	StartTime time.Time
	EndTime   time.Time
}

// Options controls a check run.
type Options struct {
	// Update rewrites snapshots that do not match instead of failing.
	Update bool
	// Force checks fixtures even when the state says they are unchanged.
	Force bool
}

// Runner checks fixtures
type Runner struct {
	converter *convert.Converter
	state     *state.State
	log       *logger.Logger
	suffix    string
}

// NewRunner creates a runner. st may be nil, in which case every fixture is
// checked on every run.
func NewRunner(c *convert.Converter, st *state.State, log *logger.Logger, snapshotSuffix string) *Runner {
	if log == nil {
		log = logger.Discard()
	}
	return &Runner{
		converter: c,
		state:     st,
		log:       log,
		suffix:    snapshotSuffix,
	}
}

// Run checks every fixture in dir.
func (r *Runner) Run(dir string, opts Options) (*Result, error) {
	result := &Result{
		RunID:     uuid.New().String(),
		StartTime: time.Now(),
	}
	r.log.CheckStarted(result.RunID, dir)

	fixtures, err := ScanFixtures(dir, r.suffix)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fixtures: %w", err)
	}

	for _, path := range fixtures {
		if !opts.Force && r.state != nil {
			needs, err := r.state.NeedsCheck(path)
			if err != nil {
				r.log.StateError("needs-check", err)
			} else if !needs {
				r.log.Skipped(path, "unchanged since last passing check")
				result.Outcomes = append(result.Outcomes, Outcome{
					Fixture:  path,
					Snapshot: r.SnapshotPath(path),
					Status:   StatusSkipped,
				})
				continue
			}
		}

		outcome := r.Check(path, opts.Update)
		result.Outcomes = append(result.Outcomes, outcome)

		if r.state != nil {
			if err := r.state.Update(path, outcome.Snapshot, outcome.Status != StatusFailed); err != nil {
				r.log.StateError("update", err)
			}
		}
	}

	result.EndTime = time.Now()
	r.log.CheckCompleted(result.RunID, len(result.Outcomes), result.Failed(), result.EndTime.Sub(result.StartTime))
	return result, nil
}

// SnapshotPath returns the snapshot file belonging to a fixture.
func (r *Runner) SnapshotPath(fixture string) string {
	return strings.TrimSuffix(fixture, filepath.Ext(fixture)) + r.suffix
}

// Check converts a single fixture, compares it with its snapshot and verifies
// the round trip.
func (r *Runner) Check(path string, update bool) Outcome {
	out := Outcome{Fixture: path, Snapshot: r.SnapshotPath(path)}
	fail := func(stage Stage, err error) Outcome {
		out.Status = StatusFailed
		out.Stage = stage
		out.Err = err
		r.log.FixtureFailed(path, string(stage), err)
		return out
	}

	doc, err := editor.Load(path)
	if err != nil {
		return fail(StageLoad, err)
	}

	ast, err := r.converter.ToCommonMark(doc)
	if err != nil {
		return fail(StageConvert, err)
	}
	actual, err := commonmark.Marshal(ast)
	if err != nil {
		return fail(StageConvert, err)
	}
	actual = append(actual, '\n')

	out.Status = StatusPassed
	expected, err := os.ReadFile(out.Snapshot)
	switch {
	case err == nil && string(expected) == string(actual):
	case err == nil && !update:
		out.Diff = diff.Unified(filepath.Base(out.Snapshot), filepath.Base(path), string(expected), string(actual))
		return fail(StageSnapshot, ErrSnapshotMismatch)
	case err != nil && !os.IsNotExist(err):
		return fail(StageSnapshot, err)
	default:
		if err := os.WriteFile(out.Snapshot, actual, 0644); err != nil {
			return fail(StageSnapshot, fmt.Errorf("failed to write snapshot: %w", err))
		}
		out.Status = StatusWritten
		r.log.SnapshotWritten(path, out.Snapshot)
	}

	back, err := r.converter.ToEditor(ast)
	if err != nil {
		return fail(StageRoundTrip, err)
	}
	if !editor.Equal(doc, back) {
		want, _ := editor.Encode(doc)
		got, _ := editor.Encode(back)
		out.Diff = diff.Unified(filepath.Base(path), "roundtrip", string(want), string(got))
		return fail(StageRoundTrip, ErrRoundTripMismatch)
	}

	if out.Status == StatusPassed {
		r.log.FixtureChecked(path, out.Snapshot)
	}
	return out
}

// ScanFixtures lists editor fixtures in dir, skipping snapshot files
func ScanFixtures(dir, snapshotSuffix string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || strings.HasSuffix(path, snapshotSuffix) {
			return nil
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".json", ".yaml", ".yml":
			files = append(files, path)
		}
		return nil
	})

	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Count returns the number of outcomes with the given status
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the number of failed fixtures
func (r *Result) Failed() int {
	return r.Count(StatusFailed)
}

// String returns a human-readable summary of the check result
func (r *Result) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Check complete: %d passed, %d snapshots written, %d skipped, %d failed (took %v)",
		r.Count(StatusPassed),
		r.Count(StatusWritten),
		r.Count(StatusSkipped),
		r.Failed(),
		duration.Round(time.Millisecond),
	)
}
