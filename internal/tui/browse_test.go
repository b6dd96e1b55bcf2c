package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/slatemark/internal/suite"
)

func sampleData(dir string) *BrowseData {
	return &BrowseData{
		Dir: dir,
		Outcomes: []suite.Outcome{
			{Fixture: filepath.Join(dir, "a.json"), Snapshot: filepath.Join(dir, "a.ast.json"), Status: suite.StatusPassed},
			{Fixture: filepath.Join(dir, "b.json"), Status: suite.StatusFailed, Stage: suite.StageConvert, Err: errors.New("boom")},
		},
	}
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func TestBrowseShowsOutcomes(t *testing.T) {
	m, _ := update(t, InitBrowseModel(nil), BrowseMsg{Data: sampleData("fixtures")})

	if !m.ready {
		t.Fatal("model should be ready after BrowseMsg")
	}
	rows := m.table.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "a.json" {
		t.Errorf("fixture column = %q, want path relative to dir", rows[0][0])
	}
	if rows[1][2] != string(suite.StageConvert) {
		t.Errorf("stage column = %q", rows[1][2])
	}
	if !strings.Contains(m.View(), "Fixtures in fixtures") {
		t.Errorf("View() missing header:\n%s", m.View())
	}
}

func TestBrowseDetail(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.ast.json"), []byte(`{"snapshot": true}`), 0644); err != nil {
		t.Fatal(err)
	}
	m, _ := update(t, InitBrowseModel(nil), BrowseMsg{Data: sampleData(dir)})

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.showingDetail || cmd == nil {
		t.Fatal("enter should open the detail view and load it")
	}
	detail, ok := cmd().(DetailMsg)
	if !ok {
		t.Fatal("detail command should produce a DetailMsg")
	}
	if detail.Err != nil || !strings.Contains(detail.Content, `"snapshot": true`) {
		t.Errorf("passed fixture should show its snapshot, got %+v", detail)
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showingDetail {
		t.Error("esc should close the detail view")
	}
}

func TestLoadDetailPrefersDiff(t *testing.T) {
	o := suite.Outcome{Status: suite.StatusFailed, Diff: "--- a\n+++ b\n@@ -1 +1 @@\n-stale\n+fresh\n", Err: errors.New("mismatch")}
	msg := loadDetail(o)().(DetailMsg)
	if msg.Err != nil || !strings.Contains(msg.Content, "fresh") {
		t.Errorf("expected rendered diff, got %+v", msg)
	}

	o.Diff = ""
	msg = loadDetail(o)().(DetailMsg)
	if msg.Err == nil || msg.Err.Error() != "mismatch" {
		t.Errorf("expected fixture error, got %+v", msg)
	}
}

func TestSummary(t *testing.T) {
	result := &suite.Result{Outcomes: []suite.Outcome{
		{Fixture: "a.json", Status: suite.StatusPassed},
		{Fixture: "b.json", Status: suite.StatusFailed, Stage: suite.StageRoundTrip, Err: suite.ErrRoundTripMismatch},
	}}
	got := Summary(result)
	if !strings.Contains(got, "1 fixture(s) failed") || !strings.Contains(got, "b.json") {
		t.Errorf("Summary() = %q", got)
	}

	if got := Summary(&suite.Result{}); !strings.Contains(got, "No fixtures found") {
		t.Errorf("Summary() for empty run = %q", got)
	}
}

func TestRefreshWaitsForRunningCheck(t *testing.T) {
	calls := make(chan struct{}, 10)
	m := InitBrowseModel(func() { calls <- struct{}{} })
	r := tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}}

	// The first run is still in flight until its data arrives.
	m, _ = update(t, m, r)
	m, _ = update(t, m, BrowseMsg{Data: sampleData("fixtures")})

	m, _ = update(t, m, r)
	m, _ = update(t, m, r)
	m, _ = update(t, m, RefreshBrowseMsg{})
	if !m.refreshing {
		t.Error("model should be refreshing after r")
	}
	if !strings.Contains(m.View(), "Re-running checks") {
		t.Errorf("View() should show the pending run:\n%s", m.View())
	}

	<-calls
	select {
	case <-calls:
		t.Fatal("refresh should not start while a run is in flight")
	case <-time.After(50 * time.Millisecond):
	}

	m, _ = update(t, m, BrowseMsg{Data: sampleData("fixtures")})
	_, _ = update(t, m, r)
	<-calls
}
