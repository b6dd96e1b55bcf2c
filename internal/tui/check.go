package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/slatemark/internal/styles"
	"github.com/gerunddev/slatemark/internal/suite"
)

var (
	titleStyle   = styles.TitleStyle
	labelStyle   = styles.DimStyle
	valueStyle   = styles.NormalTextStyle
	tableStyle   = styles.TableStyle
	helpStyle    = styles.HelpStyle
	successStyle = styles.SuccessStyle
	warningStyle = styles.WarningStyle
	errorStyle   = styles.ErrorStyle
)

// CheckMsg is sent when a check run completes
type CheckMsg struct {
	Result *suite.Result
	Err    error
}

// checkModel is the Bubble Tea model for the check progress display
type checkModel struct {
	spinner  spinner.Model
	dir      string
	complete bool
	result   *suite.Result
	err      error
}

// InitCheckModel creates a new check progress model
func InitCheckModel(dir string) checkModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.SpinnerStyle

	return checkModel{
		spinner: s,
		dir:     dir,
	}
}

func (m checkModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m checkModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case CheckMsg:
		m.complete = true
		m.result = msg.Result
		m.err = msg.Err
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m checkModel) View() string {
	if !m.complete {
		return fmt.Sprintf("\n%s Checking fixtures in %s\n\n", m.spinner.View(), m.dir)
	}
	if m.err != nil {
		return errorStyle.Render("✗ Check failed: "+m.err.Error()) + "\n"
	}
	return Summary(m.result)
}

// Summary renders a finished check run, listing every failed fixture.
func Summary(result *suite.Result) string {
	if len(result.Outcomes) == 0 {
		return helpStyle.Render("No fixtures found") + "\n"
	}

	var msg string
	if result.Failed() == 0 {
		msg = successStyle.Render(fmt.Sprintf("✓ %d fixture(s) passed", result.Count(suite.StatusPassed)))
	} else {
		msg = errorStyle.Render(fmt.Sprintf("✗ %d fixture(s) failed", result.Failed()))
		msg += ", " + successStyle.Render(fmt.Sprintf("%d passed", result.Count(suite.StatusPassed)))
	}
	if n := result.Count(suite.StatusWritten); n > 0 {
		msg += ", " + warningStyle.Render(fmt.Sprintf("%d snapshot(s) written", n))
	}
	if n := result.Count(suite.StatusSkipped); n > 0 {
		msg += ", " + helpStyle.Render(fmt.Sprintf("%d unchanged", n))
	}
	msg += "\n"

	for _, o := range result.Outcomes {
		if o.Status != suite.StatusFailed {
			continue
		}
		msg += fmt.Sprintf("  %s %s %s\n", errorStyle.Render("✗"), o.Fixture, helpStyle.Render(fmt.Sprintf("[%s] %v", o.Stage, o.Err)))
	}

	msg += helpStyle.Render(fmt.Sprintf("Completed in %v", result.EndTime.Sub(result.StartTime).Round(time.Millisecond))) + "\n"
	return msg
}
