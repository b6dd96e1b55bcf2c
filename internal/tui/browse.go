package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/gerunddev/slatemark/internal/diff"
	"github.com/gerunddev/slatemark/internal/styles"
	"github.com/gerunddev/slatemark/internal/suite"
)

// BrowseData holds the outcome of a check run over a fixture directory
type BrowseData struct {
	Dir      string
	Outcomes []suite.Outcome
}

// BrowseMsg is sent when browse data is ready
type BrowseMsg struct {
	Data *BrowseData
	Err  error
}

// DetailMsg is sent when the detail view for a fixture is ready
type DetailMsg struct {
	Content string
	Err     error
}

// RefreshBrowseMsg triggers a fresh check run
type RefreshBrowseMsg struct{}

type browseModel struct {
	table         table.Model
	viewport      viewport.Model
	data          *BrowseData
	err           error
	ready         bool
	showingDetail bool
	refreshing    bool
	selected      *suite.Outcome
	width         int
	height        int
	refreshFunc   func()
}

// InitBrowseModel creates a new fixture browser model. refreshFunc is called
// in the background when the user asks for a fresh run. The caller starts the
// first run, so the model counts as refreshing until its BrowseMsg arrives.
func InitBrowseModel(refreshFunc func()) browseModel {
	columns := []table.Column{
		{Title: "Fixture", Width: 50},
		{Title: "Status", Width: 20},
		{Title: "Stage", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	ts := table.DefaultStyles()
	ts.Header = ts.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		BorderBottom(true).
		Bold(false)
	ts.Selected = ts.Selected.
		Foreground(lipgloss.Color(styles.Background)).
		Background(lipgloss.Color(styles.Yellow)).
		Bold(false)
	t.SetStyles(ts)

	vp := viewport.New(100, 20)
	vp.Style = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(styles.Border)).
		Padding(1)

	return browseModel{
		table:       t,
		viewport:    vp,
		refreshing:  true,
		refreshFunc: refreshFunc,
	}
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetHeight(msg.Height - 10)
		m.viewport.Width = msg.Width - 4
		m.viewport.Height = msg.Height - 6

	case tea.KeyMsg:
		if m.showingDetail {
			switch msg.String() {
			case "q", "esc":
				m.showingDetail = false
				return m, nil
			case "up", "k", "down", "j", "pgup", "pgdown":
				m.viewport, cmd = m.viewport.Update(msg)
				return m, cmd
			}
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "up", "k", "down", "j":
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		case "r":
			return m.refresh(), nil
		case "enter", "d":
			if m.data == nil || len(m.data.Outcomes) == 0 {
				return m, nil
			}
			idx := m.table.Cursor()
			if idx >= len(m.data.Outcomes) {
				return m, nil
			}
			m.selected = &m.data.Outcomes[idx]
			m.showingDetail = true
			m.viewport.SetContent("Loading...")
			return m, loadDetail(*m.selected)
		}

	case BrowseMsg:
		m.ready = true
		m.refreshing = false
		m.data = msg.Data
		m.err = msg.Err

		if m.data != nil {
			rows := make([]table.Row, 0, len(m.data.Outcomes))
			for _, o := range m.data.Outcomes {
				rows = append(rows, table.Row{
					relative(m.data.Dir, o.Fixture),
					fmt.Sprintf("%s %s", statusIcon(o.Status), o.Status),
					string(o.Stage),
				})
			}
			m.table.SetRows(rows)
		}
		return m, nil

	case DetailMsg:
		content := msg.Content
		if msg.Err != nil {
			content = errorStyle.Render("✗ " + msg.Err.Error())
		}
		m.viewport.SetContent(content)
		m.viewport.GotoTop()
		return m, nil

	case RefreshBrowseMsg:
		return m.refresh(), nil
	}

	return m, nil
}

// refresh starts a new run unless one is still in flight
func (m browseModel) refresh() browseModel {
	if m.refreshing || m.refreshFunc == nil {
		return m
	}
	m.refreshing = true
	go m.refreshFunc()
	return m
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("slatemark fixtures"))
	b.WriteString("\n\n")

	if m.err != nil {
		return errorStyle.Render("✗ Error: "+m.err.Error()) + "\n"
	}

	if !m.ready || m.data == nil {
		return b.String()
	}

	if m.showingDetail {
		b.WriteString(labelStyle.Render(fmt.Sprintf("%s (%s)", relative(m.data.Dir, m.selected.Fixture), m.selected.Status)))
		b.WriteString("\n\n")
		b.WriteString(m.viewport.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("↑/k up • ↓/j down • esc/q back"))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(labelStyle.Render(fmt.Sprintf("Fixtures in %s: %s", m.data.Dir, valueStyle.Render(fmt.Sprintf("%d", len(m.data.Outcomes))))))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n\n")
	if m.refreshing {
		b.WriteString(labelStyle.Render("Re-running checks..."))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter/d details • r re-run • q quit"))
	b.WriteString("\n")
	return b.String()
}

// loadDetail shows the diff of a failed fixture, its error when there is no
// diff, and otherwise the snapshot it was checked against.
func loadDetail(o suite.Outcome) tea.Cmd {
	return func() tea.Msg {
		if o.Diff != "" {
			return DetailMsg{Content: diff.Render(o.Diff)}
		}
		if o.Err != nil {
			return DetailMsg{Err: o.Err}
		}
		data, err := os.ReadFile(o.Snapshot)
		if err != nil {
			return DetailMsg{Err: fmt.Errorf("failed to read snapshot: %w", err)}
		}
		return DetailMsg{Content: string(data)}
	}
}

func statusIcon(s suite.Status) string {
	switch s {
	case suite.StatusPassed:
		return successStyle.Render("✓")
	case suite.StatusWritten:
		return warningStyle.Render("✎")
	case suite.StatusFailed:
		return errorStyle.Render("✗")
	default:
		return helpStyle.Render("·")
	}
}

func relative(dir, path string) string {
	if rel, err := filepath.Rel(dir, path); err == nil {
		return rel
	}
	return path
}
