package commands

import (
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gerunddev/slatemark/internal/config"
	"github.com/gerunddev/slatemark/internal/state"
	"github.com/gerunddev/slatemark/internal/styles"
	"github.com/gerunddev/slatemark/internal/suite"
	"github.com/gerunddev/slatemark/internal/tui"
)

// Check runs the fixture suite. Flags:
//
//	--update  rewrite snapshots that do not match
//	--force   check fixtures the state says are unchanged
//	--plain   print the summary without the interactive display
//	--verbose with --plain, also log to stderr
func Check(args []string) {
	positional, flags := parseArgs(args)

	// Logging to stderr would tear the spinner display
	e := mustSetup(flags["verbose"] && flags["plain"])
	defer e.cleanup()

	dir := e.cfg.FixtureDir
	if len(positional) > 0 {
		dir = positional[0]
	}

	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state: " + err.Error())
	}

	runner := suite.NewRunner(e.converter, st, e.log, e.cfg.SnapshotSuffix)
	opts := suite.Options{Update: flags["update"], Force: flags["force"]}

	var result *suite.Result
	if flags["plain"] {
		result, err = runner.Run(dir, opts)
		if err != nil {
			fail("Check failed: " + err.Error())
		}
		fmt.Print(tui.Summary(result))
	} else {
		m := tui.InitCheckModel(dir)
		p := tea.NewProgram(m, tea.WithInput(os.Stdin))

		done := make(chan *suite.Result, 1)
		go func() {
			r, err := runner.Run(dir, opts)
			done <- r
			p.Send(tui.CheckMsg{Result: r, Err: err})
		}()

		if _, err := p.Run(); err != nil {
			fail("Error: " + err.Error())
		}

		select {
		case result = <-done:
		default:
			// Quit before the run finished
			os.Exit(1)
		}
	}

	if err := st.Save(config.StateFilePath()); err != nil {
		fail("Error saving state: " + err.Error())
	}

	if result == nil || result.Failed() > 0 {
		os.Exit(1)
	}
}

// Browse checks a fixture directory and opens the result browser
func Browse(args []string) {
	positional, _ := parseArgs(args)

	e := mustSetup(false)
	defer e.cleanup()

	dir := e.cfg.FixtureDir
	if len(positional) > 0 {
		dir = positional[0]
	}

	st, err := state.Load(config.StateFilePath())
	if err != nil {
		fail("Error loading state: " + err.Error())
	}
	runner := suite.NewRunner(e.converter, st, e.log, e.cfg.SnapshotSuffix)

	// Bubble Tea program (will be set after creating sendBrowseData)
	var p *tea.Program

	// Every fixture is re-checked so the browser can show diffs for all of them.
	// Runs never overlap: they share the state and write the same snapshots.
	var running sync.Mutex
	sendBrowseData := func() {
		running.Lock()
		defer running.Unlock()

		result, err := runner.Run(dir, suite.Options{Force: true})
		if err != nil {
			p.Send(tui.BrowseMsg{Err: err})
			return
		}
		if err := st.Save(config.StateFilePath()); err != nil {
			e.log.StateError("save", err)
		}
		p.Send(tui.BrowseMsg{Data: &tui.BrowseData{Dir: dir, Outcomes: result.Outcomes}})
	}

	m := tui.InitBrowseModel(sendBrowseData)
	p = tea.NewProgram(m, tea.WithAltScreen())

	go sendBrowseData()

	if _, err := p.Run(); err != nil {
		fmt.Println(styles.ErrorStyle.Render("✗ Error: " + err.Error()))
		os.Exit(1)
	}
}
