// Package tui is the full-screen dashboard. It renders the monitored URLs
// with their most recent results and drives the scheduler with single
// keystrokes.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"statuswatch/internal/app"
	"statuswatch/internal/domain"
	"statuswatch/internal/store"
)

// Model is the dashboard state.
type Model struct {
	app      *app.App
	interval time.Duration

	rows     []urlState
	spin     spinner.Model
	checking bool
	running  bool
	width    int
	height   int
	err      error
	quitting bool
}

// urlState pairs a monitored URL with its last known result. Last is nil
// until the URL has been checked at least once.
type urlState struct {
	URL  string
	Last *domain.CheckResult
}

// NewModel builds the dashboard over an already wired App.
func NewModel(a *app.App) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(colorChecking)

	return Model{
		app:      a,
		interval: a.Config.IntervalDuration(),
		spin:     s,
		running:  a.Scheduler.Running(),
	}
}

// Init loads the last known state and starts listening for results.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		refresh(m.app),
		waitForResult(m.app),
		doTick(),
	)
}

// resultMsg carries one result from the scheduler's event stream.
type resultMsg domain.CheckResult

// refreshMsg carries rows rebuilt from the registry and stored history.
type refreshMsg struct {
	rows []urlState
	err  error
}

// checkDoneMsg carries the outcome of an on-demand cycle.
type checkDoneMsg map[string]domain.CheckResult

// monitorMsg reports whether the periodic loop runs after a toggle.
type monitorMsg bool

// tickMsg drives the once-a-second redraw for the age column.
type tickMsg time.Time

// waitForResult listens for the next scheduler event.
func waitForResult(a *app.App) tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-a.Scheduler.Events())
	}
}

// refresh rebuilds the rows from the registry and the stored history.
func refresh(a *app.App) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var rows []urlState
		for _, u := range a.Registry.List() {
			row := urlState{URL: u}
			recs, err := a.Results.History(ctx, store.HistoryFilter{URL: u, Limit: 1})
			if err != nil {
				return refreshMsg{err: err}
			}
			if len(recs) > 0 {
				last := recs[0]
				row.Last = &last
			}
			rows = append(rows, row)
		}
		return refreshMsg{rows: rows}
	}
}

// checkNow runs one cycle off the UI goroutine.
func checkNow(a *app.App) tea.Cmd {
	return func() tea.Msg {
		return checkDoneMsg(a.Scheduler.CheckOnce(context.Background()))
	}
}

// toggleMonitor starts or stops the periodic loop. Stop waits for any
// in-flight cycle, so this runs as a command rather than in Update.
func toggleMonitor(a *app.App, interval time.Duration) tea.Cmd {
	return func() tea.Msg {
		if a.Scheduler.Running() {
			a.Scheduler.Stop()
		} else {
			a.Scheduler.Start(interval)
		}
		return monitorMsg(a.Scheduler.Running())
	}
}

func doTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
