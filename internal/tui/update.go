package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"statuswatch/internal/domain"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "c":
			if m.checking {
				return m, nil
			}
			m.checking = true
			return m, tea.Batch(checkNow(m.app), m.spin.Tick)
		case "s":
			return m, toggleMonitor(m.app, m.interval)
		case "r":
			return m, refresh(m.app)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case resultMsg:
		m.updateRow(domain.CheckResult(msg))
		return m, waitForResult(m.app)

	case refreshMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.rows = msg.rows

	case checkDoneMsg:
		m.checking = false
		for _, r := range msg {
			m.updateRow(r)
		}

	case monitorMsg:
		m.running = bool(msg)

	case spinner.TickMsg:
		if !m.checking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tickMsg:
		m.running = m.app.Scheduler.Running()
		return m, doTick()
	}

	return m, nil
}

// updateRow records the latest result for a URL, appending a row when the
// URL is new to the dashboard.
func (m *Model) updateRow(r domain.CheckResult) {
	res := r
	for i := range m.rows {
		if m.rows[i].URL == r.URL {
			m.rows[i].Last = &res
			return
		}
	}
	m.rows = append(m.rows, urlState{URL: r.URL, Last: &res})
}
