package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

var (
	colorAccent   = lipgloss.Color("#04D9FF") // Neon Cyan
	colorUp       = lipgloss.Color("#00FF94") // Neon Green
	colorDown     = lipgloss.Color("#FF0055") // Neon Red
	colorChecking = lipgloss.Color("#FFD700") // Gold
	colorMuted    = lipgloss.Color("#565f89") // Muted Blue
	colorSubtle   = lipgloss.Color("#24283b") // Dark Blue

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorAccent)

	upStyle = lipgloss.NewStyle().
		Foreground(colorUp).
		Bold(true)

	downStyle = lipgloss.NewStyle().
			Foreground(colorDown).
			Bold(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorMuted)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorDown)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorMuted).
			BorderTop(true).
			BorderForeground(colorSubtle).
			PaddingTop(1)
)

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	if width < 40 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(m.renderHeader(width))
	b.WriteString("\n\n")

	if len(m.rows) == 0 {
		b.WriteString(mutedStyle.Render("  No URLs yet. Add one with: statuswatch add <url>"))
		b.WriteString("\n")
	} else {
		for _, row := range m.rows {
			b.WriteString(m.renderRow(row, width))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("  " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter(width))
	b.WriteString("\n")

	return b.String()
}

// renderHeader shows the title, up/down counts, and the check spinner.
func (m Model) renderHeader(width int) string {
	up, down, unchecked := 0, 0, 0
	for _, row := range m.rows {
		switch {
		case row.Last == nil:
			unchecked++
		case row.Last.OK():
			up++
		default:
			down++
		}
	}

	title := titleStyle.Render("STATUSWATCH")
	if m.checking {
		title += "  " + m.spin.View() + mutedStyle.Render(" checking...")
	}

	stats := fmt.Sprintf("%s  %s  %s",
		upStyle.Render(fmt.Sprintf("● %d", up)),
		downStyle.Render(fmt.Sprintf("● %d", down)),
		mutedStyle.Render(fmt.Sprintf("● %d", unchecked)),
	)

	gap := width - lipgloss.Width(title) - lipgloss.Width(stats)
	if gap < 1 {
		gap = 1
	}

	var b strings.Builder
	b.WriteString(title + strings.Repeat(" ", gap) + stats)
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(colorSubtle).Render(strings.Repeat("━", width)))
	return b.String()
}

// renderRow is one URL line: icon, URL, code, latency, age. Failed checks
// get the error on a second line.
func (m Model) renderRow(row urlState, width int) string {
	if row.Last == nil {
		return fmt.Sprintf("  %s %-48s %s",
			mutedStyle.Render("?"), truncate(row.URL, 48), mutedStyle.Render("never checked"))
	}

	r := *row.Last
	icon := upStyle.Render("✓")
	if !r.OK() {
		icon = downStyle.Render("✗")
	}

	code := "-"
	if r.StatusCode != nil {
		code = strconv.Itoa(*r.StatusCode)
	}
	latency := fmt.Sprintf("%.3fs", r.ResponseTime)
	age := humanize.Time(r.CheckedAt)

	line := fmt.Sprintf("  %s %-48s %-14s %3s  %8s  %s",
		icon, truncate(r.URL, 48), r.Status, code, latency, mutedStyle.Render(age))

	if r.ErrorMessage != "" {
		line += "\n" + errorStyle.Render("      "+truncate(r.ErrorMessage, width-8))
	}
	return line
}

// renderFooter is a status bar: clock, key help, monitor state.
func (m Model) renderFooter(width int) string {
	monitor := "monitoring off"
	if m.running {
		monitor = fmt.Sprintf("monitoring every %s", m.interval)
	}

	left := fmt.Sprintf(" %s │ c check · s start/stop · r refresh · q quit", time.Now().Format("15:04:05"))
	right := monitor + " "

	gap := width - len(left) - len(right)
	if gap < 0 {
		gap = 0
	}

	return footerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

func truncate(s string, max int) string {
	if max < 1 || len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
