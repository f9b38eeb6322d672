// Package components provides shared TUI styles.
package components

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/dohr-michael/caseflow/internal/task"
)

// Color palette, matching the status colors of the worklist.
const (
	ColorSelected = "#79C0FF" // blue - cursor, focused field
	ColorError    = "#FF6B6B" // red - errors, overdue, cancelled
	ColorMuted    = "#9CA3AF" // gray - hints, dates, todo
	ColorActive   = "#60A5FA" // blue - in progress
	ColorDone     = "#7EE2B8" // green - completed
	ColorBorder   = "#374151" // dark gray - borders
)

// Component styles.
var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorMuted))

	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)

	OverdueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError)).
			Bold(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSelected)).
			Bold(true)

	FormBorderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(ColorBorder)).
			Padding(0, 1)

	FieldErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))
)

var statusStyles = map[task.Status]lipgloss.Style{
	task.StatusTodo:       lipgloss.NewStyle().Foreground(lipgloss.Color(ColorMuted)),
	task.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorActive)),
	task.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorDone)),
	task.StatusCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)),
}

// StatusStyle returns the badge style for a status.
func StatusStyle(s task.Status) lipgloss.Style {
	if style, ok := statusStyles[s]; ok {
		return style
	}
	return MutedStyle
}
