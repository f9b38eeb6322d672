// Package organisms holds the composite TUI components.
package organisms

import (
	"fmt"
	"strings"

	"github.com/dohr-michael/caseflow/clients/tui/components"
	"github.com/dohr-michael/caseflow/internal/view"
)

// Worklist renders the task collection with a cursor.
type Worklist struct {
	rows   []view.Row
	cursor int
}

// NewWorklist creates an empty worklist.
func NewWorklist() Worklist {
	return Worklist{}
}

// SetRows replaces the displayed rows, clamping the cursor.
func (w *Worklist) SetRows(rows []view.Row) {
	w.rows = rows
	if w.cursor >= len(rows) {
		w.cursor = len(rows) - 1
	}
	if w.cursor < 0 {
		w.cursor = 0
	}
}

// MoveUp moves the cursor one row up.
func (w *Worklist) MoveUp() {
	if w.cursor > 0 {
		w.cursor--
	}
}

// MoveDown moves the cursor one row down.
func (w *Worklist) MoveDown() {
	if w.cursor < len(w.rows)-1 {
		w.cursor++
	}
}

// Selected returns the row under the cursor.
func (w *Worklist) Selected() (view.Row, bool) {
	if len(w.rows) == 0 {
		return view.Row{}, false
	}
	return w.rows[w.cursor], true
}

// View renders the list.
func (w Worklist) View() string {
	if len(w.rows) == 0 {
		return components.MutedStyle.Render("No tasks yet. Press n to create your first task.")
	}

	var b strings.Builder
	for i, row := range w.rows {
		marker := "  "
		title := row.Task.Title
		if i == w.cursor {
			marker = components.SelectedStyle.Render("> ")
			title = components.SelectedStyle.Render(title)
		}

		badge := components.StatusStyle(row.Task.Status).Render(row.StatusLabel)
		line := fmt.Sprintf("%s%s  %s  %s", marker, title, badge, components.MutedStyle.Render(row.Due))
		if row.Overdue {
			line += "  " + components.OverdueStyle.Render("OVERDUE")
		}
		b.WriteString(line)
		b.WriteString("\n")

		if i == w.cursor && row.Task.Description != "" {
			b.WriteString("    " + components.MutedStyle.Render(row.Task.Description) + "\n")
		}
	}
	return b.String()
}
