package organisms

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dohr-michael/caseflow/clients/tui/components"
	"github.com/dohr-michael/caseflow/internal/form"
	"github.com/dohr-michael/caseflow/internal/task"
)

// FormSubmittedMsg is sent when a submission attempt finished. A nil Err
// means the task was created or updated and the form can close.
type FormSubmittedMsg struct {
	Err error
}

// FormCancelledMsg is sent when the user abandons the form.
type FormCancelledMsg struct{}

// Field focus order: title, description, status, due.
const (
	focusTitle = iota
	focusDescription
	focusStatus
	focusDue
	fieldCount
)

// TaskForm is the create-or-edit form. All draft state and validation live
// in the controller; the form only renders and routes keys.
type TaskForm struct {
	ctl         *form.Controller
	title       textinput.Model
	description textinput.Model
	due         textinput.Model
	statusIdx   int
	focus       int
	active      bool
}

// NewTaskForm creates an inactive form over the given controller.
func NewTaskForm(ctl *form.Controller) TaskForm {
	title := textinput.New()
	title.Placeholder = "Enter task title"
	title.CharLimit = 200

	description := textinput.New()
	description.Placeholder = "Enter task description (optional)"
	description.CharLimit = 500

	due := textinput.New()
	due.Placeholder = "2006-01-02T15:04"
	due.CharLimit = 25

	return TaskForm{ctl: ctl, title: title, description: description, due: due}
}

// Active reports whether the form is open.
func (f *TaskForm) Active() bool { return f.active }

// Open prepares the form for create mode.
func (f *TaskForm) Open() tea.Cmd {
	f.ctl.Cancel() // reset to an empty create draft
	return f.seed()
}

// OpenEdit prepares the form seeded from the selected task.
func (f *TaskForm) OpenEdit(t task.Task) tea.Cmd {
	f.ctl.StartEdit(t)
	return f.seed()
}

func (f *TaskForm) seed() tea.Cmd {
	d := f.ctl.Draft()
	f.title.SetValue(d.Title)
	f.description.SetValue(d.Description)
	f.due.SetValue(d.DueDateTime)

	f.statusIdx = 0
	for i, s := range task.Statuses() {
		if s == d.Status {
			f.statusIdx = i
		}
	}

	f.active = true
	f.focus = focusTitle
	f.description.Blur()
	f.due.Blur()
	return f.title.Focus()
}

// Close deactivates the form without touching the draft.
func (f *TaskForm) Close() {
	f.active = false
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()
}

// Update handles form input.
func (f TaskForm) Update(msg tea.Msg) (TaskForm, tea.Cmd) {
	if !f.active {
		return f, nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateFocused(msg)
	}

	switch keyMsg.String() {
	case "esc":
		f.ctl.Cancel()
		f.Close()
		return f, func() tea.Msg { return FormCancelledMsg{} }

	case "tab", "down":
		return f.moveFocus(1)

	case "shift+tab", "up":
		return f.moveFocus(-1)

	case "enter":
		if f.ctl.Submitting() {
			return f, nil
		}
		ctl := f.ctl
		return f, func() tea.Msg {
			err := ctl.Submit(context.Background())
			return FormSubmittedMsg{Err: err}
		}

	case "left", "right":
		if f.focus == focusStatus {
			statuses := task.Statuses()
			delta := 1
			if keyMsg.String() == "left" {
				delta = len(statuses) - 1
			}
			f.statusIdx = (f.statusIdx + delta) % len(statuses)
			f.ctl.SetStatus(statuses[f.statusIdx])
			return f, nil
		}
	}

	return f.updateFocused(msg)
}

func (f TaskForm) moveFocus(delta int) (TaskForm, tea.Cmd) {
	f.title.Blur()
	f.description.Blur()
	f.due.Blur()

	f.focus = (f.focus + delta + fieldCount) % fieldCount
	switch f.focus {
	case focusTitle:
		return f, f.title.Focus()
	case focusDescription:
		return f, f.description.Focus()
	case focusDue:
		return f, f.due.Focus()
	}
	return f, nil
}

// updateFocused routes input to the focused field and syncs the controller
// draft, which clears that field's error.
func (f TaskForm) updateFocused(msg tea.Msg) (TaskForm, tea.Cmd) {
	var cmd tea.Cmd
	switch f.focus {
	case focusTitle:
		f.title, cmd = f.title.Update(msg)
		f.ctl.SetTitle(f.title.Value())
	case focusDescription:
		f.description, cmd = f.description.Update(msg)
		f.ctl.SetDescription(f.description.Value())
	case focusDue:
		f.due, cmd = f.due.Update(msg)
		f.ctl.SetDueDateTime(f.due.Value())
	}
	return f, cmd
}

// View renders the form with inline field errors.
func (f TaskForm) View() string {
	heading := "Create New Task"
	if _, editing := f.ctl.Editing(); editing {
		heading = "Edit Task"
	}

	var b strings.Builder
	b.WriteString(components.TitleStyle.Render(heading))
	b.WriteString("\n\n")

	b.WriteString(f.field("Title *", f.title.View(), form.FieldTitle))
	b.WriteString(f.field("Description", f.description.View(), form.FieldDescription))
	b.WriteString(f.field("Status", f.statusView(), form.FieldStatus))
	b.WriteString(f.field("Due Date/Time *", f.due.View(), form.FieldDueDateTime))

	if f.ctl.Submitting() {
		b.WriteString(components.MutedStyle.Render("Saving..."))
	} else {
		b.WriteString(components.MutedStyle.Render("enter save · esc cancel · tab next field"))
	}

	return components.FormBorderStyle.Render(b.String())
}

func (f TaskForm) field(label, input, name string) string {
	out := components.MutedStyle.Render(label) + "\n" + input + "\n"
	if msg := f.ctl.FieldError(name); msg != "" {
		out += components.FieldErrorStyle.Render(msg) + "\n"
	}
	return out + "\n"
}

func (f TaskForm) statusView() string {
	statuses := task.Statuses()
	parts := make([]string, len(statuses))
	for i, s := range statuses {
		label := s.Label()
		if i == f.statusIdx {
			label = "[" + label + "]"
			if f.focus == focusStatus {
				label = components.SelectedStyle.Render(label)
			}
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

// SubmitFailedLocally reports whether the error is a validation failure that
// should keep the form open with inline errors showing.
func SubmitFailedLocally(err error) bool {
	return errors.Is(err, form.ErrInvalidDraft)
}
