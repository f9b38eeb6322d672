// Package tui provides the interactive terminal worklist.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dohr-michael/caseflow/clients/tui/components"
	"github.com/dohr-michael/caseflow/clients/tui/organisms"
	"github.com/dohr-michael/caseflow/internal/app"
	"github.com/dohr-michael/caseflow/internal/form"
	"github.com/dohr-michael/caseflow/internal/task"
	"github.com/dohr-michael/caseflow/internal/view"
)

// App is the main TUI model: a worklist pane with an overlay form and a
// delete confirmation prompt.
type App struct {
	session   *app.App
	presenter *view.Presenter

	worklist organisms.Worklist
	taskForm organisms.TaskForm

	changes   chan struct{}
	confirmID int64 // task pending delete confirmation, 0 = none
	width     int
	height    int
	quitting  bool
}

// NewApp creates the TUI over a session.
func NewApp(session *app.App) *App {
	ctl := form.NewController(session)
	a := &App{
		session:   session,
		presenter: view.NewPresenter(session.Store(), session),
		worklist:  organisms.NewWorklist(),
		taskForm:  organisms.NewTaskForm(ctl),
		changes:   make(chan struct{}, 1),
	}

	// Store mutations wake the view; the channel coalesces bursts.
	session.Store().Subscribe(func() {
		select {
		case a.changes <- struct{}{}:
		default:
		}
	})

	return a
}

// Init triggers the initial list fetch.
func (a *App) Init() tea.Cmd {
	return tea.Batch(a.refreshCmd(), a.waitForStoreChange())
}

func (a *App) refreshCmd() tea.Cmd {
	session := a.session
	return func() tea.Msg {
		return refreshDoneMsg{Err: session.Refresh(context.Background())}
	}
}

func (a *App) waitForStoreChange() tea.Cmd {
	changes := a.changes
	return func() tea.Msg {
		<-changes
		return storeChangedMsg{}
	}
}

func (a *App) syncRows() {
	a.worklist.SetRows(a.presenter.Rows())
}

// Update handles messages and updates state.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case storeChangedMsg:
		a.syncRows()
		return a, a.waitForStoreChange()

	case refreshDoneMsg:
		a.syncRows()
		return a, nil

	case opDoneMsg:
		// Store change and banner already reflect the outcome.
		return a, nil

	case organisms.FormSubmittedMsg:
		if msg.Err == nil {
			a.taskForm.Close()
		}
		// Validation failures keep the form open with inline errors;
		// transport failures keep it open with the banner showing.
		return a, nil

	case organisms.FormCancelledMsg:
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.taskForm.Active() {
		var cmd tea.Cmd
		a.taskForm, cmd = a.taskForm.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	if a.taskForm.Active() {
		var cmd tea.Cmd
		a.taskForm, cmd = a.taskForm.Update(msg)
		return a, cmd
	}

	if a.confirmID != 0 {
		return a.handleConfirmKey(msg)
	}

	switch msg.String() {
	case "q":
		a.quitting = true
		return a, tea.Quit

	case "up", "k":
		a.worklist.MoveUp()

	case "down", "j":
		a.worklist.MoveDown()

	case "r":
		return a, a.refreshCmd()

	case "n":
		return a, a.taskForm.Open()

	case "e":
		if row, ok := a.worklist.Selected(); ok {
			return a, a.taskForm.OpenEdit(row.Task)
		}

	case "d":
		if row, ok := a.worklist.Selected(); ok {
			a.confirmID = row.Task.ID
		}

	case "s":
		// Quick status change: advance to the next status, no validation.
		if row, ok := a.worklist.Selected(); ok {
			id, status := row.Task.ID, nextStatus(row.Task.Status)
			session := a.session
			return a, func() tea.Msg {
				return opDoneMsg{Err: session.ChangeStatus(context.Background(), id, status)}
			}
		}
	}

	return a, nil
}

func (a *App) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := a.confirmID
		a.confirmID = 0
		session := a.session
		return a, func() tea.Msg {
			return opDoneMsg{Err: session.DeleteTask(context.Background(), id)}
		}
	case "n", "esc":
		// Declined: no call, no banner.
		a.confirmID = 0
	}
	return a, nil
}

// nextStatus cycles through the statuses in display order.
func nextStatus(s task.Status) task.Status {
	statuses := task.Statuses()
	for i, cur := range statuses {
		if cur == s {
			return statuses[(i+1)%len(statuses)]
		}
	}
	return statuses[0]
}

// View renders the application.
func (a *App) View() string {
	if a.quitting {
		return ""
	}

	out := components.TitleStyle.Render(fmt.Sprintf("Caseflow Tasks (%d)", a.presenter.Count())) + "\n\n"

	if banner := a.session.Err(); banner != "" {
		out += components.BannerStyle.Render(banner) + "\n\n"
	}

	if a.taskForm.Active() {
		return out + a.taskForm.View()
	}

	if a.session.Loading() {
		return out + components.MutedStyle.Render("Loading tasks...")
	}

	out += a.worklist.View()

	if a.confirmID != 0 {
		out += "\n" + components.BannerStyle.Render("Are you sure you want to delete this task? [y/n]")
	} else {
		out += "\n" + components.MutedStyle.Render("n new · e edit · s status · d delete · r refresh · q quit")
	}
	return out
}
