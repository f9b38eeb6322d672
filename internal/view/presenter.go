// Package view derives display-ready values from store state. It reads the
// collection, it never mutates it.
package view

import (
	"context"
	"time"

	"github.com/dohr-michael/caseflow/internal/store"
	"github.com/dohr-michael/caseflow/internal/task"
)

// StatusChanger is the quick status-change affordance. It goes straight to
// the remote gateway, bypassing the form controller: status values are never
// validated on this path.
type StatusChanger interface {
	ChangeStatus(ctx context.Context, id int64, status task.Status) error
}

// Row is one display-ready worklist entry.
type Row struct {
	Task        task.Task
	Overdue     bool
	Due         string
	StatusLabel string
}

// Presenter translates the store's tasks into rows.
type Presenter struct {
	store   *store.Store
	changer StatusChanger
	now     func() time.Time
}

// NewPresenter creates a presenter over the given store.
func NewPresenter(s *store.Store, changer StatusChanger) *Presenter {
	return &Presenter{store: s, changer: changer, now: time.Now}
}

// Rows returns the collection in store order, with derived display values.
func (p *Presenter) Rows() []Row {
	now := p.now()
	tasks := p.store.Tasks()
	rows := make([]Row, len(tasks))
	for i, t := range tasks {
		rows[i] = Row{
			Task:        t,
			Overdue:     Overdue(t, now),
			Due:         FormatDue(t.DueDateTime),
			StatusLabel: t.Status.Label(),
		}
	}
	return rows
}

// Count returns the number of tasks in the worklist.
func (p *Presenter) Count() int {
	return p.store.Len()
}

// ChangeStatus forwards a quick status change for the given task.
func (p *Presenter) ChangeStatus(ctx context.Context, id int64, status task.Status) error {
	return p.changer.ChangeStatus(ctx, id, status)
}

// Overdue reports whether a task's due instant has passed and the task is
// not completed. A cancelled task with a past due date is still flagged.
func Overdue(t task.Task, now time.Time) bool {
	return t.DueDateTime.Before(now) && t.Status != task.StatusCompleted
}

// FormatDue renders a due instant for display, en-GB style.
func FormatDue(t time.Time) string {
	return t.Local().Format("02 Jan 2006 15:04")
}
