package view

import (
	"context"
	"testing"
	"time"

	"github.com/dohr-michael/caseflow/internal/store"
	"github.com/dohr-michael/caseflow/internal/task"
)

func TestOverdue(t *testing.T) {
	now := time.Date(2026, 4, 10, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name   string
		due    time.Time
		status task.Status
		want   bool
	}{
		{"past due, in progress", past, task.StatusInProgress, true},
		{"past due, todo", past, task.StatusTodo, true},
		{"past due, completed", past, task.StatusCompleted, false},
		// Cancelled tasks with a past due date keep the overdue flag.
		{"past due, cancelled", past, task.StatusCancelled, true},
		{"future due, in progress", future, task.StatusInProgress, false},
		{"due exactly now", now, task.StatusTodo, false},
	}

	for _, tc := range cases {
		got := Overdue(task.Task{DueDateTime: tc.due, Status: tc.status}, now)
		if got != tc.want {
			t.Errorf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFormatDue(t *testing.T) {
	due := time.Date(2026, 3, 5, 9, 7, 0, 0, time.Local)
	if got := FormatDue(due); got != "05 Mar 2026 09:07" {
		t.Errorf("FormatDue: got %q", got)
	}
}

type recordingChanger struct {
	id     int64
	status task.Status
}

func (r *recordingChanger) ChangeStatus(_ context.Context, id int64, status task.Status) error {
	r.id = id
	r.status = status
	return nil
}

func TestRowsDeriveFromStoreOrder(t *testing.T) {
	s := store.New()
	now := time.Now()
	s.Load([]task.Task{
		{ID: 1, Title: "late", Status: task.StatusInProgress, DueDateTime: now.Add(-time.Hour)},
		{ID: 2, Title: "on track", Status: task.StatusTodo, DueDateTime: now.Add(time.Hour)},
	})

	p := NewPresenter(s, &recordingChanger{})
	rows := p.Rows()

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if !rows[0].Overdue || rows[1].Overdue {
		t.Errorf("overdue flags: %v, %v", rows[0].Overdue, rows[1].Overdue)
	}
	if rows[0].StatusLabel != "IN PROGRESS" {
		t.Errorf("status label: %q", rows[0].StatusLabel)
	}
	if p.Count() != 2 {
		t.Errorf("Count: got %d", p.Count())
	}
}

func TestChangeStatusBypassesValidation(t *testing.T) {
	rc := &recordingChanger{}
	p := NewPresenter(store.New(), rc)

	if err := p.ChangeStatus(context.Background(), 7, task.StatusCancelled); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}
	if rc.id != 7 || rc.status != task.StatusCancelled {
		t.Errorf("forwarded: id=%d status=%q", rc.id, rc.status)
	}
}
