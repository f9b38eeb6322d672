package app

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dohr-michael/caseflow/internal/task"
)

// fakeGateway serves canned responses and can fail every call.
type fakeGateway struct {
	tasks   []task.Task
	nextID  int64
	err     error
	deleted []int64
}

func (f *fakeGateway) ListAll(context.Context) ([]task.Task, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.tasks, nil
}

func (f *fakeGateway) Create(_ context.Context, req task.CreateRequest) (task.Task, error) {
	if f.err != nil {
		return task.Task{}, f.err
	}
	f.nextID++
	now := time.Now().UTC()
	return task.Task{
		ID:          f.nextID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDateTime: req.DueDateTime,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

func (f *fakeGateway) Update(_ context.Context, id int64, req task.UpdateRequest) (task.Task, error) {
	if f.err != nil {
		return task.Task{}, f.err
	}
	t := task.Task{ID: id, UpdatedAt: time.Now().UTC()}
	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.DueDateTime != nil {
		t.DueDateTime = *req.DueDateTime
	}
	return t, nil
}

func (f *fakeGateway) UpdateStatus(_ context.Context, id int64, status task.Status) (task.Task, error) {
	if f.err != nil {
		return task.Task{}, f.err
	}
	for _, t := range f.tasks {
		if t.ID == id {
			t.Status = status
			return t, nil
		}
	}
	return task.Task{ID: id, Status: status}, nil
}

func (f *fakeGateway) Delete(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func seedTasks() []task.Task {
	due := time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	return []task.Task{
		{ID: 1, Title: "a", Status: task.StatusTodo, DueDateTime: due},
		{ID: 2, Title: "b", Status: task.StatusInProgress, DueDateTime: due},
	}
}

func TestRefreshLoadsStore(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw)

	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if a.Store().Len() != 2 {
		t.Errorf("store size: %d", a.Store().Len())
	}
	if a.Err() != "" {
		t.Errorf("unexpected banner: %q", a.Err())
	}
}

func TestCreateRoundTrip(t *testing.T) {
	gw := &fakeGateway{nextID: 10}
	a := New(gw)

	err := a.CreateTask(context.Background(), task.CreateRequest{
		Title:       "new",
		Status:      task.StatusTodo,
		DueDateTime: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got := a.Store().Tasks()
	if len(got) != 1 {
		t.Fatalf("store size: %d", len(got))
	}
	if got[0].ID != 11 || got[0].Title != "new" {
		t.Errorf("inserted record: %+v", got[0])
	}
}

func TestUpdateRoundTripTouchesOnlyTarget(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw)
	_ = a.Refresh(context.Background())

	title := "renamed"
	status := task.StatusCompleted
	due := time.Now().Add(time.Hour).UTC()
	err := a.UpdateTask(context.Background(), 2, task.UpdateRequest{Title: &title, Status: &status, DueDateTime: &due})
	if err != nil {
		t.Fatalf("UpdateTask: %v", err)
	}

	got := a.Store().Tasks()
	if got[1].Title != "renamed" || got[1].Status != task.StatusCompleted {
		t.Errorf("target: %+v", got[1])
	}
	if got[0].Title != "a" {
		t.Errorf("other entry changed: %+v", got[0])
	}
}

func TestChangeStatusChangesOnlyStatus(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw)
	_ = a.Refresh(context.Background())

	before, _ := a.Store().Get(1)
	if err := a.ChangeStatus(context.Background(), 1, task.StatusCancelled); err != nil {
		t.Fatalf("ChangeStatus: %v", err)
	}

	after, _ := a.Store().Get(1)
	if after.Status != task.StatusCancelled {
		t.Errorf("status: %q", after.Status)
	}
	if after.Title != before.Title || !after.DueDateTime.Equal(before.DueDateTime) || after.Description != before.Description {
		t.Errorf("non-status fields changed: before=%+v after=%+v", before, after)
	}
}

func TestDeleteRemovesExactlyOne(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw)
	_ = a.Refresh(context.Background())

	if err := a.DeleteTask(context.Background(), 1); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	got := a.Store().Tasks()
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("store after delete: %+v", got)
	}
	if !reflect.DeepEqual(gw.deleted, []int64{1}) {
		t.Errorf("deleted ids: %v", gw.deleted)
	}
}

func TestDeclinedConfirmationIsSilentNoop(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw, WithConfirm(func(string) bool { return false }))
	_ = a.Refresh(context.Background())

	if err := a.DeleteTask(context.Background(), 1); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}
	if len(gw.deleted) != 0 {
		t.Error("delete sent despite declined confirmation")
	}
	if a.Store().Len() != 2 {
		t.Errorf("store mutated: %d", a.Store().Len())
	}
	if a.Err() != "" {
		t.Errorf("banner set: %q", a.Err())
	}
}

func TestFailuresLeaveStoreIntactAndSetBanner(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw)
	_ = a.Refresh(context.Background())
	before := a.Store().Tasks()

	gw.err = errors.New("connection refused")

	cases := []struct {
		name   string
		run    func() error
		banner string
	}{
		{"create", func() error {
			return a.CreateTask(context.Background(), task.CreateRequest{Title: "x", Status: task.StatusTodo, DueDateTime: time.Now().Add(time.Hour)})
		}, MsgCreateFailed},
		{"update", func() error {
			title := "x"
			return a.UpdateTask(context.Background(), 1, task.UpdateRequest{Title: &title})
		}, MsgUpdateFailed},
		{"status", func() error {
			return a.ChangeStatus(context.Background(), 1, task.StatusCompleted)
		}, MsgStatusFailed},
		{"delete", func() error {
			return a.DeleteTask(context.Background(), 1)
		}, MsgDeleteFailed},
	}

	for _, tc := range cases {
		if err := tc.run(); err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
		if got := a.Store().Tasks(); !reflect.DeepEqual(got, before) {
			t.Errorf("%s: store changed: %+v", tc.name, got)
		}
		if a.Err() != tc.banner {
			t.Errorf("%s: banner got %q, want %q", tc.name, a.Err(), tc.banner)
		}
	}
}

func TestNewOperationClearsPreviousBanner(t *testing.T) {
	gw := &fakeGateway{tasks: seedTasks()}
	a := New(gw)

	gw.err = errors.New("down")
	_ = a.Refresh(context.Background())
	if a.Err() != MsgFetchFailed {
		t.Fatalf("banner: %q", a.Err())
	}

	gw.err = nil
	if err := a.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if a.Err() != "" {
		t.Errorf("banner not cleared: %q", a.Err())
	}
}
