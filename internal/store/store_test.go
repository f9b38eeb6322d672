package store

import (
	"testing"
	"time"

	"github.com/dohr-michael/caseflow/internal/task"
)

func mkTask(id int64, title string) task.Task {
	due := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	return task.Task{ID: id, Title: title, Status: task.StatusTodo, DueDateTime: due}
}

func TestLoadReplacesCollection(t *testing.T) {
	s := New()
	s.Insert(mkTask(1, "old"))

	s.Load([]task.Task{mkTask(2, "a"), mkTask(3, "b")})

	got := s.Tasks()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != 2 || got[1].ID != 3 {
		t.Errorf("order: got %d, %d", got[0].ID, got[1].ID)
	}
}

func TestInsertAppends(t *testing.T) {
	s := New()
	s.Load([]task.Task{mkTask(1, "a")})
	s.Insert(mkTask(2, "b"))

	got := s.Tasks()
	if len(got) != 2 || got[1].ID != 2 {
		t.Fatalf("expected appended id 2, got %+v", got)
	}
}

func TestReplaceOverwritesOnlyTarget(t *testing.T) {
	s := New()
	s.Load([]task.Task{mkTask(1, "a"), mkTask(2, "b"), mkTask(3, "c")})

	updated := mkTask(2, "b2")
	updated.Status = task.StatusCompleted
	s.Replace(2, updated)

	got := s.Tasks()
	if got[1].Title != "b2" || got[1].Status != task.StatusCompleted {
		t.Errorf("target not replaced: %+v", got[1])
	}
	if got[0].Title != "a" || got[2].Title != "c" {
		t.Errorf("other entries changed: %+v", got)
	}
}

func TestReplaceUnknownIDPanics(t *testing.T) {
	s := New()
	s.Load([]task.Task{mkTask(1, "a")})

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on replace of unknown id")
		}
	}()
	s.Replace(99, mkTask(99, "ghost"))
}

func TestRemove(t *testing.T) {
	s := New()
	s.Load([]task.Task{mkTask(1, "a"), mkTask(2, "b"), mkTask(3, "c")})

	s.Remove(2)

	got := s.Tasks()
	if len(got) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("wrong entries kept: %+v", got)
	}

	// Absent id is a no-op.
	s.Remove(42)
	if s.Len() != 2 {
		t.Errorf("remove of absent id changed size: %d", s.Len())
	}
}

func TestGet(t *testing.T) {
	s := New()
	s.Load([]task.Task{mkTask(1, "a")})

	if got, ok := s.Get(1); !ok || got.Title != "a" {
		t.Errorf("Get(1): got %+v, ok=%v", got, ok)
	}
	if _, ok := s.Get(5); ok {
		t.Error("Get(5): expected miss")
	}
}

func TestSubscribeNotifiesOncePerMutation(t *testing.T) {
	s := New()
	count := 0
	unsubscribe := s.Subscribe(func() { count++ })

	s.Load([]task.Task{mkTask(1, "a")})
	s.Insert(mkTask(2, "b"))
	s.Replace(2, mkTask(2, "b2"))
	s.Remove(1)

	if count != 4 {
		t.Errorf("expected 4 notifications, got %d", count)
	}

	unsubscribe()
	s.Insert(mkTask(3, "c"))
	if count != 4 {
		t.Errorf("notified after unsubscribe: %d", count)
	}
}

func TestTasksReturnsCopy(t *testing.T) {
	s := New()
	s.Load([]task.Task{mkTask(1, "a")})

	got := s.Tasks()
	got[0].Title = "mutated"

	if fresh, _ := s.Get(1); fresh.Title != "a" {
		t.Error("Tasks() must not expose internal storage")
	}
}
