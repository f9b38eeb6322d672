package task

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseStatus(t *testing.T) {
	cases := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"TODO", StatusTodo, false},
		{"todo", StatusTodo, false},
		{"in_progress", StatusInProgress, false},
		{"IN PROGRESS", StatusInProgress, false},
		{"  completed ", StatusCompleted, false},
		{"CANCELLED", StatusCancelled, false},
		{"DONE", "", true},
		{"", "", true},
	}

	for _, tc := range cases {
		got, err := ParseStatus(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseStatus(%q): expected error, got %q", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseStatus(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseStatus(%q): got %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestStatusLabel(t *testing.T) {
	if got := StatusInProgress.Label(); got != "IN PROGRESS" {
		t.Errorf("Label: got %q, want %q", got, "IN PROGRESS")
	}
	if got := StatusTodo.Label(); got != "TODO" {
		t.Errorf("Label: got %q, want %q", got, "TODO")
	}
}

func TestStatusValid(t *testing.T) {
	for _, s := range Statuses() {
		if !s.Valid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if Status("PENDING").Valid() {
		t.Error("expected PENDING to be invalid")
	}
}

func TestTaskWireShape(t *testing.T) {
	due := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	tk := Task{
		ID:          7,
		Title:       "Review bundle",
		Status:      StatusTodo,
		DueDateTime: due,
		CreatedAt:   due.Add(-48 * time.Hour),
		UpdatedAt:   due.Add(-24 * time.Hour),
	}

	data, err := json.Marshal(tk)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	for _, key := range []string{`"id":7`, `"title":"Review bundle"`, `"status":"TODO"`, `"dueDateTime":"2026-03-01T09:30:00Z"`, `"createdAt"`, `"updatedAt"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("wire payload missing %s: %s", key, data)
		}
	}
	// Empty description is omitted entirely.
	if strings.Contains(string(data), "description") {
		t.Errorf("empty description should be omitted: %s", data)
	}
}

func TestUpdateRequestOmitsAbsentFields(t *testing.T) {
	title := "Renamed"
	req := UpdateRequest{Title: &title}

	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(data) != `{"title":"Renamed"}` {
		t.Errorf("partial update payload: got %s", data)
	}
}
