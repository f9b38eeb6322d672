// Package task defines the casework task records exchanged with the remote task service.
package task

import (
	"fmt"
	"strings"
	"time"
)

// Status is the lifecycle state of a task. Transitions are unconstrained:
// any status may be replaced by any other.
type Status string

const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusCancelled  Status = "CANCELLED"
)

// Statuses returns every status in display order.
func Statuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled}
}

// Valid reports whether s is a member of the status enumeration.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Label returns the human-readable form ("IN_PROGRESS" -> "IN PROGRESS").
func (s Status) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// ParseStatus converts user input into a Status, tolerating case and
// space-for-underscore variants.
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(raw)), " ", "_")
	s := Status(normalized)
	if !s.Valid() {
		return "", fmt.Errorf("unknown status %q (expected one of TODO, IN_PROGRESS, COMPLETED, CANCELLED)", raw)
	}
	return s, nil
}

// Task is the canonical entity. ID, CreatedAt, and UpdatedAt are
// server-assigned and immutable from the client's perspective. All
// timestamps travel as ISO-8601 strings on the wire.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status"`
	DueDateTime time.Time `json:"dueDateTime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest carries everything required to construct a task except the
// server-assigned fields.
type CreateRequest struct {
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description,omitempty"`
	Status      Status    `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED CANCELLED"`
	DueDateTime time.Time `json:"dueDateTime" validate:"required"`
}

// UpdateRequest is a partial replace: fields present override, absent fields
// are not included in the payload and carry no protocol-defined meaning.
type UpdateRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *Status    `json:"status,omitempty" validate:"omitempty,oneof=TODO IN_PROGRESS COMPLETED CANCELLED"`
	DueDateTime *time.Time `json:"dueDateTime,omitempty"`
}

// UpdateStatusRequest is the single-field partial update behind
// PATCH /api/tasks/{id}/status.
type UpdateStatusRequest struct {
	Status Status `json:"status" validate:"required,oneof=TODO IN_PROGRESS COMPLETED CANCELLED"`
}
