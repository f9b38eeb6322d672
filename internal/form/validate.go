// Package form manages draft input for creating or editing a task and the
// validation rules guarding submission.
package form

import (
	"strings"
	"time"

	"github.com/dohr-michael/caseflow/internal/task"
)

// Field names, shared between the draft, the error map, and the UI.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldStatus      = "status"
	FieldDueDateTime = "dueDateTime"
)

// Validation messages shown inline next to the offending field.
const (
	MsgTitleRequired = "Title is required"
	MsgDueRequired   = "Due date/time is required"
	MsgDueInFuture   = "Due date/time must be in the future"
)

// dueInputLayout is the minute-precision form in which due values are edited,
// mirroring how a selected task seeds the draft.
const dueInputLayout = "2006-01-02T15:04"

// Draft is transient, unconfirmed form input, distinct from any store entry
// until submission succeeds. DueDateTime is kept as the raw edited string
// until validation turns it into an instant.
type Draft struct {
	Title       string
	Description string
	Status      task.Status
	DueDateTime string
}

// NewDraft returns the empty draft of create mode.
func NewDraft() Draft {
	return Draft{Status: task.StatusTodo}
}

// FieldErrors maps a field name to its single violation message.
type FieldErrors map[string]string

// Validate checks a draft against the submission rules. All violations are
// collected independently, never short-circuited. On success it returns the
// validated payload with the due instant normalized to UTC.
//
// Rules: title must be non-empty after trimming; dueDateTime must be present
// and parse to an instant strictly after now. Status and description are
// unconstrained.
func Validate(d Draft, now time.Time) (task.CreateRequest, FieldErrors) {
	errs := FieldErrors{}

	if strings.TrimSpace(d.Title) == "" {
		errs[FieldTitle] = MsgTitleRequired
	}

	var due time.Time
	if d.DueDateTime == "" {
		errs[FieldDueDateTime] = MsgDueRequired
	} else {
		parsed, err := parseDue(d.DueDateTime)
		if err != nil || !parsed.After(now) {
			errs[FieldDueDateTime] = MsgDueInFuture
		} else {
			due = parsed.UTC()
		}
	}

	if len(errs) > 0 {
		return task.CreateRequest{}, errs
	}

	return task.CreateRequest{
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		DueDateTime: due,
	}, nil
}

// parseDue accepts the minute-precision edit form and full RFC 3339.
func parseDue(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.ParseInLocation(dueInputLayout, raw, time.Local)
}

// DueInput formats a task's due instant back into the minute-precision edit
// form used when seeding an edit draft.
func DueInput(t time.Time) string {
	return t.Local().Format(dueInputLayout)
}
