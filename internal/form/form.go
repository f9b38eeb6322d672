package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dohr-michael/caseflow/internal/task"
)

var (
	// ErrSubmitInFlight is returned when a submission is attempted while a
	// previous one from the same controller has not completed.
	ErrSubmitInFlight = errors.New("submission already in flight")

	// ErrInvalidDraft is returned when validation blocked the submission.
	// The field errors are available on the controller.
	ErrInvalidDraft = errors.New("draft failed validation")
)

// SubmitHandler receives validated form submissions. The session coordinator
// implements it; the controller never touches the store or the network
// directly.
type SubmitHandler interface {
	CreateTask(ctx context.Context, req task.CreateRequest) error
	UpdateTask(ctx context.Context, id int64, req task.UpdateRequest) error
}

// Controller manages the transient draft for create-or-edit. It owns only
// the draft: the draft is discarded on cancel or on successful submission in
// create mode, and re-seeded from a selected task in edit mode.
type Controller struct {
	mu         sync.Mutex
	handler    SubmitHandler
	draft      Draft
	errs       FieldErrors
	editing    *task.Task
	submitting bool
	now        func() time.Time
}

// NewController creates a controller in create mode with an empty draft.
func NewController(h SubmitHandler) *Controller {
	return &Controller{
		handler: h,
		draft:   NewDraft(),
		errs:    FieldErrors{},
		now:     time.Now,
	}
}

// Draft returns the current draft values.
func (c *Controller) Draft() Draft {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// FieldError returns the inline message for one field, or "".
func (c *Controller) FieldError(field string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errs[field]
}

// Errors returns a copy of the current field error map.
func (c *Controller) Errors() FieldErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(FieldErrors, len(c.errs))
	for k, v := range c.errs {
		out[k] = v
	}
	return out
}

// Submitting reports whether a submission is in flight.
func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

// Editing returns the task being edited, if any.
func (c *Controller) Editing() (task.Task, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.editing == nil {
		return task.Task{}, false
	}
	return *c.editing, true
}

// SetTitle updates the title field and clears only its error.
func (c *Controller) SetTitle(v string) { c.setField(FieldTitle, func() { c.draft.Title = v }) }

// SetDescription updates the description field and clears only its error.
func (c *Controller) SetDescription(v string) {
	c.setField(FieldDescription, func() { c.draft.Description = v })
}

// SetStatus updates the status field and clears only its error.
func (c *Controller) SetStatus(s task.Status) {
	c.setField(FieldStatus, func() { c.draft.Status = s })
}

// SetDueDateTime updates the due field and clears only its error.
func (c *Controller) SetDueDateTime(v string) {
	c.setField(FieldDueDateTime, func() { c.draft.DueDateTime = v })
}

func (c *Controller) setField(field string, apply func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	apply()
	delete(c.errs, field)
}

// StartEdit switches to edit mode, seeding the draft from the selected task
// with the due instant truncated to minute display precision.
func (c *Controller) StartEdit(t task.Task) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.editing = &t
	c.draft = Draft{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		DueDateTime: DueInput(t.DueDateTime),
	}
	c.errs = FieldErrors{}
}

// Cancel resets the draft and exits edit mode without any network call.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reset()
}

// reset must be called with the lock held.
func (c *Controller) reset() {
	c.editing = nil
	c.draft = NewDraft()
	c.errs = FieldErrors{}
}

// Submit validates the draft and, on success, delegates to the handler:
// CreateTask in create mode, UpdateTask in edit mode. Validation runs
// synchronously before any network call; on failure no call is made and the
// field errors are surfaced. A second submit while one is in flight is
// rejected with ErrSubmitInFlight.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	if c.submitting {
		c.mu.Unlock()
		return ErrSubmitInFlight
	}

	req, errs := Validate(c.draft, c.now())
	if len(errs) > 0 {
		c.errs = errs
		c.mu.Unlock()
		return ErrInvalidDraft
	}

	c.submitting = true
	editing := c.editing
	c.mu.Unlock()

	var err error
	if editing != nil {
		err = c.handler.UpdateTask(ctx, editing.ID, fullUpdate(req))
	} else {
		err = c.handler.CreateTask(ctx, req)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		// Draft and mode are preserved so the user can retry.
		return err
	}
	c.reset()
	return nil
}

// fullUpdate converts a validated draft into an update payload with every
// field present. The edit form always submits the complete record.
func fullUpdate(req task.CreateRequest) task.UpdateRequest {
	return task.UpdateRequest{
		Title:       &req.Title,
		Description: &req.Description,
		Status:      &req.Status,
		DueDateTime: &req.DueDateTime,
	}
}
