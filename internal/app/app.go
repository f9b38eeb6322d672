// Package app wires the store, the remote gateway, and user intents for a
// single worklist session. All store mutations happen here, strictly after
// the gateway confirms the corresponding operation.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dohr-michael/caseflow/internal/store"
	"github.com/dohr-michael/caseflow/internal/task"
)

// Banner messages, one per operation kind. The underlying cause is logged,
// never shown.
const (
	MsgFetchFailed  = "Failed to fetch tasks. Please try again."
	MsgCreateFailed = "Failed to create task. Please try again."
	MsgUpdateFailed = "Failed to update task. Please try again."
	MsgDeleteFailed = "Failed to delete task. Please try again."
	MsgStatusFailed = "Failed to update task status. Please try again."
)

// Gateway is the remote surface the session depends on, satisfied by
// *client.Client.
type Gateway interface {
	ListAll(ctx context.Context) ([]task.Task, error)
	Create(ctx context.Context, req task.CreateRequest) (task.Task, error)
	Update(ctx context.Context, id int64, req task.UpdateRequest) (task.Task, error)
	UpdateStatus(ctx context.Context, id int64, status task.Status) (task.Task, error)
	Delete(ctx context.Context, id int64) error
}

// ConfirmFunc asks the user to approve a destructive action. Returning false
// is a silent no-op: no call, no banner.
type ConfirmFunc func(prompt string) bool

// App is the session coordinator. Its lifecycle is the UI session: created
// empty, populated by Refresh, discarded at exit. No persistence.
type App struct {
	store   *store.Store
	gw      Gateway
	confirm ConfirmFunc

	mu      sync.Mutex
	banner  string
	loading bool
}

// Option configures an App.
type Option func(*App)

// WithConfirm installs the destructive-action confirmation hook. Without it
// every delete proceeds.
func WithConfirm(fn ConfirmFunc) Option {
	return func(a *App) { a.confirm = fn }
}

// New creates a session over the given gateway with an empty store.
func New(gw Gateway, opts ...Option) *App {
	a := &App{store: store.New(), gw: gw}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Store exposes the session's task collection for presentation layers.
func (a *App) Store() *store.Store { return a.store }

// Err returns the current global error banner, or "".
func (a *App) Err() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.banner
}

// Loading reports whether the initial fetch is in flight.
func (a *App) Loading() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.loading
}

// Refresh replaces the store with the service's current task list.
func (a *App) Refresh(ctx context.Context) error {
	a.setLoading(true)
	a.clearBanner()
	defer a.setLoading(false)

	tasks, err := a.gw.ListAll(ctx)
	if err != nil {
		a.fail(MsgFetchFailed, "fetch tasks", err)
		return fmt.Errorf("fetch tasks: %w", err)
	}

	a.store.Load(tasks)
	return nil
}

// CreateTask submits a new task and inserts the confirmed record.
// Implements form.SubmitHandler.
func (a *App) CreateTask(ctx context.Context, req task.CreateRequest) error {
	a.clearBanner()

	created, err := a.gw.Create(ctx, req)
	if err != nil {
		a.fail(MsgCreateFailed, "create task", err)
		return fmt.Errorf("create task: %w", err)
	}

	a.store.Insert(created)
	return nil
}

// UpdateTask submits an edit and replaces the prior entry with the confirmed
// record. Implements form.SubmitHandler.
func (a *App) UpdateTask(ctx context.Context, id int64, req task.UpdateRequest) error {
	a.clearBanner()

	updated, err := a.gw.Update(ctx, id, req)
	if err != nil {
		a.fail(MsgUpdateFailed, "update task", err)
		return fmt.Errorf("update task %d: %w", id, err)
	}

	a.store.Replace(id, updated)
	return nil
}

// ChangeStatus is the quick status-change path. Implements
// view.StatusChanger. No validation runs here.
func (a *App) ChangeStatus(ctx context.Context, id int64, status task.Status) error {
	a.clearBanner()

	updated, err := a.gw.UpdateStatus(ctx, id, status)
	if err != nil {
		a.fail(MsgStatusFailed, "update task status", err)
		return fmt.Errorf("update status of task %d: %w", id, err)
	}

	a.store.Replace(id, updated)
	return nil
}

// DeleteTask removes a task after confirmation. A declined confirmation is a
// no-op: nothing is sent, nothing is surfaced.
func (a *App) DeleteTask(ctx context.Context, id int64) error {
	if a.confirm != nil && !a.confirm("Are you sure you want to delete this task?") {
		return nil
	}

	a.clearBanner()

	if err := a.gw.Delete(ctx, id); err != nil {
		a.fail(MsgDeleteFailed, "delete task", err)
		return fmt.Errorf("delete task %d: %w", id, err)
	}

	a.store.Remove(id)
	return nil
}

func (a *App) fail(banner, op string, err error) {
	slog.Error("worklist operation failed", "op", op, "error", err)
	a.mu.Lock()
	a.banner = banner
	a.mu.Unlock()
}

func (a *App) clearBanner() {
	a.mu.Lock()
	a.banner = ""
	a.mu.Unlock()
}

func (a *App) setLoading(v bool) {
	a.mu.Lock()
	a.loading = v
	a.mu.Unlock()
}
