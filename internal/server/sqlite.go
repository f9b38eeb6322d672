// Package server implements the task service the worklist client talks to,
// used for local development and end-to-end tests.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/dohr-michael/caseflow/internal/task"
)

// ErrTaskNotFound is returned for operations addressing an id the service
// does not hold.
var ErrTaskNotFound = errors.New("task not found")

const schema = `
CREATE TABLE IF NOT EXISTS tasks (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	status        TEXT NOT NULL,
	due_date_time TEXT NOT NULL,
	created_at    TEXT NOT NULL,
	updated_at    TEXT NOT NULL
);`

// Repo persists tasks in a sqlite database. Timestamps are stored as
// RFC 3339 UTC strings, matching the wire format.
type Repo struct {
	db *sql.DB
}

// OpenRepo opens (creating if needed) the database at path.
func OpenRepo(path string) (*Repo, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Repo{db: db}, nil
}

// Close releases the underlying database.
func (r *Repo) Close() error { return r.db.Close() }

const taskColumns = "id, title, description, status, due_date_time, created_at, updated_at"

func scanTask(row interface{ Scan(...any) error }) (task.Task, error) {
	var t task.Task
	var due, created, updated string
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &due, &created, &updated); err != nil {
		return task.Task{}, err
	}
	var err error
	if t.DueDateTime, err = time.Parse(time.RFC3339, due); err != nil {
		return task.Task{}, fmt.Errorf("corrupt due_date_time for task %d: %w", t.ID, err)
	}
	if t.CreatedAt, err = time.Parse(time.RFC3339, created); err != nil {
		return task.Task{}, fmt.Errorf("corrupt created_at for task %d: %w", t.ID, err)
	}
	if t.UpdatedAt, err = time.Parse(time.RFC3339, updated); err != nil {
		return task.Task{}, fmt.Errorf("corrupt updated_at for task %d: %w", t.ID, err)
	}
	return t, nil
}

// List returns every task in insertion order.
func (r *Repo) List(ctx context.Context) ([]task.Task, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+taskColumns+" FROM tasks ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// Get returns the task with the given id.
func (r *Repo) Get(ctx context.Context, id int64) (task.Task, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+taskColumns+" FROM tasks WHERE id = ?", id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return task.Task{}, ErrTaskNotFound
	}
	return t, err
}

// Create inserts a new task and returns the stored record.
func (r *Repo) Create(ctx context.Context, req task.CreateRequest) (task.Task, error) {
	now := time.Now().UTC().Truncate(time.Second)
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO tasks (title, description, status, due_date_time, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)",
		req.Title, req.Description, string(req.Status),
		req.DueDateTime.UTC().Format(time.RFC3339),
		now.Format(time.RFC3339), now.Format(time.RFC3339))
	if err != nil {
		return task.Task{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return task.Task{}, err
	}
	return r.Get(ctx, id)
}

// Update applies a partial replace: only fields present in req change.
func (r *Repo) Update(ctx context.Context, id int64, req task.UpdateRequest) (task.Task, error) {
	current, err := r.Get(ctx, id)
	if err != nil {
		return task.Task{}, err
	}

	if req.Title != nil {
		current.Title = *req.Title
	}
	if req.Description != nil {
		current.Description = *req.Description
	}
	if req.Status != nil {
		current.Status = *req.Status
	}
	if req.DueDateTime != nil {
		current.DueDateTime = *req.DueDateTime
	}

	now := time.Now().UTC().Truncate(time.Second)
	_, err = r.db.ExecContext(ctx,
		"UPDATE tasks SET title = ?, description = ?, status = ?, due_date_time = ?, updated_at = ? WHERE id = ?",
		current.Title, current.Description, string(current.Status),
		current.DueDateTime.UTC().Format(time.RFC3339),
		now.Format(time.RFC3339), id)
	if err != nil {
		return task.Task{}, err
	}
	return r.Get(ctx, id)
}

// UpdateStatus replaces only the status field.
func (r *Repo) UpdateStatus(ctx context.Context, id int64, status task.Status) (task.Task, error) {
	return r.Update(ctx, id, task.UpdateRequest{Status: &status})
}

// Delete removes a task.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Count returns the number of stored tasks.
func (r *Repo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasks").Scan(&n)
	return n, err
}
