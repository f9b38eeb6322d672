// Package client provides the REST client for the remote task service.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dohr-michael/caseflow/internal/task"
)

// ErrNotFound is returned by GetByID when the service has no task with the
// requested id.
var ErrNotFound = errors.New("task not found")

// TransportError covers any non-success response or network failure. The
// cause is logged for diagnostics; callers surface only a per-operation
// banner message.
type TransportError struct {
	Op     string // "list", "get", "create", "update", "status", "delete"
	Status int    // HTTP status, 0 on network failure
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("task service %s: unexpected status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("task service %s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Client is a stateless client for the task service. It owns no task state,
// only serializes requests and deserializes responses. Each user-triggered
// operation is a single attempt: no retries, no timeout beyond the underlying
// transport's defaults.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL (e.g. "http://localhost:8080").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/api/tasks",
		http:    &http.Client{},
	}
}

// NewWithHTTPClient creates a client with a caller-supplied http.Client.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	c := New(baseURL)
	c.http = hc
	return c
}

// ListAll fetches every task in the worklist.
func (c *Client) ListAll(ctx context.Context) ([]task.Task, error) {
	var out []task.Task
	if err := c.do(ctx, "list", http.MethodGet, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetByID fetches a single task. Returns ErrNotFound if the service has no
// matching task.
func (c *Client) GetByID(ctx context.Context, id int64) (task.Task, error) {
	var out task.Task
	err := c.do(ctx, "get", http.MethodGet, fmt.Sprintf("/%d", id), nil, &out)
	var te *TransportError
	if errors.As(err, &te) && te.Status == http.StatusNotFound {
		return task.Task{}, ErrNotFound
	}
	if err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// Create submits a new task and returns the server-assigned record.
func (c *Client) Create(ctx context.Context, req task.CreateRequest) (task.Task, error) {
	var out task.Task
	if err := c.do(ctx, "create", http.MethodPost, "", req, &out); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// Update sends a full or partial field replace; the server decides which
// fields update. Returns the resulting record.
func (c *Client) Update(ctx context.Context, id int64, req task.UpdateRequest) (task.Task, error) {
	var out task.Task
	if err := c.do(ctx, "update", http.MethodPut, fmt.Sprintf("/%d", id), req, &out); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// UpdateStatus replaces only the status of the targeted task.
func (c *Client) UpdateStatus(ctx context.Context, id int64, status task.Status) (task.Task, error) {
	var out task.Task
	req := task.UpdateStatusRequest{Status: status}
	if err := c.do(ctx, "status", http.MethodPatch, fmt.Sprintf("/%d/status", id), req, &out); err != nil {
		return task.Task{}, err
	}
	return out, nil
}

// Delete removes a task. Success is a no-content response.
func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, "delete", http.MethodDelete, fmt.Sprintf("/%d", id), nil, nil)
}

// do performs one request/response cycle. A nil out skips body decoding.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	reqID := uuid.New().String()
	req.Header.Set("X-Request-ID", reqID)

	resp, err := c.http.Do(req)
	if err != nil {
		slog.Warn("task service request failed", "op", op, "request_id", reqID, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("task service returned non-success", "op", op, "request_id", reqID, "status", resp.StatusCode)
		return &TransportError{Op: op, Status: resp.StatusCode}
	}

	slog.Debug("task service call", "op", op, "request_id", reqID, "status", resp.StatusCode)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
