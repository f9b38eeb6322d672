// Command task_flow exercises the full task lifecycle against a running
// caseflow server.
//
// It creates a task, reads it back, edits it, walks it through a status
// change, then deletes it and verifies the deletion.
//
// Usage: task_flow -server http://127.0.0.1:8080
//
// Exit codes:
//
//	0 = all checks passed
//	1 = a check failed
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/dohr-michael/caseflow/internal/client"
	"github.com/dohr-michael/caseflow/internal/task"
)

func main() {
	serverURL := flag.String("server", "http://127.0.0.1:8080", "Server base URL")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, *serverURL); err != nil {
		fmt.Fprintf(os.Stderr, "FAIL: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, serverURL string) error {
	c := client.New(serverURL)

	// ── Step 1: Create a task ───────────────────────────────────────────
	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)
	created, err := c.Create(ctx, task.CreateRequest{
		Title:       "e2e flow task",
		Description: "created by task_flow",
		Status:      task.StatusTodo,
		DueDateTime: due,
	})
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	if created.ID == 0 {
		return fmt.Errorf("create returned zero id")
	}
	fmt.Printf("CHECK task created: id=%d\n", created.ID)

	// ── Step 2: Read it back, directly and via the list ─────────────────
	got, err := c.GetByID(ctx, created.ID)
	if err != nil {
		return fmt.Errorf("get: %w", err)
	}
	if got.Title != created.Title || !got.DueDateTime.Equal(due) {
		return fmt.Errorf("get returned a different task: %+v", got)
	}
	fmt.Println("CHECK task read back")

	all, err := c.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	if !containsID(all, created.ID) {
		return fmt.Errorf("list does not contain id %d", created.ID)
	}
	fmt.Printf("CHECK task listed (%d total)\n", len(all))

	// ── Step 3: Edit title and description ──────────────────────────────
	title := "e2e flow task (edited)"
	description := "edited by task_flow"
	updated, err := c.Update(ctx, created.ID, task.UpdateRequest{
		Title:       &title,
		Description: &description,
	})
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	if updated.Title != title || updated.Description != description {
		return fmt.Errorf("update not applied: %+v", updated)
	}
	fmt.Println("CHECK task edited")

	// ── Step 4: Walk the status forward ─────────────────────────────────
	for _, status := range []task.Status{task.StatusInProgress, task.StatusCompleted} {
		updated, err = c.UpdateStatus(ctx, created.ID, status)
		if err != nil {
			return fmt.Errorf("update status %s: %w", status, err)
		}
		if updated.Status != status {
			return fmt.Errorf("status not applied: got %s, want %s", updated.Status, status)
		}
		fmt.Printf("CHECK status changed: %s\n", status)
	}

	// ── Step 5: Delete and verify ───────────────────────────────────────
	if err := c.Delete(ctx, created.ID); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	if _, err := c.GetByID(ctx, created.ID); !errors.Is(err, client.ErrNotFound) {
		return fmt.Errorf("task still present after delete: %v", err)
	}
	fmt.Println("CHECK task deleted")

	fmt.Println("CHECK all flow checks passed")
	return nil
}

func containsID(tasks []task.Task, id int64) bool {
	for _, t := range tasks {
		if t.ID == id {
			return true
		}
	}
	return false
}
