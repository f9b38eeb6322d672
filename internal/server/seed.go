package server

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dohr-michael/caseflow/internal/task"
)

// seedEntry is one fixture task. DueIn is a Go duration relative to seed
// time, so fixture files never go stale.
type seedEntry struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	Status      string `yaml:"status,omitempty"`
	DueIn       string `yaml:"due_in"`
}

// SeedFromFile loads fixture tasks from a YAML file into the repository.
// Returns the number of tasks created.
func SeedFromFile(ctx context.Context, repo *Repo, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("read seed file: %w", err)
	}

	var entries []seedEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return 0, fmt.Errorf("parse seed file: %w", err)
	}

	now := time.Now()
	for i, e := range entries {
		status := task.StatusTodo
		if e.Status != "" {
			if status, err = task.ParseStatus(e.Status); err != nil {
				return 0, fmt.Errorf("seed entry %d: %w", i, err)
			}
		}

		dueIn, err := time.ParseDuration(e.DueIn)
		if err != nil {
			return 0, fmt.Errorf("seed entry %d: bad due_in %q: %w", i, e.DueIn, err)
		}

		_, err = repo.Create(ctx, task.CreateRequest{
			Title:       e.Title,
			Description: e.Description,
			Status:      status,
			DueDateTime: now.Add(dueIn),
		})
		if err != nil {
			return 0, fmt.Errorf("seed entry %d: %w", i, err)
		}
	}
	return len(entries), nil
}
