package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dohr-michael/caseflow/internal/app"
	"github.com/dohr-michael/caseflow/internal/client"
	"github.com/dohr-michael/caseflow/internal/form"
	"github.com/dohr-michael/caseflow/internal/task"
	"github.com/dohr-michael/caseflow/internal/view"
)

// NewTasksCommand returns the tasks subcommand.
func NewTasksCommand() *cli.Command {
	return &cli.Command{
		Name:  "tasks",
		Usage: "Work with the task worklist",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List all tasks",
				Action: runTasksList,
			},
			{
				Name:      "show",
				Usage:     "Show task details",
				ArgsUsage: "<id>",
				Action:    runTasksShow,
			},
			{
				Name:  "create",
				Usage: "Create a task",
				Flags: draftFlags(),
				Action: runTasksCreate,
			},
			{
				Name:      "edit",
				Usage:     "Edit a task",
				ArgsUsage: "<id>",
				Flags:     draftFlags(),
				Action:    runTasksEdit,
			},
			{
				Name:      "status",
				Usage:     "Change a task's status",
				ArgsUsage: "<id> <status>",
				Action:    runTasksStatus,
			},
			{
				Name:      "delete",
				Usage:     "Delete a task",
				ArgsUsage: "<id>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Skip the confirmation prompt",
					},
				},
				Action: runTasksDelete,
			},
		},
		DefaultCommand: "list",
	}
}

func draftFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title", Aliases: []string{"t"}, Usage: "Task title"},
		&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "Task description"},
		&cli.StringFlag{Name: "status", Aliases: []string{"s"}, Usage: "Task status (TODO, IN_PROGRESS, COMPLETED, CANCELLED)"},
		&cli.StringFlag{Name: "due", Usage: "Due date/time (2006-01-02T15:04 or RFC 3339)"},
	}
}

func newSession(cmd *cli.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return app.New(client.New(cfg.Service.BaseURL), app.WithConfirm(confirmOnTerminal(cmd.Bool("yes")))), nil
}

// confirmOnTerminal prompts on stdin unless the user pre-approved with --yes.
// Without a terminal there is nobody to ask, so the answer is no.
func confirmOnTerminal(skip bool) app.ConfirmFunc {
	return func(prompt string) bool {
		if skip {
			return true
		}
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return false
		}
		fmt.Printf("%s [y/N] ", prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes"
	}
}

func argID(cmd *cli.Command) (int64, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return 0, fmt.Errorf("missing task id")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}

func runTasksList(ctx context.Context, cmd *cli.Command) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := session.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", session.Err())
	}

	presenter := view.NewPresenter(session.Store(), session)
	rows := presenter.Rows()
	if len(rows) == 0 {
		fmt.Println("No tasks yet.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTATUS\tDUE\t\tTITLE")
	for _, row := range rows {
		overdue := ""
		if row.Overdue {
			overdue = "OVERDUE"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", row.Task.ID, row.StatusLabel, row.Due, overdue, row.Task.Title)
	}
	return w.Flush()
}

func runTasksShow(ctx context.Context, cmd *cli.Command) error {
	id, err := argID(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	t, err := client.New(cfg.Service.BaseURL).GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get task: %w", err)
	}

	fmt.Printf("ID:          %d\n", t.ID)
	fmt.Printf("Title:       %s\n", t.Title)
	fmt.Printf("Status:      %s\n", t.Status.Label())
	fmt.Printf("Due:         %s\n", view.FormatDue(t.DueDateTime))
	fmt.Printf("Created:     %s\n", t.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Updated:     %s\n", t.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
	if t.Description != "" {
		fmt.Printf("\nDescription:\n%s\n", t.Description)
	}
	return nil
}

func runTasksCreate(ctx context.Context, cmd *cli.Command) error {
	session, err := newSession(cmd)
	if err != nil {
		return err
	}

	ctl := form.NewController(session)
	if err := applyDraftFlags(ctl, cmd); err != nil {
		return err
	}

	if err := submitDraft(ctx, session, ctl); err != nil {
		return err
	}

	created := session.Store().Tasks()
	fmt.Printf("Task %d created.\n", created[len(created)-1].ID)
	return nil
}

func runTasksEdit(ctx context.Context, cmd *cli.Command) error {
	id, err := argID(cmd)
	if err != nil {
		return err
	}

	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := session.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", session.Err())
	}

	selected, ok := session.Store().Get(id)
	if !ok {
		return fmt.Errorf("task %d not found", id)
	}

	ctl := form.NewController(session)
	ctl.StartEdit(selected)
	if err := applyDraftFlags(ctl, cmd); err != nil {
		return err
	}

	if err := submitDraft(ctx, session, ctl); err != nil {
		return err
	}

	fmt.Printf("Task %d updated.\n", id)
	return nil
}

// applyDraftFlags copies only the flags the user set into the draft, so an
// edit leaves the other fields as seeded.
func applyDraftFlags(ctl *form.Controller, cmd *cli.Command) error {
	if cmd.IsSet("title") {
		ctl.SetTitle(cmd.String("title"))
	}
	if cmd.IsSet("description") {
		ctl.SetDescription(cmd.String("description"))
	}
	if cmd.IsSet("status") {
		status, err := task.ParseStatus(cmd.String("status"))
		if err != nil {
			return err
		}
		ctl.SetStatus(status)
	}
	if cmd.IsSet("due") {
		ctl.SetDueDateTime(cmd.String("due"))
	}
	return nil
}

func submitDraft(ctx context.Context, session *app.App, ctl *form.Controller) error {
	err := ctl.Submit(ctx)
	if err == nil {
		return nil
	}
	if errors.Is(err, form.ErrInvalidDraft) {
		for field, msg := range ctl.Errors() {
			fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
		}
		return fmt.Errorf("draft failed validation")
	}
	if banner := session.Err(); banner != "" {
		return fmt.Errorf("%s", banner)
	}
	return err
}

func runTasksStatus(ctx context.Context, cmd *cli.Command) error {
	id, err := argID(cmd)
	if err != nil {
		return err
	}
	status, err := task.ParseStatus(cmd.Args().Get(1))
	if err != nil {
		return err
	}

	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := session.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", session.Err())
	}
	if _, ok := session.Store().Get(id); !ok {
		return fmt.Errorf("task %d not found", id)
	}

	if err := session.ChangeStatus(ctx, id, status); err != nil {
		return fmt.Errorf("%s", session.Err())
	}

	fmt.Printf("Task %d is now %s.\n", id, status.Label())
	return nil
}

func runTasksDelete(ctx context.Context, cmd *cli.Command) error {
	id, err := argID(cmd)
	if err != nil {
		return err
	}

	session, err := newSession(cmd)
	if err != nil {
		return err
	}
	if err := session.Refresh(ctx); err != nil {
		return fmt.Errorf("%s", session.Err())
	}
	if _, ok := session.Store().Get(id); !ok {
		return fmt.Errorf("task %d not found", id)
	}

	before := session.Store().Len()
	if err := session.DeleteTask(ctx, id); err != nil {
		return fmt.Errorf("%s", session.Err())
	}
	if session.Store().Len() == before {
		// Confirmation declined.
		return nil
	}

	fmt.Printf("Task %d deleted.\n", id)
	return nil
}
