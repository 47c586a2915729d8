// ABOUTME: Task CLI commands
// ABOUTME: Add, complete, reopen and list follow-up tasks
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
)

// AddTaskCommand adds an open task.
func AddTaskCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-task", flag.ExitOnError)
	title := fs.String("title", "", "Task title (required)")
	contactID := fs.String("contact", "", "Contact ID")
	notes := fs.String("notes", "", "Notes")
	priority := fs.String("priority", models.PriorityMedium, "Low, Medium or High")
	due := fs.String("due", "", "Due date (YYYY-MM-DD)")
	project := fs.String("project", "", "Project name")
	_ = fs.Parse(args)

	dueDate, err := parseDate("due", *due)
	if err != nil {
		return err
	}
	if *contactID != "" {
		if _, ok := s.FindContact(*contactID); !ok {
			return fmt.Errorf("contact %s: %w", *contactID, store.ErrNotFound)
		}
	}

	task, err := s.AddTask(ctx, store.TaskInput{
		ContactID: *contactID,
		Title:     *title,
		Notes:     *notes,
		Priority:  *priority,
		DueDate:   dueDate,
		Project:   *project,
	})
	if err != nil {
		return fmt.Errorf("failed to add task: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Task created: %s (ID: %s, %s priority)\n", task.Title, task.ID, task.Priority)
	return nil
}

// CompleteTaskCommand marks a task completed.
func CompleteTaskCommand(ctx context.Context, s *store.Store, args []string) error {
	return setTaskStatus(ctx, s, "complete-task", models.TaskStatusCompleted, args)
}

// ReopenTaskCommand marks a task open again.
func ReopenTaskCommand(ctx context.Context, s *store.Store, args []string) error {
	return setTaskStatus(ctx, s, "reopen-task", models.TaskStatusOpen, args)
}

func setTaskStatus(ctx context.Context, s *store.Store, name, status string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("task ID required")
	}

	task, err := s.SetTaskStatus(ctx, fs.Arg(0), status)
	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Task %s: %s\n", task.Status, task.Title)
	return nil
}

// DeleteTaskCommand removes a task.
func DeleteTaskCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-task", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("task ID required")
	}
	if err := s.DeleteTask(ctx, fs.Arg(0)); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deleted task %s\n", fs.Arg(0))
	return nil
}

// ListTasksCommand lists tasks, open ones only unless --all.
func ListTasksCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-tasks", flag.ExitOnError)
	all := fs.Bool("all", false, "Include completed tasks")
	project := fs.String("project", "", "Filter by project")
	_ = fs.Parse(args)

	now := time.Now()
	var tasks []models.Task
	for _, t := range s.Tasks() {
		if !*all && t.Status == models.TaskStatusCompleted {
			continue
		}
		if *project != "" && !strings.EqualFold(t.Project, *project) {
			continue
		}
		tasks = append(tasks, t)
	}

	if len(tasks) == 0 {
		fmt.Fprintln(stdout, "No tasks found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "TITLE\tPRIORITY\tSTATUS\tDUE\tPROJECT\tID")
	_, _ = fmt.Fprintln(w, "-----\t--------\t------\t---\t-------\t--")
	for _, t := range tasks {
		due := formatDate(t.DueDate)
		if t.IsOverdue(now) {
			due += " (overdue)"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(t.Title, 40), t.Priority, t.Status, due, orDash(t.Project), t.ID)
	}
	_ = w.Flush()
	return nil
}
