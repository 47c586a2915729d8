// ABOUTME: Project CLI commands
// ABOUTME: Create or update projects and list them with contact counts
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
)

// AddProjectCommand creates a project or updates the one with the same name.
func AddProjectCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-project", flag.ExitOnError)
	id := fs.String("id", "", "Project ID to update (allows renaming)")
	name := fs.String("name", "", "Project name (required)")
	status := fs.String("status", "", "Project status (default: Active)")
	owner := fs.String("owner", "", "Owner")
	start := fs.String("start", "", "Start date")
	end := fs.String("end", "", "End date")
	description := fs.String("description", "", "Description")
	_ = fs.Parse(args)

	project, err := s.UpsertProject(ctx, models.Project{
		ID:          *id,
		Name:        *name,
		Status:      *status,
		Owner:       *owner,
		StartDate:   *start,
		EndDate:     *end,
		Description: *description,
	})
	if err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Project saved: %s (ID: %s, %s)\n", project.Name, project.ID, project.Status)
	return nil
}

// ListProjectsCommand lists projects with contact and open task counts.
func ListProjectsCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-projects", flag.ExitOnError)
	_ = fs.Parse(args)

	projects := s.Projects()
	if len(projects) == 0 {
		fmt.Fprintln(stdout, "No projects found")
		return nil
	}

	contacts := make(map[string]int)
	for _, c := range s.Contacts() {
		contacts[strings.ToLower(strings.TrimSpace(c.Project))]++
	}
	openTasks := make(map[string]int)
	for _, t := range s.Tasks() {
		if t.Status == models.TaskStatusOpen {
			openTasks[strings.ToLower(strings.TrimSpace(t.Project))]++
		}
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "NAME\tSTATUS\tOWNER\tCONTACTS\tOPEN TASKS\tID")
	_, _ = fmt.Fprintln(w, "----\t------\t-----\t--------\t----------\t--")
	for _, p := range projects {
		key := strings.ToLower(strings.TrimSpace(p.Name))
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\n",
			p.Name, p.Status, orDash(p.Owner), contacts[key], openTasks[key], p.ID)
	}
	_ = w.Flush()
	return nil
}
