// ABOUTME: Project and task MCP tool handlers
// ABOUTME: Implements ensure_project, upsert_project, list_projects, add_task and set_task_status
package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ProjectHandlers struct {
	store *store.Store
}

func NewProjectHandlers(s *store.Store) *ProjectHandlers {
	return &ProjectHandlers{store: s}
}

type EnsureProjectInput struct {
	Name string `json:"name" jsonschema:"Project name (required)"`
}

func (h *ProjectHandlers) EnsureProject(ctx context.Context, request *mcp.CallToolRequest, input EnsureProjectInput) (*mcp.CallToolResult, models.Project, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, models.Project{}, fmt.Errorf("name is required")
	}
	p, err := h.store.EnsureProjectExists(ctx, input.Name)
	if err != nil {
		return nil, models.Project{}, fmt.Errorf("failed to ensure project: %w", err)
	}
	return nil, *p, nil
}

type UpsertProjectInput struct {
	ID          string `json:"id,omitempty" jsonschema:"Project ID; when blank the project is matched by name"`
	Name        string `json:"name" jsonschema:"Project name (required)"`
	Status      string `json:"status,omitempty" jsonschema:"Project status"`
	Owner       string `json:"owner,omitempty" jsonschema:"Owner"`
	StartDate   string `json:"start_date,omitempty" jsonschema:"Start date"`
	EndDate     string `json:"end_date,omitempty" jsonschema:"End date"`
	Description string `json:"description,omitempty" jsonschema:"Description"`
}

func (h *ProjectHandlers) UpsertProject(ctx context.Context, request *mcp.CallToolRequest, input UpsertProjectInput) (*mcp.CallToolResult, models.Project, error) {
	p, err := h.store.UpsertProject(ctx, models.Project{
		ID:          input.ID,
		Name:        input.Name,
		Status:      input.Status,
		Owner:       input.Owner,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Description: input.Description,
	})
	if err != nil {
		return nil, models.Project{}, fmt.Errorf("failed to save project: %w", err)
	}
	return nil, p, nil
}

type ListProjectsInput struct{}

type ProjectSummary struct {
	Project   models.Project `json:"project"`
	Contacts  int            `json:"contacts"`
	OpenTasks int            `json:"open_tasks"`
}

type ListProjectsOutput struct {
	Projects []ProjectSummary `json:"projects"`
}

func (h *ProjectHandlers) ListProjects(_ context.Context, request *mcp.CallToolRequest, input ListProjectsInput) (*mcp.CallToolResult, ListProjectsOutput, error) {
	contacts := make(map[string]int)
	for _, c := range h.store.Contacts() {
		contacts[strings.ToLower(c.Project)]++
	}
	open := make(map[string]int)
	for _, t := range h.store.Tasks() {
		if t.Status == models.TaskStatusOpen {
			open[strings.ToLower(t.Project)]++
		}
	}

	out := ListProjectsOutput{Projects: []ProjectSummary{}}
	for _, p := range h.store.Projects() {
		key := strings.ToLower(p.Name)
		out.Projects = append(out.Projects, ProjectSummary{Project: p, Contacts: contacts[key], OpenTasks: open[key]})
	}
	return nil, out, nil
}

type AddTaskInput struct {
	Title     string `json:"title" jsonschema:"Task title (required)"`
	ContactID string `json:"contact_id,omitempty" jsonschema:"Related contact ID"`
	Notes     string `json:"notes,omitempty" jsonschema:"Notes"`
	Priority  string `json:"priority,omitempty" jsonschema:"Low, Medium or High (default Medium)"`
	DueDate   string `json:"due_date,omitempty" jsonschema:"Due date (YYYY-MM-DD)"`
	Project   string `json:"project,omitempty" jsonschema:"Project name; created if new"`
}

func (h *ProjectHandlers) AddTask(ctx context.Context, request *mcp.CallToolRequest, input AddTaskInput) (*mcp.CallToolResult, TaskOutput, error) {
	due, err := parseDate(input.DueDate)
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("invalid due_date: %w", err)
	}
	if input.ContactID != "" {
		if _, ok := h.store.FindContact(input.ContactID); !ok {
			return nil, TaskOutput{}, fmt.Errorf("contact not found: %s", input.ContactID)
		}
	}

	task, err := h.store.AddTask(ctx, store.TaskInput{
		ContactID: input.ContactID,
		Title:     input.Title,
		Notes:     input.Notes,
		Priority:  input.Priority,
		DueDate:   due,
		Project:   input.Project,
	})
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to add task: %w", err)
	}
	return nil, taskToOutput(&task), nil
}

type SetTaskStatusInput struct {
	ID     string `json:"id" jsonschema:"Task ID (required)"`
	Status string `json:"status" jsonschema:"open or completed"`
}

func (h *ProjectHandlers) SetTaskStatus(ctx context.Context, request *mcp.CallToolRequest, input SetTaskStatusInput) (*mcp.CallToolResult, TaskOutput, error) {
	task, err := h.store.SetTaskStatus(ctx, input.ID, strings.ToLower(strings.TrimSpace(input.Status)))
	if err != nil {
		return nil, TaskOutput{}, fmt.Errorf("failed to update task: %w", err)
	}
	return nil, taskToOutput(&task), nil
}
