// ABOUTME: Task operations on the record store
// ABOUTME: Provides task creation, status transitions with completion tracking, and deletion
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outreach/models"
)

// TaskInput holds the fields a caller supplies for a new task.
type TaskInput struct {
	ContactID string
	Title     string
	Notes     string
	Priority  string
	DueDate   *time.Time
	Project   string
}

// Tasks returns a copy of the task collection.
func (s *Store) Tasks() []models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Task(nil), s.state.Tasks...)
}

// AddTask creates an open task.
func (s *Store) AddTask(ctx context.Context, in TaskInput) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Task{}, ErrTaskTitleRequired
	}

	t := models.Task{
		ID:        s.newID(),
		ContactID: in.ContactID,
		Title:     title,
		Notes:     in.Notes,
		Priority:  normalizePriority(in.Priority),
		Status:    models.TaskStatusOpen,
		DueDate:   in.DueDate,
		CreatedAt: s.now(),
		Project:   strings.TrimSpace(in.Project),
	}
	s.state.Tasks = append(s.state.Tasks, t)
	s.ensureProjectLocked(t.Project)

	if err := s.commitLocked(ctx); err != nil {
		return models.Task{}, err
	}
	return t, nil
}

func normalizePriority(priority string) string {
	for _, p := range []string{models.PriorityLow, models.PriorityMedium, models.PriorityHigh} {
		if strings.EqualFold(strings.TrimSpace(priority), p) {
			return p
		}
	}
	return models.PriorityMedium
}

// SetTaskStatus validates and transitions a task's status. CompletedAt is
// set when the task becomes completed and cleared when it is reopened.
func (s *Store) SetTaskStatus(ctx context.Context, id, status string) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if status != models.TaskStatusOpen && status != models.TaskStatusCompleted {
		return models.Task{}, fmt.Errorf("%w: %s", ErrInvalidTaskStatus, status)
	}

	i := s.taskIndex(id)
	if i < 0 {
		return models.Task{}, ErrNotFound
	}

	t := &s.state.Tasks[i]
	old := t.Status
	t.Status = status

	if status == models.TaskStatusCompleted && old != models.TaskStatusCompleted {
		now := s.now()
		t.CompletedAt = &now
	} else if status != models.TaskStatusCompleted {
		t.CompletedAt = nil
	}

	if err := s.commitLocked(ctx); err != nil {
		return models.Task{}, err
	}
	return *t, nil
}

// DeleteTask removes a task.
func (s *Store) DeleteTask(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.taskIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.state.Tasks = append(s.state.Tasks[:i], s.state.Tasks[i+1:]...)
	return s.commitLocked(ctx)
}

func (s *Store) taskIndex(id string) int {
	for i := range s.state.Tasks {
		if s.state.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
