// ABOUTME: Project collection reconciliation
// ABOUTME: Keeps one project per case-insensitive name and creates projects referenced by contacts and tasks
package store

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/harperreed/outreach/models"
)

// Projects returns a copy of the project collection.
func (s *Store) Projects() []models.Project {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Project(nil), s.state.Projects...)
}

// FindProjectByName looks a project up by case-insensitive name.
func (s *Store) FindProjectByName(name string) (models.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.projectIndexByName(strings.TrimSpace(name)); i >= 0 {
		return s.state.Projects[i], true
	}
	return models.Project{}, false
}

// EnsureProjectExists returns the project named name, creating an Active
// project when none exists. A blank name returns nil and changes nothing.
func (s *Store) EnsureProjectExists(ctx context.Context, name string) (*models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, created := s.ensureProjectLocked(name)
	if p == nil {
		return nil, nil
	}
	if created {
		if err := s.commitLocked(ctx); err != nil {
			return nil, err
		}
	}
	out := *p
	return &out, nil
}

// ensureProjectLocked finds or appends the named project. Caller holds s.mu.
func (s *Store) ensureProjectLocked(name string) (*models.Project, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, false
	}

	if i := s.projectIndexByName(name); i >= 0 {
		return &s.state.Projects[i], false
	}

	s.state.Projects = append(s.state.Projects, models.Project{
		ID:     s.newID(),
		Name:   name,
		Status: models.ProjectStatusActive,
	})
	return &s.state.Projects[len(s.state.Projects)-1], true
}

// UpsertProject creates or updates a project. The target is the project
// with the given id, else the one with the same name; a match keeps its id.
// A match by name also keeps the stored name.
// Non-empty input values win over stored ones.
func (s *Store) UpsertProject(ctx context.Context, in models.Project) (models.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return models.Project{}, ErrProjectNameRequired
	}

	idx := -1
	if in.ID != "" {
		idx = s.projectIndexByID(in.ID)
	}
	byName := idx < 0
	if byName {
		idx = s.projectIndexByName(name)
	}

	if other := s.projectIndexByName(name); other >= 0 && other != idx {
		return models.Project{}, ErrDuplicateProjectName
	}

	var prev models.Project
	id := in.ID
	if idx >= 0 {
		prev = s.state.Projects[idx]
		id = prev.ID
		// Only an id match renames; a name match keeps the stored spelling.
		if byName {
			name = prev.Name
		}
	}
	if id == "" {
		id = s.newID()
	}

	merged := models.Project{
		ID:          id,
		Name:        name,
		Status:      pick(in.Status, prev.Status),
		Owner:       pick(in.Owner, prev.Owner),
		StartDate:   pick(in.StartDate, prev.StartDate),
		EndDate:     pick(in.EndDate, prev.EndDate),
		Description: pick(in.Description, prev.Description),
	}
	if merged.Status == "" {
		merged.Status = models.ProjectStatusActive
	}

	if idx >= 0 {
		s.state.Projects[idx] = merged
	} else {
		s.state.Projects = append(s.state.Projects, merged)
	}

	if err := s.commitLocked(ctx); err != nil {
		return models.Project{}, err
	}
	return merged, nil
}

func pick(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func (s *Store) projectIndexByName(name string) int {
	if name == "" {
		return -1
	}
	for i := range s.state.Projects {
		if strings.EqualFold(strings.TrimSpace(s.state.Projects[i].Name), name) {
			return i
		}
	}
	return -1
}

func (s *Store) projectIndexByID(id string) int {
	for i := range s.state.Projects {
		if s.state.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

// reconcileLocked creates projects for every name referenced by a contact
// or task. Caller holds s.mu.
func (s *Store) reconcileLocked() {
	for i := range s.state.Contacts {
		s.ensureProjectLocked(s.state.Contacts[i].Project)
	}
	for i := range s.state.Tasks {
		s.ensureProjectLocked(s.state.Tasks[i].Project)
	}
}

// normalizeProjects promotes legacy string entries to records, drops
// entries without a name and keeps the first of any case-insensitive
// duplicate names.
func normalizeProjects(raw []json.RawMessage, newID func() string) []models.Project {
	out := []models.Project{}
	seen := make(map[string]struct{})

	for _, entry := range raw {
		var p models.Project

		var legacy string
		if err := json.Unmarshal(entry, &legacy); err == nil {
			p = models.Project{Name: legacy, Status: models.ProjectStatusActive}
		} else if err := json.Unmarshal(entry, &p); err != nil {
			continue
		}

		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			continue
		}
		key := strings.ToLower(p.Name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if p.ID == "" {
			p.ID = newID()
		}
		out = append(out, p)
	}

	return out
}
