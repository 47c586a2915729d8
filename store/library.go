// ABOUTME: Tag and outreach script operations on the record store
// ABOUTME: Loads script templates from YAML files
package store

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/harperreed/outreach/models"
	"gopkg.in/yaml.v3"
)

// Tags returns a copy of the tag collection.
func (s *Store) Tags() []models.Tag {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Tag(nil), s.state.Tags...)
}

// AddTag returns the tag with the same case-insensitive name or creates it.
func (s *Store) AddTag(ctx context.Context, name, color string) (models.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Tag{}, ErrTagNameRequired
	}
	for _, t := range s.state.Tags {
		if strings.EqualFold(t.Name, name) {
			return t, nil
		}
	}

	t := models.Tag{ID: s.newID(), Name: name, Color: color}
	s.state.Tags = append(s.state.Tags, t)
	if err := s.commitLocked(ctx); err != nil {
		return models.Tag{}, err
	}
	return t, nil
}

func (s *Store) tagIndex(id string) int {
	for i := range s.state.Tags {
		if s.state.Tags[i].ID == id {
			return i
		}
	}
	return -1
}

// Scripts returns a copy of the script collection.
func (s *Store) Scripts() []models.Script {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Script(nil), s.state.Scripts...)
}

// AddScript stores a reusable outreach script.
func (s *Store) AddScript(ctx context.Context, sc models.Script) (models.Script, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.appendScriptLocked(&sc); err != nil {
		return models.Script{}, err
	}
	if err := s.commitLocked(ctx); err != nil {
		return models.Script{}, err
	}
	return sc, nil
}

func (s *Store) appendScriptLocked(sc *models.Script) error {
	sc.Name = strings.TrimSpace(sc.Name)
	if sc.Name == "" {
		return ErrScriptNameRequired
	}
	if sc.ID == "" {
		sc.ID = s.newID()
	}
	s.state.Scripts = append(s.state.Scripts, *sc)
	return nil
}

// DeleteScript removes a script.
func (s *Store) DeleteScript(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Scripts {
		if s.state.Scripts[i].ID == id {
			s.state.Scripts = append(s.state.Scripts[:i], s.state.Scripts[i+1:]...)
			return s.commitLocked(ctx)
		}
	}
	return ErrNotFound
}

type scriptFile struct {
	Scripts []models.Script `yaml:"scripts"`
}

// ImportScripts reads a YAML document of the form
//
//	scripts:
//	  - name: Intro email
//	    category: email
//	    content: |
//	      Hi {{name}}, ...
//
// and appends every named script. Entries without a name are skipped.
func (s *Store) ImportScripts(ctx context.Context, r io.Reader) (int, error) {
	var file scriptFile
	if err := yaml.NewDecoder(r).Decode(&file); err != nil {
		return 0, fmt.Errorf("failed to parse scripts: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	added := 0
	for i := range file.Scripts {
		if err := s.appendScriptLocked(&file.Scripts[i]); err != nil {
			continue
		}
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.commitLocked(ctx)
}
