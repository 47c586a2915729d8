// ABOUTME: Contact operations on the record store
// ABOUTME: Quick-add, update, delete with activity cascade, bulk edits and import confirmation
package store

import (
	"context"
	"strings"

	"github.com/harperreed/outreach/importer"
	"github.com/harperreed/outreach/models"
)

// Contacts returns a copy of the contact collection.
func (s *Store) Contacts() []models.Contact {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone().Contacts
}

// FindContact returns the contact with the given id.
func (s *Store) FindContact(id string) (models.Contact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.contactIndex(id); i >= 0 {
		c := s.state.Contacts[i]
		c.Tags = append([]string(nil), c.Tags...)
		return c, true
	}
	return models.Contact{}, false
}

// AddContact admits a contact created by quick-add or the full form. The
// vendor name fallback chain and admission rule match CSV import.
func (s *Store) AddContact(ctx context.Context, c models.Contact) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.prepareContact(&c); err != nil {
		return models.Contact{}, err
	}
	if c.ID == "" {
		c.ID = s.newID()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.now()
	}

	s.state.Contacts = append(s.state.Contacts, c)
	s.ensureProjectLocked(c.Project)

	if err := s.commitLocked(ctx); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

// UpdateContact replaces the stored contact with the same id.
func (s *Store) UpdateContact(ctx context.Context, c models.Contact) (models.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contactIndex(c.ID)
	if i < 0 {
		return models.Contact{}, ErrNotFound
	}
	if err := s.prepareContact(&c); err != nil {
		return models.Contact{}, err
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = s.state.Contacts[i].CreatedAt
	}

	s.state.Contacts[i] = c
	s.ensureProjectLocked(c.Project)

	if err := s.commitLocked(ctx); err != nil {
		return models.Contact{}, err
	}
	return c, nil
}

func (s *Store) prepareContact(c *models.Contact) error {
	importer.ApplyNameFallback(c)
	if !importer.Admissible(c) {
		return ErrContactUnidentified
	}
	c.Website = importer.NormalizeWebsite(c.Website)
	c.Status = models.NormalizeStatus(c.Status)
	c.Project = strings.TrimSpace(c.Project)
	if c.Tags == nil {
		c.Tags = []string{}
	}
	return nil
}

// DeleteContact removes a contact and every activity logged against it.
func (s *Store) DeleteContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.contactIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.state.Contacts = append(s.state.Contacts[:i], s.state.Contacts[i+1:]...)

	kept := s.state.Activities[:0]
	for _, a := range s.state.Activities {
		if a.ContactID != id {
			kept = append(kept, a)
		}
	}
	s.state.Activities = kept

	return s.commitLocked(ctx)
}

// BulkUpdateStatus sets the status of every listed contact and returns how
// many were changed. Unknown ids are ignored.
func (s *Store) BulkUpdateStatus(ctx context.Context, ids []string, status string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status = models.NormalizeStatus(status)
	changed := 0
	for _, id := range ids {
		if i := s.contactIndex(id); i >= 0 && s.state.Contacts[i].Status != status {
			s.state.Contacts[i].Status = status
			changed++
		}
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.commitLocked(ctx)
}

// BulkAddTag adds a tag id to every listed contact that lacks it.
func (s *Store) BulkAddTag(ctx context.Context, ids []string, tagID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tagIndex(tagID) < 0 {
		return 0, ErrNotFound
	}

	changed := 0
	for _, id := range ids {
		i := s.contactIndex(id)
		if i < 0 || s.state.Contacts[i].HasTag(tagID) {
			continue
		}
		s.state.Contacts[i].Tags = append(s.state.Contacts[i].Tags, tagID)
		changed++
	}
	if changed == 0 {
		return 0, nil
	}
	return changed, s.commitLocked(ctx)
}

// CommitImport appends confirmed import candidates. Candidates that became
// duplicates since the preview was built are dropped. Returns the number
// of contacts added.
func (s *Store) CommitImport(ctx context.Context, candidates []models.Contact) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matcher := importer.NewMatcher(s.state.Contacts)
	added := 0
	for _, c := range candidates {
		if !matcher.Admit(&c) {
			continue
		}
		if c.Tags == nil {
			c.Tags = []string{}
		}
		s.state.Contacts = append(s.state.Contacts, c)
		s.ensureProjectLocked(c.Project)
		added++
	}
	if added == 0 {
		return 0, nil
	}
	return added, s.commitLocked(ctx)
}

func (s *Store) contactIndex(id string) int {
	for i := range s.state.Contacts {
		if s.state.Contacts[i].ID == id {
			return i
		}
	}
	return -1
}
