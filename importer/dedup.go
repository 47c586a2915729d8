// ABOUTME: Contact deduplication for imports
// ABOUTME: Keys contacts by vendor name plus email and rejects repeats across store and batch
package importer

import (
	"strings"

	"github.com/harperreed/outreach/models"
)

// DedupKey returns the identity key of a contact. It is only defined when
// both the vendor name and the email are present.
func DedupKey(c *models.Contact) (string, bool) {
	vendor := strings.ToLower(strings.TrimSpace(c.VendorName))
	email := strings.ToLower(strings.TrimSpace(c.Email))
	if vendor == "" || email == "" {
		return "", false
	}
	return vendor + "|" + email, true
}

// Matcher tracks identity keys of the existing store and of contacts
// already accepted in the current import batch.
type Matcher struct {
	existing map[string]struct{}
	batch    map[string]struct{}
}

// NewMatcher creates a matcher from existing contacts.
func NewMatcher(contacts []models.Contact) *Matcher {
	m := &Matcher{
		existing: make(map[string]struct{}),
		batch:    make(map[string]struct{}),
	}
	for i := range contacts {
		if key, ok := DedupKey(&contacts[i]); ok {
			m.existing[key] = struct{}{}
		}
	}
	return m
}

// Admit reports whether the contact is new. Contacts without a key always
// pass; a new key is remembered so later rows with it are rejected.
func (m *Matcher) Admit(c *models.Contact) bool {
	key, ok := DedupKey(c)
	if !ok {
		return true
	}
	if _, found := m.existing[key]; found {
		return false
	}
	if _, found := m.batch[key]; found {
		return false
	}
	m.batch[key] = struct{}{}
	return true
}
