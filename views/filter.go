// ABOUTME: Contact filtering for list views
// ABOUTME: Conjunctive free-text, single-value and multi-value filters that preserve input order
package views

import (
	"strings"

	"github.com/harperreed/outreach/models"
)

// Advanced holds multi-value filters. A contact passes a non-empty list when
// its field value is a member of it; tags pass when any tag id is listed.
type Advanced struct {
	Statuses   []string `json:"statuses,omitempty"`
	Categories []string `json:"categories,omitempty"`
	Segments   []string `json:"segments,omitempty"`
	TagIDs     []string `json:"tagIds,omitempty"`
}

// Filter describes the contact list filter state. Empty values are no-ops.
type Filter struct {
	Search   string   `json:"searchText,omitempty"`
	Status   string   `json:"status,omitempty"`
	Category string   `json:"category,omitempty"`
	Segment  string   `json:"segment,omitempty"`
	Project  string   `json:"project,omitempty"`
	Advanced Advanced `json:"advanced"`
}

// IsZero reports whether the filter restricts nothing.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" &&
		f.Status == "" && f.Category == "" && f.Segment == "" && f.Project == "" &&
		len(f.Advanced.Statuses) == 0 && len(f.Advanced.Categories) == 0 &&
		len(f.Advanced.Segments) == 0 && len(f.Advanced.TagIDs) == 0
}

// Apply returns the contacts matching every active filter, in input order.
func Apply(contacts []models.Contact, f Filter) []models.Contact {
	search := strings.ToLower(strings.TrimSpace(f.Search))

	out := make([]models.Contact, 0, len(contacts))
	for i := range contacts {
		c := &contacts[i]
		if search != "" && !matchesSearch(c, search) {
			continue
		}
		if !matchesValue(c.Status, f.Status) ||
			!matchesValue(c.Category, f.Category) ||
			!matchesValue(c.Segment, f.Segment) ||
			!matchesValue(c.Project, f.Project) {
			continue
		}
		if !inList(c.Status, f.Advanced.Statuses) ||
			!inList(c.Category, f.Advanced.Categories) ||
			!inList(c.Segment, f.Advanced.Segments) {
			continue
		}
		if !anyTag(c, f.Advanced.TagIDs) {
			continue
		}
		out = append(out, *c)
	}
	return out
}

func matchesSearch(c *models.Contact, search string) bool {
	for _, field := range []string{c.VendorName, c.ContactName, c.CompanyName, c.Email, c.Phone} {
		if strings.Contains(strings.ToLower(field), search) {
			return true
		}
	}
	return false
}

func matchesValue(value, want string) bool {
	return want == "" || value == want
}

func inList(value string, list []string) bool {
	if len(list) == 0 {
		return true
	}
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

func anyTag(c *models.Contact, tagIDs []string) bool {
	if len(tagIDs) == 0 {
		return true
	}
	for _, id := range tagIDs {
		if c.HasTag(id) {
			return true
		}
	}
	return false
}
