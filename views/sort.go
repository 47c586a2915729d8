// ABOUTME: Contact ordering for list views
// ABOUTME: Default composite order or a single explicit column with toggled direction
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/harperreed/outreach/models"
)

// Sort directions.
const (
	Asc  = "asc"
	Desc = "desc"
)

// Sortable columns.
const (
	ColumnVendorName   = "vendorName"
	ColumnCompanyName  = "companyName"
	ColumnContactName  = "contactName"
	ColumnTitle        = "title"
	ColumnEmail        = "email"
	ColumnPhone        = "phone"
	ColumnWebsite      = "website"
	ColumnCategory     = "category"
	ColumnSegment      = "segment"
	ColumnStatus       = "status"
	ColumnProject      = "project"
	ColumnLastContact  = "lastContact"
	ColumnCreatedAt    = "createdAt"
	ColumnFollowUpDate = "followUpDate"
)

var stringColumns = map[string]func(*models.Contact) string{
	ColumnVendorName:  func(c *models.Contact) string { return c.VendorName },
	ColumnCompanyName: func(c *models.Contact) string { return c.CompanyName },
	ColumnContactName: func(c *models.Contact) string { return c.ContactName },
	ColumnTitle:       func(c *models.Contact) string { return c.Title },
	ColumnEmail:       func(c *models.Contact) string { return c.Email },
	ColumnPhone:       func(c *models.Contact) string { return c.Phone },
	ColumnWebsite:     func(c *models.Contact) string { return c.Website },
	ColumnCategory:    func(c *models.Contact) string { return c.Category },
	ColumnSegment:     func(c *models.Contact) string { return c.Segment },
	ColumnStatus:      func(c *models.Contact) string { return c.Status },
	ColumnProject:     func(c *models.Contact) string { return c.Project },
}

var timeColumns = map[string]func(*models.Contact) time.Time{
	ColumnLastContact:  func(c *models.Contact) time.Time { return orEpoch(c.LastContact) },
	ColumnCreatedAt:    func(c *models.Contact) time.Time { return c.CreatedAt },
	ColumnFollowUpDate: func(c *models.Contact) time.Time { return orEpoch(c.FollowUpDate) },
}

func orEpoch(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0)
	}
	return *t
}

// IsSortable reports whether column can be used for an explicit sort.
func IsSortable(column string) bool {
	_, s := stringColumns[column]
	_, t := timeColumns[column]
	return s || t
}

// SortState is the explicit sort selection. An empty Column means the
// default composite order.
type SortState struct {
	Column    string `json:"column,omitempty"`
	Direction string `json:"direction,omitempty"`
}

// Toggle returns the state after selecting column: the same column flips
// direction, a different column starts ascending.
func (s SortState) Toggle(column string) SortState {
	if column == s.Column && s.Column != "" {
		if s.Direction == Desc {
			return SortState{Column: column, Direction: Asc}
		}
		return SortState{Column: column, Direction: Desc}
	}
	return SortState{Column: column, Direction: Asc}
}

// Sort returns a sorted copy of contacts.
func Sort(contacts []models.Contact, state SortState) []models.Contact {
	out := append([]models.Contact(nil), contacts...)

	cmp := compareDefault
	if IsSortable(state.Column) {
		cmp = explicitComparator(state)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return cmp(&out[i], &out[j]) < 0
	})
	return out
}

// compareDefault orders by organization name with blanks last, then by
// creation time, then contact name, then id so equal rows are deterministic.
func compareDefault(a, b *models.Contact) int {
	orgA := orgKey(a)
	orgB := orgKey(b)
	switch {
	case orgA == "" && orgB != "":
		return 1
	case orgA != "" && orgB == "":
		return -1
	}
	if c := strings.Compare(orgA, orgB); c != 0 {
		return c
	}
	if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
		return c
	}
	if c := strings.Compare(strings.ToLower(a.ContactName), strings.ToLower(b.ContactName)); c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}

func orgKey(c *models.Contact) string {
	return strings.ToLower(strings.TrimSpace(c.OrgName()))
}

// explicitComparator breaks ties with the default order, reversed along
// with the column so descending is the exact reverse of ascending.
func explicitComparator(state SortState) func(a, b *models.Contact) int {
	sign := 1
	if state.Direction == Desc {
		sign = -1
	}

	if get, ok := timeColumns[state.Column]; ok {
		return func(a, b *models.Contact) int {
			if c := get(a).Compare(get(b)); c != 0 {
				return sign * c
			}
			return sign * compareDefault(a, b)
		}
	}

	get := stringColumns[state.Column]
	return func(a, b *models.Contact) int {
		if c := strings.Compare(strings.ToLower(get(a)), strings.ToLower(get(b))); c != 0 {
			return sign * c
		}
		return sign * compareDefault(a, b)
	}
}

// View filters then sorts contacts.
func View(contacts []models.Contact, f Filter, s SortState) []models.Contact {
	return Sort(Apply(contacts, f), s)
}
