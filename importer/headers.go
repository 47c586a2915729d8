// ABOUTME: CSV header classification into contact field roles
// ABOUTME: Ordered keyword-containment rules, first match wins, unmatched headers become notes
package importer

import "strings"

// Role is the semantic meaning assigned to a CSV column.
type Role int

const (
	RoleNote Role = iota
	RoleCompany
	RolePerson
	RoleEmail
	RolePhone
	RoleWebsite
	RoleCategory
	RoleSegment
	RoleStatus
	RoleProject
)

func (r Role) String() string {
	switch r {
	case RoleCompany:
		return "company"
	case RolePerson:
		return "person"
	case RoleEmail:
		return "email"
	case RolePhone:
		return "phone"
	case RoleWebsite:
		return "website"
	case RoleCategory:
		return "category"
	case RoleSegment:
		return "segment"
	case RoleStatus:
		return "status"
	case RoleProject:
		return "project"
	}
	return "note"
}

// Column is a classified header. Header is the trimmed original text, Lower
// its lower-cased form and Spaced the lower-cased form with underscores and
// hyphens read as spaces.
type Column struct {
	Role   Role
	Header string
	Lower  string
	Spaced string
}

type headerRule struct {
	role  Role
	match func(lower, spaced string) bool
}

func containsAny(keywords ...string) func(lower, spaced string) bool {
	return func(lower, spaced string) bool {
		for _, k := range keywords {
			if strings.Contains(lower, k) || strings.Contains(spaced, k) {
				return true
			}
		}
		return false
	}
}

// headerRules is evaluated top to bottom. Order matters: "Company Email"
// is a company column because the organization rule comes first.
var headerRules = []headerRule{
	{RoleCompany, containsAny("vendor", "business", "organization", "organisation", "org", "company", "account", "brand")},
	{RolePerson, func(lower, spaced string) bool {
		return (strings.Contains(spaced, "contact") && strings.Contains(spaced, "name")) ||
			spaced == "name" ||
			strings.Contains(spaced, "full name")
	}},
	{RoleEmail, containsAny("email", "e-mail")},
	{RolePhone, containsAny("phone", "tel", "telephone", "mobile", "cell")},
	{RoleWebsite, containsAny("website", "domain", "url", "site", "homepage")},
	{RoleCategory, containsAny("category", "industry", "vertical")},
	{RoleSegment, containsAny("segment", "region", "market", "territory")},
	{RoleStatus, containsAny("status", "stage", "pipeline")},
	{RoleProject, containsAny("project", "campaign", "outreach_project")},
	{RoleNote, containsAny("notes", "note", "comment", "comments", "description")},
}

// ClassifyHeader maps a raw header to exactly one role. Headers that match
// no rule are notes labelled with their original text.
func ClassifyHeader(header string) Column {
	trimmed := strings.TrimSpace(header)
	lower := strings.ToLower(trimmed)
	spaced := strings.Join(strings.Fields(strings.NewReplacer("_", " ", "-", " ").Replace(lower)), " ")

	col := Column{Role: RoleNote, Header: trimmed, Lower: lower, Spaced: spaced}
	if lower == "" {
		return col
	}

	for _, rule := range headerRules {
		if rule.match(lower, spaced) {
			col.Role = rule.role
			return col
		}
	}
	return col
}

// ClassifyHeaders classifies every header of a CSV header row.
func ClassifyHeaders(headers []string) []Column {
	cols := make([]Column, len(headers))
	for i, h := range headers {
		cols[i] = ClassifyHeader(h)
	}
	return cols
}
