// ABOUTME: Builds canonical Contact records from classified CSV fields
// ABOUTME: Applies role accumulation, vendor-name fallback chain, website scheme and admission rule
package importer

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
)

const phoneSeparator = " / "

// Fields holds the values collected for one row, keyed by role.
type Fields struct {
	Company  string
	Person   string
	Email    string
	Phone    string
	Website  string
	Category string
	Segment  string
	Status   string
	Project  string
	Notes    []string
}

// Add records one cell value under the column's role.
func (f *Fields) Add(col Column, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	switch col.Role {
	case RoleCompany:
		setFirst(&f.Company, value)
	case RolePerson:
		setFirst(&f.Person, value)
	case RoleEmail:
		setFirst(&f.Email, value)
	case RoleWebsite:
		setFirst(&f.Website, value)
	case RoleCategory:
		setFirst(&f.Category, value)
	case RoleSegment:
		setFirst(&f.Segment, value)
	case RoleStatus:
		setFirst(&f.Status, value)
	case RoleProject:
		setFirst(&f.Project, value)
	case RolePhone:
		f.addPhone(value)
	default:
		f.Notes = append(f.Notes, col.Header+": "+value)
	}
}

func setFirst(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func (f *Fields) addPhone(value string) {
	if f.Phone == "" {
		f.Phone = value
		return
	}
	for _, existing := range strings.Split(f.Phone, phoneSeparator) {
		if existing == value {
			return
		}
	}
	f.Phone += phoneSeparator + value
}

// FieldsFromRow classifies a row's cells by column. Missing trailing cells
// are treated as empty and cells beyond the header are ignored.
func FieldsFromRow(cols []Column, row []string) Fields {
	var f Fields
	for i, col := range cols {
		if i >= len(row) {
			break
		}
		f.Add(col, row[i])
	}
	return f
}

// Normalizer turns collected fields into contacts.
type Normalizer struct {
	now   func() time.Time
	newID func() string
}

// NewNormalizer creates a normalizer using the wall clock and random uuids.
func NewNormalizer() *Normalizer {
	return &Normalizer{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
}

// Normalize builds a contact from fields. The bool is false when the row
// carries nothing that identifies an organization or person.
func (n *Normalizer) Normalize(f Fields) (models.Contact, bool) {
	c := models.Contact{
		CompanyName: f.Company,
		ContactName: f.Person,
		Email:       f.Email,
		Phone:       f.Phone,
		Website:     NormalizeWebsite(f.Website),
		Category:    f.Category,
		Segment:     f.Segment,
		Status:      models.NormalizeStatus(f.Status),
		Project:     f.Project,
		Tags:        []string{},
	}
	if len(f.Notes) > 0 {
		c.Notes = AppendNotes(c.Notes, strings.Join(f.Notes, "\n"))
	}

	ApplyNameFallback(&c)
	if !Admissible(&c) {
		return models.Contact{}, false
	}

	c.ID = n.newID()
	c.CreatedAt = n.now()
	return c, true
}

// ApplyNameFallback fills VendorName from the first non-empty of company
// name, contact name, email local part and phone, then defaults CompanyName
// to VendorName.
func ApplyNameFallback(c *models.Contact) {
	c.VendorName = strings.TrimSpace(c.VendorName)
	if c.VendorName == "" {
		c.VendorName = VendorFallback(c)
	}
	if strings.TrimSpace(c.CompanyName) == "" && c.VendorName != "" {
		c.CompanyName = c.VendorName
	}
}

// VendorFallback returns the first non-empty candidate for the vendor name.
func VendorFallback(c *models.Contact) string {
	return firstNonEmpty(
		c.CompanyName,
		c.ContactName,
		emailLocalPart(c.PrimaryEmail()),
		c.PrimaryPhone(),
	)
}

// Admissible reports whether the contact has at least one identifying field.
func Admissible(c *models.Contact) bool {
	return firstNonEmpty(c.VendorName, c.CompanyName, c.ContactName, c.Email, c.Phone) != ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func emailLocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}

var schemePattern = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]*://`)

// NormalizeWebsite prefixes https:// to values without a scheme after
// stripping leading slashes.
func NormalizeWebsite(website string) string {
	website = strings.TrimSpace(website)
	if website == "" || schemePattern.MatchString(website) {
		return website
	}
	website = strings.TrimLeft(website, "/")
	if website == "" {
		return ""
	}
	return "https://" + website
}

// AppendNotes appends extra text to existing notes on a new line.
func AppendNotes(existing, extra string) string {
	if strings.TrimSpace(extra) == "" {
		return existing
	}
	if strings.TrimSpace(existing) == "" {
		return extra
	}
	return existing + "\n" + extra
}
