package importer

import (
	"testing"
	"time"

	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testNormalizer() *Normalizer {
	n := 0
	return &Normalizer{
		now: func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) },
		newID: func() string {
			n++
			return "id-" + string(rune('0'+n))
		},
	}
}

func TestFieldsAccumulation(t *testing.T) {
	cols := ClassifyHeaders([]string{"Company", "Vendor", "Phone", "Mobile", "Cell", "Notes", "Zip"})
	f := FieldsFromRow(cols, []string{"Acme", "Ignored Co", "555-1111", "555-2222", "555-1111", "call after 5", "60601"})

	assert.Equal(t, "Acme", f.Company)
	assert.Equal(t, "555-1111 / 555-2222", f.Phone)
	assert.Equal(t, []string{"Notes: call after 5", "Zip: 60601"}, f.Notes)
}

func TestFieldsShortRow(t *testing.T) {
	cols := ClassifyHeaders([]string{"Company", "Email", "Phone"})
	f := FieldsFromRow(cols, []string{"Acme"})
	assert.Equal(t, "Acme", f.Company)
	assert.Empty(t, f.Email)
	assert.Empty(t, f.Phone)
}

func TestVendorFallbackChain(t *testing.T) {
	tests := []struct {
		name     string
		fields   Fields
		expected string
	}{
		{"company wins", Fields{Company: "Acme", Person: "Ann", Email: "ann@acme.com", Phone: "1"}, "Acme"},
		{"person next", Fields{Person: "Ann", Email: "ann@acme.com", Phone: "1"}, "Ann"},
		{"email local part", Fields{Email: "ann@acme.com", Phone: "1"}, "ann"},
		{"phone last", Fields{Phone: "555-0000"}, "555-0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, ok := testNormalizer().Normalize(tt.fields)
			require.True(t, ok)
			assert.Equal(t, tt.expected, c.VendorName)
			assert.Equal(t, tt.expected, c.CompanyName, "company name defaults to vendor name")
		})
	}
}

func TestNormalizeAdmissionRule(t *testing.T) {
	_, ok := testNormalizer().Normalize(Fields{Category: "Food", Segment: "West"})
	assert.False(t, ok, "row with only category/segment must be skipped")

	_, ok = testNormalizer().Normalize(Fields{Notes: []string{"Notes: hi"}})
	assert.False(t, ok)
}

func TestNormalizeContact(t *testing.T) {
	c, ok := testNormalizer().Normalize(Fields{
		Company: "Acme",
		Website: "//acme.com",
		Status:  "responded",
		Project: "Ski Expo",
		Notes:   []string{"Notes: first", "Zip: 60601"},
	})
	require.True(t, ok)

	assert.Equal(t, "id-1", c.ID)
	assert.Equal(t, "https://acme.com", c.Website)
	assert.Equal(t, models.StatusResponded, c.Status)
	assert.Equal(t, "Ski Expo", c.Project)
	assert.Equal(t, "Notes: first\nZip: 60601", c.Notes)
	assert.Equal(t, []string{}, c.Tags)
	assert.Equal(t, 2024, c.CreatedAt.Year())
}

func TestNormalizeWebsite(t *testing.T) {
	tests := map[string]string{
		"acme.com":             "https://acme.com",
		"///acme.com/x":        "https://acme.com/x",
		"http://acme.com":      "http://acme.com",
		"HTTPS://acme.com":     "HTTPS://acme.com",
		"ftp://files.acme.com": "ftp://files.acme.com",
		"":                     "",
		"//":                   "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeWebsite(in), "input %q", in)
	}
}

func TestAppendNotes(t *testing.T) {
	assert.Equal(t, "a\nb", AppendNotes("a", "b"))
	assert.Equal(t, "b", AppendNotes("", "b"))
	assert.Equal(t, "a", AppendNotes("a", " "))
}
