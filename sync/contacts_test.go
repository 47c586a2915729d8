// ABOUTME: Tests for Google Contacts ingestion
// ABOUTME: Uses canned People API pages against an in-memory store
package sync

import (
	"context"
	"errors"
	"testing"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/people/v1"
)

type memBackend struct {
	data []byte
}

func (m *memBackend) Load(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return m.data, nil
}

func (m *memBackend) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(&memBackend{}, nil)
	s.Load(context.Background())
	return s
}

func person(name, email, org string) *people.Person {
	p := &people.Person{ResourceName: "people/" + name}
	if name != "" {
		p.Names = []*people.Name{{DisplayName: name}}
	}
	if email != "" {
		p.EmailAddresses = []*people.EmailAddress{{Value: email}}
	}
	if org != "" {
		p.Organizations = []*people.Organization{{Name: org, Title: "Owner"}}
	}
	return p
}

func TestPersonRowPrefersPrimary(t *testing.T) {
	p := &people.Person{
		Names: []*people.Name{{DisplayName: "Jane Doe"}},
		EmailAddresses: []*people.EmailAddress{
			{Value: "jane@home.io"},
			{Value: "jane@acme.io", Metadata: &people.FieldMetadata{Primary: true}},
		},
		PhoneNumbers: []*people.PhoneNumber{{Value: ""}, {Value: "555-1111"}},
		Urls:         []*people.Url{{Value: "acme.io"}},
		Organizations: []*people.Organization{{Name: "Acme", Title: "CEO"}},
		Biographies:   []*people.Biography{{Value: "met at expo"}},
	}

	row := PersonRow(p)
	require.Len(t, row, len(Headers))
	assert.Equal(t, []string{"Acme", "Jane Doe", "jane@acme.io", "555-1111", "acme.io", "CEO", "met at expo"}, row)
}

func TestPreviewUsesImportRules(t *testing.T) {
	s := newStore(t)
	_, err := s.AddContact(context.Background(), models.Contact{VendorName: "Acme", Email: "jane@acme.io"})
	require.NoError(t, err)

	preview := Preview(s, []*people.Person{
		person("Jane", "JANE@acme.io", "Acme"),
		person("Bob", "bob@beta.io", "Beta"),
		person("", "", ""),
		nil,
	})

	assert.Equal(t, 3, preview.Rows)
	assert.Equal(t, 1, preview.Duplicates)
	assert.Equal(t, 1, preview.Skipped)
	require.Len(t, preview.Candidates, 1)

	bob := preview.Candidates[0]
	assert.Equal(t, "Beta", bob.VendorName)
	assert.Equal(t, "Bob", bob.ContactName)
	assert.Contains(t, bob.Notes, "Job Title: Owner")
	assert.Equal(t, "Owner", bob.Title)
	assert.Equal(t, models.StatusNotStarted, bob.Status)
}

func TestImportContactsFollowsPages(t *testing.T) {
	s := newStore(t)
	pages := map[string]*people.ListConnectionsResponse{
		"": {
			Connections:   []*people.Person{person("Ann", "ann@a.io", "A Co")},
			NextPageToken: "p2",
		},
		"p2": {
			Connections: []*people.Person{person("Ben", "ben@b.io", "B Co"), person("Ann", "ann@a.io", "A Co")},
		},
	}
	var tokens []string
	fetch := func(ctx context.Context, token string) (*people.ListConnectionsResponse, error) {
		tokens = append(tokens, token)
		return pages[token], nil
	}

	preview, added, err := ImportContacts(context.Background(), s, fetch, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, []string{"", "p2"}, tokens)
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, preview.Duplicates)
	assert.Len(t, s.Contacts(), 2)
	assert.Equal(t, "3 fetched, 2 added, 1 duplicates", Summary(preview, added))

	// A second run finds nothing new.
	_, added, err = ImportContacts(context.Background(), s, fetch, zerolog.Nop())
	require.NoError(t, err)
	assert.Equal(t, 0, added)
}

func TestImportContactsFetchError(t *testing.T) {
	s := newStore(t)
	boom := errors.New("quota exceeded")
	fetch := func(ctx context.Context, token string) (*people.ListConnectionsResponse, error) {
		return nil, boom
	}

	_, _, err := ImportContacts(context.Background(), s, fetch, zerolog.Nop())
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Contacts())
}
