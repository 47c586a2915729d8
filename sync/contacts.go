// ABOUTME: Google Contacts ingestion through the CSV import pipeline
// ABOUTME: Converts People API connections to rows so classify, normalize and dedup rules apply
package sync

import (
	"context"
	"fmt"
	"strings"

	"github.com/harperreed/outreach/importer"
	"github.com/harperreed/outreach/store"
	"github.com/rs/zerolog"
	"google.golang.org/api/people/v1"
)

// Headers is the synthetic header row fed to the importer.
var Headers = []string{"Business", "Name", "Email", "Phone", "Website", "Job Title", "Notes"}

// PersonRow flattens a person into a row matching Headers. Primary values
// win over the first non-empty one.
func PersonRow(person *people.Person) []string {
	var name, email, phone, website, company, title, notes string

	if len(person.Names) > 0 {
		name = person.Names[0].DisplayName
	}
	for _, e := range person.EmailAddresses {
		email = pickPrimary(email, e.Value, e.Metadata)
	}
	for _, p := range person.PhoneNumbers {
		phone = pickPrimary(phone, p.Value, p.Metadata)
	}
	for _, u := range person.Urls {
		website = pickPrimary(website, u.Value, u.Metadata)
	}
	if len(person.Organizations) > 0 {
		company = person.Organizations[0].Name
		title = person.Organizations[0].Title
	}
	if len(person.Biographies) > 0 {
		notes = person.Biographies[0].Value
	}

	return []string{company, name, email, phone, website, title, notes}
}

func pickPrimary(current, value string, meta *people.FieldMetadata) string {
	if value == "" {
		return current
	}
	if current == "" || (meta != nil && meta.Primary) {
		return value
	}
	return current
}

// PersonRows converts every person into a row.
func PersonRows(persons []*people.Person) [][]string {
	rows := make([][]string, 0, len(persons))
	for _, p := range persons {
		if p == nil {
			continue
		}
		rows = append(rows, PersonRow(p))
	}
	return rows
}

// Preview runs the connections through the importer against the store's
// current contacts. Nothing is saved. The header table reads "Job Title" as
// a note, so the organization title is also copied onto Contact.Title.
func Preview(s *store.Store, persons []*people.Person) *importer.Preview {
	kept := make([]*people.Person, 0, len(persons))
	for _, p := range persons {
		if p != nil {
			kept = append(kept, p)
		}
	}

	preview := importer.New().ImportRows(Headers, PersonRows(kept), s.Contacts())
	for i, src := range preview.Sources {
		if orgs := kept[src].Organizations; len(orgs) > 0 {
			preview.Candidates[i].Title = strings.TrimSpace(orgs[0].Title)
		}
	}
	return preview
}

// ImportContacts fetches every connection and commits the new ones.
func ImportContacts(ctx context.Context, s *store.Store, fetch PageFetcher, log zerolog.Logger) (*importer.Preview, int, error) {
	persons, err := FetchAll(ctx, fetch)
	if err != nil {
		return nil, 0, err
	}
	log.Info().Int("fetched", len(persons)).Msg("fetched google contacts")

	preview := Preview(s, persons)
	if preview.Empty() {
		return preview, 0, nil
	}

	added, err := s.CommitImport(ctx, preview.Candidates)
	if err != nil {
		return preview, 0, fmt.Errorf("failed to import contacts: %w", err)
	}
	log.Info().
		Int("added", added).
		Int("duplicates", preview.Duplicates).
		Int("skipped", preview.Skipped).
		Msg("imported google contacts")
	return preview, added, nil
}

// Summary renders a one-line result for the CLI.
func Summary(preview *importer.Preview, added int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d fetched, %d added", preview.Rows, added)
	if preview.Duplicates > 0 {
		fmt.Fprintf(&b, ", %d duplicates", preview.Duplicates)
	}
	if preview.Skipped > 0 {
		fmt.Fprintf(&b, ", %d skipped", preview.Skipped)
	}
	return b.String()
}
