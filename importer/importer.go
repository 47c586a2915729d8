// ABOUTME: CSV import pipeline producing candidate contacts for confirmation
// ABOUTME: Parses, classifies, normalizes and deduplicates without touching the store
package importer

import (
	"errors"

	"github.com/harperreed/outreach/models"
)

// ErrTooFewLines is returned when the input has no data row under the header.
var ErrTooFewLines = errors.New("csv needs a header row and at least one data row")

// Preview is the outcome of parsing an import. Candidates are not yet part
// of the store; discarding the preview leaves no side effects.
type Preview struct {
	Columns    []Column         `json:"-"`
	Candidates []models.Contact `json:"candidates"`
	// Sources holds, per candidate, the index of the row it came from.
	Sources    []int `json:"-"`
	Rows       int   `json:"rows"`
	Skipped    int   `json:"skipped"`
	Duplicates int   `json:"duplicates"`
}

// Empty reports whether no row produced a usable candidate.
func (p *Preview) Empty() bool {
	return len(p.Candidates) == 0
}

// Importer runs the parse, classify, normalize and dedup stages.
type Importer struct {
	normalizer *Normalizer
}

// New creates an importer with the default normalizer.
func New() *Importer {
	return &Importer{normalizer: NewNormalizer()}
}

// Preview parses CSV text whose first line is the header row.
func (im *Importer) Preview(text string, existing []models.Contact) (*Preview, error) {
	lines := SplitLines(text)
	if len(lines) < 2 {
		return nil, ErrTooFewLines
	}

	rows := make([][]string, 0, len(lines)-1)
	for _, line := range lines[1:] {
		rows = append(rows, ParseLine(line))
	}

	return im.ImportRows(ParseLine(lines[0]), rows, existing), nil
}

// ImportRows classifies headers and turns each row into a candidate,
// skipping unusable rows and duplicates of existing or earlier rows.
func (im *Importer) ImportRows(headers []string, rows [][]string, existing []models.Contact) *Preview {
	cols := ClassifyHeaders(headers)
	matcher := NewMatcher(existing)

	p := &Preview{Columns: cols, Candidates: []models.Contact{}}
	for i, row := range rows {
		p.Rows++

		contact, ok := im.normalizer.Normalize(FieldsFromRow(cols, row))
		if !ok {
			p.Skipped++
			continue
		}
		if !matcher.Admit(&contact) {
			p.Duplicates++
			continue
		}
		p.Candidates = append(p.Candidates, contact)
		p.Sources = append(p.Sources, i)
	}

	return p
}
