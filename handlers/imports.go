// ABOUTME: CSV import MCP tool handlers
// ABOUTME: Preview holds candidates server-side until confirm_csv_import commits them
package handlers

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/importer"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type ImportHandlers struct {
	store    *store.Store
	importer *importer.Importer

	mu      sync.Mutex
	pending map[string][]models.Contact
}

func NewImportHandlers(s *store.Store) *ImportHandlers {
	return &ImportHandlers{
		store:    s,
		importer: importer.New(),
		pending:  make(map[string][]models.Contact),
	}
}

type PreviewCSVImportInput struct {
	CSV  string `json:"csv,omitempty" jsonschema:"CSV text with a header row"`
	Path string `json:"path,omitempty" jsonschema:"Path to a CSV file (used when csv is empty)"`
}

type PreviewCSVImportOutput struct {
	PreviewID  string          `json:"preview_id"`
	Rows       int             `json:"rows"`
	Skipped    int             `json:"skipped"`
	Duplicates int             `json:"duplicates"`
	Candidates []ContactOutput `json:"candidates"`
}

// PreviewCSVImport parses and deduplicates without touching the store.
func (h *ImportHandlers) PreviewCSVImport(_ context.Context, request *mcp.CallToolRequest, input PreviewCSVImportInput) (*mcp.CallToolResult, PreviewCSVImportOutput, error) {
	text := input.CSV
	if text == "" {
		if input.Path == "" {
			return nil, PreviewCSVImportOutput{}, fmt.Errorf("csv or path is required")
		}
		data, err := os.ReadFile(input.Path)
		if err != nil {
			return nil, PreviewCSVImportOutput{}, fmt.Errorf("failed to read %s: %w", input.Path, err)
		}
		text = string(data)
	}

	preview, err := h.importer.Preview(text, h.store.Contacts())
	if err != nil {
		return nil, PreviewCSVImportOutput{}, err
	}

	out := PreviewCSVImportOutput{
		Rows:       preview.Rows,
		Skipped:    preview.Skipped,
		Duplicates: preview.Duplicates,
		Candidates: []ContactOutput{},
	}
	for i := range preview.Candidates {
		out.Candidates = append(out.Candidates, contactToOutput(&preview.Candidates[i]))
	}
	if !preview.Empty() {
		out.PreviewID = uuid.New().String()
		h.mu.Lock()
		h.pending[out.PreviewID] = preview.Candidates
		h.mu.Unlock()
	}
	return nil, out, nil
}

type ConfirmCSVImportInput struct {
	PreviewID string `json:"preview_id" jsonschema:"ID returned by preview_csv_import (required)"`
}

type ConfirmCSVImportOutput struct {
	Added int `json:"added"`
}

// ConfirmCSVImport commits a held preview. Each preview can be confirmed once.
func (h *ImportHandlers) ConfirmCSVImport(ctx context.Context, request *mcp.CallToolRequest, input ConfirmCSVImportInput) (*mcp.CallToolResult, ConfirmCSVImportOutput, error) {
	h.mu.Lock()
	candidates, ok := h.pending[input.PreviewID]
	delete(h.pending, input.PreviewID)
	h.mu.Unlock()

	if !ok {
		return nil, ConfirmCSVImportOutput{}, fmt.Errorf("unknown preview_id %q", input.PreviewID)
	}

	added, err := h.store.CommitImport(ctx, candidates)
	if err != nil {
		return nil, ConfirmCSVImportOutput{}, fmt.Errorf("failed to import contacts: %w", err)
	}
	return nil, ConfirmCSVImportOutput{Added: added}, nil
}
