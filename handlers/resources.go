// ABOUTME: MCP resource handlers for exposing outreach data
// ABOUTME: Provides read-only JSON views of contacts, projects and the activity log via outreach:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const resourceScheme = "outreach://"

type ResourceHandlers struct {
	store *store.Store
}

func NewResourceHandlers(s *store.Store) *ResourceHandlers {
	return &ResourceHandlers{store: s}
}

// ReadResource handles resource read requests
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")

	switch parts[0] {
	case "contacts":
		if len(parts) == 1 || parts[1] == "" {
			return jsonResource(uri, views.Sort(h.store.Contacts(), views.SortState{}))
		}
		contact, ok := h.store.FindContact(parts[1])
		if !ok {
			return nil, mcp.ResourceNotFoundError(uri)
		}
		return jsonResource(uri, map[string]interface{}{
			"contact":    contact,
			"activities": h.store.ActivitiesFor(contact.ID),
		})

	case "projects":
		return jsonResource(uri, h.store.Projects())

	case "activities":
		return jsonResource(uri, h.store.VisibleActivities())

	default:
		return nil, mcp.ResourceNotFoundError(uri)
	}
}

func jsonResource(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
