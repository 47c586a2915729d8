// ABOUTME: Contact MCP tool handlers
// ABOUTME: Implements find_contacts, add_contact and log_activity tools
package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/views"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const dateLayout = "2006-01-02"

type ContactHandlers struct {
	store *store.Store
}

func NewContactHandlers(s *store.Store) *ContactHandlers {
	return &ContactHandlers{store: s}
}

type FindContactsInput struct {
	Query     string   `json:"query,omitempty" jsonschema:"Free-text search over names, email, phone, website, category, segment and notes"`
	Status    string   `json:"status,omitempty" jsonschema:"Exact status: Not Started, In Progress, Responded or Signed Up"`
	Category  string   `json:"category,omitempty" jsonschema:"Exact category"`
	Segment   string   `json:"segment,omitempty" jsonschema:"Exact segment"`
	Project   string   `json:"project,omitempty" jsonschema:"Exact project name"`
	Statuses  []string `json:"statuses,omitempty" jsonschema:"Any of these statuses"`
	TagIDs    []string `json:"tag_ids,omitempty" jsonschema:"Any of these tag ids"`
	Sort      string   `json:"sort,omitempty" jsonschema:"Column to sort by, e.g. vendorName, status, lastContact"`
	Direction string   `json:"direction,omitempty" jsonschema:"asc or desc (default asc)"`
	Limit     int      `json:"limit,omitempty" jsonschema:"Maximum number of results (default 50)"`
}

type FindContactsOutput struct {
	Contacts []ContactOutput `json:"contacts"`
	Matched  int             `json:"matched"`
}

func (h *ContactHandlers) FindContacts(_ context.Context, request *mcp.CallToolRequest, input FindContactsInput) (*mcp.CallToolResult, FindContactsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 50
	}

	filter := views.Filter{
		Search:   input.Query,
		Status:   input.Status,
		Category: input.Category,
		Segment:  input.Segment,
		Project:  input.Project,
		Advanced: views.Advanced{Statuses: input.Statuses, TagIDs: input.TagIDs},
	}

	var sortState views.SortState
	if input.Sort != "" {
		if !views.IsSortable(input.Sort) {
			return nil, FindContactsOutput{}, fmt.Errorf("cannot sort by %q", input.Sort)
		}
		sortState = views.SortState{Column: input.Sort, Direction: views.Asc}
		if strings.EqualFold(input.Direction, views.Desc) {
			sortState.Direction = views.Desc
		}
	}

	matched := views.View(h.store.Contacts(), filter, sortState)
	out := FindContactsOutput{Contacts: []ContactOutput{}, Matched: len(matched)}
	for i := range matched {
		if i == limit {
			break
		}
		out.Contacts = append(out.Contacts, contactToOutput(&matched[i]))
	}
	return nil, out, nil
}

type AddContactInput struct {
	VendorName  string `json:"vendor_name,omitempty" jsonschema:"Organization display name; derived from company, contact, email or phone when blank"`
	CompanyName string `json:"company_name,omitempty" jsonschema:"Company name"`
	ContactName string `json:"contact_name,omitempty" jsonschema:"Person to reach"`
	Title       string `json:"title,omitempty" jsonschema:"Job title"`
	Email       string `json:"email,omitempty" jsonschema:"Email address(es), separated by ; or ,"`
	Phone       string `json:"phone,omitempty" jsonschema:"Phone number(s)"`
	Website     string `json:"website,omitempty" jsonschema:"Website; https:// is added when missing"`
	Category    string `json:"category,omitempty" jsonschema:"Category"`
	Segment     string `json:"segment,omitempty" jsonschema:"Segment"`
	Status      string `json:"status,omitempty" jsonschema:"Pipeline status (default Not Started)"`
	Project     string `json:"project,omitempty" jsonschema:"Project name; created if new"`
	Notes       string `json:"notes,omitempty" jsonschema:"Free-form notes"`
}

func (h *ContactHandlers) AddContact(ctx context.Context, request *mcp.CallToolRequest, input AddContactInput) (*mcp.CallToolResult, ContactOutput, error) {
	contact, err := h.store.AddContact(ctx, models.Contact{
		VendorName:  input.VendorName,
		CompanyName: input.CompanyName,
		ContactName: input.ContactName,
		Title:       input.Title,
		Email:       input.Email,
		Phone:       input.Phone,
		Website:     input.Website,
		Category:    input.Category,
		Segment:     input.Segment,
		Status:      input.Status,
		Project:     input.Project,
		Notes:       input.Notes,
	})
	if err != nil {
		return nil, ContactOutput{}, fmt.Errorf("failed to add contact: %w", err)
	}
	return nil, contactToOutput(&contact), nil
}

type LogActivityInput struct {
	ContactID    string `json:"contact_id" jsonschema:"Contact ID (required)"`
	Type         string `json:"type" jsonschema:"Activity type, e.g. email, call, meeting (required)"`
	Notes        string `json:"notes,omitempty" jsonschema:"What happened"`
	FollowUpDate string `json:"follow_up_date,omitempty" jsonschema:"Follow-up date (YYYY-MM-DD)"`
}

func (h *ContactHandlers) LogActivity(ctx context.Context, request *mcp.CallToolRequest, input LogActivityInput) (*mcp.CallToolResult, ActivityOutput, error) {
	if input.ContactID == "" {
		return nil, ActivityOutput{}, fmt.Errorf("contact_id is required")
	}
	if strings.TrimSpace(input.Type) == "" {
		return nil, ActivityOutput{}, fmt.Errorf("type is required")
	}

	followUp, err := parseDate(input.FollowUpDate)
	if err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("invalid follow_up_date: %w", err)
	}

	activity, err := h.store.LogActivity(ctx, input.ContactID, strings.TrimSpace(input.Type), input.Notes, followUp)
	if err != nil {
		return nil, ActivityOutput{}, fmt.Errorf("failed to log activity: %w", err)
	}
	return nil, activityToOutput(&activity), nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
