// ABOUTME: Tool output shapes with timestamps rendered as strings
// ABOUTME: Converts store records into MCP tool results
package handlers

import (
	"time"

	"github.com/harperreed/outreach/models"
)

type ContactOutput struct {
	ID           string   `json:"id"`
	VendorName   string   `json:"vendor_name"`
	CompanyName  string   `json:"company_name,omitempty"`
	ContactName  string   `json:"contact_name,omitempty"`
	Title        string   `json:"title,omitempty"`
	Email        string   `json:"email,omitempty"`
	Phone        string   `json:"phone,omitempty"`
	Website      string   `json:"website,omitempty"`
	Category     string   `json:"category,omitempty"`
	Segment      string   `json:"segment,omitempty"`
	Status       string   `json:"status"`
	Project      string   `json:"project,omitempty"`
	Tags         []string `json:"tags"`
	Notes        string   `json:"notes,omitempty"`
	CreatedAt    string   `json:"created_at"`
	LastContact  *string  `json:"last_contact,omitempty"`
	FollowUpDate *string  `json:"follow_up_date,omitempty"`
}

func contactToOutput(c *models.Contact) ContactOutput {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return ContactOutput{
		ID:           c.ID,
		VendorName:   c.VendorName,
		CompanyName:  c.CompanyName,
		ContactName:  c.ContactName,
		Title:        c.Title,
		Email:        c.Email,
		Phone:        c.Phone,
		Website:      c.Website,
		Category:     c.Category,
		Segment:      c.Segment,
		Status:       c.Status,
		Project:      c.Project,
		Tags:         tags,
		Notes:        c.Notes,
		CreatedAt:    c.CreatedAt.Format(time.RFC3339),
		LastContact:  formatTime(c.LastContact, time.RFC3339),
		FollowUpDate: formatTime(c.FollowUpDate, dateLayout),
	}
}

type ActivityOutput struct {
	ID           string  `json:"id"`
	ContactID    string  `json:"contact_id"`
	Type         string  `json:"type"`
	Notes        string  `json:"notes,omitempty"`
	Date         string  `json:"date"`
	FollowUpDate *string `json:"follow_up_date,omitempty"`
}

func activityToOutput(a *models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:           a.ID,
		ContactID:    a.ContactID,
		Type:         a.Type,
		Notes:        a.Notes,
		Date:         a.Date.Format(time.RFC3339),
		FollowUpDate: formatTime(a.FollowUpDate, dateLayout),
	}
}

type TaskOutput struct {
	ID          string  `json:"id"`
	ContactID   string  `json:"contact_id,omitempty"`
	Title       string  `json:"title"`
	Notes       string  `json:"notes,omitempty"`
	Priority    string  `json:"priority"`
	Status      string  `json:"status"`
	Project     string  `json:"project,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	CreatedAt   string  `json:"created_at"`
	CompletedAt *string `json:"completed_at,omitempty"`
}

func taskToOutput(t *models.Task) TaskOutput {
	return TaskOutput{
		ID:          t.ID,
		ContactID:   t.ContactID,
		Title:       t.Title,
		Notes:       t.Notes,
		Priority:    t.Priority,
		Status:      t.Status,
		Project:     t.Project,
		DueDate:     formatTime(t.DueDate, dateLayout),
		CreatedAt:   t.CreatedAt.Format(time.RFC3339),
		CompletedAt: formatTime(t.CompletedAt, time.RFC3339),
	}
}

func formatTime(t *time.Time, layout string) *string {
	if t == nil {
		return nil
	}
	s := t.Format(layout)
	return &s
}
