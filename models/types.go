// ABOUTME: Data models for outreach tracker entities
// ABOUTME: Defines Contact, Activity, Task, Project, Tag, Script and the aggregate State
package models

import (
	"strings"
	"time"
)

// Contact status values.
const (
	StatusNotStarted = "Not Started"
	StatusInProgress = "In Progress"
	StatusResponded  = "Responded"
	StatusSignedUp   = "Signed Up"
)

// ContactStatuses lists the valid contact statuses in pipeline order.
var ContactStatuses = []string{StatusNotStarted, StatusInProgress, StatusResponded, StatusSignedUp}

// Task priorities.
const (
	PriorityLow    = "Low"
	PriorityMedium = "Medium"
	PriorityHigh   = "High"
)

// Task statuses.
const (
	TaskStatusOpen      = "open"
	TaskStatusCompleted = "completed"
)

// ProjectStatusActive is assigned to projects created implicitly from a name reference.
const ProjectStatusActive = "Active"

type Contact struct {
	ID                 string     `json:"id"`
	VendorName         string     `json:"vendorName"`
	CompanyName        string     `json:"companyName,omitempty"`
	ContactName        string     `json:"contactName,omitempty"`
	Title              string     `json:"title,omitempty"`
	Email              string     `json:"email,omitempty"`
	Phone              string     `json:"phone,omitempty"`
	Website            string     `json:"website,omitempty"`
	Category           string     `json:"category,omitempty"`
	Segment            string     `json:"segment,omitempty"`
	Status             string     `json:"status"`
	Project            string     `json:"project,omitempty"`
	Tags               []string   `json:"tags"`
	Notes              string     `json:"notes,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	LastContact        *time.Time `json:"lastContact,omitempty"`
	FollowUpDate       *time.Time `json:"followUpDate,omitempty"`
	DealValue          string     `json:"dealValue,omitempty"`
	DealStage          string     `json:"dealStage,omitempty"`
	DecisionMaker      string     `json:"decisionMaker,omitempty"`
	DecisionMakerTitle string     `json:"decisionMakerTitle,omitempty"`
	LinkedIn           string     `json:"linkedin,omitempty"`
}

// OrgName returns the organization display name, preferring vendorName.
func (c *Contact) OrgName() string {
	if strings.TrimSpace(c.VendorName) != "" {
		return c.VendorName
	}
	return c.CompanyName
}

// Emails returns every non-empty email segment in stored order.
func (c *Contact) Emails() []string {
	return splitMulti(c.Email)
}

// Phones returns every non-empty phone segment in stored order.
func (c *Contact) Phones() []string {
	return splitMulti(c.Phone)
}

// PrimaryEmail returns the first email segment.
func (c *Contact) PrimaryEmail() string {
	if emails := c.Emails(); len(emails) > 0 {
		return emails[0]
	}
	return ""
}

// PrimaryPhone returns the first phone segment.
func (c *Contact) PrimaryPhone() string {
	if phones := c.Phones(); len(phones) > 0 {
		return phones[0]
	}
	return ""
}

// HasTag reports whether the contact carries the tag id.
func (c *Contact) HasTag(tagID string) bool {
	for _, t := range c.Tags {
		if t == tagID {
			return true
		}
	}
	return false
}

func splitMulti(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ';' || r == ','
	})
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// NormalizeStatus maps a status string onto the canonical enum value.
// Unknown or empty values become StatusNotStarted.
func NormalizeStatus(status string) string {
	s := strings.TrimSpace(status)
	for _, known := range ContactStatuses {
		if strings.EqualFold(s, known) {
			return known
		}
	}
	return StatusNotStarted
}

// Activity is an immutable log entry of an outreach touch.
type Activity struct {
	ID           string     `json:"id"`
	ContactID    string     `json:"contactId"`
	Type         string     `json:"type"`
	Notes        string     `json:"notes,omitempty"`
	Date         time.Time  `json:"date"`
	FollowUpDate *time.Time `json:"followUpDate,omitempty"`
}

type Task struct {
	ID          string     `json:"id"`
	ContactID   string     `json:"contactId,omitempty"`
	Title       string     `json:"title"`
	Notes       string     `json:"notes,omitempty"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Project     string     `json:"project,omitempty"`
}

// IsOverdue returns true if the task is open and past its due date.
func (t *Task) IsOverdue(now time.Time) bool {
	if t.Status == TaskStatusCompleted || t.DueDate == nil {
		return false
	}
	return now.After(*t.DueDate)
}

type Project struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Owner       string `json:"owner"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Description string `json:"description"`
}

type Tag struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Script is a reusable outreach template.
type Script struct {
	ID       string `json:"id" yaml:"id,omitempty"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category,omitempty" yaml:"category,omitempty"`
	Content  string `json:"content" yaml:"content"`
}

// CustomField is a user-defined contact attribute definition, opaque to the core.
type CustomField struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// State is the whole record store as loaded from and saved to a backend.
type State struct {
	Contacts     []Contact     `json:"contacts"`
	Activities   []Activity    `json:"activities"`
	Scripts      []Script      `json:"scripts"`
	Tags         []Tag         `json:"tags"`
	CustomFields []CustomField `json:"customFields"`
	Tasks        []Task        `json:"tasks"`
	Projects     []Project     `json:"projects"`
}

// Clone returns a copy of the state whose slices do not alias the receiver.
func (s *State) Clone() State {
	out := State{
		Contacts:     cloneSlice(s.Contacts),
		Activities:   cloneSlice(s.Activities),
		Scripts:      cloneSlice(s.Scripts),
		Tags:         cloneSlice(s.Tags),
		CustomFields: cloneSlice(s.CustomFields),
		Tasks:        cloneSlice(s.Tasks),
		Projects:     cloneSlice(s.Projects),
	}
	for i := range out.Contacts {
		out.Contacts[i].Tags = cloneSlice(out.Contacts[i].Tags)
	}
	return out
}

// cloneSlice copies src into a new slice that is never nil, so empty
// collections encode as [] rather than null.
func cloneSlice[T any](src []T) []T {
	out := make([]T, len(src))
	copy(out, src)
	return out
}
