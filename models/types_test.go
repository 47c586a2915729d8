// ABOUTME: Tests for outreach data models
// ABOUTME: Validates multi-value contact fields, status normalization and state cloning
package models

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestContactMultiValueFields(t *testing.T) {
	c := &Contact{
		Email: " a@acme.com ; b@acme.com,c@acme.com",
		Phone: "555-1111",
	}

	emails := c.Emails()
	if len(emails) != 3 {
		t.Fatalf("expected 3 emails, got %d: %v", len(emails), emails)
	}
	if c.PrimaryEmail() != "a@acme.com" {
		t.Errorf("expected primary a@acme.com, got %q", c.PrimaryEmail())
	}
	if c.PrimaryPhone() != "555-1111" {
		t.Errorf("expected primary phone 555-1111, got %q", c.PrimaryPhone())
	}

	empty := &Contact{}
	if empty.PrimaryEmail() != "" || empty.PrimaryPhone() != "" {
		t.Error("expected empty primaries for empty contact")
	}
}

func TestContactOrgName(t *testing.T) {
	tests := []struct {
		vendor, company, expected string
	}{
		{"Acme", "Acme Inc", "Acme"},
		{"", "Acme Inc", "Acme Inc"},
		{"   ", "Globex", "Globex"},
		{"", "", ""},
	}

	for _, tt := range tests {
		c := &Contact{VendorName: tt.vendor, CompanyName: tt.company}
		if got := c.OrgName(); got != tt.expected {
			t.Errorf("OrgName(%q, %q) = %q, want %q", tt.vendor, tt.company, got, tt.expected)
		}
	}
}

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"in progress", StatusInProgress},
		{" SIGNED UP ", StatusSignedUp},
		{"Responded", StatusResponded},
		{"", StatusNotStarted},
		{"lost", StatusNotStarted},
	}

	for _, tt := range tests {
		if got := NormalizeStatus(tt.input); got != tt.expected {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestTaskIsOverdue(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-24 * time.Hour)
	future := now.Add(24 * time.Hour)

	open := &Task{Status: TaskStatusOpen, DueDate: &past}
	if !open.IsOverdue(now) {
		t.Error("expected open task past due to be overdue")
	}

	done := &Task{Status: TaskStatusCompleted, DueDate: &past}
	if done.IsOverdue(now) {
		t.Error("completed task must not be overdue")
	}

	upcoming := &Task{Status: TaskStatusOpen, DueDate: &future}
	if upcoming.IsOverdue(now) {
		t.Error("task due in the future must not be overdue")
	}
}

func TestStateCloneDoesNotAlias(t *testing.T) {
	s := State{Contacts: []Contact{{ID: "1", Tags: []string{"t1"}}}}
	clone := s.Clone()

	clone.Contacts[0].VendorName = "changed"
	clone.Contacts[0].Tags[0] = "t2"

	if s.Contacts[0].VendorName != "" {
		t.Error("clone mutated original contact")
	}
	if s.Contacts[0].Tags[0] != "t1" {
		t.Error("clone mutated original tag slice")
	}
}

func TestStateCloneOfEmptyStateHasNoNilCollections(t *testing.T) {
	var s State
	clone := s.Clone()

	data, err := json.Marshal(&clone)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if strings.Contains(string(data), "null") {
		t.Errorf("empty clone encoded nil collections: %s", data)
	}
}
