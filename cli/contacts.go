// ABOUTME: Contact CLI commands
// ABOUTME: Add, list, delete, bulk status and tagging of prospect contacts
package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/views"
)

// AddContactCommand adds a new contact.
func AddContactCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("add-contact", flag.ExitOnError)
	vendor := fs.String("vendor", "", "Vendor / organization display name")
	company := fs.String("company", "", "Company name")
	name := fs.String("name", "", "Contact person")
	title := fs.String("title", "", "Job title")
	email := fs.String("email", "", "Email address(es)")
	phone := fs.String("phone", "", "Phone number(s)")
	website := fs.String("website", "", "Website")
	category := fs.String("category", "", "Category")
	segment := fs.String("segment", "", "Segment")
	status := fs.String("status", "", "Pipeline status (default: Not Started)")
	project := fs.String("project", "", "Project name")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	contact, err := s.AddContact(ctx, models.Contact{
		VendorName:  *vendor,
		CompanyName: *company,
		ContactName: *name,
		Title:       *title,
		Email:       *email,
		Phone:       *phone,
		Website:     *website,
		Category:    *category,
		Segment:     *segment,
		Status:      *status,
		Project:     *project,
		Notes:       *notes,
	})
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	fmt.Fprintf(stdout, "✓ Contact created: %s (ID: %s)\n", contact.VendorName, contact.ID)
	if contact.ContactName != "" {
		fmt.Fprintf(stdout, "  Contact: %s\n", contact.ContactName)
	}
	if contact.Email != "" {
		fmt.Fprintf(stdout, "  Email: %s\n", contact.Email)
	}
	if contact.Project != "" {
		fmt.Fprintf(stdout, "  Project: %s\n", contact.Project)
	}
	return nil
}

// ListContactsCommand lists contacts through the filter and sort engines.
func ListContactsCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-contacts", flag.ExitOnError)
	query := fs.String("query", "", "Search names, email and phone")
	status := fs.String("status", "", "Filter by status")
	category := fs.String("category", "", "Filter by category")
	segment := fs.String("segment", "", "Filter by segment")
	project := fs.String("project", "", "Filter by project")
	tag := fs.String("tag", "", "Filter by tag name")
	sortBy := fs.String("sort", "", "Sort column (e.g. vendorName, status, lastContact)")
	desc := fs.Bool("desc", false, "Sort descending")
	limit := fs.Int("limit", 50, "Maximum results")
	_ = fs.Parse(args)

	filter := views.Filter{
		Search:   *query,
		Status:   *status,
		Category: *category,
		Segment:  *segment,
		Project:  *project,
	}
	if *tag != "" {
		id, ok := tagIDByName(s, *tag)
		if !ok {
			return fmt.Errorf("unknown tag %q", *tag)
		}
		filter.Advanced.TagIDs = []string{id}
	}

	var sortState views.SortState
	if *sortBy != "" {
		if !views.IsSortable(*sortBy) {
			return fmt.Errorf("cannot sort by %q", *sortBy)
		}
		sortState = views.SortState{Column: *sortBy, Direction: views.Asc}
		if *desc {
			sortState.Direction = views.Desc
		}
	}

	contacts := views.View(s.Contacts(), filter, sortState)
	if len(contacts) == 0 {
		fmt.Fprintln(stdout, "No contacts found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "VENDOR\tCONTACT\tEMAIL\tSTATUS\tPROJECT\tLAST CONTACT\tID")
	_, _ = fmt.Fprintln(w, "------\t-------\t-----\t------\t-------\t------------\t--")
	for i, c := range contacts {
		if i == *limit {
			break
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			truncate(c.VendorName, 30), orDash(c.ContactName), orDash(c.PrimaryEmail()),
			c.Status, orDash(c.Project), formatDate(c.LastContact), c.ID)
	}
	_ = w.Flush()

	if len(contacts) > *limit {
		fmt.Fprintf(stdout, "\n%d of %d contacts shown\n", *limit, len(contacts))
	}
	return nil
}

// UpdateContactCommand edits an existing contact. Empty flags keep the
// stored value.
func UpdateContactCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("update-contact", flag.ExitOnError)
	vendor := fs.String("vendor", "", "Vendor / organization display name")
	name := fs.String("name", "", "Contact person")
	email := fs.String("email", "", "Email address(es)")
	phone := fs.String("phone", "", "Phone number(s)")
	website := fs.String("website", "", "Website")
	status := fs.String("status", "", "Pipeline status")
	project := fs.String("project", "", "Project name")
	notes := fs.String("notes", "", "Notes")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("contact ID is required")
	}

	existing, ok := s.FindContact(fs.Arg(0))
	if !ok {
		return fmt.Errorf("contact %s: %w", fs.Arg(0), store.ErrNotFound)
	}

	if *vendor != "" {
		existing.VendorName = *vendor
	}
	if *name != "" {
		existing.ContactName = *name
	}
	if *email != "" {
		existing.Email = *email
	}
	if *phone != "" {
		existing.Phone = *phone
	}
	if *website != "" {
		existing.Website = *website
	}
	if *status != "" {
		existing.Status = *status
	}
	if *project != "" {
		existing.Project = *project
	}
	if *notes != "" {
		existing.Notes = *notes
	}

	updated, err := s.UpdateContact(ctx, existing)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Contact updated: %s (%s)\n", updated.VendorName, updated.Status)
	return nil
}

// DeleteContactCommand deletes a contact and its activities.
func DeleteContactCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-contact", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("contact ID required")
	}
	id := fs.Arg(0)

	if err := s.DeleteContact(ctx, id); err != nil {
		return fmt.Errorf("failed to delete contact %s: %w", id, err)
	}
	fmt.Fprintf(stdout, "✓ Deleted contact: %s\n", id)
	return nil
}

// BulkStatusCommand sets the status of several contacts at once.
func BulkStatusCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("bulk-status", flag.ExitOnError)
	status := fs.String("status", "", "New status (required)")
	_ = fs.Parse(args)

	if *status == "" {
		return fmt.Errorf("--status is required")
	}
	if fs.NArg() == 0 {
		return fmt.Errorf("at least one contact ID required")
	}

	changed, err := s.BulkUpdateStatus(ctx, fs.Args(), *status)
	if err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}
	fmt.Fprintf(stdout, "✓ %d contact(s) set to %s\n", changed, models.NormalizeStatus(*status))
	return nil
}

// TagCommand applies a tag to contacts, creating the tag when new.
func TagCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("tag", flag.ExitOnError)
	name := fs.String("tag", "", "Tag name (required)")
	color := fs.String("color", "", "Tag color for new tags")
	_ = fs.Parse(args)

	if strings.TrimSpace(*name) == "" {
		return fmt.Errorf("--tag is required")
	}

	tag, err := s.AddTag(ctx, *name, *color)
	if err != nil {
		return fmt.Errorf("failed to create tag: %w", err)
	}
	if fs.NArg() == 0 {
		fmt.Fprintf(stdout, "✓ Tag ready: %s (ID: %s)\n", tag.Name, tag.ID)
		return nil
	}

	changed, err := s.BulkAddTag(ctx, fs.Args(), tag.ID)
	if err != nil {
		return fmt.Errorf("failed to tag contacts: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Tagged %d contact(s) with %s\n", changed, tag.Name)
	return nil
}

func tagIDByName(s *store.Store, name string) (string, bool) {
	for _, t := range s.Tags() {
		if strings.EqualFold(t.Name, strings.TrimSpace(name)) {
			return t.ID, true
		}
	}
	return "", false
}
