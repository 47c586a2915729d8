// ABOUTME: Contact detail view for the TUI
// ABOUTME: Shows every contact field plus the activity log and open tasks
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outreach/models"
)

const dateLayout = "2006-01-02"

var (
	fieldLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Width(20)

	fieldValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))
)

func (m Model) renderDetailView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("CONTACT"))
	s.WriteString("\n\n")

	contact, ok := m.selectedContact()
	if !ok {
		s.WriteString("Contact not found")
	} else {
		s.WriteString(m.renderContactDetail(&contact))
	}

	s.WriteString("\n\n")
	s.WriteString(m.renderDetailHelp())

	return s.String()
}

func (m Model) renderContactDetail(contact *models.Contact) string {
	var s strings.Builder

	s.WriteString(m.renderField("Vendor", contact.VendorName))
	s.WriteString(m.renderField("Company", contact.CompanyName))
	s.WriteString(m.renderField("Contact", contact.ContactName))
	s.WriteString(m.renderField("Title", contact.Title))
	s.WriteString(m.renderField("Email", contact.Email))
	s.WriteString(m.renderField("Phone", contact.Phone))
	s.WriteString(m.renderField("Website", contact.Website))
	s.WriteString(m.renderField("Category", contact.Category))
	s.WriteString(m.renderField("Segment", contact.Segment))
	s.WriteString(m.renderField("Status", contact.Status))
	s.WriteString(m.renderField("Project", contact.Project))
	s.WriteString(m.renderField("Tags", m.tagNames(contact.Tags)))
	s.WriteString(m.renderField("Last Contact", formatDate(contact.LastContact)))
	s.WriteString(m.renderField("Follow Up", formatDate(contact.FollowUpDate)))
	s.WriteString(m.renderField("Notes", contact.Notes))

	s.WriteString("\n")
	s.WriteString(lipgloss.NewStyle().Bold(true).Render("ACTIVITY"))
	s.WriteString("\n")
	activities := m.store.ActivitiesFor(contact.ID)
	if len(activities) == 0 {
		s.WriteString("  none yet\n")
	}
	for _, a := range activities {
		s.WriteString(fmt.Sprintf("  • [%s] %s %s\n", a.Date.Format(dateLayout), a.Type, a.Notes))
	}

	var open []models.Task
	for _, t := range m.store.Tasks() {
		if t.ContactID == contact.ID && t.Status == models.TaskStatusOpen {
			open = append(open, t)
		}
	}
	if len(open) > 0 {
		s.WriteString("\n")
		s.WriteString(lipgloss.NewStyle().Bold(true).Render("OPEN TASKS"))
		s.WriteString("\n")
		for _, t := range open {
			s.WriteString(fmt.Sprintf("  • %s (%s, due %s)\n", t.Title, t.Priority, formatDate(t.DueDate)))
		}
	}

	return s.String()
}

func (m Model) tagNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, tag := range m.store.Tags() {
		for _, id := range ids {
			if tag.ID == id {
				names = append(names, tag.Name)
			}
		}
	}
	return strings.Join(names, ", ")
}

func (m Model) renderField(label, value string) string {
	if value == "" {
		value = "-"
	}
	return fmt.Sprintf("%s %s\n",
		fieldLabelStyle.Render(label+":"),
		fieldValueStyle.Render(value))
}

func (m Model) renderDetailHelp() string {
	help := []string{
		"Esc: Back",
		"d: Delete",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.viewMode = ViewList
		m.refresh()
	case "d":
		if _, ok := m.selectedContact(); ok {
			m.viewMode = ViewConfirmDelete
		}
	}

	return m, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
