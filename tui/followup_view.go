// ABOUTME: TUI view for follow-up tracking
// ABOUTME: Lists contacts with a follow-up date and open tasks, soonest first
package tui

import (
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/harperreed/outreach/models"
)

type followup struct {
	due   time.Time
	what  string
	who   string
	kind  string
	state string
}

// followups merges contact follow-up dates and dated open tasks.
func (m Model) followups(now time.Time) []followup {
	var out []followup
	for _, c := range m.store.Contacts() {
		if c.FollowUpDate != nil {
			out = append(out, followup{due: *c.FollowUpDate, what: c.Status, who: c.VendorName, kind: "contact"})
		}
	}
	for _, t := range m.store.Tasks() {
		if t.DueDate == nil || t.Status != models.TaskStatusOpen {
			continue
		}
		who := t.Project
		if c, ok := m.store.FindContact(t.ContactID); ok {
			who = c.VendorName
		}
		out = append(out, followup{due: *t.DueDate, what: t.Title, who: who, kind: "task"})
	}
	for i := range out {
		out[i].state = indicator(out[i].due, now)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].due.Before(out[j].due) })
	return out
}

func indicator(due, now time.Time) string {
	days := int(due.Sub(now).Hours() / 24)
	switch {
	case due.Before(now):
		return "🔴"
	case days <= 3:
		return "🟡"
	}
	return "🟢"
}

func (m Model) renderFollowupsView() string {
	var s strings.Builder
	s.WriteString(titleStyle.Render("FOLLOW-UPS"))
	s.WriteString("\n\n")
	s.WriteString(m.renderFollowupsTable())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("Esc: Back • q: Quit"))
	return s.String()
}

func (m Model) renderFollowupsTable() string {
	columns := []table.Column{
		{Title: "", Width: 3},
		{Title: "Due", Width: 12},
		{Title: "Kind", Width: 8},
		{Title: "Who", Width: 28},
		{Title: "What", Width: 30},
	}

	var rows []table.Row
	for _, f := range m.followups(time.Now()) {
		rows = append(rows, table.Row{f.state, f.due.Format(dateLayout), f.kind, f.who, f.what})
	}

	height := m.height - 10
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	return t.View()
}

func (m Model) handleFollowupKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.viewMode = ViewList
	}
	return m, nil
}
