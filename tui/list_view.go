// ABOUTME: Contact list view for the TUI
// ABOUTME: Search, column sort toggles and status filter cycling over the store's contacts
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/views"
)

// sortKeys maps digit keys to sortable columns.
var sortKeys = map[string]string{
	"1": views.ColumnVendorName,
	"2": views.ColumnContactName,
	"3": views.ColumnStatus,
	"4": views.ColumnCategory,
	"5": views.ColumnLastContact,
	"6": views.ColumnFollowUpDate,
}

type listColumn struct {
	key    string
	column string
	title  string
	width  int
}

var listColumns = []listColumn{
	{"1", views.ColumnVendorName, "Vendor", 28},
	{"2", views.ColumnContactName, "Contact", 20},
	{"3", views.ColumnStatus, "Status", 12},
	{"4", views.ColumnCategory, "Category", 14},
	{"5", views.ColumnLastContact, "Last Contact", 12},
	{"6", views.ColumnFollowUpDate, "Follow Up", 12},
}

func (m Model) renderListView() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render("OUTREACH"))
	s.WriteString("\n")
	s.WriteString(m.renderStatusTabs())
	s.WriteString("\n\n")

	if m.searching || m.filter.Search != "" {
		s.WriteString(m.search.View())
		s.WriteString("\n\n")
	}

	s.WriteString(m.renderContactsTable())
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("%d contact(s)", len(m.rows)))

	if m.deleteMessage != "" {
		s.WriteString("\n")
		s.WriteString(messageStyle.Render(m.deleteMessage))
	}
	s.WriteString("\n")
	s.WriteString(m.renderListHelp())

	return s.String()
}

func (m Model) renderStatusTabs() string {
	tabs := append([]string{"All"}, models.ContactStatuses...)
	var rendered []string
	for i, tab := range tabs {
		if i == m.statusIdx {
			rendered = append(rendered, tabActiveStyle.Render(tab))
		} else {
			rendered = append(rendered, tabInactiveStyle.Render(tab))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) renderContactsTable() string {
	columns := make([]table.Column, len(listColumns))
	for i, c := range listColumns {
		title := c.key + " " + c.title
		if m.sort.Column == c.column {
			if m.sort.Direction == views.Desc {
				title += " ↓"
			} else {
				title += " ↑"
			}
		}
		columns[i] = table.Column{Title: title, Width: c.width}
	}

	rows := make([]table.Row, 0, len(m.rows))
	for _, c := range m.rows {
		rows = append(rows, table.Row{
			c.VendorName,
			c.ContactName,
			c.Status,
			c.Category,
			formatDate(c.LastContact),
			formatDate(c.FollowUpDate),
		})
	}

	height := m.height - 12
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(height),
	)
	if m.selectedRow < len(rows) {
		t.SetCursor(m.selectedRow)
	}

	return t.View()
}

func (m Model) renderListHelp() string {
	help := []string{
		"↑/↓: Navigate",
		"Enter: Details",
		"/: Search",
		"1-6: Sort",
		"0: Default order",
		"s: Status",
		"f: Follow-ups",
		"q: Quit",
	}
	return helpStyle.Render(strings.Join(help, " • "))
}

func (m Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	if column, ok := sortKeys[key]; ok {
		m.sort = m.sort.Toggle(column)
		m.refresh()
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.selectedRow > 0 {
			m.selectedRow--
		}
	case "down", "j":
		if m.selectedRow < len(m.rows)-1 {
			m.selectedRow++
		}
	case "0":
		m.sort = views.SortState{}
		m.refresh()
	case "s":
		m.statusIdx = (m.statusIdx + 1) % (len(models.ContactStatuses) + 1)
		m.filter.Status = ""
		if m.statusIdx > 0 {
			m.filter.Status = models.ContactStatuses[m.statusIdx-1]
		}
		m.selectedRow = 0
		m.refresh()
	case "/":
		m.searching = true
		m.search.Focus()
	case "enter":
		if m.selectedRow < len(m.rows) {
			m.selectedID = m.rows[m.selectedRow].ID
			m.viewMode = ViewDetail
			m.deleteMessage = ""
		}
	case "f":
		m.viewMode = ViewFollowups
	}

	return m, nil
}

// handleSearchKeys edits the search box; the list narrows as you type.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.filter.Search = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter.Search = m.search.Value()
	m.selectedRow = 0
	m.refresh()
	return m, cmd
}
