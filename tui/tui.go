// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Interactive contact list with search, sort, status filter, detail and follow-ups
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/views"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewFollowups
	ViewConfirmDelete
)

// Model is the main bubbletea model
type Model struct {
	store    *store.Store
	viewMode ViewMode

	// List view state
	filter      views.Filter
	sort        views.SortState
	statusIdx   int
	searching   bool
	search      textinput.Model
	rows        []models.Contact
	selectedRow int

	// Detail view state
	selectedID string

	// Delete confirmation state
	deleteMessage string

	// UI state
	width  int
	height int
	err    error
}

// NewModel creates a new TUI model
func NewModel(s *store.Store) Model {
	search := textinput.New()
	search.Placeholder = "search"
	search.Prompt = "/ "
	search.CharLimit = 100

	m := Model{
		store:    s,
		viewMode: ViewList,
		search:   search,
		width:    100,
		height:   30,
	}
	m.refresh()
	return m
}

// Run starts the full-screen program.
func Run(s *store.Store) error {
	_, err := tea.NewProgram(NewModel(s), tea.WithAltScreen()).Run()
	return err
}

// refresh recomputes the visible rows from the store.
func (m *Model) refresh() {
	m.rows = views.View(m.store.Contacts(), m.filter, m.sort)
	if m.selectedRow >= len(m.rows) {
		m.selectedRow = len(m.rows) - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewFollowups:
		return m.renderFollowupsView()
	case ViewConfirmDelete:
		return m.renderConfirmDeleteView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKeys(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	}

	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewFollowups:
		return m.handleFollowupKeys(msg)
	case ViewConfirmDelete:
		return m.handleConfirmDeleteKeys(msg)
	}

	return m, nil
}

func (m Model) selectedContact() (models.Contact, bool) {
	if m.selectedID != "" {
		return m.store.FindContact(m.selectedID)
	}
	return models.Contact{}, false
}

func (m Model) deleteSelected() error {
	return m.store.DeleteContact(context.Background(), m.selectedID)
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))
)
