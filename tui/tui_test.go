// ABOUTME: Tests for the TUI list, detail, delete and follow-up views
// ABOUTME: Drives the bubbletea model with key messages against an in-memory store
package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/views"
)

type memBackend struct {
	data []byte
}

func (m *memBackend) Load(ctx context.Context) ([]byte, error) {
	if m.data == nil {
		return nil, store.ErrNotFound
	}
	return m.data, nil
}

func (m *memBackend) Save(ctx context.Context, data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

func setupTestStore(t *testing.T) *store.Store {
	t.Helper()
	s := store.New(&memBackend{}, nil)
	s.Load(context.Background())

	ctx := context.Background()
	for _, c := range []models.Contact{
		{VendorName: "Beta Bakery", Status: models.StatusResponded, Category: "Food"},
		{VendorName: "Acme Arts", Status: models.StatusNotStarted, Category: "Crafts"},
		{VendorName: "Gamma Grill", Status: models.StatusResponded, Category: "Food"},
	} {
		_, err := s.AddContact(ctx, c)
		require.NoError(t, err)
	}
	return s
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func vendors(m Model) []string {
	var out []string
	for _, c := range m.rows {
		out = append(out, c.VendorName)
	}
	return out
}

func TestListDefaultOrder(t *testing.T) {
	m := NewModel(setupTestStore(t))
	assert.Equal(t, []string{"Acme Arts", "Beta Bakery", "Gamma Grill"}, vendors(m))
	assert.Contains(t, m.View(), "OUTREACH")
}

func TestSortKeysToggleAndReset(t *testing.T) {
	m := NewModel(setupTestStore(t))

	m = press(t, m, "1")
	assert.Equal(t, views.SortState{Column: views.ColumnVendorName, Direction: views.Asc}, m.sort)

	m = press(t, m, "1")
	assert.Equal(t, views.Desc, m.sort.Direction)
	assert.Equal(t, []string{"Gamma Grill", "Beta Bakery", "Acme Arts"}, vendors(m))

	m = press(t, m, "4")
	assert.Equal(t, views.SortState{Column: views.ColumnCategory, Direction: views.Asc}, m.sort)
	assert.Equal(t, "Acme Arts", m.rows[0].VendorName)

	m = press(t, m, "0")
	assert.Equal(t, views.SortState{}, m.sort)
	assert.Equal(t, []string{"Acme Arts", "Beta Bakery", "Gamma Grill"}, vendors(m))
}

func TestStatusCycle(t *testing.T) {
	m := NewModel(setupTestStore(t))

	m = press(t, m, "s")
	assert.Equal(t, models.StatusNotStarted, m.filter.Status)
	assert.Equal(t, []string{"Acme Arts"}, vendors(m))

	m = press(t, m, "s", "s")
	assert.Equal(t, models.StatusResponded, m.filter.Status)
	assert.Len(t, m.rows, 2)

	// Back around to all.
	m = press(t, m, "s", "s")
	assert.Empty(t, m.filter.Status)
	assert.Len(t, m.rows, 3)
}

func TestSearchNarrowsList(t *testing.T) {
	m := NewModel(setupTestStore(t))

	m = press(t, m, "/")
	require.True(t, m.searching)

	// Digits typed while searching are text, not sort keys.
	m = press(t, m, "g", "r", "1")
	assert.Equal(t, "gr1", m.filter.Search)
	assert.Empty(t, m.rows)
	assert.Empty(t, m.sort.Column)

	m = press(t, m, "esc")
	assert.False(t, m.searching)
	assert.Len(t, m.rows, 3)

	m = press(t, m, "/", "g", "r", "i", "enter")
	assert.False(t, m.searching)
	assert.Equal(t, []string{"Gamma Grill"}, vendors(m))
}

func TestDetailAndDelete(t *testing.T) {
	s := setupTestStore(t)
	m := NewModel(s)

	m = press(t, m, "down", "enter")
	require.Equal(t, ViewDetail, m.viewMode)
	assert.Contains(t, m.View(), "Beta Bakery")

	m = press(t, m, "d")
	require.Equal(t, ViewConfirmDelete, m.viewMode)

	m = press(t, m, "n")
	assert.Equal(t, ViewDetail, m.viewMode)

	m = press(t, m, "d", "y")
	assert.Equal(t, ViewList, m.viewMode)
	assert.Equal(t, "Successfully deleted", m.deleteMessage)
	assert.Equal(t, []string{"Acme Arts", "Gamma Grill"}, vendors(m))
	assert.Len(t, s.Contacts(), 2)
}

func TestFollowups(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	past := now.AddDate(0, 0, -2)
	soon := now.AddDate(0, 0, 1)
	later := now.AddDate(0, 0, 20)

	contact := s.Contacts()[0]
	_, err := s.LogActivity(ctx, contact.ID, "call", "", &later)
	require.NoError(t, err)
	_, err = s.AddTask(ctx, store.TaskInput{Title: "Send deck", DueDate: &past})
	require.NoError(t, err)
	_, err = s.AddTask(ctx, store.TaskInput{Title: "Call back", ContactID: contact.ID, DueDate: &soon})
	require.NoError(t, err)
	_, err = s.AddTask(ctx, store.TaskInput{Title: "Someday"})
	require.NoError(t, err)

	m := NewModel(s)
	items := m.followups(now)
	require.Len(t, items, 3)
	assert.Equal(t, "Send deck", items[0].what)
	assert.Equal(t, "🔴", items[0].state)
	assert.Equal(t, contact.VendorName, items[1].who)
	assert.Equal(t, "🟡", items[1].state)
	assert.Equal(t, "contact", items[2].kind)
	assert.Equal(t, "🟢", items[2].state)

	m = press(t, m, "f")
	assert.Equal(t, ViewFollowups, m.viewMode)
	assert.Contains(t, m.View(), "FOLLOW-UPS")
	m = press(t, m, "esc")
	assert.Equal(t, ViewList, m.viewMode)
}
