package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/harperreed/outreach/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddContactAppliesNameFallback(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	c, err := s.AddContact(ctx, models.Contact{Email: "jane@acme.io", Website: "acme.io", Status: "responded"})
	require.NoError(t, err)

	assert.Equal(t, "jane", c.VendorName)
	assert.Equal(t, "jane", c.CompanyName)
	assert.Equal(t, "https://acme.io", c.Website)
	assert.Equal(t, models.StatusResponded, c.Status)
	assert.Equal(t, testEpoch, c.CreatedAt)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, []string{}, c.Tags)
}

func TestAddContactRejectsUnidentified(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)

	_, err := s.AddContact(context.Background(), models.Contact{Notes: "who is this"})
	assert.ErrorIs(t, err, ErrContactUnidentified)
	assert.Empty(t, s.Contacts())
}

func TestAddContactEnsuresProject(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)

	_, err := s.AddContact(context.Background(), models.Contact{VendorName: "Acme", Project: " Expo "})
	require.NoError(t, err)

	projects := s.Projects()
	require.Len(t, projects, 1)
	assert.Equal(t, "Expo", projects[0].Name)
	assert.Equal(t, models.ProjectStatusActive, projects[0].Status)
}

func TestUpdateContact(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	c, err := s.AddContact(ctx, models.Contact{VendorName: "Acme"})
	require.NoError(t, err)

	c.Title = "CEO"
	c.CreatedAt = time.Time{}
	updated, err := s.UpdateContact(ctx, c)
	require.NoError(t, err)
	assert.Equal(t, "CEO", updated.Title)
	assert.Equal(t, testEpoch, updated.CreatedAt)

	_, err = s.UpdateContact(ctx, models.Contact{ID: "missing", VendorName: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteContactCascadesActivities(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	a, err := s.AddContact(ctx, models.Contact{VendorName: "A"})
	require.NoError(t, err)
	b, err := s.AddContact(ctx, models.Contact{VendorName: "B"})
	require.NoError(t, err)

	_, err = s.LogActivity(ctx, a.ID, "email", "intro", nil)
	require.NoError(t, err)
	_, err = s.LogActivity(ctx, b.ID, "call", "", nil)
	require.NoError(t, err)

	require.NoError(t, s.DeleteContact(ctx, a.ID))

	snap := s.Snapshot()
	require.Len(t, snap.Activities, 1)
	assert.Equal(t, b.ID, snap.Activities[0].ContactID)

	assert.ErrorIs(t, s.DeleteContact(ctx, a.ID), ErrNotFound)
}

func TestVisibleActivitiesHidesOrphans(t *testing.T) {
	local := &memBackend{data: []byte(`{
		"contacts":[{"id":"c1","vendorName":"A","status":"Not Started"}],
		"activities":[
			{"id":"a1","contactId":"c1","type":"email","date":"2024-01-01T00:00:00Z"},
			{"id":"a2","contactId":"gone","type":"call","date":"2024-01-02T00:00:00Z"},
			{"id":"a3","contactId":"c1","type":"call","date":"2024-01-03T00:00:00Z"}
		]
	}`)}
	s := newTestStore(t, local, nil)
	s.Load(context.Background())

	visible := s.VisibleActivities()
	require.Len(t, visible, 2)
	assert.Equal(t, "a3", visible[0].ID)
	assert.Equal(t, "a1", visible[1].ID)

	// Orphans remain stored.
	assert.Len(t, s.Snapshot().Activities, 3)
}

func TestLogActivityUpdatesContact(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	c, err := s.AddContact(ctx, models.Contact{VendorName: "Acme"})
	require.NoError(t, err)

	followUp := testEpoch.Add(72 * time.Hour)
	a, err := s.LogActivity(ctx, c.ID, "meeting", "demo", &followUp)
	require.NoError(t, err)
	assert.Len(t, a.ID, 26)
	assert.Equal(t, testEpoch, a.Date)

	got, ok := s.FindContact(c.ID)
	require.True(t, ok)
	require.NotNil(t, got.LastContact)
	assert.Equal(t, testEpoch, *got.LastContact)
	require.NotNil(t, got.FollowUpDate)
	assert.Equal(t, followUp, *got.FollowUpDate)

	assert.Len(t, s.ActivitiesFor(c.ID), 1)

	_, err = s.LogActivity(ctx, "missing", "email", "", nil)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteActivity(ctx, a.ID))
	assert.Empty(t, s.ActivitiesFor(c.ID))
	assert.ErrorIs(t, s.DeleteActivity(ctx, a.ID), ErrNotFound)
}

func TestBulkUpdateStatus(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	a, _ := s.AddContact(ctx, models.Contact{VendorName: "A"})
	b, _ := s.AddContact(ctx, models.Contact{VendorName: "B", Status: models.StatusResponded})

	n, err := s.BulkUpdateStatus(ctx, []string{a.ID, b.ID, "missing"}, models.StatusResponded)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	for _, c := range s.Contacts() {
		assert.Equal(t, models.StatusResponded, c.Status)
	}
}

func TestBulkAddTag(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	a, _ := s.AddContact(ctx, models.Contact{VendorName: "A"})
	tag, err := s.AddTag(ctx, "VIP", "#ff0000")
	require.NoError(t, err)

	n, err := s.BulkAddTag(ctx, []string{a.ID}, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.BulkAddTag(ctx, []string{a.ID}, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = s.BulkAddTag(ctx, []string{a.ID}, "no-such-tag")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddTagDedupesByName(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	first, err := s.AddTag(ctx, "VIP", "")
	require.NoError(t, err)
	second, err := s.AddTag(ctx, "vip", "#000")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, s.Tags(), 1)

	_, err = s.AddTag(ctx, " ", "")
	assert.ErrorIs(t, err, ErrTagNameRequired)
}

func TestCommitImportRededups(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	_, err := s.AddContact(ctx, models.Contact{VendorName: "Acme", Email: "a@acme.io"})
	require.NoError(t, err)

	n, err := s.CommitImport(ctx, []models.Contact{
		{ID: "x1", VendorName: "ACME", Email: "A@acme.io", Status: models.StatusNotStarted},
		{ID: "x2", VendorName: "Beta", Email: "b@beta.io", Status: models.StatusNotStarted, Project: "Expo"},
		{ID: "x3", VendorName: "beta", Email: "b@beta.io", Status: models.StatusNotStarted},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Len(t, s.Contacts(), 2)

	_, ok := s.FindProjectByName("EXPO")
	assert.True(t, ok)
}

func TestEnsureProjectExists(t *testing.T) {
	backend := &memBackend{}
	s := newTestStore(t, backend, nil)
	ctx := context.Background()

	p, err := s.EnsureProjectExists(ctx, "  ")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Equal(t, 0, backend.saves)

	first, err := s.EnsureProjectExists(ctx, "Spring Fair")
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := s.EnsureProjectExists(ctx, "spring fair")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, s.Projects(), 1)
	assert.Equal(t, 1, backend.saves)
}

func TestUpsertProject(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	created, err := s.UpsertProject(ctx, models.Project{Name: "Gala", Owner: "Dana", Status: "Planning"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	// Matched by name; blank fields keep stored values.
	merged, err := s.UpsertProject(ctx, models.Project{Name: "gala", Description: "Annual"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, merged.ID)
	assert.Equal(t, "Gala", merged.Name)
	assert.Equal(t, "Gala", s.Projects()[0].Name)
	assert.Equal(t, "Dana", merged.Owner)
	assert.Equal(t, "Planning", merged.Status)
	assert.Equal(t, "Annual", merged.Description)

	// Matched by id; rename.
	renamed, err := s.UpsertProject(ctx, models.Project{ID: created.ID, Name: "Winter Gala"})
	require.NoError(t, err)
	assert.Equal(t, "Winter Gala", renamed.Name)
	assert.Len(t, s.Projects(), 1)

	_, err = s.UpsertProject(ctx, models.Project{Name: "Expo"})
	require.NoError(t, err)
	_, err = s.UpsertProject(ctx, models.Project{ID: created.ID, Name: "EXPO"})
	assert.ErrorIs(t, err, ErrDuplicateProjectName)

	_, err = s.UpsertProject(ctx, models.Project{Name: ""})
	assert.ErrorIs(t, err, ErrProjectNameRequired)
}

func TestTaskLifecycle(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	task, err := s.AddTask(ctx, TaskInput{Title: "Send deck", Priority: "high", Project: "Expo"})
	require.NoError(t, err)
	assert.Equal(t, models.TaskStatusOpen, task.Status)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	assert.Nil(t, task.CompletedAt)

	_, ok := s.FindProjectByName("Expo")
	assert.True(t, ok)

	done, err := s.SetTaskStatus(ctx, task.ID, models.TaskStatusCompleted)
	require.NoError(t, err)
	require.NotNil(t, done.CompletedAt)
	assert.Equal(t, testEpoch, *done.CompletedAt)

	reopened, err := s.SetTaskStatus(ctx, task.ID, models.TaskStatusOpen)
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	_, err = s.SetTaskStatus(ctx, task.ID, "blocked")
	assert.ErrorIs(t, err, ErrInvalidTaskStatus)

	_, err = s.SetTaskStatus(ctx, "missing", models.TaskStatusOpen)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.DeleteTask(ctx, task.ID))
	assert.Empty(t, s.Tasks())
}

func TestAddTaskDefaults(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	task, err := s.AddTask(ctx, TaskInput{Title: "Call back", Priority: "urgent"})
	require.NoError(t, err)
	assert.Equal(t, models.PriorityMedium, task.Priority)
	assert.Empty(t, s.Projects())

	_, err = s.AddTask(ctx, TaskInput{Title: "   "})
	assert.ErrorIs(t, err, ErrTaskTitleRequired)
}

func TestImportScripts(t *testing.T) {
	s := newTestStore(t, &memBackend{}, nil)
	ctx := context.Background()

	doc := `
scripts:
  - name: Intro email
    category: email
    content: |
      Hi there
  - name: ""
    content: skipped
  - name: Voicemail
    content: Call me back
`
	n, err := s.ImportScripts(ctx, strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	scripts := s.Scripts()
	require.Len(t, scripts, 2)
	assert.Equal(t, "Intro email", scripts[0].Name)
	assert.Equal(t, "Hi there\n", scripts[0].Content)

	require.NoError(t, s.DeleteScript(ctx, scripts[0].ID))
	assert.Len(t, s.Scripts(), 1)
	assert.ErrorIs(t, s.DeleteScript(ctx, "missing"), ErrNotFound)

	_, err = s.ImportScripts(ctx, strings.NewReader("scripts: [unterminated"))
	assert.Error(t, err)
}
