package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/store"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const legacyExport = `{
  "contacts": [{"id": "c1", "vendorName": "Acme", "status": "Responded", "project": "Gala", "createdAt": "2024-01-02T00:00:00Z"}],
  "activities": [{"id": "a1", "contactId": "c1", "type": "call", "date": "2024-01-03T00:00:00Z"}],
  "projects": ["Gala", "Expo"]
}`

func TestImportThenExport(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "export.json")
	out := filepath.Join(dir, "roundtrip.json")
	dbPath := filepath.Join(dir, "outreach.db")
	require.NoError(t, os.WriteFile(in, []byte(legacyExport), 0600))

	ctx := context.Background()
	log := zerolog.Nop()

	require.NoError(t, migrate(ctx, options{dbPath: dbPath, importPath: in, backup: true}, log))

	database, err := db.OpenDatabase(dbPath)
	require.NoError(t, err)
	s := store.New(db.NewCache(database), nil)
	assert.Equal(t, "local", s.Load(ctx))
	require.Len(t, s.Contacts(), 1)
	assert.Len(t, s.Projects(), 2)
	require.NoError(t, database.Close())

	require.NoError(t, migrate(ctx, options{dbPath: dbPath, exportPath: out}, log))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	state, err := store.DecodeState(data, nil)
	require.NoError(t, err)
	assert.Equal(t, "Acme", state.Contacts[0].VendorName)
	assert.Len(t, state.Activities, 1)

	// A second import needs -force, and dry runs write nothing.
	err = migrate(ctx, options{dbPath: dbPath, importPath: in}, log)
	assert.Error(t, err)
	require.NoError(t, migrate(ctx, options{dbPath: dbPath, importPath: in, force: true, dryRun: true}, log))

	matches, err := filepath.Glob(dbPath + ".backup.*")
	require.NoError(t, err)
	assert.Empty(t, matches, "first import had no database to back up")

	require.NoError(t, migrate(ctx, options{dbPath: dbPath, importPath: in, force: true, backup: true}, log))
	matches, err = filepath.Glob(dbPath + ".backup.*")
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestImportRejectsGarbage(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(in, []byte("not json"), 0600))

	err := migrate(context.Background(), options{dbPath: filepath.Join(dir, "x.db"), importPath: in}, zerolog.Nop())
	assert.Error(t, err)

	err = migrate(context.Background(), options{dbPath: filepath.Join(dir, "x.db"), importPath: filepath.Join(dir, "missing.json")}, zerolog.Nop())
	assert.Error(t, err)
}

func TestExportEmptyCache(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "state.json")

	require.NoError(t, migrate(context.Background(), options{dbPath: filepath.Join(dir, "none.db"), exportPath: out}, zerolog.Nop()))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"contacts":[]`)
}
