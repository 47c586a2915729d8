// ABOUTME: Migration utility for moving outreach state in and out of the local cache.
// ABOUTME: Imports exported state JSON (legacy project lists included) with dry-run and backup.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/models"
	"github.com/harperreed/outreach/store"
	"github.com/rs/zerolog"
)

type options struct {
	dbPath     string
	importPath string
	exportPath string
	dryRun     bool
	backup     bool
	force      bool
}

func main() {
	var opts options
	flag.StringVar(&opts.dbPath, "db", db.DefaultPath(), "Path to database file")
	flag.StringVar(&opts.importPath, "import", "", "State JSON file to load into the cache")
	flag.StringVar(&opts.exportPath, "export", "", "Write the cached state to this JSON file")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "Show what would happen without making changes")
	flag.BoolVar(&opts.backup, "backup", true, "Create backup before importing")
	flag.BoolVar(&opts.force, "force", false, "Replace a cache that already holds contacts")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).With().Timestamp().Logger()

	if opts.importPath == "" && opts.exportPath == "" {
		log.Fatal().Msg("one of -import or -export is required")
	}

	if err := migrate(context.Background(), opts, log); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	log.Info().Msg("migration completed successfully")
}

func migrate(ctx context.Context, opts options, log zerolog.Logger) error {
	if opts.importPath != "" {
		if err := importState(ctx, opts, log); err != nil {
			return err
		}
	}
	if opts.exportPath != "" {
		if err := exportState(ctx, opts, log); err != nil {
			return err
		}
	}
	return nil
}

func importState(ctx context.Context, opts options, log zerolog.Logger) error {
	data, err := os.ReadFile(opts.importPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", opts.importPath, err)
	}

	// DecodeState promotes legacy string project entries to records.
	incoming, err := store.DecodeState(data, nil)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", opts.importPath, err)
	}
	log.Info().
		Int("contacts", len(incoming.Contacts)).
		Int("activities", len(incoming.Activities)).
		Int("tasks", len(incoming.Tasks)).
		Int("projects", len(incoming.Projects)).
		Msg("read state file")

	existing, err := readCache(ctx, opts.dbPath)
	if err != nil {
		return err
	}
	if len(existing.Contacts) > 0 && !opts.force {
		log.Warn().Int("contacts", len(existing.Contacts)).Msg("cache already holds contacts")
		return fmt.Errorf("import would replace %d cached contacts; use -force", len(existing.Contacts))
	}

	if opts.dryRun {
		log.Info().Str("db", opts.dbPath).Msg("[DRY RUN] would replace cached state")
		return nil
	}

	if opts.backup {
		if err := backupFile(opts.dbPath, log); err != nil {
			return err
		}
	}

	database, err := db.OpenDatabase(opts.dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	s := store.New(db.NewCache(database), nil, store.WithLogger(log))
	if err := s.Replace(ctx, incoming); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	log.Info().Str("db", opts.dbPath).Msg("state imported")
	return nil
}

func exportState(ctx context.Context, opts options, log zerolog.Logger) error {
	state, err := readCache(ctx, opts.dbPath)
	if err != nil {
		return err
	}

	data, err := store.EncodeState(&state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if opts.dryRun {
		log.Info().Int("bytes", len(data)).Str("file", opts.exportPath).Msg("[DRY RUN] would export state")
		return nil
	}
	if err := os.WriteFile(opts.exportPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.exportPath, err)
	}
	log.Info().Int("contacts", len(state.Contacts)).Str("file", opts.exportPath).Msg("state exported")
	return nil
}

// readCache returns the cached state, or an empty one when the database or
// the state key does not exist yet.
func readCache(ctx context.Context, dbPath string) (models.State, error) {
	if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
		return store.DecodeState([]byte("{}"), nil)
	}

	database, err := db.OpenDatabase(dbPath)
	if err != nil {
		return models.State{}, fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	data, err := db.NewCache(database).Load(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return store.DecodeState([]byte("{}"), nil)
	}
	if err != nil {
		return models.State{}, fmt.Errorf("failed to read cached state: %w", err)
	}
	return store.DecodeState(data, nil)
}

func backupFile(path string, log zerolog.Logger) error {
	input, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read database: %w", err)
	}

	backupPath := fmt.Sprintf("%s.backup.%s", path, time.Now().Format("20060102-150405"))
	if err := os.WriteFile(backupPath, input, 0600); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}
	log.Info().Str("backup", backupPath).Msg("backup created")
	return nil
}
