// ABOUTME: In-memory record store with local-first persistence and best-effort remote sync
// ABOUTME: Owns the State, commits to the local cache synchronously and to the remote asynchronously
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/harperreed/outreach/models"
	"github.com/rs/zerolog"
)

var (
	// ErrNotFound is returned by a Backend holding no state and by lookups of unknown ids.
	ErrNotFound = errors.New("not found")

	ErrContactUnidentified  = errors.New("contact needs a vendor, company, contact name, email or phone")
	ErrProjectNameRequired  = errors.New("project name is required")
	ErrDuplicateProjectName = errors.New("a project with this name already exists")
	ErrTaskTitleRequired    = errors.New("task title is required")
	ErrInvalidTaskStatus    = errors.New("invalid task status")
	ErrScriptNameRequired   = errors.New("script name is required")
	ErrTagNameRequired      = errors.New("tag name is required")
)

// Backend persists the whole state as one blob.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// Load sources reported by Store.Load.
const (
	SourceRemote = "remote"
	SourceLocal  = "local"
	SourceEmpty  = "empty"
)

// Store is the single owner of the record collections. Every mutation is
// written to the local backend before returning; the remote backend gets a
// fire-and-forget copy. Concurrent sessions writing the same remote copy
// overwrite each other: the last save wins.
type Store struct {
	mu    sync.Mutex
	state models.State

	local  Backend
	remote Backend

	log           zerolog.Logger
	now           func() time.Time
	newID         func() string
	remoteTimeout time.Duration

	pending         sync.WaitGroup
	remoteMu        sync.Mutex
	seq             uint64
	remoteAttempted uint64
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for sync failures.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock replaces the wall clock.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the record id generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// WithRemoteTimeout bounds each remote save.
func WithRemoteTimeout(d time.Duration) Option {
	return func(s *Store) { s.remoteTimeout = d }
}

// New creates a store. remote may be nil.
func New(local, remote Backend, opts ...Option) *Store {
	s := &Store{
		local:         local,
		remote:        remote,
		log:           zerolog.Nop(),
		now:           time.Now,
		newID:         func() string { return uuid.New().String() },
		remoteTimeout: 30 * time.Second,
		state:         emptyState(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory state with the remote copy, falling back to
// the local cache and then to empty collections. It never fails; problems
// are logged and the next source is tried.
func (s *Store) Load(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.remote != nil {
		if state, ok := s.loadFrom(ctx, s.remote, SourceRemote); ok {
			s.state = state
			s.reconcileLocked()
			if data, err := EncodeState(&s.state); err == nil {
				if err := s.local.Save(ctx, data); err != nil {
					s.log.Warn().Err(err).Msg("failed to refresh local cache from remote")
				}
			}
			return SourceRemote
		}
	}

	if state, ok := s.loadFrom(ctx, s.local, SourceLocal); ok {
		s.state = state
		s.reconcileLocked()
		return SourceLocal
	}

	s.state = emptyState()
	return SourceEmpty
}

func (s *Store) loadFrom(ctx context.Context, b Backend, source string) (models.State, bool) {
	data, err := b.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			s.log.Debug().Str("source", source).Msg("no stored state")
		} else {
			s.log.Warn().Err(err).Str("source", source).Msg("failed to load state")
		}
		return models.State{}, false
	}

	state, err := DecodeState(data, s.newID)
	if err != nil {
		s.log.Warn().Err(err).Str("source", source).Msg("failed to decode state")
		return models.State{}, false
	}
	return state, true
}

// Snapshot returns a copy of the whole state.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Replace swaps in a whole new state and commits it.
func (s *Store) Replace(ctx context.Context, state models.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state.Clone()
	s.reconcileLocked()
	return s.commitLocked(ctx)
}

// commitLocked saves the current state locally and schedules the remote
// save. Only the local error is returned. Caller holds s.mu.
func (s *Store) commitLocked(ctx context.Context) error {
	data, err := EncodeState(&s.state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	if err := s.local.Save(ctx, data); err != nil {
		return fmt.Errorf("failed to save local cache: %w", err)
	}

	if s.remote == nil {
		return nil
	}

	s.seq++
	seq := s.seq
	s.pending.Add(1)
	go s.saveRemote(seq, data)

	return nil
}

func (s *Store) saveRemote(seq uint64, data []byte) {
	defer s.pending.Done()

	s.remoteMu.Lock()
	defer s.remoteMu.Unlock()

	// A newer snapshot was already sent, whether or not it landed.
	if seq <= s.remoteAttempted {
		return
	}
	s.remoteAttempted = seq

	ctx, cancel := context.WithTimeout(context.Background(), s.remoteTimeout)
	defer cancel()

	if err := s.remote.Save(ctx, data); err != nil {
		s.log.Error().Err(err).Uint64("seq", seq).Msg("remote sync failed")
	}
}

// Wait blocks until every scheduled remote save has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

func emptyState() models.State {
	return models.State{
		Contacts:     []models.Contact{},
		Activities:   []models.Activity{},
		Scripts:      []models.Script{},
		Tags:         []models.Tag{},
		CustomFields: []models.CustomField{},
		Tasks:        []models.Task{},
		Projects:     []models.Project{},
	}
}
