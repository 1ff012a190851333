package notes

import (
	"context"
	"sync"

	"github.com/cristianoliveira/tmux-notes/internal/colors"
	"github.com/cristianoliveira/tmux-notes/internal/errors"
	"github.com/cristianoliveira/tmux-notes/internal/logging"
	"github.com/cristianoliveira/tmux-notes/internal/storage"
)

// SnapshotScheduler receives the post-mutation snapshot of every successful
// mutation. *Persister implements it.
type SnapshotScheduler interface {
	Schedule(s Snapshot)
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the time source used for note ids.
func WithClock(now Clock) Option {
	return func(s *Store) {
		s.ids = newIDSource(now)
	}
}

// WithLogger sets the logger used for load failures.
func WithLogger(l logging.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// Store is the ordered note collection. The count is always len(notes).
// Every successful mutation hands exactly one snapshot to the scheduler.
// Failed mutations change nothing and schedule nothing.
type Store struct {
	mu      sync.RWMutex
	notes   []Note
	ids     *idSource
	persist SnapshotScheduler
	logger  logging.Logger
}

// NewStore creates an empty Store that schedules writes through persist.
func NewStore(persist SnapshotScheduler, opts ...Option) *Store {
	if persist == nil {
		panic("NewStore: persist dependency cannot be nil")
	}
	s := &Store{
		notes:   []Note{},
		ids:     newIDSource(nil),
		persist: persist,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.With("component", "notes")
	}
	return s
}

// Load replaces the collection with snap. It never writes back.
func (s *Store) Load(snap Snapshot) {
	loaded := make([]Note, len(snap.ListNotes))
	copy(loaded, snap.ListNotes)
	for _, n := range loaded {
		s.ids.observe(n.ID)
	}

	s.mu.Lock()
	s.notes = loaded
	s.mu.Unlock()
}

// LoadFrom reads the snapshot stored under key and loads it. A missing key
// loads the empty collection. A read or decode failure also loads the empty
// collection and is returned as a storage error.
func (s *Store) LoadFrom(ctx context.Context, gateway storage.Gateway, key string) error {
	raw, found, err := gateway.Get(ctx, key)
	if err != nil {
		err = errors.Storage("get", err)
		s.logger.Warn("snapshot not loaded", "key", key, "error", err)
		s.Load(EmptySnapshot())
		return err
	}
	if !found {
		colors.StructuredDebug("notes", "load", "empty", nil, key, nil)
		s.Load(EmptySnapshot())
		return nil
	}
	snap, err := DecodeSnapshot(raw)
	if err != nil {
		err = errors.Storage("decode", err)
		s.logger.Warn("snapshot not loaded", "key", key, "error", err)
		s.Load(EmptySnapshot())
		return err
	}
	s.Load(snap)
	colors.StructuredDebug("notes", "load", "completed", nil, key, map[string]interface{}{"count": snap.Count})
	return nil
}

// Add appends a note with a fresh id.
func (s *Store) Add(text string) (Note, error) {
	normalized, err := NormalizeText(text)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.ids.next()
	if err != nil {
		return Note{}, err
	}
	note := Note{ID: id, Text: normalized}
	s.notes = append(s.notes, note)
	s.scheduleLocked()
	return note, nil
}

// Update replaces the text of note id in place.
func (s *Store) Update(id int64, text string) (Note, error) {
	normalized, err := NormalizeText(text)
	if err != nil {
		return Note{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Note{}, errors.NotFound(id)
	}
	s.notes[i].Text = normalized
	s.scheduleLocked()
	return s.notes[i], nil
}

// Remove deletes note id.
func (s *Store) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return errors.NotFound(id)
	}
	s.notes = append(s.notes[:i:i], s.notes[i+1:]...)
	s.scheduleLocked()
	return nil
}

// Get returns note id.
func (s *Store) Get(id int64) (Note, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexLocked(id)
	if i < 0 {
		return Note{}, false
	}
	return s.notes[i], true
}

// Notes returns a copy of the collection in insertion order.
func (s *Store) Notes() []Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Count returns the number of notes.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.notes)
}

// Snapshot returns the current persisted form.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	list := make([]Note, len(s.notes))
	copy(list, s.notes)
	return Snapshot{Count: len(list), ListNotes: list}
}

// scheduleLocked runs under the write lock so snapshots reach the
// scheduler in mutation order.
func (s *Store) scheduleLocked() {
	s.persist.Schedule(s.snapshotLocked())
}

func (s *Store) indexLocked(id int64) int {
	for i, n := range s.notes {
		if n.ID == id {
			return i
		}
	}
	return -1
}
