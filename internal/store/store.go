// Package store owns the authoritative note collection for the current
// owner. All mutations flow through the bound sync backend; the collection
// itself changes only when the backend delivers a snapshot, so visible state
// is always the backend's echoed state.
package store

import (
	"context"
	stdsync "sync"

	"github.com/yilun-hsu/smartnotes/internal/errors"
	"github.com/yilun-hsu/smartnotes/internal/models"
	"github.com/yilun-hsu/smartnotes/internal/sync"
)

// Store is the collection store. It is safe for concurrent use, though the
// expected discipline is event-driven: one action or one incoming snapshot
// at a time.
type Store struct {
	mu      stdsync.Mutex
	backend sync.Backend

	owner string
	bound bool
	notes map[string]models.Note
	sub   sync.Subscription

	// epoch identifies the current subscription; snapshot callbacks from a
	// released epoch are dropped.
	epoch   uint64
	version uint64
}

// New creates an unbound Store over the given backend. Mutations fail with
// NO_OWNER until Bind succeeds.
func New(backend sync.Backend) *Store {
	return &Store{
		backend: backend,
		notes:   make(map[string]models.Note),
	}
}

// Bind subscribes the store to owner's snapshot feed, replacing any previous
// binding. The previous collection is discarded, never merged: the backend is
// the source of truth on re-subscribe.
func (s *Store) Bind(owner string) error {
	s.Release()

	s.mu.Lock()
	s.epoch++
	epoch := s.epoch
	s.owner = owner
	s.mu.Unlock()

	// The local backend delivers its snapshot synchronously from inside
	// Subscribe, so the callback must already be valid for this epoch.
	sub, err := s.backend.Subscribe(owner, func(snap sync.Snapshot) {
		s.apply(epoch, snap)
	})
	if err != nil {
		s.mu.Lock()
		s.owner = ""
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	if s.epoch == epoch {
		s.sub = sub
		s.bound = true
		s.mu.Unlock()
		return nil
	}
	// A concurrent Release/Bind superseded this subscription.
	s.mu.Unlock()
	sub.Unsubscribe()
	return nil
}

// Release unsubscribes and resets the collection to empty. Safe to call when
// unbound.
func (s *Store) Release() {
	s.mu.Lock()
	sub := s.sub
	s.sub = nil
	s.bound = false
	s.owner = ""
	s.notes = make(map[string]models.Note)
	s.epoch++
	s.version++
	s.mu.Unlock()

	if sub != nil {
		sub.Unsubscribe()
	}
}

// apply replaces the collection with a delivered snapshot. Deliveries are
// applied in receipt order; anything from a stale epoch is dropped.
func (s *Store) apply(epoch uint64, snap sync.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}

	next := make(map[string]models.Note, len(snap))
	for id, n := range snap {
		next[id] = n
	}
	s.notes = next
	s.version++
}

// Create validates the fields and submits them to the backend. The note is
// returned as accepted by the backend, but it appears in the collection only
// once the backend echoes the new snapshot.
func (s *Store) Create(ctx context.Context, fields models.NoteFields) (models.Note, error) {
	if err := models.ValidateForCreate(fields); err != nil {
		return models.Note{}, err
	}

	owner, err := s.currentOwner()
	if err != nil {
		return models.Note{}, err
	}
	return s.backend.SubmitCreate(ctx, owner, fields)
}

// Update merges a patch into the note at id, submit-then-echo. Fails with
// NOT_FOUND when id is absent from the authoritative collection.
func (s *Store) Update(ctx context.Context, id string, patch models.Patch) error {
	owner, err := s.currentOwner()
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.notes[id]
	s.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrNotFound, "note not found: "+id)
	}

	return s.backend.SubmitUpdate(ctx, owner, id, patch)
}

// Remove deletes the note at id. Removing an absent id is a no-op success,
// so retries and double-taps are harmless.
func (s *Store) Remove(ctx context.Context, id string) error {
	owner, err := s.currentOwner()
	if err != nil {
		return err
	}

	s.mu.Lock()
	_, ok := s.notes[id]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	return s.backend.SubmitRemove(ctx, owner, id)
}

// TogglePin inverts the pin state of the note at id.
func (s *Store) TogglePin(ctx context.Context, id string) error {
	owner, err := s.currentOwner()
	if err != nil {
		return err
	}

	s.mu.Lock()
	note, ok := s.notes[id]
	s.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrNotFound, "note not found: "+id)
	}

	pinned := !note.Pinned
	return s.backend.SubmitUpdate(ctx, owner, id, models.Patch{Pinned: &pinned})
}

// Get returns the note at id from the authoritative collection.
func (s *Store) Get(id string) (models.Note, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notes[id]
	return n, ok
}

// All returns a copy of the authoritative collection, unordered. Callers
// order it through the view projection.
func (s *Store) All() []models.Note {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Note, 0, len(s.notes))
	for _, n := range s.notes {
		out = append(out, n)
	}
	return out
}

// Len returns the collection size.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notes)
}

// Version increments on every applied snapshot and on release. Usable as a
// cache key for derived projections.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Owner returns the currently bound owner id, empty when unbound.
func (s *Store) Owner() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.owner
}

// Bound reports whether the store has an active owner.
func (s *Store) Bound() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bound
}

func (s *Store) currentOwner() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.bound {
		return "", errors.New(errors.ErrNoOwner, "no active owner; sign in first")
	}
	return s.owner, nil
}
