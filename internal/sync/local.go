package sync

import (
	"context"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/yilun-hsu/smartnotes/internal/db"
	"github.com/yilun-hsu/smartnotes/internal/errors"
	"github.com/yilun-hsu/smartnotes/internal/logging"
	"github.com/yilun-hsu/smartnotes/internal/models"
)

// LocalOwner is the implicit owner id of the unauthenticated device slot.
const LocalOwner = "local"

// LocalBackend persists notes to the device slot. Every submit rewrites the
// slot and synchronously echoes the new snapshot to the subscriber, which is
// why local mode appears to update immediately: the echo is just not
// asynchronous here.
type LocalBackend struct {
	mu    sync.Mutex
	store *db.DB
	now   func() time.Time
	newID func() string

	owner  string
	notes  map[string]models.Note
	fn     SnapshotFunc
	active bool
}

// NewLocalBackend creates a LocalBackend over the given database. Ids are
// xid values: timestamp-prefixed and lexicographically sortable, so the
// projection's id tie-break follows creation order.
func NewLocalBackend(store *db.DB) *LocalBackend {
	return &LocalBackend{
		store: store,
		now:   time.Now,
		newID: func() string { return xid.New().String() },
	}
}

// Subscribe loads the persisted slot and delivers it exactly once,
// synchronously. The local variant has no external writers, so there is
// nothing to push afterwards; later deliveries are all mutation echoes.
func (b *LocalBackend) Subscribe(owner string, fn SnapshotFunc) (Subscription, error) {
	if owner == "" {
		owner = LocalOwner
	}

	b.mu.Lock()
	stored, err := b.store.LoadNotes(owner)
	if err != nil {
		b.mu.Unlock()
		return nil, errors.Wrap(errors.ErrBackendUnavailable, "failed to load local notes", err)
	}

	notes := make(map[string]models.Note, len(stored))
	for _, n := range stored {
		notes[n.ID] = n
	}
	b.owner = owner
	b.notes = notes
	b.fn = fn
	b.active = true
	snap := b.snapshotLocked()
	b.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return &localSubscription{backend: b}, nil
}

// SubmitCreate persists a new note and echoes the updated snapshot.
func (b *LocalBackend) SubmitCreate(ctx context.Context, owner string, fields models.NoteFields) (models.Note, error) {
	note := models.Materialize(fields, b.newID(), b.now())

	err := b.commit(func(notes map[string]models.Note) {
		notes[note.ID] = note
	})
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// SubmitUpdate merges the patch into the stored note and echoes.
func (b *LocalBackend) SubmitUpdate(ctx context.Context, owner, id string, patch models.Patch) error {
	b.mu.Lock()
	_, ok := b.notes[id]
	b.mu.Unlock()
	if !ok {
		return errors.New(errors.ErrNotFound, "note not found: "+id)
	}

	return b.commit(func(notes map[string]models.Note) {
		n := notes[id]
		patch.Apply(&n, b.now())
		notes[id] = n
	})
}

// SubmitRemove deletes the note if present. Removing twice is a no-op.
func (b *LocalBackend) SubmitRemove(ctx context.Context, owner, id string) error {
	return b.commit(func(notes map[string]models.Note) {
		delete(notes, id)
	})
}

// commit applies mutate to a copy of the collection, persists it, and only
// then swaps it in and echoes. A failed write leaves both the slot and the
// in-memory state untouched.
func (b *LocalBackend) commit(mutate func(map[string]models.Note)) error {
	b.mu.Lock()

	next := make(map[string]models.Note, len(b.notes)+1)
	for id, n := range b.notes {
		next[id] = n
	}
	mutate(next)

	arr := make([]models.Note, 0, len(next))
	for _, n := range next {
		arr = append(arr, n)
	}
	owner := b.owner
	if owner == "" {
		owner = LocalOwner
	}
	if err := b.store.SaveNotes(owner, arr); err != nil {
		b.mu.Unlock()
		logging.Error("local notes write failed", err, map[string]interface{}{"owner": owner})
		return errors.Wrap(errors.ErrBackendUnavailable, "failed to persist notes", err)
	}

	b.notes = next
	fn := b.fn
	active := b.active
	snap := b.snapshotLocked()
	b.mu.Unlock()

	if active && fn != nil {
		fn(snap)
	}
	return nil
}

func (b *LocalBackend) snapshotLocked() Snapshot {
	snap := make(Snapshot, len(b.notes))
	for id, n := range b.notes {
		snap[id] = n
	}
	return snap
}

type localSubscription struct {
	backend *LocalBackend
	once    sync.Once
}

func (s *localSubscription) Unsubscribe() {
	s.once.Do(func() {
		s.backend.mu.Lock()
		s.backend.fn = nil
		s.backend.active = false
		s.backend.mu.Unlock()
	})
}
