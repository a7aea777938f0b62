// Package sync defines the boundary between the collection store and the
// persistence backend, with a local (device) and a remote (authenticated,
// push-based) variant.
package sync

import (
	"context"

	"github.com/yilun-hsu/smartnotes/internal/models"
)

// Snapshot is a full replacement delivery of all notes for an owner, keyed by
// note id. Backends always deliver whole snapshots, never diffs.
type Snapshot map[string]models.Note

// SnapshotFunc receives snapshot deliveries. Implementations must treat each
// call as a full replacement of the authoritative collection.
type SnapshotFunc func(Snapshot)

// Subscription is a live snapshot feed for one owner.
type Subscription interface {
	// Unsubscribe stops further deliveries. Idempotent. After it returns no
	// new snapshot callbacks begin; the collection store additionally guards
	// against callbacks already in flight.
	Unsubscribe()
}

// Backend is the persistence boundary. Submit operations never mutate the
// caller's collection directly: the note becomes visible only through the
// snapshot the backend echoes back — synchronously for the local variant,
// via the push channel for the remote one. Backends generate note ids
// atomically with the write, so a retried create cannot duplicate a note.
type Backend interface {
	// Subscribe opens the snapshot feed for owner. The local variant
	// delivers the persisted snapshot exactly once, synchronously; the
	// remote variant redelivers the full snapshot on every remote change.
	Subscribe(owner string, fn SnapshotFunc) (Subscription, error)

	// SubmitCreate validates nothing; it persists a new note built from
	// fields and returns the accepted note with its assigned id.
	SubmitCreate(ctx context.Context, owner string, fields models.NoteFields) (models.Note, error)

	// SubmitUpdate merges patch into the note at id and refreshes its
	// timestamp.
	SubmitUpdate(ctx context.Context, owner, id string, patch models.Patch) error

	// SubmitRemove deletes the note at id. Removing an absent id is not an
	// error.
	SubmitRemove(ctx context.Context, owner, id string) error
}
