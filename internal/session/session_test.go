// Package session tests for the owner lifecycle.
package session

import (
	"context"
	"testing"

	"github.com/yilun-hsu/smartnotes/internal/auth"
	"github.com/yilun-hsu/smartnotes/internal/models"
	"github.com/yilun-hsu/smartnotes/internal/store"
	"github.com/yilun-hsu/smartnotes/internal/sync"
)

// recordingBackend tracks subscriptions per owner and lets tests push
// snapshots to whichever subscription is live.
type recordingBackend struct {
	owner string
	fn    sync.SnapshotFunc
	subs  []string
}

type recordingSubscription struct{ b *recordingBackend }

func (s *recordingSubscription) Unsubscribe() { s.b.fn = nil }

func (b *recordingBackend) Subscribe(owner string, fn sync.SnapshotFunc) (sync.Subscription, error) {
	b.owner = owner
	b.fn = fn
	b.subs = append(b.subs, owner)
	return &recordingSubscription{b: b}, nil
}

func (b *recordingBackend) SubmitCreate(ctx context.Context, owner string, fields models.NoteFields) (models.Note, error) {
	return models.Note{}, nil
}

func (b *recordingBackend) SubmitUpdate(ctx context.Context, owner, id string, patch models.Patch) error {
	return nil
}

func (b *recordingBackend) SubmitRemove(ctx context.Context, owner, id string) error {
	return nil
}

func (b *recordingBackend) push(snap sync.Snapshot) {
	if b.fn != nil {
		b.fn(snap)
	}
}

// TestSession_identityLifecycle verifies bind on sign-in, reset on sign-out.
func TestSession_identityLifecycle(t *testing.T) {
	backend := &recordingBackend{}
	st := store.New(backend)
	client := auth.NewStaticClient(auth.Identity{ID: "alice"})

	sess := New(client, st)
	sess.Start()
	defer sess.Close()

	if st.Bound() {
		t.Fatal("store should be unbound before sign-in")
	}

	if err := client.SignIn(context.Background()); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	if st.Owner() != "alice" {
		t.Errorf("Owner() = %q, want alice", st.Owner())
	}

	backend.push(sync.Snapshot{"a": {ID: "a", Text: "hello"}})
	if st.Len() != 1 {
		t.Fatalf("Len() = %d after snapshot", st.Len())
	}

	if err := client.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut() failed: %v", err)
	}
	if st.Bound() {
		t.Error("store should be unbound after sign-out")
	}
	if st.Len() != 0 {
		t.Error("collection should be reset on sign-out")
	}
}

// TestSession_identitySwitchReplacesCollection verifies switching accounts
// discards the previous collection rather than merging.
func TestSession_identitySwitchReplacesCollection(t *testing.T) {
	backend := &recordingBackend{}
	st := store.New(backend)
	client := auth.NewStaticClient(auth.Identity{ID: "alice"})

	sess := New(client, st)
	sess.Start()
	defer sess.Close()

	if err := client.SignIn(context.Background()); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}
	backend.push(sync.Snapshot{"a": {ID: "a", Text: "alice note"}})

	client.SwitchIdentity(auth.Identity{ID: "bob"})

	if st.Owner() != "bob" {
		t.Errorf("Owner() = %q, want bob", st.Owner())
	}
	if st.Len() != 0 {
		t.Errorf("alice's notes leaked to bob's session: %v", st.All())
	}
	if len(backend.subs) != 2 || backend.subs[1] != "bob" {
		t.Errorf("subscriptions = %v", backend.subs)
	}
}

// TestSession_startWithExistingIdentity verifies an already signed-in client
// is bound immediately.
func TestSession_startWithExistingIdentity(t *testing.T) {
	backend := &recordingBackend{}
	st := store.New(backend)
	client := auth.NewStaticClient(auth.Identity{ID: "carol"})
	if err := client.SignIn(context.Background()); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}

	sess := New(client, st)
	sess.Start()
	defer sess.Close()

	if st.Owner() != "carol" {
		t.Errorf("Owner() = %q, want carol", st.Owner())
	}
}

// TestSession_closeReleases verifies Close unbinds and stops listening.
func TestSession_closeReleases(t *testing.T) {
	backend := &recordingBackend{}
	st := store.New(backend)
	client := auth.NewStaticClient(auth.Identity{ID: "alice"})

	sess := New(client, st)
	sess.Start()
	if err := client.SignIn(context.Background()); err != nil {
		t.Fatalf("SignIn() failed: %v", err)
	}

	sess.Close()
	if st.Bound() {
		t.Error("store should be unbound after Close")
	}

	// Later identity changes must not rebind.
	client.SwitchIdentity(auth.Identity{ID: "dave"})
	if st.Bound() {
		t.Error("closed session should ignore identity changes")
	}
}
