// Package session binds the authentication collaborator to the collection
// store: each identity transition releases the previous owner's collection
// and subscribes the new one.
package session

import (
	"github.com/yilun-hsu/smartnotes/internal/auth"
	"github.com/yilun-hsu/smartnotes/internal/logging"
	"github.com/yilun-hsu/smartnotes/internal/store"
)

// Session tracks the active identity and keeps the store bound to it.
type Session struct {
	client      auth.Client
	store       *store.Store
	unsubscribe func()
}

// New creates a Session. Call Start to apply the current identity and begin
// following changes.
func New(client auth.Client, st *store.Store) *Session {
	return &Session{client: client, store: st}
}

// Start applies the current identity and subscribes to identity changes.
func (s *Session) Start() {
	if identity, ok := s.client.CurrentIdentity(); ok {
		s.handle(&identity)
	}
	s.unsubscribe = s.client.OnIdentityChange(s.handle)
}

// handle rebinds the store for the new identity. A nil identity (signed out)
// releases the binding, which resets the collection to empty; signing in as
// a different identity discards the prior collection outright — the backend
// is the source of truth on re-subscribe.
func (s *Session) handle(identity *auth.Identity) {
	if identity == nil {
		s.store.Release()
		return
	}
	if err := s.store.Bind(identity.ID); err != nil {
		logging.Error("failed to bind collection for identity", err, map[string]interface{}{
			"owner": identity.ID,
		})
	}
}

// Close stops following identity changes and releases the store binding.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.store.Release()
}
