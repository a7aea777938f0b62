// Package auth provides the authentication collaborator contract and a
// token-file backed client for remote mode.
package auth

import "context"

// Identity is the authenticated owner of the remote note collection.
type Identity struct {
	ID          string
	DisplayName string
	AvatarURL   string
}

// Client is the authentication collaborator. The core treats absence of an
// identity as NO_OWNER for remote-mode mutations.
type Client interface {
	// CurrentIdentity returns the active identity, if any.
	CurrentIdentity() (Identity, bool)

	// OnIdentityChange registers a callback fired on sign-in (with the new
	// identity) and sign-out (with nil). Returns an unsubscribe func.
	OnIdentityChange(fn func(*Identity)) func()

	// SignIn establishes an identity.
	SignIn(ctx context.Context) error

	// SignOut clears the identity.
	SignOut(ctx context.Context) error
}
