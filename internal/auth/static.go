package auth

import (
	"context"
	"sync"
)

// StaticClient is a Client with a fixed identity toggle, used by tests and
// by harnesses that have no real identity provider.
type StaticClient struct {
	mu        sync.Mutex
	identity  *Identity
	signedIn  bool
	listeners map[int]func(*Identity)
	nextID    int
}

// NewStaticClient creates a signed-out StaticClient that will present the
// given identity after SignIn.
func NewStaticClient(identity Identity) *StaticClient {
	return &StaticClient{
		identity:  &identity,
		listeners: make(map[int]func(*Identity)),
	}
}

func (c *StaticClient) CurrentIdentity() (Identity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.signedIn {
		return Identity{}, false
	}
	return *c.identity, true
}

func (c *StaticClient) OnIdentityChange(fn func(*Identity)) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.listeners, id)
		c.mu.Unlock()
	}
}

func (c *StaticClient) SignIn(ctx context.Context) error {
	c.mu.Lock()
	c.signedIn = true
	identity := *c.identity
	fns := c.listenersLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(&identity)
	}
	return nil
}

func (c *StaticClient) SignOut(ctx context.Context) error {
	c.mu.Lock()
	c.signedIn = false
	fns := c.listenersLocked()
	c.mu.Unlock()

	for _, fn := range fns {
		fn(nil)
	}
	return nil
}

// SwitchIdentity replaces the presented identity, announcing it when signed
// in. Used to simulate signing in as a different account.
func (c *StaticClient) SwitchIdentity(identity Identity) {
	c.mu.Lock()
	c.identity = &identity
	signedIn := c.signedIn
	fns := c.listenersLocked()
	c.mu.Unlock()

	if signedIn {
		for _, fn := range fns {
			fn(&identity)
		}
	}
}

func (c *StaticClient) listenersLocked() []func(*Identity) {
	fns := make([]func(*Identity), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	return fns
}
