package main

import (
	"context"
	"fmt"

	"github.com/yilun-hsu/smartnotes/internal/auth"
	"github.com/yilun-hsu/smartnotes/internal/config"
	"github.com/yilun-hsu/smartnotes/internal/db"
	"github.com/yilun-hsu/smartnotes/internal/session"
	"github.com/yilun-hsu/smartnotes/internal/store"
	syncpkg "github.com/yilun-hsu/smartnotes/internal/sync"
)

// app wires the configured backend, identity client, store, and session
// together for the lifetime of one command invocation.
type app struct {
	cfg     *config.Config
	auth    auth.Client
	store   *store.Store
	session *session.Session
	db      *db.DB
}

// openApp builds the full collaborator chain from configuration. The
// returned app already has a bound collection when credentials are
// available; callers must Close it.
func openApp() (*app, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	var backend syncpkg.Backend
	switch cfg.Mode {
	case config.ModeRemote:
		client := auth.NewTokenClient(cfg.Remote.TokenFile)
		if err := client.SignIn(context.Background()); err != nil {
			return nil, fmt.Errorf("sign in failed (store an access token at %s): %w", cfg.Remote.TokenFile, err)
		}
		a.auth = client
		backend = syncpkg.NewRemoteBackend(cfg.Remote.BaseURL, client.Token())
	default:
		database, err := db.Open(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		a.db = database
		client := auth.NewStaticClient(auth.Identity{
			ID:          syncpkg.LocalOwner,
			DisplayName: "This device",
		})
		if err := client.SignIn(context.Background()); err != nil {
			return nil, err
		}
		a.auth = client
		backend = syncpkg.NewLocalBackend(database)
	}

	a.store = store.New(backend)
	a.session = session.New(a.auth, a.store)
	a.session.Start()
	return a, nil
}

func (a *app) Close() {
	if a.session != nil {
		a.session.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}
