package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/yilun-hsu/smartnotes/internal/errors"
	"github.com/yilun-hsu/smartnotes/internal/logging"
	"github.com/yilun-hsu/smartnotes/internal/models"
)

// RemoteBackend talks to the per-user record store. Submits are plain HTTP
// requests that do not touch local state; the websocket push channel is the
// sole source of visible collection changes, so a local action becomes
// visible only after the store echoes the resulting snapshot.
//
// Wire layout, keyed by owner:
//
//	POST   {base}/notes/{owner}          create, responds with the accepted note
//	PATCH  {base}/notes/{owner}/{id}     partial update
//	DELETE {base}/notes/{owner}/{id}     remove
//	GET    {base}/ws/notes/{owner}       websocket; every message is the full snapshot
type RemoteBackend struct {
	baseURL string
	token   string
	client  *http.Client
	dialer  *websocket.Dialer
}

// NewRemoteBackend creates a RemoteBackend for the given record store URL and
// bearer token.
func NewRemoteBackend(baseURL, token string) *RemoteBackend {
	return &RemoteBackend{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
		dialer:  websocket.DefaultDialer,
	}
}

// Subscribe dials the push channel for owner. The reader goroutine delivers
// snapshots in receipt order; after Unsubscribe no further deliveries occur.
func (b *RemoteBackend) Subscribe(owner string, fn SnapshotFunc) (Subscription, error) {
	if owner == "" {
		return nil, errors.New(errors.ErrNoOwner, "no identity for remote subscription")
	}

	wsURL := toWebsocketURL(b.baseURL) + "/ws/notes/" + owner
	header := http.Header{}
	if b.token != "" {
		header.Set("Authorization", "Bearer "+b.token)
	}

	conn, _, err := b.dialer.Dial(wsURL, header)
	if err != nil {
		return nil, errors.Wrap(errors.ErrBackendUnavailable, "failed to open push channel", err)
	}

	sub := &remoteSubscription{conn: conn}
	go sub.readLoop(owner, fn)
	return sub, nil
}

// SubmitCreate asks the store to persist a new note. The store assigns the
// id atomically with the write; a retried create after a timeout therefore
// cannot produce a duplicate.
func (b *RemoteBackend) SubmitCreate(ctx context.Context, owner string, fields models.NoteFields) (models.Note, error) {
	if owner == "" {
		return models.Note{}, errors.New(errors.ErrNoOwner, "no identity for remote create")
	}

	var note models.Note
	err := b.do(ctx, http.MethodPost, "/notes/"+owner, fields, &note)
	if err != nil {
		return models.Note{}, err
	}
	return note, nil
}

// SubmitUpdate sends a partial update for the note at id.
func (b *RemoteBackend) SubmitUpdate(ctx context.Context, owner, id string, patch models.Patch) error {
	if owner == "" {
		return errors.New(errors.ErrNoOwner, "no identity for remote update")
	}
	return b.do(ctx, http.MethodPatch, "/notes/"+owner+"/"+id, patch, nil)
}

// SubmitRemove deletes the note at id. A 404 from the store is treated as
// success: the note is gone either way.
func (b *RemoteBackend) SubmitRemove(ctx context.Context, owner, id string) error {
	if owner == "" {
		return errors.New(errors.ErrNoOwner, "no identity for remote remove")
	}
	err := b.do(ctx, http.MethodDelete, "/notes/"+owner+"/"+id, nil, nil)
	if errors.Is(err, errors.ErrNotFound) {
		return nil
	}
	return err
}

// do performs one JSON request against the record store and maps HTTP status
// codes onto the error taxonomy.
func (b *RemoteBackend) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, b.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		req.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(req)
	if err != nil {
		return errors.Wrap(errors.ErrBackendUnavailable, "record store unreachable", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return errors.New(errors.ErrNoOwner, "record store rejected the identity")
	case resp.StatusCode == http.StatusNotFound:
		return errors.New(errors.ErrNotFound, "record not found")
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return errors.New(errors.ErrBackendUnavailable,
			fmt.Sprintf("record store returned status %d", resp.StatusCode))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(errors.ErrBackendUnavailable, "failed to decode record store response", err)
		}
	}
	return nil
}

type remoteSubscription struct {
	conn   *websocket.Conn
	closed atomic.Bool
}

// readLoop pumps snapshots from the push channel. One goroutine per
// subscription: deliveries are inherently ordered by receipt.
func (s *remoteSubscription) readLoop(owner string, fn SnapshotFunc) {
	defer s.conn.Close()

	for {
		var snap map[string]models.Note
		if err := s.conn.ReadJSON(&snap); err != nil {
			if !s.closed.Load() && websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Warn("push channel closed", map[string]interface{}{
					"owner": owner,
					"error": err.Error(),
				})
			}
			return
		}
		// A close can race an in-flight read; never deliver after Unsubscribe.
		if s.closed.Load() {
			return
		}
		if snap == nil {
			snap = map[string]models.Note{}
		}
		if fn != nil {
			fn(Snapshot(snap))
		}
	}
}

func (s *remoteSubscription) Unsubscribe() {
	if s.closed.CompareAndSwap(false, true) {
		s.conn.Close()
	}
}

// toWebsocketURL rewrites an http(s) base URL onto the ws(s) scheme.
func toWebsocketURL(base string) string {
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://")
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://")
	}
	return base
}
