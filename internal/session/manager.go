// Package session manages server-side session records: creation, lookup,
// binding to a user, and destruction.
package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"sync"
	"time"

	"github.com/authgate/authgate/internal/models"
	"github.com/authgate/authgate/internal/shared"
)

// DefaultTTL is the fixed session lifetime used when none is configured.
const DefaultTTL = 24 * time.Hour

// idBytes is the entropy of a session identifier before encoding.
const idBytes = 32

// Manager owns the session table. Each record moves through the states
// Unbound -> Bound -> Destroyed; Destroyed is terminal. Expiry is a fixed
// timestamp set at creation and checked lazily on Resolve.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
	ttl      time.Duration

	// now is swapped out in tests to control expiry.
	now func() time.Time
}

// NewManager creates a Manager with the given session TTL.
// A non-positive ttl falls back to DefaultTTL.
func NewManager(ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

// newID returns a cryptographically random, unguessable session identifier.
func newID() (string, error) {
	buf := make([]byte, idBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Resolve returns the live session for the given transport identifier, or
// nil if the identifier is empty, unknown, destroyed, or expired. An expired
// record is removed from the table on the spot.
func (m *Manager) Resolve(ctx context.Context, id string) *models.Session {
	if id == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveLocked(id)
}

// resolveLocked is Resolve without locking. Callers must hold m.mu.
func (m *Manager) resolveLocked(id string) *models.Session {
	sess, ok := m.sessions[id]
	if !ok || sess.State == models.StateDestroyed {
		return nil
	}
	if !m.now().Before(sess.ExpiresAt) {
		sess.State = models.StateDestroyed
		delete(m.sessions, id)
		return nil
	}

	out := *sess
	return &out
}

// CreateOrReuse returns the live session for the given identifier if one
// exists, or allocates a new Unbound record with a fresh identifier and a
// fixed expiry. The returned id must be handed back to the transport layer
// as the client's cookie value.
func (m *Manager) CreateOrReuse(ctx context.Context, id string) (*models.Session, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id != "" {
		if sess := m.resolveLocked(id); sess != nil {
			return sess, sess.ID, nil
		}
	}

	sid, err := newID()
	if err != nil {
		return nil, "", err
	}

	created := m.now()
	sess := &models.Session{
		ID:        sid,
		State:     models.StateUnbound,
		CreatedAt: created,
		ExpiresAt: created.Add(m.ttl),
	}
	m.sessions[sid] = sess

	out := *sess
	return &out, sid, nil
}

// Bind attaches the given identity to the session, transitioning it from
// Unbound to Bound. Binding an already-Bound session to the same identity is
// a no-op; binding to a different identity overwrites the previous one.
// Destroyed or unknown sessions cannot be bound.
func (m *Manager) Bind(ctx context.Context, id string, user models.PublicUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok || sess.State == models.StateDestroyed {
		return shared.ErrNotFound
	}

	sess.State = models.StateBound
	sess.User = &user
	return nil
}

// Destroy transitions the session to its terminal state and removes it from
// the table. Destroying an unknown identifier is treated as already
// destroyed: logout is idempotent.
func (m *Manager) Destroy(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	sess, ok := m.sessions[id]
	if !ok {
		return nil
	}

	sess.State = models.StateDestroyed
	delete(m.sessions, id)
	return nil
}

// Len reports the number of live records in the session table.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
