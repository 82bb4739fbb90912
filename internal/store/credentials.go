// Package store provides the in-memory persistence implementations for the
// authentication service.
package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/authgate/authgate/internal/models"
	"github.com/authgate/authgate/internal/shared"
)

// CredentialStore holds one record per registered identity, keyed by
// username. Records are append-only: no update or delete is exposed.
type CredentialStore struct {
	mu    sync.Mutex
	users map[string]*models.User
}

// NewCredentialStore creates an empty CredentialStore.
func NewCredentialStore() *CredentialStore {
	return &CredentialStore{users: make(map[string]*models.User)}
}

// Register creates a new identity record with a freshly generated unique id.
// It fails with shared.ErrConflict if the username is already taken
// (case-sensitive exact match). The check and the insert happen under one
// lock, so exactly one of N concurrent registrations for the same username
// succeeds.
func (s *CredentialStore) Register(ctx context.Context, username string, passwordHash []byte) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, shared.ErrConflict
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}
	s.users[username] = user

	rec := *user
	return &rec, nil
}

// Lookup returns the identity record for the given username, or
// shared.ErrNotFound if no such user exists. No side effects.
func (s *CredentialStore) Lookup(ctx context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return nil, shared.ErrNotFound
	}

	rec := *user
	return &rec, nil
}
