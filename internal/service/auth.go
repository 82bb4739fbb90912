// Package service provides the authentication business logic, delegating
// credential persistence, password hashing, and session state to injected
// collaborators.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/authgate/authgate/internal/models"
	"github.com/authgate/authgate/internal/shared"
)

// CredentialStore defines the persistence operations required by the
// authentication service.
type CredentialStore interface {
	// Register creates a new identity record. Returns shared.ErrConflict if
	// the username is already taken.
	Register(ctx context.Context, username string, passwordHash []byte) (*models.User, error)
	// Lookup returns the identity record for the username, or
	// shared.ErrNotFound if no such user exists.
	Lookup(ctx context.Context, username string) (*models.User, error)
}

// PasswordHasher defines one-way hashing and verification of passwords.
type PasswordHasher interface {
	// Hash returns a salted hash of the plaintext.
	Hash(plaintext string) ([]byte, error)
	// Verify reports whether plaintext matches the hash. False on any
	// mismatch, including a malformed hash.
	Verify(plaintext string, hash []byte) bool
}

// SessionBinder defines the session mutations the service performs.
type SessionBinder interface {
	// Bind attaches the identity to the session with the given id.
	Bind(ctx context.Context, id string, user models.PublicUser) error
	// Destroy terminates the session with the given id. Idempotent.
	Destroy(ctx context.Context, id string) error
}

// Service implements signup, login, logout and current-user resolution.
type Service struct {
	store    CredentialStore
	hasher   PasswordHasher
	sessions SessionBinder
}

// NewAuthService constructs a Service from its collaborators.
func NewAuthService(store CredentialStore, hasher PasswordHasher, sessions SessionBinder) *Service {
	return &Service{store: store, hasher: hasher, sessions: sessions}
}

// Signup registers a new identity and binds it to the session with the given
// id. It returns shared.ErrValidation if either field is empty and
// shared.ErrConflict if the username is taken. The returned view never
// carries the password hash.
func (s *Service) Signup(ctx context.Context, sessionID, username, pass string) (models.PublicUser, error) {
	if username == "" || pass == "" {
		return models.PublicUser{}, shared.ErrValidation
	}

	hash, err := s.hasher.Hash(pass)
	if err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}

	user, err := s.store.Register(ctx, username, hash)
	if err != nil {
		if errors.Is(err, shared.ErrConflict) {
			return models.PublicUser{}, shared.ErrConflict
		}
		return models.PublicUser{}, fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}

	public := user.Public()
	if err := s.sessions.Bind(ctx, sessionID, public); err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}
	return public, nil
}

// Login verifies the credentials and binds the identity to the session with
// the given id. An unknown username and a wrong password both return
// shared.ErrInvalidCredentials so the two cases cannot be told apart.
func (s *Service) Login(ctx context.Context, sessionID, username, pass string) (models.PublicUser, error) {
	if username == "" || pass == "" {
		return models.PublicUser{}, shared.ErrValidation
	}

	user, err := s.store.Lookup(ctx, username)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return models.PublicUser{}, shared.ErrInvalidCredentials
		}
		return models.PublicUser{}, fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}

	if !s.hasher.Verify(pass, user.PasswordHash) {
		return models.PublicUser{}, shared.ErrInvalidCredentials
	}

	public := user.Public()
	if err := s.sessions.Bind(ctx, sessionID, public); err != nil {
		return models.PublicUser{}, fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}
	return public, nil
}

// Logout destroys the session with the given id. Destroying an unknown or
// already-destroyed session is not an error.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessions.Destroy(ctx, sessionID); err != nil && !errors.Is(err, shared.ErrNotFound) {
		return fmt.Errorf("%w: %v", shared.ErrInternal, err)
	}
	return nil
}

// CurrentUser returns the identity bound to the resolved session, if any.
// Pure read, no side effects.
func (s *Service) CurrentUser(sess *models.Session) (models.PublicUser, bool) {
	if sess == nil || sess.State != models.StateBound || sess.User == nil {
		return models.PublicUser{}, false
	}
	return *sess.User, true
}
