// Package repository provides the PostgreSQL-backed persistence
// implementation for the credential store.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/authgate/authgate/internal/models"
	"github.com/authgate/authgate/internal/shared"
)

// PostgresCredentialStore implements credential storage using a PostgreSQL
// database. Username uniqueness is enforced by the primary key.
type PostgresCredentialStore struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresCredentialStore creates a new PostgresCredentialStore with the
// given database connection. db must be a valid *sql.DB connected to a
// PostgreSQL instance.
func NewPostgresCredentialStore(db *sql.DB) *PostgresCredentialStore {
	return &PostgresCredentialStore{DB: db}
}

// Register inserts a new identity record with a freshly generated id.
// A unique-constraint violation on username is returned as shared.ErrConflict.
func (s *PostgresCredentialStore) Register(ctx context.Context, username string, passwordHash []byte) (*models.User, error) {
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
	}

	_, err := s.DB.ExecContext(
		ctx,
		`INSERT INTO users (id, username, password_hash) VALUES ($1, $2, $3)`,
		user.ID, user.Username, user.PasswordHash,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, shared.ErrConflict
		}
		return nil, fmt.Errorf("register user: %w", err)
	}

	return user, nil
}

// Lookup returns the identity record for the given username, or
// shared.ErrNotFound if no row matches.
func (s *PostgresCredentialStore) Lookup(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	err := s.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash FROM users WHERE username = $1`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, shared.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	return user, nil
}
