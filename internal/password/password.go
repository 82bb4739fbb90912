// Package password provides one-way hashing and verification of user
// passwords using bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
const DefaultCost = 10

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	// cost is the bcrypt work factor.
	cost int
}

// NewHasher constructs a Hasher with the given bcrypt cost.
// Costs outside bcrypt's valid range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns a salted bcrypt hash of the plaintext. bcrypt embeds a fresh
// random salt per call, so two hashes of the same plaintext differ.
func (h *Hasher) Hash(plaintext string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return hash, nil
}

// Verify reports whether plaintext matches the given bcrypt hash.
// Any mismatch, including a malformed hash, returns false.
func (h *Hasher) Verify(plaintext string, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}
