// Package auth holds the credential and session primitives: bcrypt password
// digests and signed session tokens.
package auth

import (
	"errors"

	"task-server/apperrors"

	"golang.org/x/crypto/bcrypt"
)

// Credentials hashes and verifies passwords at a fixed bcrypt cost.
type Credentials struct {
	cost int
}

func NewCredentials(cost int) *Credentials {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Credentials{cost: cost}
}

// Hash returns a salted bcrypt digest of plaintext. Every call uses a fresh salt.
func (c *Credentials) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), c.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperrors.InvalidArgument("Password is too long")
		}
		return "", apperrors.Internal("hash password", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A malformed digest is a
// mismatch, never an error.
func (c *Credentials) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// Rotate returns a digest of newPlaintext if oldPlaintext verifies against
// storedDigest. The caller persists the result; on error nothing changes.
func (c *Credentials) Rotate(oldPlaintext, newPlaintext, storedDigest string) (string, error) {
	if !c.Verify(oldPlaintext, storedDigest) {
		return "", apperrors.InvalidCredential("Old password is incorrect")
	}
	return c.Hash(newPlaintext)
}
