// Package passwords hashes and checks account passwords.
//
// Two encodings live side by side in the users table: the legacy unsalted
// SHA-256 hex digest and bcrypt. New hashes use the configured scheme while
// Check accepts either encoding, so changing the scheme does not lock out
// existing accounts.
package passwords

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const (
	SchemeSHA256 = "sha256"
	SchemeBcrypt = "bcrypt"
)

// ErrPasswordTooLong is returned by bcrypt hashing for passwords over 72 bytes.
var ErrPasswordTooLong = bcrypt.ErrPasswordTooLong

// Hasher produces a storable hash for a password and checks candidates
// against a stored hash.
type Hasher interface {
	Hash(password string) (string, error)
	Check(password, hash string) bool
}

// New returns the Hasher for scheme. cost is used by bcrypt only.
func New(scheme string, cost int) (Hasher, error) {
	switch scheme {
	case SchemeSHA256:
		return SHA256Hasher{}, nil
	case SchemeBcrypt:
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, bcrypt.MinCost, bcrypt.MaxCost)
		}
		return BcryptHasher{Cost: cost}, nil
	default:
		return nil, fmt.Errorf("unknown password hash scheme %q", scheme)
	}
}

// SHA256Hasher is the legacy deterministic digest: lowercase hex of
// SHA-256(password), no salt.
type SHA256Hasher struct{}

func (SHA256Hasher) Hash(password string) (string, error) {
	return digest(password), nil
}

func (SHA256Hasher) Check(password, hash string) bool {
	return check(password, hash)
}

// BcryptHasher stores salted bcrypt hashes.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

func (BcryptHasher) Check(password, hash string) bool {
	return check(password, hash)
}

func digest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$")
}

func check(password, hash string) bool {
	if isBcrypt(hash) {
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(digest(password)), []byte(hash)) == 1
}
