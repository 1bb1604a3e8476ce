// Package security provides the credential primitives: salt generation,
// password hashing, constant-time verification, and token generation.
// It is stateless; stored hashes and salts live on the user aggregate.
package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// Default hasher parameters
const (
	DefaultSaltLength = 16
	DefaultIterations = 210000
	DefaultKeyLength  = 32
)

// PasswordHasher derives and verifies password hashes using
// PBKDF2-SHA256 over salt plus the UTF-8 password bytes. The same
// (password, salt) pair always yields the same hash; a fresh salt is
// generated per account.
type PasswordHasher struct {
	saltLength int
	iterations int
	keyLength  int
}

// NewPasswordHasher creates a password hasher with the given parameters.
// Invalid parameters are a fatal configuration error: callers should
// abort startup rather than continue without a working hasher.
func NewPasswordHasher(saltLength, iterations, keyLength int) (*PasswordHasher, error) {
	if saltLength < 8 {
		return nil, fmt.Errorf("salt length %d is too short, need at least 8 bytes", saltLength)
	}
	if iterations < 1000 {
		return nil, fmt.Errorf("iteration count %d is too low, need at least 1000", iterations)
	}
	if keyLength < 16 {
		return nil, fmt.Errorf("key length %d is too short, need at least 16 bytes", keyLength)
	}

	return &PasswordHasher{
		saltLength: saltLength,
		iterations: iterations,
		keyLength:  keyLength,
	}, nil
}

// NewDefaultPasswordHasher creates a password hasher with default parameters
func NewDefaultPasswordHasher() *PasswordHasher {
	h, err := NewPasswordHasher(DefaultSaltLength, DefaultIterations, DefaultKeyLength)
	if err != nil {
		// Defaults are compile-time constants that satisfy the checks
		panic(err)
	}
	return h
}

// GenerateSalt returns a fresh cryptographically secure random salt
func (h *PasswordHasher) GenerateSalt() ([]byte, error) {
	salt := make([]byte, h.saltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the hash for the given password and salt.
// Deterministic: the same inputs always produce the same output.
func (h *PasswordHasher) HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, h.iterations, h.keyLength, sha256.New)
}

// VerifyPassword recomputes the hash with the stored salt and compares
// it to the stored hash in constant time. A length mismatch returns
// false without hashing; that leaks only the hash length, not its
// content.
func (h *PasswordHasher) VerifyPassword(password string, storedHash, storedSalt []byte) bool {
	if len(storedHash) != h.keyLength {
		return false
	}

	computed := h.HashPassword(password, storedSalt)
	return subtle.ConstantTimeCompare(computed, storedHash) == 1
}

// GenerateToken returns a secure random token of n bytes, encoded as
// unpadded URL-safe base64. Suitable for session and reset tokens.
func GenerateToken(n int) (string, error) {
	if n <= 0 {
		return "", fmt.Errorf("token length must be positive, got %d", n)
	}

	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}

// EncodeToString encodes a hash or salt for storage on the user record
func EncodeToString(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

// DecodeString decodes a stored hash or salt
func DecodeString(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
