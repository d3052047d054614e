// Package service implements field-level cryptography: the symmetric cipher
// that turns one plaintext string into one self-describing token, and the
// one-way hash used for duplicate lookups.
package service

import (
	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
)

// FieldCipher encrypts and decrypts a single sensitive field value.
type FieldCipher interface {
	// Encrypt returns a self-describing token for the plaintext together
	// with the scheme it was written under. Encrypt never fails: when the
	// cipher primitive is unusable it degrades to a reversible plain
	// encoding and reports SchemeFallback, so a submission is never lost
	// to a key misconfiguration. Callers must surface the degraded scheme.
	Encrypt(plaintext string) (token string, scheme cryptoDomain.Scheme)

	// Decrypt inverts Encrypt. A token with an "iv_hex:ciphertext_hex"
	// shape is decrypted; anything else is treated as the legacy fallback
	// encoding. Errors indicate an unreadable field, not a missing record.
	Decrypt(token string) (string, error)
}

// HashService provides cryptographic hashing for deterministic duplicate lookups.
type HashService interface {
	Hash(value []byte) string
}
