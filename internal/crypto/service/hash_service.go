package service

import (
	"crypto/sha256"
	"encoding/hex"
)

type sha256HashService struct{}

// NewSHA256HashService creates a new SHA-256 hash service. The digest is
// deterministic and keyless, which is what makes it usable as a duplicate
// fingerprint: the same PAN always maps to the same index entry, and the
// original value cannot be recovered from it.
func NewSHA256HashService() HashService {
	return &sha256HashService{}
}

// Hash computes the SHA-256 hash of the input value and returns it as a hex string.
func (s *sha256HashService) Hash(value []byte) string {
	hash := sha256.Sum256(value)
	return hex.EncodeToString(hash[:])
}
