package domain

import (
	"github.com/allisson/kyc/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrDecryptionFailed indicates a field token could not be decrypted.
	//
	// Possible causes: wrong key, truncated or corrupted ciphertext, or a
	// malformed token. The specific cause is not disclosed to callers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrInvalidInput, "decryption failed")

	// ErrMalformedToken indicates a field token is neither a valid
	// "iv_hex:ciphertext_hex" pair nor a decodable fallback encoding.
	ErrMalformedToken = errors.Wrap(errors.ErrInvalidInput, "malformed field token")
)
