package commands

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"

	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
)

// RunGenerateEncryptionKey generates a cryptographically secure random key
// for field encryption and prints it base64-encoded, ready to be used as the
// ENCRYPTION_KEY environment variable.
//
// Valid sizes are the AES key lengths: 16, 24 or 32 bytes.
func RunGenerateEncryptionKey(w io.Writer, size int) error {
	switch size {
	case 16, 24, 32:
	default:
		return fmt.Errorf("invalid key size: %d (valid options: 16, 24, 32)", size)
	}

	key := make([]byte, size)
	if _, err := rand.Read(key); err != nil {
		return fmt.Errorf("failed to generate encryption key: %w", err)
	}

	encodedKey := base64.StdEncoding.EncodeToString(key)
	cryptoDomain.Zero(key)

	fmt.Fprintln(w, "# Add this to your environment:")
	fmt.Fprintf(w, "ENCRYPTION_KEY=\"%s\"\n", encodedKey)

	return nil
}
