// Package domain defines the encryption scheme tags and shared helpers for
// field-level cryptography.
package domain

// Scheme identifies how a sensitive field was encoded at rest. The scheme is
// stored alongside each record so readers can tell a properly encrypted
// record apart from one written through the degraded fallback path.
type Scheme string

const (
	// SchemeAESCBC is the standard scheme: AES-CBC with a fresh random IV
	// per field, serialized as "iv_hex:ciphertext_hex".
	SchemeAESCBC Scheme = "aes-256-cbc"

	// SchemeFallback marks a field that was written as plain base64 because
	// the cipher primitive failed (e.g. malformed key material). The value
	// is reversible but NOT confidential; high-assurance deployments must
	// refuse to trust fields carrying this tag.
	SchemeFallback Scheme = "fallback-base64"
)

// IsDegraded reports whether the scheme offers no real confidentiality.
func (s Scheme) IsDegraded() bool {
	return s == SchemeFallback
}
