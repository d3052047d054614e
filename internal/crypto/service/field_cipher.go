package service

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"log/slog"
	"strings"

	"golang.org/x/crypto/pbkdf2"

	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
)

// tokenDelimiter separates the IV from the ciphertext in a field token.
const tokenDelimiter = ":"

// pbkdf2Iterations is the iteration count used when a salt is configured.
const pbkdf2Iterations = 4096

// AESCBCFieldCipher implements FieldCipher using AES in CBC mode with PKCS#7
// padding. Every Encrypt call draws a fresh random IV, so identical
// plaintexts produce different tokens.
//
// The cipher is stateless and safe for concurrent use. The key is checked at
// encryption time, not construction time: a cipher built from malformed key
// material still accepts writes through the fallback encoding rather than
// rejecting submissions outright.
type AESCBCFieldCipher struct {
	key    []byte
	logger *slog.Logger
}

// NewAESCBCFieldCipher creates a field cipher from the configured key material.
//
// When salt is non-empty, a 32-byte key is derived via PBKDF2-SHA256 and the
// cipher is always usable. Otherwise the material is used directly: base64 is
// decoded if it yields a valid AES key length (16, 24 or 32 bytes), raw bytes
// are used as-is. Raw material of the wrong length is kept — every Encrypt
// will then take the fallback path, which is logged and tagged.
func NewAESCBCFieldCipher(keyMaterial, salt string, logger *slog.Logger) *AESCBCFieldCipher {
	var key []byte
	switch {
	case salt != "":
		key = pbkdf2.Key([]byte(keyMaterial), []byte(salt), pbkdf2Iterations, 32, sha256.New)
	default:
		key = resolveRawKey(keyMaterial)
	}

	return &AESCBCFieldCipher{
		key:    key,
		logger: logger,
	}
}

// resolveRawKey decodes base64 key material when it yields a valid AES key
// length, otherwise returns the raw bytes unchanged.
func resolveRawKey(keyMaterial string) []byte {
	if decoded, err := base64.StdEncoding.DecodeString(keyMaterial); err == nil {
		switch len(decoded) {
		case 16, 24, 32:
			return decoded
		}
	}
	return []byte(keyMaterial)
}

// Encrypt encrypts plaintext and returns "iv_hex:ciphertext_hex" with a fresh
// random IV. If the cipher primitive cannot be constructed or the IV cannot
// be drawn, it logs the failure and returns the base64 fallback encoding
// tagged SchemeFallback instead of an error.
func (c *AESCBCFieldCipher) Encrypt(plaintext string) (string, cryptoDomain.Scheme) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		c.logger.Error("field encryption degraded to fallback encoding",
			slog.Any("error", err),
			slog.Int("key_length", len(c.key)),
		)
		return base64.StdEncoding.EncodeToString([]byte(plaintext)), cryptoDomain.SchemeFallback
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		c.logger.Error("field encryption degraded to fallback encoding",
			slog.Any("error", err),
		)
		return base64.StdEncoding.EncodeToString([]byte(plaintext)), cryptoDomain.SchemeFallback
	}

	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	ciphertext := make([]byte, len(padded))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, padded)
	cryptoDomain.Zero(padded)

	token := hex.EncodeToString(iv) + tokenDelimiter + hex.EncodeToString(ciphertext)
	return token, cryptoDomain.SchemeAESCBC
}

// Decrypt recovers the plaintext from a field token. Tokens containing the
// delimiter are decrypted as IV + ciphertext; tokens without it are decoded
// as the legacy fallback encoding.
func (c *AESCBCFieldCipher) Decrypt(token string) (string, error) {
	parts := strings.SplitN(token, tokenDelimiter, 2)
	if len(parts) != 2 {
		// Legacy/fallback encoding: plain base64 of the original value.
		decoded, err := base64.StdEncoding.DecodeString(token)
		if err != nil {
			return "", cryptoDomain.ErrMalformedToken
		}
		return string(decoded), nil
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil || len(iv) != aes.BlockSize {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	ciphertext, err := hex.DecodeString(parts[1])
	if err != nil || len(ciphertext) == 0 || len(ciphertext)%aes.BlockSize != 0 {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	unpadded, err := pkcs7Unpad(plaintext, aes.BlockSize)
	if err != nil {
		return "", cryptoDomain.ErrDecryptionFailed
	}

	return string(unpadded), nil
}

// pkcs7Pad appends PKCS#7 padding up to the block size.
func pkcs7Pad(data []byte, blockSize int) []byte {
	padLen := blockSize - len(data)%blockSize
	return append(data, bytes.Repeat([]byte{byte(padLen)}, padLen)...)
}

// pkcs7Unpad strips and validates PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) ([]byte, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	padLen := int(data[len(data)-1])
	if padLen == 0 || padLen > blockSize || padLen > len(data) {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	for _, b := range data[len(data)-padLen:] {
		if int(b) != padLen {
			return nil, cryptoDomain.ErrDecryptionFailed
		}
	}

	return data[:len(data)-padLen], nil
}
