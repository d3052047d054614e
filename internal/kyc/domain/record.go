// Package domain defines the core domain models for KYC onboarding records.
// Sensitive fields are stored as encrypted tokens; the PAN additionally gets
// a one-way fingerprint so duplicates can be detected without decrypting
// every stored record.
package domain

import (
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
)

// VerificationStatus is the review state of a KYC record.
type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
	StatusExpired  VerificationStatus = "expired"
)

// IsValid reports whether s is one of the four accepted statuses.
func (s VerificationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusVerified, StatusRejected, StatusExpired:
		return true
	}
	return false
}

// Record is the persisted KYC entity. Government ID, date of birth, PAN and
// Aadhaar are stored as encrypted field tokens; the address is deliberately
// kept in plaintext (it is not classified sensitive in this design).
type Record struct {
	// ID is the unique identifier, generated at creation and never reused.
	ID uuid.UUID
	// CustomerRef is the caller-supplied customer reference.
	CustomerRef string
	// GovernmentID is the encrypted government ID token.
	GovernmentID string
	// DateOfBirth is the encrypted date-of-birth token.
	DateOfBirth string
	// Pan is the encrypted PAN token.
	Pan string
	// Aadhaar is the encrypted Aadhaar token (nil when not submitted).
	Aadhaar *string
	// PanFingerprint is the one-way SHA-256 digest of the plaintext PAN,
	// used as the uniqueness key for duplicate detection.
	PanFingerprint string
	// Address is the plaintext residential address.
	Address string
	// Status is the verification lifecycle state.
	Status VerificationStatus
	// Notes holds reviewer notes recorded on status transitions.
	Notes string
	// EncryptionScheme tags how the sensitive fields were encoded. Records
	// written through the degraded fallback path carry SchemeFallback and
	// must not be trusted as confidential.
	EncryptionScheme cryptoDomain.Scheme
	// SubmittedIP and UserAgent capture the submission request metadata.
	SubmittedIP string
	UserAgent   string
	// CreatedAt and UpdatedAt are UTC timestamps.
	CreatedAt time.Time
	UpdatedAt time.Time
	// VerifiedAt is set on every status transition, including re-entering
	// pending (nil until the first transition).
	VerifiedAt *time.Time
}

// IsDegraded reports whether any sensitive field of the record was written
// through the fallback encoding.
func (r *Record) IsDegraded() bool {
	return r.EncryptionScheme.IsDegraded()
}

// DecryptedView is a read model of a record with sensitive fields decrypted.
// A field that fails decryption surfaces as nil rather than failing the whole
// view, so one corrupted token does not hide an otherwise readable record.
type DecryptedView struct {
	ID               uuid.UUID
	CustomerRef      string
	GovernmentID     *string
	DateOfBirth      *string
	Pan              *string
	Aadhaar          *string
	Address          string
	Status           VerificationStatus
	Notes            string
	EncryptionScheme cryptoDomain.Scheme
	SubmittedIP      string
	UserAgent        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	VerifiedAt       *time.Time
}

// RequestMetadata carries submission context captured by the HTTP layer.
type RequestMetadata struct {
	IP        string
	UserAgent string
}
