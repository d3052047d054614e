// Package usecase implements the KYC record codec: validation gates, field
// encryption, duplicate-PAN detection and the record lifecycle. Use cases
// orchestrate repositories and the field cipher; they never touch the
// database or the HTTP layer directly.
package usecase

import (
	"context"

	"github.com/google/uuid"

	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
)

// RecordRepository defines the persistence interface for KYC records.
type RecordRepository interface {
	Create(ctx context.Context, record *kycDomain.Record) error
	Get(ctx context.Context, recordID uuid.UUID) (*kycDomain.Record, error)
	Update(ctx context.Context, record *kycDomain.Record) error
	Delete(ctx context.Context, recordID uuid.UUID) error
	List(ctx context.Context, offset, limit int) ([]*kycDomain.Record, error)
}

// FingerprintRepository defines the persistence interface for the PAN
// fingerprint index. The store must enforce fingerprint uniqueness (SQL
// repositories do this with a unique constraint); Create returns
// ErrDuplicatePan on a collision.
type FingerprintRepository interface {
	Create(ctx context.Context, fingerprint string, recordID uuid.UUID) error
	Exists(ctx context.Context, fingerprint string) (bool, error)
	DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error
}

// CreateRecordInput carries the raw submission fields for a new record.
type CreateRecordInput struct {
	GovernmentID string
	Address      string
	DateOfBirth  string
	Pan          string
	Aadhaar      string // optional unless policy requires it
	CustomerRef  string
	Metadata     kycDomain.RequestMetadata
}

// UpdateRecordInput is a patch: nil fields are left untouched. Sensitive
// fields present in the patch are re-validated and re-encrypted with a
// fresh IV; non-sensitive fields are copied verbatim.
type UpdateRecordInput struct {
	GovernmentID *string
	DateOfBirth  *string
	Pan          *string
	Aadhaar      *string // empty string clears the field
	Address      *string
	CustomerRef  *string
}

// Policy holds the deployment-variant decisions that differ between
// installations and therefore live in configuration.
type Policy struct {
	// RequireAadhaar makes the Aadhaar number mandatory on creation.
	RequireAadhaar bool
	// RecheckPanOnUpdate re-runs the duplicate check when an update
	// changes the PAN.
	RecheckPanOnUpdate bool
	// FreePanOnDelete removes the fingerprint with the record so the PAN
	// can be registered again.
	FreePanOnDelete bool
}

// RecordUseCase defines the KYC record management business logic.
type RecordUseCase interface {
	// Create validates, encrypts and persists a new record with status
	// pending. Returns ErrInvalidInput (aggregating all missing fields, or
	// naming the first malformed one) or ErrDuplicatePan.
	Create(ctx context.Context, input CreateRecordInput) (*kycDomain.Record, error)
	// Get returns a decrypted view of the record. Fields that fail
	// decryption are nil in the view; the call itself only fails when the
	// record does not exist.
	Get(ctx context.Context, recordID uuid.UUID) (*kycDomain.DecryptedView, error)
	// Update applies a patch, re-encrypting any sensitive field it touches.
	Update(ctx context.Context, recordID uuid.UUID, patch UpdateRecordInput) (*kycDomain.Record, error)
	// SetVerificationStatus moves the record through its review lifecycle.
	SetVerificationStatus(
		ctx context.Context,
		recordID uuid.UUID,
		status kycDomain.VerificationStatus,
		notes string,
	) (*kycDomain.Record, error)
	// Delete removes the record and, policy permitting, its fingerprint.
	Delete(ctx context.Context, recordID uuid.UUID) error
	// List returns record metadata without decrypting anything.
	List(ctx context.Context, offset, limit int) ([]*kycDomain.Record, error)
}
