package domain

import (
	"github.com/allisson/kyc/internal/errors"
)

// KYC-specific error definitions.
var (
	// ErrRecordNotFound indicates the requested KYC record does not exist.
	ErrRecordNotFound = errors.Wrap(errors.ErrNotFound, "kyc record not found")

	// ErrDuplicatePan indicates a record with the same PAN fingerprint
	// already exists. No record is created and no field is encrypted for
	// the rejected attempt.
	ErrDuplicatePan = errors.Wrap(errors.ErrConflict, "a record with this pan already exists")

	// ErrInvalidStatus indicates a status outside the accepted lifecycle
	// (pending, verified, rejected, expired).
	ErrInvalidStatus = errors.Wrap(errors.ErrInvalidInput, "invalid verification status")
)
