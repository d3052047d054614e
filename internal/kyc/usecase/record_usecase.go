package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
	cryptoService "github.com/allisson/kyc/internal/crypto/service"
	"github.com/allisson/kyc/internal/database"
	apperrors "github.com/allisson/kyc/internal/errors"
	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
	"github.com/allisson/kyc/internal/validation"
)

// Field names as they appear in the submission payload, used in error
// messages so the caller can map failures back to form fields.
const (
	fieldGovernmentID = "govID"
	fieldAddress      = "kycAddress"
	fieldDateOfBirth  = "kycDob"
	fieldPan          = "pan"
	fieldAadhaar      = "aadhaar"
)

// recordUseCase implements RecordUseCase.
type recordUseCase struct {
	txManager       database.TxManager
	recordRepo      RecordRepository
	fingerprintRepo FingerprintRepository
	fieldCipher     cryptoService.FieldCipher
	hashService     cryptoService.HashService
	policy          Policy
	logger          *slog.Logger
}

// NewRecordUseCase creates a RecordUseCase with injected dependencies.
func NewRecordUseCase(
	txManager database.TxManager,
	recordRepo RecordRepository,
	fingerprintRepo FingerprintRepository,
	fieldCipher cryptoService.FieldCipher,
	hashService cryptoService.HashService,
	policy Policy,
	logger *slog.Logger,
) RecordUseCase {
	return &recordUseCase{
		txManager:       txManager,
		recordRepo:      recordRepo,
		fingerprintRepo: fingerprintRepo,
		fieldCipher:     fieldCipher,
		hashService:     hashService,
		policy:          policy,
		logger:          logger,
	}
}

// panFingerprint derives the duplicate-detection fingerprint. The PAN is
// case-insensitive, so it is normalized before hashing — the same PAN in a
// different case must map to the same index entry.
func (r *recordUseCase) panFingerprint(pan string) string {
	normalized := strings.ToUpper(strings.TrimSpace(pan))
	return r.hashService.Hash([]byte(normalized))
}

// fieldError builds the invalid-input error for a single malformed field.
func fieldError(field, reason string) error {
	return apperrors.Wrap(apperrors.ErrInvalidInput, fmt.Sprintf("%s: %s", field, reason))
}

// Create validates, encrypts and persists a new KYC record.
//
// The order matters: presence and format gates run before the fingerprint
// check, and the fingerprint check runs before any cipher call, so no
// plaintext secret is ever encrypted for a submission that cannot be
// accepted.
func (r *recordUseCase) Create(
	ctx context.Context,
	input CreateRecordInput,
) (*kycDomain.Record, error) {
	// Presence check: all missing mandatory fields reported at once.
	var missing []string
	if strings.TrimSpace(input.GovernmentID) == "" {
		missing = append(missing, fieldGovernmentID)
	}
	if strings.TrimSpace(input.Address) == "" {
		missing = append(missing, fieldAddress)
	}
	if strings.TrimSpace(input.DateOfBirth) == "" {
		missing = append(missing, fieldDateOfBirth)
	}
	if strings.TrimSpace(input.Pan) == "" {
		missing = append(missing, fieldPan)
	}
	if r.policy.RequireAadhaar && strings.TrimSpace(input.Aadhaar) == "" {
		missing = append(missing, fieldAadhaar)
	}
	if len(missing) > 0 {
		return nil, apperrors.Wrap(
			apperrors.ErrInvalidInput,
			"missing required fields: "+strings.Join(missing, ", "),
		)
	}

	// Format gates, fixed order, first failure short-circuits. The presence
	// gate already rejected blank values, which the rules would skip.
	if err := validation.GovernmentID.Validate(input.GovernmentID); err != nil {
		return nil, fieldError(fieldGovernmentID, err.Error())
	}
	if err := validation.Pan.Validate(input.Pan); err != nil {
		return nil, fieldError(fieldPan, err.Error())
	}
	hasAadhaar := strings.TrimSpace(input.Aadhaar) != ""
	if hasAadhaar {
		if err := validation.Aadhaar.Validate(input.Aadhaar); err != nil {
			return nil, fieldError(fieldAadhaar, err.Error())
		}
	}
	if err := validation.CalendarDate.Validate(input.DateOfBirth); err != nil {
		return nil, fieldError(fieldDateOfBirth, err.Error())
	}

	// Duplicate detection before any cipher call. The pre-check gives a
	// clean error without paying for encryption; the unique constraint on
	// the fingerprint store remains the authoritative guard against
	// concurrent submissions of the same PAN.
	fingerprint := r.panFingerprint(input.Pan)
	exists, err := r.fingerprintRepo.Exists(ctx, fingerprint)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, kycDomain.ErrDuplicatePan
	}

	// Encrypt each sensitive field independently; every call draws its own IV.
	scheme := cryptoDomain.SchemeAESCBC
	govToken, govScheme := r.fieldCipher.Encrypt(input.GovernmentID)
	dobToken, dobScheme := r.fieldCipher.Encrypt(input.DateOfBirth)
	panToken, panScheme := r.fieldCipher.Encrypt(strings.TrimSpace(input.Pan))
	var aadhaarToken *string
	if hasAadhaar {
		token, aadhaarScheme := r.fieldCipher.Encrypt(strings.TrimSpace(input.Aadhaar))
		aadhaarToken = &token
		if aadhaarScheme.IsDegraded() {
			scheme = cryptoDomain.SchemeFallback
		}
	}
	if govScheme.IsDegraded() || dobScheme.IsDegraded() || panScheme.IsDegraded() {
		scheme = cryptoDomain.SchemeFallback
	}

	now := time.Now().UTC()
	record := &kycDomain.Record{
		ID:               uuid.Must(uuid.NewV7()),
		CustomerRef:      input.CustomerRef,
		GovernmentID:     govToken,
		DateOfBirth:      dobToken,
		Pan:              panToken,
		Aadhaar:          aadhaarToken,
		PanFingerprint:   fingerprint,
		Address:          input.Address,
		Status:           kycDomain.StatusPending,
		EncryptionScheme: scheme,
		SubmittedIP:      input.Metadata.IP,
		UserAgent:        input.Metadata.UserAgent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	// Record and fingerprint are registered as one unit.
	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.recordRepo.Create(ctx, record); err != nil {
			return err
		}
		return r.fingerprintRepo.Create(ctx, fingerprint, record.ID)
	})
	if err != nil {
		return nil, err
	}

	if record.IsDegraded() {
		r.logger.Warn("kyc record stored with degraded encryption",
			slog.String("record_id", record.ID.String()),
		)
	}

	return record, nil
}

// Get returns a decrypted view of the record. Decryption failures are
// contained per field: the failed field is nil, everything else is readable.
func (r *recordUseCase) Get(
	ctx context.Context,
	recordID uuid.UUID,
) (*kycDomain.DecryptedView, error) {
	record, err := r.recordRepo.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	view := &kycDomain.DecryptedView{
		ID:               record.ID,
		CustomerRef:      record.CustomerRef,
		GovernmentID:     r.decryptField(record.ID, fieldGovernmentID, record.GovernmentID),
		DateOfBirth:      r.decryptField(record.ID, fieldDateOfBirth, record.DateOfBirth),
		Pan:              r.decryptField(record.ID, fieldPan, record.Pan),
		Address:          record.Address,
		Status:           record.Status,
		Notes:            record.Notes,
		EncryptionScheme: record.EncryptionScheme,
		SubmittedIP:      record.SubmittedIP,
		UserAgent:        record.UserAgent,
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
		VerifiedAt:       record.VerifiedAt,
	}
	if record.Aadhaar != nil {
		view.Aadhaar = r.decryptField(record.ID, fieldAadhaar, *record.Aadhaar)
	}

	return view, nil
}

// decryptField decrypts one token, returning nil on failure.
func (r *recordUseCase) decryptField(recordID uuid.UUID, field, token string) *string {
	plaintext, err := r.fieldCipher.Decrypt(token)
	if err != nil {
		r.logger.Warn("field decryption failed",
			slog.String("record_id", recordID.String()),
			slog.String("field", field),
			slog.Any("error", err),
		)
		return nil
	}
	return &plaintext
}

// Update applies a patch to an existing record. Patched sensitive fields are
// re-validated and re-encrypted with a fresh IV even when the plaintext is
// unchanged; the old ciphertext is discarded.
func (r *recordUseCase) Update(
	ctx context.Context,
	recordID uuid.UUID,
	patch UpdateRecordInput,
) (*kycDomain.Record, error) {
	record, err := r.recordRepo.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	degraded := false
	fingerprintChanged := false
	oldFingerprint := record.PanFingerprint

	if patch.GovernmentID != nil {
		if !validation.IsGovernmentID(*patch.GovernmentID) {
			return nil, fieldError(fieldGovernmentID, "must be 5-20 alphanumeric characters")
		}
		token, scheme := r.fieldCipher.Encrypt(*patch.GovernmentID)
		record.GovernmentID = token
		degraded = degraded || scheme.IsDegraded()
	}

	if patch.Pan != nil {
		if !validation.IsPan(*patch.Pan) {
			return nil, fieldError(fieldPan, "must be exactly 10 alphanumeric characters")
		}
		newFingerprint := r.panFingerprint(*patch.Pan)
		if newFingerprint != oldFingerprint {
			if r.policy.RecheckPanOnUpdate {
				exists, err := r.fingerprintRepo.Exists(ctx, newFingerprint)
				if err != nil {
					return nil, err
				}
				if exists {
					return nil, kycDomain.ErrDuplicatePan
				}
			}
			record.PanFingerprint = newFingerprint
			fingerprintChanged = true
		}
		token, scheme := r.fieldCipher.Encrypt(strings.TrimSpace(*patch.Pan))
		record.Pan = token
		degraded = degraded || scheme.IsDegraded()
	}

	if patch.Aadhaar != nil {
		if strings.TrimSpace(*patch.Aadhaar) == "" {
			record.Aadhaar = nil
		} else {
			if !validation.IsAadhaar(*patch.Aadhaar) {
				return nil, fieldError(fieldAadhaar, "must be exactly 12 digits")
			}
			token, scheme := r.fieldCipher.Encrypt(strings.TrimSpace(*patch.Aadhaar))
			record.Aadhaar = &token
			degraded = degraded || scheme.IsDegraded()
		}
	}

	if patch.DateOfBirth != nil {
		if !validation.IsCalendarDate(*patch.DateOfBirth) {
			return nil, fieldError(fieldDateOfBirth, "must be a valid calendar date")
		}
		token, scheme := r.fieldCipher.Encrypt(*patch.DateOfBirth)
		record.DateOfBirth = token
		degraded = degraded || scheme.IsDegraded()
	}

	if patch.Address != nil {
		record.Address = *patch.Address
	}
	if patch.CustomerRef != nil {
		record.CustomerRef = *patch.CustomerRef
	}

	if degraded {
		record.EncryptionScheme = cryptoDomain.SchemeFallback
	}
	record.UpdatedAt = time.Now().UTC()

	err = r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if fingerprintChanged {
			if err := r.fingerprintRepo.DeleteByRecordID(ctx, record.ID); err != nil {
				return err
			}
			// The unique constraint still guards against a concurrent
			// registration of the same PAN between check and write.
			if err := r.fingerprintRepo.Create(ctx, record.PanFingerprint, record.ID); err != nil {
				return err
			}
		}
		return r.recordRepo.Update(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

// SetVerificationStatus moves a record through its review lifecycle. Every
// accepted transition records the notes and a verification timestamp,
// including transitions back to pending.
func (r *recordUseCase) SetVerificationStatus(
	ctx context.Context,
	recordID uuid.UUID,
	status kycDomain.VerificationStatus,
	notes string,
) (*kycDomain.Record, error) {
	if !status.IsValid() {
		return nil, kycDomain.ErrInvalidStatus
	}

	record, err := r.recordRepo.Get(ctx, recordID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	record.Status = status
	record.Notes = notes
	record.VerifiedAt = &now
	record.UpdatedAt = now

	if err := r.recordRepo.Update(ctx, record); err != nil {
		return nil, err
	}

	return record, nil
}

// Delete removes the record and, when the policy frees the PAN, its
// fingerprint entry — both inside one transaction so a failure cannot leave
// an orphaned fingerprint blocking PAN reuse.
func (r *recordUseCase) Delete(ctx context.Context, recordID uuid.UUID) error {
	if _, err := r.recordRepo.Get(ctx, recordID); err != nil {
		return err
	}

	return r.txManager.WithTx(ctx, func(ctx context.Context) error {
		if err := r.recordRepo.Delete(ctx, recordID); err != nil {
			return err
		}
		if r.policy.FreePanOnDelete {
			return r.fingerprintRepo.DeleteByRecordID(ctx, recordID)
		}
		return nil
	})
}

// List returns record metadata; nothing is decrypted.
func (r *recordUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	return r.recordRepo.List(ctx, offset, limit)
}
