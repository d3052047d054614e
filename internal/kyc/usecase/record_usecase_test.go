package usecase

import (
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	cryptoDomain "github.com/allisson/kyc/internal/crypto/domain"
	cryptoService "github.com/allisson/kyc/internal/crypto/service"
	"github.com/allisson/kyc/internal/database"
	apperrors "github.com/allisson/kyc/internal/errors"
	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
	"github.com/allisson/kyc/internal/kyc/usecase/mocks"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const testEncryptionKey = "0123456789abcdef0123456789abcdef"

func newTestCipher(t *testing.T) cryptoService.FieldCipher {
	t.Helper()
	return cryptoService.NewAESCBCFieldCipher(testEncryptionKey, "", slog.New(slog.DiscardHandler))
}

// newDegradedCipher returns a cipher whose key cannot back an AES cipher, so
// every Encrypt call takes the base64 fallback path.
func newDegradedCipher(t *testing.T) cryptoService.FieldCipher {
	t.Helper()
	return cryptoService.NewAESCBCFieldCipher("short", "", slog.New(slog.DiscardHandler))
}

func newTestUseCase(
	t *testing.T,
	recordRepo RecordRepository,
	fingerprintRepo FingerprintRepository,
	cipher cryptoService.FieldCipher,
	policy Policy,
) RecordUseCase {
	t.Helper()
	return NewRecordUseCase(
		database.NoopTxManager{},
		recordRepo,
		fingerprintRepo,
		cipher,
		cryptoService.NewSHA256HashService(),
		policy,
		slog.New(slog.DiscardHandler),
	)
}

func mockRecordMatcher() interface{} {
	return mock.AnythingOfType("*domain.Record")
}

func mockUUIDMatcher() interface{} {
	return mock.AnythingOfType("uuid.UUID")
}

func testFingerprint(pan string) string {
	hashService := cryptoService.NewSHA256HashService()
	return hashService.Hash([]byte(strings.ToUpper(strings.TrimSpace(pan))))
}

func validCreateInput() CreateRecordInput {
	return CreateRecordInput{
		GovernmentID: "DL00112233",
		Address:      "221B Baker Street, Mumbai",
		DateOfBirth:  "1990-04-15",
		Pan:          "ABCDE1234F",
		Aadhaar:      "123456789012",
		CustomerRef:  "cust-42",
		Metadata: kycDomain.RequestMetadata{
			IP:        "203.0.113.10",
			UserAgent: "test-agent/1.0",
		},
	}
}

func encryptedTestRecord(t *testing.T, cipher cryptoService.FieldCipher) *kycDomain.Record {
	t.Helper()

	govToken, _ := cipher.Encrypt("DL00112233")
	dobToken, _ := cipher.Encrypt("1990-04-15")
	panToken, _ := cipher.Encrypt("ABCDE1234F")
	aadhaarToken, _ := cipher.Encrypt("123456789012")

	now := time.Now().UTC()
	return &kycDomain.Record{
		ID:               uuid.Must(uuid.NewV7()),
		CustomerRef:      "cust-42",
		GovernmentID:     govToken,
		DateOfBirth:      dobToken,
		Pan:              panToken,
		Aadhaar:          &aadhaarToken,
		PanFingerprint:   testFingerprint("ABCDE1234F"),
		Address:          "221B Baker Street, Mumbai",
		Status:           kycDomain.StatusPending,
		EncryptionScheme: cryptoDomain.SchemeAESCBC,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestRecordUseCase_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_CreatesPendingRecord", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		input := validCreateInput()
		fingerprint := testFingerprint(input.Pan)

		fingerprintRepo.On("Exists", ctx, fingerprint).Return(false, nil).Once()
		recordRepo.On("Create", ctx, mockRecordMatcher()).Return(nil).Once()
		fingerprintRepo.On("Create", ctx, fingerprint, mockUUIDMatcher()).Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		record, err := uc.Create(ctx, input)

		require.NoError(t, err)
		require.NotNil(t, record)
		assert.NotEqual(t, uuid.Nil, record.ID)
		assert.Equal(t, kycDomain.StatusPending, record.Status)
		assert.Equal(t, cryptoDomain.SchemeAESCBC, record.EncryptionScheme)
		assert.Equal(t, fingerprint, record.PanFingerprint)
		assert.Equal(t, input.Address, record.Address)
		assert.Equal(t, input.CustomerRef, record.CustomerRef)
		assert.Equal(t, input.Metadata.IP, record.SubmittedIP)
		assert.Equal(t, input.Metadata.UserAgent, record.UserAgent)
		assert.Nil(t, record.VerifiedAt)

		// Stored values are ciphertexts, not plaintexts.
		assert.NotEqual(t, input.Pan, record.Pan)
		assert.NotEqual(t, input.GovernmentID, record.GovernmentID)

		pan, err := cipher.Decrypt(record.Pan)
		require.NoError(t, err)
		assert.Equal(t, input.Pan, pan)

		gov, err := cipher.Decrypt(record.GovernmentID)
		require.NoError(t, err)
		assert.Equal(t, input.GovernmentID, gov)

		require.NotNil(t, record.Aadhaar)
		aadhaar, err := cipher.Decrypt(*record.Aadhaar)
		require.NoError(t, err)
		assert.Equal(t, input.Aadhaar, aadhaar)

		recordRepo.AssertExpectations(t)
		fingerprintRepo.AssertExpectations(t)
	})

	t.Run("Success_AadhaarOptionalWhenPolicyAllows", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()
		input.Aadhaar = ""

		fingerprintRepo.On("Exists", ctx, testFingerprint(input.Pan)).Return(false, nil).Once()
		recordRepo.On("Create", ctx, mockRecordMatcher()).Return(nil).Once()
		fingerprintRepo.On("Create", ctx, testFingerprint(input.Pan), mockUUIDMatcher()).
			Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Create(ctx, input)

		require.NoError(t, err)
		assert.Nil(t, record.Aadhaar)
	})

	t.Run("Error_MissingFieldsAggregated", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Create(ctx, CreateRecordInput{})

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "govID")
		assert.Contains(t, err.Error(), "kycAddress")
		assert.Contains(t, err.Error(), "kycDob")
		assert.Contains(t, err.Error(), "pan")
		recordRepo.AssertNotCalled(t, "Create")
		fingerprintRepo.AssertNotCalled(t, "Exists")
	})

	t.Run("Error_AadhaarRequiredByPolicy", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()
		input.Aadhaar = ""

		uc := newTestUseCase(
			t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{RequireAadhaar: true},
		)
		record, err := uc.Create(ctx, input)

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "aadhaar")
	})

	t.Run("Error_MalformedPan", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()
		input.Pan = "TOO-SHORT"

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Create(ctx, input)

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), "pan")
		fingerprintRepo.AssertNotCalled(t, "Exists")
	})

	t.Run("Error_MalformedAadhaar", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()
		input.Aadhaar = "12345"

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Create(ctx, input)

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	})

	t.Run("Error_DuplicatePan", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()

		fingerprintRepo.On("Exists", ctx, testFingerprint(input.Pan)).Return(true, nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Create(ctx, input)

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, kycDomain.ErrDuplicatePan)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
		recordRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Error_DuplicatePanCaseInsensitive", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()
		input.Pan = "abcde1234f"

		// The lowercase submission maps to the same fingerprint as the
		// uppercase one already on file.
		fingerprintRepo.On("Exists", ctx, testFingerprint("ABCDE1234F")).Return(true, nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		_, err := uc.Create(ctx, input)

		assert.ErrorIs(t, err, kycDomain.ErrDuplicatePan)
		fingerprintRepo.AssertExpectations(t)
	})

	t.Run("Success_DegradedCipherFallsBackInsteadOfFailing", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()

		fingerprintRepo.On("Exists", ctx, testFingerprint(input.Pan)).Return(false, nil).Once()
		recordRepo.On("Create", ctx, mockRecordMatcher()).Return(nil).Once()
		fingerprintRepo.On("Create", ctx, testFingerprint(input.Pan), mockUUIDMatcher()).
			Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newDegradedCipher(t), Policy{})
		record, err := uc.Create(ctx, input)

		require.NoError(t, err)
		assert.Equal(t, cryptoDomain.SchemeFallback, record.EncryptionScheme)
		assert.True(t, record.IsDegraded())
	})

	t.Run("Error_RepositoryFailurePropagates", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		input := validCreateInput()

		fingerprintRepo.On("Exists", ctx, testFingerprint(input.Pan)).Return(false, nil).Once()
		recordRepo.On("Create", ctx, mockRecordMatcher()).
			Return(apperrors.New("database is down")).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Create(ctx, input)

		require.Error(t, err)
		assert.Nil(t, record)
	})
}

func TestRecordUseCase_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_DecryptsAllFields", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		view, err := uc.Get(ctx, stored.ID)

		require.NoError(t, err)
		require.NotNil(t, view)
		assert.Equal(t, stored.ID, view.ID)
		require.NotNil(t, view.GovernmentID)
		assert.Equal(t, "DL00112233", *view.GovernmentID)
		require.NotNil(t, view.DateOfBirth)
		assert.Equal(t, "1990-04-15", *view.DateOfBirth)
		require.NotNil(t, view.Pan)
		assert.Equal(t, "ABCDE1234F", *view.Pan)
		require.NotNil(t, view.Aadhaar)
		assert.Equal(t, "123456789012", *view.Aadhaar)
		assert.Equal(t, stored.Address, view.Address)
		assert.Equal(t, stored.Status, view.Status)
	})

	t.Run("Success_UndecryptableFieldIsNil", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		stored.Pan = "zz:zz" // not valid hex

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		view, err := uc.Get(ctx, stored.ID)

		require.NoError(t, err)
		assert.Nil(t, view.Pan)
		require.NotNil(t, view.GovernmentID)
		assert.Equal(t, "DL00112233", *view.GovernmentID)
	})

	t.Run("Error_RecordNotFound", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		recordID := uuid.Must(uuid.NewV7())

		recordRepo.On("Get", ctx, recordID).Return(nil, kycDomain.ErrRecordNotFound).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		view, err := uc.Get(ctx, recordID)

		require.Error(t, err)
		assert.Nil(t, view)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRecordUseCase_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PanChangeReplacesFingerprint", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		newPan := "ZZZZZ9999X"
		newFingerprint := testFingerprint(newPan)

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		fingerprintRepo.On("Exists", ctx, newFingerprint).Return(false, nil).Once()
		fingerprintRepo.On("DeleteByRecordID", ctx, stored.ID).Return(nil).Once()
		fingerprintRepo.On("Create", ctx, newFingerprint, stored.ID).Return(nil).Once()
		recordRepo.On("Update", ctx, mockRecordMatcher()).Return(nil).Once()

		uc := newTestUseCase(
			t, recordRepo, fingerprintRepo, cipher, Policy{RecheckPanOnUpdate: true},
		)
		record, err := uc.Update(ctx, stored.ID, UpdateRecordInput{Pan: &newPan})

		require.NoError(t, err)
		assert.Equal(t, newFingerprint, record.PanFingerprint)
		pan, err := cipher.Decrypt(record.Pan)
		require.NoError(t, err)
		assert.Equal(t, newPan, pan)
		fingerprintRepo.AssertExpectations(t)
	})

	t.Run("Success_SamePanKeepsFingerprintButRotatesIV", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		oldToken := stored.Pan
		samePan := "ABCDE1234F"

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		recordRepo.On("Update", ctx, mockRecordMatcher()).Return(nil).Once()

		uc := newTestUseCase(
			t, recordRepo, fingerprintRepo, cipher, Policy{RecheckPanOnUpdate: true},
		)
		record, err := uc.Update(ctx, stored.ID, UpdateRecordInput{Pan: &samePan})

		require.NoError(t, err)
		assert.Equal(t, testFingerprint(samePan), record.PanFingerprint)
		assert.NotEqual(t, oldToken, record.Pan)
		fingerprintRepo.AssertNotCalled(t, "Exists")
		fingerprintRepo.AssertNotCalled(t, "DeleteByRecordID")
	})

	t.Run("Error_PanChangeHitsDuplicate", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		newPan := "ZZZZZ9999X"

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		fingerprintRepo.On("Exists", ctx, testFingerprint(newPan)).Return(true, nil).Once()

		uc := newTestUseCase(
			t, recordRepo, fingerprintRepo, cipher, Policy{RecheckPanOnUpdate: true},
		)
		record, err := uc.Update(ctx, stored.ID, UpdateRecordInput{Pan: &newPan})

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, kycDomain.ErrDuplicatePan)
		recordRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Success_RecheckDisabledSkipsExistsCheck", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		newPan := "ZZZZZ9999X"

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		fingerprintRepo.On("DeleteByRecordID", ctx, stored.ID).Return(nil).Once()
		fingerprintRepo.On("Create", ctx, testFingerprint(newPan), stored.ID).Return(nil).Once()
		recordRepo.On("Update", ctx, mockRecordMatcher()).Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		_, err := uc.Update(ctx, stored.ID, UpdateRecordInput{Pan: &newPan})

		require.NoError(t, err)
		fingerprintRepo.AssertNotCalled(t, "Exists")
	})

	t.Run("Success_EmptyAadhaarClearsField", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		empty := ""

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		recordRepo.On("Update", ctx, mockRecordMatcher()).Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		record, err := uc.Update(ctx, stored.ID, UpdateRecordInput{Aadhaar: &empty})

		require.NoError(t, err)
		assert.Nil(t, record.Aadhaar)
	})

	t.Run("Success_NonSensitiveFieldsCopiedVerbatim", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		address := "1 New Address Lane"
		customerRef := "cust-99"

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		recordRepo.On("Update", ctx, mockRecordMatcher()).Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		record, err := uc.Update(ctx, stored.ID, UpdateRecordInput{
			Address:     &address,
			CustomerRef: &customerRef,
		})

		require.NoError(t, err)
		assert.Equal(t, address, record.Address)
		assert.Equal(t, customerRef, record.CustomerRef)
	})

	t.Run("Error_MalformedPatchField", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)
		badDob := "not-a-date"

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		record, err := uc.Update(ctx, stored.ID, UpdateRecordInput{DateOfBirth: &badDob})

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		recordRepo.AssertNotCalled(t, "Update")
	})

	t.Run("Error_RecordNotFound", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		recordID := uuid.Must(uuid.NewV7())

		recordRepo.On("Get", ctx, recordID).Return(nil, kycDomain.ErrRecordNotFound).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.Update(ctx, recordID, UpdateRecordInput{})

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestRecordUseCase_SetVerificationStatus(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_MarksVerified", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		recordRepo.On("Update", ctx, mockRecordMatcher()).Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		record, err := uc.SetVerificationStatus(
			ctx, stored.ID, kycDomain.StatusVerified, "documents checked",
		)

		require.NoError(t, err)
		assert.Equal(t, kycDomain.StatusVerified, record.Status)
		assert.Equal(t, "documents checked", record.Notes)
		require.NotNil(t, record.VerifiedAt)
	})

	t.Run("Error_InvalidStatus", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		recordID := uuid.Must(uuid.NewV7())

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		record, err := uc.SetVerificationStatus(
			ctx, recordID, kycDomain.VerificationStatus("archived"), "",
		)

		require.Error(t, err)
		assert.Nil(t, record)
		assert.ErrorIs(t, err, kycDomain.ErrInvalidStatus)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		recordRepo.AssertNotCalled(t, "Get")
	})
}

func TestRecordUseCase_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_FreesPan", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		recordRepo.On("Delete", ctx, stored.ID).Return(nil).Once()
		fingerprintRepo.On("DeleteByRecordID", ctx, stored.ID).Return(nil).Once()

		uc := newTestUseCase(
			t, recordRepo, fingerprintRepo, cipher, Policy{FreePanOnDelete: true},
		)
		err := uc.Delete(ctx, stored.ID)

		require.NoError(t, err)
		fingerprintRepo.AssertExpectations(t)
	})

	t.Run("Success_FingerprintRetainedWhenPolicyDisabled", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)

		recordRepo.On("Get", ctx, stored.ID).Return(stored, nil).Once()
		recordRepo.On("Delete", ctx, stored.ID).Return(nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		err := uc.Delete(ctx, stored.ID)

		require.NoError(t, err)
		fingerprintRepo.AssertNotCalled(t, "DeleteByRecordID")
	})

	t.Run("Error_RecordNotFound", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		recordID := uuid.Must(uuid.NewV7())

		recordRepo.On("Get", ctx, recordID).Return(nil, kycDomain.ErrRecordNotFound).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, newTestCipher(t), Policy{})
		err := uc.Delete(ctx, recordID)

		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		recordRepo.AssertNotCalled(t, "Delete")
	})
}

func TestRecordUseCase_List(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PassesPaginationThrough", func(t *testing.T) {
		recordRepo := &mocks.MockRecordRepository{}
		fingerprintRepo := &mocks.MockFingerprintRepository{}
		cipher := newTestCipher(t)
		stored := encryptedTestRecord(t, cipher)

		recordRepo.On("List", ctx, 10, 50).Return([]*kycDomain.Record{stored}, nil).Once()

		uc := newTestUseCase(t, recordRepo, fingerprintRepo, cipher, Policy{})
		records, err := uc.List(ctx, 10, 50)

		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, stored.ID, records[0].ID)
	})
}
