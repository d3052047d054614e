// Package mocks provides mock implementations for testing use cases.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
)

// MockRecordRepository is a mock implementation of RecordRepository for testing.
type MockRecordRepository struct {
	mock.Mock
}

// Create mocks the Create method of RecordRepository.
func (m *MockRecordRepository) Create(ctx context.Context, record *kycDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Get mocks the Get method of RecordRepository.
func (m *MockRecordRepository) Get(ctx context.Context, recordID uuid.UUID) (*kycDomain.Record, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kycDomain.Record), args.Error(1)
}

// Update mocks the Update method of RecordRepository.
func (m *MockRecordRepository) Update(ctx context.Context, record *kycDomain.Record) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

// Delete mocks the Delete method of RecordRepository.
func (m *MockRecordRepository) Delete(ctx context.Context, recordID uuid.UUID) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

// List mocks the List method of RecordRepository.
func (m *MockRecordRepository) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kycDomain.Record), args.Error(1)
}

// MockFingerprintRepository is a mock implementation of FingerprintRepository for testing.
type MockFingerprintRepository struct {
	mock.Mock
}

// Create mocks the Create method of FingerprintRepository.
func (m *MockFingerprintRepository) Create(
	ctx context.Context,
	fingerprint string,
	recordID uuid.UUID,
) error {
	args := m.Called(ctx, fingerprint, recordID)
	return args.Error(0)
}

// Exists mocks the Exists method of FingerprintRepository.
func (m *MockFingerprintRepository) Exists(ctx context.Context, fingerprint string) (bool, error) {
	args := m.Called(ctx, fingerprint)
	return args.Bool(0), args.Error(1)
}

// DeleteByRecordID mocks the DeleteByRecordID method of FingerprintRepository.
func (m *MockFingerprintRepository) DeleteByRecordID(ctx context.Context, recordID uuid.UUID) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}
