// Package mocks provides mock implementations for testing HTTP handlers.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
	kycUseCase "github.com/allisson/kyc/internal/kyc/usecase"
)

// MockRecordUseCase is a mock implementation of RecordUseCase for testing.
type MockRecordUseCase struct {
	mock.Mock
}

// Create mocks the Create method of RecordUseCase.
func (m *MockRecordUseCase) Create(
	ctx context.Context,
	input kycUseCase.CreateRecordInput,
) (*kycDomain.Record, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kycDomain.Record), args.Error(1)
}

// Get mocks the Get method of RecordUseCase.
func (m *MockRecordUseCase) Get(
	ctx context.Context,
	recordID uuid.UUID,
) (*kycDomain.DecryptedView, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kycDomain.DecryptedView), args.Error(1)
}

// Update mocks the Update method of RecordUseCase.
func (m *MockRecordUseCase) Update(
	ctx context.Context,
	recordID uuid.UUID,
	patch kycUseCase.UpdateRecordInput,
) (*kycDomain.Record, error) {
	args := m.Called(ctx, recordID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kycDomain.Record), args.Error(1)
}

// SetVerificationStatus mocks the SetVerificationStatus method of RecordUseCase.
func (m *MockRecordUseCase) SetVerificationStatus(
	ctx context.Context,
	recordID uuid.UUID,
	status kycDomain.VerificationStatus,
	notes string,
) (*kycDomain.Record, error) {
	args := m.Called(ctx, recordID, status, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*kycDomain.Record), args.Error(1)
}

// Delete mocks the Delete method of RecordUseCase.
func (m *MockRecordUseCase) Delete(ctx context.Context, recordID uuid.UUID) error {
	args := m.Called(ctx, recordID)
	return args.Error(0)
}

// List mocks the List method of RecordUseCase.
func (m *MockRecordUseCase) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*kycDomain.Record), args.Error(1)
}
