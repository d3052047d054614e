package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
	"github.com/allisson/kyc/internal/metrics"
)

// recordUseCaseWithMetrics decorates RecordUseCase with metrics instrumentation.
type recordUseCaseWithMetrics struct {
	next    RecordUseCase
	metrics metrics.BusinessMetrics
}

// NewRecordUseCaseWithMetrics wraps a RecordUseCase with metrics recording.
func NewRecordUseCaseWithMetrics(useCase RecordUseCase, m metrics.BusinessMetrics) RecordUseCase {
	return &recordUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Create records metrics for record creation, including a separate counter
// entry when the stored record fell back to degraded encryption.
func (r *recordUseCaseWithMetrics) Create(
	ctx context.Context,
	input CreateRecordInput,
) (*kycDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Create(ctx, input)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "kyc", "record_create", status)
	r.metrics.RecordDuration(ctx, "kyc", "record_create", time.Since(start), status)

	if err == nil && record.IsDegraded() {
		r.metrics.RecordOperation(ctx, "kyc", "encryption_fallback", "degraded")
	}

	return record, err
}

// Get records metrics for record retrieval operations.
func (r *recordUseCaseWithMetrics) Get(
	ctx context.Context,
	recordID uuid.UUID,
) (*kycDomain.DecryptedView, error) {
	start := time.Now()
	view, err := r.next.Get(ctx, recordID)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "kyc", "record_get", status)
	r.metrics.RecordDuration(ctx, "kyc", "record_get", time.Since(start), status)

	return view, err
}

// Update records metrics for record update operations.
func (r *recordUseCaseWithMetrics) Update(
	ctx context.Context,
	recordID uuid.UUID,
	patch UpdateRecordInput,
) (*kycDomain.Record, error) {
	start := time.Now()
	record, err := r.next.Update(ctx, recordID, patch)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "kyc", "record_update", status)
	r.metrics.RecordDuration(ctx, "kyc", "record_update", time.Since(start), status)

	if err == nil && record.IsDegraded() {
		r.metrics.RecordOperation(ctx, "kyc", "encryption_fallback", "degraded")
	}

	return record, err
}

// SetVerificationStatus records metrics for status transitions.
func (r *recordUseCaseWithMetrics) SetVerificationStatus(
	ctx context.Context,
	recordID uuid.UUID,
	status kycDomain.VerificationStatus,
	notes string,
) (*kycDomain.Record, error) {
	start := time.Now()
	record, err := r.next.SetVerificationStatus(ctx, recordID, status, notes)

	opStatus := "success"
	if err != nil {
		opStatus = "error"
	}

	r.metrics.RecordOperation(ctx, "kyc", "record_set_status", opStatus)
	r.metrics.RecordDuration(ctx, "kyc", "record_set_status", time.Since(start), opStatus)

	return record, err
}

// Delete records metrics for record deletion operations.
func (r *recordUseCaseWithMetrics) Delete(ctx context.Context, recordID uuid.UUID) error {
	start := time.Now()
	err := r.next.Delete(ctx, recordID)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "kyc", "record_delete", status)
	r.metrics.RecordDuration(ctx, "kyc", "record_delete", time.Since(start), status)

	return err
}

// List records metrics for record listing operations.
func (r *recordUseCaseWithMetrics) List(
	ctx context.Context,
	offset, limit int,
) ([]*kycDomain.Record, error) {
	start := time.Now()
	records, err := r.next.List(ctx, offset, limit)

	status := "success"
	if err != nil {
		status = "error"
	}

	r.metrics.RecordOperation(ctx, "kyc", "record_list", status)
	r.metrics.RecordDuration(ctx, "kyc", "record_list", time.Since(start), status)

	return records, err
}
