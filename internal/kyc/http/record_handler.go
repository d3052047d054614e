// Package http provides HTTP handlers for KYC record management. Sensitive
// fields are encrypted before they reach storage and are only returned, in
// plaintext, on single-record retrieval.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/allisson/kyc/internal/httputil"
	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
	"github.com/allisson/kyc/internal/kyc/http/dto"
	kycUseCase "github.com/allisson/kyc/internal/kyc/usecase"
	customValidation "github.com/allisson/kyc/internal/validation"
)

// RecordHandler handles HTTP requests for KYC record management operations.
type RecordHandler struct {
	recordUseCase kycUseCase.RecordUseCase
	logger        *slog.Logger
}

// NewRecordHandler creates a new record handler with required dependencies.
func NewRecordHandler(recordUseCase kycUseCase.RecordUseCase, logger *slog.Logger) *RecordHandler {
	return &RecordHandler{
		recordUseCase: recordUseCase,
		logger:        logger,
	}
}

// CreateHandler submits a new KYC record.
// POST /v1/kyc/records
// Returns 201 Created with record metadata (sensitive fields are never echoed).
func (h *RecordHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	input := req.ToInput()
	input.Metadata = kycDomain.RequestMetadata{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}

	record, err := h.recordUseCase.Create(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapRecordToResponse(record))
}

// GetHandler retrieves a record with its sensitive fields decrypted.
// GET /v1/kyc/records/:id
// Fields that fail decryption are null in the response.
func (h *RecordHandler) GetHandler(c *gin.Context) {
	recordID, err := parseRecordID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	view, err := h.recordUseCase.Get(c.Request.Context(), recordID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapViewToDetailResponse(view))
}

// UpdateHandler applies a partial update to a record.
// PATCH /v1/kyc/records/:id
func (h *RecordHandler) UpdateHandler(c *gin.Context) {
	recordID, err := parseRecordID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	record, err := h.recordUseCase.Update(c.Request.Context(), recordID, req.ToInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// SetStatusHandler moves a record through its verification lifecycle.
// PUT /v1/kyc/records/:id/status
func (h *RecordHandler) SetStatusHandler(c *gin.Context) {
	recordID, err := parseRecordID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	var req dto.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	record, err := h.recordUseCase.SetVerificationStatus(
		c.Request.Context(),
		recordID,
		kycDomain.VerificationStatus(req.Status),
		req.Notes,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordToResponse(record))
}

// DeleteHandler removes a record.
// DELETE /v1/kyc/records/:id
// Returns 204 No Content.
func (h *RecordHandler) DeleteHandler(c *gin.Context) {
	recordID, err := parseRecordID(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.recordUseCase.Delete(c.Request.Context(), recordID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler returns record metadata with pagination.
// GET /v1/kyc/records?offset=0&limit=50
// Nothing in the list response is decrypted.
func (h *RecordHandler) ListHandler(c *gin.Context) {
	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	records, err := h.recordUseCase.List(c.Request.Context(), offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}

func parseRecordID(c *gin.Context) (uuid.UUID, error) {
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid record id: must be a valid uuid")
	}
	return recordID, nil
}
