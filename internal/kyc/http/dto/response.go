package dto

import (
	"time"

	kycDomain "github.com/allisson/kyc/internal/kyc/domain"
)

// RecordResponse represents record metadata in API responses. Sensitive
// fields are never echoed back; callers retrieve them with a GET, which
// returns the decrypted view.
type RecordResponse struct {
	ID               string     `json:"id"`
	CustomerRef      string     `json:"customerRef,omitempty"`
	Address          string     `json:"kycAddress"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	EncryptionScheme string     `json:"encryptionScheme"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	VerifiedAt       *time.Time `json:"verifiedAt,omitempty"`
}

// MapRecordToResponse converts a domain record to its API representation.
func MapRecordToResponse(record *kycDomain.Record) RecordResponse {
	return RecordResponse{
		ID:               record.ID.String(),
		CustomerRef:      record.CustomerRef,
		Address:          record.Address,
		Status:           string(record.Status),
		Notes:            record.Notes,
		EncryptionScheme: string(record.EncryptionScheme),
		CreatedAt:        record.CreatedAt,
		UpdatedAt:        record.UpdatedAt,
		VerifiedAt:       record.VerifiedAt,
	}
}

// RecordDetailResponse represents the decrypted view of a record. Sensitive
// fields that failed decryption are null.
type RecordDetailResponse struct {
	ID               string     `json:"id"`
	CustomerRef      string     `json:"customerRef,omitempty"`
	GovernmentID     *string    `json:"govID"`
	DateOfBirth      *string    `json:"kycDob"`
	Pan              *string    `json:"pan"`
	Aadhaar          *string    `json:"aadhaar,omitempty"`
	Address          string     `json:"kycAddress"`
	Status           string     `json:"status"`
	Notes            string     `json:"notes,omitempty"`
	EncryptionScheme string     `json:"encryptionScheme"`
	CreatedAt        time.Time  `json:"createdAt"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	VerifiedAt       *time.Time `json:"verifiedAt,omitempty"`
}

// MapViewToDetailResponse converts a decrypted view to its API representation.
func MapViewToDetailResponse(view *kycDomain.DecryptedView) RecordDetailResponse {
	return RecordDetailResponse{
		ID:               view.ID.String(),
		CustomerRef:      view.CustomerRef,
		GovernmentID:     view.GovernmentID,
		DateOfBirth:      view.DateOfBirth,
		Pan:              view.Pan,
		Aadhaar:          view.Aadhaar,
		Address:          view.Address,
		Status:           string(view.Status),
		Notes:            view.Notes,
		EncryptionScheme: string(view.EncryptionScheme),
		CreatedAt:        view.CreatedAt,
		UpdatedAt:        view.UpdatedAt,
		VerifiedAt:       view.VerifiedAt,
	}
}

// ListRecordsResponse represents a paginated list of records in API responses.
type ListRecordsResponse struct {
	Data []RecordResponse `json:"data"`
}

// MapRecordsToListResponse converts a slice of domain records to a list response.
func MapRecordsToListResponse(records []*kycDomain.Record) ListRecordsResponse {
	data := make([]RecordResponse, 0, len(records))
	for _, record := range records {
		data = append(data, MapRecordToResponse(record))
	}

	return ListRecordsResponse{
		Data: data,
	}
}
