// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	"github.com/allisson/kyc/internal/kyc/usecase"
)

// CreateRecordRequest contains the raw submission fields for a new KYC
// record. Presence and format validation live in the use case so that
// missing mandatory fields are reported together.
type CreateRecordRequest struct {
	GovernmentID string `json:"govID"`
	Address      string `json:"kycAddress"`
	DateOfBirth  string `json:"kycDob"`
	Pan          string `json:"pan"`
	Aadhaar      string `json:"aadhaar"`
	CustomerRef  string `json:"customerRef"`
}

// ToInput converts the request into a use case input.
func (r *CreateRecordRequest) ToInput() usecase.CreateRecordInput {
	return usecase.CreateRecordInput{
		GovernmentID: r.GovernmentID,
		Address:      r.Address,
		DateOfBirth:  r.DateOfBirth,
		Pan:          r.Pan,
		Aadhaar:      r.Aadhaar,
		CustomerRef:  r.CustomerRef,
	}
}

// UpdateRecordRequest is a patch: absent fields are left untouched. An
// explicit empty aadhaar clears the stored value.
type UpdateRecordRequest struct {
	GovernmentID *string `json:"govID"`
	Address      *string `json:"kycAddress"`
	DateOfBirth  *string `json:"kycDob"`
	Pan          *string `json:"pan"`
	Aadhaar      *string `json:"aadhaar"`
	CustomerRef  *string `json:"customerRef"`
}

// ToInput converts the request into a use case patch.
func (r *UpdateRecordRequest) ToInput() usecase.UpdateRecordInput {
	return usecase.UpdateRecordInput{
		GovernmentID: r.GovernmentID,
		Address:      r.Address,
		DateOfBirth:  r.DateOfBirth,
		Pan:          r.Pan,
		Aadhaar:      r.Aadhaar,
		CustomerRef:  r.CustomerRef,
	}
}

// SetStatusRequest contains the parameters for a verification status change.
type SetStatusRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// Validate checks if the status change request is valid.
func (r *SetStatusRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.Status,
			validation.Required,
			validation.In("pending", "verified", "rejected", "expired"),
		),
	)
}
