// Package validation provides the KYC field format rules.
//
// Each rule is a pure predicate over the raw submitted string. Rules reject
// empty input; the use case checks them in a fixed order before any field is
// encrypted, so malformed input never reaches the cipher.
package validation

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/kyc/internal/errors"
)

var (
	// governmentIDRegex matches 5-20 alphanumeric characters.
	governmentIDRegex = regexp.MustCompile(`^[a-zA-Z0-9]{5,20}$`)

	// panRegex matches exactly 10 alphanumeric characters, case-insensitive.
	panRegex = regexp.MustCompile(`^[a-zA-Z0-9]{10}$`)

	// aadhaarRegex matches exactly 12 decimal digits.
	aadhaarRegex = regexp.MustCompile(`^[0-9]{12}$`)
)

// dateLayouts are the accepted date formats, tried in order.
var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
}

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// IsGovernmentID reports whether s is a well-formed government ID.
func IsGovernmentID(s string) bool {
	return governmentIDRegex.MatchString(s)
}

// IsPan reports whether s is a well-formed PAN.
func IsPan(s string) bool {
	return panRegex.MatchString(s)
}

// IsAadhaar reports whether s is a well-formed Aadhaar number. Only
// surrounding whitespace is tolerated; internal separators are not.
func IsAadhaar(s string) bool {
	return aadhaarRegex.MatchString(strings.TrimSpace(s))
}

// IsCalendarDate reports whether s parses as a calendar date under one of
// the accepted layouts. No future-date or age constraint is applied here;
// callers layering age checks do so separately.
func IsCalendarDate(s string) bool {
	if strings.TrimSpace(s) == "" {
		return false
	}
	for _, layout := range dateLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}

// Rule values for use with jellydator validation chains. Like all string
// rules they skip blank input, so callers gate on presence first.

// GovernmentID validates government ID format.
var GovernmentID = validation.NewStringRuleWithError(
	IsGovernmentID,
	validation.NewError("validation_government_id", "must be 5-20 alphanumeric characters"),
)

// Pan validates PAN format.
var Pan = validation.NewStringRuleWithError(
	IsPan,
	validation.NewError("validation_pan", "must be exactly 10 alphanumeric characters"),
)

// Aadhaar validates Aadhaar number format.
var Aadhaar = validation.NewStringRuleWithError(
	IsAadhaar,
	validation.NewError("validation_aadhaar", "must be exactly 12 digits"),
)

// CalendarDate validates date-of-birth format.
var CalendarDate = validation.NewStringRuleWithError(
	IsCalendarDate,
	validation.NewError("validation_calendar_date", "must be a valid calendar date"),
)
