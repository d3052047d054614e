package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/allisson/kyc/internal/errors"
)

func TestIsGovernmentID(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid mixed", "VALID12345", true},
		{"valid minimum length", "AB123", true},
		{"valid maximum length", "A1234567890123456789", true},
		{"too short", "AB12", false},
		{"too long", "A12345678901234567890", false},
		{"special characters", "VALID-1234", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsGovernmentID(tt.input))
		})
	}
}

func TestIsPan(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid uppercase", "ABCD1234EF", true},
		{"valid lowercase", "abcd1234ef", true},
		{"valid digits only", "1234567890", true},
		{"too short", "ABCD1234", false},
		{"too long", "ABCD1234EF1", false},
		{"special character", "ABCD1234E!", false},
		{"internal space", "ABCD 234EF", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsPan(tt.input))
		})
	}
}

func TestIsAadhaar(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"valid", "123456789012", true},
		{"valid with surrounding whitespace", "  123456789012  ", true},
		{"eleven digits", "12345678901", false},
		{"thirteen digits", "1234567890123", false},
		{"letter suffix", "12345678901A", false},
		{"internal separator", "1234-5678-9012", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsAadhaar(tt.input))
		})
	}
}

func TestIsCalendarDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		valid bool
	}{
		{"iso date", "1990-01-15", true},
		{"rfc3339", "1990-01-15T00:00:00Z", true},
		{"day month year", "15/01/1990", true},
		{"slash iso", "1990/01/15", true},
		{"future date allowed", "2099-12-31", true},
		{"not a date", "not-a-date", false},
		{"month out of range", "1990-13-01", false},
		{"empty", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, IsCalendarDate(tt.input))
		})
	}
}

func TestRules(t *testing.T) {
	t.Run("pan rule rejects bad value", func(t *testing.T) {
		err := Pan.Validate("ABCD1234")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "10 alphanumeric")
	})

	t.Run("aadhaar rule accepts good value", func(t *testing.T) {
		assert.NoError(t, Aadhaar.Validate("123456789012"))
	})

	t.Run("government id rule reports message", func(t *testing.T) {
		err := GovernmentID.Validate("ab1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "5-20 alphanumeric")
	})

	t.Run("calendar date rule rejects bad value", func(t *testing.T) {
		assert.Error(t, CalendarDate.Validate("not-a-date"))
		assert.NoError(t, CalendarDate.Validate("1990-04-15"))
	})
}

func TestWrapValidationError(t *testing.T) {
	t.Run("nil passes through", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("wraps as invalid input", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.True(t, apperrors.Is(err, apperrors.ErrInvalidInput))
	})
}
