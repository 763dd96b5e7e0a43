package cnaberror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidFieldError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidFieldError
		expected string
	}{
		{
			name:     "bank code",
			err:      &InvalidFieldError{Field: "bank_code", Value: "23", Reason: "must have 3 digits"},
			expected: "invalid field bank_code='23': must have 3 digits",
		},
		{
			name:     "empty value",
			err:      &InvalidFieldError{Field: "free_field", Value: "", Reason: "must have 25 digits"},
			expected: "invalid field free_field='': must have 25 digits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrInvalidField))
			assert.False(t, errors.Is(tt.err, ErrInvalidDate))
		})
	}
}

func TestInvalidDateError(t *testing.T) {
	err := &InvalidDateError{Date: "1997-10-06", Reason: "before factor base date"}
	assert.Equal(t, "invalid date 1997-10-06: before factor base date", err.Error())
	assert.True(t, errors.Is(err, ErrInvalidDate))
}

func TestInvalidBarcodeError(t *testing.T) {
	tests := []struct {
		name     string
		err      *InvalidBarcodeError
		expected string
	}{
		{
			name:     "with barcode",
			err:      &InvalidBarcodeError{Barcode: "123", Reason: "expected 44 digits, got 3"},
			expected: "invalid barcode '123': expected 44 digits, got 3",
		},
		{
			name:     "without barcode",
			err:      &InvalidBarcodeError{Reason: "empty input"},
			expected: "invalid barcode: empty input",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrInvalidBarcode))
		})
	}
}

func TestEmptyRemittanceError(t *testing.T) {
	whole := &EmptyRemittanceError{Layout: "240"}
	assert.Equal(t, "CNAB 240 remittance: no titles to remit", whole.Error())

	lot := &EmptyRemittanceError{Layout: "240", Lot: 2}
	assert.Equal(t, "CNAB 240 remittance: lot 2 has no titles", lot.Error())

	assert.True(t, errors.Is(lot, ErrEmptyRemittance))
}

func TestErrorsSurviveWrapping(t *testing.T) {
	wrapped := fmt.Errorf("generating remittance: %w", Field("amount", "-1", "must not be negative"))

	assert.True(t, errors.Is(wrapped, ErrInvalidField))

	var fieldErr *InvalidFieldError
	require.True(t, errors.As(wrapped, &fieldErr))
	assert.Equal(t, "amount", fieldErr.Field)
}
