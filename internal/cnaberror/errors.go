// Package cnaberror defines the error kinds raised by the boleto and CNAB encoders.
//
// Every failure is deterministic: the same input always produces the same error,
// and nothing is ever retried. Callers match kinds with errors.Is against the
// sentinels, or errors.As to reach the details.
package cnaberror

import (
	"errors"
	"fmt"
)

// Sentinels matched by the typed errors below.
var (
	ErrInvalidField    = errors.New("invalid field")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidBarcode  = errors.New("invalid barcode")
	ErrEmptyRemittance = errors.New("empty remittance")
)

// InvalidFieldError reports a value that violates a fixed-width or fixed-value constraint.
type InvalidFieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InvalidFieldError) Error() string {
	return fmt.Sprintf("invalid field %s='%s': %s", e.Field, e.Value, e.Reason)
}

func (e *InvalidFieldError) Is(target error) bool {
	return target == ErrInvalidField
}

// InvalidDateError reports a due date the factor scheme cannot represent.
type InvalidDateError struct {
	Date   string
	Reason string
}

func (e *InvalidDateError) Error() string {
	return fmt.Sprintf("invalid date %s: %s", e.Date, e.Reason)
}

func (e *InvalidDateError) Is(target error) bool {
	return target == ErrInvalidDate
}

// InvalidBarcodeError reports malformed input to a barcode or digitable line operation.
type InvalidBarcodeError struct {
	Barcode string
	Reason  string
}

func (e *InvalidBarcodeError) Error() string {
	if e.Barcode == "" {
		return fmt.Sprintf("invalid barcode: %s", e.Reason)
	}
	return fmt.Sprintf("invalid barcode '%s': %s", e.Barcode, e.Reason)
}

func (e *InvalidBarcodeError) Is(target error) bool {
	return target == ErrInvalidBarcode
}

// EmptyRemittanceError is returned when a remittance is requested without titles.
type EmptyRemittanceError struct {
	Layout string
	Lot    int // 0 when the whole request is empty
}

func (e *EmptyRemittanceError) Error() string {
	if e.Lot > 0 {
		return fmt.Sprintf("CNAB %s remittance: lot %d has no titles", e.Layout, e.Lot)
	}
	return fmt.Sprintf("CNAB %s remittance: no titles to remit", e.Layout)
}

func (e *EmptyRemittanceError) Is(target error) bool {
	return target == ErrEmptyRemittance
}

// Field is a shorthand constructor used throughout the encoders.
func Field(field, value, reason string) error {
	return &InvalidFieldError{Field: field, Value: value, Reason: reason}
}
