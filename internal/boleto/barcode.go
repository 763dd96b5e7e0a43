// Package boleto encodes the 44-digit boleto barcode and its 47-digit
// "linha digitável" following the FEBRABAN layout.
//
// Barcode positions (1-based):
//
//	1-3    bank code
//	4      currency code (9 = real)
//	5      modulo 11 check digit over positions 1-4 and 6-44
//	6-9    due date factor
//	10-19  amount in cents
//	20-44  free field, laid out by each bank
package boleto

import (
	"fmt"
	"strconv"
	"time"

	"fjacquet/boleto-cnab/internal/checksum"
	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/duedate"
	"fjacquet/boleto-cnab/internal/fixedwidth"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// CurrencyReal is the only currency code in use.
	CurrencyReal = "9"

	BarcodeLength   = 44
	FreeFieldLength = 25

	amountWidth = 10
	maxCents    = 9999999999
)

// Title holds what goes into a barcode.
type Title struct {
	BankCode     string
	CurrencyCode string
	DueDate      time.Time
	Amount       decimal.Decimal
	FreeField    string
}

// Barcode is a 44-digit boleto barcode.
type Barcode string

// BankCode returns positions 1-3.
func (b Barcode) BankCode() string { return string(b[0:3]) }

// CurrencyCode returns position 4.
func (b Barcode) CurrencyCode() string { return string(b[3:4]) }

// CheckDigit returns position 5.
func (b Barcode) CheckDigit() string { return string(b[4:5]) }

// Factor returns the due date factor in positions 6-9.
func (b Barcode) Factor() int {
	n, _ := strconv.Atoi(string(b[5:9]))
	return n
}

// AmountCents returns positions 10-19.
func (b Barcode) AmountCents() int64 {
	n, _ := strconv.ParseInt(string(b[9:19]), 10, 64)
	return n
}

// Amount returns the amount in reais.
func (b Barcode) Amount() decimal.Decimal {
	return models.FromCents(b.AmountCents())
}

// FreeField returns positions 20-44.
func (b Barcode) FreeField() string { return string(b[19:44]) }

func (b Barcode) String() string { return string(b) }

// BuildBarcode encodes a barcode in real currency.
func BuildBarcode(bankCode string, dueDate time.Time, amount decimal.Decimal, freeField string) (Barcode, error) {
	return EncodeTitle(Title{
		BankCode:     bankCode,
		CurrencyCode: CurrencyReal,
		DueDate:      dueDate,
		Amount:       amount,
		FreeField:    freeField,
	})
}

// EncodeTitle encodes a barcode. The amount is rounded to whole cents.
func EncodeTitle(t Title) (Barcode, error) {
	if len(t.BankCode) != 3 || !fixedwidth.IsDigits(t.BankCode) {
		return "", cnaberror.Field("bank_code", t.BankCode, "must be 3 digits")
	}
	if len(t.CurrencyCode) != 1 || !fixedwidth.IsDigits(t.CurrencyCode) {
		return "", cnaberror.Field("currency_code", t.CurrencyCode, "must be 1 digit")
	}
	if len(t.FreeField) != FreeFieldLength || !fixedwidth.IsDigits(t.FreeField) {
		return "", cnaberror.Field("free_field", t.FreeField, fmt.Sprintf("must be %d digits", FreeFieldLength))
	}
	if t.Amount.IsNegative() {
		return "", cnaberror.Field("amount", t.Amount.String(), "must not be negative")
	}
	if !models.CentsFit(t.Amount, maxCents) {
		return "", cnaberror.Field("amount", t.Amount.String(), fmt.Sprintf("does not fit %d digits of cents", amountWidth))
	}
	cents := models.Cents(t.Amount)

	factor, err := duedate.ToFactor(t.DueDate)
	if err != nil {
		return "", err
	}

	body := t.BankCode + t.CurrencyCode +
		fmt.Sprintf("%04d", factor) +
		fmt.Sprintf("%0*d", amountWidth, cents) +
		t.FreeField

	dv, err := checksum.BarcodeModulo11(body)
	if err != nil {
		return "", err
	}
	return Barcode(body[:4] + string(checksum.Digit(dv)) + body[4:]), nil
}

// ValidateBarcode recomputes the check digit at position 5. A well-formed
// barcode with the wrong digit yields false; malformed input yields an
// InvalidBarcodeError.
func ValidateBarcode(barcode string) (bool, error) {
	if err := requireBarcode(barcode); err != nil {
		return false, err
	}
	dv, err := checksum.BarcodeModulo11(barcode[:4] + barcode[5:])
	if err != nil {
		return false, err
	}
	return barcode[4] == checksum.Digit(dv), nil
}

func requireBarcode(barcode string) error {
	if len(barcode) != BarcodeLength {
		return &cnaberror.InvalidBarcodeError{
			Barcode: barcode,
			Reason:  fmt.Sprintf("expected %d digits, got %d characters", BarcodeLength, len(barcode)),
		}
	}
	if !fixedwidth.IsDigits(barcode) {
		return &cnaberror.InvalidBarcodeError{Barcode: barcode, Reason: "contains non-digit characters"}
	}
	return nil
}
