// Package cobranca is the public API for encoding boleto barcodes, digitable
// lines and CNAB 240/400 remittance files from plain values.
//
// Every function is pure and safe for concurrent use:
//
//	g := cobranca.NewGenerator()
//	b, err := g.Generate(cobranca.Document{BankCode: "237", ...})
//	fmt.Println(b.DigitableLine)
//
//	content, err := cobranca.GenerateRemittance(cobranca.RemittanceRequest{
//		Layout:      cobranca.Layout240,
//		BankCode:    "237",
//		Sender:      sender,
//		Titles:      titles,
//		GeneratedAt: time.Now(),
//	})
package cobranca

import (
	"time"

	"fjacquet/boleto-cnab/internal/boleto"
	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/duedate"
	"fjacquet/boleto-cnab/internal/models"
	"fjacquet/boleto-cnab/internal/remittance"

	"github.com/shopspring/decimal"
)

// Value objects.
type (
	Party   = models.Party
	Sender  = models.Sender
	Title   = models.Title
	Charges = models.Charges
)

// Boleto types.
type (
	Barcode          = boleto.Barcode
	DigitableLine    = boleto.DigitableLine
	Document         = boleto.Document
	Boleto           = boleto.Boleto
	FreeFieldInputs  = boleto.FreeFieldInputs
	FreeFieldBuilder = boleto.FreeFieldBuilder
)

// Remittance types.
type (
	Layout            = remittance.Layout
	RemittanceRequest = remittance.Request
	RemittanceResult  = remittance.Result
)

// Layouts.
const (
	Layout240 = remittance.Layout240
	Layout400 = remittance.Layout400
)

// Errors, matched with errors.Is.
var (
	ErrInvalidField    = cnaberror.ErrInvalidField
	ErrInvalidDate     = cnaberror.ErrInvalidDate
	ErrInvalidBarcode  = cnaberror.ErrInvalidBarcode
	ErrEmptyRemittance = cnaberror.ErrEmptyRemittance
)

// Generator builds complete boletos.
type Generator = boleto.Generator

// NewGenerator returns a generator knowing the built-in bank layouts plus
// extra, which replace built-in ones of the same bank.
func NewGenerator(extra ...FreeFieldBuilder) *Generator {
	registry := boleto.NewDefaultRegistry()
	for _, b := range extra {
		registry.Register(b)
	}
	return boleto.NewGenerator(registry)
}

// NewParty returns a party with its tax id type derived from the document.
func NewParty(name, taxID string) Party {
	return models.NewParty(name, taxID)
}

// BuildBarcode encodes a 44-digit barcode in real currency.
func BuildBarcode(bankCode string, dueDate time.Time, amount decimal.Decimal, freeField string) (Barcode, error) {
	return boleto.BuildBarcode(bankCode, dueDate, amount, freeField)
}

// BuildFreeField lays out the generic 25-digit free field.
func BuildFreeField(in FreeFieldInputs) (string, error) {
	return boleto.BuildFreeFieldGeneric(in)
}

// BuildDigitableLine formats a barcode as its 47-digit digitable line.
func BuildDigitableLine(barcode string) (DigitableLine, error) {
	return boleto.BuildDigitableLine(barcode)
}

// ParseDigitableLine checks a digitable line and returns its barcode.
func ParseDigitableLine(line string) (Barcode, error) {
	return boleto.ParseDigitableLine(line)
}

// ValidateBarcode reports whether the check digit of a barcode matches.
func ValidateBarcode(barcode string) (bool, error) {
	return boleto.ValidateBarcode(barcode)
}

// DueDateFactor returns the 4-digit due date factor of date.
func DueDateFactor(date time.Time) (int, error) {
	return duedate.ToFactor(date)
}

// ParseLayout reads "240", "400" or "cnab240"/"cnab400".
func ParseLayout(value string) (Layout, error) {
	return remittance.ParseLayout(value)
}

// EncodeRemittance encodes req and returns its lines and totals.
func EncodeRemittance(req RemittanceRequest) (*RemittanceResult, error) {
	layout := req.Layout
	if layout == "" {
		layout = remittance.DefaultLayout
	}
	enc, err := remittance.NewEncoder(layout)
	if err != nil {
		return nil, err
	}
	return enc.Encode(req)
}

// GenerateRemittance encodes req as CRLF-terminated file content.
func GenerateRemittance(req RemittanceRequest) (string, error) {
	return remittance.Generate(req)
}

// ComputeCharges returns the fine and daily interest of amount.
func ComputeCharges(amount, finePercent, monthlyInterestPercent decimal.Decimal) Charges {
	return remittance.ComputeCharges(amount, finePercent, monthlyInterestPercent)
}

// ApplyCharges attaches daily interest to the titles that have none.
func ApplyCharges(titles []Title, finePercent, monthlyInterestPercent decimal.Decimal) []Title {
	return remittance.ApplyCharges(titles, finePercent, monthlyInterestPercent)
}
