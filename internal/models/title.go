package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Title is one collection instrument sent to the bank in a remittance.
type Title struct {
	NossoNumero    string          `json:"nosso_numero" yaml:"nosso_numero"`
	Wallet         string          `json:"wallet" yaml:"wallet"`
	DocumentNumber string          `json:"document_number" yaml:"document_number"`
	DueDate        time.Time       `json:"due_date" yaml:"due_date"`
	Amount         decimal.Decimal `json:"amount" yaml:"amount"`
	Species        string          `json:"species" yaml:"species"`
	Acceptance     string          `json:"acceptance" yaml:"acceptance"`
	IssueDate      time.Time       `json:"issue_date" yaml:"issue_date"`

	InterestCode  string          `json:"interest_code" yaml:"interest_code"`
	InterestDate  time.Time       `json:"interest_date" yaml:"interest_date"`
	InterestValue decimal.Decimal `json:"interest_value" yaml:"interest_value"`

	DiscountCode  string          `json:"discount_code" yaml:"discount_code"`
	DiscountDate  time.Time       `json:"discount_date" yaml:"discount_date"`
	DiscountValue decimal.Decimal `json:"discount_value" yaml:"discount_value"`

	IOF    decimal.Decimal `json:"iof" yaml:"iof"`
	Rebate decimal.Decimal `json:"rebate" yaml:"rebate"`

	ProtestCode  string `json:"protest_code" yaml:"protest_code"`
	ProtestDays  int    `json:"protest_days" yaml:"protest_days"`
	WriteOffCode string `json:"write_off_code" yaml:"write_off_code"`
	WriteOffDays int    `json:"write_off_days" yaml:"write_off_days"`

	Payer Party `json:"payer" yaml:"payer"`
}

// WithDefaults returns a copy with every optional field set: wallet 09,
// species 02, no acceptance, no interest/discount/protest/write-off, interest
// and discount dates on the due date, and issueDate when no issue date was given.
func (t Title) WithDefaults(issueDate time.Time) Title {
	if t.Wallet == "" {
		t.Wallet = DefaultWallet
	}
	if t.Species == "" {
		t.Species = SpeciesDuplicata
	}
	if t.Acceptance == "" {
		t.Acceptance = AcceptanceNo
	}
	if t.IssueDate.IsZero() {
		t.IssueDate = issueDate
	}
	if t.InterestCode == "" {
		t.InterestCode = CodeNone
	}
	if t.InterestDate.IsZero() {
		t.InterestDate = t.DueDate
	}
	if t.DiscountCode == "" {
		t.DiscountCode = CodeNone
	}
	if t.DiscountDate.IsZero() {
		t.DiscountDate = t.DueDate
	}
	if t.ProtestCode == "" {
		t.ProtestCode = CodeNone
	}
	if t.WriteOffCode == "" {
		t.WriteOffCode = CodeNone
	}
	if t.DocumentNumber == "" {
		t.DocumentNumber = t.NossoNumero
	}
	t.Payer = t.Payer.WithDefaults()
	return t
}

// Charges are the late-payment amounts attached to a title.
type Charges struct {
	Fine          decimal.Decimal `json:"fine" yaml:"fine"`
	DailyInterest decimal.Decimal `json:"daily_interest" yaml:"daily_interest"`
}

// HasInterest reports whether a daily interest amount must be remitted.
func (c Charges) HasInterest() bool {
	return c.DailyInterest.IsPositive()
}
