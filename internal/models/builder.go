package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// TitleBuilder provides a fluent API for constructing titles
type TitleBuilder struct {
	title Title
	err   error
}

// NewTitleBuilder creates a new TitleBuilder with default values
func NewTitleBuilder() *TitleBuilder {
	return &TitleBuilder{
		title: Title{
			Wallet:        DefaultWallet,
			Species:       SpeciesDuplicata,
			Acceptance:    AcceptanceNo,
			InterestCode:  CodeNone,
			DiscountCode:  CodeNone,
			ProtestCode:   CodeNone,
			WriteOffCode:  CodeNone,
			Amount:        decimal.Zero,
			InterestValue: decimal.Zero,
			DiscountValue: decimal.Zero,
			IOF:           decimal.Zero,
			Rebate:        decimal.Zero,
		},
	}
}

// WithNossoNumero sets the bank-side identifier
func (b *TitleBuilder) WithNossoNumero(nossoNumero string) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.NossoNumero = strings.TrimSpace(nossoNumero)
	return b
}

// WithWallet sets the collection wallet ("carteira")
func (b *TitleBuilder) WithWallet(wallet string) *TitleBuilder {
	if b.err != nil {
		return b
	}
	if wallet != "" {
		b.title.Wallet = wallet
	}
	return b
}

// WithDocumentNumber sets the company's own document number
func (b *TitleBuilder) WithDocumentNumber(number string) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.DocumentNumber = strings.TrimSpace(number)
	return b
}

// WithDueDate sets the due date
func (b *TitleBuilder) WithDueDate(date time.Time) *TitleBuilder {
	if b.err != nil {
		return b
	}
	if date.IsZero() {
		b.err = errors.New("due date cannot be zero")
		return b
	}
	b.title.DueDate = date
	return b
}

// WithAmount sets the face value
func (b *TitleBuilder) WithAmount(amount decimal.Decimal) *TitleBuilder {
	if b.err != nil {
		return b
	}
	if amount.IsNegative() {
		b.err = fmt.Errorf("amount cannot be negative: %s", amount.String())
		return b
	}
	b.title.Amount = amount
	return b
}

// WithAmountFromString sets the face value from "1234.56" or "1.234,56"
func (b *TitleBuilder) WithAmountFromString(amountStr string) *TitleBuilder {
	if b.err != nil {
		return b
	}
	amount, err := ParseAmount(amountStr)
	if err != nil {
		b.err = err
		return b
	}
	return b.WithAmount(amount)
}

// WithSpecies sets the title species code
func (b *TitleBuilder) WithSpecies(species string) *TitleBuilder {
	if b.err != nil {
		return b
	}
	if species != "" {
		b.title.Species = species
	}
	return b
}

// WithAcceptance sets the acceptance flag (A or N)
func (b *TitleBuilder) WithAcceptance(acceptance string) *TitleBuilder {
	if b.err != nil {
		return b
	}
	acceptance = strings.ToUpper(strings.TrimSpace(acceptance))
	if acceptance != AcceptanceYes && acceptance != AcceptanceNo {
		b.err = fmt.Errorf("acceptance must be %s or %s, got '%s'", AcceptanceYes, AcceptanceNo, acceptance)
		return b
	}
	b.title.Acceptance = acceptance
	return b
}

// WithIssueDate sets the issue date
func (b *TitleBuilder) WithIssueDate(date time.Time) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.IssueDate = date
	return b
}

// WithInterest sets the late-payment interest instruction
func (b *TitleBuilder) WithInterest(code string, date time.Time, value decimal.Decimal) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.InterestCode = code
	b.title.InterestDate = date
	b.title.InterestValue = value
	return b
}

// WithDiscount sets the first discount instruction
func (b *TitleBuilder) WithDiscount(code string, date time.Time, value decimal.Decimal) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.DiscountCode = code
	b.title.DiscountDate = date
	b.title.DiscountValue = value
	return b
}

// WithIOF sets the IOF amount
func (b *TitleBuilder) WithIOF(value decimal.Decimal) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.IOF = value
	return b
}

// WithRebate sets the rebate ("abatimento") amount
func (b *TitleBuilder) WithRebate(value decimal.Decimal) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.Rebate = value
	return b
}

// WithProtest sets the protest instruction
func (b *TitleBuilder) WithProtest(code string, days int) *TitleBuilder {
	if b.err != nil {
		return b
	}
	if days < 0 || days > 99 {
		b.err = fmt.Errorf("protest days must be between 0 and 99, got %d", days)
		return b
	}
	b.title.ProtestCode = code
	b.title.ProtestDays = days
	return b
}

// WithWriteOff sets the write-off/return instruction
func (b *TitleBuilder) WithWriteOff(code string, days int) *TitleBuilder {
	if b.err != nil {
		return b
	}
	if days < 0 || days > 999 {
		b.err = fmt.Errorf("write-off days must be between 0 and 999, got %d", days)
		return b
	}
	b.title.WriteOffCode = code
	b.title.WriteOffDays = days
	return b
}

// WithPayer sets the payer ("sacado")
func (b *TitleBuilder) WithPayer(payer Party) *TitleBuilder {
	if b.err != nil {
		return b
	}
	b.title.Payer = payer.WithDefaults()
	return b
}

// Build validates and returns the title
func (b *TitleBuilder) Build() (Title, error) {
	if b.err != nil {
		return Title{}, b.err
	}
	if b.title.NossoNumero == "" {
		return Title{}, errors.New("nosso numero is required")
	}
	if b.title.DueDate.IsZero() {
		return Title{}, errors.New("due date is required")
	}
	if b.title.DocumentNumber == "" {
		b.title.DocumentNumber = b.title.NossoNumero
	}
	return b.title, nil
}
