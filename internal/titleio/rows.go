package titleio

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/boleto-cnab/internal/boleto"
	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/models"
)

// TitleRow is one title of a batch file. Every column is text so that
// dates and amounts accept the Brazilian notations ("15/05/2024", "1.234,56").
type TitleRow struct {
	NossoNumero     string `csv:"nosso_numero" yaml:"nosso_numero"`
	DocumentNumber  string `csv:"document_number" yaml:"document_number"`
	DueDate         string `csv:"due_date" yaml:"due_date"`
	Amount          string `csv:"amount" yaml:"amount"`
	Wallet          string `csv:"wallet" yaml:"wallet"`
	Species         string `csv:"species" yaml:"species"`
	Acceptance      string `csv:"acceptance" yaml:"acceptance"`
	IssueDate       string `csv:"issue_date" yaml:"issue_date"`
	DiscountDate    string `csv:"discount_date" yaml:"discount_date"`
	DiscountValue   string `csv:"discount_value" yaml:"discount_value"`
	Rebate          string `csv:"rebate" yaml:"rebate"`
	IOF             string `csv:"iof" yaml:"iof"`
	DailyInterest   string `csv:"daily_interest" yaml:"daily_interest"`
	ProtestDays     string `csv:"protest_days" yaml:"protest_days"`
	WriteOffDays    string `csv:"write_off_days" yaml:"write_off_days"`
	PayerName       string `csv:"payer_name" yaml:"payer_name"`
	PayerTaxID      string `csv:"payer_tax_id" yaml:"payer_tax_id"`
	PayerAddress    string `csv:"payer_address" yaml:"payer_address"`
	PayerDistrict   string `csv:"payer_district" yaml:"payer_district"`
	PayerPostalCode string `csv:"payer_postal_code" yaml:"payer_postal_code"`
	PayerCity       string `csv:"payer_city" yaml:"payer_city"`
	PayerState      string `csv:"payer_state" yaml:"payer_state"`
}

// ToTitle validates the row and converts it to a title.
func (r TitleRow) ToTitle() (models.Title, error) {
	dueDate, _, err := dateutils.ParseDate(r.DueDate)
	if err != nil {
		return models.Title{}, fmt.Errorf("due_date: %w", err)
	}
	issueDate, err := dateutils.ParseOptionalDate(r.IssueDate)
	if err != nil {
		return models.Title{}, fmt.Errorf("issue_date: %w", err)
	}

	payer := models.NewParty(r.PayerName, r.PayerTaxID)
	payer.Address = strings.TrimSpace(r.PayerAddress)
	payer.District = strings.TrimSpace(r.PayerDistrict)
	payer.PostalCode = strings.TrimSpace(r.PayerPostalCode)
	payer.City = strings.TrimSpace(r.PayerCity)
	payer.State = strings.TrimSpace(r.PayerState)

	b := models.NewTitleBuilder().
		WithNossoNumero(r.NossoNumero).
		WithDocumentNumber(r.DocumentNumber).
		WithDueDate(dueDate).
		WithAmountFromString(r.Amount).
		WithWallet(strings.TrimSpace(r.Wallet)).
		WithSpecies(strings.TrimSpace(r.Species)).
		WithIssueDate(issueDate).
		WithPayer(payer)
	if strings.TrimSpace(r.Acceptance) != "" {
		b = b.WithAcceptance(r.Acceptance)
	}

	if strings.TrimSpace(r.DiscountValue) != "" {
		value, err := models.ParseAmount(r.DiscountValue)
		if err != nil {
			return models.Title{}, fmt.Errorf("discount_value: %w", err)
		}
		discountDate, err := dateutils.ParseOptionalDate(r.DiscountDate)
		if err != nil {
			return models.Title{}, fmt.Errorf("discount_date: %w", err)
		}
		if value.IsPositive() {
			b = b.WithDiscount(models.DiscountFixed, discountDate, value)
		}
	}
	if strings.TrimSpace(r.Rebate) != "" {
		value, err := models.ParseAmount(r.Rebate)
		if err != nil {
			return models.Title{}, fmt.Errorf("rebate: %w", err)
		}
		b = b.WithRebate(value)
	}
	if strings.TrimSpace(r.IOF) != "" {
		value, err := models.ParseAmount(r.IOF)
		if err != nil {
			return models.Title{}, fmt.Errorf("iof: %w", err)
		}
		b = b.WithIOF(value)
	}
	if strings.TrimSpace(r.DailyInterest) != "" {
		value, err := models.ParseAmount(r.DailyInterest)
		if err != nil {
			return models.Title{}, fmt.Errorf("daily_interest: %w", err)
		}
		if value.IsPositive() {
			b = b.WithInterest(models.InterestPerDay, time.Time{}, value)
		}
	}
	if days := strings.TrimSpace(r.ProtestDays); days != "" && days != "0" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return models.Title{}, fmt.Errorf("protest_days: invalid number '%s'", r.ProtestDays)
		}
		b = b.WithProtest(models.ProtestCalendar, n)
	}
	if days := strings.TrimSpace(r.WriteOffDays); days != "" && days != "0" {
		n, err := strconv.Atoi(days)
		if err != nil {
			return models.Title{}, fmt.Errorf("write_off_days: invalid number '%s'", r.WriteOffDays)
		}
		b = b.WithWriteOff(models.WriteOffReturn, n)
	}

	return b.Build()
}

// BoletoRow is one generated boleto in the output CSV.
type BoletoRow struct {
	NossoNumero     string `csv:"nosso_numero"`
	BankCode        string `csv:"bank_code"`
	DueDate         string `csv:"due_date"`
	Amount          string `csv:"amount"`
	PayerName       string `csv:"payer_name"`
	PayerDocument   string `csv:"payer_document"`
	BeneficiaryName string `csv:"beneficiary_name"`
	Barcode         string `csv:"barcode"`
	DigitableLine   string `csv:"digitable_line"`
}

// NewBoletoRow flattens a generated boleto.
func NewBoletoRow(b boleto.Boleto) BoletoRow {
	return BoletoRow{
		NossoNumero:     b.NossoNumero,
		BankCode:        b.BankCode,
		DueDate:         b.DueDate,
		Amount:          b.Amount,
		PayerName:       b.PayerName,
		PayerDocument:   b.PayerDocument,
		BeneficiaryName: b.BeneficiaryName,
		Barcode:         b.Barcode.String(),
		DigitableLine:   b.DigitableLine.String(),
	}
}
