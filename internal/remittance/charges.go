package remittance

import (
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
)

var (
	hundred      = decimal.NewFromInt(100)
	daysPerMonth = decimal.NewFromInt(30)
)

// ComputeCharges returns the fine and the daily interest of amount, both
// rounded to cents. The monthly interest rate is spread over 30 days.
//
//	ComputeCharges(1000, 2, 1) // fine 20.00, daily interest 0.33
func ComputeCharges(amount, finePercent, monthlyInterestPercent decimal.Decimal) models.Charges {
	fine := amount.Mul(finePercent).Div(hundred).Round(2)
	daily := amount.Mul(monthlyInterestPercent).Div(hundred).Div(daysPerMonth).Round(2)
	return models.Charges{Fine: fine, DailyInterest: daily}
}

// ApplyCharges sets a per-day interest instruction on every title that has
// none yet and whose daily interest rounds above zero. The input is not modified.
func ApplyCharges(titles []models.Title, finePercent, monthlyInterestPercent decimal.Decimal) []models.Title {
	out := make([]models.Title, len(titles))
	for i, t := range titles {
		if t.InterestCode == "" || t.InterestCode == models.CodeNone {
			charges := ComputeCharges(t.Amount, finePercent, monthlyInterestPercent)
			if charges.HasInterest() {
				t.InterestCode = models.InterestPerDay
				t.InterestValue = charges.DailyInterest
			}
		}
		out[i] = t
	}
	return out
}
