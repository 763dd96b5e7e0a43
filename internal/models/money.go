package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Cents converts an amount in reais to integer cents, rounding half away from
// zero. The amount must fit an int64 of cents; callers bound it first with
// CentsFit.
func Cents(amount decimal.Decimal) int64 {
	return amount.Mul(hundred).Round(0).IntPart()
}

// CentsFit reports whether amount, rounded to cents, is at most maxCents.
func CentsFit(amount decimal.Decimal, maxCents int64) bool {
	return amount.Mul(hundred).Round(0).LessThanOrEqual(decimal.NewFromInt(maxCents))
}

// RoundCents rounds amount to whole cents, half away from zero.
func RoundCents(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// FromCents converts integer cents back to reais.
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// FormatBRL renders an amount the way it is printed on a boleto: "R$ 1.234,56".
func FormatBRL(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Abs()
	}
	fixed := amount.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var grouped strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped.WriteByte('.')
		}
		grouped.WriteRune(r)
	}
	return fmt.Sprintf("R$ %s%s,%s", sign, grouped.String(), fracPart)
}

// ParseAmount reads an amount written either as "1234.56" or in Brazilian
// notation "1.234,56" (an optional "R$" prefix is accepted).
func ParseAmount(value string) (decimal.Decimal, error) {
	s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(value), "R$"))
	if s == "" {
		return decimal.Zero, nil
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount string '%s': %w", value, err)
	}
	return amount, nil
}
