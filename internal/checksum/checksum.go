// Package checksum implements the modulo 10 and modulo 11 check digits used by
// boleto barcodes and digitable lines.
package checksum

import (
	"fmt"
	"strconv"

	"fjacquet/boleto-cnab/internal/cnaberror"
)

// BarcodeWeights are the cyclic modulo 11 weights of the 44-digit barcode.
var BarcodeWeights = []int{2, 3, 4, 5, 6, 7, 8, 9}

// Modulo10 walks digits right to left with alternating multipliers 2 and 1.
// Two-digit products contribute the sum of their digits.
func Modulo10(digits string) (int, error) {
	if err := requireDigits(digits); err != nil {
		return 0, err
	}

	sum := 0
	multiplier := 2
	for i := len(digits) - 1; i >= 0; i-- {
		product := int(digits[i]-'0') * multiplier
		sum += product/10 + product%10
		multiplier = 3 - multiplier
	}
	return (10 - sum%10) % 10, nil
}

// Modulo11 walks digits right to left with cyclic weights. The digit is
// base - sum%base, collapsed to 1 when that gives 0, 10 or 11.
func Modulo11(digits string, weights []int, base int) (int, error) {
	if err := requireDigits(digits); err != nil {
		return 0, err
	}
	if len(weights) == 0 {
		return 0, cnaberror.Field("weights", "", "at least one weight is required")
	}
	if base < 2 || base > 11 {
		return 0, cnaberror.Field("base", strconv.Itoa(base), "must be between 2 and 11")
	}

	sum := 0
	for i, pos := len(digits)-1, 0; i >= 0; i, pos = i-1, pos+1 {
		sum += int(digits[i]-'0') * weights[pos%len(weights)]
	}

	dv := base - sum%base
	if dv == 0 || dv == 10 || dv == 11 {
		dv = 1
	}
	return dv, nil
}

// BarcodeModulo11 is Modulo11 with the barcode weights and base 11.
func BarcodeModulo11(digits string) (int, error) {
	return Modulo11(digits, BarcodeWeights, 11)
}

// TaxIDDigit is the check digit of CPF and CNPJ numbers: Modulo11 weighting
// with base 11, except that remainders 0 and 1 give 0.
func TaxIDDigit(digits string, weights []int) (int, error) {
	if err := requireDigits(digits); err != nil {
		return 0, err
	}
	if len(weights) == 0 {
		return 0, cnaberror.Field("weights", "", "at least one weight is required")
	}

	sum := 0
	for i, pos := len(digits)-1, 0; i >= 0; i, pos = i-1, pos+1 {
		sum += int(digits[i]-'0') * weights[pos%len(weights)]
	}
	if r := sum % 11; r >= 2 {
		return 11 - r, nil
	}
	return 0, nil
}

// Digit renders a check digit as its ASCII character.
func Digit(dv int) byte {
	return byte('0' + dv)
}

func requireDigits(digits string) error {
	if digits == "" {
		return cnaberror.Field("digits", digits, "empty input")
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return cnaberror.Field("digits", digits, fmt.Sprintf("non-digit character at position %d", i+1))
		}
	}
	return nil
}
