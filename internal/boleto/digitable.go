package boleto

import (
	"fmt"

	"fjacquet/boleto-cnab/internal/checksum"
	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/fixedwidth"
)

// DigitableLineLength is the digit count of a digitable line, formatting excluded.
const DigitableLineLength = 47

// DigitableLine is the typeable form of a barcode:
//
//	AAAAA.AAAAA BBBBB.BBBBBB CCCCC.CCCCCC D EEEEEEEEEEEEEE
type DigitableLine string

// Digits returns the 47 digits without dots and spaces.
func (l DigitableLine) Digits() string {
	return fixedwidth.OnlyDigits(string(l))
}

func (l DigitableLine) String() string { return string(l) }

// BuildDigitableLine rearranges a barcode into five groups. The first three
// carry their own modulo 10 digit.
func BuildDigitableLine(barcode string) (DigitableLine, error) {
	if err := requireBarcode(barcode); err != nil {
		return "", err
	}
	freeField := barcode[19:44]

	block1, err := withModulo10(barcode[0:4] + freeField[0:5])
	if err != nil {
		return "", err
	}
	block2, err := withModulo10(freeField[5:15])
	if err != nil {
		return "", err
	}
	block3, err := withModulo10(freeField[15:25])
	if err != nil {
		return "", err
	}

	line := fmt.Sprintf("%s.%s %s.%s %s.%s %s %s",
		block1[:5], block1[5:],
		block2[:5], block2[5:],
		block3[:5], block3[5:],
		barcode[4:5],
		barcode[5:19],
	)
	return DigitableLine(line), nil
}

// ParseDigitableLine checks every check digit of a digitable line (formatted
// or not) and returns the barcode it encodes.
func ParseDigitableLine(line string) (Barcode, error) {
	digits := fixedwidth.OnlyDigits(line)
	if len(digits) != DigitableLineLength {
		return "", &cnaberror.InvalidBarcodeError{
			Barcode: line,
			Reason:  fmt.Sprintf("digitable line must have %d digits, got %d", DigitableLineLength, len(digits)),
		}
	}

	blocks := []struct {
		name   string
		digits string
	}{
		{"1", digits[0:10]},
		{"2", digits[10:21]},
		{"3", digits[21:32]},
	}
	for _, b := range blocks {
		expected, err := withModulo10(b.digits[:len(b.digits)-1])
		if err != nil {
			return "", err
		}
		if expected != b.digits {
			return "", &cnaberror.InvalidBarcodeError{
				Barcode: line,
				Reason:  fmt.Sprintf("check digit of block %s does not match", b.name),
			}
		}
	}

	barcode := digits[0:4] + digits[32:33] + digits[33:47] +
		digits[4:9] + digits[10:20] + digits[21:31]

	ok, err := ValidateBarcode(barcode)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &cnaberror.InvalidBarcodeError{Barcode: line, Reason: "general check digit does not match"}
	}
	return Barcode(barcode), nil
}

func withModulo10(digits string) (string, error) {
	dv, err := checksum.Modulo10(digits)
	if err != nil {
		return "", err
	}
	return digits + string(checksum.Digit(dv)), nil
}
