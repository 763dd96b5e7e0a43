// Package validation checks Brazilian tax ids and the operator-supplied
// options of the batch driver.
package validation

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/boleto-cnab/internal/checksum"
	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/fixedwidth"
)

// Tax id lengths.
const (
	CPFLength  = 11
	CNPJLength = 14
)

// Supported report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	cpfWeights  = []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	cnpjWeights = []int{2, 3, 4, 5, 6, 7, 8, 9}
)

// CPF checks the two check digits of an individual's tax id. Dots and dashes
// are ignored.
func CPF(document string) error {
	return checkTaxID("cpf", document, CPFLength, cpfWeights)
}

// CNPJ checks the two check digits of a company's tax id. Dots, slashes and
// dashes are ignored.
func CNPJ(document string) error {
	return checkTaxID("cnpj", document, CNPJLength, cnpjWeights)
}

// TaxID checks a CPF or a CNPJ, told apart by their digit count.
func TaxID(document string) error {
	switch len(fixedwidth.OnlyDigits(document)) {
	case CPFLength:
		return CPF(document)
	case CNPJLength:
		return CNPJ(document)
	default:
		return cnaberror.Field("tax_id", document,
			fmt.Sprintf("must have %d (CPF) or %d (CNPJ) digits", CPFLength, CNPJLength))
	}
}

func checkTaxID(field, document string, length int, weights []int) error {
	digits := fixedwidth.OnlyDigits(document)
	if len(digits) != length {
		return cnaberror.Field(field, document, fmt.Sprintf("must have %d digits", length))
	}
	// repeated digits pass the check digits but are never issued
	if strings.Count(digits, digits[:1]) == length {
		return cnaberror.Field(field, document, "repeated digits")
	}

	body := digits[:length-2]
	for i := 0; i < 2; i++ {
		dv, err := checksum.TaxIDDigit(body, weights)
		if err != nil {
			return err
		}
		body += string(checksum.Digit(dv))
	}
	if body != digits {
		return cnaberror.Field(field, document, "check digits do not match")
	}
	return nil
}

// IsValidReportFormat checks if the given report format is supported.
func IsValidReportFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported report format: %s. Supported formats are 'text', 'json', 'yaml'", format)
	}
}

// IsValidInputFile checks that path names an existing regular file.
func IsValidInputFile(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return fmt.Errorf("error checking file %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}
