// Package validate handles the barcode and digitable line check command
package validate

import (
	"errors"
	"fmt"
	"io"

	"fjacquet/boleto-cnab/cmd/root"
	"fjacquet/boleto-cnab/internal/boleto"
	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/duedate"
	"fjacquet/boleto-cnab/internal/fixedwidth"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"
	"fjacquet/boleto-cnab/internal/validation"

	"github.com/spf13/cobra"
)

// ErrInvalidInput is returned when at least one argument fails validation.
var ErrInvalidInput = errors.New("invalid barcode or digitable line")

// Cmd represents the validate command
var Cmd = &cobra.Command{
	Use:   "validate <barcode|digitable line|CPF|CNPJ>...",
	Short: "Check boleto barcodes, digitable lines and tax ids",
	Long: `Check the check digits of 44-digit barcodes and 47-digit digitable lines,
and print the bank, due date and amount they carry. 11 and 14 digit inputs
are checked as CPF and CNPJ. Dots, dashes, slashes and spaces are ignored.

Example:
  boleto-cnab validate "23791.23405 91234.567898 01000.123404 9 97170000123456"
  boleto-cnab validate 11.222.333/0001-81`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(args, cmd.OutOrStdout(), root.GetLogger())
	},
}

// Info is what a valid barcode carries.
type Info struct {
	Barcode  boleto.Barcode
	Bank     string
	BankName string
	DueDate  string
	Amount   string
}

// Check validates one barcode or digitable line and decodes its barcode.
func Check(input string) (Info, error) {
	digits := fixedwidth.OnlyDigits(input)

	var barcode boleto.Barcode
	switch len(digits) {
	case boleto.BarcodeLength:
		ok, err := boleto.ValidateBarcode(digits)
		if err != nil {
			return Info{}, err
		}
		if !ok {
			return Info{}, fmt.Errorf("barcode check digit mismatch")
		}
		barcode = boleto.Barcode(digits)
	case boleto.DigitableLineLength:
		b, err := boleto.ParseDigitableLine(digits)
		if err != nil {
			return Info{}, err
		}
		barcode = b
	default:
		return Info{}, fmt.Errorf("expected %d or %d digits, got %d",
			boleto.BarcodeLength, boleto.DigitableLineLength, len(digits))
	}

	info := Info{
		Barcode:  barcode,
		Bank:     barcode.BankCode(),
		BankName: models.BankName(barcode.BankCode()),
		Amount:   models.FormatBRL(barcode.Amount()),
	}
	if barcode.Factor() == 0 {
		info.DueDate = "none"
	} else if due, err := duedate.FromFactor(barcode.Factor()); err == nil {
		info.DueDate = dateutils.ToBrazilianFormat(due)
	}
	return info, nil
}

// CheckTaxID validates a CPF or CNPJ and returns it formatted.
func CheckTaxID(input string) (string, error) {
	if err := validation.TaxID(input); err != nil {
		return "", err
	}
	party := models.NewParty("", fixedwidth.OnlyDigits(input))
	kind := "CNPJ"
	if party.IsIndividual() {
		kind = "CPF"
	}
	return kind + " " + party.FormattedTaxID(), nil
}

// Run checks every input and prints one report line each. It fails with
// ErrInvalidInput when any input is invalid.
func Run(inputs []string, out io.Writer, log logging.Logger) error {
	invalid := 0
	for _, input := range inputs {
		report, err := describe(input)
		if err != nil {
			invalid++
			log.WithError(err).Warn("Invalid input", logging.F(logging.FieldBarcode, input))
			if _, werr := fmt.Fprintf(out, "INVALID %s: %v\n", input, err); werr != nil {
				return werr
			}
			continue
		}
		if _, err := fmt.Fprintf(out, "OK %s\n", report); err != nil {
			return err
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d: %w", invalid, len(inputs), ErrInvalidInput)
	}
	return nil
}

func describe(input string) (string, error) {
	switch len(fixedwidth.OnlyDigits(input)) {
	case validation.CPFLength, validation.CNPJLength:
		return CheckTaxID(input)
	}
	info, err := Check(input)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s bank=%s (%s) due=%s amount=%s",
		info.Barcode, info.Bank, info.BankName, info.DueDate, info.Amount), nil
}
