// Package boleto handles the boleto generation command
package boleto

import (
	"fmt"
	"io"

	"fjacquet/boleto-cnab/cmd/common"
	"fjacquet/boleto-cnab/cmd/root"
	"fjacquet/boleto-cnab/internal/boleto"
	"fjacquet/boleto-cnab/internal/container"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"
	"fjacquet/boleto-cnab/internal/titleio"

	"github.com/spf13/cobra"
)

// Options are the inputs of one boleto run.
type Options struct {
	Input        string
	Sender       string
	Output       string
	BankCode     string
	Instructions string
}

var instructions string

// Cmd represents the boleto command
var Cmd = &cobra.Command{
	Use:   "boleto",
	Short: "Generate boleto barcodes and digitable lines",
	Long: `Generate the barcode and "linha digitável" of every title in a batch.

Without -o the digitable lines are printed one per title; with -o a CSV of
every printed field is written.

Example:
  boleto-cnab boleto -i titles.csv -s sender.yaml -o boletos.csv`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		return Run(c, Options{
			Input:        root.SharedFlags.Input,
			Sender:       root.SharedFlags.Sender,
			Output:       root.SharedFlags.Output,
			BankCode:     c.GetConfig().Bank.Code,
			Instructions: instructions,
		}, cmd.OutOrStdout())
	},
}

func init() {
	Cmd.Flags().StringVar(&instructions, "instructions", "", "Instructions printed on every boleto")
}

// Run generates the boletos of opts.Input and writes them to opts.Output, or
// their digitable lines to out when no output file is given.
func Run(c *container.Container, opts Options, out io.Writer) error {
	log := c.GetLogger()
	batch, err := common.LoadBatch(c.GetStore(), opts.Input, opts.Sender, log)
	if err != nil {
		return err
	}

	bankCode := opts.BankCode
	if bankCode == "" {
		bankCode = c.GetConfig().Bank.Code
	}

	boletos, err := Generate(c.GetBoletoGenerator(), bankCode, c.GetConfig().Boleto.CurrencyCode, batch, opts.Instructions)
	if err != nil {
		return err
	}

	log.Info("Boletos generated",
		logging.F(logging.FieldBankCode, bankCode),
		logging.F(logging.FieldCount, len(boletos)))

	if opts.Output == "" {
		lines := make([]string, len(boletos))
		for i, b := range boletos {
			lines[i] = b.DigitableLine.String()
		}
		return common.WriteLines(out, lines)
	}

	rows := make([]titleio.BoletoRow, len(boletos))
	for i, b := range boletos {
		rows[i] = titleio.NewBoletoRow(b)
	}
	return c.GetStore().WriteBoletosCSV(opts.Output, rows)
}

// Generate builds one boleto per title of batch, stopping at the first
// title that cannot be encoded.
func Generate(gen *boleto.Generator, bankCode, currencyCode string, batch *common.Batch, instructions string) ([]boleto.Boleto, error) {
	boletos := make([]boleto.Boleto, 0, len(batch.Titles))
	for i, title := range batch.Titles {
		b, err := gen.Generate(NewDocument(bankCode, currencyCode, batch.Sender, title, instructions))
		if err != nil {
			return nil, fmt.Errorf("title %d (%s): %w", i+1, title.NossoNumero, err)
		}
		boletos = append(boletos, b)
	}
	return boletos, nil
}

// NewDocument lays a title out on a boleto of sender.
func NewDocument(bankCode, currencyCode string, sender models.Sender, title models.Title, instructions string) boleto.Document {
	return boleto.Document{
		BankCode:     bankCode,
		CurrencyCode: currencyCode,
		Agency:       sender.Agency,
		Account:      sender.Account,
		Wallet:       title.Wallet,
		NossoNumero:  title.NossoNumero,
		DueDate:      title.DueDate,
		Amount:       title.Amount,
		Beneficiary:  sender.Party,
		Payer:        title.Payer,
		Instructions: instructions,
		Acceptance:   title.Acceptance,
	}
}
