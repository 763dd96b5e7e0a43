// Package remessa handles the CNAB remittance command
package remessa

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"fjacquet/boleto-cnab/cmd/common"
	"fjacquet/boleto-cnab/cmd/root"
	"fjacquet/boleto-cnab/internal/cnab240"
	"fjacquet/boleto-cnab/internal/container"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"
	"fjacquet/boleto-cnab/internal/remittance"
	"fjacquet/boleto-cnab/internal/report"
	"fjacquet/boleto-cnab/internal/titleio"
	"fjacquet/boleto-cnab/internal/validation"

	"github.com/spf13/cobra"
)

// Options are the inputs of one remittance run.
type Options struct {
	Input            string
	Sender           string
	Output           string
	BankCode         string
	Layout           string
	Strict           bool
	FileSequence     int
	RemittanceNumber int
	LotSize          int
	NoCharges        bool
	Date             string
	Summary          string
}

var flags Options

// Cmd represents the remessa command
var Cmd = &cobra.Command{
	Use:   "remessa",
	Short: "Write a CNAB 240 or CNAB 400 remittance file",
	Long: `Write the collection remittance ("arquivo de remessa") of a title batch.

The configured fine and monthly interest are attached to every title that
has no interest of its own, unless --no-charges is given. Without -o the
file is written to stdout.

Example:
  boleto-cnab remessa -i titles.csv -s sender.yaml --layout 240 -o CB010101.REM`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := root.GetContainer()
		if c == nil {
			return fmt.Errorf("container not initialized")
		}
		opts := flags
		opts.Input = root.SharedFlags.Input
		opts.Sender = root.SharedFlags.Sender
		opts.Output = root.SharedFlags.Output
		opts.BankCode = c.GetConfig().Bank.Code
		if !cmd.Flags().Changed("strict") {
			opts.Strict = c.GetConfig().CNAB.Strict
		}
		if !cmd.Flags().Changed("sequence") {
			opts.FileSequence = c.GetConfig().CNAB.FileSequence
		}
		_, err := Run(c, opts, time.Now(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		return err
	},
}

func init() {
	Cmd.Flags().StringVarP(&flags.Layout, "layout", "l", "", "CNAB layout, 240 or 400 (overrides cnab.layout)")
	Cmd.Flags().BoolVar(&flags.Strict, "strict", false, "Reject text that would be truncated (overrides cnab.strict)")
	Cmd.Flags().IntVar(&flags.FileSequence, "sequence", 1, "File sequence number (overrides cnab.file_sequence)")
	Cmd.Flags().IntVar(&flags.RemittanceNumber, "remittance-number", 0, "Remittance number of CNAB 240 lot headers (defaults to --sequence)")
	Cmd.Flags().IntVar(&flags.LotSize, "lot-size", 0, "Maximum titles per CNAB 240 lot (0 keeps one lot)")
	Cmd.Flags().BoolVar(&flags.NoCharges, "no-charges", false, "Do not attach the configured fine and interest")
	Cmd.Flags().StringVar(&flags.Date, "date", "", "Generation date, dd/mm/yyyy (defaults to now)")
	Cmd.Flags().StringVar(&flags.Summary, "summary", "", "Print a summary to stderr: text, json or yaml")
}

// Run encodes the remittance of opts.Input and writes it to opts.Output in
// the configured charset, or to out when no output file is given. The
// summary, when requested, goes to summaryOut.
func Run(c *container.Container, opts Options, now time.Time, out, summaryOut io.Writer) (*remittance.Result, error) {
	log := c.GetLogger()
	cfg := c.GetConfig()

	if opts.Summary != "" {
		if err := validation.IsValidReportFormat(opts.Summary); err != nil {
			return nil, err
		}
	}

	batch, err := common.LoadBatch(c.GetStore(), opts.Input, opts.Sender, log)
	if err != nil {
		return nil, err
	}

	layout := c.DefaultLayout()
	if opts.Layout != "" {
		if layout, err = remittance.ParseLayout(opts.Layout); err != nil {
			return nil, err
		}
	}

	generatedAt, err := common.ParseGeneratedAt(opts.Date, now)
	if err != nil {
		return nil, err
	}

	bankCode := opts.BankCode
	if bankCode == "" {
		bankCode = cfg.Bank.Code
	}
	bankName := cfg.Bank.Name
	if bankName == "" {
		bankName = models.BankName(bankCode)
	}

	titles := batch.Titles
	if !opts.NoCharges {
		fine, interest := c.ChargeRates()
		titles = remittance.ApplyCharges(titles, fine, interest)
	}

	req := remittance.Request{
		Layout:           layout,
		BankCode:         bankCode,
		BankName:         bankName,
		Sender:           batch.Sender,
		FileSequence:     opts.FileSequence,
		RemittanceNumber: opts.RemittanceNumber,
		GeneratedAt:      generatedAt,
		Strict:           opts.Strict,
	}
	if opts.LotSize > 0 {
		req.Lots = common.SplitLots(titles, opts.LotSize)
	} else {
		req.Titles = titles
	}

	result, err := c.GetRemittanceService().Generate(req)
	if err != nil {
		return nil, err
	}

	if result.Layout == remittance.Layout240 {
		if err := cnab240.VerifyLines(result.Lines); err != nil {
			return nil, fmt.Errorf("encoded remittance failed verification: %w", err)
		}
	}

	if err := write(c, opts.Output, result, out); err != nil {
		return nil, err
	}

	if opts.Summary != "" {
		summary := report.NewSummary(req, result, opts.Output)
		data, err := c.GetReportGenerator().GenerateReport(summary, opts.Summary)
		if err != nil {
			return nil, err
		}
		if _, err := summaryOut.Write(data); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func write(c *container.Container, output string, result *remittance.Result, out io.Writer) error {
	charset := c.GetConfig().CNAB.Charset
	if output != "" {
		return c.GetStore().WriteRemittance(output, result.Content(), charset)
	}

	encoded, err := titleio.Encode(result.Content(), charset)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, bytes.NewReader(encoded)); err != nil {
		return err
	}
	c.GetLogger().Debug("Remittance written to stdout",
		logging.F(logging.FieldCharset, charset),
		logging.F(logging.FieldCount, result.TitleCount))
	return nil
}
