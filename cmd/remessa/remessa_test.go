package remessa_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/boleto-cnab/cmd/common"
	"fjacquet/boleto-cnab/cmd/remessa"
	"fjacquet/boleto-cnab/internal/cnab240"
	"fjacquet/boleto-cnab/internal/config"
	"fjacquet/boleto-cnab/internal/container"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/remittance"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, time.April, 1, 10, 0, 0, 0, time.UTC)

func newContainer(t *testing.T, layout, charset string) (*container.Container, *logging.MockLogger) {
	t.Helper()
	cfg := &config.Config{
		Log:     config.LogConfig{Level: "info", Format: "text"},
		Bank:    config.BankConfig{Code: "341"},
		CNAB:    config.CNABConfig{Layout: layout, FileSequence: 1, Charset: charset},
		Boleto:  config.BoletoConfig{CurrencyCode: "9"},
		Charges: config.ChargesConfig{FinePercent: 2, InterestPercent: 1},
	}
	log := logging.NewMockLogger()
	c, err := container.NewContainerWithLogger(cfg, log)
	require.NoError(t, err)
	return c, log
}

func writeInputs(t *testing.T, payerName string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	titles := filepath.Join(dir, "titles.csv")
	require.NoError(t, os.WriteFile(titles, []byte(
		"nosso_numero,due_date,amount,payer_name,payer_tax_id\n"+
			"1,15/05/2024,1000.00,"+payerName+",12345678909\n"+
			"2,16/05/2024,250.50,Jose Santos,98765432100\n"), 0600))
	sender := filepath.Join(dir, "sender.yaml")
	require.NoError(t, os.WriteFile(sender, []byte(
		"name: ACME LTDA\ntax_id: \"12345678000190\"\nagency: \"1234\"\naccount: \"56789\"\n"), 0600))
	return titles, sender
}

func TestRun_CNAB240ToStdout(t *testing.T) {
	c, log := newContainer(t, "240", "iso-8859-1")
	titles, sender := writeInputs(t, "Maria Silva")

	var out bytes.Buffer
	result, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender, FileSequence: 3}, now, &out, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, remittance.Layout240, result.Layout)
	assert.Equal(t, 2, result.TitleCount)
	assert.Equal(t, 1, result.LotCount)
	assert.Equal(t, "1250.50", result.TotalAmount.StringFixed(2))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\r\n"), "\r\n")
	require.Len(t, lines, 8)
	for _, line := range lines {
		assert.Len(t, line, cnab240.LineWidth)
	}
	assert.NoError(t, cnab240.VerifyLines(lines))
	assert.True(t, log.HasEntry("INFO", "Remittance encoded"))
}

func TestRun_LotSize(t *testing.T) {
	c, _ := newContainer(t, "240", "iso-8859-1")
	titles, sender := writeInputs(t, "Maria Silva")

	result, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender, LotSize: 1}, now, &bytes.Buffer{}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, 2, result.LotCount)
	assert.Len(t, result.Lines, 10)
}

func TestRun_CNAB400ToFile(t *testing.T) {
	c, _ := newContainer(t, "240", "iso-8859-1")
	titles, sender := writeInputs(t, "Conceição Araújo")
	output := filepath.Join(t.TempDir(), "out", "CB010401.REM")

	var out bytes.Buffer
	result, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender, Output: output, Layout: "cnab400"}, now, &out, io.Discard)
	require.NoError(t, err)
	assert.Empty(t, out.String())
	assert.Equal(t, remittance.Layout400, result.Layout)

	data, err := os.ReadFile(output) // #nosec G304 -- test file
	require.NoError(t, err)
	// 4 lines of 400 single-byte columns plus CRLF
	assert.Len(t, data, 4*402)
	assert.True(t, strings.HasSuffix(string(data), "000004\r\n"))
}

func TestRun_Charges(t *testing.T) {
	c, _ := newContainer(t, "240", "iso-8859-1")
	titles, sender := writeInputs(t, "Maria Silva")

	charged, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender}, now, &bytes.Buffer{}, io.Discard)
	require.NoError(t, err)
	plain, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender, NoCharges: true}, now, &bytes.Buffer{}, io.Discard)
	require.NoError(t, err)

	// segment P of the first title: interest code then the daily interest 0.33
	assert.NotEqual(t, charged.Lines[2], plain.Lines[2])
	assert.Contains(t, charged.Lines[2], "000000000000033")
}

func TestRun_Errors(t *testing.T) {
	titles, sender := writeInputs(t, "Maria Silva")

	tests := []struct {
		name   string
		opts   remessa.Options
		errIs  error
		errMsg string
	}{
		{
			name:  "missing input",
			opts:  remessa.Options{Sender: sender},
			errIs: common.ErrMissingInput,
		},
		{
			name:   "bad layout",
			opts:   remessa.Options{Input: titles, Sender: sender, Layout: "480"},
			errMsg: "layout",
		},
		{
			name:   "bad summary format",
			opts:   remessa.Options{Input: titles, Sender: sender, Summary: "xml"},
			errMsg: "unsupported report format",
		},
		{
			name:   "bad date",
			opts:   remessa.Options{Input: titles, Sender: sender, Date: "tomorrow"},
			errMsg: "invalid --date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContainer(t, "400", "ascii")
			_, err := remessa.Run(c, tt.opts, now, &bytes.Buffer{}, io.Discard)
			require.Error(t, err)
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
			if tt.errMsg != "" {
				assert.Contains(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestRun_StrictRejectsTruncation(t *testing.T) {
	c, _ := newContainer(t, "240", "iso-8859-1")
	titles, sender := writeInputs(t, strings.Repeat("A", 60))

	_, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender}, now, &bytes.Buffer{}, io.Discard)
	require.NoError(t, err)

	_, err = remessa.Run(c, remessa.Options{Input: titles, Sender: sender, Strict: true}, now, &bytes.Buffer{}, io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "payer_name")
}

func TestRun_Summary(t *testing.T) {
	c, _ := newContainer(t, "240", "iso-8859-1")
	titles, sender := writeInputs(t, "Maria Silva")
	output := filepath.Join(t.TempDir(), "CB010401.REM")

	var summary bytes.Buffer
	_, err := remessa.Run(c, remessa.Options{Input: titles, Sender: sender, Output: output, Summary: "text"}, now, io.Discard, &summary)
	require.NoError(t, err)

	text := summary.String()
	assert.Contains(t, text, "CNAB 240 remittance for bank 341\n")
	assert.Contains(t, text, "  file:      "+output+"\n")
	assert.Contains(t, text, "  titles:    2\n")
	assert.Contains(t, text, "  due dates: 2024-05-15 to 2024-05-16\n")
}
