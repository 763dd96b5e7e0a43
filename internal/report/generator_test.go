package report

import (
	"encoding/json"
	"testing"
	"time"

	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"
	"fjacquet/boleto-cnab/internal/remittance"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func date(month time.Month, day int) time.Time {
	return time.Date(2024, month, day, 0, 0, 0, 0, time.UTC)
}

func sampleSummary(t *testing.T) Summary {
	t.Helper()
	req := remittance.Request{
		BankCode: "237",
		Sender:   models.Sender{Party: models.NewParty("ACME LTDA", "11222333000181")},
		Lots: [][]models.Title{
			{{NossoNumero: "1", DueDate: date(time.June, 10)}},
			{{NossoNumero: "2", DueDate: date(time.May, 15)}, {NossoNumero: "3", DueDate: date(time.July, 1)}},
		},
		GeneratedAt: time.Date(2024, time.April, 1, 9, 30, 0, 0, time.UTC),
	}
	result := &remittance.Result{
		Layout:      remittance.Layout240,
		Lines:       make([]string, 12),
		LotCount:    2,
		TitleCount:  3,
		TotalAmount: decimal.RequireFromString("1500.5"),
	}
	return NewSummary(req, result, "CB010401.REM")
}

func TestNewSummary(t *testing.T) {
	s := sampleSummary(t)

	assert.Equal(t, "CNAB 240", s.Layout)
	assert.Equal(t, "237", s.BankCode)
	assert.Equal(t, "ACME LTDA (11.222.333/0001-81)", s.Sender)
	assert.Equal(t, "CB010401.REM", s.File)
	assert.Equal(t, "2024-04-01T09:30:00Z", s.GeneratedAt)
	assert.Equal(t, 12, s.Lines)
	assert.Equal(t, 2, s.Lots)
	assert.Equal(t, 3, s.Titles)
	assert.Equal(t, "1500.50", s.TotalAmount)
	assert.Equal(t, "2024-05-15", s.FirstDueDate)
	assert.Equal(t, "2024-07-01", s.LastDueDate)
}

func TestReportGenerator_GenerateReport_JSON(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())
	s := sampleSummary(t)

	data, err := generator.GenerateReport(s, "json")
	require.NoError(t, err)

	var decoded Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestReportGenerator_GenerateReport_YAML(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())
	s := sampleSummary(t)

	data, err := generator.GenerateReport(s, "yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "total_amount: \"1500.50\"")

	var decoded Summary
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, s, decoded)
}

func TestReportGenerator_GenerateReport_Text(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())
	s := sampleSummary(t)

	data, err := generator.GenerateReport(s, "text")
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "CNAB 240 remittance for bank 237\n")
	assert.Contains(t, text, "  lots:      2\n")
	assert.Contains(t, text, "  total:     1500.50\n")
	assert.Contains(t, text, "  due dates: 2024-05-15 to 2024-07-01\n")

	s.Lots = 0
	s.File = ""
	data, err = generator.GenerateReport(s, "text")
	require.NoError(t, err)
	assert.NotContains(t, string(data), "lots:")
	assert.NotContains(t, string(data), "file:")
}

func TestReportGenerator_GenerateReport_UnsupportedFormat(t *testing.T) {
	generator := NewReportGenerator(logging.NewMockLogger())

	_, err := generator.GenerateReport(sampleSummary(t), "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format: xml")
}
