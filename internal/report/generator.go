// Package report summarizes an encoded remittance for the operator.
package report

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/remittance"
	"fjacquet/boleto-cnab/internal/validation"

	"gopkg.in/yaml.v3"
)

// Summary describes one remittance file.
type Summary struct {
	Layout       string `json:"layout" yaml:"layout"`
	BankCode     string `json:"bank_code" yaml:"bank_code"`
	Sender       string `json:"sender" yaml:"sender"`
	File         string `json:"file,omitempty" yaml:"file,omitempty"`
	GeneratedAt  string `json:"generated_at" yaml:"generated_at"`
	Lines        int    `json:"lines" yaml:"lines"`
	Lots         int    `json:"lots" yaml:"lots"`
	Titles       int    `json:"titles" yaml:"titles"`
	TotalAmount  string `json:"total_amount" yaml:"total_amount"`
	FirstDueDate string `json:"first_due_date" yaml:"first_due_date"`
	LastDueDate  string `json:"last_due_date" yaml:"last_due_date"`
}

// NewSummary builds the summary of result, encoded from req into file.
func NewSummary(req remittance.Request, result *remittance.Result, file string) Summary {
	s := Summary{
		Layout:      "CNAB " + string(result.Layout),
		BankCode:    req.BankCode,
		Sender:      req.Sender.Party.String(),
		File:        file,
		GeneratedAt: req.GeneratedAt.Format(time.RFC3339),
		Lines:       len(result.Lines),
		Lots:        result.LotCount,
		Titles:      result.TitleCount,
		TotalAmount: result.TotalAmount.StringFixed(2),
	}

	var first, last time.Time
	visit := func(due time.Time) {
		if first.IsZero() || due.Before(first) {
			first = due
		}
		if due.After(last) {
			last = due
		}
	}
	for _, t := range req.Titles {
		visit(t.DueDate)
	}
	for _, lot := range req.Lots {
		for _, t := range lot {
			visit(t.DueDate)
		}
	}
	s.FirstDueDate = dateutils.ToISODate(first)
	s.LastDueDate = dateutils.ToISODate(last)
	return s
}

// ReportGenerator renders summaries as text, JSON or YAML.
type ReportGenerator struct {
	logger logging.Logger
}

// NewReportGenerator creates a new instance of ReportGenerator.
func NewReportGenerator(logger logging.Logger) *ReportGenerator {
	return &ReportGenerator{logger: logger}
}

// GenerateReport renders s in format.
func (g *ReportGenerator) GenerateReport(s Summary, format string) ([]byte, error) {
	if err := validation.IsValidReportFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case validation.FormatJSON:
		return g.generateJSONReport(s)
	case validation.FormatYAML:
		return g.generateYAMLReport(s)
	default:
		return generateTextReport(s), nil
	}
}

func (g *ReportGenerator) generateJSONReport(s Summary) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(data, '\n'), nil
}

func (g *ReportGenerator) generateYAMLReport(s Summary) ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return data, nil
}

func generateTextReport(s Summary) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s remittance for bank %s\n", s.Layout, s.BankCode)
	fmt.Fprintf(&b, "  sender:    %s\n", s.Sender)
	if s.File != "" {
		fmt.Fprintf(&b, "  file:      %s\n", s.File)
	}
	fmt.Fprintf(&b, "  generated: %s\n", s.GeneratedAt)
	fmt.Fprintf(&b, "  lines:     %d\n", s.Lines)
	if s.Lots > 0 {
		fmt.Fprintf(&b, "  lots:      %d\n", s.Lots)
	}
	fmt.Fprintf(&b, "  titles:    %d\n", s.Titles)
	fmt.Fprintf(&b, "  total:     %s\n", s.TotalAmount)
	fmt.Fprintf(&b, "  due dates: %s to %s\n", s.FirstDueDate, s.LastDueDate)
	return []byte(b.String())
}
