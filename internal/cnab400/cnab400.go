// Package cnab400 writes the legacy CNAB 400 collection remittance: a header,
// one detail per title and a trailer, each exactly 400 columns with its
// sequence number in columns 395-400.
package cnab400

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/fixedwidth"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
)

const (
	// LineWidth is the width of every CNAB 400 record.
	LineWidth = 400
	// LayoutName identifies this layout in errors and logs.
	LayoutName = "400"

	sequenceWidth = 6
	fillerWidth   = LineWidth - sequenceWidth
)

// Record types (column 1).
const (
	RecordHeader  = "0"
	RecordDetail  = "1"
	RecordTrailer = "9"
)

// HeaderInput feeds record 0.
type HeaderInput struct {
	BankCode    string
	BankName    string
	Sender      models.Sender
	GeneratedAt time.Time
}

// DetailInput feeds record 1. The title is expected to carry its defaults.
type DetailInput struct {
	BankCode string
	Sender   models.Sender
	Title    models.Title
	Sequence int
}

// Encoder renders CNAB 400 records; Strict rejects values that do not fit.
type Encoder struct {
	Strict bool
}

// line starts a record that reserves the last six columns for the sequence.
func (e Encoder) line() *fixedwidth.Line {
	return fixedwidth.NewLine(fillerWidth, e.Strict)
}

func (e Encoder) finish(l *fixedwidth.Line, sequence int) (string, error) {
	body, err := l.Build()
	if err != nil {
		return "", err
	}
	return body + fixedwidth.Int(sequence, sequenceWidth), nil
}

// Header renders record 0, always sequence 000001.
func (e Encoder) Header(in HeaderInput) (string, error) {
	l := e.line().
		Const(RecordHeader).
		Const("1").
		Text("literal", "REMESSA", 7).
		Const("01").
		Text("service", "COBRANCA", 15).
		Digits("account", in.Sender.Account, 20).
		Text("company_name", in.Sender.Name, 30).
		Digits("bank_code", in.BankCode, 3).
		Const(fixedwidth.Text(in.BankName, 15)). // informational, always truncated
		Date("generated_at", in.GeneratedAt, fixedwidth.PatternDDMMYY)
	return e.finish(l, 1)
}

// Detail renders record 1.
func (e Encoder) Detail(in DetailInput) (string, error) {
	s, t := in.Sender, in.Title
	l := e.line().
		Const(RecordDetail).
		Digits("company_tax_id_type", s.TaxIDType, 2).
		Digits("company_tax_id", s.TaxID, 14).
		Digits("agency", s.Agency, 4).
		Digits("account", s.Account, 8).
		Digits("nosso_numero", t.NossoNumero, 25).
		Const("01").
		Text("document_number", t.DocumentNumber, 10).
		Date("due_date", t.DueDate, fixedwidth.PatternDDMMYY).
		Number("amount", t.Amount, 13, 2).
		Digits("bank_code", in.BankCode, 3).
		Zeros(5).
		Digits("species", t.Species, 2).
		Text("acceptance", t.Acceptance, 1).
		Date("issue_date", t.IssueDate, fixedwidth.PatternDDMMYY)
	return e.finish(l, in.Sequence)
}

// Trailer renders record 9 with the last sequence number of the file.
func (e Encoder) Trailer(sequence int) (string, error) {
	return e.finish(e.line().Const(RecordTrailer), sequence)
}

// Options tune a remittance without changing its titles.
type Options struct {
	BankName    string // defaults to models.BankName(bankCode)
	GeneratedAt time.Time
	Strict      bool
}

// Request describes a whole CNAB 400 remittance.
type Request struct {
	BankCode string
	Sender   models.Sender
	Titles   []models.Title
	Options
}

// Remittance is an encoded file with its totals.
type Remittance struct {
	Lines       []string
	TitleCount  int
	TotalAmount decimal.Decimal
}

// String joins the lines with CRLF, terminating the last one too.
func (r *Remittance) String() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\r\n") + "\r\n"
}

// BuildRemittance encodes a header, one detail per title and the trailer.
func BuildRemittance(req Request) (*Remittance, error) {
	if len(req.Titles) == 0 {
		return nil, &cnaberror.EmptyRemittanceError{Layout: LayoutName}
	}
	if req.GeneratedAt.IsZero() {
		return nil, cnaberror.Field("generated_at", "", "generation time is required")
	}
	bankName := req.BankName
	if bankName == "" {
		bankName = models.BankName(req.BankCode)
	}

	sender := req.Sender
	sender.Party = sender.Party.WithDefaults()

	enc := Encoder{Strict: req.Strict}
	r := &Remittance{TotalAmount: decimal.Zero}

	header, err := enc.Header(HeaderInput{
		BankCode:    req.BankCode,
		BankName:    bankName,
		Sender:      sender,
		GeneratedAt: req.GeneratedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	r.Lines = append(r.Lines, header)

	for _, title := range req.Titles {
		title = title.WithDefaults(req.GeneratedAt)
		if title.Amount.IsNegative() {
			return nil, fmt.Errorf("title %s: %w", title.NossoNumero,
				cnaberror.Field("amount", title.Amount.String(), "must not be negative"))
		}
		title.Amount = models.RoundCents(title.Amount)

		detail, err := enc.Detail(DetailInput{
			BankCode: req.BankCode,
			Sender:   sender,
			Title:    title,
			Sequence: len(r.Lines) + 1,
		})
		if err != nil {
			return nil, fmt.Errorf("detail of title %s: %w", title.NossoNumero, err)
		}
		r.Lines = append(r.Lines, detail)
		r.TitleCount++
		r.TotalAmount = r.TotalAmount.Add(title.Amount)
	}

	trailer, err := enc.Trailer(len(r.Lines) + 1)
	if err != nil {
		return nil, fmt.Errorf("trailer: %w", err)
	}
	r.Lines = append(r.Lines, trailer)

	return r, nil
}

// BuildFullRemittance encodes titles and returns the file content.
func BuildFullRemittance(bankCode string, sender models.Sender, titles []models.Title, opts Options) (string, error) {
	r, err := BuildRemittance(Request{BankCode: bankCode, Sender: sender, Titles: titles, Options: opts})
	if err != nil {
		return "", err
	}
	return r.String(), nil
}
