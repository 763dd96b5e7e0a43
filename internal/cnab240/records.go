// Package cnab240 writes FEBRABAN CNAB 240 collection remittance files.
//
// A file is a header, one or more lots and a trailer. Each lot holds a lot
// header, a P segment (title) and a Q segment (payer) per title, and a lot
// trailer with its record count and total amount. Every line is exactly 240
// columns.
package cnab240

import (
	"time"

	"fjacquet/boleto-cnab/internal/fixedwidth"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
)

// LineWidth is the width of every CNAB 240 record.
const LineWidth = 240

// Layout identifiers written in the headers.
const (
	FileLayoutVersion = "103"
	LotLayoutVersion  = "060"
	FileTrailerLot    = "9999"
	currencyReal      = "09"
)

// Record types (column 8).
const (
	RecordFileHeader  = "0"
	RecordLotHeader   = "1"
	RecordDetail      = "3"
	RecordLotTrailer  = "5"
	RecordFileTrailer = "9"
)

// FileHeaderInput feeds the file header (record 0).
type FileHeaderInput struct {
	BankCode     string
	BankName     string
	Sender       models.Sender
	FileSequence int
	GeneratedAt  time.Time
}

// LotHeaderInput feeds a lot header (record 1).
type LotHeaderInput struct {
	BankCode         string
	Lot              int
	Sender           models.Sender
	Message1         string
	Message2         string
	RemittanceNumber int
	RecordedAt       time.Time
}

// SegmentPInput feeds the title segment of a detail record.
type SegmentPInput struct {
	BankCode string
	Lot      int
	Sequence int
	Sender   models.Sender
	Title    models.Title
}

// SegmentQInput feeds the payer segment of a detail record.
type SegmentQInput struct {
	BankCode string
	Lot      int
	Sequence int
	Payer    models.Party
}

// LotTrailerInput feeds a lot trailer (record 5). DetailCount is the number
// of P and Q segments in the lot.
type LotTrailerInput struct {
	BankCode    string
	Lot         int
	DetailCount int
	TotalAmount decimal.Decimal
}

// FileTrailerInput feeds the file trailer (record 9). RecordCount includes
// every line of the file, the trailer itself too.
type FileTrailerInput struct {
	BankCode    string
	LotCount    int
	RecordCount int
}

// Encoder renders CNAB 240 records. The zero value truncates values that do
// not fit their column; a Strict encoder rejects them with an InvalidFieldError.
type Encoder struct {
	Strict bool
}

func (e Encoder) line() *fixedwidth.Line {
	return fixedwidth.NewLine(LineWidth, e.Strict)
}

// FileHeader renders record 0.
func (e Encoder) FileHeader(in FileHeaderInput) (string, error) {
	s := in.Sender
	return e.line().
		Digits("bank_code", in.BankCode, 3).
		Const("0000").
		Const(RecordFileHeader).
		Blank(9).
		Digits("company_tax_id_type", s.TaxIDType, 1).
		Digits("company_tax_id", s.TaxID, 14).
		Text("agreement", s.Agreement, 20).
		Digits("agency", s.Agency, 5).
		Text("agency_dv", s.AgencyDV, 1).
		Digits("account", s.Account, 12).
		Text("account_dv", s.AccountDV, 1).
		Blank(1).
		Text("company_name", s.Name, 30).
		Text("bank_name", in.BankName, 30).
		Blank(10).
		Const("1").
		Date("generated_at", in.GeneratedAt, fixedwidth.PatternDDMMYYYY).
		Const(in.GeneratedAt.Format("150405")).
		Int("file_sequence", in.FileSequence, 6).
		Const(FileLayoutVersion).
		Const("00000").
		Blank(20).
		Blank(20).
		Blank(29).
		Build()
}

// LotHeader renders record 1.
//
//	1-3      bank code
//	4-7      lot number
//	8        record type
//	9        operation (R = remittance)
//	10-11    service (01 = billing)
//	14-16    lot layout version
//	18       company tax id type
//	19-33    company tax id
//	34-53    agreement
//	54-58    agency and 59 its check digit
//	60-71    account and 72 its check digit
//	74-103   company name
//	104-143  message 1
//	144-183  message 2
//	184-191  remittance number
//	192-199  recording date (DDMMYYYY)
//	200-207  credit date, zeroed
//	208-240  blank
func (e Encoder) LotHeader(in LotHeaderInput) (string, error) {
	s := in.Sender
	return e.line().
		Digits("bank_code", in.BankCode, 3).
		Int("lot", in.Lot, 4).
		Const(RecordLotHeader).
		Const("R").
		Const("01").
		Blank(2).
		Const(LotLayoutVersion).
		Blank(1).
		Digits("company_tax_id_type", s.TaxIDType, 1).
		Digits("company_tax_id", s.TaxID, 15).
		Text("agreement", s.Agreement, 20).
		Digits("agency", s.Agency, 5).
		Text("agency_dv", s.AgencyDV, 1).
		Digits("account", s.Account, 12).
		Text("account_dv", s.AccountDV, 1).
		Blank(1).
		Text("company_name", s.Name, 30).
		Text("message_1", in.Message1, 40).
		Text("message_2", in.Message2, 40).
		Int("remittance_number", in.RemittanceNumber, 8).
		Date("recorded_at", in.RecordedAt, fixedwidth.PatternDDMMYYYY).
		Zeros(8).
		Blank(33).
		Build()
}

// SegmentP renders the title segment. The title is expected to carry its
// defaults (see models.Title.WithDefaults).
func (e Encoder) SegmentP(in SegmentPInput) (string, error) {
	s, t := in.Sender, in.Title
	return e.line().
		Digits("bank_code", in.BankCode, 3).
		Int("lot", in.Lot, 4).
		Const(RecordDetail).
		Int("sequence", in.Sequence, 5).
		Const("P").
		Blank(1).
		Const("01").
		Digits("agency", s.Agency, 5).
		Text("agency_dv", s.AgencyDV, 1).
		Digits("account", s.Account, 12).
		Text("account_dv", s.AccountDV, 1).
		Blank(1).
		Digits("nosso_numero", t.NossoNumero, 20).
		Digits("wallet", t.Wallet, 2).
		Const("1").
		Blank(1).
		Const("2").
		Const("2").
		Text("document_number", t.DocumentNumber, 15).
		Date("due_date", t.DueDate, fixedwidth.PatternDDMMYYYY).
		Number("amount", t.Amount, 15, 2).
		Zeros(5).
		Blank(1).
		Digits("species", t.Species, 2).
		Text("acceptance", t.Acceptance, 1).
		Date("issue_date", t.IssueDate, fixedwidth.PatternDDMMYYYY).
		Digits("interest_code", t.InterestCode, 1).
		Date("interest_date", t.InterestDate, fixedwidth.PatternDDMMYYYY).
		Number("interest_value", t.InterestValue, 15, 2).
		Digits("discount_code", t.DiscountCode, 1).
		Date("discount_date", t.DiscountDate, fixedwidth.PatternDDMMYYYY).
		Number("discount_value", t.DiscountValue, 15, 2).
		Number("iof", t.IOF, 15, 2).
		Number("rebate", t.Rebate, 15, 2).
		Blank(25).
		Digits("protest_code", t.ProtestCode, 1).
		Int("protest_days", t.ProtestDays, 2).
		Digits("write_off_code", t.WriteOffCode, 1).
		Int("write_off_days", t.WriteOffDays, 3).
		Const(currencyReal).
		Zeros(10).
		Build()
}

// SegmentQ renders the payer segment.
func (e Encoder) SegmentQ(in SegmentQInput) (string, error) {
	p := in.Payer
	return e.line().
		Digits("bank_code", in.BankCode, 3).
		Int("lot", in.Lot, 4).
		Const(RecordDetail).
		Int("sequence", in.Sequence, 5).
		Const("Q").
		Blank(1).
		Const("01").
		Digits("payer_tax_id_type", p.TaxIDType, 1).
		Digits("payer_tax_id", p.TaxID, 15).
		Text("payer_name", p.Name, 40).
		Text("payer_address", p.Address, 40).
		Text("payer_district", p.District, 15).
		Digits("payer_postal_code", p.PostalCode, 8).
		Text("payer_city", p.City, 15).
		Text("payer_state", p.State, 2).
		Const("0").
		Zeros(15).
		Blank(40).
		Const("000").
		Blank(20).
		Blank(8).
		Build()
}

// LotTrailer renders record 5: DetailCount+2 records, DetailCount/2 simple
// collection titles and their total with two implied decimals.
func (e Encoder) LotTrailer(in LotTrailerInput) (string, error) {
	return e.line().
		Digits("bank_code", in.BankCode, 3).
		Int("lot", in.Lot, 4).
		Const(RecordLotTrailer).
		Blank(9).
		Int("lot_record_count", in.DetailCount+2, 6).
		Int("simple_title_count", in.DetailCount/2, 6).
		Number("simple_total_amount", in.TotalAmount, 17, 2).
		Zeros(6).Zeros(17).
		Zeros(6).Zeros(17).
		Zeros(6).Zeros(17).
		Blank(8).
		Blank(117).
		Build()
}

// FileTrailer renders record 9.
func (e Encoder) FileTrailer(in FileTrailerInput) (string, error) {
	return e.line().
		Digits("bank_code", in.BankCode, 3).
		Const(FileTrailerLot).
		Const(RecordFileTrailer).
		Blank(9).
		Int("lot_count", in.LotCount, 6).
		Int("record_count", in.RecordCount, 6).
		Zeros(6).
		Blank(205).
		Build()
}

// FileHeader renders record 0 with a lenient Encoder.
func FileHeader(in FileHeaderInput) (string, error) { return Encoder{}.FileHeader(in) }

// LotHeader renders record 1 with a lenient Encoder.
func LotHeader(in LotHeaderInput) (string, error) { return Encoder{}.LotHeader(in) }

// SegmentP renders a title segment with a lenient Encoder.
func SegmentP(in SegmentPInput) (string, error) { return Encoder{}.SegmentP(in) }

// SegmentQ renders a payer segment with a lenient Encoder.
func SegmentQ(in SegmentQInput) (string, error) { return Encoder{}.SegmentQ(in) }

// LotTrailer renders record 5 with a lenient Encoder.
func LotTrailer(in LotTrailerInput) (string, error) { return Encoder{}.LotTrailer(in) }

// FileTrailer renders record 9 with a lenient Encoder.
func FileTrailer(in FileTrailerInput) (string, error) { return Encoder{}.FileTrailer(in) }
