package cnab240

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fjacquet/boleto-cnab/internal/cnaberror"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
)

// LayoutName identifies this layout in errors and logs.
const LayoutName = "240"

// maxLots keeps lot numbers clear of the file trailer's 9999.
const maxLots = 9998

// Options tune a remittance without changing its titles.
type Options struct {
	BankName         string // defaults to models.BankName(bankCode)
	FileSequence     int    // defaults to 1
	RemittanceNumber int
	GeneratedAt      time.Time
	Strict           bool
}

// Request describes a whole remittance. Lots takes precedence over Titles,
// which is shorthand for a single lot.
type Request struct {
	BankCode string
	Sender   models.Sender
	Titles   []models.Title
	Lots     [][]models.Title
	Options
}

// Remittance is an encoded file with the totals declared in its trailers.
type Remittance struct {
	Lines       []string
	LotCount    int
	TitleCount  int
	TotalAmount decimal.Decimal
}

// RecordCount returns the number of lines, headers and trailers included.
func (r *Remittance) RecordCount() int {
	return len(r.Lines)
}

// String joins the lines with CRLF, terminating the last one too.
func (r *Remittance) String() string {
	if len(r.Lines) == 0 {
		return ""
	}
	return strings.Join(r.Lines, "\r\n") + "\r\n"
}

// BuildRemittance encodes every lot of req. Lots are numbered from 1 and
// detail sequence numbers restart in each lot. Titles get their defaults with
// GeneratedAt as the issue date.
func BuildRemittance(req Request) (*Remittance, error) {
	lots := req.Lots
	if len(lots) == 0 && len(req.Titles) > 0 {
		lots = [][]models.Title{req.Titles}
	}
	if len(lots) == 0 {
		return nil, &cnaberror.EmptyRemittanceError{Layout: LayoutName}
	}
	if len(lots) > maxLots {
		return nil, cnaberror.Field("lots", strconv.Itoa(len(lots)), fmt.Sprintf("at most %d lots fit a file", maxLots))
	}
	for i, lot := range lots {
		if len(lot) == 0 {
			return nil, &cnaberror.EmptyRemittanceError{Layout: LayoutName, Lot: i + 1}
		}
	}
	if req.GeneratedAt.IsZero() {
		return nil, cnaberror.Field("generated_at", "", "generation time is required")
	}

	opts := req.Options
	if opts.BankName == "" {
		opts.BankName = models.BankName(req.BankCode)
	}
	if opts.FileSequence == 0 {
		opts.FileSequence = 1
	}
	sender := req.Sender
	sender.Party = sender.Party.WithDefaults()

	enc := Encoder{Strict: opts.Strict}
	r := &Remittance{TotalAmount: decimal.Zero}

	header, err := enc.FileHeader(FileHeaderInput{
		BankCode:     req.BankCode,
		BankName:     opts.BankName,
		Sender:       sender,
		FileSequence: opts.FileSequence,
		GeneratedAt:  opts.GeneratedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("file header: %w", err)
	}
	r.Lines = append(r.Lines, header)

	for i, titles := range lots {
		lotNumber := i + 1
		lines, total, err := buildLot(enc, req.BankCode, lotNumber, sender, titles, opts)
		if err != nil {
			return nil, fmt.Errorf("lot %d: %w", lotNumber, err)
		}
		r.Lines = append(r.Lines, lines...)
		r.LotCount++
		r.TitleCount += len(titles)
		r.TotalAmount = r.TotalAmount.Add(total)
	}

	trailer, err := enc.FileTrailer(FileTrailerInput{
		BankCode:    req.BankCode,
		LotCount:    r.LotCount,
		RecordCount: len(r.Lines) + 1,
	})
	if err != nil {
		return nil, fmt.Errorf("file trailer: %w", err)
	}
	r.Lines = append(r.Lines, trailer)

	return r, nil
}

func buildLot(enc Encoder, bankCode string, lot int, sender models.Sender, titles []models.Title, opts Options) ([]string, decimal.Decimal, error) {
	lines := make([]string, 0, len(titles)*2+2)
	total := decimal.Zero

	header, err := enc.LotHeader(LotHeaderInput{
		BankCode:         bankCode,
		Lot:              lot,
		Sender:           sender,
		RemittanceNumber: opts.RemittanceNumber,
		RecordedAt:       opts.GeneratedAt,
	})
	if err != nil {
		return nil, total, fmt.Errorf("lot header: %w", err)
	}
	lines = append(lines, header)

	sequence := 1
	for _, title := range titles {
		title = title.WithDefaults(opts.GeneratedAt)
		if title.Amount.IsNegative() {
			return nil, total, fmt.Errorf("title %s: %w", title.NossoNumero,
				cnaberror.Field("amount", title.Amount.String(), "must not be negative"))
		}
		title.Amount = models.RoundCents(title.Amount)

		p, err := enc.SegmentP(SegmentPInput{BankCode: bankCode, Lot: lot, Sequence: sequence, Sender: sender, Title: title})
		if err != nil {
			return nil, total, fmt.Errorf("segment P of title %s: %w", title.NossoNumero, err)
		}
		sequence++

		q, err := enc.SegmentQ(SegmentQInput{BankCode: bankCode, Lot: lot, Sequence: sequence, Payer: title.Payer})
		if err != nil {
			return nil, total, fmt.Errorf("segment Q of title %s: %w", title.NossoNumero, err)
		}
		sequence++

		lines = append(lines, p, q)
		total = total.Add(title.Amount)
	}

	trailer, err := enc.LotTrailer(LotTrailerInput{
		BankCode:    bankCode,
		Lot:         lot,
		DetailCount: len(titles) * 2,
		TotalAmount: total,
	})
	if err != nil {
		return nil, total, fmt.Errorf("lot trailer: %w", err)
	}
	lines = append(lines, trailer)

	return lines, total, nil
}

// BuildFullRemittance encodes a single-lot file and returns its content.
func BuildFullRemittance(bankCode string, sender models.Sender, titles []models.Title, opts Options) (string, error) {
	r, err := BuildRemittance(Request{
		BankCode: bankCode,
		Sender:   sender,
		Titles:   titles,
		Options:  opts,
	})
	if err != nil {
		return "", err
	}
	return r.String(), nil
}
