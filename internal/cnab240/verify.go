package cnab240

import (
	"fmt"
	"strconv"

	"fjacquet/boleto-cnab/internal/cnaberror"

	"github.com/shopspring/decimal"
)

// Verify re-reads the encoded lines and checks that every declared count and
// total matches what was written.
func (r *Remittance) Verify() error {
	return VerifyLines(r.Lines)
}

// VerifyLines checks a CNAB 240 file given as its lines: widths, record
// order, lot trailer counts and amounts, and the file trailer counts.
func VerifyLines(lines []string) error {
	if len(lines) < 4 {
		return cnaberror.Field("record_count", strconv.Itoa(len(lines)), "a file needs at least four records")
	}
	for i, line := range lines {
		if len(line) != LineWidth {
			return cnaberror.Field(fmt.Sprintf("line_%d", i+1), "", fmt.Sprintf("has %d columns, expected %d", len(line), LineWidth))
		}
	}
	if recordType(lines[0]) != RecordFileHeader {
		return cnaberror.Field("line_1", recordType(lines[0]), "expected the file header")
	}

	lots := 0
	i := 1
	for i < len(lines)-1 {
		if recordType(lines[i]) != RecordLotHeader {
			return cnaberror.Field(fmt.Sprintf("line_%d", i+1), recordType(lines[i]), "expected a lot header")
		}
		lots++
		lotNumber := lines[i][3:7]
		details := 0
		total := decimal.Zero
		i++

		for i < len(lines) && recordType(lines[i]) == RecordDetail {
			if lines[i][3:7] != lotNumber {
				return cnaberror.Field(fmt.Sprintf("line_%d", i+1), lines[i][3:7], "detail belongs to another lot")
			}
			if lines[i][13] == 'P' {
				amount, err := columnAmount(lines[i], 87, 101)
				if err != nil {
					return err
				}
				total = total.Add(amount)
			}
			details++
			i++
		}

		if i >= len(lines) || recordType(lines[i]) != RecordLotTrailer {
			return cnaberror.Field(fmt.Sprintf("line_%d", i+1), "", "expected a lot trailer")
		}
		trailer := lines[i]
		if err := expectInt(trailer, 18, 23, details+2, "lot_record_count"); err != nil {
			return err
		}
		if err := expectInt(trailer, 24, 29, details/2, "simple_title_count"); err != nil {
			return err
		}
		declared, err := columnAmount(trailer, 30, 46)
		if err != nil {
			return err
		}
		if !declared.Equal(total) {
			return cnaberror.Field("simple_total_amount", declared.String(), fmt.Sprintf("segments add up to %s", total.String()))
		}
		i++
	}

	last := lines[len(lines)-1]
	if recordType(last) != RecordFileTrailer || last[3:7] != FileTrailerLot {
		return cnaberror.Field(fmt.Sprintf("line_%d", len(lines)), recordType(last), "expected the file trailer")
	}
	if err := expectInt(last, 18, 23, lots, "lot_count"); err != nil {
		return err
	}
	return expectInt(last, 24, 29, len(lines), "record_count")
}

func recordType(line string) string {
	return line[7:8]
}

// column returns the 1-based inclusive column range [from, to].
func column(line string, from, to int) string {
	return line[from-1 : to]
}

func expectInt(line string, from, to, expected int, field string) error {
	raw := column(line, from, to)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return cnaberror.Field(field, raw, "not a number")
	}
	if n != expected {
		return cnaberror.Field(field, raw, fmt.Sprintf("expected %d", expected))
	}
	return nil
}

func columnAmount(line string, from, to int) (decimal.Decimal, error) {
	raw := column(line, from, to)
	cents, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return decimal.Zero, cnaberror.Field("amount", raw, "not a number")
	}
	return decimal.New(cents, -2), nil
}
