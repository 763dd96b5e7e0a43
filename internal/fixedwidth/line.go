package fixedwidth

import (
	"fmt"
	"strings"
	"time"

	"fjacquet/boleto-cnab/internal/cnaberror"

	"github.com/shopspring/decimal"
)

// Line assembles one fixed-width record field by field.
//
// The first failing field sticks: later calls are no-ops and Build returns that
// error. In lenient mode only caller mistakes (an unknown date pattern) fail;
// in strict mode any value that does not fit its column fails too.
//
//	line, err := fixedwidth.NewLine(240, false).
//		Digits("bank_code", "341", 3).
//		Const("0000").
//		Text("company_name", name, 30).
//		Build()
type Line struct {
	width  int
	strict bool
	buf    strings.Builder
	err    error
}

// NewLine starts a record of the given width.
func NewLine(width int, strict bool) *Line {
	l := &Line{width: width, strict: strict}
	l.buf.Grow(width)
	return l
}

// Const appends a literal (record types, fixed codes, filler).
func (l *Line) Const(value string) *Line {
	if l.err != nil {
		return l
	}
	l.buf.WriteString(value)
	return l
}

// Blank appends n spaces.
func (l *Line) Blank(n int) *Line {
	return l.Const(strings.Repeat(" ", n))
}

// Zeros appends n zeros.
func (l *Line) Zeros(n int) *Line {
	return l.Const(strings.Repeat("0", n))
}

// Text appends a left-aligned, space-padded text field.
func (l *Line) Text(field, value string, width int) *Line {
	if l.err != nil {
		return l
	}
	if l.strict && len(Sanitize(value)) > width {
		l.err = cnaberror.Field(field, value, fmt.Sprintf("longer than %d characters", width))
		return l
	}
	l.buf.WriteString(Text(value, width))
	return l
}

// Number appends a zero-padded amount with decimals implied digits.
func (l *Line) Number(field string, value decimal.Decimal, width int, decimals int32) *Line {
	if l.err != nil {
		return l
	}
	if l.strict {
		if value.IsNegative() {
			l.err = cnaberror.Field(field, value.String(), "must not be negative")
			return l
		}
		if digits := scaledDigits(value, decimals); len(digits) > width {
			l.err = cnaberror.Field(field, value.String(), fmt.Sprintf("does not fit %d digits", width))
			return l
		}
	}
	l.buf.WriteString(Number(value, width, decimals))
	return l
}

// Int appends a zero-padded integer.
func (l *Line) Int(field string, value int, width int) *Line {
	return l.Number(field, decimal.NewFromInt(int64(value)), width, 0)
}

// Digits appends a zero-padded numeric identifier.
func (l *Line) Digits(field, value string, width int) *Line {
	if l.err != nil {
		return l
	}
	if l.strict && len(OnlyDigits(value)) > width {
		l.err = cnaberror.Field(field, value, fmt.Sprintf("longer than %d digits", width))
		return l
	}
	l.buf.WriteString(Digits(value, width))
	return l
}

// Date appends a date; unknown patterns always fail.
func (l *Line) Date(field string, t time.Time, pattern string) *Line {
	if l.err != nil {
		return l
	}
	formatted := Date(t, pattern)
	if formatted == "" {
		l.err = cnaberror.Field(field, pattern, "unsupported date pattern")
		return l
	}
	l.buf.WriteString(formatted)
	return l
}

// Len returns the number of columns written so far.
func (l *Line) Len() int {
	return l.buf.Len()
}

// Err returns the first error recorded, if any.
func (l *Line) Err() error {
	return l.err
}

// Build returns the record padded on the right to the line width. An over-long
// record is truncated, or rejected in strict mode.
func (l *Line) Build() (string, error) {
	if l.err != nil {
		return "", l.err
	}
	s := l.buf.String()
	switch {
	case len(s) < l.width:
		s += strings.Repeat(" ", l.width-len(s))
	case len(s) > l.width:
		if l.strict {
			return "", cnaberror.Field("record", s, fmt.Sprintf("has %d columns, layout allows %d", len(s), l.width))
		}
		s = s[:l.width]
	}
	return s, nil
}
