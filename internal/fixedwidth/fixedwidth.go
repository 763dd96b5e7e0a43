// Package fixedwidth formats values into the exact-width columns used by
// boleto and CNAB layouts.
//
// The free functions never fail: values longer than their column are silently
// truncated, which mirrors how banks tolerate fixed-width input. This can cut a
// payer name or address short without any warning. Use a strict Line when the
// caller prefers an InvalidFieldError over a truncated record.
package fixedwidth

import (
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Supported date patterns.
const (
	PatternDDMMYYYY = "ddmmyyyy"
	PatternYYYYMMDD = "yyyymmdd"
	PatternDDMMYY   = "ddmmyy" // CNAB 400 only
)

var datePatterns = map[string]string{
	PatternDDMMYYYY: "02012006",
	PatternYYYYMMDD: "20060102",
	PatternDDMMYY:   "020106",
}

// Sanitize strips accents and replaces anything outside printable ASCII with a
// space, so that one character always occupies exactly one column.
func Sanitize(value string) string {
	// transform chains keep state; build one per call so Sanitize stays safe for concurrent use.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, value)
	if err != nil {
		result = value
	}

	var b strings.Builder
	b.Grow(len(result))
	for _, r := range result {
		if r >= 0x20 && r < 0x7f {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// Text left-aligns value in a space-padded column of the given width.
func Text(value string, width int) string {
	return TextPadded(value, width, ' ', false)
}

// TextPadded truncates value to width and pads it with pad, on the left when
// rightAlign is set.
func TextPadded(value string, width int, pad byte, rightAlign bool) string {
	if width <= 0 {
		return ""
	}
	s := Sanitize(value)
	if len(s) > width {
		s = s[:width]
	}
	padding := strings.Repeat(string(pad), width-len(s))
	if rightAlign {
		return padding + s
	}
	return s + padding
}

// Number renders value scaled by 10^decimals, truncated toward zero and
// left-padded with zeros. Only the last width digits are kept, so a value that
// overflows its column loses its most significant digits. The sign is dropped.
func Number(value decimal.Decimal, width int, decimals int32) string {
	return keepLast(scaledDigits(value, decimals), width)
}

// Int is Number for plain integers such as counters and sequence numbers.
func Int(value int, width int) string {
	return Number(decimal.NewFromInt(int64(value)), width, 0)
}

// Digits keeps the digit characters of a numeric identifier (tax id, agency,
// postal code), then zero-pads and keeps the last width digits.
func Digits(value string, width int) string {
	return keepLast(OnlyDigits(value), width)
}

// OnlyDigits drops every non-digit character.
func OnlyDigits(value string) string {
	var b strings.Builder
	for i := 0; i < len(value); i++ {
		if value[i] >= '0' && value[i] <= '9' {
			b.WriteByte(value[i])
		}
	}
	return b.String()
}

// IsDigits reports whether value is non-empty and made only of ASCII digits.
func IsDigits(value string) bool {
	if value == "" {
		return false
	}
	for i := 0; i < len(value); i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	return true
}

// Date renders t with one of the supported patterns. An unsupported pattern
// yields an empty string; a zero time yields zeros.
func Date(t time.Time, pattern string) string {
	layout, ok := datePatterns[pattern]
	if !ok {
		return ""
	}
	if t.IsZero() {
		return strings.Repeat("0", len(layout))
	}
	return t.Format(layout)
}

func scaledDigits(value decimal.Decimal, decimals int32) string {
	return value.Abs().Shift(decimals).Truncate(0).String()
}

func keepLast(digits string, width int) string {
	if width <= 0 {
		return ""
	}
	if len(digits) < width {
		digits = strings.Repeat("0", width-len(digits)) + digits
	}
	return digits[len(digits)-width:]
}
