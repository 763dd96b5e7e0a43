package boleto

import (
	"errors"
	"regexp"
	"testing"

	"fjacquet/boleto-cnab/internal/cnaberror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digitableFormat = regexp.MustCompile(`^\d{5}\.\d{5} \d{5}\.\d{6} \d{5}\.\d{6} \d \d{14}$`)

func TestBuildDigitableLine(t *testing.T) {
	tests := []struct {
		name     string
		barcode  string
		expected string
	}{
		{
			name:     "itau generic free field",
			barcode:  itauBarcode,
			expected: "34190.91230 45678.901005 01000.000107 1 97170000123456",
		},
		{
			name:     "zero amount",
			barcode:  "23791100000000000001111111111111111111111111",
			expected: "23791.11111 11111.111115 11111.111115 1 10000000000000",
		},
		{
			name:     "bradesco",
			barcode:  "23799971700001234561234091234567890100012340",
			expected: "23791.23405 91234.567898 01000.123404 9 97170000123456",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, err := BuildDigitableLine(tt.barcode)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, line.String())
			assert.Regexp(t, digitableFormat, line.String())
			assert.Len(t, line.Digits(), DigitableLineLength)

			// block 4 is the barcode check digit, block 5 factor and amount
			assert.Equal(t, tt.barcode[4:5], line.String()[38:39])
			assert.Equal(t, tt.barcode[5:19], line.String()[40:])
		})
	}
}

func TestBuildDigitableLine_Malformed(t *testing.T) {
	for _, input := range []string{"", itauBarcode[:43], itauBarcode[:10] + "." + itauBarcode[11:]} {
		_, err := BuildDigitableLine(input)
		assert.True(t, errors.Is(err, cnaberror.ErrInvalidBarcode), "input %q", input)
	}
}

func TestParseDigitableLine(t *testing.T) {
	barcode, err := ParseDigitableLine("34190.91230 45678.901005 01000.000107 1 97170000123456")
	require.NoError(t, err)
	assert.Equal(t, itauBarcode, barcode.String())

	barcode, err = ParseDigitableLine("34190912304567890100501000000107197170000123456")
	require.NoError(t, err)
	assert.Equal(t, itauBarcode, barcode.String())
}

func TestParseDigitableLine_RoundTrip(t *testing.T) {
	for _, b := range []string{itauBarcode, "23799971700001234561234091234567890100012340"} {
		line, err := BuildDigitableLine(b)
		require.NoError(t, err)
		parsed, err := ParseDigitableLine(line.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed.String())
	}
}

func TestParseDigitableLine_Errors(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"too short", "34190.91230 45678.901005"},
		{"block 1 digit", "34190.91231 45678.901005 01000.000107 1 97170000123456"},
		{"block 2 digit", "34190.91230 45678.901006 01000.000107 1 97170000123456"},
		{"block 3 digit", "34190.91230 45678.901005 01000.000108 1 97170000123456"},
		{"general digit", "34190.91230 45678.901005 01000.000107 2 97170000123456"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDigitableLine(tt.line)
			require.Error(t, err)
			assert.True(t, errors.Is(err, cnaberror.ErrInvalidBarcode))
		})
	}
}
