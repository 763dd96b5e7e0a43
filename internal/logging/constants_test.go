package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFieldConstants(t *testing.T) {
	assert.Equal(t, "count", FieldCount)
	assert.Equal(t, "input_file", FieldInputFile)
	assert.Equal(t, "output_file", FieldOutputFile)
	assert.Equal(t, "error", FieldError)
	assert.Equal(t, "bank_code", FieldBankCode)
	assert.Equal(t, "layout", FieldLayout)
	assert.Equal(t, "charset", FieldCharset)
}

func TestF(t *testing.T) {
	assert.Equal(t, Field{Key: FieldBankCode, Value: "341"}, F(FieldBankCode, "341"))
}
