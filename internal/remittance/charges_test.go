package remittance

import (
	"testing"

	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestComputeCharges(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		fine          string
		interest      string
		expectedFine  string
		expectedDaily string
	}{
		{"default rates", "1000.00", "2", "1", "20.00", "0.33"},
		{"cents", "1234.56", "2", "1", "24.69", "0.41"},
		{"half rounds away from zero", "0.25", "2", "0", "0.01", "0.00"},
		{"daily interest below a cent", "10.00", "2", "1", "0.20", "0.00"},
		{"no charges", "500.00", "0", "0", "0.00", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ComputeCharges(dec(tt.amount), dec(tt.fine), dec(tt.interest))
			assert.True(t, dec(tt.expectedFine).Equal(c.Fine), "fine %s", c.Fine)
			assert.True(t, dec(tt.expectedDaily).Equal(c.DailyInterest), "daily %s", c.DailyInterest)
		})
	}
}

func TestApplyCharges(t *testing.T) {
	withInterest := sampleTitle("1", "1000.00")
	tooSmall := sampleTitle("2", "10.00")
	explicit := sampleTitle("3", "1000.00")
	explicit.InterestCode = models.InterestMonthly
	explicit.InterestValue = dec("1.5")

	in := []models.Title{withInterest, tooSmall, explicit}
	out := ApplyCharges(in, dec("2"), dec("1"))

	assert.Equal(t, models.InterestPerDay, out[0].InterestCode)
	assert.True(t, dec("0.33").Equal(out[0].InterestValue))

	assert.Empty(t, out[1].InterestCode)

	assert.Equal(t, models.InterestMonthly, out[2].InterestCode)
	assert.True(t, dec("1.5").Equal(out[2].InterestValue))

	// input untouched
	assert.Empty(t, in[0].InterestCode)
}
