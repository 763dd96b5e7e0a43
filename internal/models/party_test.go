package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewParty(t *testing.T) {
	party := NewParty("  João da Silva ", "123.456.789-01")

	assert.Equal(t, "João da Silva", party.Name)
	assert.Equal(t, "12345678901", party.TaxID)
	assert.Equal(t, TaxIDTypeIndividual, party.TaxIDType)
	assert.True(t, party.IsIndividual())
}

func TestTaxIDTypeFor(t *testing.T) {
	tests := []struct {
		name     string
		document string
		expected string
	}{
		{"CPF digits", "12345678901", TaxIDTypeIndividual},
		{"CPF formatted", "123.456.789-01", TaxIDTypeIndividual},
		{"CNPJ", "12.345.678/0001-90", TaxIDTypeOrganization},
		{"empty", "", TaxIDTypeOrganization},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TaxIDTypeFor(tt.document))
		})
	}
}

func TestParty_WithDefaults(t *testing.T) {
	party := Party{Name: "ACME LTDA", TaxID: "12345678000190"}.WithDefaults()
	assert.Equal(t, TaxIDTypeOrganization, party.TaxIDType)
	assert.Equal(t, DefaultPayerState, party.State)

	party = Party{Name: "ACME", TaxIDType: TaxIDTypeIndividual, State: " rj "}.WithDefaults()
	assert.Equal(t, TaxIDTypeIndividual, party.TaxIDType)
	assert.Equal(t, "RJ", party.State)
}

func TestParty_Validate(t *testing.T) {
	tests := []struct {
		name        string
		party       Party
		expectError bool
	}{
		{"valid", Party{TaxIDType: "1", Name: "Maria", State: "MG"}, false},
		{"valid without state", Party{TaxIDType: "2", Name: "ACME"}, false},
		{"bad tax id type", Party{TaxIDType: "3", Name: "Maria"}, true},
		{"missing name", Party{TaxIDType: "1", Name: "  "}, true},
		{"bad state", Party{TaxIDType: "1", Name: "Maria", State: "Minas"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.party.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParty_FormattedTaxID(t *testing.T) {
	assert.Equal(t, "123.456.789-01", Party{TaxID: "12345678901"}.FormattedTaxID())
	assert.Equal(t, "12.345.678/0001-90", Party{TaxID: "12345678000190"}.FormattedTaxID())
	assert.Equal(t, "999", Party{TaxID: "999"}.FormattedTaxID())
}

func TestParty_String(t *testing.T) {
	assert.Equal(t, "Maria (123.456.789-01)", Party{Name: "Maria", TaxID: "12345678901"}.String())
	assert.Equal(t, "Maria", Party{Name: "Maria"}.String())
}

func TestBankName(t *testing.T) {
	assert.Equal(t, "BANCO ITAU S.A.", BankName("341"))
	assert.Equal(t, DefaultBankName, BankName("999"))
}
