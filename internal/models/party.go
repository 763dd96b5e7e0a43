package models

import (
	"fmt"
	"regexp"
	"strings"

	"fjacquet/boleto-cnab/internal/fixedwidth"
)

var stateRegex = regexp.MustCompile(`^[A-Z]{2}$`)

// Party identifies either side of a collection: the remitting company or the
// payer ("sacado").
type Party struct {
	TaxIDType  string `json:"tax_id_type" yaml:"tax_id_type"`
	TaxID      string `json:"tax_id" yaml:"tax_id"`
	Name       string `json:"name" yaml:"name"`
	Address    string `json:"address" yaml:"address"`
	District   string `json:"district" yaml:"district"`
	PostalCode string `json:"postal_code" yaml:"postal_code"`
	City       string `json:"city" yaml:"city"`
	State      string `json:"state" yaml:"state"`
}

// NewParty creates a Party, inferring the tax id type from the document.
func NewParty(name, taxID string) Party {
	return Party{
		TaxIDType: TaxIDTypeFor(taxID),
		TaxID:     fixedwidth.OnlyDigits(taxID),
		Name:      strings.TrimSpace(name),
	}
}

// TaxIDTypeFor returns "1" for an 11-digit CPF and "2" otherwise.
func TaxIDTypeFor(document string) string {
	if len(fixedwidth.OnlyDigits(document)) == 11 {
		return TaxIDTypeIndividual
	}
	return TaxIDTypeOrganization
}

// WithDefaults fills an empty tax id type and state.
func (p Party) WithDefaults() Party {
	if p.TaxIDType == "" {
		p.TaxIDType = TaxIDTypeFor(p.TaxID)
	}
	if p.State == "" {
		p.State = DefaultPayerState
	}
	p.State = strings.ToUpper(strings.TrimSpace(p.State))
	return p
}

// IsIndividual reports whether the party is identified by a CPF.
func (p Party) IsIndividual() bool {
	return p.TaxIDType == TaxIDTypeIndividual
}

// Validate checks the fields that have a fixed set of values.
func (p Party) Validate() error {
	if p.TaxIDType != TaxIDTypeIndividual && p.TaxIDType != TaxIDTypeOrganization {
		return fmt.Errorf("tax id type must be %s or %s, got '%s'", TaxIDTypeIndividual, TaxIDTypeOrganization, p.TaxIDType)
	}
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if p.State != "" && !stateRegex.MatchString(p.State) {
		return fmt.Errorf("state must be a 2-letter code, got '%s'", p.State)
	}
	return nil
}

// FormattedTaxID renders the document as 000.000.000-00 or 00.000.000/0000-00.
func (p Party) FormattedTaxID() string {
	d := fixedwidth.OnlyDigits(p.TaxID)
	switch len(d) {
	case 11:
		return fmt.Sprintf("%s.%s.%s-%s", d[0:3], d[3:6], d[6:9], d[9:11])
	case 14:
		return fmt.Sprintf("%s.%s.%s/%s-%s", d[0:2], d[2:5], d[5:8], d[8:12], d[12:14])
	default:
		return p.TaxID
	}
}

// String returns a string representation of the party
func (p Party) String() string {
	if p.TaxID != "" {
		return fmt.Sprintf("%s (%s)", p.Name, p.FormattedTaxID())
	}
	return p.Name
}

// Sender is the company remitting titles to the bank ("cedente"/"beneficiário").
type Sender struct {
	Party     `yaml:",inline"`
	Agency    string `json:"agency" yaml:"agency"`
	AgencyDV  string `json:"agency_dv" yaml:"agency_dv"`
	Account   string `json:"account" yaml:"account"`
	AccountDV string `json:"account_dv" yaml:"account_dv"`
	Agreement string `json:"agreement" yaml:"agreement"` // convênio
	BankName  string `json:"bank_name" yaml:"bank_name"`
}
