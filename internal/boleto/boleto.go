package boleto

import (
	"fmt"
	"time"

	"fjacquet/boleto-cnab/internal/dateutils"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
)

// Printed defaults of a boleto document.
const (
	DefaultSpecies         = "R$"
	DefaultDocumentSpecies = "DM"
)

// Document carries everything printed on a boleto.
type Document struct {
	BankCode     string
	CurrencyCode string // defaults to CurrencyReal
	Agency       string
	Account      string
	Wallet       string
	NossoNumero  string
	DueDate      time.Time
	Amount       decimal.Decimal
	Beneficiary  models.Party
	Payer        models.Party
	Instructions string
	Statement    string // demonstrativo
	Acceptance   string
	Species      string
	DocSpecies   string
}

// Boleto is a generated document ready for printing.
type Boleto struct {
	Barcode             Barcode       `json:"barcode"`
	DigitableLine       DigitableLine `json:"digitable_line"`
	BankCode            string        `json:"bank_code"`
	Agency              string        `json:"agency"`
	Account             string        `json:"account"`
	Wallet              string        `json:"wallet"`
	NossoNumero         string        `json:"nosso_numero"`
	DueDate             string        `json:"due_date"`
	Amount              string        `json:"amount"`
	BeneficiaryName     string        `json:"beneficiary_name"`
	BeneficiaryDocument string        `json:"beneficiary_document"`
	PayerName           string        `json:"payer_name"`
	PayerDocument       string        `json:"payer_document"`
	PayerAddress        string        `json:"payer_address"`
	Instructions        string        `json:"instructions"`
	Statement           string        `json:"statement"`
	Acceptance          string        `json:"acceptance"`
	Species             string        `json:"species"`
	DocSpecies          string        `json:"doc_species"`
}

// Generator turns documents into boletos using the free-field layout of each bank.
type Generator struct {
	registry *Registry
}

// NewGenerator creates a Generator; a nil registry means NewDefaultRegistry.
func NewGenerator(registry *Registry) *Generator {
	if registry == nil {
		registry = NewDefaultRegistry()
	}
	return &Generator{registry: registry}
}

// Registry returns the free-field registry in use.
func (g *Generator) Registry() *Registry {
	return g.registry
}

// Generate builds the free field, barcode and digitable line of doc and
// formats its printable fields.
func (g *Generator) Generate(doc Document) (Boleto, error) {
	builder := g.registry.Lookup(doc.BankCode)
	freeField, err := builder.Build(FreeFieldInputs{
		Agency:      doc.Agency,
		Account:     doc.Account,
		Wallet:      doc.Wallet,
		NossoNumero: doc.NossoNumero,
	})
	if err != nil {
		return Boleto{}, fmt.Errorf("failed to build free field for bank %s: %w", doc.BankCode, err)
	}

	barcode, err := EncodeTitle(Title{
		BankCode:     doc.BankCode,
		CurrencyCode: valueOr(doc.CurrencyCode, CurrencyReal),
		DueDate:      doc.DueDate,
		Amount:       doc.Amount,
		FreeField:    freeField,
	})
	if err != nil {
		return Boleto{}, fmt.Errorf("failed to build barcode for nosso numero %s: %w", doc.NossoNumero, err)
	}
	line, err := BuildDigitableLine(string(barcode))
	if err != nil {
		return Boleto{}, err
	}

	return Boleto{
		Barcode:             barcode,
		DigitableLine:       line,
		BankCode:            doc.BankCode,
		Agency:              doc.Agency,
		Account:             doc.Account,
		Wallet:              doc.Wallet,
		NossoNumero:         doc.NossoNumero,
		DueDate:             dateutils.ToBrazilianFormat(doc.DueDate),
		Amount:              models.FormatBRL(doc.Amount),
		BeneficiaryName:     doc.Beneficiary.Name,
		BeneficiaryDocument: doc.Beneficiary.FormattedTaxID(),
		PayerName:           doc.Payer.Name,
		PayerDocument:       doc.Payer.FormattedTaxID(),
		PayerAddress:        payerAddress(doc.Payer),
		Instructions:        doc.Instructions,
		Statement:           doc.Statement,
		Acceptance:          valueOr(doc.Acceptance, models.AcceptanceNo),
		Species:             valueOr(doc.Species, DefaultSpecies),
		DocSpecies:          valueOr(doc.DocSpecies, DefaultDocumentSpecies),
	}, nil
}

func payerAddress(p models.Party) string {
	address := p.Address
	if p.District != "" {
		address += ", " + p.District
	}
	if p.City != "" {
		address += " - " + p.City
		if p.State != "" {
			address += "/" + p.State
		}
	}
	if p.PostalCode != "" {
		address += " CEP " + p.PostalCode
	}
	return address
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
