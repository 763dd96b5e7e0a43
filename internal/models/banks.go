package models

// DefaultBankName is written when the bank code is not in the table.
const DefaultBankName = "BANCO"

var bankNames = map[string]string{
	"001": "BANCO DO BRASIL S.A.",
	"033": "BANCO SANTANDER",
	"104": "CAIXA ECONOMICA FEDERAL",
	"237": "BANCO BRADESCO S.A.",
	"341": "BANCO ITAU S.A.",
	"748": "BANCO COOPERATIVO SICREDI",
	"756": "BANCOOB",
}

// BankName returns the name written in CNAB headers for a 3-digit bank code.
func BankName(code string) string {
	if name, ok := bankNames[code]; ok {
		return name
	}
	return DefaultBankName
}
