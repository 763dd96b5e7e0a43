package models

// Tax id types ("tipo de inscrição").
const (
	TaxIDTypeIndividual   = "1" // CPF
	TaxIDTypeOrganization = "2" // CNPJ
)

// Title defaults.
const (
	DefaultWallet     = "09"
	SpeciesDuplicata  = "02" // duplicata mercantil
	AcceptanceYes     = "A"
	AcceptanceNo      = "N"
	CodeNone          = "0"
	InterestPerDay    = "1"
	InterestMonthly   = "2"
	DiscountFixed     = "1"
	ProtestCalendar   = "1"
	WriteOffReturn    = "1"
	DefaultPayerState = "SP"
)

// File permissions
const (
	PermissionConfigFile = 0600
	PermissionDirectory  = 0750
	PermissionOutputFile = 0644
)
