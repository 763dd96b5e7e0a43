package titleio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"fjacquet/boleto-cnab/internal/boleto"
	"fjacquet/boleto-cnab/internal/logging"
	"fjacquet/boleto-cnab/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

const titlesCSV = `nosso_numero,document_number,due_date,amount,wallet,payer_name,payer_tax_id,payer_city,payer_state
12345678901,NF-1,15/05/2024,"1.234,56",09,João da Silva,123.456.789-01,São Paulo,sp
12345678902,,2024-05-18,10.00,,ACME LTDA,12.345.678/0001-90,,
`

func TestStore_ReadTitlesCSV(t *testing.T) {
	logger := logging.NewMockLogger()
	store := NewStore(logger)

	titles, err := store.ReadTitlesCSV(writeFile(t, "titles.csv", titlesCSV))
	require.NoError(t, err)
	require.Len(t, titles, 2)

	first := titles[0]
	assert.Equal(t, "12345678901", first.NossoNumero)
	assert.Equal(t, "NF-1", first.DocumentNumber)
	assert.Equal(t, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), first.DueDate)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(first.Amount))
	assert.Equal(t, "João da Silva", first.Payer.Name)
	assert.Equal(t, "12345678901", first.Payer.TaxID)
	assert.Equal(t, models.TaxIDTypeIndividual, first.Payer.TaxIDType)
	assert.Equal(t, "SP", first.Payer.State)

	second := titles[1]
	assert.Equal(t, "12345678902", second.DocumentNumber)
	assert.Equal(t, models.DefaultWallet, second.Wallet)
	assert.Equal(t, models.TaxIDTypeOrganization, second.Payer.TaxIDType)
	assert.Equal(t, models.DefaultPayerState, second.Payer.State)

	// 2024-05-18 is a Saturday
	warnings := logger.GetEntriesByLevel("WARN")
	require.Len(t, warnings, 1)
	nn, _ := warnings[0].Field(logging.FieldNossoNumero)
	assert.Equal(t, "12345678902", nn)
	due, _ := warnings[0].Field("due_date")
	assert.Equal(t, "2024-05-18", due)
	assert.True(t, logger.HasEntry("INFO", "Loaded title batch"))
}

func TestStore_ReadTitlesCSV_Delimiter(t *testing.T) {
	store := NewStore(logging.NewMockLogger())
	store.Delimiter = ';'

	path := writeFile(t, "titles.csv", "nosso_numero;due_date;amount\n1;15/05/2024;1.234,56\n")
	titles, err := store.ReadTitlesCSV(path)
	require.NoError(t, err)
	require.Len(t, titles, 1)
	assert.True(t, decimal.RequireFromString("1234.56").Equal(titles[0].Amount))
}

func TestStore_ReadTitlesCSV_Errors(t *testing.T) {
	store := NewStore(logging.NewMockLogger())

	_, err := store.ReadTitlesCSV(filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)

	tests := []struct {
		name     string
		content  string
		contains string
	}{
		{"bad due date", "nosso_numero,due_date,amount\n1,31/02/2024,10\n", "record 2: due_date"},
		{"missing due date", "nosso_numero,due_date,amount\n1,,10\n", "due_date"},
		{"bad amount", "nosso_numero,due_date,amount\n1,15/05/2024,abc\n", "invalid amount"},
		{"negative amount", "nosso_numero,due_date,amount\n1,15/05/2024,-5\n", "negative"},
		{"missing nosso numero", "nosso_numero,due_date,amount\n,15/05/2024,5\n", "nosso numero is required"},
		{"bad acceptance", "nosso_numero,due_date,amount,acceptance\n1,15/05/2024,5,X\n", "acceptance"},
		{"bad protest days", "nosso_numero,due_date,amount,protest_days\n1,15/05/2024,5,ten\n", "protest_days"},
		{"bad write-off days", "nosso_numero,due_date,amount,write_off_days\n1,15/05/2024,5,1000\n", "write-off days"},
		{"bad daily interest", "nosso_numero,due_date,amount,daily_interest\n1,15/05/2024,5,x\n", "daily_interest"},
		{"bad iof", "nosso_numero,due_date,amount,iof\n1,15/05/2024,5,x\n", "iof"},
		{"third record", "nosso_numero,due_date,amount\n1,15/05/2024,5\n2,15/13/2024,5\n", "record 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := store.ReadTitlesCSV(writeFile(t, "titles.csv", tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestStore_ReadTitlesCSV_Instructions(t *testing.T) {
	store := NewStore(logging.NewMockLogger())
	content := "nosso_numero,due_date,amount,iof,daily_interest,write_off_days\n" +
		"1,15/05/2024,100.00,\"0,38\",\"0,05\",30\n" +
		"2,15/05/2024,100.00,,0,\n"

	titles, err := store.ReadTitlesCSV(writeFile(t, "titles.csv", content))
	require.NoError(t, err)
	require.Len(t, titles, 2)

	first := titles[0]
	assert.True(t, decimal.RequireFromString("0.38").Equal(first.IOF))
	assert.Equal(t, models.InterestPerDay, first.InterestCode)
	assert.True(t, decimal.RequireFromString("0.05").Equal(first.InterestValue))
	assert.Equal(t, models.WriteOffReturn, first.WriteOffCode)
	assert.Equal(t, 30, first.WriteOffDays)

	second := titles[1]
	assert.True(t, second.IOF.IsZero())
	assert.Equal(t, models.CodeNone, second.InterestCode)
	assert.Equal(t, models.CodeNone, second.WriteOffCode)
}

const titlesYAML = `titles:
  - nosso_numero: "00000000001"
    due_date: 2024-05-15
    amount: 150.5
    acceptance: a
    issue_date: 01/04/2024
    discount_value: "10,00"
    discount_date: 10/05/2024
    rebate: 1.5
    protest_days: 5
    payer_name: Maria Souza
    payer_tax_id: "12345678901"
    payer_address: Rua A 10
    payer_postal_code: 13010-000
    payer_city: Campinas
    payer_state: SP
`

func TestStore_ReadTitlesYAML(t *testing.T) {
	store := NewStore(logging.NewMockLogger())

	titles, err := store.ReadTitlesYAML(writeFile(t, "titles.yaml", titlesYAML))
	require.NoError(t, err)
	require.Len(t, titles, 1)

	title := titles[0]
	assert.Equal(t, "00000000001", title.NossoNumero)
	assert.True(t, decimal.RequireFromString("150.5").Equal(title.Amount))
	assert.Equal(t, models.AcceptanceYes, title.Acceptance)
	assert.Equal(t, time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), title.IssueDate)
	assert.Equal(t, models.DiscountFixed, title.DiscountCode)
	assert.Equal(t, time.Date(2024, time.May, 10, 0, 0, 0, 0, time.UTC), title.DiscountDate)
	assert.True(t, decimal.RequireFromString("10").Equal(title.DiscountValue))
	assert.True(t, decimal.RequireFromString("1.5").Equal(title.Rebate))
	assert.Equal(t, models.ProtestCalendar, title.ProtestCode)
	assert.Equal(t, 5, title.ProtestDays)
	assert.Equal(t, "13010-000", title.Payer.PostalCode)
}

func TestStore_ReadTitles_ByExtension(t *testing.T) {
	store := NewStore(logging.NewMockLogger())

	fromYAML, err := store.ReadTitles(writeFile(t, "batch.yml", titlesYAML))
	require.NoError(t, err)
	assert.Len(t, fromYAML, 1)

	fromCSV, err := store.ReadTitles(writeFile(t, "batch.txt", titlesCSV))
	require.NoError(t, err)
	assert.Len(t, fromCSV, 2)
}

func TestStore_ReadTitlesYAML_Invalid(t *testing.T) {
	store := NewStore(logging.NewMockLogger())

	_, err := store.ReadTitlesYAML(writeFile(t, "titles.yaml", "titles: [unclosed"))
	assert.Error(t, err)
}

func TestStore_ReadSenderYAML(t *testing.T) {
	store := NewStore(logging.NewMockLogger())
	content := `name: EMPRESA EXEMPLO LTDA
tax_id: "12.345.678/0001-90"
address: Av. Paulista 1000
city: São Paulo
agency: "1234"
agency_dv: "5"
account: "123456"
account_dv: "7"
agreement: CONV123
`
	sender, err := store.ReadSenderYAML(writeFile(t, "sender.yaml", content))
	require.NoError(t, err)

	assert.Equal(t, "EMPRESA EXEMPLO LTDA", sender.Name)
	assert.Equal(t, models.TaxIDTypeOrganization, sender.TaxIDType)
	assert.Equal(t, "SP", sender.State)
	assert.Equal(t, "1234", sender.Agency)
	assert.Equal(t, "123456", sender.Account)
	assert.Equal(t, "CONV123", sender.Agreement)
}

func TestStore_ReadSenderYAML_Invalid(t *testing.T) {
	store := NewStore(logging.NewMockLogger())

	_, err := store.ReadSenderYAML(writeFile(t, "sender.yaml", "agency: \"1234\"\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, err = store.ReadSenderYAML(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestStore_WriteBoletosCSV(t *testing.T) {
	logger := logging.NewMockLogger()
	store := NewStore(logger)

	g := boleto.NewGenerator(nil)
	b, err := g.Generate(boleto.Document{
		BankCode:    "237",
		Agency:      "1234",
		Account:     "1234",
		Wallet:      "09",
		NossoNumero: "12345678901",
		DueDate:     time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC),
		Amount:      decimal.RequireFromString("1234.56"),
		Payer:       models.NewParty("Maria Souza", "12345678901"),
	})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out", "boletos.csv")
	require.NoError(t, store.WriteBoletosCSV(path, []BoletoRow{NewBoletoRow(b)}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "nosso_numero,bank_code,due_date,amount,payer_name,payer_document,beneficiary_name,barcode,digitable_line", lines[0])
	assert.Contains(t, lines[1], "23799971700001234561234091234567890100012340")
	assert.Contains(t, lines[1], "23791.23405 91234.567898 01000.123404 9 97170000123456")
	assert.Contains(t, lines[1], "15/05/2024")

	assert.True(t, logger.HasEntry("INFO", "Successfully wrote boletos to CSV file"))
	assert.Error(t, store.WriteBoletosCSV(path, nil))
}

func TestEncode(t *testing.T) {
	latin1, err := Encode("Conceição", "")
	require.NoError(t, err)
	assert.Equal(t, []byte{'C', 'o', 'n', 'c', 'e', 'i', 0xE7, 0xE3, 'o'}, latin1)

	cp1252, err := Encode("€", CharsetWindows1252)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x80}, cp1252)

	_, err = Encode("€", CharsetISO88591)
	assert.Error(t, err)

	ascii, err := Encode("REMESSA", "ASCII")
	require.NoError(t, err)
	assert.Equal(t, []byte("REMESSA"), ascii)

	_, err = Encode("ação", CharsetASCII)
	assert.Error(t, err)

	_, err = Encode("x", "utf-16")
	assert.Error(t, err)
}

func TestStore_WriteRemittance(t *testing.T) {
	logger := logging.NewMockLogger()
	store := NewStore(logger)
	dir := t.TempDir()

	path := filepath.Join(dir, "REM001.txt")
	content := strings.Repeat("0", 400) + "\r\n"
	require.NoError(t, store.WriteRemittance(path, content, DefaultCharset))
	assert.False(t, logger.HasEntry("WARN", "Overwriting existing remittance file"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(data))

	require.NoError(t, store.WriteRemittance(path, content, DefaultCharset))
	assert.True(t, logger.HasEntry("WARN", "Overwriting existing remittance file"))

	rejected := filepath.Join(dir, "REM002.txt")
	err = store.WriteRemittance(rejected, "ação\r\n", CharsetASCII)
	require.Error(t, err)
	_, statErr := os.Stat(rejected)
	assert.True(t, os.IsNotExist(statErr))
}
