package boleto

import (
	"errors"
	"testing"

	"fjacquet/boleto-cnab/internal/cnaberror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFreeFieldGeneric(t *testing.T) {
	ff, err := BuildFreeFieldGeneric(FreeFieldInputs{
		Agency:      "0001",
		Account:     "00001234",
		Wallet:      "09",
		NossoNumero: "12345678901",
	})
	require.NoError(t, err)

	assert.Len(t, ff, FreeFieldLength)
	assert.Equal(t, "09", ff[0:2])
	assert.Equal(t, "12345678901", ff[2:13])
	assert.Equal(t, "0001", ff[13:17])
	assert.Equal(t, "0000001", ff[17:24])
	assert.Equal(t, "0", ff[24:25])
	assert.Equal(t, itauFreeField, ff)
}

func TestBuildFreeFieldGeneric_IgnoresFormatting(t *testing.T) {
	ff, err := BuildFreeFieldGeneric(FreeFieldInputs{
		Agency:      "1-2",
		Account:     "98.765-4",
		Wallet:      "9",
		NossoNumero: "42",
	})
	require.NoError(t, err)
	assert.Equal(t, "09"+"00000000042"+"0012"+"0000987"+"0", ff)
}

func TestBuildFreeFieldGeneric_Errors(t *testing.T) {
	tests := []struct {
		name  string
		in    FreeFieldInputs
		field string
	}{
		{"agency too long", FreeFieldInputs{Agency: "12345"}, "agency"},
		{"account too long", FreeFieldInputs{Account: "12345678901"}, "account"},
		{"wallet too long", FreeFieldInputs{Wallet: "109"}, "wallet"},
		{"nosso numero too long", FreeFieldInputs{NossoNumero: "123456789012"}, "nosso_numero"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildFreeFieldGeneric(tt.in)
			require.Error(t, err)

			var fieldErr *cnaberror.InvalidFieldError
			require.True(t, errors.As(err, &fieldErr))
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestBradesco_Build(t *testing.T) {
	ff, err := Bradesco{}.Build(FreeFieldInputs{
		Agency:      "1234",
		Account:     "1234",
		Wallet:      "09",
		NossoNumero: "12345678901",
	})
	require.NoError(t, err)
	assert.Equal(t, "1234091234567890100012340", ff)

	_, err = Bradesco{}.Build(FreeFieldInputs{Account: "12345678"})
	assert.True(t, errors.Is(err, cnaberror.ErrInvalidField))
}

func TestItau_Build(t *testing.T) {
	in := FreeFieldInputs{
		Agency:      "0057",
		Account:     "12345",
		Wallet:      "109",
		NossoNumero: "12345678",
	}

	ff, err := Itau{}.Build(in)
	require.NoError(t, err)
	assert.Equal(t, "1091234567800057123457000", ff)

	// wallet 126 checks only wallet and nosso numero
	in.Wallet = "126"
	ff, err = Itau{}.Build(in)
	require.NoError(t, err)
	assert.Equal(t, "1261234567850057123457000", ff)

	in.NossoNumero = "123456789"
	_, err = Itau{}.Build(in)
	assert.True(t, errors.Is(err, cnaberror.ErrInvalidField))
}

func TestRegistry(t *testing.T) {
	r := NewDefaultRegistry()

	assert.Equal(t, []string{"237", "341"}, r.BankCodes())
	assert.IsType(t, Bradesco{}, r.Lookup("237"))
	assert.IsType(t, Itau{}, r.Lookup("341"))
	assert.IsType(t, Generic{}, r.Lookup("001"))
	assert.Equal(t, GenericBankCode, r.Lookup("999").BankCode())
}

type fixedBuilder struct{ code string }

func (f fixedBuilder) BankCode() string { return f.code }

func (f fixedBuilder) Build(FreeFieldInputs) (string, error) {
	return "1111111111111111111111111", nil
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := NewDefaultRegistry()
	r.Register(fixedBuilder{code: "341"})
	r.Register(fixedBuilder{code: "001"})

	assert.Equal(t, []string{"001", "237", "341"}, r.BankCodes())
	ff, err := r.Lookup("341").Build(FreeFieldInputs{})
	require.NoError(t, err)
	assert.Equal(t, "1111111111111111111111111", ff)
}
