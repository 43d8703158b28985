package facturx_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/pkg/facturx"
)

func sampleInvoice() *facturx.MinimumInvoice {
	return &facturx.MinimumInvoice{
		InvoiceNumber: "471102",
		TypeCode:      facturx.InvoiceType,
		InvoiceDate:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Seller: facturx.TradeParty{
			Name:    "Lieferant GmbH",
			Address: &facturx.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer:         facturx.TradeParty{Name: "Kunden AG Mitte"},
		CurrencyCode:  "EUR",
		TaxBasisTotal: mustEUR("198.00"),
		TaxTotals:     []facturx.Money{mustEUR("37.62")},
		GrandTotal:    mustEUR("235.62"),
		DuePayable:    mustEUR("235.62"),
	}
}

func mustEUR(amount string) facturx.Money {
	return facturx.MustMoney(amount, "EUR")
}

func TestGenerateParseRoundtrip(t *testing.T) {
	inv := sampleInvoice()

	xml, err := facturx.Generate(inv)
	require.NoError(t, err)

	parsed, err := facturx.Parse([]byte(xml))
	require.NoError(t, err)

	assert.Equal(t, facturx.ProfileMinimum, parsed.Profile())
	assert.Equal(t, inv, parsed)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := facturx.Parse([]byte(`<?xml version="1.0"?><other/>`))
	var notInvoice *facturx.NotInvoiceError
	require.ErrorAs(t, err, &notInvoice)
}

func TestTierViews(t *testing.T) {
	inv := sampleInvoice()

	assert.NotNil(t, facturx.AsMinimum(inv))
	assert.Nil(t, facturx.AsBasicWL(inv))
	assert.Nil(t, facturx.AsBasic(inv))
	assert.Nil(t, facturx.AsEN16931(inv))
}

func TestRelationship(t *testing.T) {
	assert.Equal(t, "Data", facturx.Relationship(facturx.ProfileMinimum))
	assert.Equal(t, "Alternative", facturx.Relationship(facturx.ProfileEN16931))
}
