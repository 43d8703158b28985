package cii_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
)

// Generating an invoice and parsing the result must yield the invoice
// back, decimal digits included.

func roundtrip(t *testing.T, inv model.Invoice) model.Invoice {
	t.Helper()
	xml, err := cii.GenerateString(inv)
	require.NoError(t, err)
	parsed, err := cii.Parse([]byte(xml))
	require.NoError(t, err)
	return parsed
}

func TestRoundtripMinimum(t *testing.T) {
	inv := minimumInvoice()
	require.Equal(t, inv, roundtrip(t, inv))
}

func TestRoundtripBasicWL(t *testing.T) {
	inv := basicWLInvoice()
	require.Equal(t, inv, roundtrip(t, inv))
}

func TestRoundtripBasic(t *testing.T) {
	inv := basicInvoice()
	require.Equal(t, inv, roundtrip(t, inv))
}

func TestRoundtripEN16931(t *testing.T) {
	inv := en16931Invoice()
	require.Equal(t, inv, roundtrip(t, inv))
}

func TestRoundtripKeepsDecimalDigits(t *testing.T) {
	inv := minimumInvoice()
	parsed := roundtrip(t, inv)
	min := model.AsMinimum(parsed)
	require.NotNil(t, min)
	require.Equal(t, "198.00", min.TaxBasisTotal.Amount.String())
	require.Equal(t, "235.62 EUR", min.GrandTotal.String())
}
