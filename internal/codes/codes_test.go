package codes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rezonia/facturx/internal/codes"
)

func TestDocumentTypeCode(t *testing.T) {
	tests := []struct {
		name       string
		code       codes.DocumentTypeCode
		valid      bool
		invoice    bool
		supporting bool
	}{
		{"invoice", codes.Invoice, true, true, false},
		{"credit note", codes.CreditNote, true, true, false},
		{"pro forma", codes.ProFormaInvoice, true, true, false},
		{"invoicing data sheet", codes.InvoicingDataSheet, true, false, true},
		{"related document", codes.RelatedDocument, true, false, true},
		{"unknown", codes.DocumentTypeCode(999), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.code.Valid())
			assert.Equal(t, tt.invoice, tt.code.IsInvoiceType())
			assert.Equal(t, tt.supporting, tt.code.IsSupportingDocumentType())
		})
	}
}

func TestDocumentTypeCodeName(t *testing.T) {
	assert.Equal(t, "Invoice", codes.Invoice.Name())
	assert.Equal(t, "", codes.DocumentTypeCode(999).Name())
}

func TestTaxCategoryCode(t *testing.T) {
	assert.True(t, codes.StandardRate.Valid())
	assert.True(t, codes.ZeroRate.Valid())
	assert.False(t, codes.TaxCategoryCode("X").Valid())

	assert.True(t, codes.Exempt.RequiresExemptionReason())
	assert.True(t, codes.ReverseCharge.RequiresExemptionReason())
	assert.False(t, codes.StandardRate.RequiresExemptionReason())
	assert.False(t, codes.ZeroRate.RequiresExemptionReason())
}

func TestPaymentMeansCode(t *testing.T) {
	assert.True(t, codes.SEPACreditTransfer.Valid())
	assert.True(t, codes.InterimAgreement.Valid())
	assert.False(t, codes.PaymentMeansCode("99").Valid())
	assert.Equal(t, "SEPA Credit Transfer", codes.SEPACreditTransfer.Name())
}

func TestPaymentTimeCode(t *testing.T) {
	assert.True(t, codes.InvoiceDate.IsInvoiceDueDate())
	assert.True(t, codes.PaymentDate.IsInvoiceDueDate())
	assert.False(t, codes.PaymentTimeCode(7).IsInvoiceDueDate())
	assert.False(t, codes.PaymentTimeCode(7).Valid())
}

func TestUnitCode(t *testing.T) {
	assert.True(t, codes.UnitPiece.Valid())
	assert.True(t, codes.UnitKilogram.Valid())
	assert.False(t, codes.UnitCode("XYZ").Valid())
	assert.Equal(t, "kg", codes.UnitKilogram.Symbol())
}

func TestMIMETypeAllowed(t *testing.T) {
	assert.True(t, codes.MIMETypeAllowed("application/pdf"))
	assert.True(t, codes.MIMETypeAllowed("text/csv"))
	assert.False(t, codes.MIMETypeAllowed("application/zip"))
	assert.False(t, codes.MIMETypeAllowed(""))
}
