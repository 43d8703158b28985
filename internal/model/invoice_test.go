package model_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

func eur(s string) money.Money {
	return money.MustNew(s, "EUR")
}

func eurp(s string) *money.Money {
	m := eur(s)
	return &m
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func seller() model.TradeParty {
	return model.TradeParty{
		Name:    "Lieferant GmbH",
		VATID:   "DE123456789",
		Address: &model.PostalAddress{CountryCode: "DE"},
	}
}

func buyer() model.TradeParty {
	return model.TradeParty{Name: "Kunde AG"}
}

func minimumInvoice() *model.MinimumInvoice {
	return &model.MinimumInvoice{
		InvoiceNumber: "471102",
		TypeCode:      codes.Invoice,
		InvoiceDate:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Seller:        seller(),
		Buyer:         buyer(),
		CurrencyCode:  "EUR",
		TaxBasisTotal: eur("198.00"),
		TaxTotals:     []money.Money{eur("37.62")},
		GrandTotal:    eur("235.62"),
		DuePayable:    eur("235.62"),
	}
}

func basicWLInvoice() *model.BasicWLInvoice {
	inv := &model.BasicWLInvoice{
		MinimumInvoice: *minimumInvoice(),
		Tax: []model.Tax{
			{
				CalculatedAmount: eur("37.62"),
				BasisAmount:      eur("198.00"),
				RatePercent:      decp("19"),
				CategoryCode:     codes.StandardRate,
			},
		},
	}
	inv.LineTotal = eurp("198.00")
	inv.Buyer.Address = &model.PostalAddress{CountryCode: "DE"}
	return inv
}

func basicInvoice() *model.BasicInvoice {
	return &model.BasicInvoice{
		BasicWLInvoice: *basicWLInvoice(),
		LineItems: []model.TradeLineItem{
			&model.LineItem{
				ID:             "1",
				Name:           "Trennblätter A4",
				NetPrice:       eur("9.90"),
				BilledQuantity: money.MustQuantity("20.0000", codes.UnitPiece),
				BilledTotal:    eur("198.00"),
				TaxRate:        decp("19"),
				TaxCategory:    codes.StandardRate,
			},
		},
	}
}

func en16931Invoice() *model.EN16931Invoice {
	return &model.EN16931Invoice{BasicInvoice: *basicInvoice()}
}

func TestProfileAtLeast(t *testing.T) {
	assert.True(t, model.ProfileEN16931.AtLeast(model.ProfileMinimum))
	assert.True(t, model.ProfileBasic.AtLeast(model.ProfileBasicWL))
	assert.True(t, model.ProfileBasicWL.AtLeast(model.ProfileBasicWL))
	assert.False(t, model.ProfileMinimum.AtLeast(model.ProfileBasicWL))
}

func TestProfileNames(t *testing.T) {
	assert.Equal(t, "MINIMUM", model.ProfileMinimum.String())
	assert.Equal(t, "BASIC WL", model.ProfileBasicWL.String())
	assert.Equal(t, "BASIC", model.ProfileBasic.String())
	assert.Equal(t, "EN 16931/COMFORT", model.ProfileEN16931.String())
}

func TestValidInvoices(t *testing.T) {
	tests := []struct {
		name    string
		invoice model.Invoice
		profile model.Profile
	}{
		{"minimum", minimumInvoice(), model.ProfileMinimum},
		{"basic wl", basicWLInvoice(), model.ProfileBasicWL},
		{"basic", basicInvoice(), model.ProfileBasic},
		{"en16931", en16931Invoice(), model.ProfileEN16931},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.invoice.Validate())
			assert.Equal(t, tt.profile, tt.invoice.Profile())
		})
	}
}

func TestValidateIsRerunnable(t *testing.T) {
	inv := basicInvoice()
	require.NoError(t, inv.Validate())
	require.NoError(t, inv.Validate())

	inv.Seller.VATID = ""
	inv.Seller.TaxNumber = ""
	require.Error(t, inv.Validate())

	inv.Seller.TaxNumber = "201/113/40209"
	require.NoError(t, inv.Validate())
}

func TestSellerTaxRegistration(t *testing.T) {
	t.Run("vat id suffices", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Seller.VATID = "DE123456789"
		inv.Seller.TaxNumber = ""
		assert.NoError(t, inv.Validate())
	})

	t.Run("tax number suffices", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Seller.VATID = ""
		inv.Seller.TaxNumber = "201/113/40209"
		assert.NoError(t, inv.Validate())
	})

	t.Run("neither fails", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Seller.VATID = ""
		inv.Seller.TaxNumber = ""
		err := inv.Validate()
		var merr *model.ModelError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "seller must have a tax registration", merr.Message)
	})

	t.Run("tax representative carries the registration", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.Seller.VATID = ""
		inv.Seller.TaxNumber = ""
		inv.SellerTaxRepresentative = &model.TradeParty{
			Name:    "Vertreter GmbH",
			VATID:   "FR32123456789",
			Address: &model.PostalAddress{CountryCode: "FR"},
		}
		assert.NoError(t, inv.Validate())
	})
}

func TestInvalidTypeCode(t *testing.T) {
	inv := minimumInvoice()
	inv.TypeCode = codes.RelatedDocument
	err := inv.Validate()
	var merr *model.ModelError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Message, "invalid invoice type code")
}

func TestInvalidCurrency(t *testing.T) {
	inv := minimumInvoice()
	inv.CurrencyCode = "euro"
	assert.Error(t, inv.Validate())
}

func TestTaxTotalLimits(t *testing.T) {
	t.Run("minimum allows one", func(t *testing.T) {
		inv := minimumInvoice()
		inv.TaxTotals = []money.Money{eur("37.62"), money.MustNew("40.00", "USD")}
		assert.Error(t, inv.Validate())
	})

	t.Run("basic wl allows two", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.TaxTotals = []money.Money{eur("37.62"), money.MustNew("40.00", "USD")}
		assert.NoError(t, inv.Validate())

		inv.TaxTotals = append(inv.TaxTotals, money.MustNew("39.00", "CHF"))
		assert.Error(t, inv.Validate())
	})
}

func TestMinimumRestrictions(t *testing.T) {
	t.Run("buyer ids", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Buyer.IDs = []string{"K-1"}
		assert.Error(t, inv.Validate())
	})

	t.Run("seller global ids", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Seller.GlobalIDs = []model.ID{{Value: "4000001123452", Scheme: "0088"}}
		assert.Error(t, inv.Validate())
	})

	t.Run("address detail fields", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Seller.Address.City = "München"
		assert.Error(t, inv.Validate())
	})

	t.Run("seller email", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Seller.Email = "info@lieferant.de"
		assert.Error(t, inv.Validate())
	})

	t.Run("buyer vat id", func(t *testing.T) {
		inv := minimumInvoice()
		inv.Buyer.VATID = "DE987654321"
		assert.Error(t, inv.Validate())
	})
}

func TestGlobalIDRequiresScheme(t *testing.T) {
	inv := basicWLInvoice()
	inv.Seller.GlobalIDs = []model.ID{{Value: "4000001123452"}}
	err := inv.Validate()
	var merr *model.ModelError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "global ID scheme ID is required", merr.Message)
}

func TestBasicWLRequirements(t *testing.T) {
	t.Run("line total required", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.LineTotal = nil
		assert.Error(t, inv.Validate())
	})

	t.Run("tax entry required", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.Tax = nil
		assert.Error(t, inv.Validate())
	})

	t.Run("buyer address required", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.Buyer.Address = nil
		assert.Error(t, inv.Validate())
	})

	t.Run("tax point date needs en16931", func(t *testing.T) {
		inv := basicWLInvoice()
		d := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)
		inv.Tax[0].TaxPointDate = &d
		assert.Error(t, inv.Validate())
	})

	t.Run("payment terms description needs en16931", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.PaymentTerms = &model.PaymentTerms{Description: "30 Tage netto"}
		assert.Error(t, inv.Validate())
	})

	t.Run("payment means bic needs en16931", func(t *testing.T) {
		inv := basicWLInvoice()
		inv.PaymentMeans = []model.PaymentMeans{
			{TypeCode: codes.SEPACreditTransfer, PayeeBIC: "MARKDEF1100"},
		}
		assert.Error(t, inv.Validate())
	})
}

func TestTaxExemptionReason(t *testing.T) {
	inv := basicWLInvoice()
	inv.Tax = []model.Tax{
		{
			CalculatedAmount: eur("0.00"),
			BasisAmount:      eur("198.00"),
			CategoryCode:     codes.ReverseCharge,
		},
	}
	err := inv.Validate()
	var merr *model.ModelError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Message, "exemption reason")

	inv.Tax[0].ExemptionReason = "Reverse charge"
	assert.NoError(t, inv.Validate())
}

func TestSellerTaxRepresentativeRequiresVATID(t *testing.T) {
	inv := basicWLInvoice()
	inv.SellerTaxRepresentative = &model.TradeParty{
		Name:    "Vertreter GmbH",
		Address: &model.PostalAddress{CountryCode: "FR"},
	}
	err := inv.Validate()
	var merr *model.ModelError
	require.ErrorAs(t, err, &merr)
	assert.Contains(t, merr.Message, "VAT ID is required")
}

func TestBasicRequirements(t *testing.T) {
	t.Run("line item required", func(t *testing.T) {
		inv := basicInvoice()
		inv.LineItems = nil
		err := inv.Validate()
		var merr *model.ModelError
		require.ErrorAs(t, err, &merr)
		assert.Equal(t, "at least one line item is required", merr.Message)
	})

	t.Run("en16931 line items rejected", func(t *testing.T) {
		inv := basicInvoice()
		inv.LineItems = []model.TradeLineItem{
			&model.EN16931LineItem{
				LineItem:    *inv.LineItems[0].Base(),
				Description: "250 Blatt, weiß",
			},
		}
		assert.Error(t, inv.Validate())
	})

	t.Run("line allowance percent rejected", func(t *testing.T) {
		inv := basicInvoice()
		li := inv.LineItems[0].Base()
		li.Allowances = []model.LineAllowance{
			{ActualAmount: eur("1.00"), Percent: decp("5")},
		}
		assert.Error(t, inv.Validate())
	})

	t.Run("multiple accounting ids rejected", func(t *testing.T) {
		inv := basicInvoice()
		inv.ReceiverAccountingIDs = []string{"K-0815", "K-0816"}
		assert.Error(t, inv.Validate())
	})
}

func TestEN16931LineItemRules(t *testing.T) {
	t.Run("line allowance percent allowed", func(t *testing.T) {
		inv := en16931Invoice()
		li := inv.LineItems[0].Base()
		li.Allowances = []model.LineAllowance{
			{ActualAmount: eur("1.00"), Percent: decp("5"), BasisAmount: eurp("20.00")},
		}
		assert.NoError(t, inv.Validate())
	})

	t.Run("note subject code rejected", func(t *testing.T) {
		inv := en16931Invoice()
		inv.LineItems = []model.TradeLineItem{
			&model.EN16931LineItem{
				LineItem: *inv.LineItems[0].Base(),
				Note:     &model.IncludedNote{Content: "Sonderposten", SubjectCode: codes.GeneralInformation},
			},
		}
		assert.Error(t, inv.Validate())
	})

	t.Run("invalid origin country rejected", func(t *testing.T) {
		inv := en16931Invoice()
		inv.LineItems = []model.TradeLineItem{
			&model.EN16931LineItem{
				LineItem:      *inv.LineItems[0].Base(),
				OriginCountry: "Germany",
			},
		}
		assert.Error(t, inv.Validate())
	})
}

func TestReferenceDocumentRules(t *testing.T) {
	t.Run("supporting type required", func(t *testing.T) {
		inv := en16931Invoice()
		inv.ReferencedDocs = []model.ReferenceDocument{
			{ID: "DOC-1", TypeCode: codes.Invoice},
		}
		assert.Error(t, inv.Validate())
	})

	t.Run("attachment mime type restricted", func(t *testing.T) {
		inv := en16931Invoice()
		inv.ReferencedDocs = []model.ReferenceDocument{
			{
				ID:       "DOC-1",
				TypeCode: codes.RelatedDocument,
				Attachment: &model.Attachment{
					Content:  []byte("x"),
					MIMEType: "application/zip",
					Filename: "doc.zip",
				},
			},
		}
		assert.Error(t, inv.Validate())
	})

	t.Run("pdf attachment allowed", func(t *testing.T) {
		inv := en16931Invoice()
		inv.ReferencedDocs = []model.ReferenceDocument{
			{
				ID:       "DOC-1",
				TypeCode: codes.RelatedDocument,
				Attachment: &model.Attachment{
					Content:  []byte("%PDF-1.7"),
					MIMEType: "application/pdf",
					Filename: "doc.pdf",
				},
			},
		}
		assert.NoError(t, inv.Validate())
	})
}

func TestBillingPeriodPrecondition(t *testing.T) {
	inv := basicWLInvoice()
	inv.BillingPeriod = &model.Period{
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC),
	}
	assert.Panics(t, func() { _ = inv.Validate() })
}

func TestTierViews(t *testing.T) {
	inv := en16931Invoice()

	require.NotNil(t, model.AsMinimum(inv))
	require.NotNil(t, model.AsBasicWL(inv))
	require.NotNil(t, model.AsBasic(inv))
	require.NotNil(t, model.AsEN16931(inv))

	minInv := minimumInvoice()
	assert.NotNil(t, model.AsMinimum(minInv))
	assert.Nil(t, model.AsBasicWL(minInv))
	assert.Nil(t, model.AsBasic(minInv))
	assert.Nil(t, model.AsEN16931(minInv))

	assert.Equal(t, "471102", model.AsMinimum(inv).InvoiceNumber)
}
