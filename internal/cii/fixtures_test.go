package cii_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

func eur(amount string) money.Money {
	return money.MustNew(amount, "EUR")
}

func eurp(amount string) *money.Money {
	m := eur(amount)
	return &m
}

func decp(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func datep(year int, month time.Month, day int) *time.Time {
	t := date(year, month, day)
	return &t
}

func seller() model.TradeParty {
	return model.TradeParty{
		Name: "Lieferant GmbH",
		Address: &model.PostalAddress{
			CountryCode: "DE",
			PostCode:    "80333",
			City:        "München",
			LineOne:     "Lieferantenstraße 20",
		},
		Email: "info@lieferant.de",
		VATID: "DE123456789",
	}
}

func buyer() model.TradeParty {
	return model.TradeParty{
		Name: "Kunden AG Mitte",
		Address: &model.PostalAddress{
			CountryCode: "DE",
			PostCode:    "69876",
			City:        "Frankfurt",
			LineOne:     "Hans Muster",
			LineTwo:     "Kundenstraße 15",
		},
	}
}

func minimumInvoice() *model.MinimumInvoice {
	return &model.MinimumInvoice{
		InvoiceNumber: "471102",
		TypeCode:      codes.Invoice,
		InvoiceDate:   date(2024, time.March, 5),
		Seller: model.TradeParty{
			Name:    "Lieferant GmbH",
			Address: &model.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer:             model.TradeParty{Name: "Kunden AG Mitte"},
		CurrencyCode:      "EUR",
		TaxBasisTotal:     eur("198.00"),
		TaxTotals:         []money.Money{eur("37.62")},
		GrandTotal:        eur("235.62"),
		DuePayable:        eur("235.62"),
		BusinessProcessID: "A1",
		BuyerReference:    "04011000-12345-34",
	}
}

func basicWLInvoice() *model.BasicWLInvoice {
	inv := &model.BasicWLInvoice{MinimumInvoice: *minimumInvoice()}
	inv.Seller = seller()
	inv.Buyer = buyer()
	inv.LineTotal = eurp("198.00")
	inv.Tax = []model.Tax{
		{
			CalculatedAmount: eur("37.62"),
			BasisAmount:      eur("198.00"),
			RatePercent:      decp("19"),
			CategoryCode:     codes.StandardRate,
		},
	}
	inv.Notes = []model.IncludedNote{
		{Content: "Rechnung gemäß Bestellung vom 01.03.2024."},
	}
	inv.DeliveryDate = datep(2024, time.March, 4)
	inv.PaymentMeans = []model.PaymentMeans{
		{
			TypeCode:     codes.SEPACreditTransfer,
			PayeeAccount: &model.BankAccount{IBAN: "DE75512108001245126199"},
		},
	}
	inv.PaymentTerms = &model.PaymentTerms{DueDate: datep(2024, time.April, 4)}
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
	inv := &model.EN16931Invoice{
		BasicInvoice: model.BasicInvoice{
			BasicWLInvoice: *basicWLInvoice(),
			LineItems: []model.TradeLineItem{
				&model.EN16931LineItem{
					LineItem: model.LineItem{
						ID:             "1",
						Name:           "Trennblätter A4",
						NetPrice:       eur("9.90"),
						BilledQuantity: money.MustQuantity("20.0000", codes.UnitPiece),
						BilledTotal:    eur("198.00"),
						TaxRate:        decp("19"),
						TaxCategory:    codes.StandardRate,
					},
					SellerAssignedID: "TB100A4",
					GrossPrice: &model.GrossPrice{
						Price:     eur("11.90"),
						Allowance: &model.LineAllowance{ActualAmount: eur("2.00")},
					},
				},
			},
		},
		SellerOrderID: "ORD-0815",
		ReferencedDocs: []model.ReferenceDocument{
			{
				ID:       "REP-2024-17",
				TypeCode: codes.RelatedDocument,
				Name:     "Monatsreport",
				Attachment: &model.Attachment{
					Content:  []byte("report body"),
					MIMEType: "application/pdf",
					Filename: "report.pdf",
				},
			},
		},
		ProcuringProject:  &model.ProcuringProject{ID: "PP-7", Name: "Rahmenvertrag Büromaterial"},
		ReceivingAdviceID: "RA-11",
	}
	inv.Seller.Contacts = []model.TradeContact{
		{PersonName: "Heinz Müller", Phone: "+49 89 123456", Email: "hm@lieferant.de"},
	}
	return inv
}
