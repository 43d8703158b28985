package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

var (
	generateProfile    string
	generateOutputFile string
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a sample invoice XML",
	Long: `Generate a well-formed sample Factur-X invoice at the requested
profile. Useful as a template and for testing downstream systems.

Examples:
  facturx generate
  facturx generate --profile minimum -o sample.xml`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&generateProfile, "profile", "en16931", "Profile (minimum, basicwl, basic, en16931)")
	generateCmd.Flags().StringVarP(&generateOutputFile, "output", "o", "", "Output file (default: stdout)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	inv, err := sampleInvoice(generateProfile)
	if err != nil {
		return err
	}

	xml, err := cii.GenerateString(inv)
	if err != nil {
		return err
	}

	if generateOutputFile != "" {
		return os.WriteFile(generateOutputFile, []byte(xml), 0o644)
	}
	fmt.Println(xml)
	return nil
}

func sampleInvoice(profile string) (model.Invoice, error) {
	switch profile {
	case "minimum":
		return sampleMinimum(), nil
	case "basicwl":
		return sampleBasicWL(), nil
	case "basic":
		return sampleBasic(), nil
	case "en16931", "comfort":
		return sampleEN16931(), nil
	default:
		return nil, fmt.Errorf("unknown profile: %s", profile)
	}
}

func sampleMinimum() *model.MinimumInvoice {
	return &model.MinimumInvoice{
		InvoiceNumber: "471102",
		TypeCode:      codes.Invoice,
		InvoiceDate:   time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		Seller: model.TradeParty{
			Name:    "Lieferant GmbH",
			Address: &model.PostalAddress{CountryCode: "DE"},
			VATID:   "DE123456789",
		},
		Buyer:          model.TradeParty{Name: "Kunden AG Mitte"},
		CurrencyCode:   "EUR",
		TaxBasisTotal:  money.MustNew("198.00", "EUR"),
		TaxTotals:      []money.Money{money.MustNew("37.62", "EUR")},
		GrandTotal:     money.MustNew("235.62", "EUR"),
		DuePayable:     money.MustNew("235.62", "EUR"),
		BuyerReference: "04011000-12345-34",
	}
}

func sampleBasicWL() *model.BasicWLInvoice {
	rate := decimal.RequireFromString("19")
	lineTotal := money.MustNew("198.00", "EUR")
	deliveryDate := time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC)
	dueDate := time.Date(2024, time.April, 4, 0, 0, 0, 0, time.UTC)

	inv := &model.BasicWLInvoice{MinimumInvoice: *sampleMinimum()}
	inv.Seller = model.TradeParty{
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
	inv.Buyer = model.TradeParty{
		Name: "Kunden AG Mitte",
		Address: &model.PostalAddress{
			CountryCode: "DE",
			PostCode:    "69876",
			City:        "Frankfurt",
			LineOne:     "Kundenstraße 15",
		},
	}
	inv.LineTotal = &lineTotal
	inv.Tax = []model.Tax{
		{
			CalculatedAmount: money.MustNew("37.62", "EUR"),
			BasisAmount:      money.MustNew("198.00", "EUR"),
			RatePercent:      &rate,
			CategoryCode:     codes.StandardRate,
		},
	}
	inv.Notes = []model.IncludedNote{
		{Content: "Rechnung gemäß Bestellung vom 01.03.2024."},
	}
	inv.DeliveryDate = &deliveryDate
	inv.PaymentMeans = []model.PaymentMeans{
		{
			TypeCode:     codes.SEPACreditTransfer,
			PayeeAccount: &model.BankAccount{IBAN: "DE75512108001245126199"},
		},
	}
	inv.PaymentTerms = &model.PaymentTerms{DueDate: &dueDate}
	return inv
}

func sampleBasic() *model.BasicInvoice {
	rate := decimal.RequireFromString("19")
	return &model.BasicInvoice{
		BasicWLInvoice: *sampleBasicWL(),
		LineItems: []model.TradeLineItem{
			&model.LineItem{
				ID:             "1",
				Name:           "Trennblätter A4",
				NetPrice:       money.MustNew("9.90", "EUR"),
				BilledQuantity: money.MustQuantity("20.0000", codes.UnitPiece),
				BilledTotal:    money.MustNew("198.00", "EUR"),
				TaxRate:        &rate,
				TaxCategory:    codes.StandardRate,
			},
		},
	}
}

func sampleEN16931() *model.EN16931Invoice {
	rate := decimal.RequireFromString("19")
	return &model.EN16931Invoice{
		BasicInvoice: model.BasicInvoice{
			BasicWLInvoice: *sampleBasicWL(),
			LineItems: []model.TradeLineItem{
				&model.EN16931LineItem{
					LineItem: model.LineItem{
						ID:             "1",
						Name:           "Trennblätter A4",
						NetPrice:       money.MustNew("9.90", "EUR"),
						BilledQuantity: money.MustQuantity("20.0000", codes.UnitPiece),
						BilledTotal:    money.MustNew("198.00", "EUR"),
						TaxRate:        &rate,
						TaxCategory:    codes.StandardRate,
					},
					SellerAssignedID: "TB100A4",
				},
			},
		},
		SellerOrderID: "ORD-0815",
	}
}
