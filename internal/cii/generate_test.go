package cii_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

func generated(t *testing.T, inv model.Invoice) string {
	t.Helper()
	xml, err := cii.GenerateString(inv)
	require.NoError(t, err)
	return xml
}

func TestGenerateDeclaresProfileAndNamespaces(t *testing.T) {
	xml := generated(t, minimumInvoice())
	assert.Contains(t, xml, `xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"`)
	assert.Contains(t, xml, `xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"`)
	assert.Contains(t, xml, `xmlns:udt="urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"`)
	assert.Contains(t, xml, ">urn:factur-x.eu:1p0:minimum<")

	assert.Contains(t, generated(t, basicWLInvoice()), ">urn:factur-x.eu:1p0:basicwl<")
	assert.Contains(t, generated(t, basicInvoice()),
		">urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic<")
	assert.Contains(t, generated(t, en16931Invoice()), ">urn:cen.eu:en16931:2017<")
}

// assertOrdered checks that the given substrings appear in order.
func assertOrdered(t *testing.T, xml string, parts ...string) {
	t.Helper()
	pos := 0
	for _, part := range parts {
		i := strings.Index(xml[pos:], part)
		require.GreaterOrEqual(t, i, 0, "missing or out of order: %s", part)
		pos += i + len(part)
	}
}

func TestGenerateSectionOrder(t *testing.T) {
	xml := generated(t, en16931Invoice())
	assertOrdered(t, xml,
		"<rsm:ExchangedDocumentContext>",
		"<rsm:ExchangedDocument>",
		"<rsm:SupplyChainTradeTransaction>",
		"<ram:IncludedSupplyChainTradeLineItem>",
		"<ram:ApplicableHeaderTradeAgreement>",
		"<ram:ApplicableHeaderTradeDelivery>",
		"<ram:ApplicableHeaderTradeSettlement>",
	)
}

func TestGenerateSummationOrder(t *testing.T) {
	xml := generated(t, basicWLInvoice())
	assertOrdered(t, xml,
		"<ram:LineTotalAmount>198.00</ram:LineTotalAmount>",
		"<ram:TaxBasisTotalAmount>198.00</ram:TaxBasisTotalAmount>",
		`<ram:TaxTotalAmount currencyID="EUR">37.62</ram:TaxTotalAmount>`,
		"<ram:GrandTotalAmount>235.62</ram:GrandTotalAmount>",
		"<ram:DuePayableAmount>235.62</ram:DuePayableAmount>",
	)
}

func TestGenerateLineItemOrder(t *testing.T) {
	xml := generated(t, en16931Invoice())
	assertOrdered(t, xml,
		"<ram:AssociatedDocumentLineDocument>",
		"<ram:SpecifiedTradeProduct>",
		"<ram:SellerAssignedID>TB100A4</ram:SellerAssignedID>",
		"<ram:Name>Trennblätter A4</ram:Name>",
		"<ram:SpecifiedLineTradeAgreement>",
		"<ram:GrossPriceProductTradePrice>",
		"<ram:NetPriceProductTradePrice>",
		"<ram:SpecifiedLineTradeDelivery>",
		"<ram:SpecifiedLineTradeSettlement>",
	)
}

func TestGenerateBasicScenario(t *testing.T) {
	inv := basicInvoice()
	inv.LineTotal = eurp("98.00")
	inv.TaxBasisTotal = eur("98.00")
	inv.TaxTotals = []money.Money{eur("18.62")}
	inv.GrandTotal = eur("116.62")
	inv.DuePayable = eur("116.62")
	inv.Tax = []model.Tax{
		{
			CalculatedAmount: eur("18.62"),
			BasisAmount:      eur("98.00"),
			RatePercent:      decp("19"),
			CategoryCode:     codes.StandardRate,
		},
	}
	inv.LineItems = []model.TradeLineItem{
		&model.LineItem{
			ID:             "1",
			Name:           "Trennblätter A4",
			NetPrice:       eur("4.90"),
			BilledQuantity: money.MustQuantity("20.0000", codes.UnitPiece),
			BilledTotal:    eur("98.00"),
			TaxRate:        decp("19"),
			TaxCategory:    codes.StandardRate,
		},
	}

	xml := generated(t, inv)
	assert.Contains(t, xml, "<ram:RateApplicablePercent>19</ram:RateApplicablePercent>")
	assert.Contains(t, xml, `<ram:TaxTotalAmount currencyID="EUR">18.62</ram:TaxTotalAmount>`)
	assertOrdered(t, xml,
		"<ram:LineTotalAmount>98.00</ram:LineTotalAmount>",
		"<ram:TaxBasisTotalAmount>98.00</ram:TaxBasisTotalAmount>",
		"<ram:GrandTotalAmount>116.62</ram:GrandTotalAmount>",
	)
}

func TestGenerateDateFormat(t *testing.T) {
	xml := generated(t, minimumInvoice())
	assert.Contains(t, xml, `<udt:DateTimeString format="102">20240305</udt:DateTimeString>`)
}

func TestGenerateCurrencyAttribute(t *testing.T) {
	xml := generated(t, minimumInvoice())
	// Matching currencies are omitted except on the tax total.
	assert.Contains(t, xml, `<ram:TaxTotalAmount currencyID="EUR">37.62</ram:TaxTotalAmount>`)
	assert.Contains(t, xml, "<ram:GrandTotalAmount>235.62</ram:GrandTotalAmount>")
	assert.NotContains(t, xml, `<ram:GrandTotalAmount currencyID=`)
}

func TestGenerateEmailURI(t *testing.T) {
	xml := generated(t, basicWLInvoice())
	assert.Contains(t, xml, `<ram:URIID schemeID="EM">mailto:info@lieferant.de</ram:URIID>`)
}

func TestGenerateTaxRegistrations(t *testing.T) {
	xml := generated(t, minimumInvoice())
	assert.Contains(t, xml, `<ram:ID schemeID="VA">DE123456789</ram:ID>`)
}

func TestGenerateChargeIndicator(t *testing.T) {
	xml := generated(t, en16931Invoice())
	assert.Contains(t, xml, "<ram:ChargeIndicator><udt:Indicator>false</udt:Indicator></ram:ChargeIndicator>")
}

func TestGenerateAttachment(t *testing.T) {
	xml := generated(t, en16931Invoice())
	assert.Contains(t, xml,
		`<ram:AttachmentBinaryObject mimeCode="application/pdf" filename="report.pdf">cmVwb3J0IGJvZHk=</ram:AttachmentBinaryObject>`)
}

func TestGeneratePanicsWithoutLineItems(t *testing.T) {
	inv := basicInvoice()
	inv.LineItems = nil
	assert.Panics(t, func() { cii.Generate(inv) })
}

func TestGeneratePanicsOnReversedBillingPeriod(t *testing.T) {
	inv := basicWLInvoice()
	inv.BillingPeriod = &model.Period{
		Start: date(2024, time.March, 31),
		End:   date(2024, time.March, 1),
	}
	assert.Panics(t, func() { cii.Generate(inv) })
}
