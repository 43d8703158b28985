package cii_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
)

func TestParseMalformedXML(t *testing.T) {
	_, err := cii.Parse([]byte("<rsm:CrossIndustryInvoice"))
	var parseErr *cii.ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestParseNotAnInvoice(t *testing.T) {
	_, err := cii.Parse([]byte(`<?xml version="1.0"?><invoice><total>12</total></invoice>`))
	var notInvoice *cii.NotInvoiceError
	require.ErrorAs(t, err, &notInvoice)
}

func TestParseMissingGuideline(t *testing.T) {
	xml := `<rsm:CrossIndustryInvoice` +
		` xmlns:rsm="urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"` +
		` xmlns:ram="urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100">` +
		`<rsm:ExchangedDocumentContext></rsm:ExchangedDocumentContext>` +
		`</rsm:CrossIndustryInvoice>`
	_, err := cii.Parse([]byte(xml))
	var notInvoice *cii.NotInvoiceError
	require.ErrorAs(t, err, &notInvoice)
}

func TestParseUnsupportedProfiles(t *testing.T) {
	base := generated(t, minimumInvoice())
	for _, urn := range []string{
		cii.URNExtendedProfile,
		cii.URNXRechnungProfile,
		"urn:example:unknown",
	} {
		xml := strings.Replace(base, cii.URNMinimumProfile, urn, 1)
		_, err := cii.Parse([]byte(xml))
		var unsupported *cii.UnsupportedProfileError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, urn, unsupported.URN)
	}
}

func TestParseIgnoresPrefixesAndOrder(t *testing.T) {
	// Same document with unconventional prefixes and reordered children.
	xml := strings.NewReplacer(
		"rsm:", "a:", "xmlns:rsm", "xmlns:a",
		"ram:", "b:", "xmlns:ram", "xmlns:b",
		"udt:", "c:", "xmlns:udt", "xmlns:c",
	).Replace(generated(t, minimumInvoice()))
	inv, err := cii.Parse([]byte(xml))
	require.NoError(t, err)
	assert.Equal(t, minimumInvoice(), inv)
}

func TestParseProfileViolationAtMinimum(t *testing.T) {
	// A BASIC WL document relabeled as MINIMUM uses elements that
	// profile does not admit.
	xml := strings.Replace(generated(t, basicWLInvoice()),
		cii.URNBasicWLProfile, cii.URNMinimumProfile, 1)
	_, err := cii.Parse([]byte(xml))
	var profileErr *cii.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, model.ProfileMinimum, profileErr.Profile)
}

func TestParseProfileViolationAtBasic(t *testing.T) {
	xml := strings.Replace(generated(t, en16931Invoice()),
		cii.URNEN16931Profile, cii.URNBasicProfile, 1)
	_, err := cii.Parse([]byte(xml))
	var profileErr *cii.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, model.ProfileBasic, profileErr.Profile)
}

func TestParseProfileViolationAtBasicWL(t *testing.T) {
	inv := basicWLInvoice()
	xml := generated(t, inv)
	// Splice an EN 16931-only element into the settlement.
	xml = strings.Replace(xml, "<ram:InvoiceCurrencyCode>EUR</ram:InvoiceCurrencyCode>",
		"<ram:TaxCurrencyCode>EUR</ram:TaxCurrencyCode><ram:InvoiceCurrencyCode>EUR</ram:InvoiceCurrencyCode>", 1)
	_, err := cii.Parse([]byte(xml))
	var profileErr *cii.ProfileError
	require.ErrorAs(t, err, &profileErr)
	assert.Equal(t, model.ProfileBasicWL, profileErr.Profile)
}

func TestParseInvalidTypeCode(t *testing.T) {
	xml := strings.Replace(generated(t, minimumInvoice()),
		"<ram:TypeCode>380</ram:TypeCode>", "<ram:TypeCode>999</ram:TypeCode>", 1)
	_, err := cii.Parse([]byte(xml))
	var invalid *cii.InvalidDocumentError
	require.ErrorAs(t, err, &invalid)
}

func TestParseInvalidTaxRegistrationScheme(t *testing.T) {
	xml := strings.Replace(generated(t, minimumInvoice()),
		`schemeID="VA"`, `schemeID="XX"`, 1)
	_, err := cii.Parse([]byte(xml))
	var invalid *cii.InvalidDocumentError
	require.ErrorAs(t, err, &invalid)
}

func TestParseInvalidDateFormat(t *testing.T) {
	xml := strings.Replace(generated(t, minimumInvoice()),
		`format="102"`, `format="610"`, 1)
	_, err := cii.Parse([]byte(xml))
	var invalid *cii.InvalidDocumentError
	require.ErrorAs(t, err, &invalid)
}

func TestParseBilledQuantityRequiresUnit(t *testing.T) {
	xml := strings.Replace(generated(t, basicInvoice()),
		` unitCode="H87"`, "", 1)
	_, err := cii.Parse([]byte(xml))
	var invalid *cii.InvalidDocumentError
	require.ErrorAs(t, err, &invalid)
}

func TestParseInvertedBillingPeriod(t *testing.T) {
	inv := basicWLInvoice()
	inv.BillingPeriod = &model.Period{
		Start: date(2024, time.March, 1),
		End:   date(2024, time.March, 31),
	}
	xml := strings.Replace(generated(t, inv), "20240331", "20240201", 1)
	_, err := cii.Parse([]byte(xml))
	var invalid *cii.InvalidDocumentError
	require.ErrorAs(t, err, &invalid)
}

func TestParseBusinessRuleViolation(t *testing.T) {
	inv := minimumInvoice()
	inv.Seller.VATID = ""
	_, err := cii.Parse([]byte(generated(t, inv)))
	var modelErr *model.ModelError
	require.ErrorAs(t, err, &modelErr)
	assert.Equal(t, "seller must have a tax registration", modelErr.Error())
}

func TestParseStripsMailtoPrefix(t *testing.T) {
	inv, err := cii.Parse([]byte(generated(t, basicWLInvoice())))
	require.NoError(t, err)
	wl := model.AsBasicWL(inv)
	require.NotNil(t, wl)
	assert.Equal(t, "info@lieferant.de", wl.Seller.Email)
}
