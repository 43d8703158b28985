package cii

import (
	"encoding/base64"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

// Generate renders an invoice as a CII XML document. It is read-only
// and deterministic: the same invoice always yields the same tree, with
// children emitted in schema order. The invoice is expected to have
// passed Validate; structural contract violations (a BASIC document
// without line items, a reversed billing period) panic.
func Generate(inv model.Invoice) *etree.Document {
	min := model.AsMinimum(inv)
	g := &generator{currency: min.CurrencyCode}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement("rsm:CrossIndustryInvoice")
	root.CreateAttr("xmlns:rsm", NSCII)
	root.CreateAttr("xmlns:ram", NSRAM)
	root.CreateAttr("xmlns:udt", NSUDT)

	g.docContext(root, inv)
	g.exchangedDoc(root, inv)
	g.transaction(root, inv)

	return doc
}

// GenerateString renders an invoice as an XML string.
func GenerateString(inv model.Invoice) (string, error) {
	return Generate(inv).WriteToString()
}

type generator struct {
	currency string
}

//
// Common elements
//

func dateElement(parent *etree.Element, name string, t time.Time) {
	el := parent.CreateElement(name)
	ds := el.CreateElement("udt:DateTimeString")
	ds.CreateAttr("format", "102")
	ds.SetText(t.Format("20060102"))
}

func idElement(parent *etree.Element, name, id string) {
	parent.CreateElement(name).CreateElement("ram:ID").SetText(id)
}

func schemeIDElement(parent *etree.Element, name string, id model.ID) {
	el := parent.CreateElement(name)
	if id.Scheme != "" {
		el.CreateAttr("schemeID", id.Scheme)
	}
	el.SetText(id.Value)
}

func (g *generator) amountElement(parent *etree.Element, name string, m money.Money, withCurrency bool) {
	el := parent.CreateElement(name)
	if withCurrency || m.Currency != g.currency {
		el.CreateAttr("currencyID", m.Currency)
	}
	el.SetText(m.Amount.String())
}

func quantityElement(parent *etree.Element, name string, amount decimal.Decimal, unit codes.UnitCode) {
	el := parent.CreateElement(name)
	if unit != "" {
		el.CreateAttr("unitCode", string(unit))
	}
	el.SetText(amount.String())
}

func emailElement(parent *etree.Element, name, email string) {
	el := parent.CreateElement(name).CreateElement("ram:URIID")
	el.CreateAttr("schemeID", "EM")
	el.SetText("mailto:" + email)
}

func addressElement(parent *etree.Element, address *model.PostalAddress) {
	el := parent.CreateElement("ram:PostalTradeAddress")
	if address.PostCode != "" {
		el.CreateElement("ram:PostcodeCode").SetText(address.PostCode)
	}
	if address.LineOne != "" {
		el.CreateElement("ram:LineOne").SetText(address.LineOne)
	}
	if address.LineTwo != "" {
		el.CreateElement("ram:LineTwo").SetText(address.LineTwo)
	}
	if address.LineThree != "" {
		el.CreateElement("ram:LineThree").SetText(address.LineThree)
	}
	if address.City != "" {
		el.CreateElement("ram:CityName").SetText(address.City)
	}
	el.CreateElement("ram:CountryID").SetText(address.CountryCode)
	if address.CountrySubdivision != "" {
		el.CreateElement("ram:CountrySubDivisionName").SetText(address.CountrySubdivision)
	}
}

func noteElement(parent *etree.Element, note model.IncludedNote) {
	el := parent.CreateElement("ram:IncludedNote")
	el.CreateElement("ram:Content").SetText(note.Content)
	if note.SubjectCode != "" {
		el.CreateElement("ram:SubjectCode").SetText(string(note.SubjectCode))
	}
}

// documentElement emits a referenced-document wrapper holding only an
// issuer-assigned ID. Nothing is emitted for an empty ID.
func documentElement(parent *etree.Element, name, id string) {
	if id == "" {
		return
	}
	parent.CreateElement(name).CreateElement("ram:IssuerAssignedID").SetText(id)
}

func (g *generator) tradeParty(parent *etree.Element, name string, party *model.TradeParty) {
	el := parent.CreateElement(name)
	for _, id := range party.IDs {
		el.CreateElement("ram:ID").SetText(id)
	}
	for _, gid := range party.GlobalIDs {
		schemeIDElement(el, "ram:GlobalID", gid)
	}
	if party.Name != "" {
		el.CreateElement("ram:Name").SetText(party.Name)
	}
	if party.Description != "" {
		el.CreateElement("ram:Description").SetText(party.Description)
	}
	if party.LegalID != nil || party.TradingBusinessName != "" {
		legal := el.CreateElement("ram:SpecifiedLegalOrganization")
		if party.LegalID != nil {
			schemeIDElement(legal, "ram:ID", *party.LegalID)
		}
		if party.TradingBusinessName != "" {
			legal.CreateElement("ram:TradingBusinessName").SetText(party.TradingBusinessName)
		}
	}
	for i := range party.Contacts {
		tradeContact(el, &party.Contacts[i])
	}
	if party.Address != nil {
		addressElement(el, party.Address)
	}
	if party.Email != "" {
		emailElement(el, "ram:URIUniversalCommunication", party.Email)
	}
	if party.TaxNumber != "" {
		reg := el.CreateElement("ram:SpecifiedTaxRegistration").CreateElement("ram:ID")
		reg.CreateAttr("schemeID", "FC")
		reg.SetText(party.TaxNumber)
	}
	if party.VATID != "" {
		reg := el.CreateElement("ram:SpecifiedTaxRegistration").CreateElement("ram:ID")
		reg.CreateAttr("schemeID", "VA")
		reg.SetText(party.VATID)
	}
}

func tradeContact(parent *etree.Element, contact *model.TradeContact) {
	el := parent.CreateElement("ram:DefinedTradeContact")
	if contact.PersonName != "" {
		el.CreateElement("ram:PersonName").SetText(contact.PersonName)
	}
	if contact.DepartmentName != "" {
		el.CreateElement("ram:DepartmentName").SetText(contact.DepartmentName)
	}
	if contact.Phone != "" {
		el.CreateElement("ram:TelephoneUniversalCommunication").
			CreateElement("ram:CompleteNumber").SetText(contact.Phone)
	}
	if contact.Email != "" {
		emailElement(el, "ram:EmailURIUniversalCommunication", contact.Email)
	}
}

//
// Document sections
//

func (g *generator) docContext(parent *etree.Element, inv model.Invoice) {
	min := model.AsMinimum(inv)
	ctx := parent.CreateElement("rsm:ExchangedDocumentContext")
	if min.BusinessProcessID != "" {
		ctx.CreateElement("ram:BusinessProcessSpecifiedDocumentContextParameter").
			CreateElement("ram:ID").SetText(min.BusinessProcessID)
	}
	ctx.CreateElement("ram:GuidelineSpecifiedDocumentContextParameter").
		CreateElement("ram:ID").SetText(ProfileURN(inv.Profile()))
}

func (g *generator) exchangedDoc(parent *etree.Element, inv model.Invoice) {
	min := model.AsMinimum(inv)
	doc := parent.CreateElement("rsm:ExchangedDocument")
	doc.CreateElement("ram:ID").SetText(min.InvoiceNumber)
	doc.CreateElement("ram:TypeCode").SetText(strconv.Itoa(int(min.TypeCode)))
	dateElement(doc, "ram:IssueDateTime", min.InvoiceDate)
	if wl := model.AsBasicWL(inv); wl != nil {
		for _, note := range wl.Notes {
			noteElement(doc, note)
		}
	}
}

func (g *generator) transaction(parent *etree.Element, inv model.Invoice) {
	el := parent.CreateElement("rsm:SupplyChainTradeTransaction")
	if b := model.AsBasic(inv); b != nil {
		if len(b.LineItems) < 1 {
			panic("cannot generate a BASIC or EN 16931 invoice without line items")
		}
		for _, li := range b.LineItems {
			g.lineItem(el, li)
		}
	}
	g.tradeAgreement(el, inv)
	g.delivery(el, inv)
	g.settlement(el, inv)
}

//
// Line items
//

func (g *generator) lineItem(parent *etree.Element, li model.TradeLineItem) {
	el := parent.CreateElement("ram:IncludedSupplyChainTradeLineItem")
	base := li.Base()
	en, _ := li.(*model.EN16931LineItem)

	doc := el.CreateElement("ram:AssociatedDocumentLineDocument")
	doc.CreateElement("ram:LineID").SetText(base.ID)
	if en != nil && en.Note != nil {
		noteElement(doc, *en.Note)
	}

	g.lineProduct(el, base, en)
	g.lineAgreement(el, base, en)

	delivery := el.CreateElement("ram:SpecifiedLineTradeDelivery")
	quantityElement(delivery, "ram:BilledQuantity",
		base.BilledQuantity.Amount, base.BilledQuantity.Unit)

	g.lineSettlement(el, base, en)
}

func (g *generator) lineProduct(parent *etree.Element, base *model.LineItem, en *model.EN16931LineItem) {
	el := parent.CreateElement("ram:SpecifiedTradeProduct")
	if base.GlobalID != nil {
		schemeIDElement(el, "ram:GlobalID", *base.GlobalID)
	}
	if en != nil {
		if en.SellerAssignedID != "" {
			el.CreateElement("ram:SellerAssignedID").SetText(en.SellerAssignedID)
		}
		if en.BuyerAssignedID != "" {
			el.CreateElement("ram:BuyerAssignedID").SetText(en.BuyerAssignedID)
		}
	}
	el.CreateElement("ram:Name").SetText(base.Name)
	if en != nil {
		if en.Description != "" {
			el.CreateElement("ram:Description").SetText(en.Description)
		}
		for _, c := range en.Characteristics {
			cEl := el.CreateElement("ram:ApplicableProductCharacteristic")
			cEl.CreateElement("ram:Description").SetText(c.Description)
			cEl.CreateElement("ram:Value").SetText(c.Value)
		}
		for _, cl := range en.Classifications {
			code := el.CreateElement("ram:DesignatedProductClassification").
				CreateElement("ram:ClassCode")
			code.SetText(cl.ClassCode)
			if cl.ListID != "" {
				code.CreateAttr("listID", string(cl.ListID))
			}
			if cl.ListVersionID != "" {
				code.CreateAttr("listVersionID", cl.ListVersionID)
			}
		}
		if en.OriginCountry != "" {
			idElement(el, "ram:OriginTradeCountry", en.OriginCountry)
		}
	}
}

func (g *generator) lineAgreement(parent *etree.Element, base *model.LineItem, en *model.EN16931LineItem) {
	el := parent.CreateElement("ram:SpecifiedLineTradeAgreement")
	if en != nil {
		if en.BuyerOrderLineID != "" {
			el.CreateElement("ram:BuyerOrderReferencedDocument").
				CreateElement("ram:LineID").SetText(en.BuyerOrderLineID)
		}
		if en.GrossPrice != nil {
			priceEl := el.CreateElement("ram:GrossPriceProductTradePrice")
			g.amountElement(priceEl, "ram:ChargeAmount", en.GrossPrice.Price, false)
			if en.GrossPrice.BasisQuantity != nil {
				quantityElement(priceEl, "ram:BasisQuantity",
					en.GrossPrice.BasisQuantity.Amount, en.GrossPrice.BasisQuantity.Unit)
			}
			if en.GrossPrice.Allowance != nil {
				g.allowanceCharge(priceEl, "ram:AppliedTradeAllowanceCharge",
					lineAllowanceData(en.GrossPrice.Allowance))
			} else if en.GrossPrice.Charge != nil {
				g.allowanceCharge(priceEl, "ram:AppliedTradeAllowanceCharge",
					lineChargeData(en.GrossPrice.Charge))
			}
		}
	}
	priceEl := el.CreateElement("ram:NetPriceProductTradePrice")
	g.amountElement(priceEl, "ram:ChargeAmount", base.NetPrice, false)
	if base.BasisQuantity != nil {
		quantityElement(priceEl, "ram:BasisQuantity",
			base.BasisQuantity.Amount, base.BasisQuantity.Unit)
	}
}

func (g *generator) lineSettlement(parent *etree.Element, base *model.LineItem, en *model.EN16931LineItem) {
	el := parent.CreateElement("ram:SpecifiedLineTradeSettlement")
	tax := el.CreateElement("ram:ApplicableTradeTax")
	tax.CreateElement("ram:TypeCode").SetText("VAT")
	tax.CreateElement("ram:CategoryCode").SetText(string(base.TaxCategory))
	if base.TaxRate != nil {
		tax.CreateElement("ram:RateApplicablePercent").SetText(base.TaxRate.String())
	}
	if en != nil && en.BillingPeriod != nil {
		if en.BillingPeriod.End.Before(en.BillingPeriod.Start) {
			panic("billing period start date must not be after its end date")
		}
		period := el.CreateElement("ram:BillingSpecifiedPeriod")
		dateElement(period, "ram:StartDateTime", en.BillingPeriod.Start)
		dateElement(period, "ram:EndDateTime", en.BillingPeriod.End)
	}
	for i := range base.Allowances {
		g.allowanceCharge(el, "ram:SpecifiedTradeAllowanceCharge",
			lineAllowanceData(&base.Allowances[i]))
	}
	for i := range base.Charges {
		g.allowanceCharge(el, "ram:SpecifiedTradeAllowanceCharge",
			lineChargeData(&base.Charges[i]))
	}
	summation := el.CreateElement("ram:SpecifiedTradeSettlementLineMonetarySummation")
	g.amountElement(summation, "ram:LineTotalAmount", base.BilledTotal, false)
	if en != nil {
		if en.DocRef != nil {
			doc := el.CreateElement("ram:AdditionalReferencedDocument")
			if en.DocRef.ID != "" {
				doc.CreateElement("ram:IssuerAssignedID").SetText(en.DocRef.ID)
			}
			doc.CreateElement("ram:TypeCode").
				SetText(strconv.Itoa(int(codes.InvoicingDataSheet)))
			if en.DocRef.ReferenceTypeCode != "" {
				doc.CreateElement("ram:ReferenceTypeCode").
					SetText(string(en.DocRef.ReferenceTypeCode))
			}
		}
		if en.TradeAccountID != "" {
			idElement(el, "ram:ReceivableSpecifiedTradeAccountingAccount", en.TradeAccountID)
		}
	}
}

//
// Allowances and charges
//

// allowanceData carries the shared fields of the four allowance/charge
// variants; the boolean indicator discriminates on the wire.
type allowanceData struct {
	isCharge   bool
	percent    *decimal.Decimal
	basis      *money.Money
	actual     money.Money
	reasonCode string
	reason     string

	withTax     bool
	taxCategory codes.TaxCategoryCode
	taxRate     *decimal.Decimal
}

func lineAllowanceData(a *model.LineAllowance) allowanceData {
	d := allowanceData{
		percent: a.Percent,
		basis:   a.BasisAmount,
		actual:  a.ActualAmount,
		reason:  a.Reason,
	}
	if a.ReasonCode != 0 {
		d.reasonCode = strconv.Itoa(int(a.ReasonCode))
	}
	return d
}

func lineChargeData(c *model.LineCharge) allowanceData {
	return allowanceData{
		isCharge:   true,
		percent:    c.Percent,
		basis:      c.BasisAmount,
		actual:     c.ActualAmount,
		reasonCode: string(c.ReasonCode),
		reason:     c.Reason,
	}
}

func docAllowanceData(a *model.DocumentAllowance) allowanceData {
	d := lineAllowanceData(&a.LineAllowance)
	d.withTax = true
	d.taxCategory = a.TaxCategory
	d.taxRate = a.TaxRate
	return d
}

func docChargeData(c *model.DocumentCharge) allowanceData {
	d := lineChargeData(&c.LineCharge)
	d.withTax = true
	d.taxCategory = c.TaxCategory
	d.taxRate = c.TaxRate
	return d
}

func (g *generator) allowanceCharge(parent *etree.Element, name string, d allowanceData) {
	el := parent.CreateElement(name)
	indicator := "false"
	if d.isCharge {
		indicator = "true"
	}
	el.CreateElement("ram:ChargeIndicator").
		CreateElement("udt:Indicator").SetText(indicator)
	if d.percent != nil {
		el.CreateElement("ram:CalculationPercent").SetText(d.percent.String())
	}
	if d.basis != nil {
		g.amountElement(el, "ram:BasisAmount", *d.basis, false)
	}
	g.amountElement(el, "ram:ActualAmount", d.actual, false)
	if d.reasonCode != "" {
		el.CreateElement("ram:ReasonCode").SetText(d.reasonCode)
	}
	if d.reason != "" {
		el.CreateElement("ram:Reason").SetText(d.reason)
	}
	if d.withTax {
		tax := el.CreateElement("ram:CategoryTradeTax")
		tax.CreateElement("ram:TypeCode").SetText("VAT")
		tax.CreateElement("ram:CategoryCode").SetText(string(d.taxCategory))
		if d.taxRate != nil {
			tax.CreateElement("ram:RateApplicablePercent").SetText(d.taxRate.String())
		}
	}
}

//
// Header sections
//

func (g *generator) tradeAgreement(parent *etree.Element, inv model.Invoice) {
	min := model.AsMinimum(inv)
	wl := model.AsBasicWL(inv)
	en := model.AsEN16931(inv)

	el := parent.CreateElement("ram:ApplicableHeaderTradeAgreement")
	if min.BuyerReference != "" {
		el.CreateElement("ram:BuyerReference").SetText(min.BuyerReference)
	}
	g.tradeParty(el, "ram:SellerTradeParty", &min.Seller)
	g.tradeParty(el, "ram:BuyerTradeParty", &min.Buyer)
	if wl != nil && wl.SellerTaxRepresentative != nil {
		g.tradeParty(el, "ram:SellerTaxRepresentativeTradeParty", wl.SellerTaxRepresentative)
	}
	if en != nil {
		documentElement(el, "ram:SellerOrderReferencedDocument", en.SellerOrderID)
	}
	documentElement(el, "ram:BuyerOrderReferencedDocument", min.BuyerOrderID)
	if wl != nil {
		documentElement(el, "ram:ContractReferencedDocument", wl.ContractID)
	}
	if en != nil {
		for i := range en.ReferencedDocs {
			g.referencedDoc(el, &en.ReferencedDocs[i])
		}
		if en.ProcuringProject != nil {
			project := el.CreateElement("ram:SpecifiedProcuringProject")
			project.CreateElement("ram:ID").SetText(en.ProcuringProject.ID)
			project.CreateElement("ram:Name").SetText(en.ProcuringProject.Name)
		}
	}
}

func (g *generator) referencedDoc(parent *etree.Element, doc *model.ReferenceDocument) {
	el := parent.CreateElement("ram:AdditionalReferencedDocument")
	el.CreateElement("ram:IssuerAssignedID").SetText(doc.ID)
	if doc.URL != "" {
		el.CreateElement("ram:URIID").SetText(doc.URL)
	}
	el.CreateElement("ram:TypeCode").SetText(strconv.Itoa(int(doc.TypeCode)))
	if doc.Name != "" {
		el.CreateElement("ram:Name").SetText(doc.Name)
	}
	if doc.Attachment != nil {
		attach := el.CreateElement("ram:AttachmentBinaryObject")
		attach.SetText(base64.StdEncoding.EncodeToString(doc.Attachment.Content))
		attach.CreateAttr("mimeCode", doc.Attachment.MIMEType)
		attach.CreateAttr("filename", doc.Attachment.Filename)
	}
	if doc.ReferenceTypeCode != "" {
		el.CreateElement("ram:ReferenceTypeCode").SetText(string(doc.ReferenceTypeCode))
	}
}

func (g *generator) delivery(parent *etree.Element, inv model.Invoice) {
	el := parent.CreateElement("ram:ApplicableHeaderTradeDelivery")
	if wl := model.AsBasicWL(inv); wl != nil {
		if wl.ShipTo != nil {
			g.tradeParty(el, "ram:ShipToTradeParty", wl.ShipTo)
		}
		if wl.DeliveryDate != nil {
			supply := el.CreateElement("ram:ActualDeliverySupplyChainEvent")
			dateElement(supply, "ram:OccurrenceDateTime", *wl.DeliveryDate)
		}
		documentElement(el, "ram:DespatchAdviceReferencedDocument", wl.DespatchAdviceID)
	}
	if en := model.AsEN16931(inv); en != nil {
		documentElement(el, "ram:ReceivingAdviceReferencedDocument", en.ReceivingAdviceID)
	}
}

func (g *generator) settlement(parent *etree.Element, inv model.Invoice) {
	min := model.AsMinimum(inv)
	wl := model.AsBasicWL(inv)
	en := model.AsEN16931(inv)

	el := parent.CreateElement("ram:ApplicableHeaderTradeSettlement")
	if wl != nil {
		if wl.SEPAReference != "" {
			el.CreateElement("ram:CreditorReferenceID").SetText(wl.SEPAReference)
		}
		if wl.PaymentReference != "" {
			el.CreateElement("ram:PaymentReference").SetText(wl.PaymentReference)
		}
	}
	if en != nil && en.TaxCurrencyCode != "" {
		el.CreateElement("ram:TaxCurrencyCode").SetText(en.TaxCurrencyCode)
	}
	el.CreateElement("ram:InvoiceCurrencyCode").SetText(min.CurrencyCode)

	if wl != nil {
		if wl.Payee != nil {
			g.tradeParty(el, "ram:PayeeTradeParty", wl.Payee)
		}
		for i := range wl.PaymentMeans {
			g.paymentMeans(el, &wl.PaymentMeans[i])
		}
		for i := range wl.Tax {
			g.tax(el, &wl.Tax[i])
		}
		if wl.BillingPeriod != nil {
			if wl.BillingPeriod.End.Before(wl.BillingPeriod.Start) {
				panic("billing period start date must not be after its end date")
			}
			period := el.CreateElement("ram:BillingSpecifiedPeriod")
			dateElement(period, "ram:StartDateTime", wl.BillingPeriod.Start)
			dateElement(period, "ram:EndDateTime", wl.BillingPeriod.End)
		}
		for i := range wl.Allowances {
			g.allowanceCharge(el, "ram:SpecifiedTradeAllowanceCharge",
				docAllowanceData(&wl.Allowances[i]))
		}
		for i := range wl.Charges {
			g.allowanceCharge(el, "ram:SpecifiedTradeAllowanceCharge",
				docChargeData(&wl.Charges[i]))
		}
		if wl.PaymentTerms != nil {
			g.paymentTerms(el, wl.PaymentTerms)
		}
	}

	g.summation(el, inv)

	if wl != nil {
		for _, preceding := range wl.PrecedingInvoices {
			doc := el.CreateElement("ram:InvoiceReferencedDocument")
			doc.CreateElement("ram:IssuerAssignedID").SetText(preceding.ID)
			if preceding.Date != nil {
				dateElement(doc, "ram:FormattedIssueDateTime", *preceding.Date)
			}
		}
		for _, refID := range wl.ReceiverAccountingIDs {
			idElement(el, "ram:ReceivableSpecifiedTradeAccountingAccount", refID)
		}
	}
}

func (g *generator) paymentMeans(parent *etree.Element, means *model.PaymentMeans) {
	el := parent.CreateElement("ram:SpecifiedTradeSettlementPaymentMeans")
	el.CreateElement("ram:TypeCode").SetText(string(means.TypeCode))
	if means.Information != "" {
		el.CreateElement("ram:Information").SetText(means.Information)
	}
	if means.Card != nil {
		card := el.CreateElement("ram:ApplicableTradeSettlementFinancialCard")
		card.CreateElement("ram:ID").SetText(means.Card.PAN)
		if means.Card.HolderName != "" {
			card.CreateElement("ram:CardholderName").SetText(means.Card.HolderName)
		}
	}
	if means.PayerIBAN != "" {
		el.CreateElement("ram:PayerPartyDebtorFinancialAccount").
			CreateElement("ram:IBANID").SetText(means.PayerIBAN)
	}
	if means.PayeeAccount != nil {
		account := el.CreateElement("ram:PayeePartyCreditorFinancialAccount")
		if means.PayeeAccount.IBAN != "" {
			account.CreateElement("ram:IBANID").SetText(means.PayeeAccount.IBAN)
		}
		if means.PayeeAccount.Name != "" {
			account.CreateElement("ram:AccountName").SetText(means.PayeeAccount.Name)
		}
		if means.PayeeAccount.BankID != "" {
			account.CreateElement("ram:ProprietaryID").SetText(means.PayeeAccount.BankID)
		}
	}
	if means.PayeeBIC != "" {
		el.CreateElement("ram:PayeeSpecifiedCreditorFinancialInstitution").
			CreateElement("ram:BICID").SetText(means.PayeeBIC)
	}
}

func (g *generator) tax(parent *etree.Element, tax *model.Tax) {
	el := parent.CreateElement("ram:ApplicableTradeTax")
	g.amountElement(el, "ram:CalculatedAmount", tax.CalculatedAmount, false)
	el.CreateElement("ram:TypeCode").SetText("VAT")
	if tax.ExemptionReason != "" {
		el.CreateElement("ram:ExemptionReason").SetText(tax.ExemptionReason)
	}
	g.amountElement(el, "ram:BasisAmount", tax.BasisAmount, false)
	el.CreateElement("ram:CategoryCode").SetText(string(tax.CategoryCode))
	if tax.ExemptionReasonCode != "" {
		el.CreateElement("ram:ExemptionReasonCode").SetText(tax.ExemptionReasonCode)
	}
	if tax.TaxPointDate != nil {
		dateElement(el, "ram:TaxPointDate", *tax.TaxPointDate)
	}
	if tax.DueDateTypeCode != 0 {
		el.CreateElement("ram:DueDateTypeCode").SetText(strconv.Itoa(int(tax.DueDateTypeCode)))
	}
	if tax.RatePercent != nil {
		el.CreateElement("ram:RateApplicablePercent").SetText(tax.RatePercent.String())
	}
}

func (g *generator) paymentTerms(parent *etree.Element, terms *model.PaymentTerms) {
	el := parent.CreateElement("ram:SpecifiedTradePaymentTerms")
	if terms.Description != "" {
		el.CreateElement("ram:Description").SetText(terms.Description)
	}
	if terms.DueDate != nil {
		dateElement(el, "ram:DueDateDateTime", *terms.DueDate)
	}
	if terms.DirectDebitMandateID != "" {
		el.CreateElement("ram:DirectDebitMandateID").SetText(terms.DirectDebitMandateID)
	}
}

func (g *generator) summation(parent *etree.Element, inv model.Invoice) {
	min := model.AsMinimum(inv)
	wl := model.AsBasicWL(inv)
	en := model.AsEN16931(inv)

	el := parent.CreateElement("ram:SpecifiedTradeSettlementHeaderMonetarySummation")
	if min.LineTotal != nil {
		g.amountElement(el, "ram:LineTotalAmount", *min.LineTotal, false)
	}
	if wl != nil {
		if wl.ChargeTotal != nil {
			g.amountElement(el, "ram:ChargeTotalAmount", *wl.ChargeTotal, false)
		}
		if wl.AllowanceTotal != nil {
			g.amountElement(el, "ram:AllowanceTotalAmount", *wl.AllowanceTotal, false)
		}
	}
	g.amountElement(el, "ram:TaxBasisTotalAmount", min.TaxBasisTotal, false)
	for _, amount := range min.TaxTotals {
		// TaxTotalAmount always names its currency, even when it matches
		// the document currency.
		g.amountElement(el, "ram:TaxTotalAmount", amount, true)
	}
	if en != nil && en.RoundingAmount != nil {
		g.amountElement(el, "ram:RoundingAmount", *en.RoundingAmount, false)
	}
	g.amountElement(el, "ram:GrandTotalAmount", min.GrandTotal, false)
	if wl != nil && wl.PrepaidAmount != nil {
		g.amountElement(el, "ram:TotalPrepaidAmount", *wl.PrepaidAmount, false)
	}
	g.amountElement(el, "ram:DuePayableAmount", min.DuePayable, false)
}
