package cii

import (
	"encoding/base64"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

// Parse reads a CII XML document and returns the invoice it describes,
// typed by its declared profile. Child order and namespace prefixes are
// not significant. The returned invoice has passed Validate.
//
// Errors: ParseError for malformed XML, NotInvoiceError when the
// document is not a Factur-X invoice at all, UnsupportedProfileError
// for the EXTENDED and XRECHNUNG guidelines and unknown ones,
// InvalidDocumentError for structural problems, ProfileError when an
// element is not available in the declared profile, and ModelError when
// the parsed invoice violates a business rule.
func Parse(data []byte) (model.Invoice, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, NewParseError(err)
	}
	return parseDocument(doc)
}

// ParseReader reads a CII XML document from r. See Parse.
func ParseReader(r io.Reader) (model.Invoice, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, NewParseError(err)
	}
	return parseDocument(doc)
}

func parseDocument(doc *etree.Document) (model.Invoice, error) {
	root := doc.Root()
	if root == nil || root.NamespaceURI() != NSCII || root.Tag != "CrossIndustryInvoice" {
		return nil, NewNotInvoiceError("root element is not a Factur-X invoice")
	}
	urn, err := guidelineURN(root)
	if err != nil {
		return nil, err
	}

	var inv model.Invoice
	switch urn {
	case URNMinimumProfile:
		inv, err = parseMinimumInvoice(root)
	case URNBasicWLProfile:
		inv, err = parseBasicWLInvoice(root)
	case URNBasicProfile:
		inv, err = parseBasicInvoice(root)
	case URNEN16931Profile:
		inv, err = parseEN16931Invoice(root)
	default:
		return nil, NewUnsupportedProfileError(urn)
	}
	if err != nil {
		return nil, err
	}
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	return inv, nil
}

func guidelineURN(root *etree.Element) (string, error) {
	ctx := findChild(root, NSCII, "ExchangedDocumentContext")
	if ctx == nil {
		return "", NewNotInvoiceError("ExchangedDocumentContext element not found")
	}
	param := ramChild(ctx, "GuidelineSpecifiedDocumentContextParameter")
	if param == nil {
		return "", NewNotInvoiceError("profile ID element not found")
	}
	id := ramChild(param, "ID")
	if id == nil || id.Text() == "" {
		return "", NewNotInvoiceError("profile ID element not found")
	}
	return id.Text(), nil
}

//
// Element lookup
//

func findChild(parent *etree.Element, ns, tag string) *etree.Element {
	for _, el := range parent.ChildElements() {
		if el.Tag == tag && el.NamespaceURI() == ns {
			return el
		}
	}
	return nil
}

func findChildren(parent *etree.Element, ns, tag string) []*etree.Element {
	var els []*etree.Element
	for _, el := range parent.ChildElements() {
		if el.Tag == tag && el.NamespaceURI() == ns {
			els = append(els, el)
		}
	}
	return els
}

func ramChild(parent *etree.Element, tag string) *etree.Element {
	return findChild(parent, NSRAM, tag)
}

func ramChildren(parent *etree.Element, tag string) []*etree.Element {
	return findChildren(parent, NSRAM, tag)
}

//
// Text, ID, number, and date primitives
//

func childText(parent *etree.Element, tag string) (string, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return "", NewInvalidDocumentError("%s element not found", tag)
	}
	if el.Text() == "" {
		return "", NewInvalidDocumentError("%s element has no text", tag)
	}
	return el.Text(), nil
}

// childTextOptional returns "" for a missing element but rejects a
// present but empty one.
func childTextOptional(parent *etree.Element, tag string) (string, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return "", nil
	}
	if el.Text() == "" {
		return "", NewInvalidDocumentError("%s element has no text", tag)
	}
	return el.Text(), nil
}

func childTexts(parent *etree.Element, tag string) ([]string, error) {
	var texts []string
	for _, el := range ramChildren(parent, tag) {
		if el.Text() == "" {
			return nil, NewInvalidDocumentError("%s element has no text", tag)
		}
		texts = append(texts, el.Text())
	}
	return texts, nil
}

func parseID(el *etree.Element) (model.ID, error) {
	if el.Text() == "" {
		return model.ID{}, NewInvalidDocumentError("ID element has no text")
	}
	scheme := el.SelectAttrValue("schemeID", "")
	if scheme != "" && !codes.IdentifierSchemeCode(scheme).Valid() {
		return model.ID{}, NewInvalidDocumentError("invalid identifier scheme: %s", scheme)
	}
	return model.ID{Value: el.Text(), Scheme: scheme}, nil
}

func childIDOptional(parent *etree.Element, tag string) (*model.ID, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return nil, nil
	}
	id, err := parseID(el)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func childIDs(parent *etree.Element, tag string) ([]model.ID, error) {
	var ids []model.ID
	for _, el := range ramChildren(parent, tag) {
		id, err := parseID(el)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func childDecimalOptional(parent *etree.Element, tag string) (*decimal.Decimal, error) {
	s, err := childTextOptional(parent, tag)
	if err != nil || s == "" {
		return nil, err
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, NewInvalidDocumentError("invalid decimal value: %s", s)
	}
	return &d, nil
}

func childIndicator(parent *etree.Element, tag string) (bool, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return false, NewInvalidDocumentError("%s element not found", tag)
	}
	indicator := findChild(el, NSUDT, "Indicator")
	if indicator == nil {
		return false, NewInvalidDocumentError("Indicator element not found")
	}
	switch indicator.Text() {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, NewInvalidDocumentError("invalid indicator: %s", indicator.Text())
}

var datePattern = regexp.MustCompile(`^\d{8}$`)

func childDate(parent *etree.Element, tag string) (time.Time, error) {
	t, err := childDateOptional(parent, tag)
	if err != nil {
		return time.Time{}, err
	}
	if t == nil {
		return time.Time{}, NewInvalidDocumentError("%s element not found", tag)
	}
	return *t, nil
}

func childDateOptional(parent *etree.Element, tag string) (*time.Time, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return nil, nil
	}
	ds := findChild(el, NSUDT, "DateTimeString")
	if ds == nil {
		return nil, NewInvalidDocumentError("DateTimeString element not found in %s", tag)
	}
	if ds.SelectAttrValue("format", "") != "102" {
		return nil, NewInvalidDocumentError("invalid DateTimeString format in %s", tag)
	}
	if !datePattern.MatchString(ds.Text()) {
		return nil, NewInvalidDocumentError("invalid date: %s", ds.Text())
	}
	t, err := time.Parse("20060102", ds.Text())
	if err != nil {
		return nil, NewInvalidDocumentError("invalid date: %s", ds.Text())
	}
	return &t, nil
}

func (p *parser) childAmount(parent *etree.Element, tag string) (money.Money, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return money.Money{}, NewInvalidDocumentError("%s element not found", tag)
	}
	return p.parseAmount(el)
}

func (p *parser) childAmountOptional(parent *etree.Element, tag string) (*money.Money, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return nil, nil
	}
	m, err := p.parseAmount(el)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (p *parser) childAmounts(parent *etree.Element, tag string) ([]money.Money, error) {
	var amounts []money.Money
	for _, el := range ramChildren(parent, tag) {
		m, err := p.parseAmount(el)
		if err != nil {
			return nil, err
		}
		amounts = append(amounts, m)
	}
	return amounts, nil
}

func (p *parser) parseAmount(el *etree.Element) (money.Money, error) {
	currency := el.SelectAttrValue("currencyID", "")
	if currency == "" {
		currency = p.currency
	}
	if el.Text() == "" {
		return money.Money{}, NewInvalidDocumentError("amount element has no text")
	}
	m, err := money.New(el.Text(), currency)
	if err != nil {
		return money.Money{}, NewInvalidDocumentError("invalid amount: %v", err)
	}
	return m, nil
}

func childQuantity(parent *etree.Element, tag string) (money.Quantity, error) {
	q, err := childOptionalQuantityOptional(parent, tag)
	if err != nil {
		return money.Quantity{}, err
	}
	if q == nil {
		return money.Quantity{}, NewInvalidDocumentError("%s element not found", tag)
	}
	if q.Unit == "" {
		return money.Quantity{}, NewInvalidDocumentError("%s element has no unitCode", tag)
	}
	return money.Quantity{Amount: q.Amount, Unit: q.Unit}, nil
}

func childOptionalQuantityOptional(parent *etree.Element, tag string) (*money.OptionalQuantity, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return nil, nil
	}
	if el.Text() == "" {
		return nil, NewInvalidDocumentError("%s element has no text", tag)
	}
	amount, err := decimal.NewFromString(el.Text())
	if err != nil {
		return nil, NewInvalidDocumentError("invalid quantity: %s", el.Text())
	}
	unit := codes.UnitCode(el.SelectAttrValue("unitCode", ""))
	if unit != "" && !unit.Valid() {
		return nil, NewInvalidDocumentError("invalid unit code: %s", string(unit))
	}
	return &money.OptionalQuantity{Amount: amount, Unit: unit}, nil
}

// refDocID extracts the issuer-assigned ID of a referenced-document
// wrapper, or "" when the wrapper is absent.
func refDocID(parent *etree.Element, tag string) (string, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return "", nil
	}
	return childText(el, "IssuerAssignedID")
}

//
// Intermediate sections
//

type parser struct {
	currency string
}

type docContext struct {
	businessProcessID string
}

type docInfo struct {
	id        string
	typeCode  codes.DocumentTypeCode
	issueDate time.Time
	notes     []model.IncludedNote
}

type tradeAgreement struct {
	seller           model.TradeParty
	buyer            model.TradeParty
	buyerReference   string
	sellerOrderID    string
	buyerOrderID     string
	contractID       string
	sellerTaxRep     *model.TradeParty
	referencedDocs   []model.ReferenceDocument
	procuringProject *model.ProcuringProject
}

type tradeDelivery struct {
	shipTo            *model.TradeParty
	deliveryDate      *time.Time
	despatchAdviceID  string
	receivingAdviceID string
}

type settlementSummation struct {
	lineTotal      *money.Money
	taxBasisTotal  money.Money
	taxTotals      []money.Money
	grandTotal     money.Money
	duePayable     money.Money
	chargeTotal    *money.Money
	allowanceTotal *money.Money
	prepaid        *money.Money
	rounding       *money.Money
}

type tradeSettlement struct {
	currencyCode          string
	summation             settlementSummation
	creditorReferenceID   string
	paymentReference      string
	taxCurrencyCode       string
	payee                 *model.TradeParty
	paymentMeans          []model.PaymentMeans
	tax                   []model.Tax
	billingPeriod         *model.Period
	allowances            []model.DocumentAllowance
	charges               []model.DocumentCharge
	paymentTerms          *model.PaymentTerms
	precedingInvoices     []model.PrecedingInvoice
	receiverAccountingIDs []string
}

func parseDocContext(root *etree.Element) (docContext, error) {
	ctx := findChild(root, NSCII, "ExchangedDocumentContext")
	if ctx == nil {
		return docContext{}, NewInvalidDocumentError("ExchangedDocumentContext element not found")
	}
	var processID string
	if param := ramChild(ctx, "BusinessProcessSpecifiedDocumentContextParameter"); param != nil {
		if id := ramChild(param, "ID"); id != nil {
			processID = id.Text()
		}
	}
	return docContext{businessProcessID: processID}, nil
}

func parseDocInfo(root *etree.Element) (docInfo, error) {
	el := findChild(root, NSCII, "ExchangedDocument")
	if el == nil {
		return docInfo{}, NewInvalidDocumentError("ExchangedDocument element not found")
	}
	id, err := childText(el, "ID")
	if err != nil {
		return docInfo{}, err
	}
	typeCodeText, err := childText(el, "TypeCode")
	if err != nil {
		return docInfo{}, err
	}
	n, err := strconv.Atoi(typeCodeText)
	if err != nil || !codes.DocumentTypeCode(n).Valid() {
		return docInfo{}, NewInvalidDocumentError("invalid TypeCode: %s", typeCodeText)
	}
	issueDate, err := childDate(el, "IssueDateTime")
	if err != nil {
		return docInfo{}, err
	}
	var notes []model.IncludedNote
	for _, noteEl := range ramChildren(el, "IncludedNote") {
		note, err := parseNote(noteEl)
		if err != nil {
			return docInfo{}, err
		}
		notes = append(notes, note)
	}
	return docInfo{
		id:        id,
		typeCode:  codes.DocumentTypeCode(n),
		issueDate: issueDate,
		notes:     notes,
	}, nil
}

func parseNote(el *etree.Element) (model.IncludedNote, error) {
	content, err := childText(el, "Content")
	if err != nil {
		return model.IncludedNote{}, err
	}
	subjectCode, err := childTextOptional(el, "SubjectCode")
	if err != nil {
		return model.IncludedNote{}, err
	}
	if subjectCode != "" && !codes.TextSubjectCode(subjectCode).Valid() {
		return model.IncludedNote{}, NewInvalidDocumentError("invalid SubjectCode: %s", subjectCode)
	}
	return model.IncludedNote{
		Content:     content,
		SubjectCode: codes.TextSubjectCode(subjectCode),
	}, nil
}

func parseTransaction(root *etree.Element) (*etree.Element, tradeAgreement, tradeDelivery, tradeSettlement, error) {
	el := findChild(root, NSCII, "SupplyChainTradeTransaction")
	if el == nil {
		return nil, tradeAgreement{}, tradeDelivery{}, tradeSettlement{},
			NewInvalidDocumentError("SupplyChainTradeTransaction element not found")
	}
	agreement, err := parseAgreement(el)
	if err != nil {
		return nil, tradeAgreement{}, tradeDelivery{}, tradeSettlement{}, err
	}
	delivery, err := parseDelivery(el)
	if err != nil {
		return nil, tradeAgreement{}, tradeDelivery{}, tradeSettlement{}, err
	}
	settlement, err := parseSettlement(el)
	if err != nil {
		return nil, tradeAgreement{}, tradeDelivery{}, tradeSettlement{}, err
	}
	return el, agreement, delivery, settlement, nil
}

func parseAgreement(parent *etree.Element) (tradeAgreement, error) {
	el := ramChild(parent, "ApplicableHeaderTradeAgreement")
	if el == nil {
		return tradeAgreement{}, NewInvalidDocumentError("ApplicableHeaderTradeAgreement element not found")
	}
	var a tradeAgreement
	var err error
	if a.buyerReference, err = childTextOptional(el, "BuyerReference"); err != nil {
		return a, err
	}
	seller, err := parsePartyRequired(el, "SellerTradeParty")
	if err != nil {
		return a, err
	}
	a.seller = *seller
	buyer, err := parsePartyRequired(el, "BuyerTradeParty")
	if err != nil {
		return a, err
	}
	a.buyer = *buyer
	if a.sellerOrderID, err = refDocID(el, "SellerOrderReferencedDocument"); err != nil {
		return a, err
	}
	if a.buyerOrderID, err = refDocID(el, "BuyerOrderReferencedDocument"); err != nil {
		return a, err
	}
	if a.sellerTaxRep, err = parsePartyOptional(el, "SellerTaxRepresentativeTradeParty"); err != nil {
		return a, err
	}
	if a.contractID, err = refDocID(el, "ContractReferencedDocument"); err != nil {
		return a, err
	}
	for _, docEl := range ramChildren(el, "AdditionalReferencedDocument") {
		doc, err := parseReferenceDocument(docEl)
		if err != nil {
			return a, err
		}
		a.referencedDocs = append(a.referencedDocs, doc)
	}
	if projectEl := ramChild(el, "SpecifiedProcuringProject"); projectEl != nil {
		id, err := childText(projectEl, "ID")
		if err != nil {
			return a, err
		}
		name, err := childText(projectEl, "Name")
		if err != nil {
			return a, err
		}
		a.procuringProject = &model.ProcuringProject{ID: id, Name: name}
	}
	return a, nil
}

func parseDelivery(parent *etree.Element) (tradeDelivery, error) {
	el := ramChild(parent, "ApplicableHeaderTradeDelivery")
	if el == nil {
		return tradeDelivery{}, NewInvalidDocumentError("ApplicableHeaderTradeDelivery element not found")
	}
	var d tradeDelivery
	var err error
	if d.shipTo, err = parsePartyOptional(el, "ShipToTradeParty"); err != nil {
		return d, err
	}
	if eventEl := ramChild(el, "ActualDeliverySupplyChainEvent"); eventEl != nil {
		if d.deliveryDate, err = childDateOptional(eventEl, "OccurrenceDateTime"); err != nil {
			return d, err
		}
		if d.deliveryDate == nil {
			return d, NewInvalidDocumentError("OccurrenceDateTime element not found")
		}
	}
	if d.despatchAdviceID, err = refDocID(el, "DespatchAdviceReferencedDocument"); err != nil {
		return d, err
	}
	if d.receivingAdviceID, err = refDocID(el, "ReceivingAdviceReferencedDocument"); err != nil {
		return d, err
	}
	return d, nil
}

func parseSettlement(parent *etree.Element) (tradeSettlement, error) {
	el := ramChild(parent, "ApplicableHeaderTradeSettlement")
	if el == nil {
		return tradeSettlement{}, NewInvalidDocumentError("ApplicableHeaderTradeSettlement element not found")
	}
	var s tradeSettlement
	var err error
	if s.currencyCode, err = childText(el, "InvoiceCurrencyCode"); err != nil {
		return s, err
	}
	p := &parser{currency: s.currencyCode}
	if s.creditorReferenceID, err = childTextOptional(el, "CreditorReferenceID"); err != nil {
		return s, err
	}
	if s.paymentReference, err = childTextOptional(el, "PaymentReference"); err != nil {
		return s, err
	}
	if s.taxCurrencyCode, err = childTextOptional(el, "TaxCurrencyCode"); err != nil {
		return s, err
	}
	if s.payee, err = parsePartyOptional(el, "PayeeTradeParty"); err != nil {
		return s, err
	}
	for _, meansEl := range ramChildren(el, "SpecifiedTradeSettlementPaymentMeans") {
		means, err := parsePaymentMeans(meansEl)
		if err != nil {
			return s, err
		}
		s.paymentMeans = append(s.paymentMeans, means)
	}
	for _, taxEl := range ramChildren(el, "ApplicableTradeTax") {
		tax, err := p.parseTax(taxEl)
		if err != nil {
			return s, err
		}
		s.tax = append(s.tax, tax)
	}
	if s.billingPeriod, err = parseBillingPeriod(el); err != nil {
		return s, err
	}
	for _, acEl := range ramChildren(el, "SpecifiedTradeAllowanceCharge") {
		allowance, charge, err := p.parseDocAllowanceCharge(acEl)
		if err != nil {
			return s, err
		}
		if charge != nil {
			s.charges = append(s.charges, *charge)
		} else {
			s.allowances = append(s.allowances, *allowance)
		}
	}
	if s.paymentTerms, err = parsePaymentTerms(el); err != nil {
		return s, err
	}
	if s.summation, err = p.parseSummation(el); err != nil {
		return s, err
	}
	for _, docEl := range ramChildren(el, "InvoiceReferencedDocument") {
		id, err := childText(docEl, "IssuerAssignedID")
		if err != nil {
			return s, err
		}
		date, err := childDateOptional(docEl, "FormattedIssueDateTime")
		if err != nil {
			return s, err
		}
		s.precedingInvoices = append(s.precedingInvoices, model.PrecedingInvoice{ID: id, Date: date})
	}
	for _, accountEl := range ramChildren(el, "ReceivableSpecifiedTradeAccountingAccount") {
		id, err := childText(accountEl, "ID")
		if err != nil {
			return s, err
		}
		s.receiverAccountingIDs = append(s.receiverAccountingIDs, id)
	}
	return s, nil
}

func (p *parser) parseSummation(parent *etree.Element) (settlementSummation, error) {
	el := ramChild(parent, "SpecifiedTradeSettlementHeaderMonetarySummation")
	if el == nil {
		return settlementSummation{},
			NewInvalidDocumentError("SpecifiedTradeSettlementHeaderMonetarySummation element not found")
	}
	var s settlementSummation
	var err error
	if s.lineTotal, err = p.childAmountOptional(el, "LineTotalAmount"); err != nil {
		return s, err
	}
	if s.chargeTotal, err = p.childAmountOptional(el, "ChargeTotalAmount"); err != nil {
		return s, err
	}
	if s.allowanceTotal, err = p.childAmountOptional(el, "AllowanceTotalAmount"); err != nil {
		return s, err
	}
	if s.taxBasisTotal, err = p.childAmount(el, "TaxBasisTotalAmount"); err != nil {
		return s, err
	}
	if s.taxTotals, err = p.childAmounts(el, "TaxTotalAmount"); err != nil {
		return s, err
	}
	if s.rounding, err = p.childAmountOptional(el, "RoundingAmount"); err != nil {
		return s, err
	}
	if s.grandTotal, err = p.childAmount(el, "GrandTotalAmount"); err != nil {
		return s, err
	}
	if s.prepaid, err = p.childAmountOptional(el, "TotalPrepaidAmount"); err != nil {
		return s, err
	}
	if s.duePayable, err = p.childAmount(el, "DuePayableAmount"); err != nil {
		return s, err
	}
	return s, nil
}

func parsePaymentMeans(el *etree.Element) (model.PaymentMeans, error) {
	var m model.PaymentMeans
	typeCode, err := childText(el, "TypeCode")
	if err != nil {
		return m, err
	}
	if !codes.PaymentMeansCode(typeCode).Valid() {
		return m, NewInvalidDocumentError("invalid payment means TypeCode: %s", typeCode)
	}
	m.TypeCode = codes.PaymentMeansCode(typeCode)
	if m.Information, err = childTextOptional(el, "Information"); err != nil {
		return m, err
	}
	if cardEl := ramChild(el, "ApplicableTradeSettlementFinancialCard"); cardEl != nil {
		pan, err := childText(cardEl, "ID")
		if err != nil {
			return m, err
		}
		holder, err := childTextOptional(cardEl, "CardholderName")
		if err != nil {
			return m, err
		}
		m.Card = &model.PaymentCard{PAN: pan, HolderName: holder}
	}
	if payerEl := ramChild(el, "PayerPartyDebtorFinancialAccount"); payerEl != nil {
		if iban := ramChild(payerEl, "IBANID"); iban != nil {
			m.PayerIBAN = iban.Text()
		}
	}
	if accountEl := ramChild(el, "PayeePartyCreditorFinancialAccount"); accountEl != nil {
		account := &model.BankAccount{}
		if account.IBAN, err = childTextOptional(accountEl, "IBANID"); err != nil {
			return m, err
		}
		if account.Name, err = childTextOptional(accountEl, "AccountName"); err != nil {
			return m, err
		}
		if account.BankID, err = childTextOptional(accountEl, "ProprietaryID"); err != nil {
			return m, err
		}
		m.PayeeAccount = account
	}
	if instEl := ramChild(el, "PayeeSpecifiedCreditorFinancialInstitution"); instEl != nil {
		if m.PayeeBIC, err = childTextOptional(instEl, "BICID"); err != nil {
			return m, err
		}
	}
	return m, nil
}

func parseTaxCategory(el *etree.Element) (codes.TaxCategoryCode, *decimal.Decimal, error) {
	typeCode, err := childText(el, "TypeCode")
	if err != nil {
		return "", nil, err
	}
	if typeCode != "VAT" {
		return "", nil, NewInvalidDocumentError("invalid tax TypeCode: %s", typeCode)
	}
	category, err := childText(el, "CategoryCode")
	if err != nil {
		return "", nil, err
	}
	if !codes.TaxCategoryCode(category).Valid() {
		return "", nil, NewInvalidDocumentError("invalid tax CategoryCode: %s", category)
	}
	rate, err := childDecimalOptional(el, "RateApplicablePercent")
	if err != nil {
		return "", nil, err
	}
	return codes.TaxCategoryCode(category), rate, nil
}

func (p *parser) parseTax(el *etree.Element) (model.Tax, error) {
	var t model.Tax
	category, rate, err := parseTaxCategory(el)
	if err != nil {
		return t, err
	}
	t.CategoryCode = category
	t.RatePercent = rate
	if t.CalculatedAmount, err = p.childAmount(el, "CalculatedAmount"); err != nil {
		return t, err
	}
	if t.ExemptionReason, err = childTextOptional(el, "ExemptionReason"); err != nil {
		return t, err
	}
	if t.BasisAmount, err = p.childAmount(el, "BasisAmount"); err != nil {
		return t, err
	}
	if t.ExemptionReasonCode, err = childTextOptional(el, "ExemptionReasonCode"); err != nil {
		return t, err
	}
	if t.TaxPointDate, err = childDateOptional(el, "TaxPointDate"); err != nil {
		return t, err
	}
	dueDateTypeCode, err := childTextOptional(el, "DueDateTypeCode")
	if err != nil {
		return t, err
	}
	if dueDateTypeCode != "" {
		n, err := strconv.Atoi(dueDateTypeCode)
		if err != nil || !codes.PaymentTimeCode(n).Valid() {
			return t, NewInvalidDocumentError("invalid DueDateTypeCode: %s", dueDateTypeCode)
		}
		t.DueDateTypeCode = codes.PaymentTimeCode(n)
	}
	return t, nil
}

func parseBillingPeriod(parent *etree.Element) (*model.Period, error) {
	el := ramChild(parent, "BillingSpecifiedPeriod")
	if el == nil {
		return nil, nil
	}
	start, err := childDate(el, "StartDateTime")
	if err != nil {
		return nil, err
	}
	end, err := childDate(el, "EndDateTime")
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, NewInvalidDocumentError("billing period start date is after its end date")
	}
	return &model.Period{Start: start, End: end}, nil
}

// parseAllowanceCharge parses the shared fields of allowance/charge
// elements. Exactly one of the returned pointers is non-nil.
func (p *parser) parseAllowanceCharge(el *etree.Element) (*model.LineAllowance, *model.LineCharge, error) {
	surcharge, err := childIndicator(el, "ChargeIndicator")
	if err != nil {
		return nil, nil, err
	}
	percent, err := childDecimalOptional(el, "CalculationPercent")
	if err != nil {
		return nil, nil, err
	}
	basis, err := p.childAmountOptional(el, "BasisAmount")
	if err != nil {
		return nil, nil, err
	}
	actual, err := p.childAmount(el, "ActualAmount")
	if err != nil {
		return nil, nil, err
	}
	reasonCode, err := childTextOptional(el, "ReasonCode")
	if err != nil {
		return nil, nil, err
	}
	reason, err := childTextOptional(el, "Reason")
	if err != nil {
		return nil, nil, err
	}
	if surcharge {
		charge := &model.LineCharge{
			ActualAmount: actual,
			Reason:       reason,
			Percent:      percent,
			BasisAmount:  basis,
		}
		if reasonCode != "" {
			if !codes.SpecialServiceCode(reasonCode).Valid() {
				return nil, nil, NewInvalidDocumentError("invalid charge ReasonCode: %s", reasonCode)
			}
			charge.ReasonCode = codes.SpecialServiceCode(reasonCode)
		}
		return nil, charge, nil
	}
	allowance := &model.LineAllowance{
		ActualAmount: actual,
		Reason:       reason,
		Percent:      percent,
		BasisAmount:  basis,
	}
	if reasonCode != "" {
		n, err := strconv.Atoi(reasonCode)
		if err != nil || !codes.AllowanceChargeCode(n).Valid() {
			return nil, nil, NewInvalidDocumentError("invalid allowance ReasonCode: %s", reasonCode)
		}
		allowance.ReasonCode = codes.AllowanceChargeCode(n)
	}
	return allowance, nil, nil
}

func (p *parser) parseDocAllowanceCharge(el *etree.Element) (*model.DocumentAllowance, *model.DocumentCharge, error) {
	allowance, charge, err := p.parseAllowanceCharge(el)
	if err != nil {
		return nil, nil, err
	}
	taxEl := ramChild(el, "CategoryTradeTax")
	if taxEl == nil {
		return nil, nil, NewInvalidDocumentError("CategoryTradeTax element not found")
	}
	category, rate, err := parseTaxCategory(taxEl)
	if err != nil {
		return nil, nil, err
	}
	if charge != nil {
		return nil, &model.DocumentCharge{
			LineCharge:  *charge,
			TaxCategory: category,
			TaxRate:     rate,
		}, nil
	}
	return &model.DocumentAllowance{
		LineAllowance: *allowance,
		TaxCategory:   category,
		TaxRate:       rate,
	}, nil, nil
}

func parsePaymentTerms(parent *etree.Element) (*model.PaymentTerms, error) {
	el := ramChild(parent, "SpecifiedTradePaymentTerms")
	if el == nil {
		return nil, nil
	}
	var terms model.PaymentTerms
	var err error
	if terms.Description, err = childTextOptional(el, "Description"); err != nil {
		return nil, err
	}
	if terms.DueDate, err = childDateOptional(el, "DueDateDateTime"); err != nil {
		return nil, err
	}
	if terms.DirectDebitMandateID, err = childTextOptional(el, "DirectDebitMandateID"); err != nil {
		return nil, err
	}
	return &terms, nil
}

func parseReferenceDocument(el *etree.Element) (model.ReferenceDocument, error) {
	var doc model.ReferenceDocument
	id, err := childText(el, "IssuerAssignedID")
	if err != nil {
		return doc, err
	}
	doc.ID = id
	typeCodeText, err := childText(el, "TypeCode")
	if err != nil {
		return doc, err
	}
	n, err := strconv.Atoi(typeCodeText)
	if err != nil || !codes.DocumentTypeCode(n).Valid() {
		return doc, NewInvalidDocumentError("invalid TypeCode: %s", typeCodeText)
	}
	doc.TypeCode = codes.DocumentTypeCode(n)
	if doc.URL, err = childTextOptional(el, "URIID"); err != nil {
		return doc, err
	}
	if doc.Name, err = childTextOptional(el, "Name"); err != nil {
		return doc, err
	}
	if doc.Attachment, err = parseAttachment(el); err != nil {
		return doc, err
	}
	refTypeCode, err := childTextOptional(el, "ReferenceTypeCode")
	if err != nil {
		return doc, err
	}
	if refTypeCode != "" {
		if !codes.ReferenceQualifierCode(refTypeCode).Valid() {
			return doc, NewInvalidDocumentError("invalid ReferenceTypeCode: %s", refTypeCode)
		}
		doc.ReferenceTypeCode = codes.ReferenceQualifierCode(refTypeCode)
	}
	return doc, nil
}

func parseAttachment(parent *etree.Element) (*model.Attachment, error) {
	el := ramChild(parent, "AttachmentBinaryObject")
	if el == nil {
		return nil, nil
	}
	if el.Text() == "" {
		return nil, NewInvalidDocumentError("AttachmentBinaryObject element has no text")
	}
	mimeType := el.SelectAttrValue("mimeCode", "")
	if mimeType == "" {
		return nil, NewInvalidDocumentError("AttachmentBinaryObject has no mimeCode")
	}
	if !codes.MIMETypeAllowed(mimeType) {
		return nil, NewInvalidDocumentError("MIME type not allowed: %s", mimeType)
	}
	filename := el.SelectAttrValue("filename", "")
	if filename == "" {
		return nil, NewInvalidDocumentError("AttachmentBinaryObject has no filename")
	}
	content, err := base64.StdEncoding.DecodeString(el.Text())
	if err != nil {
		return nil, NewInvalidDocumentError("invalid attachment content: %v", err)
	}
	return &model.Attachment{Content: content, MIMEType: mimeType, Filename: filename}, nil
}

//
// Trade parties
//

func parsePartyRequired(parent *etree.Element, tag string) (*model.TradeParty, error) {
	party, err := parsePartyOptional(parent, tag)
	if err != nil {
		return nil, err
	}
	if party == nil {
		return nil, NewInvalidDocumentError("%s element not found", tag)
	}
	return party, nil
}

func parsePartyOptional(parent *etree.Element, tag string) (*model.TradeParty, error) {
	el := ramChild(parent, tag)
	if el == nil {
		return nil, nil
	}
	var party model.TradeParty
	var err error
	if party.IDs, err = childTexts(el, "ID"); err != nil {
		return nil, err
	}
	if party.GlobalIDs, err = childIDs(el, "GlobalID"); err != nil {
		return nil, err
	}
	// The name is required for every role except the ship-to party;
	// profile validation enforces that after assembly.
	if party.Name, err = childTextOptional(el, "Name"); err != nil {
		return nil, err
	}
	if party.Description, err = childTextOptional(el, "Description"); err != nil {
		return nil, err
	}
	if legalEl := ramChild(el, "SpecifiedLegalOrganization"); legalEl != nil {
		if party.LegalID, err = childIDOptional(legalEl, "ID"); err != nil {
			return nil, err
		}
		if party.TradingBusinessName, err = childTextOptional(legalEl, "TradingBusinessName"); err != nil {
			return nil, err
		}
	}
	for _, contactEl := range ramChildren(el, "DefinedTradeContact") {
		contact, err := parseContact(contactEl)
		if err != nil {
			return nil, err
		}
		party.Contacts = append(party.Contacts, contact)
	}
	if party.Address, err = parseAddress(el); err != nil {
		return nil, err
	}
	if party.Email, err = parseEmail(el); err != nil {
		return nil, err
	}
	for _, regEl := range ramChildren(el, "SpecifiedTaxRegistration") {
		isVATID, id, err := parseTaxRegistration(regEl)
		if err != nil {
			return nil, err
		}
		if isVATID {
			if party.VATID != "" {
				return nil, NewInvalidDocumentError("multiple VAT IDs found")
			}
			party.VATID = id
		} else {
			if party.TaxNumber != "" {
				return nil, NewInvalidDocumentError("multiple tax numbers found")
			}
			party.TaxNumber = id
		}
	}
	return &party, nil
}

func parseContact(el *etree.Element) (model.TradeContact, error) {
	var contact model.TradeContact
	var err error
	if contact.PersonName, err = childTextOptional(el, "PersonName"); err != nil {
		return contact, err
	}
	if contact.DepartmentName, err = childTextOptional(el, "DepartmentName"); err != nil {
		return contact, err
	}
	if phoneEl := ramChild(el, "TelephoneUniversalCommunication"); phoneEl != nil {
		if contact.Phone, err = childTextOptional(phoneEl, "CompleteNumber"); err != nil {
			return contact, err
		}
	}
	if emailEl := ramChild(el, "EmailURIUniversalCommunication"); emailEl != nil {
		if contact.Email, err = childTextOptional(emailEl, "URIID"); err != nil {
			return contact, err
		}
		contact.Email = strings.TrimPrefix(contact.Email, "mailto:")
	}
	return contact, nil
}

func parseAddress(parent *etree.Element) (*model.PostalAddress, error) {
	el := ramChild(parent, "PostalTradeAddress")
	if el == nil {
		return nil, nil
	}
	var a model.PostalAddress
	var err error
	if a.PostCode, err = childTextOptional(el, "PostcodeCode"); err != nil {
		return nil, err
	}
	if a.LineOne, err = childTextOptional(el, "LineOne"); err != nil {
		return nil, err
	}
	if a.LineTwo, err = childTextOptional(el, "LineTwo"); err != nil {
		return nil, err
	}
	if a.LineThree, err = childTextOptional(el, "LineThree"); err != nil {
		return nil, err
	}
	if a.City, err = childTextOptional(el, "CityName"); err != nil {
		return nil, err
	}
	if a.CountryCode, err = childText(el, "CountryID"); err != nil {
		return nil, err
	}
	if a.CountrySubdivision, err = childTextOptional(el, "CountrySubDivisionName"); err != nil {
		return nil, err
	}
	return &a, nil
}

func parseEmail(parent *etree.Element) (string, error) {
	el := ramChild(parent, "URIUniversalCommunication")
	if el == nil {
		return "", nil
	}
	id := ramChild(el, "URIID")
	if id == nil {
		return "", nil
	}
	if id.SelectAttrValue("schemeID", "") != "EM" {
		return "", NewInvalidDocumentError("invalid schemeID for email")
	}
	if id.Text() == "" {
		return "", NewInvalidDocumentError("URIID element has no text")
	}
	return strings.TrimPrefix(id.Text(), "mailto:"), nil
}

func parseTaxRegistration(el *etree.Element) (bool, string, error) {
	id := ramChild(el, "ID")
	if id == nil {
		return false, "", NewInvalidDocumentError("ID element not found in SpecifiedTaxRegistration")
	}
	if id.Text() == "" {
		return false, "", NewInvalidDocumentError("ID element has no text")
	}
	switch id.SelectAttrValue("schemeID", "") {
	case "FC":
		return false, id.Text(), nil
	case "VA":
		return true, id.Text(), nil
	}
	return false, "", NewInvalidDocumentError("invalid tax registration schemeID")
}
