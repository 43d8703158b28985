// Package codes defines the closed UNTDID/UNECE code lists used by
// Factur-X documents. Each list carries only the values admitted by
// EN 16931; anything outside a list is rejected at validation time.
package codes

// DocumentTypeCode is a document type defined in UNTDID 1001.
type DocumentTypeCode int

const (
	ValidatedPricedTender DocumentTypeCode = 50
	InvoicingDataSheet    DocumentTypeCode = 130
	ProFormaInvoice       DocumentTypeCode = 325
	PartialInvoice        DocumentTypeCode = 326
	Invoice               DocumentTypeCode = 380
	CreditNote            DocumentTypeCode = 381
	Correction            DocumentTypeCode = 384
	Prepayment            DocumentTypeCode = 386
	RelatedDocument       DocumentTypeCode = 916
)

var documentTypeNames = map[DocumentTypeCode]string{
	ValidatedPricedTender: "Validated Priced Tender",
	InvoicingDataSheet:    "Invoicing Data Sheet",
	ProFormaInvoice:       "Pro Forma Invoice",
	PartialInvoice:        "Partial Invoice",
	Invoice:               "Invoice",
	CreditNote:            "Credit Note",
	Correction:            "Correction",
	Prepayment:            "Prepayment",
	RelatedDocument:       "Related Document",
}

// Valid reports whether c is a known document type code.
func (c DocumentTypeCode) Valid() bool {
	_, ok := documentTypeNames[c]
	return ok
}

// Name returns the display name of the code, or "" if unknown.
func (c DocumentTypeCode) Name() string {
	return documentTypeNames[c]
}

// IsInvoiceType reports whether c denotes an invoice-class document.
func (c DocumentTypeCode) IsInvoiceType() bool {
	switch c {
	case ProFormaInvoice, PartialInvoice, Invoice, CreditNote, Correction, Prepayment:
		return true
	}
	return false
}

// IsSupportingDocumentType reports whether c denotes a supporting
// document attached to an invoice.
func (c DocumentTypeCode) IsSupportingDocumentType() bool {
	switch c {
	case ValidatedPricedTender, InvoicingDataSheet, RelatedDocument:
		return true
	}
	return false
}

// IdentifierSchemeCode is an identifier scheme defined in ISO/IEC 6523.
type IdentifierSchemeCode string

const (
	SchemeGLN  IdentifierSchemeCode = "0088"
	SchemeGTIN IdentifierSchemeCode = "0160"
)

// Valid reports whether c is a known identifier scheme code.
func (c IdentifierSchemeCode) Valid() bool {
	return c == SchemeGLN || c == SchemeGTIN
}

// ReferenceQualifierCode is a reference qualifier defined in UNTDID 1153.
type ReferenceQualifierCode string

const (
	PriceListVersion ReferenceQualifierCode = "PI"
)

var referenceQualifierNames = map[ReferenceQualifierCode]string{
	PriceListVersion: "Price List Version",
}

// Valid reports whether c is a known reference qualifier code.
func (c ReferenceQualifierCode) Valid() bool {
	_, ok := referenceQualifierNames[c]
	return ok
}

// Name returns the display name of the code, or "" if unknown.
func (c ReferenceQualifierCode) Name() string {
	return referenceQualifierNames[c]
}

// PaymentTimeCode is a payment time reference defined in UNTDID 2475.
type PaymentTimeCode int

const (
	InvoiceDate  PaymentTimeCode = 5
	DeliveryDate PaymentTimeCode = 29
	PaymentDate  PaymentTimeCode = 72
)

var paymentTimeNames = map[PaymentTimeCode]string{
	InvoiceDate:  "Invoice Date",
	DeliveryDate: "Delivery Date",
	PaymentDate:  "Payment Date",
}

// Valid reports whether c is a known payment time code.
func (c PaymentTimeCode) Valid() bool {
	_, ok := paymentTimeNames[c]
	return ok
}

// Name returns the display name of the code, or "" if unknown.
func (c PaymentTimeCode) Name() string {
	return paymentTimeNames[c]
}

// IsInvoiceDueDate reports whether c may qualify a VAT due date.
func (c PaymentTimeCode) IsInvoiceDueDate() bool {
	switch c {
	case InvoiceDate, DeliveryDate, PaymentDate:
		return true
	}
	return false
}

// TextSubjectCode is a text subject qualifier defined in UNTDID 4451.
type TextSubjectCode string

const (
	GeneralInformation    TextSubjectCode = "AAI"
	CommentsBySeller      TextSubjectCode = "SUR"
	RegulatoryInformation TextSubjectCode = "REG"
	LegalInformation      TextSubjectCode = "ABL"
	TaxInformation        TextSubjectCode = "TXD"
	CustomsInformation    TextSubjectCode = "CUS"
	Title                 TextSubjectCode = "AFM"
)

var textSubjectNames = map[TextSubjectCode]string{
	GeneralInformation:    "General Information",
	CommentsBySeller:      "Comments by Seller",
	RegulatoryInformation: "Regulatory Information",
	LegalInformation:      "Legal Information",
	TaxInformation:        "Tax Information",
	CustomsInformation:    "Customs Information",
	Title:                 "Title",
}

// Valid reports whether c is a known text subject code.
func (c TextSubjectCode) Valid() bool {
	_, ok := textSubjectNames[c]
	return ok
}

// Name returns the display name of the code, or "" if unknown.
func (c TextSubjectCode) Name() string {
	return textSubjectNames[c]
}

// PaymentMeansCode is a payment means defined in UNTDID 4461.
type PaymentMeansCode string

const (
	PaymentNotDefined      PaymentMeansCode = "1"
	Species                PaymentMeansCode = "10"
	Check                  PaymentMeansCode = "20"
	Transfer               PaymentMeansCode = "30"
	BankPayment            PaymentMeansCode = "42"
	CreditCard             PaymentMeansCode = "48"
	DirectDebit            PaymentMeansCode = "49"
	StandingAgreement      PaymentMeansCode = "57"
	SEPACreditTransfer     PaymentMeansCode = "58"
	SEPADirectDebit        PaymentMeansCode = "59"
	ClearingBetweenParties PaymentMeansCode = "97"
	InterimAgreement       PaymentMeansCode = "ZZZ"
)

var paymentMeansNames = map[PaymentMeansCode]string{
	PaymentNotDefined:      "Instrument not defined",
	Species:                "Species",
	Check:                  "Check",
	Transfer:               "Transfer",
	BankPayment:            "Bank Payment",
	CreditCard:             "Credit Card",
	DirectDebit:            "Direct Debit",
	StandingAgreement:      "Standing Agreement",
	SEPACreditTransfer:     "SEPA Credit Transfer",
	SEPADirectDebit:        "SEPA Direct Debit",
	ClearingBetweenParties: "Report",
	InterimAgreement:       "Interim Agreement",
}

// Valid reports whether c is a known payment means code.
func (c PaymentMeansCode) Valid() bool {
	_, ok := paymentMeansNames[c]
	return ok
}

// Name returns the display name of the code, or "" if unknown.
func (c PaymentMeansCode) Name() string {
	return paymentMeansNames[c]
}

// AllowanceChargeCode is an allowance reason code defined in EN 16931.
// Despite the standard saying different, these codes only partially
// correspond to UNTDID 5189.
type AllowanceChargeCode int

const (
	AheadOfSchedule AllowanceChargeCode = 41
)

// Valid reports whether c is a known allowance reason code.
func (c AllowanceChargeCode) Valid() bool {
	return c == AheadOfSchedule
}

// TaxCategoryCode is a duty/tax/fee category defined in UNTDID 5305,
// extended by EN 16931.
type TaxCategoryCode string

const (
	ReverseCharge        TaxCategoryCode = "AE"
	Exempt               TaxCategoryCode = "E"
	FreeExport           TaxCategoryCode = "G"
	IntraCommunityExempt TaxCategoryCode = "K"
	CanaryIslandsTax     TaxCategoryCode = "L"
	CeutaMelillaTax      TaxCategoryCode = "M"
	OutOfScope           TaxCategoryCode = "O"
	StandardRate         TaxCategoryCode = "S"
	ZeroRate             TaxCategoryCode = "Z"
)

// Valid reports whether c is a known tax category code.
func (c TaxCategoryCode) Valid() bool {
	switch c {
	case ReverseCharge, Exempt, FreeExport, IntraCommunityExempt,
		CanaryIslandsTax, CeutaMelillaTax, OutOfScope, StandardRate, ZeroRate:
		return true
	}
	return false
}

// RequiresExemptionReason reports whether a zero-rate entry in this
// category must state why no tax is due.
func (c TaxCategoryCode) RequiresExemptionReason() bool {
	switch c {
	case Exempt, ReverseCharge, IntraCommunityExempt, FreeExport, OutOfScope:
		return true
	}
	return false
}

// ItemTypeCode is an item type identification defined in UNTDID 7143.
type ItemTypeCode string

const (
	ISBN ItemTypeCode = "IB"
	ISSN ItemTypeCode = "IS"
)

// Valid reports whether c is a known item type code.
func (c ItemTypeCode) Valid() bool {
	return c == ISBN || c == ISSN
}

// SpecialServiceCode is a surcharge reason defined in UNTDID 7161.
type SpecialServiceCode string

const (
	MaterialSurcharge SpecialServiceCode = "MC"
)

// Valid reports whether c is a known special service code.
func (c SpecialServiceCode) Valid() bool {
	return c == MaterialSurcharge
}

// AllowedMIMETypes lists the attachment content types admitted by
// EN 16931 for embedded supporting documents.
var AllowedMIMETypes = []string{
	"application/pdf",
	"image/png",
	"image/jpeg",
	"text/csv",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"application/vnd.oasis.opendocument.spreadsheet",
}

// MIMETypeAllowed reports whether mime may be used for an embedded
// attachment.
func MIMETypeAllowed(mime string) bool {
	for _, m := range AllowedMIMETypes {
		if m == mime {
			return true
		}
	}
	return false
}
