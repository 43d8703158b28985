package facturx

import (
	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
)

// Re-export core types for public API
type (
	Invoice        = model.Invoice
	MinimumInvoice = model.MinimumInvoice
	BasicWLInvoice = model.BasicWLInvoice
	BasicInvoice   = model.BasicInvoice
	EN16931Invoice = model.EN16931Invoice

	Profile = model.Profile

	TradeParty        = model.TradeParty
	PostalAddress     = model.PostalAddress
	TradeContact      = model.TradeContact
	Tax               = model.Tax
	Period            = model.Period
	IncludedNote      = model.IncludedNote
	PaymentMeans      = model.PaymentMeans
	PaymentTerms      = model.PaymentTerms
	BankAccount       = model.BankAccount
	DocumentAllowance = model.DocumentAllowance
	DocumentCharge    = model.DocumentCharge
	PrecedingInvoice  = model.PrecedingInvoice
	ReferenceDocument = model.ReferenceDocument
	Attachment        = model.Attachment
	ProcuringProject  = model.ProcuringProject

	TradeLineItem   = model.TradeLineItem
	LineItem        = model.LineItem
	EN16931LineItem = model.EN16931LineItem
	GrossPrice      = model.GrossPrice
	LineAllowance   = model.LineAllowance
	LineCharge      = model.LineCharge

	Money            = money.Money
	Quantity         = money.Quantity
	OptionalQuantity = money.OptionalQuantity
)

// Re-export profile constants
const (
	ProfileMinimum = model.ProfileMinimum
	ProfileBasicWL = model.ProfileBasicWL
	ProfileBasic   = model.ProfileBasic
	ProfileEN16931 = model.ProfileEN16931
)

// Re-export code list types
type (
	DocumentTypeCode = codes.DocumentTypeCode
	TaxCategoryCode  = codes.TaxCategoryCode
	PaymentMeansCode = codes.PaymentMeansCode
	UnitCode         = codes.UnitCode
)

// Re-export frequently used code values; the full lists live in the
// code tables.
const (
	InvoiceType        = codes.Invoice
	CreditNoteType     = codes.CreditNote
	StandardRate       = codes.StandardRate
	SEPACreditTransfer = codes.SEPACreditTransfer
	UnitPiece          = codes.UnitPiece
	UnitOne            = codes.UnitOne
)

// Re-export error types
type (
	ModelError              = model.ModelError
	ParseError              = cii.ParseError
	NotInvoiceError         = cii.NotInvoiceError
	InvalidDocumentError    = cii.InvalidDocumentError
	UnsupportedProfileError = cii.UnsupportedProfileError
	ProfileError            = cii.ProfileError
)
