package model

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/money"
)

// Tax is one entry of the invoice's VAT breakdown.
type Tax struct {
	CalculatedAmount money.Money
	BasisAmount      money.Money
	RatePercent      *decimal.Decimal
	CategoryCode     codes.TaxCategoryCode

	ExemptionReason     string
	ExemptionReasonCode string
	TaxPointDate        *time.Time
	DueDateTypeCode     codes.PaymentTimeCode // zero when no code is given
}

func (t *Tax) validate(p Profile) error {
	if !t.CategoryCode.Valid() {
		return NewModelError("invalid tax category code: %s", string(t.CategoryCode))
	}
	if t.DueDateTypeCode != 0 && !t.DueDateTypeCode.IsInvoiceDueDate() {
		return NewModelError("invalid due date type code: %d", int(t.DueDateTypeCode))
	}
	if t.RatePercent == nil && t.CategoryCode.RequiresExemptionReason() &&
		t.ExemptionReason == "" && t.ExemptionReasonCode == "" {
		return NewModelError("tax category %s requires an exemption reason", string(t.CategoryCode))
	}
	if !p.AtLeast(ProfileEN16931) && t.TaxPointDate != nil {
		return NewModelError("tax point date is not allowed in the %s profile", p)
	}
	return nil
}

// PaymentMeans states how the invoice is to be paid.
type PaymentMeans struct {
	TypeCode     codes.PaymentMeansCode
	PayeeAccount *BankAccount
	PayeeBIC     string
	Information  string

	Card      *PaymentCard
	PayerIBAN string
}

func (pm *PaymentMeans) validate(p Profile) error {
	if !pm.TypeCode.Valid() {
		return NewModelError("invalid payment means code: %s", string(pm.TypeCode))
	}
	if !p.AtLeast(ProfileEN16931) {
		if pm.Information != "" {
			return NewModelError("payment means information is not allowed in the %s profile", p)
		}
		if pm.Card != nil {
			return NewModelError("payment means card information is not allowed in the %s profile", p)
		}
		if pm.PayeeAccount != nil && pm.PayeeAccount.Name != "" {
			return NewModelError("payment means account name is not allowed in the %s profile", p)
		}
		if pm.PayeeBIC != "" {
			return NewModelError("payment means BIC is not allowed in the %s profile", p)
		}
	}
	return nil
}

// PaymentTerms states when and how payment is due.
type PaymentTerms struct {
	Description          string // EN 16931 and up
	DueDate              *time.Time
	DirectDebitMandateID string
}

func (pt *PaymentTerms) validate(p Profile) error {
	if !p.AtLeast(ProfileEN16931) && pt.Description != "" {
		return NewModelError("payment terms description is not allowed in the %s profile", p)
	}
	return nil
}

// ReferenceDocument is a supporting document referenced by or embedded
// in an invoice.
type ReferenceDocument struct {
	ID         string
	TypeCode   codes.DocumentTypeCode
	Name       string
	URL        string
	Attachment *Attachment

	ReferenceTypeCode codes.ReferenceQualifierCode // empty when unqualified
}

func (rd *ReferenceDocument) validate() error {
	if !rd.TypeCode.IsSupportingDocumentType() {
		return NewModelError("invalid reference document type code: %d", int(rd.TypeCode))
	}
	if rd.ReferenceTypeCode != "" && !rd.ReferenceTypeCode.Valid() {
		return NewModelError("invalid reference qualifier code: %s", string(rd.ReferenceTypeCode))
	}
	if rd.Attachment != nil && !codes.MIMETypeAllowed(rd.Attachment.MIMEType) {
		return NewModelError("attachment MIME type %s is not allowed", rd.Attachment.MIMEType)
	}
	return nil
}
