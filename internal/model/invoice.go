// Package model holds the Factur-X document model: one invoice variant
// per conformance profile, the nested trade entities, and the
// profile-scoped business rules. Validation is pure and re-runnable;
// mutate-then-revalidate is well-defined.
package model

import (
	"time"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/money"
)

// Invoice is implemented by the per-profile invoice variants. The
// profile is fixed by the concrete type, not a mode switch.
type Invoice interface {
	Profile() Profile
	// Validate runs all business rules for the document's profile.
	Validate() error
}

// MinimumInvoice is an invoice of the MINIMUM profile.
type MinimumInvoice struct {
	InvoiceNumber string
	TypeCode      codes.DocumentTypeCode
	InvoiceDate   time.Time
	Seller        TradeParty
	Buyer         TradeParty
	CurrencyCode  string

	LineTotal     *money.Money // required from BASIC WL on
	TaxBasisTotal money.Money
	TaxTotals     []money.Money
	GrandTotal    money.Money
	DuePayable    money.Money

	BusinessProcessID string
	BuyerReference    string
	BuyerOrderID      string
}

func (inv *MinimumInvoice) Profile() Profile { return ProfileMinimum }

func (inv *MinimumInvoice) Validate() error {
	return inv.validate(ProfileMinimum, nil)
}

func (inv *MinimumInvoice) validate(p Profile, taxRep *TradeParty) error {
	if !inv.TypeCode.IsInvoiceType() {
		return NewModelError("invalid invoice type code: %d", int(inv.TypeCode))
	}
	if err := inv.Seller.validate(p, roleSeller); err != nil {
		return err
	}
	if err := inv.Buyer.validate(p, roleBuyer); err != nil {
		return err
	}
	if !money.ValidCurrency(inv.CurrencyCode) {
		return NewModelError("invalid ISO 4217 currency code")
	}
	if !inv.Seller.HasTaxRegistration() && taxRep == nil {
		return NewModelError("seller must have a tax registration")
	}
	if p == ProfileMinimum && len(inv.TaxTotals) > 1 {
		return NewModelError("multiple tax total amounts are not allowed in the MINIMUM profile")
	}
	return nil
}

// BasicWLInvoice is an invoice of the BASIC WL profile: the document
// level of a full invoice, without line items.
type BasicWLInvoice struct {
	MinimumInvoice

	Tax []Tax // at least one entry

	ChargeTotal    *money.Money
	AllowanceTotal *money.Money
	PrepaidAmount  *money.Money

	Payee                   *TradeParty
	DeliveryDate            *time.Time
	BillingPeriod           *Period
	Allowances              []DocumentAllowance
	Charges                 []DocumentCharge
	Notes                   []IncludedNote
	SellerTaxRepresentative *TradeParty
	ContractID              string
	ShipTo                  *TradeParty
	DespatchAdviceID        string
	SEPAReference           string
	PaymentReference        string
	PaymentMeans            []PaymentMeans
	PaymentTerms            *PaymentTerms
	PrecedingInvoices       []PrecedingInvoice
	ReceiverAccountingIDs   []string
}

func (inv *BasicWLInvoice) Profile() Profile { return ProfileBasicWL }

func (inv *BasicWLInvoice) Validate() error {
	return inv.validate(ProfileBasicWL)
}

func (inv *BasicWLInvoice) validate(p Profile) error {
	if err := inv.MinimumInvoice.validate(p, inv.SellerTaxRepresentative); err != nil {
		return err
	}
	if inv.LineTotal == nil {
		return NewModelError("line total amount is required in the BASIC WL profile")
	}
	if len(inv.Tax) < 1 {
		return NewModelError("at least one tax entry is required")
	}
	for i := range inv.Tax {
		if err := inv.Tax[i].validate(p); err != nil {
			return err
		}
	}
	if inv.Payee != nil {
		if err := inv.Payee.validate(p, rolePayee); err != nil {
			return err
		}
	}
	if inv.SellerTaxRepresentative != nil {
		if err := inv.SellerTaxRepresentative.validate(p, roleTaxRep); err != nil {
			return err
		}
	}
	if inv.ShipTo != nil {
		if err := inv.ShipTo.validate(p, roleShipTo); err != nil {
			return err
		}
	}
	for i := range inv.Allowances {
		if err := inv.Allowances[i].validate(); err != nil {
			return err
		}
	}
	for i := range inv.Charges {
		if err := inv.Charges[i].validate(); err != nil {
			return err
		}
	}
	for i := range inv.PaymentMeans {
		if err := inv.PaymentMeans[i].validate(p); err != nil {
			return err
		}
	}
	if inv.PaymentTerms != nil {
		if err := inv.PaymentTerms.validate(p); err != nil {
			return err
		}
	}
	if len(inv.TaxTotals) > 2 {
		return NewModelError("multiple tax total amounts are not allowed in the %s profile", p)
	}
	if inv.BillingPeriod != nil && inv.BillingPeriod.End.Before(inv.BillingPeriod.Start) {
		panic("billing period start date must not be after its end date")
	}
	return nil
}

// BasicInvoice is an invoice of the BASIC profile.
type BasicInvoice struct {
	BasicWLInvoice

	LineItems []TradeLineItem // at least one item
}

func (inv *BasicInvoice) Profile() Profile { return ProfileBasic }

func (inv *BasicInvoice) Validate() error {
	return inv.validate(ProfileBasic)
}

func (inv *BasicInvoice) validate(p Profile) error {
	if err := inv.BasicWLInvoice.validate(p); err != nil {
		return err
	}
	if len(inv.LineItems) < 1 {
		return NewModelError("at least one line item is required")
	}
	for _, li := range inv.LineItems {
		if !p.AtLeast(ProfileEN16931) {
			if _, ok := li.(*EN16931LineItem); ok {
				return NewModelError("EN 16931 line items are not allowed in the %s profile", p)
			}
		}
		if err := validateLineItem(li, p); err != nil {
			return err
		}
	}
	if len(inv.ReceiverAccountingIDs) > 1 {
		return NewModelError("multiple accounting reference IDs are not allowed in the %s profile", p)
	}
	return nil
}

func validateLineItem(li TradeLineItem, p Profile) error {
	switch v := li.(type) {
	case *EN16931LineItem:
		return v.validate(p)
	case *LineItem:
		return v.validate(p)
	default:
		return NewModelError("unsupported line item type")
	}
}

// EN16931Invoice is an invoice of the EN 16931 (COMFORT) profile.
type EN16931Invoice struct {
	BasicInvoice

	ReceivingAdviceID string
	RoundingAmount    *money.Money
	SellerOrderID     string
	ReferencedDocs    []ReferenceDocument
	ProcuringProject  *ProcuringProject
	TaxCurrencyCode   string
}

func (inv *EN16931Invoice) Profile() Profile { return ProfileEN16931 }

func (inv *EN16931Invoice) Validate() error {
	if err := inv.BasicInvoice.validate(ProfileEN16931); err != nil {
		return err
	}
	for i := range inv.ReferencedDocs {
		if err := inv.ReferencedDocs[i].validate(); err != nil {
			return err
		}
	}
	if inv.TaxCurrencyCode != "" && !money.ValidCurrency(inv.TaxCurrencyCode) {
		return NewModelError("invalid ISO 4217 currency code")
	}
	return nil
}

// AsMinimum returns the MINIMUM-level view of any invoice variant.
func AsMinimum(inv Invoice) *MinimumInvoice {
	switch v := inv.(type) {
	case *MinimumInvoice:
		return v
	case *BasicWLInvoice:
		return &v.MinimumInvoice
	case *BasicInvoice:
		return &v.MinimumInvoice
	case *EN16931Invoice:
		return &v.MinimumInvoice
	}
	return nil
}

// AsBasicWL returns the BASIC WL-level view of an invoice, or nil for a
// MINIMUM document.
func AsBasicWL(inv Invoice) *BasicWLInvoice {
	switch v := inv.(type) {
	case *BasicWLInvoice:
		return v
	case *BasicInvoice:
		return &v.BasicWLInvoice
	case *EN16931Invoice:
		return &v.BasicWLInvoice
	}
	return nil
}

// AsBasic returns the BASIC-level view of an invoice, or nil for lower
// profiles.
func AsBasic(inv Invoice) *BasicInvoice {
	switch v := inv.(type) {
	case *BasicInvoice:
		return v
	case *EN16931Invoice:
		return &v.BasicInvoice
	}
	return nil
}

// AsEN16931 returns the invoice as an EN 16931 document, or nil for
// lower profiles.
func AsEN16931(inv Invoice) *EN16931Invoice {
	if v, ok := inv.(*EN16931Invoice); ok {
		return v
	}
	return nil
}
