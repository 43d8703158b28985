package model

import (
	"github.com/shopspring/decimal"

	"github.com/rezonia/facturx/internal/codes"
	"github.com/rezonia/facturx/internal/money"
)

// TradeLineItem is implemented by the per-profile line item variants.
type TradeLineItem interface {
	// Base returns the fields shared by all line item variants.
	Base() *LineItem
}

// LineItem is an invoice line as available in the BASIC profile.
type LineItem struct {
	ID             string
	Name           string
	NetPrice       money.Money
	BilledQuantity money.Quantity
	BilledTotal    money.Money
	TaxRate        *decimal.Decimal
	TaxCategory    codes.TaxCategoryCode
	GlobalID       *ID

	BasisQuantity *money.OptionalQuantity
	Allowances    []LineAllowance
	Charges       []LineCharge
}

func (li *LineItem) Base() *LineItem { return li }

func (li *LineItem) validate(p Profile) error {
	if !li.TaxCategory.Valid() {
		return NewModelError("invalid tax category code: %s", string(li.TaxCategory))
	}
	if li.GlobalID != nil && li.GlobalID.Scheme == "" {
		return NewModelError("global ID scheme ID is required")
	}
	for i := range li.Allowances {
		if err := li.Allowances[i].validate(p); err != nil {
			return err
		}
	}
	for i := range li.Charges {
		if err := li.Charges[i].validate(p); err != nil {
			return err
		}
	}
	return nil
}

// GrossPrice is a line item's unit price before allowances and charges.
// At most one of Allowance and Charge may be set.
type GrossPrice struct {
	Price         money.Money
	BasisQuantity *money.OptionalQuantity
	Allowance     *LineAllowance
	Charge        *LineCharge
}

// EN16931LineItem is an invoice line with the additional attributes of
// the EN 16931 profile.
type EN16931LineItem struct {
	LineItem

	Description      string
	Note             *IncludedNote
	GrossPrice       *GrossPrice
	SellerAssignedID string
	BuyerAssignedID  string
	Characteristics  []ProductCharacteristic
	Classifications  []ProductClassification
	OriginCountry    string
	BuyerOrderLineID string
	BillingPeriod    *Period
	DocRef           *DocRef
	TradeAccountID   string
}

func (li *EN16931LineItem) validate(p Profile) error {
	if err := li.LineItem.validate(p); err != nil {
		return err
	}
	if li.Note != nil && li.Note.SubjectCode != "" {
		return NewModelError("line item note subject codes are not allowed in the %s profile", p)
	}
	if li.GrossPrice != nil && li.GrossPrice.Allowance != nil && li.GrossPrice.Charge != nil {
		return NewModelError("gross price may carry an allowance or a charge, not both")
	}
	if li.OriginCountry != "" && !ValidCountry(li.OriginCountry) {
		return NewModelError("invalid ISO 3166-1 alpha-2 country code")
	}
	if li.DocRef != nil && li.DocRef.ReferenceTypeCode != "" && !li.DocRef.ReferenceTypeCode.Valid() {
		return NewModelError("invalid reference qualifier code: %s", string(li.DocRef.ReferenceTypeCode))
	}
	if li.BillingPeriod != nil && li.BillingPeriod.End.Before(li.BillingPeriod.Start) {
		panic("billing period start date must not be after its end date")
	}
	return nil
}

// LineAllowance is a discount on a line item.
type LineAllowance struct {
	ActualAmount money.Money
	ReasonCode   codes.AllowanceChargeCode // zero when no code is given
	Reason       string
	Percent      *decimal.Decimal
	BasisAmount  *money.Money
}

func (a *LineAllowance) validate(p Profile) error {
	if a.ReasonCode != 0 && !a.ReasonCode.Valid() {
		return NewModelError("invalid allowance reason code: %d", int(a.ReasonCode))
	}
	if !p.AtLeast(ProfileEN16931) {
		if a.Percent != nil {
			return NewModelError("percentage-based allowances are not allowed in the %s profile", p)
		}
		if a.BasisAmount != nil {
			return NewModelError("basis amount-based allowances are not allowed in the %s profile", p)
		}
	}
	return nil
}

// LineCharge is a surcharge on a line item.
type LineCharge struct {
	ActualAmount money.Money
	ReasonCode   codes.SpecialServiceCode // empty when no code is given
	Reason       string
	Percent      *decimal.Decimal
	BasisAmount  *money.Money
}

func (c *LineCharge) validate(p Profile) error {
	if c.ReasonCode != "" && !c.ReasonCode.Valid() {
		return NewModelError("invalid charge reason code: %s", string(c.ReasonCode))
	}
	if !p.AtLeast(ProfileEN16931) {
		if c.Percent != nil {
			return NewModelError("percentage-based charges are not allowed in the %s profile", p)
		}
		if c.BasisAmount != nil {
			return NewModelError("basis amount-based charges are not allowed in the %s profile", p)
		}
	}
	return nil
}

// DocumentAllowance is a discount on the entire invoice. Unlike line
// allowances, percent and basis amount are available from BASIC WL on.
type DocumentAllowance struct {
	LineAllowance

	TaxCategory codes.TaxCategoryCode
	TaxRate     *decimal.Decimal
}

func (a *DocumentAllowance) validate() error {
	if a.ReasonCode != 0 && !a.ReasonCode.Valid() {
		return NewModelError("invalid allowance reason code: %d", int(a.ReasonCode))
	}
	if !a.TaxCategory.Valid() {
		return NewModelError("invalid tax category code: %s", string(a.TaxCategory))
	}
	return nil
}

// DocumentCharge is a surcharge on the entire invoice. Unlike line
// charges, percent and basis amount are available from BASIC WL on.
type DocumentCharge struct {
	LineCharge

	TaxCategory codes.TaxCategoryCode
	TaxRate     *decimal.Decimal
}

func (c *DocumentCharge) validate() error {
	if c.ReasonCode != "" && !c.ReasonCode.Valid() {
		return NewModelError("invalid charge reason code: %s", string(c.ReasonCode))
	}
	if !c.TaxCategory.Valid() {
		return NewModelError("invalid tax category code: %s", string(c.TaxCategory))
	}
	return nil
}
