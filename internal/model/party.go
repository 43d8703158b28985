package model

// partyRole names the position a TradeParty occupies in an invoice. The
// required and permitted fields depend on both the role and the profile.
type partyRole string

const (
	roleSeller partyRole = "seller"
	roleBuyer  partyRole = "buyer"
	roleTaxRep partyRole = "seller tax representative"
	roleShipTo partyRole = "ship to"
	rolePayee  partyRole = "payee"
)

// TradeParty is a party to the invoiced transaction: seller, buyer,
// payee, ship-to, or seller tax representative.
type TradeParty struct {
	Name    string // optional for the ship-to party only
	Address *PostalAddress
	Email   string

	TaxNumber string
	VATID     string

	IDs                 []string
	GlobalIDs           []ID
	Description         string
	LegalID             *ID
	TradingBusinessName string
	Contacts            []TradeContact
}

// HasTaxRegistration reports whether the party carries a VAT ID or a
// national tax number.
func (tp *TradeParty) HasTaxRegistration() bool {
	return tp.VATID != "" || tp.TaxNumber != ""
}

func (tp *TradeParty) validate(p Profile, role partyRole) error {
	switch role {
	case roleTaxRep, roleShipTo, rolePayee:
		if !p.AtLeast(ProfileBasicWL) {
			return NewModelError("%s is not allowed in the %s profile", role, p)
		}
	}

	for _, gid := range tp.GlobalIDs {
		if gid.Scheme == "" {
			return NewModelError("global ID scheme ID is required")
		}
	}

	switch role {
	case roleBuyer, roleShipTo, rolePayee:
		if p.AtLeast(ProfileBasicWL) {
			if len(tp.IDs) > 1 {
				return NewModelError("multiple %s IDs are not allowed in the %s profile", role, p)
			}
			if len(tp.GlobalIDs) > 1 {
				return NewModelError("multiple %s global IDs are not allowed in the %s profile", role, p)
			}
		} else { // only relevant for the buyer
			if len(tp.IDs) > 0 {
				return NewModelError("%s IDs are not allowed in the %s profile", role, p)
			}
			if len(tp.GlobalIDs) > 0 {
				return NewModelError("%s global IDs are not allowed in the %s profile", role, p)
			}
		}
	case roleSeller:
		if !p.AtLeast(ProfileBasicWL) {
			if len(tp.IDs) > 0 {
				return NewModelError("seller IDs are not allowed in the %s profile", p)
			}
			if len(tp.GlobalIDs) > 0 {
				return NewModelError("seller global IDs are not allowed in the %s profile", p)
			}
		}
	}
	if role == roleTaxRep {
		if len(tp.IDs) > 0 {
			return NewModelError("seller tax representative IDs are not allowed in the %s profile", p)
		}
		if len(tp.GlobalIDs) > 0 {
			return NewModelError("seller tax representative global IDs are not allowed in the %s profile", p)
		}
	}

	// Name is optional for the ship-to party only.
	if role != roleShipTo && tp.Name == "" {
		return NewModelError("%s name is required", role)
	}

	// Description is allowed only for the seller in EN 16931.
	if role != roleSeller || !p.AtLeast(ProfileEN16931) {
		if tp.Description != "" {
			return NewModelError("%s description is not allowed", role)
		}
	}

	if role == roleTaxRep || role == roleShipTo {
		if tp.LegalID != nil {
			return NewModelError("%s legal ID is not allowed in the %s profile", role, p)
		}
	}

	// Trading business name is allowed for the buyer in EN 16931 and for
	// the seller in BASIC WL and up.
	switch role {
	case roleBuyer:
		if !p.AtLeast(ProfileEN16931) && tp.TradingBusinessName != "" {
			return NewModelError("buyer trading business name is not allowed in the %s profile", p)
		}
	case roleSeller:
		if !p.AtLeast(ProfileBasicWL) && tp.TradingBusinessName != "" {
			return NewModelError("seller trading business name is not allowed in the %s profile", p)
		}
	default:
		if tp.TradingBusinessName != "" {
			return NewModelError("%s trading business name is not allowed in the %s profile", role, p)
		}
	}

	// Contacts are allowed only for the buyer and seller in EN 16931.
	if (role != roleBuyer && role != roleSeller) || !p.AtLeast(ProfileEN16931) {
		if len(tp.Contacts) > 0 {
			return NewModelError("%s contacts are not allowed in the %s profile", role, p)
		}
	}

	// The address is not allowed for the payee, required for the seller
	// and seller tax representative in all profiles and for the buyer in
	// BASIC WL and up, and optional otherwise.
	if role == rolePayee {
		if tp.Address != nil {
			return NewModelError("payee address is not allowed in the %s profile", p)
		}
	} else if role == roleSeller || role == roleTaxRep ||
		(role == roleBuyer && p.AtLeast(ProfileBasicWL)) {
		if tp.Address == nil {
			return NewModelError("%s address is required in the %s profile", role, p)
		}
	}
	if tp.Address != nil {
		if err := tp.Address.validate(p); err != nil {
			return err
		}
	}

	if !p.AtLeast(ProfileBasicWL) && tp.Email != "" {
		return NewModelError("%s email is not allowed in the %s profile", role, p)
	}

	// Tax number: optional for the seller and for the buyer in BASIC WL
	// and up, not allowed otherwise.
	if (role == roleBuyer && !p.AtLeast(ProfileBasicWL)) ||
		role == roleTaxRep || role == roleShipTo || role == rolePayee {
		if tp.TaxNumber != "" {
			return NewModelError("%s tax number is not allowed in the %s profile", role, p)
		}
	}

	// VAT ID: required for the seller tax representative, optional for
	// the seller and for the buyer in BASIC WL and up, not allowed
	// otherwise.
	if role == roleTaxRep {
		if tp.VATID == "" {
			return NewModelError("seller tax representative VAT ID is required in the %s profile", p)
		}
	} else if (role == roleBuyer && !p.AtLeast(ProfileBasicWL)) ||
		role == roleShipTo || role == rolePayee {
		if tp.VATID != "" {
			return NewModelError("%s VAT ID is not allowed in the %s profile", role, p)
		}
	}

	return nil
}

// PostalAddress is a postal address. Only the country code is available
// in the MINIMUM profile; all other fields need BASIC WL or up.
type PostalAddress struct {
	CountryCode        string // ISO 3166-1 alpha-2
	CountrySubdivision string
	PostCode           string
	City               string
	LineOne            string
	LineTwo            string
	LineThree          string
}

func (a *PostalAddress) validate(p Profile) error {
	if !ValidCountry(a.CountryCode) {
		return NewModelError("invalid ISO 3166-1 alpha-2 country code")
	}
	if !p.AtLeast(ProfileBasicWL) {
		if a.CountrySubdivision != "" || a.PostCode != "" || a.City != "" ||
			a.LineOne != "" || a.LineTwo != "" || a.LineThree != "" {
			return NewModelError("address fields are not allowed in the %s profile", p)
		}
	}
	return nil
}
