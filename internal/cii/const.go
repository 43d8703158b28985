// Package cii converts between the invoice document model and the
// UN/CEFACT Cross Industry Invoice XML form used by Factur-X and
// ZUGFeRD. Generation emits elements in schema order; parsing accepts
// any child order and any namespace prefixes.
package cii

import "github.com/rezonia/facturx/internal/model"

// XML namespaces of the CII vocabulary.
const (
	NSCII = "urn:un:unece:uncefact:data:standard:CrossIndustryInvoice:100"
	NSRAM = "urn:un:unece:uncefact:data:standard:ReusableAggregateBusinessInformationEntity:100"
	NSUDT = "urn:un:unece:uncefact:data:standard:UnqualifiedDataType:100"
)

// Guideline URNs identifying the Factur-X profiles.
const (
	URNMinimumProfile = "urn:factur-x.eu:1p0:minimum"
	URNBasicWLProfile = "urn:factur-x.eu:1p0:basicwl"
	URNBasicProfile   = "urn:cen.eu:en16931:2017#compliant#urn:factur-x.eu:1p0:basic"
	URNEN16931Profile = "urn:cen.eu:en16931:2017"

	// Recognized but not supported.
	URNExtendedProfile  = "urn:cen.eu:en16931:2017#conformant#urn:factur-x.eu:1p0:extended"
	URNXRechnungProfile = "urn:cen.eu:en16931:2017#compliant#urn:xoev-de:kosit:standard:xrechnung_2.1"
)

var profileURNs = map[model.Profile]string{
	model.ProfileMinimum: URNMinimumProfile,
	model.ProfileBasicWL: URNBasicWLProfile,
	model.ProfileBasic:   URNBasicProfile,
	model.ProfileEN16931: URNEN16931Profile,
}

// ProfileURN returns the guideline URN for a profile.
func ProfileURN(p model.Profile) string {
	return profileURNs[p]
}
