package model

import (
	"regexp"
	"time"

	"github.com/rezonia/facturx/internal/codes"
)

var countryPattern = regexp.MustCompile(`^[A-Z]{2}$`)

// ValidCountry reports whether code is a well-formed ISO 3166-1 alpha-2
// country code.
func ValidCountry(code string) bool {
	return countryPattern.MatchString(code)
}

// ID is an identifier with an optional ISO/IEC 6523 scheme qualifier.
type ID struct {
	Value  string
	Scheme string // ISO/IEC 6523 scheme code, empty when unqualified
}

// IncludedNote is a free-text note attached to a document or line item.
type IncludedNote struct {
	Content     string
	SubjectCode codes.TextSubjectCode // empty when no subject is given
}

// Period is a date range. Start must not be after End; violating this is
// a caller contract violation, not a recoverable state.
type Period struct {
	Start time.Time
	End   time.Time
}

// PrecedingInvoice references an earlier invoice corrected or credited
// by this one.
type PrecedingInvoice struct {
	ID   string
	Date *time.Time
}

// ProcuringProject references the project this invoice belongs to.
type ProcuringProject struct {
	ID   string
	Name string
}

// DocRef references an external document on a line item.
type DocRef struct {
	ID                string
	ReferenceTypeCode codes.ReferenceQualifierCode // empty when unqualified
}

// Attachment is a supporting document embedded in the invoice.
type Attachment struct {
	Content  []byte
	MIMEType string
	Filename string
}

// ProductCharacteristic describes one property of a traded product.
type ProductCharacteristic struct {
	Description string
	Value       string
}

// ProductClassification assigns a product to a classification scheme.
type ProductClassification struct {
	ClassCode     string
	ListID        codes.ItemTypeCode // empty when no scheme is given
	ListVersionID string
}

// TradeContact is contact information for a trade party.
type TradeContact struct {
	PersonName     string
	DepartmentName string
	Phone          string
	Email          string
}

// BankAccount identifies a payment account.
type BankAccount struct {
	IBAN   string
	Name   string
	BankID string
}

// PaymentCard identifies a payment card. Only a truncated PAN may be
// stored per PCI-DSS.
type PaymentCard struct {
	PAN        string
	HolderName string
}
