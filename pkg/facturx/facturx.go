// Package facturx provides a public API for reading and writing
// Factur-X (ZUGFeRD) electronic invoices.
//
// This package exposes the profile document model, the CII XML codec,
// and the PDF attachment layer.
//
// Example usage:
//
//	inv, err := facturx.Parse(xmlData)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(inv.Profile())
package facturx

import (
	"io"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
	"github.com/rezonia/facturx/internal/money"
	"github.com/rezonia/facturx/internal/pdf"
)

// NewMoney builds an exact monetary amount from its decimal string and
// ISO 4217 currency code.
func NewMoney(amount, currency string) (Money, error) {
	return money.New(amount, currency)
}

// MustMoney is NewMoney that panics on error.
func MustMoney(amount, currency string) Money {
	return money.MustNew(amount, currency)
}

// NewQuantity builds an exact quantity with its unit code.
func NewQuantity(amount string, unit UnitCode) (Quantity, error) {
	return money.NewQuantity(amount, unit)
}

// MustQuantity is NewQuantity that panics on error.
func MustQuantity(amount string, unit UnitCode) Quantity {
	return money.MustQuantity(amount, unit)
}

// Parse reads a Factur-X XML document. The concrete return type is the
// invoice variant of the document's declared profile.
func Parse(data []byte) (Invoice, error) {
	return cii.Parse(data)
}

// ParseReader reads a Factur-X XML document from r.
func ParseReader(r io.Reader) (Invoice, error) {
	return cii.ParseReader(r)
}

// Generate renders an invoice as Factur-X XML.
func Generate(inv Invoice) (string, error) {
	return cii.GenerateString(inv)
}

// AttachmentName is the file name of the invoice XML inside a hybrid
// PDF.
const AttachmentName = pdf.AttachmentName

// Embed renders inv and attaches the XML to the PDF at inPath, writing
// the result to outPath.
func Embed(inPath, outPath string, inv Invoice) error {
	return pdf.Embed(inPath, outPath, inv)
}

// EmbedXML attaches raw invoice XML to the PDF at inPath, writing the
// result to outPath.
func EmbedXML(inPath, outPath string, xml []byte) error {
	return pdf.EmbedXML(inPath, outPath, xml)
}

// Extract parses the invoice embedded in the PDF at path.
func Extract(path string) (Invoice, error) {
	return pdf.Extract(path)
}

// ExtractXML returns the embedded invoice XML of the PDF at path.
func ExtractXML(path string) ([]byte, error) {
	return pdf.ExtractXML(path)
}

// HasAttachment reports whether the PDF at path carries an invoice
// attachment.
func HasAttachment(path string) (bool, error) {
	return pdf.HasAttachment(path)
}

// Relationship returns the AFRelationship the embedded XML carries for
// an invoice profile.
func Relationship(p Profile) string {
	return pdf.Relationship(p)
}

// AsMinimum returns the MINIMUM-level view of any invoice variant.
func AsMinimum(inv Invoice) *MinimumInvoice {
	return model.AsMinimum(inv)
}

// AsBasicWL returns the BASIC WL-level view of an invoice, or nil for a
// MINIMUM document.
func AsBasicWL(inv Invoice) *BasicWLInvoice {
	return model.AsBasicWL(inv)
}

// AsBasic returns the BASIC-level view of an invoice, or nil for lower
// profiles.
func AsBasic(inv Invoice) *BasicInvoice {
	return model.AsBasic(inv)
}

// AsEN16931 returns the invoice as an EN 16931 document, or nil for
// lower profiles.
func AsEN16931(inv Invoice) *EN16931Invoice {
	return model.AsEN16931(inv)
}
