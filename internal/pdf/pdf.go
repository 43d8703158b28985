// Package pdf attaches invoice XML to and extracts it from PDF
// containers. A Factur-X document is an ordinary PDF carrying the CII
// XML as an embedded file named factur-x.xml.
package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/cli"

	"github.com/rezonia/facturx/internal/cii"
	"github.com/rezonia/facturx/internal/model"
)

// AttachmentName is the file name of the embedded invoice XML.
const AttachmentName = "factur-x.xml"

// NoAttachmentError indicates a PDF without an embedded invoice.
type NoAttachmentError struct {
	Path string
}

func (e *NoAttachmentError) Error() string {
	return fmt.Sprintf("%s: no %s attachment found", e.Path, AttachmentName)
}

// Relationship returns the AFRelationship the embedded XML should carry
// for an invoice profile. Up to BASIC WL the XML omits line items and
// cannot stand in for the PDF, so the relationship is "Data"; from
// BASIC on the XML is a full machine-readable alternative.
func Relationship(p model.Profile) string {
	if p.AtLeast(model.ProfileBasic) {
		return "Alternative"
	}
	return "Data"
}

// Embed renders inv and attaches the XML to the PDF at inPath, writing
// the result to outPath.
func Embed(inPath, outPath string, inv model.Invoice) error {
	xml, err := cii.GenerateString(inv)
	if err != nil {
		return err
	}
	return EmbedXML(inPath, outPath, []byte(xml))
}

// EmbedXML attaches raw invoice XML to the PDF at inPath, writing the
// result to outPath. An existing factur-x.xml attachment is replaced.
func EmbedXML(inPath, outPath string, xml []byte) error {
	dir, err := os.MkdirTemp("", "facturx-embed")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	attachment := filepath.Join(dir, AttachmentName)
	if err := os.WriteFile(attachment, xml, 0o644); err != nil {
		return err
	}

	has, err := HasAttachment(inPath)
	if err != nil {
		return err
	}
	if has {
		// pdfcpu appends attachments; drop the stale copy first.
		if err := api.RemoveAttachmentsFile(inPath, outPath, []string{AttachmentName}, nil); err != nil {
			return fmt.Errorf("removing stale attachment: %w", err)
		}
		inPath = outPath
	}
	if err := api.AddAttachmentsFile(inPath, outPath, []string{attachment}, false, nil); err != nil {
		return fmt.Errorf("attaching %s: %w", AttachmentName, err)
	}
	return nil
}

// ExtractXML returns the embedded invoice XML of the PDF at path.
func ExtractXML(path string) ([]byte, error) {
	has, err := HasAttachment(path)
	if err != nil {
		return nil, err
	}
	if !has {
		return nil, &NoAttachmentError{Path: path}
	}

	dir, err := os.MkdirTemp("", "facturx-extract")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(dir)

	if err := api.ExtractAttachmentsFile(path, dir, []string{AttachmentName}, nil); err != nil {
		return nil, fmt.Errorf("extracting %s: %w", AttachmentName, err)
	}
	xml, err := os.ReadFile(filepath.Join(dir, AttachmentName))
	if err != nil {
		return nil, err
	}
	return xml, nil
}

// Extract parses the invoice embedded in the PDF at path.
func Extract(path string) (model.Invoice, error) {
	xml, err := ExtractXML(path)
	if err != nil {
		return nil, err
	}
	return cii.Parse(xml)
}

// HasAttachment reports whether the PDF at path carries a factur-x.xml
// attachment.
func HasAttachment(path string) (bool, error) {
	names, err := cli.ListAttachmentsFile(path, nil)
	if err != nil {
		return false, fmt.Errorf("listing attachments: %w", err)
	}
	for _, name := range names {
		if name == AttachmentName {
			return true, nil
		}
	}
	return false, nil
}
