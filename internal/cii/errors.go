package cii

import (
	"fmt"

	"github.com/rezonia/facturx/internal/model"
)

// ParseError represents a malformed XML document
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse XML: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// NewParseError creates a new parse error
func NewParseError(cause error) *ParseError {
	return &ParseError{Cause: cause}
}

// NotInvoiceError represents well-formed XML that is not a Factur-X
// invoice at all
type NotInvoiceError struct {
	Message string
}

func (e *NotInvoiceError) Error() string {
	return e.Message
}

// NewNotInvoiceError creates a new not-an-invoice error
func NewNotInvoiceError(message string) *NotInvoiceError {
	return &NotInvoiceError{Message: message}
}

// InvalidDocumentError represents a Factur-X document with the wrong
// structure: missing mandatory elements, malformed values, or values
// outside their code lists
type InvalidDocumentError struct {
	Message string
}

func (e *InvalidDocumentError) Error() string {
	return e.Message
}

// NewInvalidDocumentError creates a new invalid-document error
func NewInvalidDocumentError(format string, args ...interface{}) *InvalidDocumentError {
	return &InvalidDocumentError{Message: fmt.Sprintf(format, args...)}
}

// UnsupportedProfileError represents a document that declares a
// recognized but unsupported guideline, or an unknown one
type UnsupportedProfileError struct {
	URN string
}

func (e *UnsupportedProfileError) Error() string {
	return "unsupported profile: " + e.URN
}

// NewUnsupportedProfileError creates a new unsupported-profile error
func NewUnsupportedProfileError(urn string) *UnsupportedProfileError {
	return &UnsupportedProfileError{URN: urn}
}

// ProfileError represents a document that uses an element not available
// in its declared profile
type ProfileError struct {
	Profile model.Profile
	Message string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Profile, e.Message)
}

// NewProfileError creates a new profile error
func NewProfileError(profile model.Profile, format string, args ...interface{}) *ProfileError {
	return &ProfileError{Profile: profile, Message: fmt.Sprintf(format, args...)}
}
