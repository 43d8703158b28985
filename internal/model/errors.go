package model

import "fmt"

// ModelError represents a business-rule violation in an invoice document.
// A document either passes all rules for its profile or is rejected.
type ModelError struct {
	Message string
}

func (e *ModelError) Error() string {
	return e.Message
}

// NewModelError creates a new model error
func NewModelError(format string, args ...interface{}) *ModelError {
	return &ModelError{Message: fmt.Sprintf(format, args...)}
}
