// Package docx reads and writes Word (.docx) documents at the text-run level.
package docx

import "fmt"

// FormatError represents a file that is not a usable .docx document
type FormatError struct {
	Message string
	Cause   error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("docx format error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("docx format error: %s", e.Message)
}

func (e *FormatError) Unwrap() error {
	return e.Cause
}
