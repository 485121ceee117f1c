// Package export converts filled documents to PDF artifacts.
package export

import "fmt"

// ConversionError represents a failed external converter invocation
type ConversionError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *ConversionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("conversion error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("conversion error: %s", e.Message)
}

func (e *ConversionError) Unwrap() error {
	return e.Cause
}
