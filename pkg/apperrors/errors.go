// Package apperrors defines the error taxonomy shared across the pipeline.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates a referenced identifier is absent from the store.
	ErrNotFound = errors.New("record not found")
	// ErrStoreUnavailable indicates a transport or connection failure to the
	// store. The core never retries; callers must treat the operation as not
	// completed.
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError is a hard failure for strongly-typed fields enforced at
// construction time. Distinct from data-quality issues, which accumulate.
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ConfigurationError reports a malformed rule set, weight table, or threshold
// table. Surfaced at startup, never per-record.
type ConfigurationError struct {
	Setting string
	Message string
}

func NewConfigurationError(setting, message string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Message: message}
}

func NewConfigurationErrorf(setting, format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Message: fmt.Sprintf(format, args...)}
}

func (e *ConfigurationError) Error() string {
	return "configuration " + e.Setting + ": " + e.Message
}
