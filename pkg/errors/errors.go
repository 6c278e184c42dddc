// Package errors provides custom error types for the timesync system.
// These errors enable programmatic error checking and let callers
// distinguish a legitimately empty fetch result from a failed one.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// Common sentinel errors for the timesync system
var (
	// ErrNotFound indicates that a requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrTokenRequired indicates that an API token is required but not provided
	ErrTokenRequired = errors.New("API token required")

	// ErrRateLimited indicates that the API rate limit has been exceeded
	ErrRateLimited = errors.New("rate limited")

	// ErrSystemUnavailable indicates that an external system is temporarily unavailable
	ErrSystemUnavailable = errors.New("system unavailable")

	// ErrEmptySheet indicates that a sheet range contained no rows
	ErrEmptySheet = errors.New("empty sheet")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// Is implements errors.Is support
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// APIError represents an error from an external system's API
type APIError struct {
	System     string // "harvest", "float", "sheets"
	StatusCode int
	Endpoint   string
	Message    string
	Err        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("API error from %s (status %d): %s", e.System, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("API error from %s: %s", e.System, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *APIError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is support
func (e *APIError) Is(target error) bool {
	if e.StatusCode == 429 {
		return target == ErrRateLimited
	}
	if e.StatusCode >= 500 {
		return target == ErrSystemUnavailable
	}
	return false
}

// ConfigError represents a configuration error
type ConfigError struct {
	Component string
	Message   string
	Err       error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// NewConfigError creates a new ConfigError
func NewConfigError(component, message string, err error) *ConfigError {
	return &ConfigError{Component: component, Message: message, Err: err}
}

// ParseError represents an error when coercing raw cell or payload data
type ParseError struct {
	Format  string // "json", "yaml", "cell"
	Source  string // file, endpoint or sheet range
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("parse error in %s %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("%s parse error: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SheetError represents an error during a spreadsheet read or write
type SheetError struct {
	Operation string // "read", "append", "update"
	Range     string
	Err       error
}

// Error implements the error interface
func (e *SheetError) Error() string {
	return fmt.Sprintf("sheet %s of %s failed: %v", e.Operation, e.Range, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SheetError) Unwrap() error {
	return e.Err
}

// SyncError represents an error during cross-system sync operations
type SyncError struct {
	System   string
	Resource string // "projects", "people", "logged-time"
	Err      error
}

// Error implements the error interface
func (e *SyncError) Error() string {
	return fmt.Sprintf("sync error for %s %s: %v", e.System, e.Resource, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *SyncError) Unwrap() error {
	return e.Err
}

// Helper functions for error checking

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsRateLimited checks if an error is a rate limit error
func IsRateLimited(err error) bool {
	return errors.Is(err, ErrRateLimited)
}

// IsSystemUnavailable checks if an error indicates external system unavailability
func IsSystemUnavailable(err error) bool {
	return errors.Is(err, ErrSystemUnavailable)
}

// Helper wrapping functions for common patterns

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapAPI wraps an error as an APIError
func WrapAPI(system string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &APIError{
		System:     system,
		StatusCode: statusCode,
		Message:    err.Error(),
		Err:        err,
	}
}

// WrapSheet wraps an error as a SheetError
func WrapSheet(operation, sheetRange string, err error) error {
	if err == nil {
		return nil
	}
	return &SheetError{Operation: operation, Range: sheetRange, Err: err}
}
