// Package errors provides custom error types and utilities for courier.
//
// This package provides error handling for:
// - Non-200 responses (the generic "Exceptional data" rejection)
// - Configuration errors, including unknown instance types
// - Validation errors
// - Unauthorized responses reported by response hooks
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error categories for courier operations
var (
	ErrExceptionalData = errors.New("Exceptional data") //nolint:staticcheck // message is part of the public contract
	ErrUnauthorized    = errors.New("unauthorized")
	ErrInvalidInput    = errors.New("invalid input")
	ErrNetwork         = errors.New("network error")
	ErrConfiguration   = errors.New("configuration error")
)

// maxBodySnippet caps how much of a response body an HTTPError keeps.
const maxBodySnippet = 512

// HTTPError is returned for every response whose status is not 200.
// Its message is the generic rejection; the fields keep what the message drops.
type HTTPError struct {
	StatusCode int
	Method     string
	URL        string
	Body       string
}

func (e *HTTPError) Error() string {
	return ErrExceptionalData.Error()
}

// Detail renders the status line and body snippet for logs.
func (e *HTTPError) Detail() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
	}
	return fmt.Sprintf("HTTP %d %s %s", e.StatusCode, e.Method, e.URL)
}

func (e *HTTPError) Is(target error) bool {
	if target == ErrExceptionalData {
		return true
	}
	switch e.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return target == ErrUnauthorized
	case http.StatusBadRequest:
		return target == ErrInvalidInput
	default:
		return false
	}
}

// NewHTTPError creates a new HTTP error, truncating body to a short snippet.
func NewHTTPError(statusCode int, method, url string, body []byte) *HTTPError {
	if len(body) > maxBodySnippet {
		body = body[:maxBodySnippet]
	}
	return &HTTPError{
		StatusCode: statusCode,
		Method:     method,
		URL:        url,
		Body:       strings.TrimSpace(string(body)),
	}
}

// IsHTTPStatus checks if an error represents a specific HTTP status
func IsHTTPStatus(err error, statusCode int) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == statusCode
	}
	return false
}

// IsExceptionalData reports whether err is the non-200 rejection.
func IsExceptionalData(err error) bool {
	return errors.Is(err, ErrExceptionalData)
}

// ConfigurationError represents configuration-related errors
type ConfigurationError struct {
	Field   string
	Value   string
	Message string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("configuration error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("configuration error: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a new configuration error
func NewConfigurationError(field, value, message string, err error) *ConfigurationError {
	return &ConfigurationError{
		Field:   field,
		Value:   value,
		Message: message,
		Err:     err,
	}
}

// IsConfiguration checks if an error is configuration-related
func IsConfiguration(err error) bool {
	return errors.Is(err, ErrConfiguration)
}

// ValidationError represents input validation errors
type ValidationError struct {
	Field   string
	Value   string
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation error in field '%s': %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new validation error
func NewValidationError(field, value, rule, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Rule:    rule,
		Message: message,
	}
}

// IsValidation checks if an error is validation-related
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// APIError is an application-level failure carried inside a 200 response envelope.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error %d", e.Code)
}

// NewAPIError creates a new envelope error
func NewAPIError(code int, message string) *APIError {
	return &APIError{Code: code, Message: message}
}

// IsUnauthorized checks if an error represents an authorization failure
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsNetwork checks if an error is network-related
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
