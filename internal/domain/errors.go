package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	ErrInternal      ErrorCode = "INTERNAL_ERROR"
	ErrInvalidConfig ErrorCode = "INVALID_CONFIG"

	// Pipeline specific errors
	ErrLLMServiceError ErrorCode = "LLM_SERVICE_ERROR"
	ErrMalformedQuiz   ErrorCode = "MALFORMED_QUIZ"
	ErrNoModel         ErrorCode = "NO_MODEL"
	ErrStoreError      ErrorCode = "STORE_ERROR"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// HasCode reports whether err is (or wraps) a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Code == code
	}
	return false
}

// Helper functions for common errors
func NewInternalError(message string, err error) *DomainError {
	return NewError(ErrInternal, message, err)
}

func NewInvalidConfigError(message string) *DomainError {
	return NewError(ErrInvalidConfig, message, nil)
}

func NewLLMServiceError(err error) *DomainError {
	return NewError(ErrLLMServiceError, "Failed to process with LLM service", err)
}

func NewMalformedQuizError(message string, err error) *DomainError {
	return NewError(ErrMalformedQuiz, message, err)
}

func NewNoModelError(message string) *DomainError {
	return NewError(ErrNoModel, message, nil)
}

func NewStoreError(message string, err error) *DomainError {
	return NewError(ErrStoreError, message, err)
}
