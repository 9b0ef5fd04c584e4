package domain

import (
	"errors"
	"fmt"
)

const (
	// ErrCodeValidation malformed or out-of-range request fields; no model is invoked.
	ErrCodeValidation = "VALIDATION_ERROR"
	// ErrCodeDecode the uploaded bytes are not an image we can decode; no model is invoked.
	ErrCodeDecode = "DECODE_ERROR"
	// ErrCodeInference an external model call failed.
	ErrCodeInference = "INFERENCE_ERROR"
	// ErrCodeExtraction the model output does not contain a usable answer.
	ErrCodeExtraction = "EXTRACTION_ERROR"
	// ErrCodeTimeout an external model call took longer than allowed.
	ErrCodeTimeout = "TIMEOUT_ERROR"
	// ErrCodeCanceled the caller went away before the model answered.
	ErrCodeCanceled = "CANCELED"
)

// FieldViolation describes one invalid request field. Loc is the path to the field, e.g. ["body", "attributes"].
type FieldViolation struct {
	Loc     []string
	Message string
}

type DomainError struct {
	Code       string
	Message    string
	Cause      error
	Violations []FieldViolation
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

func NewDomainError(code, message string, cause error) *DomainError {
	return &DomainError{Code: code, Message: message, Cause: cause}
}

func NewValidationError(violations ...FieldViolation) *DomainError {
	return &DomainError{Code: ErrCodeValidation, Message: "request validation failed", Violations: violations}
}

func NewDecodeError(message string, cause error) *DomainError {
	return NewDomainError(ErrCodeDecode, message, cause)
}

func NewExtractionError(message string) *DomainError {
	return NewDomainError(ErrCodeExtraction, message, nil)
}

// HasCode returns true if `err` is (or wraps) a DomainError with the given code.
func HasCode(err error, code string) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr) && domainErr.Code == code
}
