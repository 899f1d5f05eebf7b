package model

import "errors"

// =====================================================
// ERROR CODES
// =====================================================

const (
	ErrCodeCanonNotFound    = "CMP001"
	ErrCodeProgressNotFound = "CMP002"
	ErrCodeInvalidSort      = "CMP003"
)

// =====================================================
// SENTINEL ERRORS
// =====================================================

var (
	ErrCanonNotFound    = errors.New("author canon not found")
	ErrProgressNotFound = errors.New("author progress not found")
	ErrInvalidSort      = errors.New("invalid sort mode")
)

// =====================================================
// ERROR TYPES
// =====================================================

// CompletionistError wraps completionist domain errors with a stable code
type CompletionistError struct {
	Code    string
	Message string
	Err     error
}

func (e *CompletionistError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CompletionistError) Unwrap() error {
	return e.Err
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewCanonNotFoundError() *CompletionistError {
	return &CompletionistError{
		Code:    ErrCodeCanonNotFound,
		Message: "author canon not found",
		Err:     ErrCanonNotFound,
	}
}

func NewProgressNotFoundError() *CompletionistError {
	return &CompletionistError{
		Code:    ErrCodeProgressNotFound,
		Message: "author progress not found",
		Err:     ErrProgressNotFound,
	}
}

func NewInvalidSortError(value string) *CompletionistError {
	return &CompletionistError{
		Code:    ErrCodeInvalidSort,
		Message: "invalid sort mode: " + value,
		Err:     ErrInvalidSort,
	}
}
