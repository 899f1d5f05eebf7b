package model

import "errors"

// =====================================================
// ERROR CODES
// =====================================================

const (
	ErrCodeAuthorNotFound   = "AUT001"
	ErrCodeEmptyAuthorName  = "AUT002"
	ErrCodeAuthorCreateFail = "AUT003"
)

// =====================================================
// SENTINEL ERRORS
// =====================================================

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrEmptyAuthorName = errors.New("author name cannot be empty")
)

// =====================================================
// ERROR TYPES
// =====================================================

// AuthorError wraps author domain errors with a stable code
type AuthorError struct {
	Code    string
	Message string
	Err     error
}

func (e *AuthorError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthorError) Unwrap() error {
	return e.Err
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewAuthorNotFoundError() *AuthorError {
	return &AuthorError{
		Code:    ErrCodeAuthorNotFound,
		Message: "author not found",
		Err:     ErrAuthorNotFound,
	}
}

func NewEmptyAuthorNameError() *AuthorError {
	return &AuthorError{
		Code:    ErrCodeEmptyAuthorName,
		Message: "author name cannot be empty",
		Err:     ErrEmptyAuthorName,
	}
}
