package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeBookNotFound    = "BOK001"
	ErrCodeInvalidBookType = "BOK002"
	ErrCodeInvalidFormat   = "BOK003"
	ErrCodeNotOwner        = "BOK004"
	ErrCodeInvalidPayload  = "BOK005"
)

// Errors
var (
	ErrBookNotFound    = errors.New("book not found")
	ErrInvalidBookType = errors.New("invalid book type")
	ErrInvalidFormat   = errors.New("invalid format")
	ErrNotOwner        = errors.New("book belongs to another user")
)

// BookError custom error type
type BookError struct {
	Code    string
	Message string
	Err     error
}

func (e *BookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BookError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewBookNotFoundError() *BookError {
	return &BookError{
		Code:    ErrCodeBookNotFound,
		Message: "Book not found",
		Err:     ErrBookNotFound,
	}
}

func NewInvalidBookTypeError(value string) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidBookType,
		Message: fmt.Sprintf("Invalid book type: %s", value),
		Err:     ErrInvalidBookType,
	}
}

func NewInvalidFormatError(value string) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidFormat,
		Message: fmt.Sprintf("Invalid format: %s", value),
		Err:     ErrInvalidFormat,
	}
}

func NewNotOwnerError() *BookError {
	return &BookError{
		Code:    ErrCodeNotOwner,
		Message: "You can only modify your own books",
		Err:     ErrNotOwner,
	}
}

func NewInvalidPayloadError(message string) *BookError {
	return &BookError{
		Code:    ErrCodeInvalidPayload,
		Message: message,
	}
}
