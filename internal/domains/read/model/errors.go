package model

import (
	"errors"
	"fmt"
)

// Error codes
const (
	ErrCodeReadNotFound   = "RED001"
	ErrCodeInvalidStatus  = "RED002"
	ErrCodeInvalidRating  = "RED003"
	ErrCodeInvalidDates   = "RED004"
	ErrCodeNotOwner       = "RED005"
	ErrCodeBookNotFound   = "RED006"
	ErrCodeInvalidPayload = "RED007"
)

// Errors
var (
	ErrReadNotFound  = errors.New("read not found")
	ErrInvalidStatus = errors.New("invalid read status")
	ErrInvalidRating = errors.New("rating must be between 0.5 and 10.0 in 0.5 steps")
	ErrInvalidDates  = errors.New("date_started cannot be after date_finished")
	ErrNotOwner      = errors.New("read belongs to another user")
)

// ReadError custom error type
type ReadError struct {
	Code    string
	Message string
	Err     error
}

func (e *ReadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewReadNotFoundError() *ReadError {
	return &ReadError{
		Code:    ErrCodeReadNotFound,
		Message: "Read not found",
		Err:     ErrReadNotFound,
	}
}

func NewInvalidStatusError(value string) *ReadError {
	return &ReadError{
		Code:    ErrCodeInvalidStatus,
		Message: fmt.Sprintf("Invalid read status: %s", value),
		Err:     ErrInvalidStatus,
	}
}

func NewInvalidRatingError() *ReadError {
	return &ReadError{
		Code:    ErrCodeInvalidRating,
		Message: "Rating must be between 0.5 and 10.0 in 0.5 increments",
		Err:     ErrInvalidRating,
	}
}

func NewInvalidDatesError() *ReadError {
	return &ReadError{
		Code:    ErrCodeInvalidDates,
		Message: "Start date cannot be after finish date",
		Err:     ErrInvalidDates,
	}
}

func NewNotOwnerError() *ReadError {
	return &ReadError{
		Code:    ErrCodeNotOwner,
		Message: "You can only modify your own reads",
		Err:     ErrNotOwner,
	}
}
