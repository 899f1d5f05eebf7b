package model

import (
	"errors"
	"fmt"
	"time"
)

// Error codes
const (
	ErrCodeInvalidNumber   = "SEM001"
	ErrCodeDateBeforeEpoch = "SEM002"
	ErrCodeNotFound        = "SEM003"
)

// Errors
var (
	ErrInvalidSemesterNumber = errors.New("semester number must be at least 1")
	ErrDateBeforeEpoch       = errors.New("date is before the semester epoch")
	ErrSemesterNotFound      = errors.New("semester annotation not found")
)

// SemesterError custom error type
type SemesterError struct {
	Code    string
	Message string
	Err     error
}

func (e *SemesterError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *SemesterError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewInvalidSemesterNumberError(number int) *SemesterError {
	return &SemesterError{
		Code:    ErrCodeInvalidNumber,
		Message: fmt.Sprintf("Invalid semester number: %d", number),
		Err:     ErrInvalidSemesterNumber,
	}
}

func NewDateBeforeEpochError(date time.Time) *SemesterError {
	return &SemesterError{
		Code:    ErrCodeDateBeforeEpoch,
		Message: fmt.Sprintf("Date %s is before the epoch (May 15, 2005)", date.Format("2006-01-02")),
		Err:     ErrDateBeforeEpoch,
	}
}

func NewSemesterNotFoundError() *SemesterError {
	return &SemesterError{
		Code:    ErrCodeNotFound,
		Message: "Semester annotation not found",
		Err:     ErrSemesterNotFound,
	}
}
