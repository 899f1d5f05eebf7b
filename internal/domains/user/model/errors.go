package model

import "errors"

// =====================================================
// ERROR CODES
// =====================================================

const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeEmailTaken         = "USR002"
	ErrCodeUsernameTaken      = "USR003"
	ErrCodeInvalidCredentials = "USR004"
	ErrCodeAccountDisabled    = "USR005"
)

// =====================================================
// SENTINEL ERRORS
// =====================================================

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
)

// =====================================================
// ERROR TYPES
// =====================================================

// UserError wraps user domain errors with a stable code
type UserError struct {
	Code    string
	Message string
	Err     error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// =====================================================
// ERROR CONSTRUCTORS
// =====================================================

func NewUserNotFoundError() *UserError {
	return &UserError{
		Code:    ErrCodeUserNotFound,
		Message: "user not found",
		Err:     ErrUserNotFound,
	}
}

func NewEmailTakenError() *UserError {
	return &UserError{
		Code:    ErrCodeEmailTaken,
		Message: "email already registered",
		Err:     ErrEmailTaken,
	}
}

func NewUsernameTakenError() *UserError {
	return &UserError{
		Code:    ErrCodeUsernameTaken,
		Message: "username already taken",
		Err:     ErrUsernameTaken,
	}
}

func NewInvalidCredentialsError() *UserError {
	return &UserError{
		Code:    ErrCodeInvalidCredentials,
		Message: "invalid email or password",
		Err:     ErrInvalidCredentials,
	}
}

func NewAccountDisabledError() *UserError {
	return &UserError{
		Code:    ErrCodeAccountDisabled,
		Message: "account is disabled",
		Err:     ErrAccountDisabled,
	}
}
