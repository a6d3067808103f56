package model

import "errors"

// =====================================================
// USER ERROR CODES
// =====================================================
const (
	ErrCodeUserNotFound       = "USR001"
	ErrCodeUsernameTaken      = "USR002"
	ErrCodeInvalidCredentials = "USR003"
	ErrCodeAccountBlocked     = "USR004"
	ErrCodeWeakPassword       = "USR005"
	ErrCodeWrongPassword      = "USR006"
	ErrCodeInvalidRequest     = "USR007"
)

// =====================================================
// USER ERRORS
// =====================================================
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountBlocked     = errors.New("account is blocked or banned")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrWrongPassword      = errors.New("current password does not match")
)

// UserError wraps a domain failure with its public code
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

// NewUserError creates a new user error
func NewUserError(code, message string, err error) *UserError {
	return &UserError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
