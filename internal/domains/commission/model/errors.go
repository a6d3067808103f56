package model

import "errors"

// =====================================================
// CUSTOM ERROR CODES
// =====================================================
const (
	ErrCodeNotFound         = "CMS001"
	ErrCodeTerminalState    = "CMS002"
	ErrCodeQuotaExceeded    = "CMS003"
	ErrCodeNotOwner         = "CMS004"
	ErrCodeInvalidStatus    = "CMS005"
	ErrCodeAllPhasesCleared = "CMS006"
	ErrCodeCannotCancel     = "CMS007"
	ErrCodeInvalidType      = "CMS008"
	ErrCodeInvalidRequest   = "CMS009"
)

// =====================================================
// ERROR DEFINITIONS
// =====================================================
var (
	ErrNotFound         = errors.New("commission not found")
	ErrTerminalState    = errors.New("commission is completed or cancelled")
	ErrQuotaExceeded    = errors.New("revision quota for the current phase exhausted")
	ErrNotOwner         = errors.New("commission does not belong to user")
	ErrInvalidStatus    = errors.New("invalid commission status")
	ErrAllPhasesCleared = errors.New("all phases already approved")
	ErrCannotCancel     = errors.New("commission cannot be cancelled")
	ErrInvalidType      = errors.New("unknown commission type")
)

// =====================================================
// CUSTOM ERROR TYPE
// =====================================================
type CommissionError struct {
	Code    string
	Message string
	Err     error
}

func (e *CommissionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CommissionError) Unwrap() error {
	return e.Err
}

// NewCommissionError creates a new CommissionError
func NewCommissionError(code, message string, err error) *CommissionError {
	return &CommissionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
