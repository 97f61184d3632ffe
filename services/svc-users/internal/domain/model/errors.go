package model

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrGroupNotFound      = errors.New("group not found")
	ErrDuplicateUser      = errors.New("user already exists")
	ErrDuplicateGroup     = errors.New("group already exists")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidGroupID     = errors.New("invalid group ID")
	ErrDatabaseConnection = errors.New("database connection error")
	ErrDatabaseQuery      = errors.New("database query error")
)

const (
	ValidationCodeRequired    = "required"
	ValidationCodeInvalidUUID = "invalid_uuid"
	ValidationCodeInvalidDate = "invalid_date"
	ValidationCodeInvalidMail = "invalid_email"
	ValidationCodeTooLong     = "too_long"
)

type ValidationError struct {
	Field   string
	Message string
	Code    string
}

type ValidationErrors struct {
	Errors []ValidationError
}

func (v *ValidationErrors) Error() string {
	if len(v.Errors) == 0 {
		return "validation failed"
	}

	return v.Errors[0].Message
}

func (v *ValidationErrors) Add(field, message, code string) {
	v.Errors = append(v.Errors, ValidationError{
		Field:   field,
		Message: message,
		Code:    code,
	})
}

func (v *ValidationErrors) HasErrors() bool {
	return len(v.Errors) > 0
}

// OrNil returns v as an error only when it holds at least one field error.
func (v *ValidationErrors) OrNil() error {
	if !v.HasErrors() {
		return nil
	}

	return v
}

func NewValidationErrors() *ValidationErrors {
	return &ValidationErrors{
		Errors: make([]ValidationError, 0),
	}
}
