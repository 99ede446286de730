package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound      = errors.New("resource not found")
	ErrResourceAlreadyExists = errors.New("resource already exists")
	ErrConflict              = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")
)

// Engine errors. Configuration and integrity errors abort an evaluation for
// the whole request; partial financial figures are never returned.
var (
	// ErrConfiguration means a (role, program level, department) combination has
	// no rate table entry. Fatal; never defaulted to a fallback rate.
	ErrConfiguration = errors.New("rate table configuration missing")

	// ErrDataIntegrity means an assignment references a role outside the known
	// enumeration or a group scope matching no student group in the request.
	ErrDataIntegrity = errors.New("request data integrity violation")
)

// Request errors
var (
	ErrRequestNotFound      = errors.New("defense request not found")
	ErrRequestNotEditable   = errors.New("defense request is no longer in draft")
	ErrInvalidStage         = errors.New("invalid workflow stage transition")
	ErrJustificationMissing = errors.New("flagged request requires an uploaded justification document")
)

// Faculty errors
var (
	ErrFacultyMemberNotFound = errors.New("faculty member not found")
	ErrDepartmentNotFound    = errors.New("department not found")
)

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

// File errors
var (
	ErrFileNotFound = errors.New("file not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConfigurationError creates a custom error for a missing rate table entry.
func NewConfigurationError(message string) error {
	return &CustomError{
		Err:     ErrConfiguration,
		Message: message,
	}
}

// NewDataIntegrityError creates a custom error for malformed request data.
func NewDataIntegrityError(message string) error {
	return &CustomError{
		Err:     ErrDataIntegrity,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
