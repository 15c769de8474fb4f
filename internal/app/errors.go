package app

import "fmt"

// AppErrorType represents the type of application error.
type AppErrorType int

const (
	// ValidationFailed indicates missing or malformed caller input.
	ValidationFailed AppErrorType = iota
	// TableParseFailed indicates the partition table could not supply the
	// size or write address.
	TableParseFailed
	// PreconditionFailed indicates a filesystem precondition was not met.
	PreconditionFailed
	// BootstrapFailed indicates the default input directory could not be seeded.
	BootstrapFailed
	// ToolFailed indicates an external tool failed or could not be started.
	ToolFailed
)

// String returns the error type name.
func (t AppErrorType) String() string {
	switch t {
	case ValidationFailed:
		return "validation"
	case TableParseFailed:
		return "partition table"
	case PreconditionFailed:
		return "precondition"
	case BootstrapFailed:
		return "bootstrap"
	case ToolFailed:
		return "tool"
	default:
		return fmt.Sprintf("AppErrorType(%d)", int(t))
	}
}

// AppError represents an application-layer error.
type AppError struct {
	// Type is the error type.
	Type AppErrorType
	// Message is the error message.
	Message string
	// Cause is the underlying error.
	Cause error
}

// Error returns the error message.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// NewAppError creates a new AppError.
func NewAppError(errType AppErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewValidationError creates a validation error.
func NewValidationError(message string, cause error) *AppError {
	return NewAppError(ValidationFailed, message, cause)
}

// NewTableParseError creates a partition table error.
func NewTableParseError(message string, cause error) *AppError {
	return NewAppError(TableParseFailed, message, cause)
}

// NewPreconditionError creates a filesystem precondition error.
func NewPreconditionError(message string, cause error) *AppError {
	return NewAppError(PreconditionFailed, message, cause)
}

// NewBootstrapError creates a bootstrap error.
func NewBootstrapError(message string, cause error) *AppError {
	return NewAppError(BootstrapFailed, message, cause)
}

// NewToolError creates an external tool error.
func NewToolError(message string, cause error) *AppError {
	return NewAppError(ToolFailed, message, cause)
}
