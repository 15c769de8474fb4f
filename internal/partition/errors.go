package partition

import "fmt"

// ErrorType represents the type of partition table error.
type ErrorType int

const (
	// TableUnreadable indicates the table file could not be opened or parsed as CSV.
	TableUnreadable ErrorType = iota
	// EntryMalformed indicates the matching row has a bad offset or size field.
	EntryMalformed
	// EntryNotFound indicates no row carries the requested label.
	EntryNotFound
)

// Error represents a partition table lookup failure.
type Error struct {
	// Type is the error type.
	Type ErrorType
	// Path is the partition table file.
	Path string
	// Label is the partition name that was looked up.
	Label string
	// Message is the error message.
	Message string
	// Cause is the underlying error if any.
	Cause error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("partition table %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("partition table %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying cause error.
func (e *Error) Unwrap() error {
	return e.Cause
}

func newError(typ ErrorType, path, label, message string, cause error) *Error {
	return &Error{
		Type:    typ,
		Path:    path,
		Label:   label,
		Message: message,
		Cause:   cause,
	}
}
