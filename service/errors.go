package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyExists is returned when a record already exists
	ErrAlreadyExists = errors.New("record already exists")
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("record not found")
)

// ErrorKind classifies a validation failure
type ErrorKind int

const (
	KindMissingBody ErrorKind = iota + 1
	KindRequired
	KindMaxLength
	KindInvalidFormat
	KindConstraint
)

func (kind ErrorKind) String() string {
	switch kind {
	case KindMissingBody:
		return "missing-body"
	case KindRequired:
		return "required-field"
	case KindMaxLength:
		return "max-length"
	case KindInvalidFormat:
		return "invalid-format"
	case KindConstraint:
		return "constraint-violation"
	default:
		return "unknown"
	}
}

// ValidationError is a field scoped validation failure
type ValidationError struct {
	Kind    ErrorKind
	Field   string
	Limit   int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func missingBody() error {
	return &ValidationError{Kind: KindMissingBody, Message: "missing request body"}
}

func requiredField(field string) error {
	return &ValidationError{Kind: KindRequired, Field: field, Message: "is required"}
}

func maxLength(field string, limit int) error {
	return &ValidationError{
		Kind:    KindMaxLength,
		Field:   field,
		Limit:   limit,
		Message: fmt.Sprintf("must be at most %d characters", limit),
	}
}

func invalidFormat(field string) error {
	return &ValidationError{Kind: KindInvalidFormat, Field: field, Message: "is invalid"}
}

func constraintViolation(field, message string) error {
	return &ValidationError{Kind: KindConstraint, Field: field, Message: message}
}

// IsValidationError reports whether err carries a ValidationError
func IsValidationError(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}
