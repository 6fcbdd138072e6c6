package types

import (
	"errors"
	"fmt"
)

// Validation errors. These are always recoverable: the caller re-prompts or
// cancels.
var (
	ErrEmptyInput        = errors.New("input is empty")
	ErrInvalidCharacters = errors.New("input contains invalid characters")
	ErrInvalidLength     = errors.New("input has invalid length")
	ErrInvalidFormat     = errors.New("input has invalid format")
	ErrDuplicateValue    = errors.New("value already exists")
)

// Resource errors. The current operation is aborted and the store is left as
// it was.
var (
	ErrResourceExhausted = errors.New("resource exhausted")
)

// Persistence errors. ErrFileUnavailable and ErrMalformedHeader abort a whole
// load or save; ErrMalformedRecord is reported per line and skipped.
var (
	ErrFileUnavailable = errors.New("file unavailable")
	ErrMalformedHeader = errors.New("malformed record count header")
	ErrMalformedRecord = errors.New("malformed record")
)

// Store errors.
var (
	ErrNotFound     = errors.New("contact not found")
	ErrUnknownField = errors.New("unknown field")
)

// FieldError reports which contact field failed validation. It unwraps to one
// of the validation sentinels above.
type FieldError struct {
	Field Field
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// ErrorClass groups errors by how a caller should react to them.
type ErrorClass int

const (
	// ClassUser covers input the user can correct: validation failures and
	// missing contacts.
	ClassUser ErrorClass = iota + 1
	// ClassSystem covers IO, format and resource failures.
	ClassSystem
)

func (c ErrorClass) String() string {
	switch c {
	case ClassUser:
		return "user"
	case ClassSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Classify returns the class of err. Anything not recognised as a user error
// is treated as a system error.
func Classify(err error) ErrorClass {
	switch {
	case errors.Is(err, ErrEmptyInput),
		errors.Is(err, ErrInvalidCharacters),
		errors.Is(err, ErrInvalidLength),
		errors.Is(err, ErrInvalidFormat),
		errors.Is(err, ErrDuplicateValue),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnknownField):
		return ClassUser
	default:
		return ClassSystem
	}
}
