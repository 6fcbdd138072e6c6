// Package validate classifies candidate contact field values. The format
// checks are pure functions; the duplicate checks scan a Source.
package validate

import "github.com/mesh-intelligence/addressbook/pkg/types"

// Status is the outcome of a single field check.
type Status int

const (
	Valid Status = iota
	EmptyInput
	InvalidCharacters
	InvalidLength
	InvalidFormat
	Duplicate
)

func (s Status) String() string {
	switch s {
	case Valid:
		return "valid"
	case EmptyInput:
		return "input cannot be empty"
	case InvalidCharacters:
		return "input contains invalid characters"
	case InvalidLength:
		return "input has an invalid length"
	case InvalidFormat:
		return "input has an invalid format"
	case Duplicate:
		return "value already exists in the address book"
	default:
		return "unknown status"
	}
}

// Err maps the status to its error taxonomy sentinel. Valid maps to nil.
func (s Status) Err() error {
	switch s {
	case Valid:
		return nil
	case EmptyInput:
		return types.ErrEmptyInput
	case InvalidCharacters:
		return types.ErrInvalidCharacters
	case InvalidLength:
		return types.ErrInvalidLength
	case InvalidFormat:
		return types.ErrInvalidFormat
	case Duplicate:
		return types.ErrDuplicateValue
	default:
		return types.ErrInvalidFormat
	}
}
