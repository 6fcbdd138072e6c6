package types

import "fmt"

// Field length ceilings. Phone numbers are exactly PhoneLength digits once
// validated; the persisted file tolerates up to MaxPhoneFieldLength bytes.
const (
	MaxNameLength       = 49
	PhoneLength         = 10
	MaxPhoneFieldLength = 19
	MaxEmailLength      = 49
)

// Contact is one named record with a phone number and an email address.
// ID is assigned by the store on creation and never changes afterwards.
type Contact struct {
	ID    int    `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Phone string `json:"phone" yaml:"phone"`
	Email string `json:"email" yaml:"email"`
}

// Value returns the contact's value for the given field.
// An unknown field yields the empty string.
func (c Contact) Value(f Field) string {
	switch f {
	case FieldName:
		return c.Name
	case FieldPhone:
		return c.Phone
	case FieldEmail:
		return c.Email
	default:
		return ""
	}
}

// With returns a copy of c with field f set to value. The ID is untouched.
func (c Contact) With(f Field, value string) Contact {
	switch f {
	case FieldName:
		c.Name = value
	case FieldPhone:
		c.Phone = value
	case FieldEmail:
		c.Email = value
	}
	return c
}

// Field identifies one of the mutable, searchable contact fields.
type Field int

// Searchable fields. The numeric values match the menu ordering.
const (
	FieldName Field = iota + 1
	FieldPhone
	FieldEmail
)

// Fields lists every field in menu order.
var Fields = []Field{FieldName, FieldPhone, FieldEmail}

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldPhone:
		return "phone"
	case FieldEmail:
		return "email"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ParseField maps "name", "phone" or "email" to a Field.
// Returns ErrUnknownField for anything else.
func ParseField(s string) (Field, error) {
	for _, f := range Fields {
		if f.String() == s {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// MaxLength returns the length ceiling enforced on input for the field.
func (f Field) MaxLength() int {
	switch f {
	case FieldName:
		return MaxNameLength
	case FieldPhone:
		return PhoneLength
	case FieldEmail:
		return MaxEmailLength
	default:
		return 0
	}
}
