package validate

import "github.com/mesh-intelligence/addressbook/pkg/types"

// Source is the read side of a contact collection. The store implements it.
type Source interface {
	All() []types.Contact
}

// IsDuplicatePhone reports whether any contact in src has exactly this phone.
func IsDuplicatePhone(candidate string, src Source) bool {
	return taken(types.FieldPhone, candidate, src, 0)
}

// IsDuplicateEmail reports whether any contact in src has exactly this email.
func IsDuplicateEmail(candidate string, src Source) bool {
	return taken(types.FieldEmail, candidate, src, 0)
}

// Available returns Duplicate if a contact other than except already holds
// candidate in field f, and Valid otherwise. Pass except as 0 to check
// against every contact. Names are never unique, so FieldName is always
// Valid.
func Available(f types.Field, candidate string, src Source, except int) Status {
	if f == types.FieldName {
		return Valid
	}
	if taken(f, candidate, src, except) {
		return Duplicate
	}
	return Valid
}

func taken(f types.Field, candidate string, src Source, except int) bool {
	for _, c := range src.All() {
		if except != 0 && c.ID == except {
			continue
		}
		if c.Value(f) == candidate {
			return true
		}
	}
	return false
}
