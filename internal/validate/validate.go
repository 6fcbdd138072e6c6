package validate

import (
	"strings"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Name accepts a non-empty string made only of ASCII letters and whitespace.
func Name(s string) Status {
	if len(s) == 0 {
		return EmptyInput
	}
	for i := 0; i < len(s); i++ {
		if !isAlpha(s[i]) && !isSpace(s[i]) {
			return InvalidCharacters
		}
	}
	return Valid
}

// Phone accepts exactly ten ASCII digits. The length is checked before the
// content, so "12345" is InvalidLength rather than InvalidCharacters.
func Phone(s string) Status {
	if len(s) == 0 {
		return EmptyInput
	}
	if len(s) != types.PhoneLength {
		return InvalidLength
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return InvalidCharacters
		}
	}
	return Valid
}

// Email accepts lowercase input that contains an '@' followed somewhere by a
// '.', where the byte before the first '@' and the byte before the last '.'
// are both alphanumeric. Nothing after the last '.' is inspected.
func Email(s string) Status {
	if len(s) == 0 {
		return EmptyInput
	}
	for i := 0; i < len(s); i++ {
		if isUpper(s[i]) {
			return InvalidFormat
		}
	}

	at := strings.IndexByte(s, '@')
	dot := strings.LastIndexByte(s, '.')
	if at < 0 || dot < 0 || dot < at {
		return InvalidFormat
	}
	if at == 0 || !isAlnum(s[at-1]) {
		return InvalidFormat
	}
	if dot == 0 || !isAlnum(s[dot-1]) {
		return InvalidFormat
	}
	return Valid
}

// Field dispatches to the format check for f.
func Field(f types.Field, s string) Status {
	switch f {
	case types.FieldName:
		return Name(s)
	case types.FieldPhone:
		return Phone(s)
	case types.FieldEmail:
		return Email(s)
	default:
		return InvalidFormat
	}
}

func isUpper(b byte) bool { return b >= 'A' && b <= 'Z' }
func isLower(b byte) bool { return b >= 'a' && b <= 'z' }
func isAlpha(b byte) bool { return isUpper(b) || isLower(b) }
func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isAlnum(b byte) bool { return isAlpha(b) || isDigit(b) }

// isSpace matches the C locale whitespace set.
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
