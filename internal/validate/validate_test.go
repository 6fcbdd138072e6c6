package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

func TestName(t *testing.T) {
	tests := []struct {
		in   string
		want Status
	}{
		{"", EmptyInput},
		{"Ada", Valid},
		{"Ada Lovelace", Valid},
		{"  ", Valid},
		{"Ada\tKing", Valid},
		{"R2D2", InvalidCharacters},
		{"O'Brien", InvalidCharacters},
		{"Jean-Luc", InvalidCharacters},
		{"Zoë", InvalidCharacters},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.in))
		})
	}
}

func TestNameMatchesCharacterClasses(t *testing.T) {
	// Every single byte is either a letter/whitespace or rejected.
	for b := 0; b < 256; b++ {
		s := string([]byte{byte(b)})
		want := InvalidCharacters
		if isAlpha(byte(b)) || isSpace(byte(b)) {
			want = Valid
		}
		assert.Equal(t, want, Name(s), "byte %d", b)
	}
}

func TestPhone(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Status
	}{
		{"empty", "", EmptyInput},
		{"ten digits", "0123456789", Valid},
		{"short is a length error", "12345", InvalidLength},
		{"short letters still a length error", "abcde", InvalidLength},
		{"eleven digits", "01234567890", InvalidLength},
		{"letter inside", "01234a6789", InvalidCharacters},
		{"dashes", "012-345-67", InvalidCharacters},
		{"spaces", "012 345 67", InvalidCharacters},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Phone(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Status
	}{
		{"minimal", "a@b.c", Valid},
		{"typical", "ada.lovelace@engine.org", Valid},
		{"digits before markers", "a1@b2.c", Valid},
		{"empty", "", EmptyInput},
		{"uppercase", "A@b.c", InvalidFormat},
		{"uppercase in domain", "a@B.c", InvalidFormat},
		{"no at", "ab.com", InvalidFormat},
		{"no dot", "a@bcom", InvalidFormat},
		{"dot only before at", "a.b@com", InvalidFormat},
		{"nothing before at", "@b.com", InvalidFormat},
		{"symbol before at", "a_@b.com", InvalidFormat},
		{"dot right after at", "a@.com", InvalidFormat},
		{"dot right after at with later dot", "a@.b.com", Valid},
		{"empty suffix accepted", "a@b.", Valid},
		{"dot first", ".@b", InvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Email(tt.in))
		})
	}
}

func TestFieldDispatch(t *testing.T) {
	assert.Equal(t, Valid, Field(types.FieldName, "Ada"))
	assert.Equal(t, InvalidLength, Field(types.FieldPhone, "1"))
	assert.Equal(t, InvalidFormat, Field(types.FieldEmail, "nope"))
	assert.Equal(t, InvalidFormat, Field(types.Field(42), "x"))
}

func TestStatusErr(t *testing.T) {
	assert.NoError(t, Valid.Err())
	assert.ErrorIs(t, EmptyInput.Err(), types.ErrEmptyInput)
	assert.ErrorIs(t, InvalidCharacters.Err(), types.ErrInvalidCharacters)
	assert.ErrorIs(t, InvalidLength.Err(), types.ErrInvalidLength)
	assert.ErrorIs(t, InvalidFormat.Err(), types.ErrInvalidFormat)
	assert.ErrorIs(t, Duplicate.Err(), types.ErrDuplicateValue)
	assert.True(t, strings.Contains(Duplicate.String(), "already exists"))
}
