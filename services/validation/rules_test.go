package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNonEmptyTrimmed(t *testing.T) {
	assert.False(t, NonEmptyTrimmed(""))
	assert.False(t, NonEmptyTrimmed("   "))
	assert.False(t, NonEmptyTrimmed("\t\n"))
	assert.True(t, NonEmptyTrimmed(" a "))
}

func TestPasswordsMatch(t *testing.T) {
	assert.True(t, PasswordsMatch("secret", "secret"))
	assert.True(t, PasswordsMatch("", ""))
	assert.False(t, PasswordsMatch("secret", "Secret"))
	assert.False(t, PasswordsMatch("secret", "secret "))
}

func TestValidBusinessNumber(t *testing.T) {
	cases := map[string]bool{
		"123-45-67890":  true,
		"1234567890":    true,
		" 123-45-67890": true,
		"123-456-7890":  false,
		"12-345-67890":  false,
		"abc-de-fghij":  false,
		"":              false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidBusinessNumber(in), "input %q", in)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, ValidEmail("name@example.com"))
	assert.False(t, ValidEmail("name@"))
	assert.False(t, ValidEmail(""))
}

func TestStructUsesJSONNamesAndCustomTags(t *testing.T) {
	type signup struct {
		Email          string `json:"email" validate:"required,email"`
		AdditionalInfo string `json:"additionalInfo" validate:"notblank"`
		BusinessNumber string `json:"businessNumber" validate:"bizno"`
	}

	fields := Struct(signup{Email: "bad", AdditionalInfo: "  ", BusinessNumber: "1"})
	require.Len(t, fields, 3)
	assert.Equal(t, "email", fields[0].Field)
	assert.Equal(t, "additionalInfo", fields[1].Field)
	assert.Equal(t, "is required", fields[1].Message)
	assert.Equal(t, "businessNumber", fields[2].Field)

	assert.Nil(t, Struct(signup{Email: "a@b.co", AdditionalInfo: "Acme", BusinessNumber: "123-45-67890"}))
}
