package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEmail_NormalizesToLowercase(t *testing.T) {
	e, err := NewEmail("  John.Doe@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "john.doe@example.com", e.String())
}

func TestNewEmail_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := NewEmail(raw)
		require.Error(t, err, "raw=%q", raw)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "email", verr.Field)
		assert.Equal(t, "Email não pode ser vazio.", verr.Message)
	}
}

func TestNewEmail_Invalid(t *testing.T) {
	cases := []string{
		"plainaddress",
		"@missingusername.com",
		"username@.com",
		"username@com",
		"username@domain..com",
		"user name@example.com",
		"user@exam ple.com",
		"double@@example.com",
	}
	for _, raw := range cases {
		_, err := NewEmail(raw)
		require.Error(t, err, "raw=%q", raw)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Email inválido.", verr.Message)
	}
}

func TestNewEmail_ValidForms(t *testing.T) {
	cases := []string{
		"a@b.co",
		"first.last@sub.domain.example",
		"user+tag@example.com",
	}
	for _, raw := range cases {
		_, err := NewEmail(raw)
		assert.NoError(t, err, "raw=%q", raw)
	}
}

func TestEmail_Equals(t *testing.T) {
	a, err := NewEmail("User@Example.com")
	require.NoError(t, err)
	b, err := NewEmail("user@example.com")
	require.NoError(t, err)

	assert.True(t, a.Equals(b))
	assert.False(t, a.IsZero())
	assert.True(t, Email{}.IsZero())
}
