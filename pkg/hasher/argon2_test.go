package hasher

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testParams keeps the key derivation cheap enough for the test suite.
func testParams() Params {
	return Params{
		Memory:      8 * 1024,
		Time:        1,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

func TestArgon2_HashAndVerify(t *testing.T) {
	a := NewArgon2(testParams())

	digest, err := a.Hash("Teste@123")
	require.NoError(t, err)

	assert.True(t, IsHash(digest))
	assert.NotContains(t, digest, "Teste@123")

	ok, err := a.Verify("Teste@123", digest)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = a.Verify("Wrong@123", digest)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestArgon2_HashIsSalted(t *testing.T) {
	a := NewArgon2(testParams())

	d1, err := a.Hash("Teste@123")
	require.NoError(t, err)
	d2, err := a.Hash("Teste@123")
	require.NoError(t, err)

	assert.NotEqual(t, d1, d2)
}

func TestArgon2_VerifyReadsEmbeddedParams(t *testing.T) {
	// Digest produced with one parameter set verifies under a service
	// configured with another.
	producer := NewArgon2(testParams())
	digest, err := producer.Hash("Teste@123")
	require.NoError(t, err)

	verifier := NewArgon2(Params{Memory: 16 * 1024, Time: 2, Parallelism: 2, SaltLength: 16, KeyLength: 32})
	ok, err := verifier.Verify("Teste@123", digest)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestArgon2_VerifyRejectsMalformedDigests(t *testing.T) {
	a := NewArgon2(testParams())

	cases := []string{
		"",
		"Teste@123",
		"$argon2id$",
		"$argon2i$v=19$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1$c2FsdA$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$%%%$a2V5",
		"$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$",
	}
	for _, digest := range cases {
		_, err := a.Verify("Teste@123", digest)
		assert.ErrorIs(t, err, ErrInvalidDigest, "digest=%q", digest)
	}
}

func TestIsHash(t *testing.T) {
	assert.True(t, IsHash("$argon2id$v=19$m=8192,t=1,p=1$c2FsdA$a2V5"))
	assert.False(t, IsHash("plaintext"))
	assert.False(t, IsHash("$2b$12$bcryptstyle"))
}

func TestNewArgon2_ZeroParamsFallBackToDefaults(t *testing.T) {
	a := NewArgon2(Params{})
	digest, err := a.Hash("Teste@123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(digest, Marker))
}
