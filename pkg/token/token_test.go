package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	s, err := NewService("test-secret", "HS256", 30*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)
	return s
}

func TestNewService_RejectsBadConfig(t *testing.T) {
	_, err := NewService("", "HS256", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewService("secret", "HS1024", time.Minute, time.Hour)
	assert.Error(t, err)

	_, err = NewService("secret", "RS256", time.Minute, time.Hour)
	assert.Error(t, err)

	for _, alg := range []string{"HS256", "HS384", "HS512"} {
		_, err := NewService("secret", alg, time.Minute, time.Hour)
		assert.NoError(t, err, "alg=%s", alg)
	}
}

func TestIssueAccess_RoundTrip(t *testing.T) {
	s := newTestService(t)

	signed, exp, err := s.IssueAccess(IssueInput{Subject: "user@example.com", ID: 42, Name: "User"})
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), exp, 5*time.Second)

	claims, err := s.Verify(signed, TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, "User", claims.Name)
	assert.Equal(t, string(TypeAccess), claims.TokenType)
}

func TestIssueRefresh_CarriesSubjectOnly(t *testing.T) {
	s := newTestService(t)

	signed, _, err := s.IssueRefresh("user@example.com")
	require.NoError(t, err)

	claims, err := s.Verify(signed, TypeRefresh)
	require.NoError(t, err)
	assert.Equal(t, "user@example.com", claims.Subject)
	assert.Zero(t, claims.ID)
	assert.Empty(t, claims.Name)
}

func TestVerify_WrongType(t *testing.T) {
	s := newTestService(t)

	access, _, err := s.IssueAccess(IssueInput{Subject: "user@example.com"})
	require.NoError(t, err)
	refresh, _, err := s.IssueRefresh("user@example.com")
	require.NoError(t, err)

	_, err = s.Verify(access, TypeRefresh)
	assert.ErrorIs(t, err, ErrWrongType)

	_, err = s.Verify(refresh, TypeAccess)
	assert.ErrorIs(t, err, ErrWrongType)
}

func TestVerify_Expired(t *testing.T) {
	s := newTestService(t)

	signed, _, err := s.Issue(IssueInput{Subject: "user@example.com"}, -time.Minute, TypeAccess)
	require.NoError(t, err)

	_, err = s.Verify(signed, TypeAccess)
	assert.ErrorIs(t, err, ErrExpired)
}

func TestVerify_WrongSecret(t *testing.T) {
	s := newTestService(t)
	other, err := NewService("another-secret", "HS256", time.Minute, time.Hour)
	require.NoError(t, err)

	signed, _, err := other.IssueAccess(IssueInput{Subject: "user@example.com"})
	require.NoError(t, err)

	_, err = s.Verify(signed, TypeAccess)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerify_Malformed(t *testing.T) {
	s := newTestService(t)

	for _, raw := range []string{"", "garbage", "a.b.c"} {
		_, err := s.Verify(raw, TypeAccess)
		assert.ErrorIs(t, err, ErrMalformed, "raw=%q", raw)
	}
}
