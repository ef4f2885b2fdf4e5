// Package token issues and verifies the signed access/refresh tokens that
// carry user identity between requests.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Type discriminates access tokens from refresh tokens. A token is only
// valid for the endpoint expecting its type.
type Type string

const (
	TypeAccess  Type = "access"
	TypeRefresh Type = "refresh"
)

// Verification failure kinds. All of them collapse to an unauthorized
// outcome at the HTTP boundary but stay distinguishable for logging and
// tests.
var (
	ErrMalformed        = errors.New("token malformed")
	ErrSignatureInvalid = errors.New("token signature invalid")
	ErrExpired          = errors.New("token expired")
	ErrWrongType        = errors.New("unexpected token type")
)

// Claims are the signed claims set: subject is the normalized email, ID and
// Name are optional identity fields, TokenType matches the Type constants.
type Claims struct {
	ID        int64  `json:"id,omitempty"`
	Name      string `json:"name,omitempty"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

// Service signs and verifies tokens with a symmetric secret. It is pure with
// respect to process state except for the clock.
type Service struct {
	secret     []byte
	method     jwt.SigningMethod
	accessTTL  time.Duration
	refreshTTL time.Duration
}

// NewService builds a Service for the configured algorithm. Only HMAC-family
// algorithms are accepted; the same secret signs both token types.
func NewService(secret, algorithm string, accessTTL, refreshTTL time.Duration) (*Service, error) {
	if secret == "" {
		return nil, errors.New("token: empty signing secret")
	}
	method := jwt.GetSigningMethod(algorithm)
	if method == nil {
		return nil, fmt.Errorf("token: unknown signing algorithm %q", algorithm)
	}
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("token: algorithm %q is not symmetric", algorithm)
	}
	return &Service{
		secret:     []byte(secret),
		method:     method,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}, nil
}

func (s *Service) AccessTTL() time.Duration  { return s.accessTTL }
func (s *Service) RefreshTTL() time.Duration { return s.refreshTTL }

// IssueInput names the identity fields embedded in a token. Subject is
// required; ID and Name are carried on access tokens only.
type IssueInput struct {
	Subject string
	ID      int64
	Name    string
}

// Issue signs a token of the given type expiring after ttl.
func (s *Service) Issue(in IssueInput, ttl time.Duration, typ Type) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := Claims{
		ID:        in.ID,
		Name:      in.Name,
		TokenType: string(typ),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   in.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
	return signed, exp, err
}

// IssueAccess signs an access token with the configured access TTL.
func (s *Service) IssueAccess(in IssueInput) (string, time.Time, error) {
	return s.Issue(in, s.accessTTL, TypeAccess)
}

// IssueRefresh signs a refresh token carrying only the subject.
func (s *Service) IssueRefresh(subject string) (string, time.Time, error) {
	return s.Issue(IssueInput{Subject: subject}, s.refreshTTL, TypeRefresh)
}

// Verify decodes a token, checks signature and expiry, and requires the type
// claim to equal expected.
func (s *Service) Verify(tokenStr string, expected Type) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrSignatureInvalid
		default:
			return nil, ErrMalformed
		}
	}
	if !tkn.Valid {
		return nil, ErrMalformed
	}
	if claims.TokenType != string(expected) {
		return nil, ErrWrongType
	}
	return claims, nil
}
