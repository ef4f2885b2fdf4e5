package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
	"github.com/lcqueiroz/users-api/pkg/token"
)

// ErrInvalidCredentials covers both "no such user" and "wrong password".
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService orchestrates credential lookup, password verification, and
// token issuance. All operations are read-only with respect to storage.
type AuthService struct {
	repo   repository.UserRepository
	tokens *token.Service
	hasher valueobject.Hasher
	logger *logrus.Logger
}

func NewAuthService(repo repository.UserRepository, tokens *token.Service, h valueobject.Hasher, logger *logrus.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, hasher: h, logger: logger}
}

// TokenPair bundles a freshly issued access/refresh token pair.
type TokenPair struct {
	AccessToken   string
	AccessExpiry  time.Time
	RefreshToken  string
	RefreshExpiry time.Time
}

// Authenticate resolves a user by normalized email and verifies the
// password. Lookup misses and mismatches both come back as
// ErrInvalidCredentials; infrastructure failures propagate as themselves.
func (s *AuthService) Authenticate(ctx context.Context, email, plain string) (*entity.User, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	u, err := s.repo.FindByEmail(ctx, addr.String())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !u.VerifyPassword(s.hasher, plain) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// Login authenticates and issues a token pair. The access token carries the
// identity claims; the refresh token carries the subject only.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*entity.User, TokenPair, error) {
	u, err := s.Authenticate(ctx, email, plain)
	if err != nil {
		return nil, TokenPair{}, err
	}

	access, aexp, err := s.tokens.IssueAccess(token.IssueInput{
		Subject: u.Email.String(),
		ID:      u.ID,
		Name:    u.Name,
	})
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("issue access token failed")
		}
		return nil, TokenPair{}, err
	}
	refresh, rexp, err := s.tokens.IssueRefresh(u.Email.String())
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).WithField("user_id", u.ID).Error("issue refresh token failed")
		}
		return nil, TokenPair{}, err
	}

	return u, TokenPair{
		AccessToken:   access,
		AccessExpiry:  aexp,
		RefreshToken:  refresh,
		RefreshExpiry: rexp,
	}, nil
}

// Refresh verifies a refresh-typed token, re-resolves the user it names, and
// issues a new access token. Any verification failure, a missing subject, or
// a vanished user all collapse to ErrInvalidCredentials.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*entity.User, string, time.Time, error) {
	claims, err := s.tokens.Verify(refreshToken, token.TypeRefresh)
	if err != nil {
		if s.logger != nil {
			s.logger.WithError(err).Debug("refresh token rejected")
		}
		return nil, "", time.Time{}, ErrInvalidCredentials
	}
	if claims.Subject == "" {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	u, err := s.repo.FindByEmail(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}

	access, exp, err := s.tokens.IssueAccess(token.IssueInput{
		Subject: u.Email.String(),
		ID:      u.ID,
		Name:    u.Name,
	})
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return u, access, exp, nil
}
