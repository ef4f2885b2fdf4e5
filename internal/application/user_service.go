package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
)

// UserService owns user lifecycle: registration, lookup, patching, and
// deletion. Validation stays in the value objects; this layer adds the
// uniqueness rule and persistence calls.
type UserService struct {
	repo   repository.UserRepository
	hasher valueobject.Hasher
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository, h valueobject.Hasher, logger *logrus.Logger) *UserService {
	return &UserService{repo: repo, hasher: h, logger: logger}
}

// Register builds a new user through the domain factory and persists it.
// The pre-insert existence check is best effort; the storage unique
// constraint is the authority, and a duplicate-key failure surfaces as the
// same ErrEmailAlreadyRegistered.
func (s *UserService) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	u, err := entity.NewUser(name, email, password, s.hasher)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByEmail(ctx, u.Email.String()); err == nil {
		return nil, repository.ErrEmailAlreadyRegistered
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if err := s.repo.Insert(ctx, u); err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"user_id": u.ID, "email": u.Email.String()}).Info("user registered")
	}
	return u, nil
}

// GetByEmail normalizes the address and looks the user up. A miss is
// repository.ErrNotFound here, unlike during authentication.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByEmail(ctx, addr.String())
}

// Patch applies a partial update to the given user. An email change is
// checked for uniqueness before the aggregate mutates, then the storage
// constraint has the final word on Update.
func (s *UserService) Patch(ctx context.Context, u *entity.User, in entity.PatchInput) (*entity.User, error) {
	if in.Email != nil && *in.Email != "" {
		addr, err := valueobject.NewEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		if !addr.Equals(u.Email) {
			if _, err := s.repo.FindByEmail(ctx, addr.String()); err == nil {
				return nil, repository.ErrEmailAlreadyRegistered
			} else if !errors.Is(err, repository.ErrNotFound) {
				return nil, err
			}
		}
	}

	if err := u.Patch(in, s.hasher); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// Delete removes the user. No soft-delete.
func (s *UserService) Delete(ctx context.Context, u *entity.User) error {
	if err := s.repo.Delete(ctx, u); err != nil {
		return err
	}
	if s.logger != nil {
		s.logger.WithField("user_id", u.ID).Info("user deleted")
	}
	return nil
}
