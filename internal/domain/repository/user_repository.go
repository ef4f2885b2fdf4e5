package repository

import (
	"context"
	"errors"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
)

var (
	// ErrNotFound signals a lookup miss.
	ErrNotFound = errors.New("user not found")
	// ErrEmailAlreadyRegistered signals the unique-email business rule was
	// violated, whether by the best-effort existence check or by the
	// storage-level constraint.
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// UserRepository is the persistence collaborator required by the core.
// Emails passed to FindByEmail must already be normalized.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Insert(ctx context.Context, u *entity.User) error
	Update(ctx context.Context, u *entity.User) error
	Delete(ctx context.Context, u *entity.User) error
}
