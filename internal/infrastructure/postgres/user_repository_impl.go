package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
	"github.com/lcqueiroz/users-api/pkg/hasher"
)

// DB is the subset of pgxpool.Pool the repository needs. pgxmock satisfies
// it in tests.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// UserRepository persists the User aggregate. Value object marshaling lives
// here and nowhere else: emails are stored as their normalized string,
// passwords as the argon2id digest.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1
	`, email)
	return scanUser(row)
}

func (r *UserRepository) Insert(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, email, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, u.Name, u.Email.String(), u.Password.Secret(), u.CreatedAt, u.UpdatedAt)

	if err := row.Scan(&u.ID); err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailAlreadyRegistered
		}
		return err
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, email = $2, password_hash = $3, updated_at = $4
		WHERE id = $5
	`, u.Name, u.Email.String(), u.Password.Secret(), u.UpdatedAt, u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrEmailAlreadyRegistered
		}
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, u *entity.User) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, u.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	var email, passwordCol string

	if err := row.Scan(&u.ID, &u.Name, &email, &passwordCol, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	addr, err := valueobject.NewEmail(email)
	if err != nil {
		return nil, fmt.Errorf("user %d: stored email rejected by domain: %w", u.ID, err)
	}
	u.Email = addr

	// The password column is unlabeled; the digest marker is the only signal
	// that the value went through the hasher. Anything else is a corrupt row.
	if !hasher.IsHash(passwordCol) {
		return nil, fmt.Errorf("user %d: password column does not carry a recognized digest", u.ID)
	}
	u.Password = valueobject.PasswordFromHash(passwordCol)
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

var _ repository.UserRepository = (*UserRepository)(nil)
