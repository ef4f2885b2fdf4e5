package entity

import (
	"time"

	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
)

// User is the aggregate root for the accounts domain. Email and Password are
// value objects; the Password always holds a digest once the aggregate is
// built. ID is assigned by storage and is zero pre-persist.
type User struct {
	ID        int64
	Name      string
	Email     valueobject.Email
	Password  valueobject.Password
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser validates inputs through the value objects, hashes the password,
// and stamps both timestamps. Validation failures propagate unchanged.
func NewUser(name, rawEmail, rawPassword string, h valueobject.Hasher) (*User, error) {
	email, err := valueobject.NewEmail(rawEmail)
	if err != nil {
		return nil, err
	}
	pwd, err := valueobject.NewPassword(rawPassword)
	if err != nil {
		return nil, err
	}
	digest, err := h.Hash(pwd.Secret())
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &User{
		Name:      name,
		Email:     email,
		Password:  valueobject.PasswordFromHash(digest),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PatchInput carries optional field changes; nil means "leave unchanged".
type PatchInput struct {
	Name     *string
	Email    *string
	Password *string
}

// Patch applies the present fields and always touches UpdatedAt. Email and
// password changes re-run value object validation; a new password is
// re-hashed. Uniqueness of a new email is the caller's responsibility.
func (u *User) Patch(in PatchInput, h valueobject.Hasher) error {
	if in.Name != nil && *in.Name != "" {
		u.Name = *in.Name
	}
	if in.Email != nil && *in.Email != "" {
		email, err := valueobject.NewEmail(*in.Email)
		if err != nil {
			return err
		}
		u.Email = email
	}
	if in.Password != nil && *in.Password != "" {
		pwd, err := valueobject.NewPassword(*in.Password)
		if err != nil {
			return err
		}
		digest, err := h.Hash(pwd.Secret())
		if err != nil {
			return err
		}
		u.Password = valueobject.PasswordFromHash(digest)
	}
	u.Touch()
	return nil
}

// Touch refreshes UpdatedAt.
func (u *User) Touch() { u.UpdatedAt = time.Now() }

// VerifyPassword checks plaintext against the stored digest.
func (u *User) VerifyPassword(h valueobject.Hasher, plain string) bool {
	return u.Password.Verify(h, plain)
}
