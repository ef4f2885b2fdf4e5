package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
)

func TestRegister(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	svc := NewUserService(repo, h, nil)

	u, err := svc.Register(context.Background(), "Luiza", "Luiza@Example.COM", "Teste@123")
	require.NoError(t, err)

	assert.NotZero(t, u.ID)
	assert.Equal(t, "luiza@example.com", u.Email.String())
	assert.Contains(t, repo.users, "luiza@example.com")
	assert.True(t, u.VerifyPassword(h, "Teste@123"))
}

func TestRegister_DuplicateEmailAnyCase(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	svc := NewUserService(repo, h, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "Luiza", "luiza@example.com", "Teste@123")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "Other", "LUIZA@EXAMPLE.COM", "Outra@456")
	assert.ErrorIs(t, err, repository.ErrEmailAlreadyRegistered)
}

func TestRegister_ValidationPropagates(t *testing.T) {
	h := testHasher()
	svc := NewUserService(newFakeRepo(), h, nil)

	_, err := svc.Register(context.Background(), "Luiza", "luiza@example.com", "weak")
	var verr *valueobject.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "password", verr.Field)
}

func TestGetByEmail(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	seeded := seedUser(t, repo, h)
	svc := NewUserService(repo, h, nil)
	ctx := context.Background()

	u, err := svc.GetByEmail(ctx, "LUIZA@example.com")
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, u.ID)

	_, err = svc.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = svc.GetByEmail(ctx, "not-an-email")
	var verr *valueobject.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestPatch_UpdatesAndTouches(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	u := seedUser(t, repo, h)
	svc := NewUserService(repo, h, nil)
	before := u.UpdatedAt

	time.Sleep(10 * time.Millisecond)

	name := "Luiza Q."
	updated, err := svc.Patch(context.Background(), u, entity.PatchInput{Name: &name})
	require.NoError(t, err)

	assert.Equal(t, "Luiza Q.", updated.Name)
	assert.True(t, updated.UpdatedAt.After(before))
	assert.Equal(t, "Luiza Q.", repo.users["luiza@example.com"].Name)
}

func TestPatch_EmailChangeChecksUniqueness(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	u := seedUser(t, repo, h)
	other, err := entity.NewUser("Other", "other@example.com", "Outra@456", h)
	require.NoError(t, err)
	require.NoError(t, repo.Insert(context.Background(), other))

	svc := NewUserService(repo, h, nil)

	taken := "other@example.com"
	_, err = svc.Patch(context.Background(), u, entity.PatchInput{Email: &taken})
	assert.ErrorIs(t, err, repository.ErrEmailAlreadyRegistered)
	assert.Equal(t, "luiza@example.com", u.Email.String())
}

func TestPatch_SameEmailIsNotADuplicate(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	u := seedUser(t, repo, h)
	svc := NewUserService(repo, h, nil)

	// Differently cased spelling of the user's own address.
	same := "Luiza@Example.com"
	_, err := svc.Patch(context.Background(), u, entity.PatchInput{Email: &same})
	require.NoError(t, err)
	assert.Equal(t, "luiza@example.com", u.Email.String())
}

func TestDelete(t *testing.T) {
	h := testHasher()
	repo := newFakeRepo()
	u := seedUser(t, repo, h)
	svc := NewUserService(repo, h, nil)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, u))
	assert.NotContains(t, repo.users, "luiza@example.com")

	assert.ErrorIs(t, svc.Delete(ctx, u), repository.ErrNotFound)
}
