// Package rediscache decorates the user repository with a short-TTL
// read-through cache keyed by normalized email. Postgres stays the source of
// truth; a nil client degrades to pass-through.
package rediscache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	"github.com/lcqueiroz/users-api/internal/domain/valueobject"
)

type UserCache struct {
	next   repository.UserRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func NewUserCache(next repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *UserCache {
	return &UserCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func cacheKey(email string) string { return "user:email:" + email }

// userDoc is the flat cache shape; the digest string round-trips exactly.
type userDoc struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (c *UserCache) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	if c.rdb == nil {
		return c.next.FindByEmail(ctx, email)
	}

	if raw, err := c.rdb.Get(ctx, cacheKey(email)).Bytes(); err == nil {
		if u, derr := decodeUser(raw); derr == nil {
			return u, nil
		}
		// Undecodable entry: drop it and fall through to storage.
		c.rdb.Del(ctx, cacheKey(email))
	} else if !errors.Is(err, redis.Nil) && c.logger != nil {
		c.logger.WithError(err).WithField("key", cacheKey(email)).Warn("user cache read failed")
	}

	u, err := c.next.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c.store(ctx, u)
	return u, nil
}

func (c *UserCache) Insert(ctx context.Context, u *entity.User) error {
	if err := c.next.Insert(ctx, u); err != nil {
		return err
	}
	c.store(ctx, u)
	return nil
}

// Update invalidates the entry under the current email. When the patch
// changed the address, the entry under the old one expires with its TTL.
func (c *UserCache) Update(ctx context.Context, u *entity.User) error {
	if err := c.next.Update(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, u.Email.String())
	return nil
}

func (c *UserCache) Delete(ctx context.Context, u *entity.User) error {
	if err := c.next.Delete(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, u.Email.String())
	return nil
}

func (c *UserCache) store(ctx context.Context, u *entity.User) {
	if c.rdb == nil {
		return
	}
	doc := userDoc{
		ID:           u.ID,
		Name:         u.Name,
		Email:        u.Email.String(),
		PasswordHash: u.Password.Secret(),
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(doc.Email), b, c.ttl).Err(); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("key", cacheKey(doc.Email)).Warn("user cache write failed")
	}
}

func (c *UserCache) invalidate(ctx context.Context, email string) {
	if c.rdb == nil {
		return
	}
	if err := c.rdb.Del(ctx, cacheKey(email)).Err(); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("key", cacheKey(email)).Warn("user cache invalidation failed")
	}
}

func decodeUser(raw []byte) (*entity.User, error) {
	var doc userDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	addr, err := valueobject.NewEmail(doc.Email)
	if err != nil {
		return nil, err
	}
	return &entity.User{
		ID:        doc.ID,
		Name:      doc.Name,
		Email:     addr,
		Password:  valueobject.PasswordFromHash(doc.PasswordHash),
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

var _ repository.UserRepository = (*UserCache)(nil)
