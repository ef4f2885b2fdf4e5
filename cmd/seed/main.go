package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"github.com/lcqueiroz/users-api/config"
	"github.com/lcqueiroz/users-api/internal/domain/entity"
	"github.com/lcqueiroz/users-api/internal/domain/repository"
	pginfra "github.com/lcqueiroz/users-api/internal/infrastructure/postgres"
	"github.com/lcqueiroz/users-api/pkg/hasher"
)

// Seeds a demo account through the domain factory so the stored row carries
// a real argon2id digest.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := pginfra.NewUserRepository(pool)
	h := hasher.NewArgon2(hasher.DefaultParams())

	u, err := entity.NewUser("Demo User", "demo@example.com", "Teste@123", h)
	if err != nil {
		log.Fatalf("failed to build seed user: %v", err)
	}

	if err := repo.Insert(ctx, u); err != nil {
		if errors.Is(err, repository.ErrEmailAlreadyRegistered) {
			fmt.Printf("seed user already present: %s\n", u.Email.String())
			return
		}
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d email=%s\n", u.ID, u.Email.String())
}
