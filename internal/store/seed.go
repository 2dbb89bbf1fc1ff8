package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anandda/magazine/internal/auth"
)

// AdminSeed describes the admin account created on first start.
type AdminSeed struct {
	Email    string
	Password string
	Name     string
}

// NewID returns a new random row identifier.
func NewID() string {
	return uuid.NewString()
}

// SeedAdmin creates the admin account unless a user with that email exists.
// An empty email skips seeding.
func SeedAdmin(ctx context.Context, db *sql.DB, seed AdminSeed) error {
	email := strings.TrimSpace(seed.Email)
	if email == "" {
		return nil
	}
	queries := New(db)

	_, err := queries.GetUserByEmail(ctx, email)
	if err == nil {
		slog.Info("admin user already exists, skipping seed", "email", email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(seed.Password)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	name := seed.Name
	if name == "" {
		name = "Administrator"
	}

	now := time.Now().UTC()
	user, err := queries.CreateUser(ctx, CreateUserParams{
		ID:           NewID(),
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         "ADMIN",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created admin user", "id", user.ID, "email", user.Email)
	return nil
}
