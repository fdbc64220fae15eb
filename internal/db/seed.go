package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/geocoder89/portfoliohub/internal/config"
	"github.com/geocoder89/portfoliohub/internal/domain/category"
	"github.com/geocoder89/portfoliohub/internal/domain/location"
	"github.com/geocoder89/portfoliohub/internal/domain/user"
	"github.com/geocoder89/portfoliohub/internal/security"
)

type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (user.User, error)
	Create(ctx context.Context, email, passwordHash, name, role string) (user.User, error)
}

type CategorySeeder interface {
	GetByName(ctx context.Context, name string) (category.Category, error)
	Create(ctx context.Context, name string) (category.Category, error)
}

type LocationSeeder interface {
	Get(ctx context.Context) (location.Location, error)
	Upsert(ctx context.Context, city, officeHours string) (location.Location, error)
}

var DefaultCategories = []string{"Web Design", "iPhone App Design", "Video Projects", "Side Projects"}

const (
	DefaultCity        = "Nashville, TN"
	DefaultOfficeHours = "in office till 6"
)

// EnsureAdminUser creates the configured admin account when it does not exist yet.
func EnsureAdminUser(ctx context.Context, users AdminStore, cfg config.Config) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	_, err := users.GetByEmail(ctx, cfg.AdminEmail)
	if err == nil {
		return nil
	}
	if !errors.Is(err, user.ErrNotFound) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	_, err = users.Create(ctx, cfg.AdminEmail, hash, cfg.AdminName, cfg.AdminRole)
	if errors.Is(err, user.ErrEmailTaken) {
		// another replica won the race
		return nil
	}
	if err == nil {
		slog.Default().InfoContext(ctx, "admin user created", "email", cfg.AdminEmail)
	}
	return err
}

// SeedDefaults adds the starter categories and the office location. Existing rows are left alone.
func SeedDefaults(ctx context.Context, categories CategorySeeder, loc LocationSeeder) error {
	for _, name := range DefaultCategories {
		_, err := categories.GetByName(ctx, name)
		if err == nil {
			continue
		}
		if !errors.Is(err, category.ErrNotFound) {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
		if _, err := categories.Create(ctx, name); err != nil && !errors.Is(err, category.ErrNameTaken) {
			return fmt.Errorf("seed category %q: %w", name, err)
		}
	}

	_, err := loc.Get(ctx)
	if errors.Is(err, location.ErrNotFound) {
		if _, err := loc.Upsert(ctx, DefaultCity, DefaultOfficeHours); err != nil {
			return fmt.Errorf("seed location: %w", err)
		}
		return nil
	}
	return err
}
