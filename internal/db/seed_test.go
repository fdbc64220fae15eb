package db_test

import (
	"context"
	"testing"

	"github.com/geocoder89/portfoliohub/internal/config"
	"github.com/geocoder89/portfoliohub/internal/db"
	"github.com/geocoder89/portfoliohub/internal/domain/project"
	"github.com/geocoder89/portfoliohub/internal/repo/memory"
	"github.com/geocoder89/portfoliohub/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDefaultsIsIdempotent(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	require.NoError(t, db.SeedDefaults(ctx, st.Categories, st.Location))
	require.NoError(t, db.SeedDefaults(ctx, st.Categories, st.Location))

	cats, err := st.Categories.List(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, len(db.DefaultCategories))

	loc, err := st.Location.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, db.DefaultCity, loc.City)
	assert.Equal(t, db.DefaultOfficeHours, loc.OfficeHours)
}

func TestSeedDefaultsKeepsExistingLocation(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	_, err := st.Location.Upsert(ctx, "Austin, TX", "9-5")
	require.NoError(t, err)

	require.NoError(t, db.SeedDefaults(ctx, st.Categories, st.Location))

	loc, err := st.Location.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Austin, TX", loc.City)
}

func TestEnsureAdminUser(t *testing.T) {
	ctx := context.Background()
	st := memory.New()
	cfg := config.Config{
		AdminEmail:    "admin@example.com",
		AdminPassword: "changeme123",
		AdminName:     "Admin",
		AdminRole:     "admin",
	}

	require.NoError(t, db.EnsureAdminUser(ctx, st.Users, cfg))
	require.NoError(t, db.EnsureAdminUser(ctx, st.Users, cfg))

	u, err := st.Users.GetByEmail(ctx, cfg.AdminEmail)
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	assert.NoError(t, security.CheckPassword(u.PasswordHash, cfg.AdminPassword))

	// no credentials configured: nothing to do
	assert.NoError(t, db.EnsureAdminUser(ctx, memory.New().Users, config.Config{}))
}

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	st := memory.New()

	_, err := db.SeedDemo(ctx, st.Categories, st.Skills, st.Projects, 3, 1)
	require.Error(t, err, "demo data needs categories first")

	require.NoError(t, db.SeedDefaults(ctx, st.Categories, st.Location))

	created, err := db.SeedDemo(ctx, st.Categories, st.Skills, st.Projects, 5, 42)
	require.NoError(t, err)
	assert.Len(t, created, 5)

	items, total, err := st.Projects.List(ctx, project.ListFilter{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	for _, p := range items {
		assert.NotEmpty(t, p.Title)
		assert.NotZero(t, p.Category.ID)
	}

	// skills are reused on a second run
	_, err = db.SeedDemo(ctx, st.Categories, st.Skills, st.Projects, 1, 7)
	require.NoError(t, err)
	skills, err := st.Skills.List(ctx)
	require.NoError(t, err)
	assert.Len(t, skills, 6)
}
