package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/geocoder89/portfoliohub/internal/config"
	"github.com/geocoder89/portfoliohub/internal/db"
	"github.com/geocoder89/portfoliohub/internal/observability"
	"github.com/geocoder89/portfoliohub/internal/repo/postgres"
)

func main() {
	demo := flag.Int("demo", 0, "number of fake projects to add")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for demo data")
	flag.Parse()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		log.Error("connect postgres", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		log.Error("migrate", "err", err)
		os.Exit(1)
	}

	st := postgres.NewStore(pool, nil)

	if err := db.EnsureAdminUser(ctx, st.Users, cfg); err != nil {
		log.Error("ensure admin", "err", err)
		os.Exit(1)
	}

	if err := db.SeedDefaults(ctx, st.Categories, st.Location); err != nil {
		log.Error("seed defaults", "err", err)
		os.Exit(1)
	}
	log.Info("defaults seeded", "categories", len(db.DefaultCategories))

	created, err := db.SeedDemo(ctx, st.Categories, st.Skills, st.Projects, *demo, *seed)
	if err != nil {
		log.Error("seed demo projects", "err", err, "created", len(created))
		os.Exit(1)
	}
	if len(created) > 0 {
		log.Info("demo projects seeded", "count", len(created))
	}
}
