package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geocoder89/portfoliohub/internal/auth"
	"github.com/geocoder89/portfoliohub/internal/cache"
	"github.com/geocoder89/portfoliohub/internal/config"
	"github.com/geocoder89/portfoliohub/internal/db"
	httpx "github.com/geocoder89/portfoliohub/internal/http"
	"github.com/geocoder89/portfoliohub/internal/http/handlers"
	"github.com/geocoder89/portfoliohub/internal/observability"
	"github.com/geocoder89/portfoliohub/internal/ratelimit"
	"github.com/geocoder89/portfoliohub/internal/redisclient"
	"github.com/geocoder89/portfoliohub/internal/repo/memory"
	"github.com/geocoder89/portfoliohub/internal/repo/postgres"
	"github.com/geocoder89/portfoliohub/internal/uploads"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg := config.Load()

	log := observability.NewLogger(cfg.Env)
	slog.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	startCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownTracer, err := observability.InitTracer(startCtx, "portfoliohub", cfg.Env, cfg.OTLPEndpoint)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() {
		ctx, cancel := config.WithTimeout(5 * time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			log.Error("tracer shutdown failed", "err", err)
		}
	}()

	var prom *observability.Prom
	if cfg.MetricsEnabled {
		prom = observability.NewProm(prometheus.DefaultRegisterer)
	}

	checks := map[string]handlers.Check{}

	stores, closeStore, err := openStores(startCtx, cfg, prom, checks, log)
	if err != nil {
		return err
	}
	defer closeStore()

	storage, err := openUploads(startCtx, cfg)
	if err != nil {
		return err
	}
	checks["uploads"] = storage.Ping

	limiter := ratelimit.Store(ratelimit.NewMemory())
	if cfg.RateLimitBackend == "redis" {
		rdb := redisclient.New(redisclient.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		defer rdb.Close()

		if err := rdb.Ping(startCtx); err != nil {
			return fmt.Errorf("redis ping: %w", err)
		}
		limiter = ratelimit.NewRedis(rdb.Raw())
		checks["redis"] = rdb.Ping
	}

	health := handlers.NewHealthHandler(checks)

	router := httpx.NewRouter(httpx.Deps{
		Config:  cfg,
		Stores:  stores,
		JWT:     auth.NewManager(cfg.JWTSecret, cfg.JWTTTL),
		Limiter: limiter,
		Uploads: storage,
		Cache:   cache.New(cfg.CacheTTL),
		Prom:    prom,
		Health:  health,
		Tracing: cfg.OTLPEndpoint != "",
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "port", cfg.Port, "store", cfg.Store, "uploads", cfg.UploadBackend, "ratelimit", cfg.RateLimitBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	log.Info("server shutting down")
	health.Drain()

	ctx, cancelShutdown := config.WithTimeout(10 * time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("shutdown complete")
	return nil
}

func openStores(ctx context.Context, cfg config.Config, prom *observability.Prom, checks map[string]handlers.Check, log *slog.Logger) (httpx.Stores, func(), error) {
	if cfg.Store == "memory" {
		st := memory.New()
		if err := db.EnsureAdminUser(ctx, st.Users, cfg); err != nil {
			return httpx.Stores{}, nil, fmt.Errorf("ensure admin: %w", err)
		}
		log.Warn("using in-memory store, data is lost on restart")
		return httpx.Stores{
			Users:       st.Users,
			Categories:  st.Categories,
			Skills:      st.Skills,
			Projects:    st.Projects,
			About:       st.About,
			Experiences: st.Experiences,
			Education:   st.Education,
			TechStack:   st.TechStack,
			Location:    st.Location,
		}, func() {}, nil
	}

	pool, err := db.NewPool(ctx, cfg.DBURL, cfg.DBMaxConns)
	if err != nil {
		return httpx.Stores{}, nil, fmt.Errorf("connect postgres: %w", err)
	}

	if err := db.Migrate(ctx, pool); err != nil {
		pool.Close()
		return httpx.Stores{}, nil, err
	}

	st := postgres.NewStore(pool, prom)
	if err := db.EnsureAdminUser(ctx, st.Users, cfg); err != nil {
		pool.Close()
		return httpx.Stores{}, nil, fmt.Errorf("ensure admin: %w", err)
	}

	checks["postgres"] = pool.Ping

	return httpx.Stores{
		Users:       st.Users,
		Categories:  st.Categories,
		Skills:      st.Skills,
		Projects:    st.Projects,
		About:       st.About,
		Experiences: st.Experiences,
		Education:   st.Education,
		TechStack:   st.TechStack,
		Location:    st.Location,
	}, pool.Close, nil
}

func openUploads(ctx context.Context, cfg config.Config) (uploads.Storage, error) {
	if cfg.UploadBackend == "s3" {
		s3, err := uploads.NewS3(uploads.S3Config(cfg.S3))
		if err != nil {
			return nil, err
		}
		if err := s3.EnsureBucket(ctx); err != nil {
			return nil, fmt.Errorf("ensure bucket: %w", err)
		}
		return s3, nil
	}

	disk, err := uploads.NewDisk(cfg.UploadDir)
	if err != nil {
		return nil, fmt.Errorf("prepare upload dir: %w", err)
	}
	return disk, nil
}
