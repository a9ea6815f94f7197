package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wanderpick/recommendation-service/internal/cache"
	"github.com/wanderpick/recommendation-service/internal/config"
	"github.com/wanderpick/recommendation-service/internal/engine"
	"github.com/wanderpick/recommendation-service/internal/handler"
	"github.com/wanderpick/recommendation-service/internal/pricing"
	"github.com/wanderpick/recommendation-service/internal/repository"
	"github.com/wanderpick/recommendation-service/internal/router"
	"github.com/wanderpick/recommendation-service/internal/service"
	"github.com/wanderpick/recommendation-service/seeds"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	if err := run(log); err != nil {
		log.Error("server exited with error", "err", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx := context.Background()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}
	log.Info("connected to PostgreSQL")

	// ------------ Migrations ---------------
	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := migrate(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			return fmt.Errorf("migrate down: %w", err)
		}
		log.Info("migrations dropped")
		return nil
	}

	if err := migrate(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	log.Info("migrations applied")

	// ------------ Seed Data ---------------
	if err := checkSeed(ctx, pool, log); err != nil {
		return fmt.Errorf("check seed: %w", err)
	}

	// ------------ Redis ---------------
	redisClient, err := cache.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis")

	// ------------ Wiring ---------------
	repo := repository.New(pool)
	recCache := cache.NewCache(redisClient, cfg.CacheTTL)
	estimator := pricing.NewEstimator(repo, log)
	eng := engine.New(estimator, log)
	svc := service.NewService(repo, recCache, eng, log)
	h := handler.NewHandler(svc)

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(h),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case sig := <-quit:
		log.Info("shutdown signal received", "signal", sig.String())
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}

	log.Info("server shut down cleanly")
	return nil
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info("waiting for database...", "attempt", i+1, "max", 30)
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func migrate(ctx context.Context, pool *pgxpool.Pool, file string) error {
	sql, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, log *slog.Logger) error {
	var count int
	if err := pool.QueryRow(ctx, "SELECT COUNT(*) FROM countries").Scan(&count); err != nil {
		return fmt.Errorf("check countries count: %w", err)
	}
	if count > 0 {
		log.Info("database already seeded, skipping", "countries", count)
		return nil
	}
	return seeds.Setup(ctx, pool, log)
}
