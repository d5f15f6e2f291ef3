package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"freight-match-service/internal/adapters/cache"
	"freight-match-service/internal/adapters/fmcsa"
	"freight-match-service/internal/adapters/repositories"
	"freight-match-service/internal/api"
	"freight-match-service/internal/platform/db"
	"freight-match-service/internal/ports"
	"freight-match-service/internal/services"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, FMCSA, cache backend) behind ports and
// starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/loads.json")
	port := getEnv("PORT", "8080")

	webKey := os.Getenv("FMCSA_WEB_KEY")
	if strings.TrimSpace(webKey) == "" {
		logger.Fatal("FMCSA_WEB_KEY is required")
	}

	store, err := openDB(dbPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer store.Close()

	// Initialize schema and seed demo loads on startup for local runs.
	if err := initAndSeed(store, seedPath); err != nil {
		logger.Fatal("init and seed", zap.Error(err))
	}

	carrierCache, err := buildCarrierCache(store, logger)
	if err != nil {
		logger.Fatal("build carrier cache", zap.Error(err))
	}

	fmcsaOpts := []fmcsa.Option{}
	if base := os.Getenv("FMCSA_BASE_URL"); base != "" {
		fmcsaOpts = append(fmcsaOpts, fmcsa.WithBaseURL(base))
	}
	fmcsaClient, err := fmcsa.NewClient(webKey, logger, fmcsaOpts...)
	if err != nil {
		logger.Fatal("build fmcsa client", zap.Error(err))
	}

	verifier := services.NewVerifier(
		fmcsaClient,
		fmcsaClient,
		fmcsaClient,
		fmcsaClient,
		carrierCache,
		cacheTTL(logger),
		logger,
	)

	loads := repositories.NewSqliteLoadRepository(store)
	assigner := services.NewAssigner(repositories.NewSqliteAssignmentStore(store), logger)

	router := api.NewRouter(verifier, loads, assigner, logger)

	// Write timeout covers cold-cache verification (three upstream lookups).
	logger.Info("server listening", zap.String("addr", ":"+port))
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	logger.Fatal("server stopped", zap.Error(srv.ListenAndServe()))
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func openDB(dbPath string) (*sql.DB, error) {
	store, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := store.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return store, nil
}

func initAndSeed(store *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(store); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(store, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// buildCarrierCache selects the profile cache backend from CACHE_BACKEND.
// The sqlite backend shares the application database, so cached profiles
// survive restarts without extra infrastructure.
func buildCarrierCache(store *sql.DB, logger *zap.Logger) (ports.CarrierCache, error) {
	backend := getEnv("CACHE_BACKEND", "sqlite")

	switch backend {
	case "sqlite":
		return cache.NewSqliteCarrierCache(store), nil

	case "memory":
		size := 1024
		if raw := os.Getenv("CACHE_SIZE"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("build carrier cache: invalid CACHE_SIZE %q", raw)
			}
			size = n
		}
		return cache.NewMemoryCarrierCache(size)

	case "redis":
		addr := getEnv("REDIS_ADDR", "localhost:6379")
		client := redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: os.Getenv("REDIS_PASSWORD"),
		})
		return cache.NewRedisCarrierCache(client), nil

	case "postgres":
		url := os.Getenv("DATABASE_URL")
		if url == "" {
			return nil, fmt.Errorf("build carrier cache: DATABASE_URL is required for the postgres backend")
		}
		pg, err := db.OpenPostgres(url)
		if err != nil {
			return nil, fmt.Errorf("build carrier cache: %w", err)
		}
		pgCache := cache.NewSQLCarrierCache(pg, logger)
		if err := pgCache.EnsureSchema(context.Background()); err != nil {
			return nil, fmt.Errorf("build carrier cache: %w", err)
		}
		return pgCache, nil

	default:
		return nil, fmt.Errorf("build carrier cache: unknown CACHE_BACKEND %q", backend)
	}
}

func cacheTTL(logger *zap.Logger) time.Duration {
	raw := os.Getenv("CACHE_TTL")
	if raw == "" {
		return 24 * time.Hour
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil || ttl <= 0 {
		logger.Warn("invalid CACHE_TTL, using default", zap.String("value", raw))
		return 24 * time.Hour
	}

	return ttl
}
