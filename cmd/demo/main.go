package main

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/orishu/turbocache/cache"
	"github.com/orishu/turbocache/cache/memory"
	"github.com/orishu/turbocache/cache/rediscache"
	demoapi "github.com/orishu/turbocache/cmd/demo/api"
	"github.com/orishu/turbocache/internal/config"
	"github.com/orishu/turbocache/internal/logging"
	"github.com/orishu/turbocache/internal/students"
	"github.com/orishu/turbocache/metricscache"
)

func main() {
	logging.InitLogger()
	log.Info().Msg("Starting TurboCache demo server...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Default()
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		cfg.DatabaseURL = dsn
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.RedisAddr = addr
	}
	if addr := os.Getenv("HTTP_ADDR"); addr != "" {
		cfg.HTTPAddr = addr
	}
	if backend := os.Getenv("CACHE_BACKEND"); backend != "" {
		cfg.CacheBackend = config.Backend(backend)
	}

	log.Info().Str("database_url", maskPassword(cfg.GetDatabaseURL())).Msg("Connecting to database")
	sqlDB, err := sql.Open("pgx", cfg.GetDatabaseURL())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database connection")
	}
	defer sqlDB.Close()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to reach database")
	}
	db := sqlx.NewDb(sqlDB, "pgx")

	handle, backendLabel := buildCacheHandle(ctx, cfg)

	svc := students.New(db, handle)
	studentsHandler := demoapi.NewStudentsHandler(svc)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.Middleware)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/students", func(r chi.Router) {
		r.Get("/", studentsHandler.List)
		r.Get("/{id}", studentsHandler.Get)
		r.Put("/{id}", studentsHandler.Rename)
	})

	server := &http.Server{
		Addr:         cfg.GetHTTPAddr(),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM)
		<-sigint

		log.Info().Msg("Shutting down server...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Server shutdown error")
		}
	}()

	log.Info().Str("addr", cfg.GetHTTPAddr()).Str("cache_backend", backendLabel).Msg("Server listening")
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("Server error")
	}

	log.Info().Msg("Server stopped")
}

// buildCacheHandle wires either the in-memory or Redis cache.Handle per
// config, wrapping either with metricscache so /metrics reports hit/miss
// rates regardless of backend.
func buildCacheHandle(ctx context.Context, cfg *config.Config) (cache.Handle, string) {
	switch cfg.GetCacheBackend() {
	case config.BackendRedis:
		log.Info().Str("redis_addr", cfg.GetRedisAddr()).Msg("Connecting to Redis")
		rdb := redis.NewClient(&redis.Options{Addr: cfg.GetRedisAddr()})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		rc, err := rediscache.New(ctx, rdb)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to load cache scripts")
		}
		return metricscache.Wrap(rc.Handle(), "redis"), "redis"
	default:
		log.Info().Msg("Using in-memory cache backend")
		return metricscache.Wrap(memory.New().Handle(), "memory"), "memory"
	}
}

func maskPassword(dsn string) string {
	u, err := url.Parse(dsn)
	if err != nil || u.User == nil {
		return dsn
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
