// Command authd runs the authentication service: the authcore engine
// behind the gin transport, with Postgres or in-memory user storage and
// redis or in-memory token/challenge storage selected by environment.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/nvasilev/authcore"
	"github.com/nvasilev/authcore/httpapi"
	"github.com/nvasilev/authcore/memstore"
	"github.com/nvasilev/authcore/password"
	"github.com/nvasilev/authcore/pgstore"
	"github.com/nvasilev/authcore/redisstore"
)

type config struct {
	Addr           string        `env:"AUTH_ADDR" envDefault:"0.0.0.0:3000"`
	JWTSecret      string        `env:"JWT_SECRET,required"`
	TokenTTL       time.Duration `env:"TOKEN_TTL" envDefault:"10m"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	ChallengeTTL   time.Duration `env:"CHALLENGE_TTL" envDefault:"10m"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	SecureCookies  bool          `env:"SECURE_COOKIES" envDefault:"false"`
	AuditEnabled   bool          `env:"AUDIT_ENABLED" envDefault:"true"`
	HashWorkers    int           `env:"HASH_WORKERS" envDefault:"0"`
}

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stderr, nil))
	slog.SetDefault(log)

	if err := run(log); err != nil {
		log.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	// Local overrides only; absence of a .env file is not an error.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("JWT_SECRET must not be blank")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	coreConfig := authcore.Config{
		JWT: authcore.JWTConfig{
			Secret: []byte(cfg.JWTSecret),
			TTL:    cfg.TokenTTL,
		},
		Audit: authcore.AuditConfig{
			Enabled: cfg.AuditEnabled,
		},
		Metrics: authcore.MetricsConfig{Enabled: true},
	}

	hasher, err := password.NewHasher(password.DefaultParams)
	if err != nil {
		return fmt.Errorf("password hasher: %w", err)
	}
	pool := password.NewPool(hasher, cfg.HashWorkers)
	defer pool.Close()

	users, closeDB, err := buildUserStore(ctx, cfg, pool, log)
	if err != nil {
		return err
	}
	defer closeDB()

	tokens, codes := buildVolatileStores(ctx, cfg, log)

	engine, err := authcore.New(coreConfig, authcore.Options{
		Users:        users,
		BannedTokens: tokens,
		TwoFACodes:   codes,
		EmailClient:  authcore.SlogEmailClient{Logger: log},
		Hasher:       pool,
		AuditSink:    authcore.NewJSONWriterSink(os.Stderr),
	})
	if err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	defer engine.Close()

	server := httpapi.NewServer(engine, httpapi.Config{
		AllowedOrigins: cfg.AllowedOrigins,
		SecureCookies:  cfg.SecureCookies,
	}, log)

	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildUserStore selects Postgres when DATABASE_URL is set and falls back
// to the in-memory store otherwise. Migrations run at startup.
func buildUserStore(ctx context.Context, cfg config, pool *password.Pool, log *slog.Logger) (authcore.UserStore, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL unset, using in-memory user store")
		return memstore.NewUserStore(pool), func() {}, nil
	}

	db, err := pgstore.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("postgres: %w", err)
	}
	if err := pgstore.Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("postgres user store ready")
	return pgstore.NewUserStore(db, pool), func() { _ = db.Close() }, nil
}

// buildVolatileStores selects redis-backed ledger and challenge stores
// when REDIS_ADDR is set; both fall back to memory together.
func buildVolatileStores(ctx context.Context, cfg config, log *slog.Logger) (authcore.BannedTokenStore, authcore.TwoFACodeStore) {
	if cfg.RedisAddr == "" {
		log.Warn("REDIS_ADDR unset, using in-memory token stores")
		return memstore.NewBannedTokenStore(), memstore.NewTwoFACodeStore()
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unreachable, using in-memory token stores", "error", err)
		return memstore.NewBannedTokenStore(), memstore.NewTwoFACodeStore()
	}

	// Ban entries outlive any token they could guard once TTL passes.
	return redisstore.NewBannedTokenStore(rdb, cfg.TokenTTL), redisstore.NewTwoFACodeStore(rdb, cfg.ChallengeTTL)
}
