package authcore

import (
	"errors"

	internalaudit "github.com/nvasilev/authcore/internal/audit"
	internalmetrics "github.com/nvasilev/authcore/internal/metrics"
	"github.com/nvasilev/authcore/jwt"
	"github.com/nvasilev/authcore/password"
)

// Engine is the authentication core. It is safe for concurrent use: all
// mutable state lives behind the injected stores, and hashing runs on the
// shared worker pool.
type Engine struct {
	config     Config
	users      UserStore
	tokens     BannedTokenStore
	codes      TwoFACodeStore
	email      EmailClient
	hasher     *password.Pool
	jwtManager *jwt.Manager
	audit      *internalaudit.Dispatcher
	metrics    *internalmetrics.Metrics
	ownsHasher bool
}

// Options carries the engine's collaborators. Users, BannedTokens and
// TwoFACodes are required; EmailClient defaults to a no-op client and
// Hasher to a pool owned (and closed) by the engine.
type Options struct {
	Users        UserStore
	BannedTokens BannedTokenStore
	TwoFACodes   TwoFACodeStore
	EmailClient  EmailClient

	// Hasher lets several components share one worker pool. When set, the
	// caller owns its lifecycle.
	Hasher *password.Pool

	// AuditSink receives audit events when Config.Audit.Enabled is true.
	AuditSink AuditSink
}

// New validates cfg, wires the collaborators and starts the audit
// dispatcher. Configuration failures (missing secret, bad cost
// parameters) are startup-fatal by design.
func New(cfg Config, opts Options) (*Engine, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if opts.Users == nil || opts.BannedTokens == nil || opts.TwoFACodes == nil {
		return nil, errors.New("engine requires user, banned-token and 2fa code stores")
	}

	jwtManager, err := jwt.NewManager(jwt.Config{
		Secret: cfg.JWT.Secret,
		TTL:    cfg.JWT.TTL,
		Issuer: cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, err
	}

	pool := opts.Hasher
	ownsHasher := false
	if pool == nil {
		hasher, err := password.NewHasher(cfg.passwordParams())
		if err != nil {
			return nil, err
		}
		pool = password.NewPool(hasher, cfg.Password.Workers)
		ownsHasher = true
	}

	emailClient := opts.EmailClient
	if emailClient == nil {
		emailClient = NoOpEmailClient{}
	}

	return &Engine{
		config:     cfg,
		users:      opts.Users,
		tokens:     opts.BannedTokens,
		codes:      opts.TwoFACodes,
		email:      emailClient,
		hasher:     pool,
		jwtManager: jwtManager,
		audit:      internalaudit.NewDispatcher(cfg.auditConfig(), opts.AuditSink),
		metrics:    internalmetrics.New(cfg.metricsConfig()),
		ownsHasher: ownsHasher,
	}, nil
}

// TokenTTL reports the configured bearer-token lifetime.
func (e *Engine) TokenTTL() int {
	return int(e.jwtManager.TTL().Seconds())
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

// AuditDropped reports audit events discarded under drop-if-full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil {
		return 0
	}
	return e.audit.Dropped()
}

// Close drains the audit dispatcher and, when the engine owns it, shuts
// down the hashing pool.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	e.audit.Close()
	if e.ownsHasher && e.hasher != nil {
		e.hasher.Close()
	}
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}
