package authcore

import (
	"errors"
	"time"

	internalaudit "github.com/nvasilev/authcore/internal/audit"
	internalmetrics "github.com/nvasilev/authcore/internal/metrics"
	"github.com/nvasilev/authcore/password"
)

// Config aggregates the engine's tunables. Instances are configured
// before [New] and treated as immutable afterwards.
type Config struct {
	JWT      JWTConfig
	Password PasswordConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// JWTConfig carries the token signing material. Secret is required: an
// unset or empty secret fails [New], not the first login.
type JWTConfig struct {
	Secret []byte
	TTL    time.Duration // defaults to 10m
	Issuer string
}

// PasswordConfig carries the argon2id cost parameters and the size of the
// hashing worker pool.
type PasswordConfig struct {
	Memory      uint32 // KiB, defaults to 19456 (19 MiB)
	Time        uint32 // defaults to 2
	Parallelism uint8  // defaults to 1
	SaltLength  uint32 // defaults to 16
	KeyLength   uint32 // defaults to 32
	Workers     int    // defaults to GOMAXPROCS
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

func (c *Config) applyDefaults() {
	defaults := password.DefaultParams
	if c.Password.Memory == 0 {
		c.Password.Memory = defaults.Memory
	}
	if c.Password.Time == 0 {
		c.Password.Time = defaults.Time
	}
	if c.Password.Parallelism == 0 {
		c.Password.Parallelism = defaults.Parallelism
	}
	if c.Password.SaltLength == 0 {
		c.Password.SaltLength = defaults.SaltLength
	}
	if c.Password.KeyLength == 0 {
		c.Password.KeyLength = defaults.KeyLength
	}
}

func (c *Config) validate() error {
	if len(c.JWT.Secret) == 0 {
		return errors.New("config: JWT secret must be set and non-empty")
	}
	if c.JWT.TTL < 0 {
		return errors.New("config: JWT TTL must not be negative")
	}
	return nil
}

func (c *Config) passwordParams() password.Params {
	return password.Params{
		Memory:      c.Password.Memory,
		Time:        c.Password.Time,
		Parallelism: c.Password.Parallelism,
		SaltLength:  c.Password.SaltLength,
		KeyLength:   c.Password.KeyLength,
	}
}

func (c *Config) auditConfig() internalaudit.Config {
	return internalaudit.Config{
		Enabled:    c.Audit.Enabled,
		BufferSize: c.Audit.BufferSize,
		DropIfFull: c.Audit.DropIfFull,
	}
}

func (c *Config) metricsConfig() internalmetrics.Config {
	return internalmetrics.Config{Enabled: c.Metrics.Enabled}
}
