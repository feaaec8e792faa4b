package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is the token lifetime applied when Config.TTL is zero.
const DefaultTTL = 10 * time.Minute

// ErrInvalidToken reports a token that failed structural, signature or
// expiry validation.
var ErrInvalidToken = errors.New("invalid token")

// Config holds the signing material for a Manager. Secret is process-wide
// and read-only after startup.
type Config struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// Manager issues and validates HS256-signed bearer tokens. The token is
// self-contained: subject and absolute expiry live inside the signed
// payload, so validity never depends on server-side session state.
type Manager struct {
	config Config
	method jwt.SigningMethod
}

// NewManager validates the configuration. An unset or empty secret is a
// fatal configuration error: construction fails and the caller must abort
// startup rather than defer the failure to first use.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("jwt secret must not be empty")
	}
	if cfg.TTL < 0 {
		return nil, errors.New("jwt TTL must not be negative")
	}
	if cfg.TTL == 0 {
		cfg.TTL = DefaultTTL
	}

	return &Manager{config: cfg, method: jwt.SigningMethodHS256}, nil
}

// TTL reports the configured token lifetime.
func (m *Manager) TTL() time.Duration {
	return m.config.TTL
}

// Issue signs a token binding subject to an absolute expiry of now+TTL.
// Every token carries a fresh jti: two tokens issued for the same subject
// in the same second must still be distinct, or revoking one would revoke
// the other.
func (m *Manager) Issue(subject string) (string, error) {
	if subject == "" {
		return "", errors.New("token subject must not be empty")
	}

	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        id.String(),
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.config.TTL)),
	}
	if m.config.Issuer != "" {
		claims.Issuer = m.config.Issuer
	}

	return jwt.NewWithClaims(m.method, claims).SignedString(m.config.Secret)
}

// Parse verifies structure, signing method, signature and expiry, and
// returns the bound subject. All failures collapse into ErrInvalidToken so
// callers cannot distinguish a forged token from an expired one.
func (m *Manager) Parse(tokenStr string) (string, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{m.method.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.config.Issuer != "" {
		options = append(options, jwt.WithIssuer(m.config.Issuer))
	}

	parser := jwt.NewParser(options...)
	claims := &jwt.RegisteredClaims{}
	token, err := parser.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return m.config.Secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}
