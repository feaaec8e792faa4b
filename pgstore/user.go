// Package pgstore implements the authcore user store on Postgres using
// database/sql over the pgx stdlib driver. Uniqueness is enforced by the
// primary key on email; a constraint violation maps to
// authcore.ErrUserAlreadyExists, so the insert is atomic with respect to
// the existence check without any client-side locking.
package pgstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/nvasilev/authcore"
	"github.com/nvasilev/authcore/password"
)

// UserStore is the Postgres-backed authcore.UserStore.
type UserStore struct {
	db     *sql.DB
	hasher *password.Pool
}

// Open connects to dsn with the pgx stdlib driver and verifies the
// connection.
func Open(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// NewUserStore creates a store over db, verifying credentials on hasher.
func NewUserStore(db *sql.DB, hasher *password.Pool) *UserStore {
	return &UserStore{db: db, hasher: hasher}
}

// Add inserts the identity. A duplicate email surfaces as the primary-key
// violation and maps to ErrUserAlreadyExists.
func (s *UserStore) Add(ctx context.Context, identity authcore.Identity) error {
	const query = `INSERT INTO users (email, password_hash, requires_2fa) VALUES ($1, $2, $3)`

	_, err := s.db.ExecContext(ctx, query,
		identity.Email.String(), identity.PasswordHash, identity.RequiresTwoFA)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return authcore.ErrUserAlreadyExists
		}
		return fmt.Errorf("%w: user insert: %v", authcore.ErrUnexpected, err)
	}
	return nil
}

// Get returns the identity for email. A persisted hash that fails
// structural validation is reported as an internal error, never returned
// to a caller as-is.
func (s *UserStore) Get(ctx context.Context, email authcore.Email) (authcore.Identity, error) {
	const query = `SELECT email, password_hash, requires_2fa FROM users WHERE email = $1`

	var (
		storedEmail   string
		storedHash    string
		requiresTwoFA bool
	)
	err := s.db.QueryRowContext(ctx, query, email.String()).
		Scan(&storedEmail, &storedHash, &requiresTwoFA)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return authcore.Identity{}, authcore.ErrUserNotFound
		}
		return authcore.Identity{}, fmt.Errorf("%w: user select: %v", authcore.ErrUnexpected, err)
	}

	if err := password.ValidateEncoded(storedHash); err != nil {
		return authcore.Identity{}, fmt.Errorf("%w: corrupt credential record: %v", authcore.ErrUnexpected, err)
	}

	addr, err := authcore.ParseEmail(storedEmail)
	if err != nil {
		return authcore.Identity{}, fmt.Errorf("%w: corrupt email record: %v", authcore.ErrUnexpected, err)
	}

	return authcore.Identity{
		Email:         addr,
		PasswordHash:  storedHash,
		RequiresTwoFA: requiresTwoFA,
	}, nil
}

// Validate looks the identity up and verifies rawPassword on the worker
// pool.
func (s *UserStore) Validate(ctx context.Context, email authcore.Email, rawPassword string) error {
	identity, err := s.Get(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.hasher.Verify(ctx, rawPassword, identity.PasswordHash)
	if err != nil {
		return fmt.Errorf("%w: %v", authcore.ErrUnexpected, err)
	}
	if !ok {
		return authcore.ErrInvalidCredentials
	}
	return nil
}
