// Package authcore implements an email/password authentication core:
// credential validation, argon2id hashing off the request path, signed
// bearer-token issuance and revocation, and an optional second factor
// delivered as a one-time code over email.
//
// # Architecture
//
// The [Engine] orchestrates three pluggable store contracts ([UserStore],
// [BannedTokenStore], [TwoFACodeStore]) plus an [EmailClient] for code
// delivery. Reference in-memory implementations live in package memstore;
// durable implementations live in pgstore (Postgres) and redisstore.
//
// Value types ([Email], [Password], [TwoFACode], [LoginAttemptID]) are
// parse-and-validate wrappers: construction is the only way to obtain one,
// so a held value is always well-formed.
//
// # Flows
//
//   - [Engine.SignUp] creates an identity; duplicate emails are rejected.
//   - [Engine.Login] verifies credentials and either issues a token
//     directly or opens a 2FA challenge, dispatching the code by email.
//   - [Engine.ConfirmTwoFA] consumes the challenge (single use) and issues
//     the token.
//   - [Engine.ValidateToken] checks signature, expiry and the revocation
//     ledger.
//   - [Engine.Logout] revokes a presented token.
//
// Raw passwords are transient: they are never stored, never logged, and
// never included in error values.
package authcore
