// Package jwt wraps github.com/golang-jwt/jwt/v5 into a minimal HS256
// issue/validate surface for self-contained bearer tokens bound to an
// email subject and an absolute expiry.
package jwt
