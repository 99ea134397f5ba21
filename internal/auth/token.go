// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/olegiv/corpsite-go/internal/apperr"
)

// Principal is the authenticated identity decoded from a valid session
// token. It is immutable once issued and never persisted server-side.
type Principal struct {
	Username  string
	Role      string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// sessionClaims is the internal claims type used for JWT encoding.
type sessionClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// TokenCodec issues and validates signed, self-contained session tokens.
// Validation requires no shared mutable state: a token is valid iff its
// signature verifies and it has not expired.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec creates a codec with the given signing secret and token TTL.
// The secret must already be validated by config.Load; the codec never
// substitutes a default.
func NewTokenCodec(secret string, ttl time.Duration) *TokenCodec {
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock overrides the codec's clock. Test hook.
func (c *TokenCodec) WithClock(now func() time.Time) *TokenCodec {
	c.now = now
	return c
}

// TTL returns the configured token lifetime.
func (c *TokenCodec) TTL() time.Duration {
	return c.ttl
}

// Issue encodes an identity into a signed HS256 token expiring at now+ttl.
func (c *TokenCodec) Issue(identity Identity) (string, error) {
	now := c.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
		Role: identity.Role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing session token: %w", err)
	}
	return signed, nil
}

// Decode verifies a token's signature and expiration and returns the
// embedded Principal. Failures map onto the error taxonomy: tampered
// signature, expired token, and unparseable input are distinguished for
// logs and tests, though handlers surface all three as a generic 401.
func (c *TokenCodec) Decode(token string) (Principal, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return Principal{}, mapJWTError(err)
	}

	if claims.Subject == "" || (claims.Role != RoleAdmin && claims.Role != RoleSuperAdmin) {
		return Principal{}, apperr.New(apperr.KindMalformed, "session token has invalid claims")
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		return Principal{}, apperr.New(apperr.KindMalformed, "session token is missing timestamps")
	}

	return Principal{
		Username:  claims.Subject,
		Role:      claims.Role,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// mapJWTError translates jwt library errors to the application taxonomy.
func mapJWTError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return apperr.Wrap(apperr.KindInvalidCredential, "session token signature is invalid", err)
	case errors.Is(err, jwt.ErrTokenExpired):
		return apperr.Wrap(apperr.KindExpired, "session token is expired", err)
	default:
		return apperr.Wrap(apperr.KindMalformed, "session token is malformed", err)
	}
}
