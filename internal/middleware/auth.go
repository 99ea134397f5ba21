// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request lifecycle handling.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/corpsite-go/internal/apperr"
	"github.com/olegiv/corpsite-go/internal/auth"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyPrincipal is the context key for the authenticated principal.
const ContextKeyPrincipal ContextKey = "principal"

// SessionCookieName is the cookie carrying the session token for browser
// clients. The cookie holds the same signed token as the Authorization
// header; both flows share one codec contract.
const SessionCookieName = "corpsite_session"

// authError is the JSON error body for rejected requests.
type authError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeAuthError writes a JSON error response. The message is always
// generic; signature and parse details stay in the logs.
func writeAuthError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	var body authError
	body.Error.Code = code
	body.Error.Message = message
	_ = json.NewEncoder(w).Encode(body)
}

// extractToken pulls the session token from the Authorization header or,
// failing that, the session cookie. Returns MissingCredential when neither
// carries one.
func extractToken(r *http.Request) (string, error) {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			return "", apperr.New(apperr.KindMalformed, "invalid Authorization header format, use: Bearer <token>")
		}
		return parts[1], nil
	}

	if cookie, err := r.Cookie(SessionCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	return "", apperr.New(apperr.KindMissingCredential, "no session token in request")
}

// Authenticate extracts and validates the request credential, yielding the
// authenticated principal. Pure validation: it never mutates a credential
// or extends a token's lifetime.
func Authenticate(codec *auth.TokenCodec, r *http.Request) (auth.Principal, error) {
	token, err := extractToken(r)
	if err != nil {
		return auth.Principal{}, err
	}
	return codec.Decode(token)
}

// RequireAuth creates middleware that rejects requests without a valid
// session token and stores the principal in the request context.
func RequireAuth(codec *auth.TokenCodec) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, err := Authenticate(codec, r)
			if err != nil {
				if !errors.Is(err, apperr.ErrMissingCredential) {
					slog.Warn("rejected session token",
						"path", r.URL.Path,
						"remote_addr", r.RemoteAddr,
						"error", err,
					)
				}
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyPrincipal, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetPrincipal retrieves the authenticated principal from the request
// context. Returns nil if the request did not pass RequireAuth.
func GetPrincipal(r *http.Request) *auth.Principal {
	principal, ok := r.Context().Value(ContextKeyPrincipal).(auth.Principal)
	if !ok {
		return nil
	}
	return &principal
}

// roleLevel returns a numeric level for role hierarchy.
// Higher level = more permissions.
func roleLevel(role string) int {
	switch role {
	case auth.RoleSuperAdmin:
		return 2
	case auth.RoleAdmin:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum role.
// Roles are hierarchical: super_admin > admin. Must run after RequireAuth.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := GetPrincipal(r)
			if principal == nil {
				writeAuthError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token")
				return
			}

			if roleLevel(principal.Role) < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"username", principal.Username,
					"role", principal.Role,
					"required_role", minRole,
				)
				writeAuthError(w, http.StatusForbidden, "forbidden", "insufficient permissions")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
