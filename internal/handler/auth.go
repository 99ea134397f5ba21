// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/olegiv/corpsite-go/internal/auth"
	"github.com/olegiv/corpsite-go/internal/middleware"
)

// AuthHandler handles login and token verification.
type AuthHandler struct {
	credentials *auth.CredentialStore
	codec       *auth.TokenCodec
	secure      bool
}

// NewAuthHandler creates a new AuthHandler. secure controls the Secure flag
// on the session cookie (off in development).
func NewAuthHandler(credentials *auth.CredentialStore, codec *auth.TokenCodec, secure bool) *AuthHandler {
	return &AuthHandler{credentials: credentials, codec: codec, secure: secure}
}

// loginRequest is the POST /admin/login body.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginUser is the user object embedded in login and verify responses.
type loginUser struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

// loginResponse is the POST /admin/login success body. Kept flat (no data
// envelope) for compatibility with the admin frontend.
type loginResponse struct {
	Token string    `json:"token"`
	User  loginUser `json:"user"`
}

// Login handles POST /admin/login. Credential verification is constant
// time; the response does not reveal whether the username or the password
// was wrong.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteValidationError(w, map[string]string{
			"username": "Username and password are required",
		})
		return
	}

	identity, ok := h.credentials.Verify(req.Username, req.Password)
	if !ok {
		slog.Warn("failed login attempt", "username", req.Username, "remote_addr", r.RemoteAddr)
		WriteError(w, http.StatusUnauthorized, "unauthorized", "Invalid credentials", nil)
		return
	}

	token, err := h.codec.Issue(identity)
	if err != nil {
		slog.Error("failed to issue session token", "error", err)
		WriteError(w, http.StatusInternalServerError, "internal_error", "Failed to issue token", nil)
		return
	}

	// Browser clients get the same token as a cookie; API clients use the
	// Authorization header. One codec, one contract.
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.codec.TTL()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("admin login", "username", identity.Username, "role", identity.Role)

	WriteJSON(w, http.StatusOK, loginResponse{
		Token: token,
		User:  loginUser{Username: identity.Username, Role: identity.Role},
	})
}

// verifyResponse is the GET /admin/verify success body.
type verifyResponse struct {
	User      loginUser `json:"user"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Verify handles GET /admin/verify. Runs behind RequireAuth, so a principal
// is always present here.
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	principal := middleware.GetPrincipal(r)
	if principal == nil {
		WriteError(w, http.StatusUnauthorized, "unauthorized", "invalid or expired token", nil)
		return
	}

	WriteJSON(w, http.StatusOK, verifyResponse{
		User:      loginUser{Username: principal.Username, Role: principal.Role},
		IssuedAt:  principal.IssuedAt,
		ExpiresAt: principal.ExpiresAt,
	})
}

// Logout handles POST /admin/logout by clearing the session cookie.
// Tokens themselves are stateless and simply age out; there is no
// revocation list.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	WriteSuccess(w, map[string]string{"status": "logged_out"}, nil)
}
