// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/olegiv/corpsite-go/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func testCodec() *auth.TokenCodec {
	return auth.NewTokenCodec(testSecret, time.Hour)
}

func issueTestToken(t *testing.T, codec *auth.TokenCodec, username, role string) string {
	t.Helper()
	token, err := codec.Issue(auth.Identity{Username: username, Role: role})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	return token
}

// echoHandler writes the principal injected by RequireAuth.
func echoHandler(t *testing.T) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		principal := GetPrincipal(r)
		if principal == nil {
			t.Error("principal missing inside protected handler")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(principal.Username))
	}
}

func TestRequireAuth_BearerHeader(t *testing.T) {
	codec := testCodec()
	handler := RequireAuth(codec)(echoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/verify", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, codec, "admin", auth.RoleAdmin))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "admin" {
		t.Errorf("body = %q, want admin", rec.Body.String())
	}
}

func TestRequireAuth_CookieFallback(t *testing.T) {
	codec := testCodec()
	handler := RequireAuth(codec)(echoHandler(t))

	req := httptest.NewRequest(http.MethodGet, "/admin/verify", nil)
	req.AddCookie(&http.Cookie{
		Name:  SessionCookieName,
		Value: issueTestToken(t, codec, "admin", auth.RoleAdmin),
	})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestRequireAuth_Rejections(t *testing.T) {
	codec := testCodec()
	expiredCodec := auth.NewTokenCodec(testSecret, time.Hour).
		WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) })
	otherCodec := auth.NewTokenCodec("another-secret-that-is-32-bytes!", time.Hour)

	tests := []struct {
		name  string
		setup func(r *http.Request)
	}{
		{"no credential", func(r *http.Request) {}},
		{"wrong scheme", func(r *http.Request) {
			r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		}},
		{"empty bearer", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer")
		}},
		{"garbage token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer not-a-token")
		}},
		{"expired token", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+issueTestToken(t, expiredCodec, "admin", auth.RoleAdmin))
		}},
		{"foreign signature", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+issueTestToken(t, otherCodec, "admin", auth.RoleAdmin))
		}},
		{"empty cookie", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: ""})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := RequireAuth(codec)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Error("protected handler reached without a valid token")
			}))

			req := httptest.NewRequest(http.MethodGet, "/admin/messages", nil)
			tt.setup(req)
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("status = %d, want 401", rec.Code)
			}

			// All rejection reasons surface the same generic body.
			var body struct {
				Error struct {
					Code    string `json:"code"`
					Message string `json:"message"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if body.Error.Message != "invalid or expired token" {
				t.Errorf("message = %q, want the generic rejection", body.Error.Message)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	codec := testCodec()

	protected := RequireAuth(codec)(RequireRole(auth.RoleSuperAdmin)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	// An admin is refused where super_admin is required.
	req := httptest.NewRequest(http.MethodDelete, "/admin/messages/1", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, codec, "staff", auth.RoleAdmin))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403", rec.Code)
	}

	// A super_admin passes.
	req = httptest.NewRequest(http.MethodDelete, "/admin/messages/1", nil)
	req.Header.Set("Authorization", "Bearer "+issueTestToken(t, codec, "root", auth.RoleSuperAdmin))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestGetPrincipal_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if GetPrincipal(req) != nil {
		t.Fatal("GetPrincipal should be nil outside RequireAuth")
	}
}
