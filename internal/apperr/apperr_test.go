// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIs_MatchesByKind(t *testing.T) {
	err := New(KindNotFound, "post 42 does not exist")

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("errors.Is did not match same-kind sentinel")
	}
	if errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is matched a different kind")
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	inner := Wrap(KindStoreUnavailable, "counting posts", errors.New("database is locked"))
	outer := fmt.Errorf("dashboard snapshot: %w", inner)

	if !errors.Is(outer, ErrStoreUnavailable) {
		t.Fatal("errors.Is did not match through fmt.Errorf wrapping")
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(KindMalformed, "decoding token", cause)

	if !errors.Is(err, cause) {
		t.Fatal("errors.Is did not reach the wrapped cause")
	}
	if got := err.Error(); got != "decoding token: boom" {
		t.Fatalf("Error() = %q", got)
	}
}

func TestError_NoCause(t *testing.T) {
	err := New(KindExpired, "token is expired")
	if got := err.Error(); got != "token is expired" {
		t.Fatalf("Error() = %q", got)
	}
	if err.Unwrap() != nil {
		t.Fatal("Unwrap() should be nil without a cause")
	}
}
