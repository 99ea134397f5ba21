// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/olegiv/corpsite-go/internal/service"
	"github.com/olegiv/corpsite-go/internal/store"
)

type statsBody struct {
	Entities struct {
		Messages service.EntityStats `json:"messages"`
		Posts    service.EntityStats `json:"posts"`
		News     service.EntityStats `json:"news"`
		Products service.EntityStats `json:"products"`
	} `json:"entities"`
	TotalMessages int64 `json:"totalMessages"`
	TotalPosts    int64 `json:"totalPosts"`
	TotalNews     int64 `json:"totalNews"`
	TotalProducts int64 `json:"totalProducts"`
	TotalUsers    int   `json:"totalUsers"`
}

func TestStatsSnapshot(t *testing.T) {
	db := testDB(t)
	queries := store.New(db)
	ctx := context.Background()

	if _, err := queries.CreatePost(ctx, store.CreatePostParams{Title: "p1", Language: "en", Status: "published"}); err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	if _, err := queries.CreateMessage(ctx, store.CreateMessageParams{
		Reference: "ref-a", Name: "n", Email: "n@example.com", Subject: "s", Body: "m", Language: "en",
	}); err != nil {
		t.Fatalf("CreateMessage error: %v", err)
	}

	h := NewStatsHandler(service.NewStatsService(queries, time.UTC), 3)
	r := chi.NewRouter()
	r.Get("/admin/stats", h.Snapshot)

	rec := doJSON(t, r, http.MethodGet, "/admin/stats", nil)
	requireStatus(t, rec, http.StatusOK)

	var body statsBody
	decodeResponse(t, rec, &body)

	if body.TotalPosts != 1 || body.TotalMessages != 1 {
		t.Errorf("totals = posts %d messages %d, want 1/1", body.TotalPosts, body.TotalMessages)
	}
	if body.TotalNews != 0 || body.TotalProducts != 0 {
		t.Errorf("empty entities: news %d products %d", body.TotalNews, body.TotalProducts)
	}
	if body.TotalUsers != 3 {
		t.Errorf("totalUsers = %d, want 3", body.TotalUsers)
	}
	if body.Entities.Posts.Today != 1 {
		t.Errorf("posts today = %d, want 1", body.Entities.Posts.Today)
	}
}

func TestStatsSnapshot_DegradedStays200(t *testing.T) {
	db := testDB(t)
	queries := store.New(db)
	if err := db.Close(); err != nil {
		t.Fatalf("closing database: %v", err)
	}

	h := NewStatsHandler(service.NewStatsService(queries, time.UTC), 1)
	r := chi.NewRouter()
	r.Get("/admin/stats", h.Snapshot)

	rec := doJSON(t, r, http.MethodGet, "/admin/stats", nil)
	requireStatus(t, rec, http.StatusOK)

	var body statsBody
	decodeResponse(t, rec, &body)
	if body.TotalMessages != 0 || body.TotalPosts != 0 {
		t.Errorf("degraded totals should be zero: %+v", body)
	}
	if !body.Entities.Messages.Degraded || !body.Entities.Posts.Degraded {
		t.Error("degraded entities are not flagged")
	}
}
