// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"

	"github.com/olegiv/corpsite-go/internal/service"
)

// StatsHandler serves the admin dashboard summary.
type StatsHandler struct {
	stats     *service.StatsService
	userCount int
}

// NewStatsHandler creates a new StatsHandler. userCount is the size of the
// administrator allow-list, fixed at startup.
func NewStatsHandler(stats *service.StatsService, userCount int) *StatsHandler {
	return &StatsHandler{stats: stats, userCount: userCount}
}

// statsResponse is the GET /admin/stats body: per-entity total/today
// breakdowns plus the flat totals the admin frontend charts read.
type statsResponse struct {
	Entities service.StatsSnapshot `json:"entities"`

	TotalMessages int64 `json:"totalMessages"`
	TotalPosts    int64 `json:"totalPosts"`
	TotalNews     int64 `json:"totalNews"`
	TotalProducts int64 `json:"totalProducts"`
	TotalUsers    int   `json:"totalUsers"`
}

// Snapshot handles GET /admin/stats. Computed on demand, never cached;
// an unavailable sub-store degrades that entity to zero (flagged in the
// entity breakdown) without failing the aggregate.
func (h *StatsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snapshot := h.stats.Snapshot(r.Context())

	WriteJSON(w, http.StatusOK, statsResponse{
		Entities:      snapshot,
		TotalMessages: snapshot.Messages.Total,
		TotalPosts:    snapshot.Posts.Total,
		TotalNews:     snapshot.News.Total,
		TotalProducts: snapshot.Products.Total,
		TotalUsers:    h.userCount,
	})
}
