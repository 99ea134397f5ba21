// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service composes store queries into higher-level operations.
package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/olegiv/corpsite-go/internal/store"
)

// EntityStats holds total and today counts for one tracked entity.
// Degraded marks counts that defaulted to zero because the underlying
// store was unavailable; the policy is deliberate and visible rather
// than a silent side effect of error suppression.
type EntityStats struct {
	Total    int64 `json:"total"`
	Today    int64 `json:"today"`
	Degraded bool  `json:"degraded,omitempty"`
}

// StatsSnapshot is the on-demand dashboard summary. It is computed fresh
// on every call and never cached.
type StatsSnapshot struct {
	Messages EntityStats `json:"messages"`
	Posts    EntityStats `json:"posts"`
	News     EntityStats `json:"news"`
	Products EntityStats `json:"products"`
}

// counter counts entities matching a filter.
type counter func(ctx context.Context, f store.Filter) (int64, error)

// StatsService aggregates per-entity counts for the admin dashboard.
type StatsService struct {
	queries *store.Queries
	loc     *time.Location
	now     func() time.Time
}

// NewStatsService creates a StatsService. "Today" counts are bounded to the
// current calendar day in loc.
func NewStatsService(queries *store.Queries, loc *time.Location) *StatsService {
	if loc == nil {
		loc = time.UTC
	}
	return &StatsService{queries: queries, loc: loc, now: time.Now}
}

// WithClock overrides the service clock. Test hook.
func (s *StatsService) WithClock(now func() time.Time) *StatsService {
	s.now = now
	return s
}

// Snapshot queries each tracked entity independently. A failing entity
// degrades to zero and is flagged; it never aborts the other counts.
func (s *StatsService) Snapshot(ctx context.Context) StatsSnapshot {
	midnight := s.startOfToday()

	return StatsSnapshot{
		Messages: s.entityStats(ctx, "messages", s.queries.CountMessages, midnight),
		Posts:    s.entityStats(ctx, "posts", s.queries.CountPosts, midnight),
		News:     s.entityStats(ctx, "news", s.queries.CountNewsItems, midnight),
		Products: s.entityStats(ctx, "products", s.queries.CountProducts, midnight),
	}
}

func (s *StatsService) entityStats(ctx context.Context, entity string, count counter, midnight time.Time) EntityStats {
	var stats EntityStats

	total, err := count(ctx, store.Filter{})
	if err != nil {
		slog.Error("stats count degraded to zero", "entity", entity, "error", err)
		stats.Degraded = true
	} else {
		stats.Total = total
	}

	today, err := count(ctx, store.Filter{CreatedAfter: midnight})
	if err != nil {
		slog.Error("stats today-count degraded to zero", "entity", entity, "error", err)
		stats.Degraded = true
	} else {
		stats.Today = today
	}

	return stats
}

// startOfToday returns midnight of the current day in the reference
// timezone, converted to UTC to match stored timestamps.
func (s *StatsService) startOfToday() time.Time {
	now := s.now().In(s.loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.loc)
	return midnight.UTC()
}
