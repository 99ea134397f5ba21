// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"strings"
	"time"
)

// Filter narrows a content listing. Zero-value fields impose no constraint;
// set fields combine conjunctively. Search matches case-insensitive
// substrings over the entity's designated text columns.
type Filter struct {
	Category string
	Language string
	Status   string
	Author   string
	Search   string

	// CreatedAfter keeps only items created at or after the given instant.
	// Used by the stats aggregator for calendar-day counts.
	CreatedAfter time.Time

	// Limit and Offset paginate the listing. Limit <= 0 means no limit.
	Limit  int
	Offset int
}

// whereClause builds the conjunctive WHERE clause for a filter.
// searchCols are the entity's text columns matched by Search.
// Returns the SQL fragment (may be empty) and its bind arguments.
func (f Filter) whereClause(searchCols ...string) (string, []any) {
	var conds []string
	var args []any

	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Language != "" {
		conds = append(conds, "language = ?")
		args = append(args, f.Language)
	}
	if f.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, f.Status)
	}
	if f.Author != "" {
		conds = append(conds, "author = ?")
		args = append(args, f.Author)
	}
	if !f.CreatedAfter.IsZero() {
		conds = append(conds, "created_at >= ?")
		args = append(args, f.CreatedAfter)
	}
	if f.Search != "" && len(searchCols) > 0 {
		needle := "%" + escapeLike(strings.ToLower(f.Search)) + "%"
		var ors []string
		for _, col := range searchCols {
			ors = append(ors, "lower("+col+") LIKE ? ESCAPE '\\'")
			args = append(args, needle)
		}
		conds = append(conds, "("+strings.Join(ors, " OR ")+")")
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// pageClause builds the LIMIT/OFFSET fragment for a filter.
func (f Filter) pageClause() (string, []any) {
	if f.Limit <= 0 {
		return "", nil
	}
	return " LIMIT ? OFFSET ?", []any{f.Limit, f.Offset}
}

// escapeLike escapes LIKE metacharacters so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
