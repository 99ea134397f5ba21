// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

var newsSearchCols = []string{"title", "content", "excerpt"}

// NewsItem is a company news announcement.
type NewsItem struct {
	ID        int64
	Title     string
	Content   string
	Excerpt   string
	Author    string
	Category  string
	Language  string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

const newsCols = `id, title, content, excerpt, author, category, language, status, created_at, updated_at`

func scanNewsItem(row interface{ Scan(...any) error }) (NewsItem, error) {
	var n NewsItem
	err := row.Scan(&n.ID, &n.Title, &n.Content, &n.Excerpt, &n.Author, &n.Category,
		&n.Language, &n.Status, &n.CreatedAt, &n.UpdatedAt)
	return n, err
}

// ListNewsItems returns news items matching the filter, newest first.
func (q *Queries) ListNewsItems(ctx context.Context, f Filter) ([]NewsItem, error) {
	where, args := f.whereClause(newsSearchCols...)
	page, pageArgs := f.pageClause()
	query := `SELECT ` + newsCols + ` FROM news_items` + where + ` ORDER BY created_at DESC, id DESC` + page

	rows, err := q.db.QueryContext(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, wrapErr("listing news items", err)
	}
	defer rows.Close()

	var out []NewsItem
	for rows.Next() {
		n, err := scanNewsItem(rows)
		if err != nil {
			return nil, wrapErr("scanning news item", err)
		}
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("listing news items", err)
	}
	return out, nil
}

// GetNewsItem returns a single news item by id.
func (q *Queries) GetNewsItem(ctx context.Context, id int64) (NewsItem, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+newsCols+` FROM news_items WHERE id = ?`, id)
	n, err := scanNewsItem(row)
	if err != nil {
		return NewsItem{}, wrapErr("getting news item", err)
	}
	return n, nil
}

// CreateNewsItemParams holds the caller-supplied fields for a news item.
type CreateNewsItemParams struct {
	Title    string
	Content  string
	Excerpt  string
	Author   string
	Category string
	Language string
	Status   string
}

// CreateNewsItem inserts a new news item and returns it.
func (q *Queries) CreateNewsItem(ctx context.Context, p CreateNewsItemParams) (NewsItem, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO news_items (title, content, excerpt, author, category, language, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Content, p.Excerpt, p.Author, p.Category, p.Language, p.Status, now, now)
	if err != nil {
		return NewsItem{}, wrapErr("creating news item", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return NewsItem{}, wrapErr("creating news item", err)
	}
	return q.GetNewsItem(ctx, id)
}

// UpdateNewsItemParams is a partial patch: nil fields are left untouched.
type UpdateNewsItemParams struct {
	Title    *string
	Content  *string
	Excerpt  *string
	Author   *string
	Category *string
	Language *string
	Status   *string
}

// UpdateNewsItem applies a partial patch to a news item and bumps updated_at.
func (q *Queries) UpdateNewsItem(ctx context.Context, id int64, p UpdateNewsItemParams) (NewsItem, error) {
	sets, args := patchClause(map[string]*string{
		"title": p.Title, "content": p.Content, "excerpt": p.Excerpt,
		"author": p.Author, "category": p.Category, "language": p.Language, "status": p.Status,
	})
	if len(args) == 0 {
		return q.GetNewsItem(ctx, id)
	}

	args = append(args, time.Now().UTC(), id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE news_items SET `+sets+`, updated_at = ? WHERE id = ?`, args...)
	if err != nil {
		return NewsItem{}, wrapErr("updating news item", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return NewsItem{}, wrapErr("updating news item", err)
	} else if n == 0 {
		return NewsItem{}, wrapErr("updating news item", sql.ErrNoRows)
	}
	return q.GetNewsItem(ctx, id)
}

// DeleteNewsItem removes a news item, reporting NotFound for unknown ids.
func (q *Queries) DeleteNewsItem(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM news_items WHERE id = ?`, id)
	if err != nil {
		return wrapErr("deleting news item", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("deleting news item", err)
	}
	if n == 0 {
		return wrapErr("deleting news item", sql.ErrNoRows)
	}
	return nil
}

// CountNewsItems counts news items matching the filter.
func (q *Queries) CountNewsItems(ctx context.Context, f Filter) (int64, error) {
	where, args := f.whereClause(newsSearchCols...)
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_items`+where, args...).Scan(&n)
	if err != nil {
		return 0, wrapErr("counting news items", err)
	}
	return n, nil
}
