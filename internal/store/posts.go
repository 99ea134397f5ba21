// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"strings"
	"time"
)

var postSearchCols = []string{"title", "content", "excerpt"}

// Post is a blog post.
type Post struct {
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

const postCols = `id, title, content, excerpt, author, category, language, status, created_at, updated_at`

func scanPost(row interface{ Scan(...any) error }) (Post, error) {
	var p Post
	err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Excerpt, &p.Author, &p.Category,
		&p.Language, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// ListPosts returns posts matching the filter, newest first.
func (q *Queries) ListPosts(ctx context.Context, f Filter) ([]Post, error) {
	where, args := f.whereClause(postSearchCols...)
	page, pageArgs := f.pageClause()
	query := `SELECT ` + postCols + ` FROM posts` + where + ` ORDER BY created_at DESC, id DESC` + page

	rows, err := q.db.QueryContext(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, wrapErr("listing posts", err)
	}
	defer rows.Close()

	var out []Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, wrapErr("scanning post", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("listing posts", err)
	}
	return out, nil
}

// GetPost returns a single post by id.
func (q *Queries) GetPost(ctx context.Context, id int64) (Post, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+postCols+` FROM posts WHERE id = ?`, id)
	p, err := scanPost(row)
	if err != nil {
		return Post{}, wrapErr("getting post", err)
	}
	return p, nil
}

// CreatePostParams holds the caller-supplied fields for a new post.
type CreatePostParams struct {
	Title    string
	Content  string
	Excerpt  string
	Author   string
	Category string
	Language string
	Status   string
}

// CreatePost inserts a new post and returns it.
func (q *Queries) CreatePost(ctx context.Context, p CreatePostParams) (Post, error) {
	now := time.Now().UTC()
	res, err := q.db.ExecContext(ctx,
		`INSERT INTO posts (title, content, excerpt, author, category, language, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Content, p.Excerpt, p.Author, p.Category, p.Language, p.Status, now, now)
	if err != nil {
		return Post{}, wrapErr("creating post", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Post{}, wrapErr("creating post", err)
	}
	return q.GetPost(ctx, id)
}

// UpdatePostParams is a partial patch: nil fields are left untouched.
type UpdatePostParams struct {
	Title    *string
	Content  *string
	Excerpt  *string
	Author   *string
	Category *string
	Language *string
	Status   *string
}

// UpdatePost applies a partial patch to a post and bumps updated_at.
func (q *Queries) UpdatePost(ctx context.Context, id int64, p UpdatePostParams) (Post, error) {
	sets, args := patchClause(map[string]*string{
		"title": p.Title, "content": p.Content, "excerpt": p.Excerpt,
		"author": p.Author, "category": p.Category, "language": p.Language, "status": p.Status,
	})
	if len(args) == 0 {
		// Nothing to patch; still confirm existence.
		return q.GetPost(ctx, id)
	}

	args = append(args, time.Now().UTC(), id)
	res, err := q.db.ExecContext(ctx,
		`UPDATE posts SET `+sets+`, updated_at = ? WHERE id = ?`, args...)
	if err != nil {
		return Post{}, wrapErr("updating post", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Post{}, wrapErr("updating post", err)
	} else if n == 0 {
		return Post{}, wrapErr("updating post", sql.ErrNoRows)
	}
	return q.GetPost(ctx, id)
}

// DeletePost removes a post, reporting NotFound for unknown ids.
func (q *Queries) DeletePost(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		return wrapErr("deleting post", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("deleting post", err)
	}
	if n == 0 {
		return wrapErr("deleting post", sql.ErrNoRows)
	}
	return nil
}

// CountPosts counts posts matching the filter.
func (q *Queries) CountPosts(ctx context.Context, f Filter) (int64, error) {
	where, args := f.whereClause(postSearchCols...)
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM posts`+where, args...).Scan(&n)
	if err != nil {
		return 0, wrapErr("counting posts", err)
	}
	return n, nil
}

// patchClause builds a SET fragment from the non-nil entries of cols,
// in deterministic column order.
func patchClause(cols map[string]*string) (string, []any) {
	order := []string{"title", "content", "excerpt", "name", "description",
		"specifications", "author", "category", "language", "status"}

	var sets []string
	var args []any
	for _, col := range order {
		if v, ok := cols[col]; ok && v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	return strings.Join(sets, ", "), args
}
