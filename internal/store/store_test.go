// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// testDB creates an in-memory SQLite database with the content schema.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	schema := `
		CREATE TABLE messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			phone TEXT,
			inquiry_type TEXT NOT NULL DEFAULT 'general',
			subject TEXT NOT NULL,
			message TEXT NOT NULL,
			language TEXT NOT NULL DEFAULT 'en',
			status TEXT NOT NULL DEFAULT 'unread',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE posts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'en',
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE news_items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			content TEXT NOT NULL DEFAULT '',
			excerpt TEXT NOT NULL DEFAULT '',
			author TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			language TEXT NOT NULL DEFAULT 'en',
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);

		CREATE TABLE products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT '',
			specifications TEXT NOT NULL DEFAULT '{}',
			language TEXT NOT NULL DEFAULT 'en',
			status TEXT NOT NULL DEFAULT 'draft',
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		);
	`
	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("failed to create test schema: %v", err)
	}
	return db
}

// testQueries returns a Queries bound to a fresh in-memory database.
func testQueries(t *testing.T) *Queries {
	t.Helper()
	return New(testDB(t))
}

// createTestMessage inserts a message with sensible defaults.
func createTestMessage(t *testing.T, q *Queries, reference string) Message {
	t.Helper()

	m, err := q.CreateMessage(context.Background(), CreateMessageParams{
		Reference:   reference,
		Name:        "Kim Minjun",
		Email:       "minjun@example.com",
		InquiryType: "general",
		Subject:     "Product inquiry",
		Body:        "Please send a catalog.",
		Language:    "ko",
	})
	if err != nil {
		t.Fatalf("CreateMessage error: %v", err)
	}
	return m
}

// createTestPost inserts a post with the given language and status.
func createTestPost(t *testing.T, q *Queries, title, language, status string) Post {
	t.Helper()

	p, err := q.CreatePost(context.Background(), CreatePostParams{
		Title:    title,
		Content:  "Body of " + title,
		Author:   "editor",
		Category: "company",
		Language: language,
		Status:   status,
	})
	if err != nil {
		t.Fatalf("CreatePost error: %v", err)
	}
	return p
}
