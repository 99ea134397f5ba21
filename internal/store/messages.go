// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

// messageSearchCols are the text columns matched by Filter.Search.
var messageSearchCols = []string{"name", "message"}

// Message is a contact inquiry submitted through the public form.
type Message struct {
	ID          int64
	Reference   string
	Name        string
	Email       string
	Phone       sql.NullString
	InquiryType string
	Subject     string
	Body        string
	Language    string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

const messageCols = `id, reference, name, email, phone, inquiry_type, subject, message, language, status, created_at, updated_at`

func scanMessage(row interface{ Scan(...any) error }) (Message, error) {
	var m Message
	err := row.Scan(&m.ID, &m.Reference, &m.Name, &m.Email, &m.Phone, &m.InquiryType,
		&m.Subject, &m.Body, &m.Language, &m.Status, &m.CreatedAt, &m.UpdatedAt)
	return m, err
}

// ListMessages returns messages matching the filter, newest first.
func (q *Queries) ListMessages(ctx context.Context, f Filter) ([]Message, error) {
	where, args := f.whereClause(messageSearchCols...)
	page, pageArgs := f.pageClause()
	query := `SELECT ` + messageCols + ` FROM messages` + where + ` ORDER BY created_at DESC, id DESC` + page

	rows, err := q.db.QueryContext(ctx, query, append(args, pageArgs...)...)
	if err != nil {
		return nil, wrapErr("listing messages", err)
	}
	defer rows.Close()

	var out []Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, wrapErr("scanning message", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("listing messages", err)
	}
	return out, nil
}

// GetMessage returns a single message by id.
func (q *Queries) GetMessage(ctx context.Context, id int64) (Message, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+messageCols+` FROM messages WHERE id = ?`, id)
	m, err := scanMessage(row)
	if err != nil {
		return Message{}, wrapErr("getting message", err)
	}
	return m, nil
}

// CreateMessageParams holds the caller-supplied fields for a new message.
// The store assigns id, status, and timestamps.
type CreateMessageParams struct {
	Reference   string
	Name        string
	Email       string
	Phone       string
	InquiryType string
	Subject     string
	Body        string
	Language    string
}

// CreateMessage inserts a new unread message and returns it.
func (q *Queries) CreateMessage(ctx context.Context, p CreateMessageParams) (Message, error) {
	now := time.Now().UTC()
	phone := sql.NullString{String: p.Phone, Valid: p.Phone != ""}

	res, err := q.db.ExecContext(ctx,
		`INSERT INTO messages (reference, name, email, phone, inquiry_type, subject, message, language, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 'unread', ?, ?)`,
		p.Reference, p.Name, p.Email, phone, p.InquiryType, p.Subject, p.Body, p.Language, now, now)
	if err != nil {
		return Message{}, wrapErr("creating message", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return Message{}, wrapErr("creating message", err)
	}
	return q.GetMessage(ctx, id)
}

// UpdateMessageStatus patches a message's status and bumps updated_at.
func (q *Queries) UpdateMessageStatus(ctx context.Context, id int64, status string) (Message, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE messages SET status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id)
	if err != nil {
		return Message{}, wrapErr("updating message", err)
	}
	if n, err := res.RowsAffected(); err != nil {
		return Message{}, wrapErr("updating message", err)
	} else if n == 0 {
		return Message{}, wrapErr("updating message", sql.ErrNoRows)
	}
	return q.GetMessage(ctx, id)
}

// DeleteMessage removes a message. A second delete of the same id reports
// NotFound rather than succeeding silently.
func (q *Queries) DeleteMessage(ctx context.Context, id int64) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return wrapErr("deleting message", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr("deleting message", err)
	}
	if n == 0 {
		return wrapErr("deleting message", sql.ErrNoRows)
	}
	return nil
}

// CountMessages counts messages matching the filter.
func (q *Queries) CountMessages(ctx context.Context, f Filter) (int64, error) {
	where, args := f.whereClause(messageSearchCols...)
	var n int64
	err := q.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM messages`+where, args...).Scan(&n)
	if err != nil {
		return 0, wrapErr("counting messages", err)
	}
	return n, nil
}
