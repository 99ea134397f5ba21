// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olegiv/corpsite-go/internal/apperr"
)

func TestCreateMessage(t *testing.T) {
	q := testQueries(t)

	m := createTestMessage(t, q, "ref-001")

	assert.NotZero(t, m.ID)
	assert.Equal(t, "ref-001", m.Reference)
	assert.Equal(t, "unread", m.Status)
	assert.False(t, m.Phone.Valid, "empty phone should be stored as NULL")
	assert.False(t, m.CreatedAt.IsZero())
}

func TestCreateMessage_WithPhone(t *testing.T) {
	q := testQueries(t)

	m, err := q.CreateMessage(context.Background(), CreateMessageParams{
		Reference: "ref-002",
		Name:      "Lee Jiwoo",
		Email:     "jiwoo@example.com",
		Phone:     "+82-10-1234-5678",
		Subject:   "Quote request",
		Body:      "Need pricing for model X.",
		Language:  "ko",
	})
	require.NoError(t, err)
	require.True(t, m.Phone.Valid)
	assert.Equal(t, "+82-10-1234-5678", m.Phone.String)
}

func TestGetMessage_NotFound(t *testing.T) {
	q := testQueries(t)

	_, err := q.GetMessage(context.Background(), 9999)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "want NotFound, got %v", err)
}

func TestListMessages_NewestFirst(t *testing.T) {
	q := testQueries(t)

	first := createTestMessage(t, q, "ref-a")
	second := createTestMessage(t, q, "ref-b")

	messages, err := q.ListMessages(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, second.ID, messages[0].ID)
	assert.Equal(t, first.ID, messages[1].ID)
}

func TestListMessages_Idempotent(t *testing.T) {
	q := testQueries(t)
	createTestMessage(t, q, "ref-a")

	for i := 0; i < 3; i++ {
		messages, err := q.ListMessages(context.Background(), Filter{})
		require.NoError(t, err)
		assert.Len(t, messages, 1, "repeated listing changed the result")
	}
}

func TestUpdateMessageStatus(t *testing.T) {
	q := testQueries(t)
	m := createTestMessage(t, q, "ref-a")

	updated, err := q.UpdateMessageStatus(context.Background(), m.ID, "read")
	require.NoError(t, err)
	assert.Equal(t, "read", updated.Status)
	assert.False(t, updated.UpdatedAt.Before(m.UpdatedAt))
}

func TestUpdateMessageStatus_NotFound(t *testing.T) {
	q := testQueries(t)

	_, err := q.UpdateMessageStatus(context.Background(), 9999, "read")
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "want NotFound, got %v", err)
}

func TestDeleteMessage(t *testing.T) {
	q := testQueries(t)
	m := createTestMessage(t, q, "ref-a")

	require.NoError(t, q.DeleteMessage(context.Background(), m.ID))

	_, err := q.GetMessage(context.Background(), m.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "deleted message still readable")

	// The second delete of the same id observes NotFound.
	err = q.DeleteMessage(context.Background(), m.ID)
	assert.True(t, errors.Is(err, apperr.ErrNotFound), "double delete should be NotFound, got %v", err)
}

func TestCountMessages(t *testing.T) {
	q := testQueries(t)
	createTestMessage(t, q, "ref-a")
	createTestMessage(t, q, "ref-b")

	n, err := q.CountMessages(context.Background(), Filter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	n, err = q.CountMessages(context.Background(), Filter{Status: "read"})
	require.NoError(t, err)
	assert.EqualValues(t, 0, n)
}

func TestMessages_SearchFilter(t *testing.T) {
	q := testQueries(t)

	_, err := q.CreateMessage(context.Background(), CreateMessageParams{
		Reference: "ref-a", Name: "Alice", Email: "a@example.com",
		Subject: "Hello", Body: "Interested in your TURBINE parts.", Language: "en",
	})
	require.NoError(t, err)
	_, err = q.CreateMessage(context.Background(), CreateMessageParams{
		Reference: "ref-b", Name: "Bob", Email: "b@example.com",
		Subject: "Hi", Body: "Partnership proposal.", Language: "en",
	})
	require.NoError(t, err)

	// Case-insensitive substring match over name and body.
	messages, err := q.ListMessages(context.Background(), Filter{Search: "turbine"})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "ref-a", messages[0].Reference)

	messages, err = q.ListMessages(context.Background(), Filter{Search: "bob"})
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "ref-b", messages[0].Reference)

	// LIKE metacharacters in the needle match literally, not as wildcards.
	messages, err = q.ListMessages(context.Background(), Filter{Search: "%"})
	require.NoError(t, err)
	assert.Empty(t, messages)
}
