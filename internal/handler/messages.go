// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/olegiv/corpsite-go/internal/model"
	"github.com/olegiv/corpsite-go/internal/store"
)

// MessagesHandler handles admin access to contact messages.
type MessagesHandler struct {
	queries *store.Queries
}

// NewMessagesHandler creates a new MessagesHandler.
func NewMessagesHandler(db *sql.DB) *MessagesHandler {
	return &MessagesHandler{queries: store.New(db)}
}

// MessageResponse represents a message in API responses.
type MessageResponse struct {
	ID          int64     `json:"id"`
	Reference   string    `json:"reference"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	InquiryType string    `json:"inquiry_type"`
	Subject     string    `json:"subject"`
	Message     string    `json:"message"`
	Language    string    `json:"language"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func messageToResponse(m store.Message) MessageResponse {
	resp := MessageResponse{
		ID:          m.ID,
		Reference:   m.Reference,
		Name:        m.Name,
		Email:       m.Email,
		InquiryType: m.InquiryType,
		Subject:     m.Subject,
		Message:     m.Body,
		Language:    m.Language,
		Status:      m.Status,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.Phone.Valid {
		resp.Phone = m.Phone.String
	}
	return resp
}

// List handles GET /admin/messages. A store failure is a 500 with an error
// envelope, never an empty 200: "no data" and "failed" stay distinct.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r, false)

	messages, err := h.queries.ListMessages(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	total, err := h.queries.CountMessages(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	responses := make([]MessageResponse, 0, len(messages))
	for _, m := range messages {
		responses = append(responses, messageToResponse(m))
	}
	WriteSuccess(w, responses, pageMeta(filter, total))
}

// Get handles GET /admin/messages/{id}.
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid message ID", nil)
		return
	}

	m, err := h.queries.GetMessage(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, messageToResponse(m), nil)
}

// updateMessageRequest is the PUT /admin/messages/{id} body.
type updateMessageRequest struct {
	Status string `json:"status"`
}

// Update handles PUT /admin/messages/{id}: a status-only patch
// (unread → read → archived).
func (h *MessagesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid message ID", nil)
		return
	}

	var req updateMessageRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}
	if !model.IsValidMessageStatus(req.Status) {
		WriteValidationError(w, map[string]string{"status": "Status must be unread, read, or archived"})
		return
	}

	m, err := h.queries.UpdateMessageStatus(r.Context(), id, req.Status)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, messageToResponse(m), nil)
}

// Delete handles DELETE /admin/messages/{id}. A concurrent second delete of
// the same id observes a 404.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid message ID", nil)
		return
	}

	if err := h.queries.DeleteMessage(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
