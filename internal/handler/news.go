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

// NewsHandler handles admin CRUD for news items.
type NewsHandler struct {
	queries *store.Queries
}

// NewNewsHandler creates a new NewsHandler.
func NewNewsHandler(db *sql.DB) *NewsHandler {
	return &NewsHandler{queries: store.New(db)}
}

// NewsResponse represents a news item in API responses.
type NewsResponse struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Excerpt   string    `json:"excerpt,omitempty"`
	Author    string    `json:"author,omitempty"`
	Category  string    `json:"category,omitempty"`
	Language  string    `json:"language"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newsToResponse(n store.NewsItem) NewsResponse {
	return NewsResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		Excerpt:   n.Excerpt,
		Author:    n.Author,
		Category:  n.Category,
		Language:  n.Language,
		Status:    n.Status,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

type createNewsRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Language string `json:"language"`
	Status   string `json:"status"`
}

type updateNewsRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Author   *string `json:"author,omitempty"`
	Category *string `json:"category,omitempty"`
	Language *string `json:"language,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// List handles GET /admin/news.
func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r, true)

	items, err := h.queries.ListNewsItems(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	total, err := h.queries.CountNewsItems(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	responses := make([]NewsResponse, 0, len(items))
	for _, n := range items {
		responses = append(responses, newsToResponse(n))
	}
	WriteSuccess(w, responses, pageMeta(filter, total))
}

// Get handles GET /admin/news/{id}.
func (h *NewsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid news item ID", nil)
		return
	}

	n, err := h.queries.GetNewsItem(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, newsToResponse(n), nil)
}

// Create handles POST /admin/news.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNewsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}
	if req.Status == "" {
		req.Status = model.StatusDraft
	}
	if fieldErrors := validateContentFields(req.Title, req.Language, req.Status); len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	n, err := h.queries.CreateNewsItem(r.Context(), store.CreateNewsItemParams{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Category: req.Category,
		Language: req.Language,
		Status:   req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteCreated(w, newsToResponse(n))
}

// Update handles PUT /admin/news/{id}.
func (h *NewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid news item ID", nil)
		return
	}

	var req updateNewsRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Title != nil && *req.Title == "" {
		fieldErrors["title"] = "Title cannot be empty"
	}
	if req.Language != nil && !model.IsValidLanguage(*req.Language) {
		fieldErrors["language"] = "Language must be one of: en, ko"
	}
	if req.Status != nil && !model.IsValidStatus(*req.Status) {
		fieldErrors["status"] = "Status must be draft, published, or archived"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	n, err := h.queries.UpdateNewsItem(r.Context(), id, store.UpdateNewsItemParams{
		Title:    req.Title,
		Content:  req.Content,
		Excerpt:  req.Excerpt,
		Author:   req.Author,
		Category: req.Category,
		Language: req.Language,
		Status:   req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, newsToResponse(n), nil)
}

// Delete handles DELETE /admin/news/{id}.
func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid news item ID", nil)
		return
	}

	if err := h.queries.DeleteNewsItem(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
