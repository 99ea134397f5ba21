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

// PostsHandler handles admin CRUD for blog posts.
type PostsHandler struct {
	queries *store.Queries
}

// NewPostsHandler creates a new PostsHandler.
func NewPostsHandler(db *sql.DB) *PostsHandler {
	return &PostsHandler{queries: store.New(db)}
}

// PostResponse represents a blog post in API responses.
type PostResponse struct {
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

func postToResponse(p store.Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		Excerpt:   p.Excerpt,
		Author:    p.Author,
		Category:  p.Category,
		Language:  p.Language,
		Status:    p.Status,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// createPostRequest is the POST /admin/posts body.
type createPostRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Author   string `json:"author"`
	Category string `json:"category"`
	Language string `json:"language"`
	Status   string `json:"status"`
}

// updatePostRequest is the PUT /admin/posts/{id} body; nil fields are left
// untouched.
type updatePostRequest struct {
	Title    *string `json:"title,omitempty"`
	Content  *string `json:"content,omitempty"`
	Excerpt  *string `json:"excerpt,omitempty"`
	Author   *string `json:"author,omitempty"`
	Category *string `json:"category,omitempty"`
	Language *string `json:"language,omitempty"`
	Status   *string `json:"status,omitempty"`
}

// validateContentFields checks the shared title/language/status rules for
// posts and news items. Returns field errors, empty when valid.
func validateContentFields(title, language, status string) map[string]string {
	fieldErrors := make(map[string]string)
	if title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if !model.IsValidLanguage(language) {
		fieldErrors["language"] = "Language must be one of: en, ko"
	}
	if !model.IsValidStatus(status) {
		fieldErrors["status"] = "Status must be draft, published, or archived"
	}
	return fieldErrors
}

// List handles GET /admin/posts.
func (h *PostsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r, true)

	posts, err := h.queries.ListPosts(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	total, err := h.queries.CountPosts(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	responses := make([]PostResponse, 0, len(posts))
	for _, p := range posts {
		responses = append(responses, postToResponse(p))
	}
	WriteSuccess(w, responses, pageMeta(filter, total))
}

// Get handles GET /admin/posts/{id}.
func (h *PostsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid post ID", nil)
		return
	}

	p, err := h.queries.GetPost(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, postToResponse(p), nil)
}

// Create handles POST /admin/posts.
func (h *PostsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createPostRequest
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

	p, err := h.queries.CreatePost(r.Context(), store.CreatePostParams{
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
	WriteCreated(w, postToResponse(p))
}

// Update handles PUT /admin/posts/{id}.
func (h *PostsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid post ID", nil)
		return
	}

	var req updatePostRequest
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

	p, err := h.queries.UpdatePost(r.Context(), id, store.UpdatePostParams{
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
	WriteSuccess(w, postToResponse(p), nil)
}

// Delete handles DELETE /admin/posts/{id}.
func (h *PostsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid post ID", nil)
		return
	}

	if err := h.queries.DeletePost(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
