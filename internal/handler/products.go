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

// ProductsHandler handles admin CRUD for catalog products.
type ProductsHandler struct {
	queries *store.Queries
}

// NewProductsHandler creates a new ProductsHandler.
func NewProductsHandler(db *sql.DB) *ProductsHandler {
	return &ProductsHandler{queries: store.New(db)}
}

// ProductResponse represents a product in API responses.
type ProductResponse struct {
	ID             int64             `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description,omitempty"`
	Category       string            `json:"category,omitempty"`
	Specifications map[string]string `json:"specifications"`
	Language       string            `json:"language"`
	Status         string            `json:"status"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

func productToResponse(p store.Product) ProductResponse {
	specs := p.Specifications
	if specs == nil {
		specs = map[string]string{}
	}
	return ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Category:       p.Category,
		Specifications: specs,
		Language:       p.Language,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

type createProductRequest struct {
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Category       string            `json:"category"`
	Specifications map[string]string `json:"specifications"`
	Language       string            `json:"language"`
	Status         string            `json:"status"`
}

type updateProductRequest struct {
	Name           *string           `json:"name,omitempty"`
	Description    *string           `json:"description,omitempty"`
	Category       *string           `json:"category,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Language       *string           `json:"language,omitempty"`
	Status         *string           `json:"status,omitempty"`
}

// List handles GET /admin/products.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := parseFilter(r, false)

	products, err := h.queries.ListProducts(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	total, err := h.queries.CountProducts(r.Context(), filter)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	responses := make([]ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, productToResponse(p))
	}
	WriteSuccess(w, responses, pageMeta(filter, total))
}

// Get handles GET /admin/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid product ID", nil)
		return
	}

	p, err := h.queries.GetProduct(r.Context(), id)
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, productToResponse(p), nil)
}

// Create handles POST /admin/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}
	if req.Status == "" {
		req.Status = model.StatusDraft
	}

	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if !model.IsValidLanguage(req.Language) {
		fieldErrors["language"] = "Language must be one of: en, ko"
	}
	if !model.IsValidStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft, published, or archived"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	p, err := h.queries.CreateProduct(r.Context(), store.CreateProductParams{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Specifications: req.Specifications,
		Language:       req.Language,
		Status:         req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteCreated(w, productToResponse(p))
}

// Update handles PUT /admin/products/{id}. A provided specifications object
// replaces the stored mapping wholesale.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid product ID", nil)
		return
	}

	var req updateProductRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	if req.Name != nil && *req.Name == "" {
		fieldErrors["name"] = "Name cannot be empty"
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

	p, err := h.queries.UpdateProduct(r.Context(), id, store.UpdateProductParams{
		Name:           req.Name,
		Description:    req.Description,
		Category:       req.Category,
		Specifications: req.Specifications,
		Language:       req.Language,
		Status:         req.Status,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, productToResponse(p), nil)
}

// Delete handles DELETE /admin/products/{id}.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid product ID", nil)
		return
	}

	if err := h.queries.DeleteProduct(r.Context(), id); err != nil {
		WriteAppError(w, err)
		return
	}
	WriteSuccess(w, map[string]string{"status": "deleted"}, nil)
}
