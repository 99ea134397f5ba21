// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/olegiv/corpsite-go/internal/model"
	"github.com/olegiv/corpsite-go/internal/store"
)

// ContactHandler handles the public contact form endpoint — the one place
// where unauthenticated writes are permitted.
type ContactHandler struct {
	queries     *store.Queries
	defaultLang string
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(db *sql.DB, defaultLang string) *ContactHandler {
	return &ContactHandler{queries: store.New(db), defaultLang: defaultLang}
}

// contactRequest is the POST /contact body.
type contactRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	InquiryType string `json:"inquiry_type"`
	Language    string `json:"language"`

	// Website is a honeypot field. Real visitors never fill it.
	Website string `json:"website"`
}

// contactResponse is the POST /contact success body. The reference lets a
// visitor quote their inquiry without exposing internal ids.
type contactResponse struct {
	Status    string `json:"status"`
	Reference string `json:"reference"`
}

// Submit handles POST /contact.
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeBody(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "bad_request", "Invalid request body", nil)
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Message = strings.TrimSpace(req.Message)

	// Bot detected: silently pretend success.
	if req.Website != "" {
		slog.Info("contact honeypot triggered", "ip", r.RemoteAddr)
		WriteJSON(w, http.StatusOK, contactResponse{Status: "received", Reference: uuid.NewString()})
		return
	}

	fieldErrors := make(map[string]string)
	if req.Name == "" {
		fieldErrors["name"] = "Name is required"
	}
	if req.Email == "" {
		fieldErrors["email"] = "Email is required"
	} else if !model.IsValidEmail(req.Email) {
		fieldErrors["email"] = "Please enter a valid email address"
	}
	if req.Subject == "" {
		fieldErrors["subject"] = "Subject is required"
	}
	if req.Message == "" {
		fieldErrors["message"] = "Message is required"
	}
	if req.InquiryType == "" {
		req.InquiryType = model.InquiryGeneral
	} else if !model.IsValidInquiryType(req.InquiryType) {
		fieldErrors["inquiry_type"] = "Unknown inquiry type"
	}
	if req.Language == "" {
		req.Language = h.defaultLang
	} else if !model.IsValidLanguage(req.Language) {
		req.Language = h.defaultLang
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	m, err := h.queries.CreateMessage(r.Context(), store.CreateMessageParams{
		Reference:   uuid.NewString(),
		Name:        req.Name,
		Email:       req.Email,
		Phone:       strings.TrimSpace(req.Phone),
		InquiryType: req.InquiryType,
		Subject:     req.Subject,
		Body:        req.Message,
		Language:    req.Language,
	})
	if err != nil {
		WriteAppError(w, err)
		return
	}

	slog.Info("contact message received", "reference", m.Reference, "inquiry_type", m.InquiryType)
	WriteJSON(w, http.StatusOK, contactResponse{Status: "received", Reference: m.Reference})
}
