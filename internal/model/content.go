// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain constants and validation helpers shared by
// the handler and store layers.
package model

import "net/mail"

// Content status constants.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Message status constants. Messages arrive unread from the public contact
// form and move forward only through admin action.
const (
	MessageStatusUnread   = "unread"
	MessageStatusRead     = "read"
	MessageStatusArchived = "archived"
)

// Inquiry type constants for contact messages.
const (
	InquiryGeneral     = "general"
	InquiryQuote       = "quote"
	InquiryPartnership = "partnership"
	InquirySupport     = "support"
)

// SupportedLanguages lists the site locales.
var SupportedLanguages = []string{"en", "ko"}

// IsValidStatus checks if a content status is valid.
func IsValidStatus(status string) bool {
	return status == StatusDraft || status == StatusPublished || status == StatusArchived
}

// IsValidMessageStatus checks if a message status is valid.
func IsValidMessageStatus(status string) bool {
	return status == MessageStatusUnread || status == MessageStatusRead || status == MessageStatusArchived
}

// IsValidInquiryType checks if an inquiry type is valid.
func IsValidInquiryType(t string) bool {
	switch t {
	case InquiryGeneral, InquiryQuote, InquiryPartnership, InquirySupport:
		return true
	}
	return false
}

// IsValidLanguage checks if a locale tag is one of the site languages.
func IsValidLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// IsValidEmail checks if the email parses as an RFC 5322 address.
func IsValidEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
