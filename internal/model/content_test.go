// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "testing"

func TestIsValidStatus(t *testing.T) {
	for _, status := range []string{StatusDraft, StatusPublished, StatusArchived} {
		if !IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"", "unread", "deleted", "Draft"} {
		if IsValidStatus(status) {
			t.Errorf("IsValidStatus(%q) = true", status)
		}
	}
}

func TestIsValidMessageStatus(t *testing.T) {
	for _, status := range []string{MessageStatusUnread, MessageStatusRead, MessageStatusArchived} {
		if !IsValidMessageStatus(status) {
			t.Errorf("IsValidMessageStatus(%q) = false", status)
		}
	}
	for _, status := range []string{"", "draft", "published"} {
		if IsValidMessageStatus(status) {
			t.Errorf("IsValidMessageStatus(%q) = true", status)
		}
	}
}

func TestIsValidInquiryType(t *testing.T) {
	for _, typ := range []string{InquiryGeneral, InquiryQuote, InquiryPartnership, InquirySupport} {
		if !IsValidInquiryType(typ) {
			t.Errorf("IsValidInquiryType(%q) = false", typ)
		}
	}
	if IsValidInquiryType("spam") {
		t.Error("IsValidInquiryType(\"spam\") = true")
	}
}

func TestIsValidLanguage(t *testing.T) {
	if !IsValidLanguage("en") || !IsValidLanguage("ko") {
		t.Error("site languages rejected")
	}
	for _, lang := range []string{"", "fr", "EN", "en-US"} {
		if IsValidLanguage(lang) {
			t.Errorf("IsValidLanguage(%q) = true", lang)
		}
	}
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.co.kr",
		"user+tag@example.com",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = false", email)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"@example.com",
		"user@",
		"User Name <user@example.com>",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("IsValidEmail(%q) = true", email)
		}
	}
}
