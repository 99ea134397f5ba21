// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"

	"github.com/olegiv/corpsite-go/internal/model"
)

// LocaleRedirect redirects bare-root requests to the visitor's locale
// prefix (/en/ or /ko/), glue for the static marketing frontend. The
// Accept-Language parse is simplified: quality values are ignored and the
// first supported primary tag wins.
func LocaleRedirect(defaultLang string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lang := matchAcceptLanguage(r.Header.Get("Accept-Language"))
		if lang == "" {
			lang = defaultLang
		}
		http.Redirect(w, r, "/"+lang+"/", http.StatusFound)
	}
}

func matchAcceptLanguage(header string) string {
	for _, part := range strings.Split(header, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if len(tag) >= 2 {
			primary := strings.ToLower(tag[:2])
			if model.IsValidLanguage(primary) {
				return primary
			}
		}
	}
	return ""
}
