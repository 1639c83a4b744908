// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// request protection, and security headers.
package middleware

import (
	"net/http"

	"github.com/alexedwards/scs/v2"
)

// SessionKeyAdmin marks a session as belonging to an authenticated admin.
const SessionKeyAdmin = "admin_authenticated"

// RequireAdmin creates middleware that guards dashboard routes.
// Requests without an authenticated admin session are redirected to the
// login form.
func RequireAdmin(sm *scs.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !sm.GetBool(r.Context(), SessionKeyAdmin) {
				http.Redirect(w, r, "/admin", http.StatusSeeOther)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
