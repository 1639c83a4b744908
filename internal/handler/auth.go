// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/olegiv/pvquote-go/internal/auth"
	"github.com/olegiv/pvquote-go/internal/middleware"
	"github.com/olegiv/pvquote-go/internal/render"
)

// AuthHandler handles the admin login routes.
type AuthHandler struct {
	credential      auth.Credential
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cred auth.Credential, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		credential:      cred,
		renderer:        renderer,
		sessionManager:  sm,
		loginProtection: lp,
	}
}

// loginData is the page data for the login template.
type loginData struct {
	ErrorMessage string
}

// LoginForm renders the login page. Already-authenticated admins are
// sent straight to the dashboard.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if h.sessionManager.GetBool(r.Context(), middleware.SessionKeyAdmin) {
		http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "login", render.TemplateData{
		Title: "Anmeldung",
		Data:  loginData{},
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}

// Login handles the login form submission. A credential mismatch yields
// a 401 response with no session change.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		h.renderLoginError(w, r, http.StatusBadRequest,
			"Benutzername und Passwort sind erforderlich.")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(username); locked {
			slog.Warn("login attempt on locked account", "username", username, "ip", clientIP(r))
			h.renderLoginError(w, r, http.StatusTooManyRequests,
				"Zu viele Fehlversuche. Bitte versuchen Sie es in "+remaining.Round(time.Second).String()+" erneut.")
			return
		}
	}

	if !h.credential.Verify(username, password) {
		slog.Warn("admin login failed", "username", username, "ip", clientIP(r))
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(username); locked {
				h.renderLoginError(w, r, http.StatusTooManyRequests,
					"Zu viele Fehlversuche. Konto gesperrt für "+lockDuration.String()+".")
				return
			}
		}
		h.renderLoginError(w, r, http.StatusUnauthorized,
			"Ungültige Anmeldedaten.")
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(username)
	}

	// Renew the session token on privilege change
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "renewing session token", "error", err)
		return
	}
	h.sessionManager.Put(r.Context(), middleware.SessionKeyAdmin, true)

	slog.Info("admin logged in", "username", username, "ip", clientIP(r))
	http.Redirect(w, r, RouteDashboard, http.StatusSeeOther)
}

func (h *AuthHandler) renderLoginError(w http.ResponseWriter, r *http.Request, status int, message string) {
	if err := h.renderer.RenderStatus(w, r, "login", status, render.TemplateData{
		Title: "Anmeldung",
		Data:  loginData{ErrorMessage: message},
	}); err != nil {
		logAndInternalError(w, "rendering login page", "error", err)
	}
}
