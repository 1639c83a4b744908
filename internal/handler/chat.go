// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"strings"

	"github.com/olegiv/pvquote-go/internal/chat"
	"github.com/olegiv/pvquote-go/internal/render"
)

// Asker answers a single visitor question.
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

// ChatHandler handles chatbot questions from the home page.
type ChatHandler struct {
	relay    Asker
	renderer *render.Renderer
}

// NewChatHandler creates a new ChatHandler. relay may be nil when the
// chatbot is disabled.
func NewChatHandler(relay Asker, renderer *render.Renderer) *ChatHandler {
	return &ChatHandler{relay: relay, renderer: renderer}
}

// Chat relays a question to the completion service and re-renders the
// home page with the answer below the form. Upstream errors are shown
// to the visitor in place of the answer.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		http.Error(w, "Missing required field: question", http.StatusBadRequest)
		return
	}

	var answer template.HTML
	switch {
	case h.relay == nil:
		answer = template.HTML(template.HTMLEscapeString(
			"Der Chat-Assistent ist derzeit nicht verfügbar."))
	default:
		text, err := h.relay.Ask(r.Context(), question)
		if err != nil {
			slog.Error("chat relay failed", "error", err)
			answer = template.HTML(template.HTMLEscapeString(
				"Entschuldigung, die Anfrage ist fehlgeschlagen: " + err.Error()))
			break
		}
		answer, err = chat.RenderAnswer(text)
		if err != nil {
			logAndInternalError(w, "rendering chat answer", "error", err)
			return
		}
	}

	if err := h.renderer.Render(w, r, "home", render.TemplateData{
		Title: "Angebot anfordern",
		Data:  homeData{Question: question, Answer: answer},
	}); err != nil {
		logAndInternalError(w, "rendering home page", "error", err)
	}
}
