// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestChatHandler_Answer(t *testing.T) {
	sm := testSessionManager(t)
	h := NewChatHandler(&fakeAsker{answer: "**Ja**, ein Speicher lohnt sich meist."}, testRenderer(t, sm))

	rec := httptest.NewRecorder()
	h.Chat(rec, postForm(sm, RouteChat, url.Values{"question": {"Lohnt sich ein Speicher?"}}))

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()
	if !strings.Contains(body, "<strong>Ja</strong>") {
		t.Errorf("answer markdown not rendered into page: %q", body)
	}
	if !strings.Contains(body, "Lohnt sich ein Speicher?") {
		t.Error("submitted question not echoed into the form")
	}
}

func TestChatHandler_UpstreamErrorSurfaced(t *testing.T) {
	sm := testSessionManager(t)
	h := NewChatHandler(&fakeAsker{err: errors.New("rate limit exceeded")}, testRenderer(t, sm))

	rec := httptest.NewRecorder()
	h.Chat(rec, postForm(sm, RouteChat, url.Values{"question": {"Hallo"}}))

	// The error is shown to the visitor, not hidden
	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "rate limit exceeded") {
		t.Errorf("upstream error not surfaced in page: %q", rec.Body.String())
	}
}

func TestChatHandler_MissingQuestion(t *testing.T) {
	sm := testSessionManager(t)
	h := NewChatHandler(&fakeAsker{answer: "ok"}, testRenderer(t, sm))

	rec := httptest.NewRecorder()
	h.Chat(rec, postForm(sm, RouteChat, url.Values{"question": {"   "}}))

	assertStatus(t, rec.Code, http.StatusBadRequest)
}

func TestChatHandler_DisabledRelay(t *testing.T) {
	sm := testSessionManager(t)
	h := NewChatHandler(nil, testRenderer(t, sm))

	rec := httptest.NewRecorder()
	h.Chat(rec, postForm(sm, RouteChat, url.Values{"question": {"Hallo"}}))

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "nicht verfügbar") {
		t.Error("disabled relay does not inform the visitor")
	}
}
