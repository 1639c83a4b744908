// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/olegiv/pvquote-go/internal/eventlog"
	"github.com/olegiv/pvquote-go/internal/model"
)

func dashboardLead(email, ua string) model.Lead {
	lead := model.NewLead(map[string]string{
		"email":       email,
		"address":     "Main St 1",
		"area":        "50",
		"direction":   "Süd",
		"consumption": "4000",
	})
	lead.UserAgent = ua
	return lead
}

func TestDashboardHandler_ListsLeadsInOrder(t *testing.T) {
	sm := testSessionManager(t)
	leads := testLeadStore(t)
	ctx := context.Background()

	firefox := "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	if err := leads.Append(ctx, dashboardLead("first@example.com", firefox)); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := leads.Append(ctx, dashboardLead("second@example.com", firefox)); err != nil {
		t.Fatalf("Append: %v", err)
	}

	h := NewDashboardHandler(leads, nil, testRenderer(t, sm))
	rec := httptest.NewRecorder()
	h.Dashboard(rec, requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteDashboard, nil)))

	assertStatus(t, rec.Code, http.StatusOK)
	body := rec.Body.String()

	first := strings.Index(body, "first@example.com")
	second := strings.Index(body, "second@example.com")
	if first == -1 || second == -1 {
		t.Fatalf("dashboard missing leads: first=%d second=%d", first, second)
	}
	if first > second {
		t.Error("leads not rendered in insertion order")
	}
	if !strings.Contains(body, "Firefox") {
		t.Error("browser breakdown missing")
	}
}

func TestDashboardHandler_EmptyStore(t *testing.T) {
	sm := testSessionManager(t)
	h := NewDashboardHandler(testLeadStore(t), nil, testRenderer(t, sm))

	rec := httptest.NewRecorder()
	h.Dashboard(rec, requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteDashboard, nil)))

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "Noch keine Anfragen") {
		t.Error("empty store message missing")
	}
}

func TestDashboardHandler_ShowsRecentEvents(t *testing.T) {
	sm := testSessionManager(t)
	events := eventlog.New(10)
	events.Add(eventlog.Event{Level: eventlog.LevelError, Message: "sending admin notification failed"})

	h := NewDashboardHandler(testLeadStore(t), events, testRenderer(t, sm))
	rec := httptest.NewRecorder()
	h.Dashboard(rec, requestWithSession(sm, httptest.NewRequest(http.MethodGet, RouteDashboard, nil)))

	assertStatus(t, rec.Code, http.StatusOK)
	if !strings.Contains(rec.Body.String(), "sending admin notification failed") {
		t.Error("recent events missing from dashboard")
	}
}

func TestBrowserBreakdown(t *testing.T) {
	firefox := "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"
	chrome := "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36"

	leads := []model.Lead{
		dashboardLead("a@b.com", firefox),
		dashboardLead("c@d.com", firefox),
		dashboardLead("e@f.com", chrome),
		dashboardLead("g@h.com", ""),
	}

	breakdown := browserBreakdown(leads)
	if len(breakdown) != 2 {
		t.Fatalf("breakdown has %d entries; want 2", len(breakdown))
	}
	if breakdown[0].Name != "Firefox" || breakdown[0].Count != 2 {
		t.Errorf("breakdown[0] = %+v; want Firefox x2", breakdown[0])
	}
	if breakdown[1].Name != "Chrome" || breakdown[1].Count != 1 {
		t.Errorf("breakdown[1] = %+v; want Chrome x1", breakdown[1])
	}
}
