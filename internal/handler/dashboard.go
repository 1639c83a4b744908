// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"sort"

	"github.com/mileusna/useragent"

	"github.com/olegiv/pvquote-go/internal/eventlog"
	"github.com/olegiv/pvquote-go/internal/model"
	"github.com/olegiv/pvquote-go/internal/render"
	"github.com/olegiv/pvquote-go/internal/store"
)

// recentEventCount is how many event log entries the dashboard shows.
const recentEventCount = 20

// DashboardHandler renders the admin dashboard.
type DashboardHandler struct {
	leads    store.LeadStore
	events   *eventlog.Log
	renderer *render.Renderer
}

// NewDashboardHandler creates a new DashboardHandler. events may be nil.
func NewDashboardHandler(leads store.LeadStore, events *eventlog.Log, renderer *render.Renderer) *DashboardHandler {
	return &DashboardHandler{
		leads:    leads,
		events:   events,
		renderer: renderer,
	}
}

// browserCount is one row of the dashboard browser breakdown.
type browserCount struct {
	Name  string
	Count int
}

// dashboardData is the page data for the dashboard template.
type dashboardData struct {
	Leads    []model.Lead
	Count    int
	Browsers []browserCount
	Events   []eventlog.Event
}

// Dashboard lists every captured lead in store insertion order,
// together with a browser breakdown and recent log events.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	leads, err := h.leads.List(r.Context())
	if err != nil {
		logAndInternalError(w, "listing leads", "error", err)
		return
	}

	data := dashboardData{
		Leads:    leads,
		Count:    len(leads),
		Browsers: browserBreakdown(leads),
	}
	if h.events != nil {
		data.Events = h.events.Recent(recentEventCount)
	}

	if err := h.renderer.Render(w, r, "dashboard", render.TemplateData{
		Title: "Dashboard",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "rendering dashboard", "error", err)
	}
}

// browserBreakdown aggregates lead submissions by browser name.
func browserBreakdown(leads []model.Lead) []browserCount {
	counts := make(map[string]int)
	for _, lead := range leads {
		if lead.UserAgent == "" {
			continue
		}
		ua := useragent.Parse(lead.UserAgent)
		name := ua.Name
		if name == "" {
			name = "Unknown"
		}
		counts[name]++
	}
	if len(counts) == 0 {
		return nil
	}

	result := make([]browserCount, 0, len(counts))
	for name, count := range counts {
		result = append(result, browserCount{Name: name, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Name < result[j].Name
	})
	return result
}
