// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler contains the HTTP route handlers binding the lead
// store, offer generator, notifier and chat relay into web pages.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/olegiv/pvquote-go/internal/geoip"
	"github.com/olegiv/pvquote-go/internal/model"
	"github.com/olegiv/pvquote-go/internal/offer"
	"github.com/olegiv/pvquote-go/internal/render"
	"github.com/olegiv/pvquote-go/internal/store"
)

// Notifier sends the two per-submission notification emails. A nil
// Notifier disables mail dispatch entirely.
type Notifier interface {
	SendAdminNotification(ctx context.Context, lead model.Lead, pdfPath string) error
	SendCustomerConfirmation(ctx context.Context, lead model.Lead, pdfPath string) error
}

// LeadHandler handles the home page and lead submissions.
type LeadHandler struct {
	leads    store.LeadStore
	offers   *offer.Generator
	notifier Notifier
	geo      *geoip.Lookup
	renderer *render.Renderer
}

// NewLeadHandler creates a new LeadHandler. notifier and geo may be nil
// when the corresponding features are disabled.
func NewLeadHandler(leads store.LeadStore, offers *offer.Generator, notifier Notifier, geo *geoip.Lookup, renderer *render.Renderer) *LeadHandler {
	return &LeadHandler{
		leads:    leads,
		offers:   offers,
		notifier: notifier,
		geo:      geo,
		renderer: renderer,
	}
}

// homeData is the page data for the home template.
type homeData struct {
	Question string
	Answer   any
}

// Home renders the lead form.
func (h *LeadHandler) Home(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "home", render.TemplateData{
		Title: "Angebot anfordern",
		Data:  homeData{},
	}); err != nil {
		logAndInternalError(w, "rendering home page", "error", err)
	}
}

// Submit handles the lead form submission: validate, persist, generate
// the offer document, and dispatch notifications. Mail failures are
// logged but never abort the submission; storage and document failures
// are fatal for the request.
func (h *LeadHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form data", http.StatusBadRequest)
		return
	}

	values := make(map[string]string, len(model.LeadFields))
	for _, f := range model.LeadFields {
		values[f.Name] = r.FormValue(f.Name)
	}
	lead := model.NewLead(values)

	if missing := lead.Validate(); len(missing) > 0 {
		http.Error(w, "Missing required fields: "+strings.Join(missing, ", "), http.StatusBadRequest)
		return
	}

	lead.CreatedAt = time.Now().UTC()
	lead.IPAddress = clientIP(r)
	lead.UserAgent = r.UserAgent()
	if h.geo != nil {
		lead.Country = h.geo.LookupCountry(lead.IPAddress)
	}

	if err := h.leads.Append(r.Context(), lead); err != nil {
		logAndInternalError(w, "appending lead", "error", err, "email", lead.Email)
		return
	}

	pdfPath, err := h.offers.Generate(lead)
	if err != nil {
		logAndInternalError(w, "generating offer document", "error", err, "email", lead.Email)
		return
	}

	h.sendNotifications(r.Context(), lead, pdfPath)

	flashSuccess(w, r, h.renderer, RouteRoot,
		"Vielen Dank! Ihr Angebot wurde erstellt und per E-Mail versandt.")
}

// sendNotifications dispatches both notification mails. Each failure is
// logged independently; neither aborts the submission.
func (h *LeadHandler) sendNotifications(ctx context.Context, lead model.Lead, pdfPath string) {
	if h.notifier == nil {
		return
	}

	if err := h.notifier.SendAdminNotification(ctx, lead, pdfPath); err != nil {
		slog.Error("sending admin notification", "error", err, "email", lead.Email)
	}
	if err := h.notifier.SendCustomerConfirmation(ctx, lead, pdfPath); err != nil {
		slog.Error("sending customer confirmation", "error", err, "email", lead.Email)
	}
}
