// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/olegiv/pvquote-go/internal/store"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	leads     store.LeadStore
	startTime time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(leads store.LeadStore) *HealthHandler {
	return &HealthHandler{
		leads:     leads,
		startTime: time.Now(),
	}
}

// healthStatus is the health check response body.
type healthStatus struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

// Health handles GET /health. The lead store is the only dependency
// whose failure makes the service unhealthy.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := healthStatus{
		Status: "healthy",
		Uptime: time.Since(h.startTime).Round(time.Second).String(),
	}

	code := http.StatusOK
	if _, err := h.leads.Count(r.Context()); err != nil {
		status.Status = "degraded"
		code = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
