// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

// Route paths.
const (
	// RouteRoot is the root path.
	RouteRoot = "/"

	// RouteSubmit receives lead form submissions.
	RouteSubmit = "/submit"

	// RouteChat receives chatbot questions.
	RouteChat = "/chat"

	// RouteAdmin serves the admin login form and receives credentials.
	RouteAdmin = "/admin"

	// RouteDashboard serves the lead list to authenticated admins.
	RouteDashboard = "/dashboard"

	// RouteHealth serves the health check.
	RouteHealth = "/health"
)
