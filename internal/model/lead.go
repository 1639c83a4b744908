// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model contains domain models and constants for the application.
package model

import (
	"strings"
	"time"
)

// LeadSchemaVersion is stored with every lead record so the on-disk format
// can evolve without guessing.
const LeadSchemaVersion = 1

// Lead is a single quote request captured from the public form.
// The five form fields are kept as strings exactly as submitted; the
// remaining fields are capture metadata filled in by the server.
type Lead struct {
	Schema      int    `json:"schema"`
	Email       string `json:"email"`
	Address     string `json:"address"`
	Area        string `json:"area"`
	Direction   string `json:"direction"`
	Consumption string `json:"consumption"`

	CreatedAt time.Time `json:"created_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
	Country   string    `json:"country,omitempty"`
}

// LeadField describes one of the five submitted form fields.
type LeadField struct {
	Name  string // form key and JSON key
	Label string // human-readable label used on the offer PDF and dashboard
}

// LeadFields lists the submitted fields in declaration order. The offer PDF
// and the dashboard render fields in exactly this order.
var LeadFields = []LeadField{
	{Name: "email", Label: "Email"},
	{Name: "address", Label: "Address"},
	{Name: "area", Label: "Area"},
	{Name: "direction", Label: "Direction"},
	{Name: "consumption", Label: "Consumption"},
}

// FieldValue returns the value of a submitted field by its form name.
func (l Lead) FieldValue(name string) string {
	switch name {
	case "email":
		return l.Email
	case "address":
		return l.Address
	case "area":
		return l.Area
	case "direction":
		return l.Direction
	case "consumption":
		return l.Consumption
	}
	return ""
}

// NewLead builds a Lead from raw form values, trimming surrounding
// whitespace. Validation is separate, see Validate.
func NewLead(values map[string]string) Lead {
	l := Lead{
		Schema:      LeadSchemaVersion,
		Email:       strings.TrimSpace(values["email"]),
		Address:     strings.TrimSpace(values["address"]),
		Area:        strings.TrimSpace(values["area"]),
		Direction:   strings.TrimSpace(values["direction"]),
		Consumption: strings.TrimSpace(values["consumption"]),
	}
	return l
}

// Validate returns the names of required fields that are missing or empty,
// in declaration order. An empty result means the lead is acceptable.
func (l Lead) Validate() []string {
	var missing []string
	for _, f := range LeadFields {
		if l.FieldValue(f.Name) == "" {
			missing = append(missing, f.Name)
		}
	}
	return missing
}
