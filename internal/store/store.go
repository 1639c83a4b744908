// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store provides lead persistence. Two backends exist: a flat
// JSON file (the default) and SQLite. Both are append-only; leads are
// never updated or deleted.
package store

import (
	"context"

	"github.com/olegiv/pvquote-go/internal/model"
)

// LeadStore is the persistence contract for captured leads.
// List returns leads in insertion order, oldest first.
type LeadStore interface {
	Append(ctx context.Context, lead model.Lead) error
	List(ctx context.Context) ([]model.Lead, error)
	Count(ctx context.Context) (int, error)
	Close() error
}
