// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/olegiv/pvquote-go/internal/model"
)

// FileStore persists leads as a single JSON array on disk. Every append
// reads the whole file, appends in memory, and rewrites the file through
// a temp-file rename so a crash never leaves a half-written array. A
// mutex serializes writers; concurrent appends cannot drop records.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore opens (or initializes) the lead file at path. A missing
// file is created containing an empty array; a present but malformed
// file is reported at startup rather than on the first request.
func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating lead data directory: %w", err)
		}
	}

	s := &FileStore{path: path}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := s.write([]model.Lead{}); err != nil {
			return nil, fmt.Errorf("initializing lead file: %w", err)
		}
		return s, nil
	} else if err != nil {
		return nil, fmt.Errorf("checking lead file: %w", err)
	}

	if _, err := s.read(); err != nil {
		return nil, err
	}
	return s, nil
}

// Append adds a lead to the end of the stored array.
func (s *FileStore) Append(_ context.Context, lead model.Lead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	leads, err := s.read()
	if err != nil {
		return err
	}

	leads = append(leads, lead)
	return s.write(leads)
}

// List returns all stored leads in insertion order.
func (s *FileStore) List(_ context.Context) ([]model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.read()
}

// Count returns the number of stored leads.
func (s *FileStore) Count(ctx context.Context) (int, error) {
	leads, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return len(leads), nil
}

// Close implements LeadStore. The file is not held open between calls.
func (s *FileStore) Close() error { return nil }

// read loads the full array. Caller must hold s.mu (or be initializing).
func (s *FileStore) read() ([]model.Lead, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading lead file: %w", err)
	}

	var leads []model.Lead
	if err := json.Unmarshal(data, &leads); err != nil {
		return nil, fmt.Errorf("parsing lead file %s: %w", s.path, err)
	}
	return leads, nil
}

// write replaces the file contents atomically. Caller must hold s.mu
// (or be initializing).
func (s *FileStore) write(leads []model.Lead) error {
	data, err := json.MarshalIndent(leads, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding leads: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".leads-*.json")
	if err != nil {
		return fmt.Errorf("creating temp lead file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp lead file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp lead file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replacing lead file: %w", err)
	}
	return nil
}
