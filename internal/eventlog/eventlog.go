// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package eventlog keeps a bounded in-memory log of notable application
// events (failed mail deliveries, storage errors) for display on the
// admin dashboard.
package eventlog

import (
	"sync"
	"time"
)

// Event levels.
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// Event is a single logged occurrence.
type Event struct {
	Level     string
	Message   string
	Metadata  string
	CreatedAt time.Time
}

// DefaultCapacity is the number of events retained when none is given.
const DefaultCapacity = 100

// Log is a fixed-capacity ring of recent events, newest first on read.
type Log struct {
	mu     sync.RWMutex
	events []Event
	next   int
	full   bool
}

// New creates a Log retaining up to capacity events. A non-positive
// capacity falls back to DefaultCapacity.
func New(capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{events: make([]Event, capacity)}
}

// Add records an event, evicting the oldest when the ring is full.
func (l *Log) Add(e Event) {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.events[l.next] = e
	l.next++
	if l.next == len(l.events) {
		l.next = 0
		l.full = true
	}
}

// Recent returns up to n events, newest first.
func (l *Log) Recent(n int) []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	size := l.next
	if l.full {
		size = len(l.events)
	}
	if n > size {
		n = size
	}
	if n <= 0 {
		return nil
	}

	out := make([]Event, 0, n)
	idx := l.next - 1
	for len(out) < n {
		if idx < 0 {
			idx = len(l.events) - 1
		}
		out = append(out, l.events[idx])
		idx--
	}
	return out
}

// Len returns the number of retained events.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if l.full {
		return len(l.events)
	}
	return l.next
}
