// Package store provides record.Store implementations.
package store

import (
	"context"
	"sync"

	"github.com/turno/shift-engine/record"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	records []record.Record
}

func NewMemory() *Memory {
	return &Memory{}
}

// EnsureSchema is a no-op; the memory store has no schema.
func (m *Memory) EnsureSchema(_ context.Context) error { return nil }

// Append adds a single record. Append-only.
func (m *Memory) Append(_ context.Context, r record.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, r.Clone())
	return nil
}

// Reset drops everything.
func (m *Memory) Reset(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

// ListAll returns copies of every record in insertion order.
func (m *Memory) ListAll(_ context.Context) ([]record.Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]record.Record, len(m.records))
	for i, r := range m.records {
		out[i] = r.Clone()
	}
	return out, nil
}
