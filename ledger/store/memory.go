// Package store provides ledger.Store implementations.
package store

import (
	"context"
	"sort"
	"sync"

	"github.com/medgrid/hospital-finance/ledger"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu      sync.RWMutex
	entries map[ledger.Kind][]ledger.Entry
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[ledger.Kind][]ledger.Entry)}
}

func (m *Memory) CreateEntry(_ context.Context, e ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.Kind] = append(m.entries[e.Kind], e)
	return nil
}

func (m *Memory) ListEntries(_ context.Context, kind ledger.Kind, f ledger.Filter, order ledger.SortOrder) ([]ledger.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []ledger.Entry
	for _, e := range m.entries[kind] {
		if f.Match(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == ledger.OrderDateAsc {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Date.After(out[j].Date)
	})
	return out, nil
}

func (m *Memory) GetEntry(_ context.Context, kind ledger.Kind, id string) (ledger.Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries[kind] {
		if e.ID == id {
			return e, nil
		}
	}
	return ledger.Entry{}, ledger.ErrEntryNotFound
}

func (m *Memory) UpdateEntry(_ context.Context, e ledger.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.entries[e.Kind]
	for i := range list {
		if list[i].ID == e.ID {
			list[i] = e
			return nil
		}
	}
	return ledger.ErrEntryNotFound
}

func (m *Memory) DeleteEntry(_ context.Context, kind ledger.Kind, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	list := m.entries[kind]
	for i := range list {
		if list[i].ID == id {
			m.entries[kind] = append(list[:i], list[i+1:]...)
			return nil
		}
	}
	return ledger.ErrEntryNotFound
}
