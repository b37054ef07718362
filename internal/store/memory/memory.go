// Package memory is a ResultStore that keeps everything in RAM. It backs
// tests; nothing survives the process.
package memory

import (
	"context"
	"sort"
	"sync"

	"statuswatch/internal/domain"
	"statuswatch/internal/store"
)

var _ store.ResultStore = (*Store)(nil)

type Store struct {
	mu      sync.RWMutex
	results []domain.CheckResult
}

func New() *Store {
	return &Store{results: make([]domain.CheckResult, 0, 128)}
}

func (m *Store) Record(ctx context.Context, r *domain.CheckResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, *r)
	return nil
}

func (m *Store) History(ctx context.Context, f store.HistoryFilter) ([]domain.CheckResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	// newest first; reverse insertion order breaks timestamp ties
	out := make([]domain.CheckResult, 0, len(m.results))
	for i := len(m.results) - 1; i >= 0; i-- {
		r := m.results[i]
		if f.URL != "" && r.URL != f.URL {
			continue
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CheckedAt.After(out[j].CheckedAt)
	})
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (m *Store) Close() error { return nil }

// Len reports how many results have been recorded.
func (m *Store) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.results)
}
