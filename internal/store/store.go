// Package store defines the port for durable check history. Adapters live
// in the subpackages; pick one at wiring time and depend only on ResultStore.
package store

import (
	"context"

	"statuswatch/internal/domain"
)

// HistoryFilter narrows a History query. The zero value means everything.
type HistoryFilter struct {
	URL   string // exact match when non-empty
	Limit int    // max rows; <= 0 means unlimited
}

type ResultStore interface {
	// Record appends one result. The row is durable when Record returns.
	Record(ctx context.Context, r *domain.CheckResult) error
	// History returns results most-recent-first.
	History(ctx context.Context, f HistoryFilter) ([]domain.CheckResult, error)
	Close() error
}
