// Package postgres persists check history in PostgreSQL. Selected when
// database_url is set; teams that already run Postgres point statuswatch
// at it instead of a local file.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"statuswatch/internal/domain"
	"statuswatch/internal/store"
)

var _ store.ResultStore = (*Store)(nil)

type Store struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}

	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS status_logs (
	id            BIGSERIAL PRIMARY KEY,
	url           TEXT NOT NULL,
	status_code   INTEGER,
	response_time DOUBLE PRECISION,
	status        TEXT NOT NULL,
	error_message TEXT,
	timestamp     TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_status_logs_timestamp ON status_logs (timestamp);
CREATE INDEX IF NOT EXISTS idx_status_logs_url_timestamp ON status_logs (url, timestamp DESC);
`
	_, err := s.pool.Exec(ctx, schema)
	return err
}

func (s *Store) Record(ctx context.Context, r *domain.CheckResult) error {
	var errMsg *string
	if r.ErrorMessage != "" {
		errMsg = &r.ErrorMessage
	}
	_, err := s.pool.Exec(ctx, `
INSERT INTO status_logs (url, status_code, response_time, status, error_message, timestamp)
VALUES ($1, $2, $3, $4, $5, $6)`,
		r.URL, r.StatusCode, r.ResponseTime, string(r.Status), errMsg, r.CheckedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert status log: %w", err)
	}
	return nil
}

func (s *Store) History(ctx context.Context, f store.HistoryFilter) ([]domain.CheckResult, error) {
	var q strings.Builder
	q.WriteString(`
SELECT url, status_code, response_time, status, error_message, timestamp
  FROM status_logs`)
	var args []any
	if f.URL != "" {
		args = append(args, f.URL)
		fmt.Fprintf(&q, " WHERE url = $%d", len(args))
	}
	q.WriteString(" ORDER BY timestamp DESC, id DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&q, " LIMIT $%d", len(args))
	}

	rows, err := s.pool.Query(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []domain.CheckResult
	for rows.Next() {
		var (
			r      domain.CheckResult
			code   *int
			rtime  *float64
			status string
			errMsg *string
			ts     time.Time
		)
		if err := rows.Scan(&r.URL, &code, &rtime, &status, &errMsg, &ts); err != nil {
			return nil, fmt.Errorf("scan status log: %w", err)
		}
		r.StatusCode = code
		if rtime != nil {
			r.ResponseTime = *rtime
		}
		r.Status = domain.Status(status)
		if errMsg != nil {
			r.ErrorMessage = *errMsg
		}
		r.CheckedAt = ts
		out = append(out, r)
	}
	return out, rows.Err()
}
