// Package sqlite persists check history in a local SQLite file via the
// CGo-free modernc.org driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"statuswatch/internal/domain"
	"statuswatch/internal/store"
)

var _ store.ResultStore = (*Store)(nil)

type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the database file and ensures the schema.
// synchronous=FULL makes every insert reach disk before Record returns.
func New(ctx context.Context, path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=synchronous(FULL)&_pragma=busy_timeout(5000)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// one connection; the driver rejects concurrent writers otherwise
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	schema := `
CREATE TABLE IF NOT EXISTS status_logs (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	url           TEXT NOT NULL,
	status_code   INTEGER,
	response_time REAL,
	status        TEXT NOT NULL,
	error_message TEXT,
	timestamp     DATETIME NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_timestamp ON status_logs(timestamp);
CREATE INDEX IF NOT EXISTS idx_url_timestamp ON status_logs(url, timestamp DESC);
`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

func (s *Store) Record(ctx context.Context, r *domain.CheckResult) error {
	var errMsg *string
	if r.ErrorMessage != "" {
		errMsg = &r.ErrorMessage
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO status_logs (url, status_code, response_time, status, error_message, timestamp)
VALUES (?, ?, ?, ?, ?, ?)`,
		r.URL, r.StatusCode, r.ResponseTime, string(r.Status), errMsg,
		r.CheckedAt.UTC().Format(time.RFC3339Nano),
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
		q.WriteString(" WHERE url = ?")
		args = append(args, f.URL)
	}
	q.WriteString(" ORDER BY timestamp DESC, id DESC")
	if f.Limit > 0 {
		q.WriteString(" LIMIT ?")
		args = append(args, f.Limit)
	}

	rows, err := s.db.QueryContext(ctx, q.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var out []domain.CheckResult
	for rows.Next() {
		var (
			r       domain.CheckResult
			code    sql.NullInt64
			rtime   sql.NullFloat64
			status  string
			errMsg  sql.NullString
			rawTime string
		)
		if err := rows.Scan(&r.URL, &code, &rtime, &status, &errMsg, &rawTime); err != nil {
			return nil, fmt.Errorf("scan status log: %w", err)
		}
		if code.Valid {
			v := int(code.Int64)
			r.StatusCode = &v
		}
		if rtime.Valid {
			r.ResponseTime = rtime.Float64
		}
		r.Status = domain.Status(status)
		r.ErrorMessage = errMsg.String
		ts, err := time.Parse(time.RFC3339Nano, rawTime)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", rawTime, err)
		}
		r.CheckedAt = ts
		out = append(out, r)
	}
	return out, rows.Err()
}
