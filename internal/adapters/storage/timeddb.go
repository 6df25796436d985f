package storage

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"fitdesk/internal/adapters/http/perf"
)

// SQLDB is what the entity stores need from a database handle. Both *sql.DB
// and *TimedDB satisfy it, so timing instrumentation is opt-in at wiring time.
type SQLDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error)
}

var (
	_ SQLDB = (*sql.DB)(nil)
	_ SQLDB = (*TimedDB)(nil)
)

// DefaultSlowQueryMs is the slow-query warning threshold when
// FITDESK_SLOW_QUERY_MS is unset.
const DefaultSlowQueryMs = 50

var (
	slowQueryOnce      sync.Once
	slowQueryThreshold float64
)

func slowQueryMs() float64 {
	slowQueryOnce.Do(func() {
		slowQueryThreshold = DefaultSlowQueryMs
		if v := os.Getenv("FITDESK_SLOW_QUERY_MS"); v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				slowQueryThreshold = float64(n)
			}
		}
	})
	return slowQueryThreshold
}

// TimedDB wraps *sql.DB so every query is timed: slow ones are logged at warn
// level, and all of them feed the perf collector when one is attached.
type TimedDB struct {
	db        *sql.DB
	collector *perf.Collector
	threshold float64
}

func NewTimedDB(db *sql.DB, collector *perf.Collector) *TimedDB {
	return &TimedDB{
		db:        db,
		collector: collector,
		threshold: slowQueryMs(),
	}
}

// RawDB exposes the wrapped handle for schema init and pool configuration.
func (t *TimedDB) RawDB() *sql.DB {
	return t.db
}

func (t *TimedDB) observe(op string, start time.Time) {
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0

	if elapsed >= t.threshold {
		slog.Warn("slow_query", "op", op, "duration_ms", elapsed)
	} else {
		slog.Debug("query", "op", op, "duration_ms", elapsed)
	}

	if t.collector != nil {
		t.collector.Record(perf.Entry{
			Kind:       perf.KindQuery,
			Path:       op,
			DurationMs: elapsed,
			Timestamp:  start,
		})
	}
}

func (t *TimedDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	result, err := t.db.ExecContext(ctx, query, args...)
	t.observe("ExecContext", start)
	return result, err
}

func (t *TimedDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := t.db.QueryContext(ctx, query, args...)
	t.observe("QueryContext", start)
	return rows, err
}

func (t *TimedDB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	start := time.Now()
	row := t.db.QueryRowContext(ctx, query, args...)
	t.observe("QueryRowContext", start)
	return row
}

func (t *TimedDB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	start := time.Now()
	tx, err := t.db.BeginTx(ctx, opts)
	t.observe("BeginTx", start)
	return tx, err
}

func (t *TimedDB) Close() error {
	return t.db.Close()
}

func (t *TimedDB) Ping() error {
	return t.db.Ping()
}
