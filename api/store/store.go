// Package store is the read-only repository over the analytical warehouse.
// It executes queries produced by the query package and maps result rows
// into the JSON record shapes served by the HTTP layer.
package store

import (
	"context"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/koshai/npdes/api/metrics"
)

// Rows is the subset of the driver result set the store consumes.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// Querier is the minimal warehouse surface the store depends on. It exists
// so the backing store can be swapped without touching filter-building or
// row-mapping logic.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	Ping(ctx context.Context) error
}

// connQuerier adapts a ClickHouse connection pool to Querier and records
// query metrics on every round trip.
type connQuerier struct {
	conn driver.Conn
}

// NewConnQuerier wraps a ClickHouse connection as a Querier.
func NewConnQuerier(conn driver.Conn) Querier {
	return &connQuerier{conn: conn}
}

func (q *connQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	start := time.Now()
	rows, err := q.conn.Query(ctx, sql, args...)
	metrics.RecordWarehouseQuery(time.Since(start), err)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *connQuerier) Ping(ctx context.Context) error {
	return q.conn.Ping(ctx)
}

// Store executes read-only queries against the monitoring and weather tables.
type Store struct {
	db              Querier
	monitoringTable string
	weatherTable    string
}

// New creates a Store over db for the two configured tables.
func New(db Querier, monitoringTable, weatherTable string) *Store {
	return &Store{
		db:              db,
		monitoringTable: monitoringTable,
		weatherTable:    weatherTable,
	}
}

// Ping reports warehouse connectivity, for readiness checks.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// formatTimestamp serializes a nullable warehouse timestamp as ISO-8601.
func formatTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}
