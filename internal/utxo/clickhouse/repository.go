// Package clickhouse keeps the UTXO set and the verified block log in ClickHouse.
package clickhouse

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/goodnatureofminers/blockinsight7000-consensus/internal/model"
)

// Repository is a UTXO set for one network. Rows are versioned and collapsed by a
// ReplacingMergeTree, so every flag change is an insert of the full row.
type Repository struct {
	conn    Conn
	network model.Network
	metrics Metrics

	// mu serializes read-modify-write flag changes and hands out row versions.
	mu      sync.Mutex
	version uint64
}

func NewRepository(dsn string, network model.Network, metrics Metrics) (*Repository, error) {
	if dsn == "" {
		return nil, errors.New("clickhouse dsn is required")
	}
	if network == "" {
		return nil, errors.New("network is required")
	}

	options, err := clickhouse.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}

	conn, err := clickhouse.Open(options)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse connection: %w", err)
	}

	return &Repository{conn: driverConn{conn: conn}, network: network, metrics: metrics}, nil
}

func (r *Repository) Close() error {
	return r.conn.Close()
}

func (r *Repository) observe(operation string, err error, started time.Time) {
	if r.metrics != nil {
		r.metrics.Observe(operation, r.network, err, started)
	}
}

// nextVersionLocked returns a row version greater than every version handed out before.
func (r *Repository) nextVersionLocked() uint64 {
	v := uint64(time.Now().UnixNano())
	if v <= r.version {
		v = r.version + 1
	}
	r.version = v
	return v
}

type driverConn struct {
	conn clickhouse.Conn
}

func (c driverConn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.conn.Query(ctx, query, args...)
}

func (c driverConn) PrepareBatch(ctx context.Context, query string) (Batch, error) {
	return c.conn.PrepareBatch(ctx, query)
}

func (c driverConn) Close() error {
	return c.conn.Close()
}
