// Package duckdb implements the chain store on an embedded DuckDB database.
package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	_ "github.com/marcboeker/go-duckdb"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

type (
	Metrics interface {
		Observe(operation string, coin model.Coin, network model.Network, err error, started time.Time)
	}
)

// Store keeps the chain of one coin and network in a DuckDB file. An empty path opens an in-memory database.
type Store struct {
	db       *sql.DB
	metrics  Metrics
	coin     model.Coin
	network  model.Network
	resolver *chain.TransactionOutputResolver
}

var _ chain.Store = (*Store)(nil)

// Open opens the database at path and creates the schema if needed.
func Open(ctx context.Context, path string, coin model.Coin, network model.Network, metrics Metrics) (*Store, error) {
	if metrics == nil {
		return nil, errors.New("duckdb store metrics is required")
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb %q: %w", path, err)
	}

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create duckdb schema: %w", err)
		}
	}

	s := &Store{db: db, metrics: metrics, coin: coin, network: network}
	s.resolver = chain.NewTransactionOutputResolver(s, coin, network)
	return s, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) observe(operation string, err error, started time.Time) {
	s.metrics.Observe(operation, s.coin, s.network, err, started)
}
