package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/btcsuite/btcd/rpcclient"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/bitcoin"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain/memory"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/repository/clickhouse"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/repository/duckdb"
	"go.uber.org/zap"
)

const (
	sourceClickhouse = "clickhouse"
	sourceDuckDB     = "duckdb"
	sourceRPC        = "rpc"
)

type source struct {
	store chain.Store
	close func() error
}

func openSource(ctx context.Context, cfg config, logger *zap.Logger) (source, error) {
	switch cfg.Source {
	case sourceClickhouse:
		if cfg.ClickhouseDSN == "" {
			return source{}, errors.New("ClickHouse DSN is required")
		}
		repo, err := clickhouse.NewRepository(cfg.ClickhouseDSN, cfg.Coin, cfg.Network, metrics.NewClickhouseRepository())
		if err != nil {
			return source{}, fmt.Errorf("init clickhouse repository: %w", err)
		}
		return source{store: repo, close: repo.Close}, nil
	case sourceDuckDB:
		if cfg.DuckDBPath == "" {
			return source{}, errors.New("DuckDB path is required")
		}
		store, err := duckdb.Open(ctx, cfg.DuckDBPath, cfg.Coin, cfg.Network, metrics.NewDuckDBRepository())
		if err != nil {
			return source{}, fmt.Errorf("init duckdb store: %w", err)
		}
		return source{store: store, close: store.Close}, nil
	case sourceRPC:
		return loadFromNode(ctx, cfg, logger)
	default:
		return source{}, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

// loadFromNode copies blocks 0..To into a local store, numbering transactions from genesis.
// config.validate rejects a non-zero From for this source.
func loadFromNode(ctx context.Context, cfg config, logger *zap.Logger) (source, error) {
	var (
		appender interface {
			chain.Store
			bitcoin.BlockAppender
		}
		closeStore = func() error { return nil }
	)
	if cfg.DuckDBPath != "" {
		store, err := duckdb.Open(ctx, cfg.DuckDBPath, cfg.Coin, cfg.Network, metrics.NewDuckDBRepository())
		if err != nil {
			return source{}, fmt.Errorf("init duckdb store: %w", err)
		}
		appender, closeStore = store, store.Close
	} else {
		appender = memory.New(cfg.Coin, cfg.Network)
	}

	client, err := newRPCClient(cfg.RPCURL, cfg.RPCUser, cfg.RPCPassword)
	if err != nil {
		_ = closeStore()
		return source{}, fmt.Errorf("init rpc client: %w", err)
	}
	defer func() {
		client.Shutdown()
		client.WaitForShutdown()
	}()

	decoder, err := bitcoin.NewScriptDecoder(cfg.Network)
	if err != nil {
		_ = closeStore()
		return source{}, err
	}
	loader, err := bitcoin.NewLoader(
		bitcoin.NewRPCClient(client, metrics.NewRPCClient(cfg.Coin, cfg.Network)),
		bitcoin.NewBlockConverter(bitcoin.NewOutputConverter(decoder, cfg.Network), cfg.Network),
		appender,
		cfg.RPCRate,
		metrics.NewLoader(cfg.Coin, cfg.Network),
		logger,
	)
	if err != nil {
		_ = closeStore()
		return source{}, err
	}
	if _, err := loader.WithRetry(cfg.RPCRetries, cfg.RPCRetryDelay).Load(ctx, cfg.From, cfg.To, 0); err != nil {
		_ = closeStore()
		return source{}, fmt.Errorf("load blocks from node: %w", err)
	}
	return source{store: appender, close: closeStore}, nil
}

func newRPCClient(rawURL, user, password string) (*rpcclient.Client, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse rpc url: %w", err)
	}
	if parsed.Scheme != "http" {
		return nil, fmt.Errorf("rpc url scheme %q not supported, use http", parsed.Scheme)
	}
	if parsed.Host == "" {
		return nil, errors.New("rpc url missing host")
	}

	return rpcclient.New(&rpcclient.ConnConfig{
		Host:         parsed.Host,
		User:         user,
		Pass:         password,
		HTTPPostMode: true,
		DisableTLS:   true,
	}, nil)
}
