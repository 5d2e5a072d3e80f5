package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type config struct {
	Source          string        `long:"source" env:"TX_ANALYTICS_SOURCE" description:"chain data source" choice:"clickhouse" choice:"duckdb" choice:"rpc" default:"clickhouse"`
	ClickhouseDSN   string        `long:"clickhouse-dsn" env:"TX_ANALYTICS_CLICKHOUSE_DSN" description:"ClickHouse DSN"`
	DuckDBPath      string        `long:"duckdb-path" env:"TX_ANALYTICS_DUCKDB_PATH" description:"DuckDB database file; with --source=rpc the loaded range is persisted there"`
	Coin            model.Coin    `long:"coin" env:"TX_ANALYTICS_COIN" description:"coin name" default:"BTC"`
	Network         model.Network `long:"network" env:"TX_ANALYTICS_NETWORK" description:"network name" required:"true"`
	RPCURL          string        `long:"rpc-url" env:"TX_ANALYTICS_RPC_URL" description:"Bitcoin RPC URL" default:"http://127.0.0.1:8332"`
	RPCUser         string        `long:"rpc-user" env:"TX_ANALYTICS_RPC_USER" description:"Bitcoin RPC username"`
	RPCPassword     string        `long:"rpc-password" env:"TX_ANALYTICS_RPC_PASSWORD" description:"Bitcoin RPC password"`
	RPCRate         int           `long:"rpc-rate" env:"TX_ANALYTICS_RPC_RATE" description:"max blocks fetched per second, 0 for unlimited" default:"50"`
	RPCRetries      int           `long:"rpc-retries" env:"TX_ANALYTICS_RPC_RETRIES" description:"retries per failed block fetch" default:"3"`
	RPCRetryDelay   time.Duration `long:"rpc-retry-delay" env:"TX_ANALYTICS_RPC_RETRY_DELAY" description:"initial delay between block fetch retries" default:"1s"`
	From            uint64        `long:"from" env:"TX_ANALYTICS_FROM" description:"first block height" required:"true"`
	To              uint64        `long:"to" env:"TX_ANALYTICS_TO" description:"last block height, inclusive" required:"true"`
	Workers         int           `long:"workers" env:"TX_ANALYTICS_WORKERS" description:"concurrent report workers" default:"4"`
	MetricsAddr     string        `long:"metrics-addr" env:"TX_ANALYTICS_METRICS_ADDR" description:"address for metrics server, empty to disable" default:":2112"`
	ShutdownTimeout time.Duration `long:"shutdown-timeout" env:"TX_ANALYTICS_SHUTDOWN_TIMEOUT" description:"metrics server shutdown timeout" default:"5s"`
}

func main() {
	cfg := config{}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic("can't initialize zap logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync()
	}()

	if _, err := flags.ParseArgs(&cfg, os.Args); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			return
		}
		logger.Fatal("failed to parse flags", zap.Error(err))
	}
	if err := cfg.validate(); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("tx analytics failed", zap.Error(err))
	}
}

func (c config) validate() error {
	if c.From > c.To {
		return fmt.Errorf("invalid height range: from %d is above to %d", c.From, c.To)
	}
	// inputs spending outputs created before --from cannot be resolved,
	// so a node-loaded store must start at genesis
	if c.Source == sourceRPC && c.From > 0 {
		return fmt.Errorf("--source=%s requires --from=0, got %d", sourceRPC, c.From)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

func run(ctx context.Context, cfg config, logger *zap.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			return serveMetrics(ctx, cfg.MetricsAddr, cfg.ShutdownTimeout, logger)
		})
	}
	g.Go(func() error {
		// the metrics server lives only as long as the analysis
		defer cancel()

		src, err := openSource(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := src.close(); err != nil {
				logger.Error("failed to close source", zap.Error(err))
			}
		}()
		return writeReports(ctx, src.store, cfg, logger, os.Stdout)
	})
	return g.Wait()
}

func serveMetrics(ctx context.Context, addr string, shutdownTimeout time.Duration, logger *zap.Logger) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting metrics server", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown metrics server", zap.Error(err))
		}
		return nil
	}
}
