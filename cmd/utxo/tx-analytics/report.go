package main

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/metrics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/analytics"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"go.uber.org/zap"
)

// writeReports prints one JSON object per transaction of blocks cfg.From..cfg.To, in chain order.
func writeReports(ctx context.Context, store chain.Store, cfg config, logger *zap.Logger, w io.Writer) error {
	analyzer, err := analytics.NewAnalyzer(store, metrics.NewAnalytics(), logger)
	if err != nil {
		return err
	}

	buf := bufio.NewWriter(w)
	enc := json.NewEncoder(buf)
	var count int
	for report, err := range analyzer.Reports(ctx, analyzer.Transactions(ctx, cfg.From, cfg.To), cfg.Workers) {
		if err != nil {
			_ = buf.Flush()
			return fmt.Errorf("report after %d transactions: %w", count, err)
		}
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("encode report for tx %s: %w", report.TxID, err)
		}
		count++
	}
	if err := buf.Flush(); err != nil {
		return err
	}

	logger.Info("reports written",
		zap.Uint64("from", cfg.From),
		zap.Uint64("to", cfg.To),
		zap.Int("transactions", count),
	)
	return nil
}
