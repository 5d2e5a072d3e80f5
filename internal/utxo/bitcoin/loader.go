package bitcoin

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/clock"
	"go.uber.org/ratelimit"
	"go.uber.org/zap"
)

const maxRetryDelay = 30 * time.Second

// Loader copies a height range from a node into a chain store.
type Loader struct {
	rpc        NodeClient
	converter  *BlockConverter
	appender   BlockAppender
	limiter    ratelimit.Limiter
	retries    int
	retryDelay time.Duration
	metrics    LoaderMetrics
	logger     *zap.Logger
}

// NewLoader constructs a Loader issuing at most rps block fetches per second. rps <= 0 disables the limit.
func NewLoader(
	rpc NodeClient,
	converter *BlockConverter,
	appender BlockAppender,
	rps int,
	metrics LoaderMetrics,
	logger *zap.Logger,
) (*Loader, error) {
	if rpc == nil {
		return nil, errors.New("rpc client is required")
	}
	if converter == nil {
		return nil, errors.New("block converter is required")
	}
	if appender == nil {
		return nil, errors.New("block appender is required")
	}
	if metrics == nil {
		return nil, errors.New("loader metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limiter := ratelimit.NewUnlimited()
	if rps > 0 {
		limiter = ratelimit.New(rps)
	}
	return &Loader{
		rpc:       rpc,
		converter: converter,
		appender:  appender,
		limiter:   limiter,
		metrics:   metrics,
		logger:    logger.Named("loader"),
	}, nil
}

// WithRetry makes failed node fetches retry up to attempts more times with exponential backoff from delay.
func (l *Loader) WithRetry(attempts int, delay time.Duration) *Loader {
	l.retries = max(attempts, 0)
	l.retryDelay = delay
	return l
}

// Load appends blocks from..to inclusive, numbering their transactions from firstTxNum.
// It returns the TxNum following the last appended transaction.
func (l *Loader) Load(ctx context.Context, from, to, firstTxNum uint64) (uint64, error) {
	if from > to {
		return firstTxNum, fmt.Errorf("invalid height range %d..%d", from, to)
	}
	count, err := l.rpc.GetBlockCount()
	if err != nil {
		return firstTxNum, fmt.Errorf("get block count: %w", err)
	}
	if count < 0 || to > uint64(count) {
		return firstTxNum, fmt.Errorf("height %d beyond node tip %d", to, count)
	}

	next := firstTxNum
	for height := from; height <= to; height++ {
		if err := ctx.Err(); err != nil {
			return next, err
		}
		l.limiter.Take()

		next, err = l.loadBlock(ctx, height, next)
		if err != nil {
			return next, err
		}
	}
	l.logger.Info("blocks loaded",
		zap.Uint64("from", from),
		zap.Uint64("to", to),
		zap.Uint64("next_tx_num", next),
	)
	return next, nil
}

func (l *Loader) loadBlock(ctx context.Context, height, firstTxNum uint64) (next uint64, err error) {
	started := time.Now()
	defer func() {
		l.metrics.ObserveBlock(err, height, started)
	}()

	src, err := l.fetch(ctx, height)
	if err != nil {
		return firstTxNum, err
	}
	block, err := l.converter.Convert(*src, firstTxNum)
	if err != nil {
		return firstTxNum, fmt.Errorf("convert block %d: %w", height, err)
	}
	if err = l.appender.AppendBlock(ctx, block); err != nil {
		l.logger.Error("append block failed", zap.Uint64("height", height), zap.Error(err))
		return firstTxNum, fmt.Errorf("append block %d: %w", height, err)
	}

	l.logger.Debug("block loaded", zap.Uint64("height", height), zap.Uint32("tx_count", block.Block.TXCount))
	_, next = block.Block.TxNums()
	return next, nil
}

func (l *Loader) fetch(ctx context.Context, height uint64) (*btcjson.GetBlockVerboseTxResult, error) {
	for attempt := 0; ; attempt++ {
		src, err := l.fetchOnce(height)
		if err == nil {
			return src, nil
		}
		if attempt >= l.retries {
			l.logger.Error("fetch block failed", zap.Uint64("height", height), zap.Error(err))
			return nil, err
		}
		l.logger.Warn("fetch block failed, retrying",
			zap.Uint64("height", height),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if err := clock.SleepWithContext(ctx, clock.Backoff(attempt, l.retryDelay, maxRetryDelay)); err != nil {
			return nil, err
		}
	}
}

func (l *Loader) fetchOnce(height uint64) (*btcjson.GetBlockVerboseTxResult, error) {
	// height <= node tip, so it fits int64.
	hash, err := l.rpc.GetBlockHash(int64(height))
	if err != nil {
		return nil, fmt.Errorf("get block hash at height %d: %w", height, err)
	}
	src, err := l.rpc.GetBlockVerboseTx(hash)
	if err != nil {
		return nil, fmt.Errorf("get block %s: %w", hash, err)
	}
	return src, nil
}
