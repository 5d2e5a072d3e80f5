package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const insertBlocksQuery = `
INSERT INTO utxo_blocks (
	coin,
	network,
	height,
	hash,
	timestamp,
	tx_count,
	first_tx_num
) VALUES`

// InsertBlocks stores block rows in ClickHouse.
func (r *Repository) InsertBlocks(ctx context.Context, blocks []model.Block) error {
	return insertRows(ctx, r, "insert_blocks", insertBlocksQuery, blocks, func(b model.Block) []any {
		return []any{
			string(r.coin),
			string(r.network),
			b.Height,
			b.Hash,
			b.Timestamp,
			b.TXCount,
			b.FirstTxNum,
		}
	})
}

// insertRows appends every item to one batch and sends it. Failed batches are aborted.
func insertRows[T any](ctx context.Context, r *Repository, operation, query string, items []T, row func(T) []any) (err error) {
	start := time.Now()
	defer func() {
		r.observe(operation, err, start)
	}()

	if len(items) == 0 {
		return nil
	}

	batch, err := r.conn.PrepareBatch(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare %s batch: %w", operation, err)
	}

	for _, item := range items {
		if err = batch.Append(row(item)...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("append %s row: %w", operation, err)
		}
	}

	if err = batch.Send(); err != nil {
		return fmt.Errorf("send %s batch: %w", operation, err)
	}
	return nil
}
