package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const insertTransactionsQuery = `
INSERT INTO utxo_transactions (
	coin,
	network,
	tx_num,
	txid,
	block_height,
	version,
	locktime,
	base_size,
	total_size,
	input_count,
	output_count
) VALUES`

// InsertTransactions stores transaction rows in ClickHouse.
func (r *Repository) InsertTransactions(ctx context.Context, txs []model.Transaction) error {
	return insertRows(ctx, r, "insert_transactions", insertTransactionsQuery, txs, func(tx model.Transaction) []any {
		return []any{
			string(r.coin),
			string(r.network),
			tx.TxNum,
			tx.TxID,
			tx.BlockHeight,
			tx.Version,
			tx.LockTime,
			tx.BaseSize,
			tx.TotalSize,
			tx.InputCount,
			tx.OutputCount,
		}
	})
}
