package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const insertTransactionInputsQuery = `
INSERT INTO utxo_transaction_inputs (
	coin,
	network,
	block_height,
	tx_num,
	txid,
	input_index,
	prev_txid,
	prev_vout,
	sequence,
	is_coinbase
) VALUES`

// InsertTransactionInputs stores transaction inputs in ClickHouse.
func (r *Repository) InsertTransactionInputs(ctx context.Context, inputs []model.TransactionInput) error {
	return insertRows(ctx, r, "insert_transaction_inputs", insertTransactionInputsQuery, inputs, func(in model.TransactionInput) []any {
		return []any{
			string(r.coin),
			string(r.network),
			in.BlockHeight,
			in.TxNum,
			in.TxID,
			in.Index,
			in.PrevTxID,
			in.PrevVout,
			in.Sequence,
			in.IsCoinbase,
		}
	})
}
