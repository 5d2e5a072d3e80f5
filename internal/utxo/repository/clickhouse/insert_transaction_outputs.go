package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const insertTransactionOutputsQuery = `
INSERT INTO utxo_transaction_outputs (
	coin,
	network,
	block_height,
	tx_num,
	txid,
	output_index,
	value,
	script_type,
	script_hex,
	addresses
) VALUES`

// InsertTransactionOutputs stores transaction outputs in ClickHouse.
// The lookup and first-seen tables are filled by materialized views.
func (r *Repository) InsertTransactionOutputs(ctx context.Context, outputs []model.TransactionOutput) error {
	return insertRows(ctx, r, "insert_transaction_outputs", insertTransactionOutputsQuery, outputs, func(out model.TransactionOutput) []any {
		addresses := out.Addresses
		if addresses == nil {
			addresses = []string{}
		}
		return []any{
			string(r.coin),
			string(r.network),
			out.BlockHeight,
			out.TxNum,
			out.TxID,
			out.Index,
			out.Value,
			string(out.ScriptType),
			out.ScriptHex,
			addresses,
		}
	})
}
