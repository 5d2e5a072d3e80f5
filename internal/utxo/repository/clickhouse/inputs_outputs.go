package clickhouse

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
)

const inputsOfQuery = `
SELECT
	block_height,
	tx_num,
	txid,
	input_index,
	prev_txid,
	prev_vout,
	sequence,
	is_coinbase
FROM utxo_transaction_inputs FINAL
WHERE coin = ? AND network = ? AND tx_num = ?
ORDER BY input_index ASC`

const outputsOfQuery = `
SELECT
	block_height,
	tx_num,
	txid,
	output_index,
	value,
	script_type,
	script_hex,
	addresses
FROM utxo_transaction_outputs FINAL
WHERE coin = ? AND network = ? AND tx_num = ?
ORDER BY output_index ASC`

// InputsOf lists the inputs of tx in input order.
func (r *Repository) InputsOf(ctx context.Context, tx model.Transaction) rangeview.Seq[model.TransactionInput] {
	return querySeq(ctx, r, "inputs_of", r.scanInput, inputsOfQuery, string(r.coin), string(r.network), tx.TxNum)
}

// OutputsOf lists the outputs of tx in output order.
func (r *Repository) OutputsOf(ctx context.Context, tx model.Transaction) rangeview.Seq[model.TransactionOutput] {
	return querySeq(ctx, r, "outputs_of", r.scanOutput, outputsOfQuery, string(r.coin), string(r.network), tx.TxNum)
}
