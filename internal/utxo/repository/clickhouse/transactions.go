package clickhouse

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
)

const transactionColumns = `
SELECT
	tx_num,
	txid,
	block_height,
	version,
	locktime,
	base_size,
	total_size,
	input_count,
	output_count
FROM utxo_transactions FINAL`

const transactionByNumQuery = transactionColumns + `
WHERE coin = ? AND network = ? AND tx_num = ?`

const transactionsOfQuery = transactionColumns + `
WHERE coin = ? AND network = ? AND tx_num >= ? AND tx_num < ?
ORDER BY tx_num ASC`

// TransactionByNum returns the transaction at chain position txNum.
func (r *Repository) TransactionByNum(ctx context.Context, txNum uint64) (model.Transaction, error) {
	tx, err := queryOne(ctx, r, "transaction_by_num", r.scanTransaction, transactionByNumQuery, string(r.coin), string(r.network), txNum)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", txNum, err)
	}
	return tx, nil
}

// TransactionsOf lists the transactions of block in block order.
func (r *Repository) TransactionsOf(ctx context.Context, block model.Block) rangeview.Seq[model.Transaction] {
	first, end := block.TxNums()
	return querySeq(ctx, r, "transactions_of", r.scanTransaction, transactionsOfQuery, string(r.coin), string(r.network), first, end)
}
