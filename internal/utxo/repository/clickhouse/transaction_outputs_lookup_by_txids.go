package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const transactionOutputsLookupQuery = `
SELECT
	txid,
	output_index,
	anyLast(value) AS value,
	anyLast(script_type) AS script_type,
	anyLast(addresses) AS addresses
FROM utxo_transaction_outputs_lookup
WHERE coin = ? AND network = ? AND txid IN ?
GROUP BY
	txid,
	output_index
ORDER BY output_index ASC
SETTINGS max_threads = 1`

// TransactionOutputsLookupByTxIDs returns the outputs of multiple transactions keyed by txid.
// Unknown txids are absent from the result.
func (r *Repository) TransactionOutputsLookupByTxIDs(ctx context.Context, coin model.Coin, network model.Network, txids []string) (map[string][]model.TransactionOutputLookup, error) {
	start := time.Now()
	var err error
	defer func() {
		r.metrics.Observe("transaction_outputs_lookup_by_txids", coin, network, err, start)
	}()

	result := make(map[string][]model.TransactionOutputLookup, len(txids))
	if len(txids) == 0 {
		return result, nil
	}

	rows, err := r.conn.Query(ctx, transactionOutputsLookupQuery, string(coin), string(network), txids)
	if err != nil {
		return nil, fmt.Errorf("query transaction outputs by txids: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close rows: %w", cerr)
		}
	}()

	for rows.Next() {
		var (
			scriptType string
			output     model.TransactionOutputLookup
		)
		if err = rows.Scan(
			&output.TxID,
			&output.Index,
			&output.Value,
			&scriptType,
			&output.Addresses,
		); err != nil {
			return nil, fmt.Errorf("scan transaction output: %w", err)
		}

		output.Coin = coin
		output.Network = network
		output.ScriptType = model.ScriptType(scriptType)

		result[output.TxID] = append(result[output.TxID], output)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction outputs: %w", err)
	}

	return result, nil
}
