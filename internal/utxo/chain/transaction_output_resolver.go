package chain

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// TransactionOutputResolver resolves inputs to the outputs they spend through batched repository lookups.
// Nothing is cached between calls, so values always reflect storage.
type TransactionOutputResolver struct {
	repo    OutputLookupRepository
	coin    model.Coin
	network model.Network
}

// transactionOutputResolverBatchSize controls how many txids are fetched in one repository call.
// It is a var to allow overriding in tests.
var transactionOutputResolverBatchSize = 1000

// NewTransactionOutputResolver constructs a TransactionOutputResolver for a specific network.
func NewTransactionOutputResolver(repo OutputLookupRepository, coin model.Coin, network model.Network) *TransactionOutputResolver {
	return &TransactionOutputResolver{
		repo:    repo,
		coin:    coin,
		network: network,
	}
}

// ResolveInputs returns the spent output of every input, in input order.
func (r *TransactionOutputResolver) ResolveInputs(ctx context.Context, inputs []model.TransactionInput) ([]model.TransactionOutput, error) {
	txids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		if !in.IsCoinbase {
			txids = append(txids, in.PrevTxID)
		}
	}

	prev, err := r.ResolveBatch(ctx, txids)
	if err != nil {
		return nil, err
	}

	resolved := make([]model.TransactionOutput, 0, len(inputs))
	for _, in := range inputs {
		if in.IsCoinbase {
			resolved = append(resolved, model.TransactionOutput{Coin: r.coin, Network: r.network})
			continue
		}
		out, ok := findOutput(prev[in.PrevTxID], in.PrevVout)
		if !ok {
			return nil, &ResolutionError{
				TxID:     in.TxID,
				Index:    in.Index,
				PrevTxID: in.PrevTxID,
				PrevVout: in.PrevVout,
				Err:      fmt.Errorf("previous output %w", ErrNotFound),
			}
		}
		resolved = append(resolved, model.TransactionOutput{
			Coin:       r.coin,
			Network:    r.network,
			TxID:       out.TxID,
			Index:      out.Index,
			Value:      out.Value,
			ScriptType: out.ScriptType,
			Addresses:  out.Addresses,
		})
	}
	return resolved, nil
}

// ResolveBatch returns outputs for many transactions, deduplicating txids across the batch.
// Txids unknown to the repository map to nil.
func (r *TransactionOutputResolver) ResolveBatch(ctx context.Context, txids []string) (map[string][]model.TransactionOutputLookup, error) {
	result := make(map[string][]model.TransactionOutputLookup, len(txids))

	seen := make(map[string]struct{}, len(txids))
	missing := make([]string, 0, len(txids))

	for _, txid := range txids {
		if _, dup := seen[txid]; dup {
			continue
		}
		seen[txid] = struct{}{}
		missing = append(missing, txid)
	}

	size := transactionOutputResolverBatchSize
	if size <= 0 {
		size = 1000
	}
	for start := 0; start < len(missing); start += size {
		end := min(start+size, len(missing))

		fromRepo, err := r.repo.TransactionOutputsLookupByTxIDs(ctx, r.coin, r.network, missing[start:end])
		if err != nil {
			return nil, fmt.Errorf("query outputs for txids: %w", err)
		}
		for txid, outputs := range fromRepo {
			result[txid] = outputs
		}
		for _, txid := range missing[start:end] {
			if _, ok := result[txid]; !ok {
				result[txid] = nil
			}
		}
	}

	return result, nil
}

func findOutput(outputs []model.TransactionOutputLookup, vout uint32) (model.TransactionOutputLookup, bool) {
	for _, out := range outputs {
		if out.Index == vout {
			return out, true
		}
	}
	return model.TransactionOutputLookup{}, false
}
