package rangeview

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

type (
	// BlockReader reads a single block by height.
	BlockReader interface {
		BlockByHeight(ctx context.Context, height uint64) (model.Block, error)
	}
	// TransactionLister lists the transactions of a block in block order.
	TransactionLister interface {
		TransactionsOf(ctx context.Context, block model.Block) Seq[model.Transaction]
	}
	// InputLister lists the inputs of a transaction in input order.
	InputLister interface {
		InputsOf(ctx context.Context, tx model.Transaction) Seq[model.TransactionInput]
	}
	// OutputLister lists the outputs of a transaction in output order.
	OutputLister interface {
		OutputsOf(ctx context.Context, tx model.Transaction) Seq[model.TransactionOutput]
	}
)

// Heights yields the blocks at heights from..to inclusive, reading each one as the consumer advances.
func Heights(ctx context.Context, reader BlockReader, from, to uint64) Seq[model.Block] {
	return func(yield func(model.Block, error) bool) {
		for height := from; height <= to; height++ {
			block, err := reader.BlockByHeight(ctx, height)
			if err != nil {
				yield(model.Block{}, fmt.Errorf("read block at height %d: %w", height, err))
				return
			}
			if !yield(block, nil) {
				return
			}
			if height == ^uint64(0) {
				return
			}
		}
	}
}

// BlockTransactions flattens a sequence of blocks into their transactions.
func BlockTransactions(ctx context.Context, blocks Seq[model.Block], lister TransactionLister) Seq[model.Transaction] {
	return FlatMap(blocks, func(b model.Block) Seq[model.Transaction] {
		return lister.TransactionsOf(ctx, b)
	})
}

// Inputs flattens the inputs of every transaction in txs, preserving transaction then input order.
func Inputs(ctx context.Context, txs Seq[model.Transaction], lister InputLister) Seq[model.TransactionInput] {
	return FlatMap(txs, func(tx model.Transaction) Seq[model.TransactionInput] {
		return lister.InputsOf(ctx, tx)
	})
}

// Ins is an alias of Inputs.
func Ins(ctx context.Context, txs Seq[model.Transaction], lister InputLister) Seq[model.TransactionInput] {
	return Inputs(ctx, txs, lister)
}

// Outputs flattens the outputs of every transaction in txs, preserving transaction then output order.
func Outputs(ctx context.Context, txs Seq[model.Transaction], lister OutputLister) Seq[model.TransactionOutput] {
	return FlatMap(txs, func(tx model.Transaction) Seq[model.TransactionOutput] {
		return lister.OutputsOf(ctx, tx)
	})
}

// Outs is an alias of Outputs.
func Outs(ctx context.Context, txs Seq[model.Transaction], lister OutputLister) Seq[model.TransactionOutput] {
	return Outputs(ctx, txs, lister)
}
