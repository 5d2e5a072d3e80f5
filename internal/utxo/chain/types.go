// Package chain defines the storage contracts the analytics layer consumes.
package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
)

type (
	// InputResolver dereferences inputs to the outputs they spend, in input order.
	// Coinbase inputs resolve to a zero output. An input that cannot be resolved is a *ResolutionError.
	InputResolver interface {
		ResolveInputs(ctx context.Context, inputs []model.TransactionInput) ([]model.TransactionOutput, error)
	}

	// AddressFreshnessOracle reports the chain position at which an address first appeared in
	// output position. ok is false when the address has never been seen.
	AddressFreshnessOracle interface {
		AddressFirstAppearance(ctx context.Context, address string) (pos model.ChainPosition, ok bool, err error)
	}

	// TransactionReader reads transactions and their inputs and outputs.
	TransactionReader interface {
		TransactionByNum(ctx context.Context, txNum uint64) (model.Transaction, error)
		TransactionsOf(ctx context.Context, block model.Block) rangeview.Seq[model.Transaction]
		InputsOf(ctx context.Context, tx model.Transaction) rangeview.Seq[model.TransactionInput]
		OutputsOf(ctx context.Context, tx model.Transaction) rangeview.Seq[model.TransactionOutput]
	}

	// Store is the full read surface of a chain storage backend.
	// Reads of finalized chain data must never observe partial writes.
	Store interface {
		BlockByHeight(ctx context.Context, height uint64) (model.Block, error)
		TransactionReader
		InputResolver
		AddressFreshnessOracle
	}
)
