package analytics

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// ChangeDetector guesses which output of a transaction returns change to the sender.
//
// The heuristic picks the single output paying an address that had never received funds before
// the transaction. It is advisory: wallets that reuse addresses, or pay fresh addresses to
// third parties, defeat it, and a None result means "undetermined" rather than "no change".
type ChangeDetector struct {
	oracle chain.AddressFreshnessOracle
}

// NewChangeDetector creates a ChangeDetector backed by the given first-appearance oracle.
func NewChangeDetector(oracle chain.AddressFreshnessOracle) *ChangeDetector {
	return &ChangeDetector{oracle: oracle}
}

// ChangeOutput returns the change output of tx, if exactly one output qualifies.
// spent holds the outputs consumed by inputs, in input order.
func (d *ChangeDetector) ChangeOutput(
	ctx context.Context,
	tx model.Transaction,
	inputs []model.TransactionInput,
	spent []model.TransactionOutput,
	outputs []model.TransactionOutput,
) (fn.Option[model.TransactionOutput], error) {
	none := fn.None[model.TransactionOutput]()
	if IsCoinbase(inputs) {
		return none, nil
	}

	inputAddresses := make(map[string]struct{})
	for _, out := range spent {
		for _, addr := range out.Addresses {
			inputAddresses[addr] = struct{}{}
		}
	}

	var (
		candidate model.TransactionOutput
		fresh     int
	)
	for _, out := range outputs {
		ok, err := d.isFresh(ctx, tx.TxNum, out, inputAddresses)
		if err != nil {
			return none, fmt.Errorf("change output of %s: %w", tx.TxID, err)
		}
		if !ok {
			continue
		}
		fresh++
		if fresh > 1 {
			return none, nil
		}
		candidate = out
	}
	if fresh != 1 {
		return none, nil
	}
	return fn.Some(candidate), nil
}

func (d *ChangeDetector) isFresh(
	ctx context.Context,
	txNum uint64,
	out model.TransactionOutput,
	inputAddresses map[string]struct{},
) (bool, error) {
	if len(out.Addresses) == 0 {
		return false, nil
	}
	for _, addr := range out.Addresses {
		if _, ok := inputAddresses[addr]; ok {
			return false, nil
		}
	}
	for _, addr := range out.Addresses {
		pos, seen, err := d.oracle.AddressFirstAppearance(ctx, addr)
		if err != nil {
			return false, fmt.Errorf("first appearance of %s: %w", addr, err)
		}
		if seen && uint64(pos) < txNum {
			return false, nil
		}
	}
	return true, nil
}
