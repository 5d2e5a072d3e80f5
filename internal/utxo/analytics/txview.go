package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// TxView is the analytics surface of a single transaction.
// Scalars stored with the transaction are returned directly; everything else is read from the store per call.
type TxView struct {
	tx       model.Transaction
	analyzer *Analyzer
}

func (v TxView) Transaction() model.Transaction { return v.tx }

func (v TxView) OutputCount() uint32 { return v.tx.OutputCount }

func (v TxView) InputCount() uint32 { return v.tx.InputCount }

// SizeBytes is the serialized size including witness data.
func (v TxView) SizeBytes() uint32 { return v.tx.TotalSize }

// BaseSize is the serialized size without witness data.
func (v TxView) BaseSize() uint32 { return v.tx.BaseSize }

func (v TxView) TotalSize() uint32 { return v.tx.TotalSize }

func (v TxView) Weight() uint64 { return Weight(v.tx.BaseSize, v.tx.TotalSize) }

func (v TxView) VirtualSize() uint64 { return VirtualSize(v.Weight()) }

func (v TxView) Locktime() uint32 { return v.tx.LockTime }

func (v TxView) BlockHeight() uint64 { return v.tx.BlockHeight }

// Index is the chain-order position of the transaction.
func (v TxView) Index() uint64 { return v.tx.TxNum }

func (v TxView) Hash() chainhash.Hash { return v.tx.Hash }

func (v TxView) Block(ctx context.Context) (model.Block, error) {
	block, err := v.analyzer.store.BlockByHeight(ctx, v.tx.BlockHeight)
	if err != nil {
		return model.Block{}, fmt.Errorf("block of %s: %w", v.tx.TxID, err)
	}
	return block, nil
}

func (v TxView) BlockTime(ctx context.Context) (time.Time, error) {
	block, err := v.Block(ctx)
	if err != nil {
		return time.Time{}, err
	}
	return block.Timestamp, nil
}

func (v TxView) Inputs(ctx context.Context) rangeview.Seq[model.TransactionInput] {
	return v.analyzer.store.InputsOf(ctx, v.tx)
}

func (v TxView) Outputs(ctx context.Context) rangeview.Seq[model.TransactionOutput] {
	return v.analyzer.store.OutputsOf(ctx, v.tx)
}

// SpentOutputs resolves the outputs consumed by the transaction's inputs, in input order.
func (v TxView) SpentOutputs(ctx context.Context) ([]model.TransactionOutput, error) {
	inputs, err := v.analyzer.inputs(ctx, v.tx)
	if err != nil {
		return nil, err
	}
	return v.analyzer.spentOutputs(ctx, v.tx, inputs)
}

func (v TxView) InputValue(ctx context.Context) (int64, error) {
	spent, err := v.SpentOutputs(ctx)
	if err != nil {
		return 0, err
	}
	return InputValue(spent)
}

func (v TxView) OutputValue(ctx context.Context) (int64, error) {
	outputs, err := v.analyzer.outputs(ctx, v.tx)
	if err != nil {
		return 0, err
	}
	return OutputValue(outputs)
}

// Fee is input value minus output value. Coinbase transactions have a negative fee.
func (v TxView) Fee(ctx context.Context) (int64, error) {
	in, err := v.InputValue(ctx)
	if err != nil {
		return 0, err
	}
	out, err := v.OutputValue(ctx)
	if err != nil {
		return 0, err
	}
	return Fee(in, out)
}

// FeePerByte returns the fee divided by the size selected by measure.
// measure is one of total, base, weight or virtual; empty selects virtual.
func (v TxView) FeePerByte(ctx context.Context, measure string) (int64, error) {
	m, err := model.ParseSizeMeasure(measure)
	if err != nil {
		return 0, err
	}
	fee, err := v.Fee(ctx)
	if err != nil {
		return 0, err
	}
	return FeePerByte(fee, v.tx, m)
}

func (v TxView) OpReturn(ctx context.Context) (fn.Option[model.TransactionOutput], error) {
	outputs, err := v.analyzer.outputs(ctx, v.tx)
	if err != nil {
		return fn.None[model.TransactionOutput](), err
	}
	return OpReturn(outputs), nil
}

func (v TxView) IsCoinbase(ctx context.Context) (bool, error) {
	inputs, err := v.analyzer.inputs(ctx, v.tx)
	if err != nil {
		return false, err
	}
	return IsCoinbase(inputs), nil
}

// ChangeOutput guesses the change output. See ChangeDetector for the heuristic and its limits.
func (v TxView) ChangeOutput(ctx context.Context) (fn.Option[model.TransactionOutput], error) {
	none := fn.None[model.TransactionOutput]()
	inputs, err := v.analyzer.inputs(ctx, v.tx)
	if err != nil {
		return none, err
	}
	outputs, err := v.analyzer.outputs(ctx, v.tx)
	if err != nil {
		return none, err
	}
	if IsCoinbase(inputs) {
		return v.analyzer.changeOutput(ctx, v.tx, inputs, nil, outputs)
	}
	spent, err := v.analyzer.spentOutputs(ctx, v.tx, inputs)
	if err != nil {
		return none, err
	}
	return v.analyzer.changeOutput(ctx, v.tx, inputs, spent, outputs)
}
