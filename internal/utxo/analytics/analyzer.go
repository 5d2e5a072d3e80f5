package analytics

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
	"github.com/lightningnetwork/lnd/fn/v2"
	"go.uber.org/zap"
)

// Analyzer exposes per-transaction analytics over a chain store.
// Values derived from inputs are resolved from the store on every request and never cached.
type Analyzer struct {
	store   chain.Store
	change  *ChangeDetector
	metrics Metrics
	logger  *zap.Logger
}

func NewAnalyzer(store chain.Store, metrics Metrics, logger *zap.Logger) (*Analyzer, error) {
	if store == nil {
		return nil, errors.New("analyzer store is required")
	}
	if metrics == nil {
		return nil, errors.New("analyzer metrics is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Analyzer{
		store:   store,
		change:  NewChangeDetector(store),
		metrics: metrics,
		logger:  logger.Named("analyzer"),
	}, nil
}

// Tx returns the view of the transaction at chain position txNum.
func (a *Analyzer) Tx(ctx context.Context, txNum uint64) (TxView, error) {
	tx, err := a.store.TransactionByNum(ctx, txNum)
	if err != nil {
		return TxView{}, fmt.Errorf("transaction %d: %w", txNum, err)
	}
	return a.View(tx), nil
}

// View wraps an already loaded transaction.
func (a *Analyzer) View(tx model.Transaction) TxView {
	return TxView{tx: tx, analyzer: a}
}

// Transactions lazily lists every transaction of blocks from..to inclusive, in chain order.
func (a *Analyzer) Transactions(ctx context.Context, from, to uint64) rangeview.Seq[model.Transaction] {
	return rangeview.BlockTransactions(ctx, rangeview.Heights(ctx, a.store, from, to), a.store)
}

// Inputs flattens the inputs of txs in order.
func (a *Analyzer) Inputs(ctx context.Context, txs rangeview.Seq[model.Transaction]) rangeview.Seq[model.TransactionInput] {
	return rangeview.Inputs(ctx, txs, a.store)
}

// Outputs flattens the outputs of txs in order.
func (a *Analyzer) Outputs(ctx context.Context, txs rangeview.Seq[model.Transaction]) rangeview.Seq[model.TransactionOutput] {
	return rangeview.Outputs(ctx, txs, a.store)
}

func (a *Analyzer) inputs(ctx context.Context, tx model.Transaction) ([]model.TransactionInput, error) {
	inputs, err := a.store.InputsOf(ctx, tx).Collect()
	if err != nil {
		return nil, fmt.Errorf("inputs of %s: %w", tx.TxID, err)
	}
	return inputs, nil
}

func (a *Analyzer) outputs(ctx context.Context, tx model.Transaction) ([]model.TransactionOutput, error) {
	outputs, err := a.store.OutputsOf(ctx, tx).Collect()
	if err != nil {
		return nil, fmt.Errorf("outputs of %s: %w", tx.TxID, err)
	}
	return outputs, nil
}

// spentOutputs resolves the outputs consumed by inputs, in input order.
func (a *Analyzer) spentOutputs(ctx context.Context, tx model.Transaction, inputs []model.TransactionInput) ([]model.TransactionOutput, error) {
	spent, err := a.store.ResolveInputs(ctx, inputs)
	if err != nil {
		var resErr *chain.ResolutionError
		if errors.As(err, &resErr) {
			a.metrics.ObserveResolutionFailure()
			a.logger.Warn("input resolution failed",
				zap.String("txid", resErr.TxID),
				zap.Uint32("input_index", resErr.Index),
				zap.String("prev_txid", resErr.PrevTxID),
				zap.Uint32("prev_vout", resErr.PrevVout),
				zap.Error(resErr.Err),
			)
		}
		return nil, fmt.Errorf("resolve inputs of %s: %w", tx.TxID, err)
	}
	return spent, nil
}

func (a *Analyzer) changeOutput(
	ctx context.Context,
	tx model.Transaction,
	inputs []model.TransactionInput,
	spent []model.TransactionOutput,
	outputs []model.TransactionOutput,
) (fn.Option[model.TransactionOutput], error) {
	change, err := a.change.ChangeOutput(ctx, tx, inputs, spent, outputs)
	if err != nil {
		return change, err
	}
	a.metrics.ObserveChange(change.IsSome())
	return change, nil
}
