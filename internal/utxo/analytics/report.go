package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/workerpool"
	"github.com/lightningnetwork/lnd/fn/v2"
)

const reportChunkSize = 256

// OutputRef identifies a single output in a report.
type OutputRef struct {
	Index      uint32           `json:"index"`
	Value      int64            `json:"value"`
	ScriptType model.ScriptType `json:"script_type"`
	ScriptHex  string           `json:"script_hex,omitempty"`
	Address    string           `json:"address,omitempty"`
}

// Report holds every analytics scalar of one transaction.
type Report struct {
	Index        uint64     `json:"index"`
	TxID         string     `json:"txid"`
	BlockHeight  uint64     `json:"block_height"`
	BlockTime    time.Time  `json:"block_time"`
	Locktime     uint32     `json:"locktime"`
	InputCount   uint32     `json:"input_count"`
	OutputCount  uint32     `json:"output_count"`
	SizeBytes    uint32     `json:"size_bytes"`
	BaseSize     uint32     `json:"base_size"`
	TotalSize    uint32     `json:"total_size"`
	Weight       uint64     `json:"weight"`
	VirtualSize  uint64     `json:"virtual_size"`
	InputValue   int64      `json:"input_value"`
	OutputValue  int64      `json:"output_value"`
	Fee          int64      `json:"fee"`
	FeePerByte   int64      `json:"fee_per_byte"`
	IsCoinbase   bool       `json:"is_coinbase"`
	OpReturn     *OutputRef `json:"op_return,omitempty"`
	ChangeOutput *OutputRef `json:"change_output,omitempty"`
}

// Report computes all scalars of tx. Inputs are resolved once for the whole report.
func (a *Analyzer) Report(ctx context.Context, tx model.Transaction) (r Report, err error) {
	started := time.Now()
	defer func() {
		a.metrics.ObserveReport(err, started)
	}()

	block, err := a.store.BlockByHeight(ctx, tx.BlockHeight)
	if err != nil {
		return Report{}, fmt.Errorf("block of %s: %w", tx.TxID, err)
	}
	inputs, err := a.inputs(ctx, tx)
	if err != nil {
		return Report{}, err
	}
	outputs, err := a.outputs(ctx, tx)
	if err != nil {
		return Report{}, err
	}
	spent, err := a.spentOutputs(ctx, tx, inputs)
	if err != nil {
		return Report{}, err
	}

	inValue, err := InputValue(spent)
	if err != nil {
		return Report{}, err
	}
	outValue, err := OutputValue(outputs)
	if err != nil {
		return Report{}, err
	}
	fee, err := Fee(inValue, outValue)
	if err != nil {
		return Report{}, err
	}
	rate, err := FeePerByte(fee, tx, model.DefaultSizeMeasure)
	if err != nil {
		return Report{}, err
	}
	change, err := a.changeOutput(ctx, tx, inputs, spent, outputs)
	if err != nil {
		return Report{}, err
	}

	weight := Weight(tx.BaseSize, tx.TotalSize)
	return Report{
		Index:        tx.TxNum,
		TxID:         tx.TxID,
		BlockHeight:  tx.BlockHeight,
		BlockTime:    block.Timestamp,
		Locktime:     tx.LockTime,
		InputCount:   tx.InputCount,
		OutputCount:  tx.OutputCount,
		SizeBytes:    tx.TotalSize,
		BaseSize:     tx.BaseSize,
		TotalSize:    tx.TotalSize,
		Weight:       weight,
		VirtualSize:  VirtualSize(weight),
		InputValue:   inValue,
		OutputValue:  outValue,
		Fee:          fee,
		FeePerByte:   rate,
		IsCoinbase:   IsCoinbase(inputs),
		OpReturn:     outputRef(OpReturn(outputs)),
		ChangeOutput: outputRef(change),
	}, nil
}

// Reports computes reports for txs with up to workers concurrent computations.
// Reports are yielded in the order of txs. txs is pulled in chunks, so at most one chunk is held in memory.
func (a *Analyzer) Reports(ctx context.Context, txs rangeview.Seq[model.Transaction], workers int) rangeview.Seq[Report] {
	if workers < 1 {
		workers = 1
	}
	return func(yield func(Report, error) bool) {
		chunk := make([]model.Transaction, 0, reportChunkSize)
		flush := func() bool {
			reports, err := a.reportChunk(ctx, chunk, workers)
			chunk = chunk[:0]
			if err != nil {
				yield(Report{}, err)
				return false
			}
			for _, r := range reports {
				if !yield(r, nil) {
					return false
				}
			}
			return true
		}

		for tx, err := range txs {
			if err != nil {
				if len(chunk) > 0 && !flush() {
					return
				}
				yield(Report{}, err)
				return
			}
			chunk = append(chunk, tx)
			if len(chunk) == reportChunkSize && !flush() {
				return
			}
		}
		if len(chunk) > 0 {
			flush()
		}
	}
}

func (a *Analyzer) reportChunk(ctx context.Context, txs []model.Transaction, workers int) ([]Report, error) {
	return workerpool.Map(ctx, workers, txs, a.Report)
}

func outputRef(out fn.Option[model.TransactionOutput]) *OutputRef {
	var ref *OutputRef
	out.WhenSome(func(o model.TransactionOutput) {
		ref = &OutputRef{
			Index:      o.Index,
			Value:      o.Value,
			ScriptType: o.ScriptType,
			ScriptHex:  o.ScriptHex,
			Address:    o.Address(),
		}
	})
	return ref
}
