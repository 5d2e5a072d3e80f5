package clickhouse

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// AppendBlock stores a block with its transactions, inputs and outputs.
// The block row goes in last: readers reach transactions through blocks and never see a half-written one.
func (r *Repository) AppendBlock(ctx context.Context, b model.InsertBlock) error {
	if err := r.InsertTransactionOutputs(ctx, b.Outputs); err != nil {
		return fmt.Errorf("block %d: %w", b.Block.Height, err)
	}
	if err := r.InsertTransactionInputs(ctx, b.Inputs); err != nil {
		return fmt.Errorf("block %d: %w", b.Block.Height, err)
	}
	if err := r.InsertTransactions(ctx, b.Txs); err != nil {
		return fmt.Errorf("block %d: %w", b.Block.Height, err)
	}
	if err := r.InsertBlocks(ctx, []model.Block{b.Block}); err != nil {
		return fmt.Errorf("block %d: %w", b.Block.Height, err)
	}
	return nil
}
