package clickhouse

import (
	"context"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const blockByHeightQuery = `
SELECT
	height,
	hash,
	timestamp,
	tx_count,
	first_tx_num
FROM utxo_blocks FINAL
WHERE coin = ? AND network = ? AND height = ?`

// BlockByHeight returns the block stored at height.
// Blocks are written last on append, so a visible block has all of its transactions stored.
func (r *Repository) BlockByHeight(ctx context.Context, height uint64) (model.Block, error) {
	block, err := queryOne(ctx, r, "block_by_height", r.scanBlock, blockByHeightQuery, string(r.coin), string(r.network), height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d: %w", height, err)
	}
	return block, nil
}
