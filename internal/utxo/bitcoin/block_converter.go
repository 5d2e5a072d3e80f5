package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

// BlockConverter turns verbose blocks into insertable chain records.
type BlockConverter struct {
	outputs OutputConverter
	network model.Network
}

// NewBlockConverter constructs a BlockConverter for network.
func NewBlockConverter(outputs OutputConverter, network model.Network) *BlockConverter {
	return &BlockConverter{outputs: outputs, network: network}
}

// Convert numbers the block's transactions consecutively from firstTxNum in block order.
func (c *BlockConverter) Convert(src btcjson.GetBlockVerboseTxResult, firstTxNum uint64) (model.InsertBlock, error) {
	block, err := BuildBlock(src, c.network, firstTxNum)
	if err != nil {
		return model.InsertBlock{}, err
	}

	out := model.InsertBlock{
		Block: block,
		Txs:   make([]model.Transaction, 0, len(src.Tx)),
	}
	for i, raw := range src.Tx {
		txNum := firstTxNum + uint64(i)
		tx, inputs, err := ConvertTransaction(raw, c.network, block.Height, txNum)
		if err != nil {
			return model.InsertBlock{}, fmt.Errorf("block %d: %w", block.Height, err)
		}
		outputs, err := c.outputs.Convert(raw, block.Height, txNum)
		if err != nil {
			return model.InsertBlock{}, fmt.Errorf("block %d: %w", block.Height, err)
		}
		out.Txs = append(out.Txs, tx)
		out.Inputs = append(out.Inputs, inputs...)
		out.Outputs = append(out.Outputs, outputs...)
	}
	return out, nil
}
