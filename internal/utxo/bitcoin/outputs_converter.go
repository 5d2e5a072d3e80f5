package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/safe"
)

type outputConverter struct {
	decoder ScriptDecoder
	network model.Network
}

// NewOutputConverter constructs a converter that turns raw RPC outputs into domain outputs for the given network.
func NewOutputConverter(decoder ScriptDecoder, network model.Network) OutputConverter {
	return &outputConverter{decoder: decoder, network: network}
}

func (c *outputConverter) Convert(tx btcjson.TxRawResult, blockHeight, txNum uint64) ([]model.TransactionOutput, error) {
	outputs := make([]model.TransactionOutput, 0, len(tx.Vout))
	for idx, vout := range tx.Vout {
		if vout.Value < 0 {
			return nil, fmt.Errorf("tx %s output %d negative value: %f", tx.Txid, idx, vout.Value)
		}

		index, err := safe.Uint32(idx)
		if err != nil {
			return nil, fmt.Errorf("tx %s output index overflow: %w", tx.Txid, err)
		}

		value, err := BtcToSatoshis(vout.Value)
		if err != nil {
			return nil, fmt.Errorf("tx %s output %d value: %w", tx.Txid, idx, err)
		}
		addresses, err := c.decoder.decodeAddresses(vout)
		if err != nil {
			return nil, fmt.Errorf("decode addresses for tx %s output %d: %w", tx.Txid, idx, err)
		}
		scriptType, err := c.decoder.scriptType(vout)
		if err != nil {
			return nil, fmt.Errorf("script type for tx %s output %d: %w", tx.Txid, idx, err)
		}

		outputs = append(outputs, model.TransactionOutput{
			Coin:        model.BTC,
			Network:     c.network,
			BlockHeight: blockHeight,
			TxNum:       txNum,
			TxID:        tx.Txid,
			Index:       index,
			Value:       value,
			ScriptType:  scriptType,
			ScriptHex:   vout.ScriptPubKey.Hex,
			Addresses:   addresses,
		})
	}
	return outputs, nil
}
