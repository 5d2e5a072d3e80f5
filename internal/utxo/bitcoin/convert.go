package bitcoin

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/wire"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/safe"
)

// BtcToSatoshis converts BTC amount to satoshis.
func BtcToSatoshis(value float64) (int64, error) {
	amt, err := btcutil.NewAmount(value)
	if err != nil {
		return 0, err
	}
	if amt < 0 {
		return 0, fmt.Errorf("negative amount: %d", amt)
	}
	return int64(amt), nil
}

// BuildBlock maps a verbose block into a model.Block whose transactions start at firstTxNum.
func BuildBlock(src btcjson.GetBlockVerboseTxResult, network model.Network, firstTxNum uint64) (model.Block, error) {
	if src.Height < 0 {
		return model.Block{}, fmt.Errorf("block %s negative height %d", src.Hash, src.Height)
	}
	txCount, err := safe.Uint32(len(src.Tx))
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d tx count overflow: %w", src.Height, err)
	}

	return model.Block{
		Coin:       model.BTC,
		Network:    network,
		Height:     uint64(src.Height),
		Hash:       src.Hash,
		Timestamp:  time.Unix(src.Time, 0).UTC(),
		TXCount:    txCount,
		FirstTxNum: firstTxNum,
	}, nil
}

// ConvertTransaction decodes the raw transaction carried by a verbose result and returns the
// transaction record with its inputs. Sizes and the hash come from the decoded wire.MsgTx.
func ConvertTransaction(
	src btcjson.TxRawResult,
	network model.Network,
	blockHeight, txNum uint64,
) (model.Transaction, []model.TransactionInput, error) {
	msgTx, err := decodeRawTx(src.Hex)
	if err != nil {
		return model.Transaction{}, nil, fmt.Errorf("decode tx %s: %w", src.Txid, err)
	}
	hash := msgTx.TxHash()
	if hash.String() != src.Txid {
		return model.Transaction{}, nil, fmt.Errorf("tx %s raw hex hashes to %s", src.Txid, hash)
	}

	baseSize, err := safe.Uint32(msgTx.SerializeSizeStripped())
	if err != nil {
		return model.Transaction{}, nil, fmt.Errorf("tx %s base size overflow: %w", src.Txid, err)
	}
	totalSize, err := safe.Uint32(msgTx.SerializeSize())
	if err != nil {
		return model.Transaction{}, nil, fmt.Errorf("tx %s total size overflow: %w", src.Txid, err)
	}
	inputCount, err := safe.Uint32(len(msgTx.TxIn))
	if err != nil {
		return model.Transaction{}, nil, fmt.Errorf("tx %s vin count overflow: %w", src.Txid, err)
	}
	outputCount, err := safe.Uint32(len(msgTx.TxOut))
	if err != nil {
		return model.Transaction{}, nil, fmt.Errorf("tx %s vout count overflow: %w", src.Txid, err)
	}

	tx := model.Transaction{
		Coin:        model.BTC,
		Network:     network,
		TxNum:       txNum,
		TxID:        src.Txid,
		Hash:        hash,
		BlockHeight: blockHeight,
		Version:     uint32(msgTx.Version),
		LockTime:    msgTx.LockTime,
		BaseSize:    baseSize,
		TotalSize:   totalSize,
		InputCount:  inputCount,
		OutputCount: outputCount,
	}

	inputs := make([]model.TransactionInput, 0, len(src.Vin))
	for idx, vin := range src.Vin {
		index, err := safe.Uint32(idx)
		if err != nil {
			return model.Transaction{}, nil, fmt.Errorf("tx %s input index overflow: %w", src.Txid, err)
		}
		input := model.TransactionInput{
			Coin:        model.BTC,
			Network:     network,
			BlockHeight: blockHeight,
			TxNum:       txNum,
			TxID:        src.Txid,
			Index:       index,
			Sequence:    vin.Sequence,
			IsCoinbase:  vin.IsCoinBase(),
		}
		if !input.IsCoinbase {
			input.PrevTxID = vin.Txid
			input.PrevVout = vin.Vout
		}
		inputs = append(inputs, input)
	}

	return tx, inputs, nil
}

func decodeRawTx(rawHex string) (*wire.MsgTx, error) {
	if rawHex == "" {
		return nil, errors.New("raw hex missing")
	}
	raw, err := hex.DecodeString(rawHex)
	if err != nil {
		return nil, err
	}
	var msgTx wire.MsgTx
	if err := msgTx.Deserialize(bytes.NewReader(raw)); err != nil {
		return nil, err
	}
	return &msgTx, nil
}
