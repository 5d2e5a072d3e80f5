// Package bitcoin converts Bitcoin node data into chain records and loads it into a chain store.
package bitcoin

//go:generate mockgen -source=types.go -destination=mocks_test.go -package=bitcoin

import (
	"context"
	"time"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

type (
	// NodeClient is the subset of the btcd rpc client used here.
	NodeClient interface {
		GetBlockCount() (int64, error)
		GetBlockHash(blockHeight int64) (*chainhash.Hash, error)
		GetBlockVerboseTx(blockHash *chainhash.Hash) (*btcjson.GetBlockVerboseTxResult, error)
	}

	// RPCMetrics records metrics for RPC calls.
	RPCMetrics interface {
		Observe(operation string, err error, started time.Time)
	}

	// LoaderMetrics records per-block loading outcomes.
	LoaderMetrics interface {
		ObserveBlock(err error, height uint64, started time.Time)
	}

	// ScriptDecoder extracts addresses and the script class of an output script.
	ScriptDecoder interface {
		decodeAddresses(vout btcjson.Vout) ([]string, error)
		scriptType(vout btcjson.Vout) (model.ScriptType, error)
	}

	// OutputConverter turns verbose RPC outputs into domain outputs.
	OutputConverter interface {
		Convert(tx btcjson.TxRawResult, blockHeight, txNum uint64) ([]model.TransactionOutput, error)
	}

	// BlockAppender accepts converted blocks in chain order.
	BlockAppender interface {
		AppendBlock(ctx context.Context, b model.InsertBlock) error
	}
)
