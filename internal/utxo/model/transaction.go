package model

import "github.com/btcsuite/btcd/chaincfg/chainhash"

// Transaction is a read-only reference to a confirmed transaction.
// TxNum is the dense chain-order index of the transaction.
type Transaction struct {
	Coin        Coin
	Network     Network
	TxNum       uint64
	TxID        string
	Hash        chainhash.Hash
	BlockHeight uint64
	Version     uint32
	LockTime    uint32
	BaseSize    uint32
	TotalSize   uint32
	InputCount  uint32
	OutputCount uint32
}

// TransactionInput describes a reference to a previous transaction output.
// It carries no value: the value is resolved from the referenced output on demand.
type TransactionInput struct {
	Coin        Coin
	Network     Network
	BlockHeight uint64
	TxNum       uint64
	TxID        string
	Index       uint32
	PrevTxID    string
	PrevVout    uint32
	Sequence    uint32
	IsCoinbase  bool
}

// TransactionOutput represents an output produced by a transaction. Value is in satoshis.
type TransactionOutput struct {
	Coin        Coin
	Network     Network
	BlockHeight uint64
	TxNum       uint64
	TxID        string
	Index       uint32
	Value       int64
	ScriptType  ScriptType
	ScriptHex   string
	Addresses   []string
}

// Address returns the primary destination address of the output, or "" if it has none.
func (o TransactionOutput) Address() string {
	if len(o.Addresses) == 0 {
		return ""
	}
	return o.Addresses[0]
}

// TransactionOutputLookup is the slim projection of an output used to resolve spending inputs.
type TransactionOutputLookup struct {
	Coin       Coin
	Network    Network
	TxID       string
	Index      uint32
	Value      int64
	ScriptType ScriptType
	Addresses  []string
}

// ChainPosition is the TxNum of a transaction, used to order address appearances.
type ChainPosition uint64
