// Package model defines domain records for UTXO transaction analytics.
package model

import "time"

// Block represents a finalized block and the position of its transactions in chain order.
type Block struct {
	Coin       Coin
	Network    Network
	Height     uint64
	Hash       string
	Timestamp  time.Time
	TXCount    uint32
	FirstTxNum uint64
}

// TxNums returns the half-open range [first, end) of transaction numbers in the block.
func (b Block) TxNums() (first, end uint64) {
	return b.FirstTxNum, b.FirstTxNum + uint64(b.TXCount)
}
