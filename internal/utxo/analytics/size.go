package analytics

import (
	"github.com/btcsuite/btcd/blockchain"
)

// Weight returns the consensus weight of a transaction: three times its stripped size plus its full size.
func Weight(baseSize, totalSize uint32) uint64 {
	return uint64(blockchain.WitnessScaleFactor-1)*uint64(baseSize) + uint64(totalSize)
}

// VirtualSize returns weight / 4, rounded down.
func VirtualSize(weight uint64) uint64 {
	return weight / uint64(blockchain.WitnessScaleFactor)
}
