package chain

import (
	"context"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=$GOPACKAGE

// OutputLookupRepository describes the batch output lookup the resolver needs.
type OutputLookupRepository interface {
	TransactionOutputsLookupByTxIDs(ctx context.Context, coin model.Coin, network model.Network, txids []string) (map[string][]model.TransactionOutputLookup, error)
}
