package analytics

import (
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/lightningnetwork/lnd/fn/v2"
)

// OpReturn returns the first null-data output in output order, if any.
func OpReturn(outputs []model.TransactionOutput) fn.Option[model.TransactionOutput] {
	for _, out := range outputs {
		if out.ScriptType.IsNullData() {
			return fn.Some(out)
		}
	}
	return fn.None[model.TransactionOutput]()
}

// IsCoinbase reports whether none of the inputs spend an existing output.
func IsCoinbase(inputs []model.TransactionInput) bool {
	for _, in := range inputs {
		if !in.IsCoinbase {
			return false
		}
	}
	return true
}
