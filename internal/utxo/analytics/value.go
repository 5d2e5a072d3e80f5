package analytics

import (
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/pkg/safe"
)

// InputValue sums the values of the outputs spent by a transaction.
// Coinbase inputs resolve to zero-value outputs and contribute nothing.
func InputValue(spent []model.TransactionOutput) (int64, error) {
	return sumValues(spent)
}

// OutputValue sums the values of a transaction's outputs.
func OutputValue(outputs []model.TransactionOutput) (int64, error) {
	return sumValues(outputs)
}

// Fee is input value minus output value. It is negative for coinbase transactions.
func Fee(inputValue, outputValue int64) (int64, error) {
	fee, err := safe.SubInt64(inputValue, outputValue)
	if err != nil {
		return 0, fmt.Errorf("fee: %w", err)
	}
	return fee, nil
}

// SizeOf returns the transaction size under the given measure.
func SizeOf(tx model.Transaction, measure model.SizeMeasure) (uint64, error) {
	switch measure {
	case model.SizeTotal:
		return uint64(tx.TotalSize), nil
	case model.SizeBase:
		return uint64(tx.BaseSize), nil
	case model.SizeWeight:
		return Weight(tx.BaseSize, tx.TotalSize), nil
	case model.SizeVirtual:
		return VirtualSize(Weight(tx.BaseSize, tx.TotalSize)), nil
	default:
		return 0, fmt.Errorf("size measure %q: %w", measure, model.ErrInvalidArgument)
	}
}

// FeePerByte divides fee by the transaction size under measure, truncating toward zero.
// A zero size is not guarded and panics with an integer divide by zero.
func FeePerByte(fee int64, tx model.Transaction, measure model.SizeMeasure) (int64, error) {
	size, err := SizeOf(tx, measure)
	if err != nil {
		return 0, err
	}
	divisor, err := safe.Int64(size)
	if err != nil {
		return 0, fmt.Errorf("size of %s: %w", tx.TxID, err)
	}
	return fee / divisor, nil
}

func sumValues(outputs []model.TransactionOutput) (int64, error) {
	var total int64
	for _, out := range outputs {
		sum, err := safe.AddInt64(total, out.Value)
		if err != nil {
			return 0, fmt.Errorf("sum output values of %s: %w", out.TxID, err)
		}
		total = sum
	}
	return total, nil
}
