package clickhouse

import (
	"context"
	"errors"
	"fmt"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const addressFirstAppearanceQuery = `
SELECT min(first_tx_num)
FROM utxo_address_first_seen
WHERE coin = ? AND network = ? AND address = ?
GROUP BY address`

// AddressFirstAppearance returns the first chain position at which address received an output.
func (r *Repository) AddressFirstAppearance(ctx context.Context, address string) (model.ChainPosition, bool, error) {
	scan := func(rows Rows) (uint64, error) {
		var txNum uint64
		err := rows.Scan(&txNum)
		return txNum, err
	}
	txNum, err := queryOne(ctx, r, "address_first_appearance", scan, addressFirstAppearanceQuery, string(r.coin), string(r.network), address)
	if errors.Is(err, chain.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("first appearance of %s: %w", address, err)
	}
	return model.ChainPosition(txNum), true, nil
}

// ResolveInputs resolves the outputs spent by inputs through the output lookup table.
func (r *Repository) ResolveInputs(ctx context.Context, inputs []model.TransactionInput) ([]model.TransactionOutput, error) {
	return r.resolver.ResolveInputs(ctx, inputs)
}
