package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
)

type scanFunc[T any] func(rows Rows) (T, error)

// querySeq runs query each time the returned sequence is traversed and streams the rows.
// The operation is observed once per traversal.
func querySeq[T any](ctx context.Context, r *Repository, operation string, scan scanFunc[T], query string, args ...any) rangeview.Seq[T] {
	return func(yield func(T, error) bool) {
		start := time.Now()
		var (
			err  error
			zero T
		)
		defer func() {
			r.observe(operation, err, start)
		}()

		rows, err := r.conn.Query(ctx, query, args...)
		if err != nil {
			err = fmt.Errorf("query %s: %w", operation, err)
			yield(zero, err)
			return
		}
		defer func() {
			if cerr := rows.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close rows: %w", cerr)
			}
		}()

		for rows.Next() {
			item, scanErr := scan(rows)
			if scanErr != nil {
				err = fmt.Errorf("scan %s: %w", operation, scanErr)
				yield(zero, err)
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err = rows.Err(); err != nil {
			err = fmt.Errorf("iterate %s: %w", operation, err)
			yield(zero, err)
		}
	}
}

// queryOne returns the first row of query, or chain.ErrNotFound when there is none.
func queryOne[T any](ctx context.Context, r *Repository, operation string, scan scanFunc[T], query string, args ...any) (T, error) {
	for item, err := range querySeq(ctx, r, operation, scan, query, args...) {
		return item, err
	}
	var zero T
	return zero, chain.ErrNotFound
}

func (r *Repository) scanBlock(rows Rows) (model.Block, error) {
	b := model.Block{Coin: r.coin, Network: r.network}
	if err := rows.Scan(&b.Height, &b.Hash, &b.Timestamp, &b.TXCount, &b.FirstTxNum); err != nil {
		return model.Block{}, err
	}
	return b, nil
}

func (r *Repository) scanTransaction(rows Rows) (model.Transaction, error) {
	tx := model.Transaction{Coin: r.coin, Network: r.network}
	if err := rows.Scan(
		&tx.TxNum,
		&tx.TxID,
		&tx.BlockHeight,
		&tx.Version,
		&tx.LockTime,
		&tx.BaseSize,
		&tx.TotalSize,
		&tx.InputCount,
		&tx.OutputCount,
	); err != nil {
		return model.Transaction{}, err
	}
	hash, err := chainhash.NewHashFromStr(tx.TxID)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parse txid %q: %w", tx.TxID, err)
	}
	tx.Hash = *hash
	return tx, nil
}

func (r *Repository) scanInput(rows Rows) (model.TransactionInput, error) {
	in := model.TransactionInput{Coin: r.coin, Network: r.network}
	if err := rows.Scan(
		&in.BlockHeight,
		&in.TxNum,
		&in.TxID,
		&in.Index,
		&in.PrevTxID,
		&in.PrevVout,
		&in.Sequence,
		&in.IsCoinbase,
	); err != nil {
		return model.TransactionInput{}, err
	}
	return in, nil
}

func (r *Repository) scanOutput(rows Rows) (model.TransactionOutput, error) {
	var scriptType string
	out := model.TransactionOutput{Coin: r.coin, Network: r.network}
	if err := rows.Scan(
		&out.BlockHeight,
		&out.TxNum,
		&out.TxID,
		&out.Index,
		&out.Value,
		&scriptType,
		&out.ScriptHex,
		&out.Addresses,
	); err != nil {
		return model.TransactionOutput{}, err
	}
	out.ScriptType = model.ScriptType(scriptType)
	return out, nil
}
