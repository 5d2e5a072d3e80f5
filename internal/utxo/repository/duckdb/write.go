package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
)

const (
	insertBlockQuery = `INSERT INTO blocks (height, hash, timestamp, tx_count, first_tx_num) VALUES (?, ?, ?, ?, ?)`

	insertTransactionQuery = `
INSERT INTO transactions (
	tx_num, txid, block_height, version, locktime, base_size, total_size, input_count, output_count
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	insertInputQuery = `
INSERT INTO tx_inputs (
	tx_num, input_index, block_height, txid, prev_txid, prev_vout, sequence, is_coinbase
) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	insertOutputQuery = `
INSERT INTO tx_outputs (
	tx_num, output_index, block_height, txid, value, script_type, script_hex
) VALUES (?, ?, ?, ?, ?, ?, ?)`

	insertOutputAddressQuery = `
INSERT INTO tx_output_addresses (tx_num, output_index, position, address) VALUES (?, ?, ?, ?)`
)

type outputAddress struct {
	txNum    uint64
	index    uint32
	position uint32
	address  string
}

// AppendBlock stores a block with its transactions, inputs and outputs in one database transaction.
func (s *Store) AppendBlock(ctx context.Context, b model.InsertBlock) (err error) {
	start := time.Now()
	defer func() {
		s.observe("append_block", err, start)
	}()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append block %d: %w", b.Block.Height, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	var addresses []outputAddress
	for _, out := range b.Outputs {
		for i, addr := range out.Addresses {
			addresses = append(addresses, outputAddress{txNum: out.TxNum, index: out.Index, position: uint32(i), address: addr})
		}
	}

	if err = insertAll(ctx, tx, insertTransactionQuery, b.Txs, func(t model.Transaction) []any {
		return []any{t.TxNum, t.TxID, t.BlockHeight, t.Version, t.LockTime, t.BaseSize, t.TotalSize, t.InputCount, t.OutputCount}
	}); err != nil {
		return fmt.Errorf("block %d transactions: %w", b.Block.Height, err)
	}
	if err = insertAll(ctx, tx, insertInputQuery, b.Inputs, func(in model.TransactionInput) []any {
		return []any{in.TxNum, in.Index, in.BlockHeight, in.TxID, in.PrevTxID, in.PrevVout, in.Sequence, in.IsCoinbase}
	}); err != nil {
		return fmt.Errorf("block %d inputs: %w", b.Block.Height, err)
	}
	if err = insertAll(ctx, tx, insertOutputQuery, b.Outputs, func(out model.TransactionOutput) []any {
		return []any{out.TxNum, out.Index, out.BlockHeight, out.TxID, out.Value, string(out.ScriptType), out.ScriptHex}
	}); err != nil {
		return fmt.Errorf("block %d outputs: %w", b.Block.Height, err)
	}
	if err = insertAll(ctx, tx, insertOutputAddressQuery, addresses, func(a outputAddress) []any {
		return []any{a.txNum, a.index, a.position, a.address}
	}); err != nil {
		return fmt.Errorf("block %d output addresses: %w", b.Block.Height, err)
	}
	if _, err = tx.ExecContext(ctx, insertBlockQuery, b.Block.Height, b.Block.Hash, b.Block.Timestamp.UTC(), b.Block.TXCount, b.Block.FirstTxNum); err != nil {
		return fmt.Errorf("block %d: %w", b.Block.Height, err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit block %d: %w", b.Block.Height, err)
	}
	return nil
}

func insertAll[T any](ctx context.Context, tx *sql.Tx, query string, items []T, row func(T) []any) error {
	if len(items) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, item := range items {
		if _, err := stmt.ExecContext(ctx, row(item)...); err != nil {
			return fmt.Errorf("insert row: %w", err)
		}
	}
	return nil
}
