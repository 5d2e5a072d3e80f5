package duckdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
)

const (
	blockByHeightQuery = `
SELECT height, hash, timestamp, tx_count, first_tx_num
FROM blocks
WHERE height = ?`

	transactionColumns = `
SELECT tx_num, txid, block_height, version, locktime, base_size, total_size, input_count, output_count
FROM transactions`

	transactionByNumQuery = transactionColumns + `
WHERE tx_num = ?`

	transactionsOfQuery = transactionColumns + `
WHERE tx_num >= ? AND tx_num < ?
ORDER BY tx_num`

	inputsOfQuery = `
SELECT block_height, tx_num, txid, input_index, prev_txid, prev_vout, sequence, is_coinbase
FROM tx_inputs
WHERE tx_num = ?
ORDER BY input_index`

	outputColumns = `
SELECT o.block_height, o.tx_num, o.txid, o.output_index, o.value, o.script_type, o.script_hex, a.address
FROM tx_outputs o
LEFT JOIN tx_output_addresses a ON a.tx_num = o.tx_num AND a.output_index = o.output_index`

	outputsOfQuery = outputColumns + `
WHERE o.tx_num = ?
ORDER BY o.output_index, a.position`

	firstAppearanceQuery = `
SELECT tx_num
FROM tx_output_addresses
WHERE address = ?
ORDER BY tx_num
LIMIT 1`
)

type scanner interface {
	Scan(dest ...any) error
}

// querySeq runs query each time the sequence is traversed and streams the rows.
func querySeq[T any](ctx context.Context, s *Store, operation string, scan func(scanner) (T, error), query string, args ...any) rangeview.Seq[T] {
	return func(yield func(T, error) bool) {
		start := time.Now()
		var (
			err  error
			zero T
		)
		defer func() {
			s.observe(operation, err, start)
		}()

		rows, err := s.db.QueryContext(ctx, query, args...)
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

func queryOne[T any](ctx context.Context, s *Store, operation string, scan func(scanner) (T, error), query string, args ...any) (T, error) {
	for item, err := range querySeq(ctx, s, operation, scan, query, args...) {
		return item, err
	}
	var zero T
	return zero, chain.ErrNotFound
}

func (s *Store) BlockByHeight(ctx context.Context, height uint64) (model.Block, error) {
	scan := func(row scanner) (model.Block, error) {
		b := model.Block{Coin: s.coin, Network: s.network}
		err := row.Scan(&b.Height, &b.Hash, &b.Timestamp, &b.TXCount, &b.FirstTxNum)
		b.Timestamp = b.Timestamp.UTC()
		return b, err
	}
	b, err := queryOne(ctx, s, "block_by_height", scan, blockByHeightQuery, height)
	if err != nil {
		return model.Block{}, fmt.Errorf("block %d: %w", height, err)
	}
	return b, nil
}

func (s *Store) TransactionByNum(ctx context.Context, txNum uint64) (model.Transaction, error) {
	tx, err := queryOne(ctx, s, "transaction_by_num", s.scanTransaction, transactionByNumQuery, txNum)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("transaction %d: %w", txNum, err)
	}
	return tx, nil
}

func (s *Store) TransactionsOf(ctx context.Context, block model.Block) rangeview.Seq[model.Transaction] {
	first, end := block.TxNums()
	return querySeq(ctx, s, "transactions_of", s.scanTransaction, transactionsOfQuery, first, end)
}

func (s *Store) InputsOf(ctx context.Context, tx model.Transaction) rangeview.Seq[model.TransactionInput] {
	scan := func(row scanner) (model.TransactionInput, error) {
		in := model.TransactionInput{Coin: s.coin, Network: s.network}
		err := row.Scan(&in.BlockHeight, &in.TxNum, &in.TxID, &in.Index, &in.PrevTxID, &in.PrevVout, &in.Sequence, &in.IsCoinbase)
		return in, err
	}
	return querySeq(ctx, s, "inputs_of", scan, inputsOfQuery, tx.TxNum)
}

func (s *Store) OutputsOf(ctx context.Context, tx model.Transaction) rangeview.Seq[model.TransactionOutput] {
	return groupAddresses(querySeq(ctx, s, "outputs_of", s.scanOutputRow, outputsOfQuery, tx.TxNum))
}

// AddressFirstAppearance returns the lowest tx num with an output paying address.
func (s *Store) AddressFirstAppearance(ctx context.Context, address string) (model.ChainPosition, bool, error) {
	scan := func(row scanner) (uint64, error) {
		var txNum uint64
		err := row.Scan(&txNum)
		return txNum, err
	}
	txNum, err := queryOne(ctx, s, "address_first_appearance", scan, firstAppearanceQuery, address)
	if errors.Is(err, chain.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("first appearance of %s: %w", address, err)
	}
	return model.ChainPosition(txNum), true, nil
}

func (s *Store) ResolveInputs(ctx context.Context, inputs []model.TransactionInput) ([]model.TransactionOutput, error) {
	return s.resolver.ResolveInputs(ctx, inputs)
}

// TransactionOutputsLookupByTxIDs returns the outputs of the given transactions keyed by txid.
func (s *Store) TransactionOutputsLookupByTxIDs(ctx context.Context, _ model.Coin, _ model.Network, txids []string) (map[string][]model.TransactionOutputLookup, error) {
	result := make(map[string][]model.TransactionOutputLookup, len(txids))
	if len(txids) == 0 {
		return result, nil
	}

	query := outputColumns + `
WHERE o.txid IN (` + strings.TrimSuffix(strings.Repeat("?, ", len(txids)), ", ") + `)
ORDER BY o.tx_num, o.output_index, a.position`
	args := make([]any, len(txids))
	for i, txid := range txids {
		args[i] = txid
	}

	for out, err := range groupAddresses(querySeq(ctx, s, "transaction_outputs_lookup_by_txids", s.scanOutputRow, query, args...)) {
		if err != nil {
			return nil, err
		}
		result[out.TxID] = append(result[out.TxID], model.TransactionOutputLookup{
			Coin:       s.coin,
			Network:    s.network,
			TxID:       out.TxID,
			Index:      out.Index,
			Value:      out.Value,
			ScriptType: out.ScriptType,
			Addresses:  out.Addresses,
		})
	}
	return result, nil
}

func (s *Store) scanTransaction(row scanner) (model.Transaction, error) {
	tx := model.Transaction{Coin: s.coin, Network: s.network}
	if err := row.Scan(
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

// outputRow is one output joined with at most one of its addresses.
type outputRow struct {
	output  model.TransactionOutput
	address sql.NullString
}

func (s *Store) scanOutputRow(row scanner) (outputRow, error) {
	var (
		r          outputRow
		scriptType string
	)
	r.output.Coin = s.coin
	r.output.Network = s.network
	err := row.Scan(
		&r.output.BlockHeight,
		&r.output.TxNum,
		&r.output.TxID,
		&r.output.Index,
		&r.output.Value,
		&scriptType,
		&r.output.ScriptHex,
		&r.address,
	)
	r.output.ScriptType = model.ScriptType(scriptType)
	return r, err
}

// groupAddresses folds consecutive rows of the same output into one output with all its addresses.
func groupAddresses(rows rangeview.Seq[outputRow]) rangeview.Seq[model.TransactionOutput] {
	return func(yield func(model.TransactionOutput, error) bool) {
		var (
			cur  model.TransactionOutput
			have bool
		)
		for row, err := range rows {
			if err != nil {
				yield(model.TransactionOutput{}, err)
				return
			}
			if have && (row.output.TxNum != cur.TxNum || row.output.Index != cur.Index) {
				if !yield(cur, nil) {
					return
				}
				have = false
			}
			if !have {
				cur, have = row.output, true
			}
			if row.address.Valid {
				cur.Addresses = append(cur.Addresses, row.address.String)
			}
		}
		if have {
			yield(cur, nil)
		}
	}
}
