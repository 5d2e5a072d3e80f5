// Package memory provides an in-memory chain store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/chain"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/model"
	"github.com/goodnatureofminers/blockinsight7000-analytics/internal/utxo/rangeview"
)

type txRecord struct {
	tx      model.Transaction
	inputs  []model.TransactionInput
	outputs []model.TransactionOutput
}

// Store keeps appended blocks in memory and indexes the first appearance of every output address.
// Appends must happen in chain order. Readers may run concurrently with each other and with appends.
type Store struct {
	mu        sync.RWMutex
	coin      model.Coin
	network   model.Network
	blocks    map[uint64]model.Block
	txs       map[uint64]*txRecord
	txNums    map[string]uint64
	firstSeen map[string]model.ChainPosition
	nextTxNum uint64
}

var _ chain.Store = (*Store)(nil)

// New constructs an empty Store.
func New(coin model.Coin, network model.Network) *Store {
	return &Store{
		coin:      coin,
		network:   network,
		blocks:    make(map[uint64]model.Block),
		txs:       make(map[uint64]*txRecord),
		txNums:    make(map[string]uint64),
		firstSeen: make(map[string]model.ChainPosition),
	}
}

// AppendBlock adds a block with its transactions, inputs and outputs. Transactions must carry
// consecutive TxNums starting at the block's FirstTxNum, continuing the previously appended block.
func (s *Store) AppendBlock(_ context.Context, b model.InsertBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, dup := s.blocks[b.Block.Height]; dup {
		return fmt.Errorf("block %d already appended", b.Block.Height)
	}
	if len(s.txs) > 0 && b.Block.FirstTxNum != s.nextTxNum {
		return fmt.Errorf("block %d first tx num %d, want %d", b.Block.Height, b.Block.FirstTxNum, s.nextTxNum)
	}
	if uint64(len(b.Txs)) != uint64(b.Block.TXCount) {
		return fmt.Errorf("block %d declares %d txs, got %d", b.Block.Height, b.Block.TXCount, len(b.Txs))
	}

	records := make(map[uint64]*txRecord, len(b.Txs))
	for i, tx := range b.Txs {
		if want := b.Block.FirstTxNum + uint64(i); tx.TxNum != want {
			return fmt.Errorf("tx %s num %d, want %d", tx.TxID, tx.TxNum, want)
		}
		records[tx.TxNum] = &txRecord{tx: tx}
	}
	for _, in := range b.Inputs {
		rec, ok := records[in.TxNum]
		if !ok {
			return fmt.Errorf("input %s:%d references tx num %d outside block %d", in.TxID, in.Index, in.TxNum, b.Block.Height)
		}
		rec.inputs = append(rec.inputs, in)
	}
	for _, out := range b.Outputs {
		rec, ok := records[out.TxNum]
		if !ok {
			return fmt.Errorf("output %s:%d references tx num %d outside block %d", out.TxID, out.Index, out.TxNum, b.Block.Height)
		}
		rec.outputs = append(rec.outputs, out)
	}

	for txNum, rec := range records {
		s.txs[txNum] = rec
		s.txNums[rec.tx.TxID] = txNum
		for _, out := range rec.outputs {
			for _, addr := range out.Addresses {
				if pos, seen := s.firstSeen[addr]; !seen || model.ChainPosition(txNum) < pos {
					s.firstSeen[addr] = model.ChainPosition(txNum)
				}
			}
		}
	}
	s.blocks[b.Block.Height] = b.Block
	_, s.nextTxNum = b.Block.TxNums()
	return nil
}

// BlockByHeight returns the block at height.
func (s *Store) BlockByHeight(_ context.Context, height uint64) (model.Block, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.blocks[height]
	if !ok {
		return model.Block{}, fmt.Errorf("block %d: %w", height, chain.ErrNotFound)
	}
	return b, nil
}

// TransactionByNum returns the transaction with the given chain-order index.
func (s *Store) TransactionByNum(_ context.Context, txNum uint64) (model.Transaction, error) {
	rec, ok := s.record(txNum)
	if !ok {
		return model.Transaction{}, fmt.Errorf("tx num %d: %w", txNum, chain.ErrNotFound)
	}
	return rec.tx, nil
}

// TransactionsOf lists the transactions of block lazily, one lookup per element.
func (s *Store) TransactionsOf(_ context.Context, block model.Block) rangeview.Seq[model.Transaction] {
	return func(yield func(model.Transaction, error) bool) {
		first, end := block.TxNums()
		for txNum := first; txNum < end; txNum++ {
			rec, ok := s.record(txNum)
			if !ok {
				yield(model.Transaction{}, fmt.Errorf("tx num %d of block %d: %w", txNum, block.Height, chain.ErrNotFound))
				return
			}
			if !yield(rec.tx, nil) {
				return
			}
		}
	}
}

// InputsOf lists the inputs of tx in input order.
func (s *Store) InputsOf(_ context.Context, tx model.Transaction) rangeview.Seq[model.TransactionInput] {
	rec, ok := s.record(tx.TxNum)
	if !ok {
		return rangeview.Fail[model.TransactionInput](fmt.Errorf("inputs of tx num %d: %w", tx.TxNum, chain.ErrNotFound))
	}
	return rangeview.FromSlice(rec.inputs)
}

// OutputsOf lists the outputs of tx in output order.
func (s *Store) OutputsOf(_ context.Context, tx model.Transaction) rangeview.Seq[model.TransactionOutput] {
	rec, ok := s.record(tx.TxNum)
	if !ok {
		return rangeview.Fail[model.TransactionOutput](fmt.Errorf("outputs of tx num %d: %w", tx.TxNum, chain.ErrNotFound))
	}
	return rangeview.FromSlice(rec.outputs)
}

// ResolveInputs returns the outputs spent by inputs, in input order.
func (s *Store) ResolveInputs(_ context.Context, inputs []model.TransactionInput) ([]model.TransactionOutput, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resolved := make([]model.TransactionOutput, 0, len(inputs))
	for _, in := range inputs {
		if in.IsCoinbase {
			resolved = append(resolved, model.TransactionOutput{Coin: s.coin, Network: s.network})
			continue
		}
		out, err := s.spentOutput(in)
		if err != nil {
			return nil, &chain.ResolutionError{
				TxID:     in.TxID,
				Index:    in.Index,
				PrevTxID: in.PrevTxID,
				PrevVout: in.PrevVout,
				Err:      err,
			}
		}
		resolved = append(resolved, out)
	}
	return resolved, nil
}

// AddressFirstAppearance returns the TxNum of the first transaction paying to address.
func (s *Store) AddressFirstAppearance(_ context.Context, address string) (model.ChainPosition, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pos, ok := s.firstSeen[address]
	return pos, ok, nil
}

func (s *Store) spentOutput(in model.TransactionInput) (model.TransactionOutput, error) {
	txNum, ok := s.txNums[in.PrevTxID]
	if !ok {
		return model.TransactionOutput{}, fmt.Errorf("previous tx %w", chain.ErrNotFound)
	}
	for _, out := range s.txs[txNum].outputs {
		if out.Index == in.PrevVout {
			return out, nil
		}
	}
	return model.TransactionOutput{}, fmt.Errorf("previous output %w", chain.ErrNotFound)
}

func (s *Store) record(txNum uint64) (*txRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.txs[txNum]
	return rec, ok
}
