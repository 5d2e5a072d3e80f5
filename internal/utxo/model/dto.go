package model

// InsertBlock groups a block with its transactions and related inputs/outputs for loading into a store.
type InsertBlock struct {
	Block   Block
	Txs     []Transaction
	Outputs []TransactionOutput
	Inputs  []TransactionInput
}
