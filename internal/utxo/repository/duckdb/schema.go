package duckdb

const (
	createBlocksTable = `
CREATE TABLE IF NOT EXISTS blocks (
	height       UBIGINT PRIMARY KEY,
	hash         VARCHAR NOT NULL,
	timestamp    TIMESTAMP NOT NULL,
	tx_count     UINTEGER NOT NULL,
	first_tx_num UBIGINT NOT NULL
)`

	createTransactionsTable = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_num       UBIGINT PRIMARY KEY,
	txid         VARCHAR NOT NULL,
	block_height UBIGINT NOT NULL,
	version      UINTEGER NOT NULL,
	locktime     UINTEGER NOT NULL,
	base_size    UINTEGER NOT NULL,
	total_size   UINTEGER NOT NULL,
	input_count  UINTEGER NOT NULL,
	output_count UINTEGER NOT NULL
)`

	createInputsTable = `
CREATE TABLE IF NOT EXISTS tx_inputs (
	tx_num       UBIGINT NOT NULL,
	input_index  UINTEGER NOT NULL,
	block_height UBIGINT NOT NULL,
	txid         VARCHAR NOT NULL,
	prev_txid    VARCHAR NOT NULL,
	prev_vout    UINTEGER NOT NULL,
	sequence     UINTEGER NOT NULL,
	is_coinbase  BOOLEAN NOT NULL,
	PRIMARY KEY (tx_num, input_index)
)`

	createOutputsTable = `
CREATE TABLE IF NOT EXISTS tx_outputs (
	tx_num       UBIGINT NOT NULL,
	output_index UINTEGER NOT NULL,
	block_height UBIGINT NOT NULL,
	txid         VARCHAR NOT NULL,
	value        BIGINT NOT NULL,
	script_type  VARCHAR NOT NULL,
	script_hex   VARCHAR NOT NULL,
	PRIMARY KEY (tx_num, output_index)
)`

	createOutputAddressesTable = `
CREATE TABLE IF NOT EXISTS tx_output_addresses (
	tx_num       UBIGINT NOT NULL,
	output_index UINTEGER NOT NULL,
	position     UINTEGER NOT NULL,
	address      VARCHAR NOT NULL,
	PRIMARY KEY (tx_num, output_index, position)
)`

	createOutputsTxIDIndex   = `CREATE INDEX IF NOT EXISTS tx_outputs_txid ON tx_outputs (txid)`
	createAddressIndex       = `CREATE INDEX IF NOT EXISTS tx_output_addresses_address ON tx_output_addresses (address)`
	createTransactionsTxIDIx = `CREATE INDEX IF NOT EXISTS transactions_txid ON transactions (txid)`
)

var schema = []string{
	createBlocksTable,
	createTransactionsTable,
	createInputsTable,
	createOutputsTable,
	createOutputAddressesTable,
	createOutputsTxIDIndex,
	createAddressIndex,
	createTransactionsTxIDIx,
}
