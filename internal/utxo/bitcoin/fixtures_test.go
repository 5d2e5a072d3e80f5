package bitcoin

import (
	"bytes"
	"encoding/hex"
	"math"
	"testing"

	"github.com/btcsuite/btcd/btcjson"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// witnessBytes is the serialized witness overhead of spendTx: marker and flag, the item
// count, then a 71-byte signature and a 33-byte pubkey with their length prefixes.
const witnessBytes = 2 + 1 + (1 + 71) + (1 + 33)

func p2pkhScript(t *testing.T, seed byte) []byte {
	t.Helper()
	pkh := bytes.Repeat([]byte{seed}, 20)
	addr, err := btcutil.NewAddressPubKeyHash(pkh, &chaincfg.RegressionNetParams)
	if err != nil {
		t.Fatal(err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		t.Fatal(err)
	}
	return script
}

func p2wpkhScript(t *testing.T, seed byte) []byte {
	t.Helper()
	pkh := bytes.Repeat([]byte{seed}, 20)
	addr, err := btcutil.NewAddressWitnessPubKeyHash(pkh, &chaincfg.RegressionNetParams)
	if err != nil {
		t.Fatal(err)
	}
	script, err := txscript.PayToAddrScript(addr)
	if err != nil {
		t.Fatal(err)
	}
	return script
}

func coinbaseMsgTx(t *testing.T, height byte) *wire.MsgTx {
	t.Helper()
	tx := wire.NewMsgTx(1)
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Index: math.MaxUint32},
		SignatureScript:  []byte{0x01, height, 0x00},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	tx.AddTxOut(wire.NewTxOut(50*btcutil.SatoshiPerBitcoin, p2pkhScript(t, height+1)))
	return tx
}

func spendMsgTx(t *testing.T, prev chainhash.Hash) *wire.MsgTx {
	t.Helper()
	nullData, err := txscript.NullDataScript([]byte("memo"))
	if err != nil {
		t.Fatal(err)
	}
	tx := wire.NewMsgTx(2)
	tx.LockTime = 99
	tx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: prev, Index: 0},
		Witness:          wire.TxWitness{bytes.Repeat([]byte{0x30}, 71), bytes.Repeat([]byte{0x02}, 33)},
		Sequence:         0xfffffffd,
	})
	tx.AddTxOut(wire.NewTxOut(30*btcutil.SatoshiPerBitcoin, p2wpkhScript(t, 0xaa)))
	tx.AddTxOut(wire.NewTxOut(19*btcutil.SatoshiPerBitcoin, p2pkhScript(t, 0xbb)))
	tx.AddTxOut(wire.NewTxOut(0, nullData))
	return tx
}

// rawResult renders msgTx the way a node reports it in a verbose block, leaving the
// script type empty so classification falls back to txscript.
func rawResult(t *testing.T, msgTx *wire.MsgTx) btcjson.TxRawResult {
	t.Helper()
	var buf bytes.Buffer
	if err := msgTx.Serialize(&buf); err != nil {
		t.Fatal(err)
	}

	res := btcjson.TxRawResult{
		Hex:  hex.EncodeToString(buf.Bytes()),
		Txid: msgTx.TxHash().String(),
		Hash: msgTx.WitnessHash().String(),
	}
	for _, in := range msgTx.TxIn {
		vin := btcjson.Vin{Sequence: in.Sequence}
		if in.PreviousOutPoint.Index == math.MaxUint32 && in.PreviousOutPoint.Hash == (chainhash.Hash{}) {
			vin.Coinbase = hex.EncodeToString(in.SignatureScript)
		} else {
			vin.Txid = in.PreviousOutPoint.Hash.String()
			vin.Vout = in.PreviousOutPoint.Index
		}
		res.Vin = append(res.Vin, vin)
	}
	for i, out := range msgTx.TxOut {
		res.Vout = append(res.Vout, btcjson.Vout{
			Value: btcutil.Amount(out.Value).ToBTC(),
			N:     uint32(i),
			ScriptPubKey: btcjson.ScriptPubKeyResult{
				Hex: hex.EncodeToString(out.PkScript),
			},
		})
	}
	return res
}

func verboseBlock(height int64, txs ...btcjson.TxRawResult) *btcjson.GetBlockVerboseTxResult {
	return &btcjson.GetBlockVerboseTxResult{
		Hash:   blockHash(height).String(),
		Height: height,
		Time:   1_700_000_000 + height*600,
		Tx:     txs,
	}
}

func blockHash(height int64) *chainhash.Hash {
	var h chainhash.Hash
	h[0] = byte(height + 1)
	return &h
}
