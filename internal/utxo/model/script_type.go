package model

// ScriptType is the classified type of an output script, using bitcoind naming.
type ScriptType string

var (
	ScriptNullData         ScriptType = "nulldata"
	ScriptPubKey           ScriptType = "pubkey"
	ScriptPubKeyHash       ScriptType = "pubkeyhash"
	ScriptScriptHash       ScriptType = "scripthash"
	ScriptMultiSig         ScriptType = "multisig"
	ScriptWitnessV0KeyHash ScriptType = "witness_v0_keyhash"
	ScriptWitnessV0Script  ScriptType = "witness_v0_scripthash"
	ScriptWitnessV1Taproot ScriptType = "witness_v1_taproot"
	ScriptWitnessUnknown   ScriptType = "witness_unknown"
	ScriptNonStandard      ScriptType = "nonstandard"
)

// IsNullData reports whether the script is an unspendable data carrier (OP_RETURN).
func (s ScriptType) IsNullData() bool {
	return s == ScriptNullData
}
