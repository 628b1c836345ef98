package script

// OutputType is the standard template a locking script matches.
type OutputType uint8

const (
	Unknown OutputType = iota
	PubKey
	PubKeyHash
	ScriptHash
	MultiSig
	NullData
	WitnessV0KeyHash
	WitnessV0ScriptHash
	WitnessV1Taproot
	WitnessUnknown
)

func (t OutputType) String() string {
	switch t {
	case PubKey:
		return "pubkey"
	case PubKeyHash:
		return "pubkeyhash"
	case ScriptHash:
		return "scripthash"
	case MultiSig:
		return "multisig"
	case NullData:
		return "nulldata"
	case WitnessV0KeyHash:
		return "witness_v0_keyhash"
	case WitnessV0ScriptHash:
		return "witness_v0_scripthash"
	case WitnessV1Taproot:
		return "witness_v1_taproot"
	case WitnessUnknown:
		return "witness_unknown"
	default:
		return "nonstandard"
	}
}

// SpecialType selects the spending path of an output during verification.
type SpecialType uint8

const (
	// None executes the unlocking and locking scripts directly.
	None SpecialType = iota
	P2SH
	P2WPKH
	P2WSH
	// FutureWitness is a witness program of a version without active rules. It is
	// spendable by anyone once its scriptSig is empty.
	FutureWitness
)

func (t SpecialType) String() string {
	switch t {
	case P2SH:
		return "p2sh"
	case P2WPKH:
		return "p2wpkh"
	case P2WSH:
		return "p2wsh"
	case FutureWitness:
		return "future_witness"
	default:
		return "none"
	}
}

// ClassifyOutputType matches the decoded locking script against the standard templates.
func ClassifyOutputType(pkScript []byte) OutputType {
	if len(pkScript) > 0 && pkScript[0] == OP_RETURN && IsPushOnly(pkScript[1:]) {
		return NullData
	}
	if version, program, ok := WitnessProgram(pkScript); ok {
		switch {
		case version == 0 && len(program) == 20:
			return WitnessV0KeyHash
		case version == 0 && len(program) == 32:
			return WitnessV0ScriptHash
		case version == 1 && len(program) == 32:
			return WitnessV1Taproot
		case version != 0:
			return WitnessUnknown
		}
		return Unknown
	}

	ops, _, err := Decode(pkScript, Legacy)
	if err != nil {
		return Unknown
	}
	switch {
	case len(ops) == 2 && isPubKeyPush(&ops[0]) && ops[1].Opcode == OP_CHECKSIG:
		return PubKey
	case len(ops) == 5 && ops[0].Opcode == OP_DUP && ops[1].Opcode == OP_HASH160 &&
		ops[2].Opcode == OP_DATA_20 && ops[3].Opcode == OP_EQUALVERIFY && ops[4].Opcode == OP_CHECKSIG:
		return PubKeyHash
	case len(ops) == 3 && ops[0].Opcode == OP_HASH160 && ops[1].Opcode == OP_DATA_20 && ops[2].Opcode == OP_EQUAL:
		return ScriptHash
	case isMultiSig(ops):
		return MultiSig
	}
	return Unknown
}

func isPubKeyPush(op *Operation) bool {
	return (op.Opcode == OP_DATA_33 || op.Opcode == OP_DATA_65) && int(op.Opcode) == len(op.Data)
}

func isMultiSig(ops []Operation) bool {
	if len(ops) < 4 || ops[len(ops)-1].Opcode != OP_CHECKMULTISIG {
		return false
	}
	first, last := ops[0].Opcode, ops[len(ops)-2].Opcode
	if first < OP_1 || first > OP_16 || last < OP_1 || last > OP_16 {
		return false
	}
	required, keys := smallInt(first), smallInt(last)
	if required > keys || keys != len(ops)-3 {
		return false
	}
	for i := 1; i <= keys; i++ {
		if !isPubKeyPush(&ops[i]) {
			return false
		}
	}
	return true
}

// ClassifySpecialType picks the spending path from the raw locking script bytes. Script
// hash and witness paths are only recognized when their rules are active in flags.
func ClassifySpecialType(pkScript []byte, flags VerifyFlags) SpecialType {
	if flags.Has(VerifyP2SH) && IsP2SH(pkScript) {
		return P2SH
	}
	if !flags.Has(VerifyWitness) {
		return None
	}
	version, program, ok := WitnessProgram(pkScript)
	switch {
	case !ok:
		return None
	case version == 0 && len(program) == 20:
		return P2WPKH
	case version == 0 && len(program) == 32:
		return P2WSH
	case version == 0:
		// v0 programs of any other length are invalid; the verifier rejects them.
		return P2WSH
	default:
		return FutureWitness
	}
}

// IsP2SH reports whether pkScript is exactly OP_HASH160 <20 bytes> OP_EQUAL.
func IsP2SH(pkScript []byte) bool {
	return len(pkScript) == 23 && pkScript[0] == OP_HASH160 && pkScript[1] == OP_DATA_20 && pkScript[22] == OP_EQUAL
}

// IsP2PKH reports whether pkScript is the canonical pay-to-pubkey-hash template.
func IsP2PKH(pkScript []byte) bool {
	return len(pkScript) == 25 && pkScript[0] == OP_DUP && pkScript[1] == OP_HASH160 &&
		pkScript[2] == OP_DATA_20 && pkScript[23] == OP_EQUALVERIFY && pkScript[24] == OP_CHECKSIG
}

// WitnessProgram extracts the version and program of a witness output: a small-integer
// opcode followed by a single direct push of 2 to 40 bytes.
func WitnessProgram(pkScript []byte) (int, []byte, bool) {
	if len(pkScript) < 4 || len(pkScript) > 42 {
		return 0, nil, false
	}
	if pkScript[0] != OP_0 && (pkScript[0] < OP_1 || pkScript[0] > OP_16) {
		return 0, nil, false
	}
	if int(pkScript[1])+2 != len(pkScript) {
		return 0, nil, false
	}
	return smallInt(pkScript[0]), pkScript[2:], true
}
