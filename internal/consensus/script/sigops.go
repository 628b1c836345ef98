package script

// CountSigOps counts signature operations over the raw bytes of a script, charging
// OP_CHECKMULTISIG the maximum key count. Counting stops at a truncated push.
func CountSigOps(script []byte) int {
	return countSigOps(script, false)
}

// CountSigOpsAccurate is CountSigOps with OP_CHECKMULTISIG charged by the OP_1..OP_16
// that precedes it, as done for redeem scripts and witness scripts.
func CountSigOpsAccurate(script []byte) int {
	return countSigOps(script, true)
}

func countSigOps(script []byte, accurate bool) int {
	tokens, _ := tokenize(script)

	n := 0
	prev := byte(OP_INVALIDOPCODE)
	for _, t := range tokens {
		switch t.opcode {
		case OP_CHECKSIG, OP_CHECKSIGVERIFY:
			n++
		case OP_CHECKMULTISIG, OP_CHECKMULTISIGVERIFY:
			if accurate && prev >= OP_1 && prev <= OP_16 {
				n += smallInt(prev)
			} else {
				n += MaxPubKeysPerMultiSig
			}
		}
		prev = t.opcode
	}
	return n
}

// P2SHSigOps counts the signature operations of the redeem script pushed last by a
// push-only scriptSig. Anything else counts zero.
func P2SHSigOps(scriptSig []byte) int {
	redeem, ok := lastPush(scriptSig)
	if !ok {
		return 0
	}
	return CountSigOpsAccurate(redeem)
}

// WitnessSigOps counts the signature operations of a witness spend, including witness
// programs nested in a P2SH scriptSig.
func WitnessSigOps(scriptSig, pkScript []byte, witness [][]byte) int {
	version, program, ok := WitnessProgram(pkScript)
	if !ok && IsP2SH(pkScript) {
		if redeem, pushed := lastPush(scriptSig); pushed {
			version, program, ok = WitnessProgram(redeem)
		}
	}
	if !ok || version != 0 {
		return 0
	}
	switch {
	case len(program) == 20:
		return 1
	case len(program) == 32 && len(witness) > 0:
		return CountSigOpsAccurate(witness[len(witness)-1])
	}
	return 0
}

func lastPush(scriptSig []byte) ([]byte, bool) {
	tokens, err := tokenize(scriptSig)
	if err != nil || len(tokens) == 0 {
		return nil, false
	}
	for _, t := range tokens {
		if t.opcode > OP_16 {
			return nil, false
		}
	}
	return tokens[len(tokens)-1].data, true
}
