package script

import (
	"bytes"
	"crypto/sha1" //nolint:gosec // OP_SHA1 is part of the instruction set.

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // OP_RIPEMD160 is part of the instruction set.
)

const (
	lockTimeThreshold         = 500_000_000
	sequenceLockTimeDisabled  = 1 << 31
	sequenceLockTimeIsSeconds = 1 << 22
	sequenceLockTimeMask      = 0x0000ffff
	maxTxInSequenceNum        = 0xffffffff
)

// opHandlers is indexed by opcode. Pushes and conditionals are handled by the engine and
// reserved opcodes have no entry.
var opHandlers = [256]opHandler{
	OP_NOP:                 opNop,
	OP_NOP1:                opNop,
	OP_NOP4:                opNop,
	OP_NOP5:                opNop,
	OP_NOP6:                opNop,
	OP_NOP7:                opNop,
	OP_NOP8:                opNop,
	OP_NOP9:                opNop,
	OP_NOP10:               opNop,
	OP_CHECKLOCKTIMEVERIFY: opCheckLockTimeVerify,
	OP_CHECKSEQUENCEVERIFY: opCheckSequenceVerify,
	OP_VERIFY:              opVerify,
	OP_RETURN:              opReturn,

	OP_TOALTSTACK:   opToAltStack,
	OP_FROMALTSTACK: opFromAltStack,
	OP_2DROP:        func(e *engine, _ *Operation) error { return e.stack.dropN(2) },
	OP_2DUP:         func(e *engine, _ *Operation) error { return e.stack.dupN(2) },
	OP_3DUP:         func(e *engine, _ *Operation) error { return e.stack.dupN(3) },
	OP_2OVER:        func(e *engine, _ *Operation) error { return e.stack.overN(2) },
	OP_2ROT:         func(e *engine, _ *Operation) error { return e.stack.rotN(2) },
	OP_2SWAP:        func(e *engine, _ *Operation) error { return e.stack.swapN(2) },
	OP_IFDUP:        opIfDup,
	OP_DEPTH:        opDepth,
	OP_DROP:         func(e *engine, _ *Operation) error { return e.stack.dropN(1) },
	OP_DUP:          func(e *engine, _ *Operation) error { return e.stack.dupN(1) },
	OP_NIP:          opNip,
	OP_OVER:         func(e *engine, _ *Operation) error { return e.stack.overN(1) },
	OP_PICK:         opPick,
	OP_ROLL:         opRoll,
	OP_ROT:          func(e *engine, _ *Operation) error { return e.stack.rotN(1) },
	OP_SWAP:         func(e *engine, _ *Operation) error { return e.stack.swapN(1) },
	OP_TUCK:         opTuck,
	OP_SIZE:         opSize,

	OP_EQUAL:       opEqual,
	OP_EQUALVERIFY: opEqual,

	OP_1ADD:               opUnaryNum,
	OP_1SUB:               opUnaryNum,
	OP_NEGATE:             opUnaryNum,
	OP_ABS:                opUnaryNum,
	OP_NOT:                opUnaryNum,
	OP_0NOTEQUAL:          opUnaryNum,
	OP_ADD:                opBinaryNum,
	OP_SUB:                opBinaryNum,
	OP_BOOLAND:            opBinaryNum,
	OP_BOOLOR:             opBinaryNum,
	OP_NUMEQUAL:           opBinaryNum,
	OP_NUMEQUALVERIFY:     opBinaryNum,
	OP_NUMNOTEQUAL:        opBinaryNum,
	OP_LESSTHAN:           opBinaryNum,
	OP_GREATERTHAN:        opBinaryNum,
	OP_LESSTHANOREQUAL:    opBinaryNum,
	OP_GREATERTHANOREQUAL: opBinaryNum,
	OP_MIN:                opBinaryNum,
	OP_MAX:                opBinaryNum,
	OP_WITHIN:             opWithin,

	OP_RIPEMD160:           opHash,
	OP_SHA1:                opHash,
	OP_SHA256:              opHash,
	OP_HASH160:             opHash,
	OP_HASH256:             opHash,
	OP_CODESEPARATOR:       opCodeSeparator,
	OP_CHECKSIG:            opCheckSig,
	OP_CHECKSIGVERIFY:      opCheckSig,
	OP_CHECKMULTISIG:       opCheckMultiSig,
	OP_CHECKMULTISIGVERIFY: opCheckMultiSig,
	OP_CHECKSIGADD:         opCheckSigAdd,
}

func opNop(*engine, *Operation) error { return nil }

func opVerify(e *engine, _ *Operation) error {
	ok, err := e.stack.popBool()
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerify
	}
	return nil
}

func opReturn(*engine, *Operation) error { return ErrEarlyReturn }

func opToAltStack(e *engine, _ *Operation) error {
	item, err := e.stack.Pop()
	if err != nil {
		return err
	}
	e.stack.alt = append(e.stack.alt, item)
	return nil
}

func opFromAltStack(e *engine, _ *Operation) error {
	if len(e.stack.alt) == 0 {
		return ErrInvalidAltStackOp
	}
	item := e.stack.alt[len(e.stack.alt)-1]
	e.stack.alt = e.stack.alt[:len(e.stack.alt)-1]
	e.stack.Push(item)
	return nil
}

func opIfDup(e *engine, _ *Operation) error {
	top, err := e.stack.Peek(0)
	if err != nil {
		return err
	}
	if asBool(top) {
		e.stack.Push(top)
	}
	return nil
}

func opDepth(e *engine, _ *Operation) error {
	e.stack.pushNum(scriptNum(e.stack.Len()))
	return nil
}

func opNip(e *engine, _ *Operation) error {
	_, err := e.stack.nipN(1)
	return err
}

func opPick(e *engine, _ *Operation) error {
	n, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	if n < 0 || int(n) >= e.stack.Len() {
		return ErrInvalidStackOp
	}
	item, err := e.stack.Peek(int(n))
	if err != nil {
		return err
	}
	e.stack.Push(item)
	return nil
}

func opRoll(e *engine, _ *Operation) error {
	n, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	if n < 0 || int(n) >= e.stack.Len() {
		return ErrInvalidStackOp
	}
	item, err := e.stack.nipN(int(n))
	if err != nil {
		return err
	}
	e.stack.Push(item)
	return nil
}

func opTuck(e *engine, _ *Operation) error {
	if e.stack.Len() < 2 {
		return ErrInvalidStackOp
	}
	top, _ := e.stack.Peek(0)
	idx := len(e.stack.main) - 2
	e.stack.main = append(e.stack.main, nil)
	copy(e.stack.main[idx+1:], e.stack.main[idx:])
	e.stack.main[idx] = top
	return nil
}

func opSize(e *engine, _ *Operation) error {
	top, err := e.stack.Peek(0)
	if err != nil {
		return err
	}
	e.stack.pushNum(scriptNum(len(top)))
	return nil
}

func opEqual(e *engine, op *Operation) error {
	b, err := e.stack.Pop()
	if err != nil {
		return err
	}
	a, err := e.stack.Pop()
	if err != nil {
		return err
	}
	equal := bytes.Equal(a, b)
	if op.Opcode == OP_EQUALVERIFY {
		if !equal {
			return ErrEqualVerify
		}
		return nil
	}
	e.stack.pushBool(equal)
	return nil
}

func opUnaryNum(e *engine, op *Operation) error {
	n, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	switch op.Opcode {
	case OP_1ADD:
		n++
	case OP_1SUB:
		n--
	case OP_NEGATE:
		n = -n
	case OP_ABS:
		if n < 0 {
			n = -n
		}
	case OP_NOT:
		n = boolNum(n == 0)
	case OP_0NOTEQUAL:
		n = boolNum(n != 0)
	}
	e.stack.pushNum(n)
	return nil
}

func opBinaryNum(e *engine, op *Operation) error {
	b, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	a, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}

	var result scriptNum
	switch op.Opcode {
	case OP_ADD:
		result = a + b
	case OP_SUB:
		result = a - b
	case OP_BOOLAND:
		result = boolNum(a != 0 && b != 0)
	case OP_BOOLOR:
		result = boolNum(a != 0 || b != 0)
	case OP_NUMEQUAL, OP_NUMEQUALVERIFY:
		result = boolNum(a == b)
	case OP_NUMNOTEQUAL:
		result = boolNum(a != b)
	case OP_LESSTHAN:
		result = boolNum(a < b)
	case OP_GREATERTHAN:
		result = boolNum(a > b)
	case OP_LESSTHANOREQUAL:
		result = boolNum(a <= b)
	case OP_GREATERTHANOREQUAL:
		result = boolNum(a >= b)
	case OP_MIN:
		result = min(a, b)
	case OP_MAX:
		result = max(a, b)
	}

	if op.Opcode == OP_NUMEQUALVERIFY {
		if result == 0 {
			return ErrNumEqualVerify
		}
		return nil
	}
	e.stack.pushNum(result)
	return nil
}

func opWithin(e *engine, _ *Operation) error {
	hi, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	lo, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	x, err := e.stack.popNum(e.requireMinimal(), defaultNumLen)
	if err != nil {
		return err
	}
	e.stack.pushBool(lo <= x && x < hi)
	return nil
}

func boolNum(v bool) scriptNum {
	if v {
		return 1
	}
	return 0
}

func opHash(e *engine, op *Operation) error {
	data, err := e.stack.Pop()
	if err != nil {
		return err
	}
	var sum []byte
	switch op.Opcode {
	case OP_RIPEMD160:
		h := ripemd160.New()
		_, _ = h.Write(data)
		sum = h.Sum(nil)
	case OP_SHA1:
		h := sha1.Sum(data) //nolint:gosec
		sum = h[:]
	case OP_SHA256:
		sum = chainhash.HashB(data)
	case OP_HASH160:
		sum = btcutil.Hash160(data)
	case OP_HASH256:
		sum = chainhash.DoubleHashB(data)
	}
	e.stack.Push(sum)
	return nil
}

func opCodeSeparator(e *engine, op *Operation) error {
	e.stack.codeSepPos = op.Offset + 1
	return nil
}

func opCheckSig(e *engine, op *Operation) error {
	pubKey, err := e.stack.Pop()
	if err != nil {
		return err
	}
	sig, err := e.stack.Pop()
	if err != nil {
		return err
	}

	ok, err := e.checkSig(sig, pubKey, e.scriptCode(sig))
	if err != nil {
		return err
	}
	if op.Opcode == OP_CHECKSIGVERIFY {
		if !ok {
			return ErrCheckSigVerify
		}
		return nil
	}
	e.stack.pushBool(ok)
	return nil
}

// opCheckMultiSig walks signatures and keys in order; every signature must match a key
// that appears after the key of the previous signature.
func opCheckMultiSig(e *engine, op *Operation) error {
	requireMinimal := e.requireMinimal()

	depth := 0
	keyCount, err := e.stack.peekNum(depth, requireMinimal, defaultNumLen)
	if err != nil {
		return err
	}
	if keyCount < 0 || keyCount > MaxPubKeysPerMultiSig {
		return ErrPubKeyCount
	}
	e.stack.opCount += int(keyCount)
	if e.vctx.Mode != WitnessV1 && e.stack.opCount > MaxOpsPerScript {
		return ErrOpCountOverflow
	}
	keyDepth := depth + 1
	depth += int(keyCount) + 1

	sigCount, err := e.stack.peekNum(depth, requireMinimal, defaultNumLen)
	if err != nil {
		return err
	}
	if sigCount < 0 || sigCount > keyCount {
		return ErrSigCount
	}
	sigDepth := depth + 1
	depth += int(sigCount) + 1
	if e.stack.Len() < depth+1 {
		return ErrInvalidStackOp
	}

	sigs := make([][]byte, 0, sigCount)
	for i := 0; i < int(sigCount); i++ {
		sig, err := e.stack.Peek(sigDepth + i)
		if err != nil {
			return err
		}
		sigs = append(sigs, sig)
	}
	scriptCode := e.scriptCode(sigs...)

	keysLeft, sigsLeft := int(keyCount), int(sigCount)
	success := true
	for success && sigsLeft > 0 {
		sig, err := e.stack.Peek(sigDepth)
		if err != nil {
			return err
		}
		pubKey, err := e.stack.Peek(keyDepth)
		if err != nil {
			return err
		}
		ok, err := e.checkSig(sig, pubKey, scriptCode)
		if err != nil {
			return err
		}
		if ok {
			sigDepth++
			sigsLeft--
		}
		keyDepth++
		keysLeft--
		if sigsLeft > keysLeft {
			success = false
		}
	}

	if err := e.stack.dropN(depth); err != nil {
		return err
	}
	dummy, err := e.stack.Pop()
	if err != nil {
		return err
	}
	if e.vctx.Flags.Has(VerifyNullDummy) && len(dummy) != 0 {
		return ErrSigNullDummy
	}

	if op.Opcode == OP_CHECKMULTISIGVERIFY {
		if !success {
			return ErrCheckMultiSigVerify
		}
		return nil
	}
	e.stack.pushBool(success)
	return nil
}

func opCheckSigAdd(*engine, *Operation) error {
	return ErrUnsupportedTapscript
}

func opCheckLockTimeVerify(e *engine, _ *Operation) error {
	if !e.vctx.Flags.Has(VerifyCheckLockTime) {
		return nil
	}
	lockTime, err := e.stack.peekNum(0, e.requireMinimal(), lockTimeNumLen)
	if err != nil {
		return err
	}
	if lockTime < 0 {
		return ErrNegativeLockTime
	}
	tx := e.vctx.Tx
	if tx == nil {
		return ErrNoTransaction
	}

	txLockTime := int64(tx.LockTime)
	if (txLockTime < lockTimeThreshold) != (int64(lockTime) < lockTimeThreshold) {
		return ErrUnsatisfiedLockTime
	}
	if int64(lockTime) > txLockTime {
		return ErrUnsatisfiedLockTime
	}
	if tx.TxIn[e.vctx.InputIndex].Sequence == maxTxInSequenceNum {
		return ErrUnsatisfiedLockTime
	}
	return nil
}

func opCheckSequenceVerify(e *engine, _ *Operation) error {
	if !e.vctx.Flags.Has(VerifyCheckSequence) {
		return nil
	}
	sequence, err := e.stack.peekNum(0, e.requireMinimal(), lockTimeNumLen)
	if err != nil {
		return err
	}
	if sequence < 0 {
		return ErrNegativeLockTime
	}
	if int64(sequence)&sequenceLockTimeDisabled != 0 {
		return nil
	}
	tx := e.vctx.Tx
	if tx == nil {
		return ErrNoTransaction
	}
	if uint32(tx.Version) < 2 {
		return ErrUnsatisfiedLockTime
	}

	txSequence := int64(tx.TxIn[e.vctx.InputIndex].Sequence)
	if txSequence&sequenceLockTimeDisabled != 0 {
		return ErrUnsatisfiedLockTime
	}
	const mask = sequenceLockTimeIsSeconds | sequenceLockTimeMask
	txMasked := txSequence & mask
	wantMasked := int64(sequence) & mask
	if (txMasked < sequenceLockTimeIsSeconds) != (wantMasked < sequenceLockTimeIsSeconds) {
		return ErrUnsatisfiedLockTime
	}
	if wantMasked > txMasked {
		return ErrUnsatisfiedLockTime
	}
	return nil
}
