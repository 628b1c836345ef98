package script

import (
	"fmt"

	"github.com/btcsuite/btcd/wire"
)

// VerifyFlags toggles the soft-fork rules enforced during execution.
type VerifyFlags uint32

const VerifyNone VerifyFlags = 0

const (
	// VerifyP2SH evaluates pay-to-script-hash redeem scripts.
	VerifyP2SH VerifyFlags = 1 << iota
	// VerifyStrictDER requires strictly DER encoded signatures.
	VerifyStrictDER
	// VerifyLowS requires signatures with an S value in the lower half of the curve order.
	VerifyLowS
	// VerifyNullDummy requires the extra OP_CHECKMULTISIG argument to be empty.
	VerifyNullDummy
	// VerifyMinimalData requires minimal pushes and minimally encoded numbers.
	VerifyMinimalData
	// VerifyCheckLockTime turns OP_NOP2 into OP_CHECKLOCKTIMEVERIFY.
	VerifyCheckLockTime
	// VerifyCheckSequence turns OP_NOP3 into OP_CHECKSEQUENCEVERIFY.
	VerifyCheckSequence
	// VerifyWitness evaluates segregated witness programs.
	VerifyWitness
)

// Has reports whether every flag in f is set.
func (v VerifyFlags) Has(f VerifyFlags) bool { return v&f == f }

// VerifyContext carries what signature and lock-time operations need to know about the
// input being verified.
type VerifyContext struct {
	Tx         *wire.MsgTx
	InputIndex int
	Amount     int64
	Flags      VerifyFlags
	Mode       Mode
	Verifier   SignatureVerifier
	SigHashes  *SigHashCache
}

// Run decodes script under vctx.Mode and executes it on stack.
func Run(script []byte, stack *ExecutionStack, vctx *VerifyContext) (bool, error) {
	ops, opCount, err := Decode(script, vctx.Mode)
	if err != nil {
		return false, err
	}
	stack.begin(script, opCount)
	return Execute(ops, stack, vctx)
}

// Execute runs decoded operations. The stack must have been prepared by Run, or hold the
// script the operations were decoded from via Begin, for signature operations to work.
// It reports whether the stack ends non-empty with a true top item.
func Execute(ops []Operation, stack *ExecutionStack, vctx *VerifyContext) (bool, error) {
	if len(ops) == 1 && ops[0].Success {
		return true, nil
	}

	e := engine{stack: stack, vctx: vctx}
	if err := e.run(ops); err != nil {
		return false, err
	}
	if stack.Len() == 0 {
		return false, nil
	}
	top, _ := stack.Peek(0)
	return asBool(top), nil
}

// Begin binds a stack to the script its next operations were decoded from.
func (s *ExecutionStack) Begin(script []byte, opCount int) {
	s.begin(script, opCount)
}

type engine struct {
	stack *ExecutionStack
	vctx  *VerifyContext
}

type opHandler func(e *engine, op *Operation) error

func (e *engine) requireMinimal() bool {
	return e.vctx.Flags.Has(VerifyMinimalData)
}

func (e *engine) run(ops []Operation) error {
	for i := range ops {
		op := &ops[i]
		var err error
		if op.IsConditional() {
			err = e.conditional(op)
		} else {
			err = e.step(op)
			if err != nil {
				err = fmt.Errorf("%s at %d: %w", OpcodeName(op.Opcode), op.Offset, err)
			}
		}
		if err != nil {
			return err
		}
		if e.stack.size() > MaxStackSize {
			return fmt.Errorf("%d items: %w", e.stack.size(), ErrStackOverflow)
		}
	}
	return nil
}

func (e *engine) conditional(op *Operation) error {
	item, err := e.stack.Pop()
	if err != nil {
		return fmt.Errorf("%s at %d: %w", OpcodeName(op.Opcode), op.Offset, ErrUnbalancedConditional)
	}
	cond := asBool(item)
	if op.Opcode == OP_NOTIF {
		cond = !cond
	}
	for k := range op.Branches {
		if (k%2 == 0) == cond {
			if err := e.run(op.Branches[k]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *engine) step(op *Operation) error {
	switch {
	case op.Opcode <= OP_PUSHDATA4:
		if e.requireMinimal() {
			if err := checkMinimalPush(op); err != nil {
				return err
			}
		}
		e.stack.Push(op.Data)
		return nil
	case op.Opcode == OP_1NEGATE:
		e.stack.pushNum(-1)
		return nil
	case op.Opcode >= OP_1 && op.Opcode <= OP_16:
		e.stack.pushNum(scriptNum(smallInt(op.Opcode)))
		return nil
	}

	handler := opHandlers[op.Opcode]
	if handler == nil {
		return ErrUndefinedOp
	}
	return handler(e, op)
}

func checkMinimalPush(op *Operation) error {
	data := op.Data
	switch n := len(data); {
	case n == 0:
		if op.Opcode != OP_0 {
			return ErrMinimalData
		}
	case n == 1 && data[0] >= 1 && data[0] <= 16:
		return ErrMinimalData
	case n == 1 && data[0] == 0x81:
		return ErrMinimalData
	case n <= OP_DATA_75:
		if int(op.Opcode) != n {
			return ErrMinimalData
		}
	case n <= 0xff:
		if op.Opcode != OP_PUSHDATA1 {
			return ErrMinimalData
		}
	case n <= 0xffff:
		if op.Opcode != OP_PUSHDATA2 {
			return ErrMinimalData
		}
	}
	return nil
}
