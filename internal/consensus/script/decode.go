package script

import (
	"encoding/binary"
	"fmt"
)

// Decode parses a script into an operation tree and returns the number of non-push
// opcodes it contains, including both ends of every conditional block.
func Decode(script []byte, mode Mode) ([]Operation, int, error) {
	if mode != WitnessV1 && len(script) > MaxScriptSize {
		return nil, 0, fmt.Errorf("script of %d bytes: %w", len(script), ErrScriptOverflow)
	}

	d := decoder{script: script, mode: mode}
	ops, term, err := d.sequence(false)
	if err != nil {
		return nil, d.opCount, err
	}
	if d.success != nil {
		return []Operation{*d.success}, d.opCount, nil
	}
	if term != 0 {
		return nil, d.opCount, ErrUnbalancedConditional
	}
	return ops, d.opCount, nil
}

type decoder struct {
	script  []byte
	pos     int
	mode    Mode
	opCount int
	success *Operation
}

// sequence decodes until the end of the script or, when nested, until OP_ELSE or OP_ENDIF,
// which it returns as the terminator.
func (d *decoder) sequence(nested bool) ([]Operation, byte, error) {
	var ops []Operation
	for d.pos < len(d.script) {
		offset := d.pos
		opcode := d.script[d.pos]
		d.pos++

		if d.mode == WitnessV1 && isSuccess(opcode) {
			d.success = &Operation{Opcode: opcode, Offset: offset, Success: true}
			return nil, 0, nil
		}

		if opcode <= OP_PUSHDATA4 {
			data, err := d.pushData(opcode)
			if err != nil {
				return nil, 0, err
			}
			ops = append(ops, Operation{Opcode: opcode, Data: data, Offset: offset})
			continue
		}

		if opcode > OP_16 && d.mode != WitnessV1 {
			d.opCount++
			if d.opCount > MaxOpsPerScript {
				return nil, 0, fmt.Errorf("%d operations: %w", d.opCount, ErrOpCountOverflow)
			}
		}

		switch {
		case opcode == OP_VERIF || opcode == OP_VERNOTIF:
			return nil, 0, fmt.Errorf("%s at %d: %w", OpcodeName(opcode), offset, ErrInvalidOp)
		case isDisabled(opcode):
			return nil, 0, fmt.Errorf("%s at %d: %w", OpcodeName(opcode), offset, ErrDisabledOp)
		case opcode == OP_CHECKSIGADD && d.mode != WitnessV1:
			return nil, 0, ErrOpCheckSigAddPreTaproot
		case (opcode == OP_CHECKMULTISIG || opcode == OP_CHECKMULTISIGVERIFY) && d.mode == WitnessV1:
			return nil, 0, ErrOpCheckMultiSigTaproot
		case opcode == OP_IF || opcode == OP_NOTIF:
			op, err := d.conditional(opcode, offset)
			if err != nil || d.success != nil {
				return nil, 0, err
			}
			ops = append(ops, op)
		case opcode == OP_ELSE || opcode == OP_ENDIF:
			if !nested {
				return nil, 0, fmt.Errorf("%s at %d: %w", OpcodeName(opcode), offset, ErrUnbalancedConditional)
			}
			return ops, opcode, nil
		default:
			ops = append(ops, Operation{Opcode: opcode, Offset: offset})
		}
	}
	return ops, 0, nil
}

func (d *decoder) conditional(opcode byte, offset int) (Operation, error) {
	op := Operation{Opcode: opcode, Offset: offset}
	for {
		branch, term, err := d.sequence(true)
		if err != nil || d.success != nil {
			return Operation{}, err
		}
		op.Branches = append(op.Branches, branch)
		switch term {
		case OP_ENDIF:
			return op, nil
		case OP_ELSE:
			continue
		default:
			return Operation{}, fmt.Errorf("%s at %d: %w", OpcodeName(opcode), offset, ErrMissingOpEndIf)
		}
	}
}

func (d *decoder) pushData(opcode byte) ([]byte, error) {
	size, err := readPushSize(d.script, &d.pos, opcode)
	if err != nil {
		return nil, err
	}
	if size > MaxScriptElementSize {
		return nil, fmt.Errorf("push of %d bytes: %w", size, ErrPushSize)
	}
	data := d.script[d.pos : d.pos+size]
	d.pos += size
	return data, nil
}

// readPushSize reads the length prefix of a push opcode at *pos and checks that the
// payload fits in the script.
func readPushSize(script []byte, pos *int, opcode byte) (int, error) {
	var size int
	switch opcode {
	case OP_PUSHDATA1:
		if len(script)-*pos < 1 {
			return 0, ErrEndOfStream
		}
		size = int(script[*pos])
		*pos++
	case OP_PUSHDATA2:
		if len(script)-*pos < 2 {
			return 0, ErrEndOfStream
		}
		size = int(binary.LittleEndian.Uint16(script[*pos:]))
		*pos += 2
	case OP_PUSHDATA4:
		if len(script)-*pos < 4 {
			return 0, ErrEndOfStream
		}
		raw := binary.LittleEndian.Uint32(script[*pos:])
		*pos += 4
		if uint64(raw) > uint64(len(script)) {
			return 0, ErrEndOfStream
		}
		size = int(raw)
	default:
		size = int(opcode)
	}
	if len(script)-*pos < size {
		return 0, ErrEndOfStream
	}
	return size, nil
}

// token is one flat opcode of a script, used by the raw byte walks that do not need the
// operation tree.
type token struct {
	opcode byte
	data   []byte
	start  int
	end    int
}

// tokenize walks a script without building conditionals. It returns the tokens decoded
// before the first malformed push together with ErrEndOfStream.
func tokenize(script []byte) ([]token, error) {
	var tokens []token
	pos := 0
	for pos < len(script) {
		start := pos
		opcode := script[pos]
		pos++
		var data []byte
		if opcode <= OP_PUSHDATA4 {
			size, err := readPushSize(script, &pos, opcode)
			if err != nil {
				return tokens, err
			}
			data = script[pos : pos+size]
			pos += size
		}
		tokens = append(tokens, token{opcode: opcode, data: data, start: start, end: pos})
	}
	return tokens, nil
}

// IsPushOnly reports whether a script consists solely of push opcodes.
func IsPushOnly(script []byte) bool {
	tokens, err := tokenize(script)
	if err != nil {
		return false
	}
	for _, t := range tokens {
		if t.opcode > OP_16 {
			return false
		}
	}
	return true
}

// PushedData returns the payloads of a push-only script, expanding small-integer opcodes.
func PushedData(script []byte) ([][]byte, error) {
	tokens, err := tokenize(script)
	if err != nil {
		return nil, err
	}
	items := make([][]byte, 0, len(tokens))
	for _, t := range tokens {
		switch {
		case t.opcode <= OP_PUSHDATA4:
			items = append(items, t.data)
		case t.opcode == OP_1NEGATE:
			items = append(items, scriptNum(-1).Bytes())
		case t.opcode >= OP_1 && t.opcode <= OP_16:
			items = append(items, scriptNum(smallInt(t.opcode)).Bytes())
		default:
			return nil, fmt.Errorf("%s is not a push: %w", OpcodeName(t.opcode), ErrInvalidOp)
		}
	}
	return items, nil
}
