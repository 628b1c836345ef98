// Package script decodes and executes transaction scripts.
package script

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

const (
	// MaxScriptSize caps legacy and witness v0 scripts.
	MaxScriptSize = 10_000
	// MaxOpsPerScript caps non-push operations per legacy or witness v0 script.
	MaxOpsPerScript = 201
	// MaxScriptElementSize caps a single pushed or witness element.
	MaxScriptElementSize = 520
	// MaxStackSize caps the combined primary and alternate stack depth.
	MaxStackSize = 1000
	// MaxPubKeysPerMultiSig caps the key count of OP_CHECKMULTISIG.
	MaxPubKeysPerMultiSig = 20
)

// Mode selects the rule set a script is decoded and executed under.
type Mode uint8

const (
	Legacy Mode = iota
	WitnessV0
	WitnessV1
)

func (m Mode) String() string {
	switch m {
	case Legacy:
		return "legacy"
	case WitnessV0:
		return "witness_v0"
	case WitnessV1:
		return "witness_v1"
	default:
		return "unknown"
	}
}

// Operation is one decoded instruction. Conditionals own their branches: for OP_IF the
// branch at an even index runs when the popped condition is true, an odd index when it is
// false, so OP_IF a OP_ELSE b OP_ENDIF becomes Branches{a, b}.
type Operation struct {
	Opcode   byte
	Data     []byte
	Branches [][]Operation
	// Offset is the byte position of the opcode in the script it was decoded from.
	Offset int
	// Success marks a tapscript OP_SUCCESSx that ends decoding.
	Success bool
}

// Kind returns the opcode group.
func (op *Operation) Kind() Kind {
	if op.Success {
		return KindSuccess
	}
	return KindOf(op.Opcode)
}

// IsPush reports whether the operation only pushes a constant.
func (op *Operation) IsPush() bool {
	return op.Opcode <= OP_16 && op.Opcode != OP_RESERVED
}

// IsConditional reports whether the operation owns branches.
func (op *Operation) IsConditional() bool {
	return op.Opcode == OP_IF || op.Opcode == OP_NOTIF
}

func (op *Operation) String() string {
	if op.Opcode > OP_0 && op.Opcode <= OP_PUSHDATA4 {
		return hex.EncodeToString(op.Data)
	}
	if !op.IsConditional() {
		return OpcodeName(op.Opcode)
	}

	var b strings.Builder
	b.WriteString(OpcodeName(op.Opcode))
	for i, branch := range op.Branches {
		if i > 0 {
			b.WriteString(" OP_ELSE")
		}
		if len(branch) > 0 {
			b.WriteByte(' ')
			b.WriteString(Disassemble(branch))
		}
	}
	b.WriteString(" OP_ENDIF")
	return b.String()
}

// Disassemble renders operations in the conventional one-line form.
func Disassemble(ops []Operation) string {
	parts := make([]string, 0, len(ops))
	for i := range ops {
		parts = append(parts, ops[i].String())
	}
	return strings.Join(parts, " ")
}

// Serialize re-encodes operations. Push operations keep the opcode they were decoded with,
// so non-minimal pushes survive a decode and serialize round trip.
func Serialize(ops []Operation) []byte {
	var out []byte
	return appendOps(out, ops)
}

func appendOps(out []byte, ops []Operation) []byte {
	for i := range ops {
		op := &ops[i]
		out = append(out, op.Opcode)
		switch {
		case op.Opcode >= OP_DATA_1 && op.Opcode <= OP_DATA_75:
			out = append(out, op.Data...)
		case op.Opcode == OP_PUSHDATA1:
			out = append(out, byte(len(op.Data)))
			out = append(out, op.Data...)
		case op.Opcode == OP_PUSHDATA2:
			out = binary.LittleEndian.AppendUint16(out, uint16(len(op.Data)))
			out = append(out, op.Data...)
		case op.Opcode == OP_PUSHDATA4:
			out = binary.LittleEndian.AppendUint32(out, uint32(len(op.Data)))
			out = append(out, op.Data...)
		case op.IsConditional():
			for j, branch := range op.Branches {
				if j > 0 {
					out = append(out, OP_ELSE)
				}
				out = appendOps(out, branch)
			}
			out = append(out, OP_ENDIF)
		}
	}
	return out
}
