package ir

import "fmt"

// Opcode identifies the operation an instruction performs
type Opcode int

const (
	OpInvalid Opcode = iota

	// Integer arithmetic
	OpAdd
	OpSub
	OpMul
	OpUDiv
	OpSDiv

	// Floating point arithmetic
	OpFAdd
	OpFSub
	OpFMul
	OpFDiv

	// Shifts and bitwise logic
	OpShl
	OpLShr
	OpAShr
	OpAnd
	OpOr
	OpXor

	// Calls and terminators
	OpCall
	OpRet
	OpBr

	opcodeEnd
)

var opcodeNames = [...]string{
	OpInvalid: "invalid",
	OpAdd:     "add",
	OpSub:     "sub",
	OpMul:     "mul",
	OpUDiv:    "udiv",
	OpSDiv:    "sdiv",
	OpFAdd:    "fadd",
	OpFSub:    "fsub",
	OpFMul:    "fmul",
	OpFDiv:    "fdiv",
	OpShl:     "shl",
	OpLShr:    "lshr",
	OpAShr:    "ashr",
	OpAnd:     "and",
	OpOr:      "or",
	OpXor:     "xor",
	OpCall:    "call",
	OpRet:     "ret",
	OpBr:      "br",
}

func (op Opcode) String() string {
	if op < 0 || op >= opcodeEnd {
		return fmt.Sprintf("opcode(%d)", int(op))
	}
	return opcodeNames[op]
}

// ParseOpcode resolves the textual mnemonic of an opcode
func ParseOpcode(name string) (Opcode, bool) {
	for op := OpAdd; op < opcodeEnd; op++ {
		if opcodeNames[op] == name {
			return op, true
		}
	}
	return OpInvalid, false
}

// BinaryOpcodeNames lists the mnemonics of all two-operand opcodes
func BinaryOpcodeNames() []string {
	var names []string
	for op := OpAdd; op < opcodeEnd; op++ {
		if op.IsBinary() {
			names = append(names, opcodeNames[op])
		}
	}
	return names
}

// IsBinary reports whether the opcode takes exactly two operands of the result type
func (op Opcode) IsBinary() bool {
	return op >= OpAdd && op <= OpXor
}

// IsFloatArith reports whether the opcode is one of the floating point arithmetic ops
func (op Opcode) IsFloatArith() bool {
	return op >= OpFAdd && op <= OpFDiv
}

// IsTerminator reports whether the opcode ends a basic block
func (op Opcode) IsTerminator() bool {
	return op == OpRet || op == OpBr
}
