package ir

import (
	"fmt"
	"math"
	"math/big"
)

// StrengthReductionName is the registry name of StrengthReduction
const StrengthReductionName = "strength-reduction"

// StrengthReduction turns multiplication and division by a power of two
// into shifts.
//
// Both udiv and sdiv become ashr. A float multiply or divide by 2^k becomes
// a shift of the float operand by the float constant k.
type StrengthReduction struct{}

func (StrengthReduction) Name() string            { return StrengthReductionName }
func (StrengthReduction) Description() string     { return "Strength Reduction" }
func (StrengthReduction) PreservesAnalyses() bool { return false }

func (p *StrengthReduction) RunOnFunction(fn *Function) bool {
	return runOnBlocks(fn, p.reduce)
}

func (p *StrengthReduction) reduce(inst *Instruction) bool {
	switch inst.Opcode() {
	case OpMul:
		return p.reduceInt(inst, OpShl)
	case OpUDiv, OpSDiv:
		return p.reduceInt(inst, OpAShr)
	case OpFMul:
		return p.reduceFloat(inst, OpShl)
	case OpFDiv:
		return p.reduceFloat(inst, OpAShr)
	case OpAdd, OpSub, OpFAdd, OpFSub, OpShl, OpLShr, OpAShr, OpAnd, OpOr, OpXor, OpCall, OpRet, OpBr:
		return false
	default:
		panic(fmt.Sprintf("localopts: strength-reduction: unhandled opcode %s", inst.Opcode()))
	}
}

func (p *StrengthReduction) reduceInt(inst *Instruction, shift Opcode) bool {
	a, b, ok := binaryOperands(inst)
	if !ok {
		return false
	}
	c, ok := b.(*IntConst)
	if !ok {
		return false
	}
	k, ok := log2Exact(c.Value())
	if !ok {
		return false
	}

	fn := inst.Function()
	amount := fn.ConstInt(c.Type(), uint64(k))
	p.replace(inst, fn.NewBinary(shift, a, amount))
	return true
}

func (p *StrengthReduction) reduceFloat(inst *Instruction, shift Opcode) bool {
	a, b, ok := binaryOperands(inst)
	if !ok {
		return false
	}
	c, ok := b.(*FloatConst)
	if !ok {
		return false
	}
	l := math.Log2(c.Float64())
	if l != math.Floor(l) {
		return false
	}

	fn := inst.Function()
	amount := fn.ConstFloat(c.Type(), l)
	p.replace(inst, fn.NewBinary(shift, a, amount))
	return true
}

func (p *StrengthReduction) replace(inst, shift *Instruction) {
	log.Debugf("%s: %s -> %s", StrengthReductionName, inst, shift)
	inst.Function().ReplaceInPlace(inst, shift)
}

// log2Exact returns k when v is 2^k. The whole magnitude is checked, so
// constants wider than 64 bits are handled.
func log2Exact(v *big.Int) (uint, bool) {
	if v.Sign() <= 0 {
		return 0, false
	}
	k := v.TrailingZeroBits()
	return k, uint(v.BitLen()-1) == k
}
