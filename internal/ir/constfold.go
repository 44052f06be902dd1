package ir

import "fmt"

// ConstFoldName is the registry name of ConstFold
const ConstFoldName = "const-fold-opt"

// ConstFold evaluates arithmetic whose operands are both literals.
//
// Integer results are computed on the zero-extended low 64 bits of each
// operand with wrapping uint64 arithmetic and truncated to the result
// width, regardless of signedness. Float results use float64 arithmetic
// whatever the declared width.
type ConstFold struct{}

func (ConstFold) Name() string            { return ConstFoldName }
func (ConstFold) Description() string     { return "Constant Folding Optimization" }
func (ConstFold) PreservesAnalyses() bool { return false }

func (p *ConstFold) RunOnFunction(fn *Function) bool {
	return runOnBlocks(fn, p.fold)
}

func (p *ConstFold) fold(inst *Instruction) bool {
	switch inst.Opcode() {
	case OpAdd, OpSub, OpMul, OpUDiv, OpSDiv:
		return p.foldInt(inst)
	case OpFAdd, OpFSub, OpFMul, OpFDiv:
		return p.foldFloat(inst)
	case OpShl, OpLShr, OpAShr, OpAnd, OpOr, OpXor, OpCall, OpRet, OpBr:
		return false
	default:
		panic(fmt.Sprintf("localopts: const-fold-opt: unhandled opcode %s", inst.Opcode()))
	}
}

func (p *ConstFold) foldInt(inst *Instruction) bool {
	a, b, ok := binaryOperands(inst)
	if !ok {
		return false
	}
	x, okx := a.(*IntConst)
	y, oky := b.(*IntConst)
	if !okx || !oky {
		return false
	}

	xv, yv := x.ZExtValue(), y.ZExtValue()
	var r uint64
	switch inst.Opcode() {
	case OpAdd:
		r = xv + yv
	case OpSub:
		r = xv - yv
	case OpMul:
		r = xv * yv
	case OpUDiv, OpSDiv:
		if yv == 0 {
			log.Warningf("%s: not folding division by zero in %s", ConstFoldName, inst)
			return false
		}
		r = xv / yv
	}

	p.replace(inst, inst.Function().ConstInt(x.Type(), r))
	return true
}

func (p *ConstFold) foldFloat(inst *Instruction) bool {
	a, b, ok := binaryOperands(inst)
	if !ok {
		return false
	}
	x, okx := a.(*FloatConst)
	y, oky := b.(*FloatConst)
	if !okx || !oky {
		return false
	}

	xv, yv := x.Float64(), y.Float64()
	var r float64
	switch inst.Opcode() {
	case OpFAdd:
		r = xv + yv
	case OpFSub:
		r = xv - yv
	case OpFMul:
		r = xv * yv
	case OpFDiv:
		r = xv / yv
	}

	p.replace(inst, inst.Function().ConstFloat(x.Type(), r))
	return true
}

func (p *ConstFold) replace(inst *Instruction, c Value) {
	log.Debugf("%s: %s -> %s", ConstFoldName, inst, c.Ref())
	inst.Function().ReplaceAndErase(inst, c)
}
