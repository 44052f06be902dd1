package ir

import "fmt"

// AlgebraicIdentityName is the registry name of AlgebraicIdentity
const AlgebraicIdentityName = "algebraic-identity"

// AlgebraicIdentity removes binary operations whose result is one of the
// operands or a fixed constant: x+0, x-0, x-x, x*1, x*0, x/1, x/x.
type AlgebraicIdentity struct{}

func (AlgebraicIdentity) Name() string            { return AlgebraicIdentityName }
func (AlgebraicIdentity) Description() string     { return "Algebraic Identity" }
func (AlgebraicIdentity) PreservesAnalyses() bool { return false }

func (p *AlgebraicIdentity) RunOnFunction(fn *Function) bool {
	return runOnBlocks(fn, p.simplify)
}

// identityRule is one row of an opcode's rule table. Rows are tried in
// order and the first match supplies the replacement.
type identityRule struct {
	match   func(a, b Value) bool
	replace func(inst *Instruction, a, b Value) Value
}

var (
	addRules = []identityRule{
		{match: firstIs(isIntZero), replace: second},
		{match: secondIs(isIntZero), replace: first},
	}
	faddRules = []identityRule{
		{match: firstIs(isFloatZero), replace: second},
		{match: secondIs(isFloatZero), replace: first},
	}
	subRules = []identityRule{
		{match: secondIs(isIntZero), replace: first},
		{match: sameOperands, replace: intResult(0)},
	}
	fsubRules = []identityRule{
		{match: secondIs(isFloatZero), replace: first},
		{match: sameOperands, replace: floatResult(0)},
	}
	mulRules = []identityRule{
		{match: firstIs(isIntOne), replace: second},
		{match: secondIs(isIntOne), replace: first},
		{match: eitherIs(isIntZero), replace: intResult(0)},
	}
	fmulRules = []identityRule{
		{match: firstIs(isFloatOne), replace: second},
		{match: secondIs(isFloatOne), replace: first},
		// Builds an integer constant of the float result type.
		{match: eitherIs(isFloatZero), replace: intResult(0)},
	}
	fdivRules = []identityRule{
		{match: secondIs(isFloatOne), replace: first},
		{match: sameOperands, replace: floatResult(1)},
	}
	divRules = []identityRule{
		{match: secondIs(isIntOne), replace: first},
		{match: sameOperands, replace: intResult(1)},
	}
)

func (p *AlgebraicIdentity) rules(op Opcode) []identityRule {
	switch op {
	case OpAdd:
		return addRules
	case OpFAdd:
		return faddRules
	case OpSub:
		return subRules
	case OpFSub:
		return fsubRules
	case OpMul:
		return mulRules
	case OpFMul:
		return fmulRules
	case OpFDiv:
		return fdivRules
	case OpUDiv, OpSDiv:
		return divRules
	case OpShl, OpLShr, OpAShr, OpAnd, OpOr, OpXor, OpCall, OpRet, OpBr:
		return nil
	default:
		panic(fmt.Sprintf("localopts: algebraic-identity: unhandled opcode %s", op))
	}
}

func (p *AlgebraicIdentity) simplify(inst *Instruction) bool {
	rules := p.rules(inst.Opcode())
	if rules == nil {
		return false
	}
	a, b, ok := binaryOperands(inst)
	if !ok {
		return false
	}

	for _, rule := range rules {
		if !rule.match(a, b) {
			continue
		}
		repl := rule.replace(inst, a, b)
		log.Debugf("%s: %s -> %s", AlgebraicIdentityName, inst, repl.Ref())
		inst.Function().ReplaceAndErase(inst, repl)
		return true
	}
	return false
}

func firstIs(pred func(Value) bool) func(a, b Value) bool {
	return func(a, _ Value) bool { return pred(a) }
}

func secondIs(pred func(Value) bool) func(a, b Value) bool {
	return func(_, b Value) bool { return pred(b) }
}

func eitherIs(pred func(Value) bool) func(a, b Value) bool {
	return func(a, b Value) bool { return pred(a) || pred(b) }
}

func sameOperands(a, b Value) bool { return a.ID() == b.ID() }

func first(_ *Instruction, a, _ Value) Value  { return a }
func second(_ *Instruction, _, b Value) Value { return b }

func intResult(v uint64) func(*Instruction, Value, Value) Value {
	return func(inst *Instruction, _, _ Value) Value {
		return inst.Function().ConstInt(inst.Type(), v)
	}
}

func floatResult(v float64) func(*Instruction, Value, Value) Value {
	return func(inst *Instruction, _, _ Value) Value {
		return inst.Function().ConstFloat(inst.Type(), v)
	}
}

func isIntZero(v Value) bool {
	c, ok := v.(*IntConst)
	return ok && c.IsZero()
}

func isIntOne(v Value) bool {
	c, ok := v.(*IntConst)
	return ok && c.IsOne()
}

func isFloatZero(v Value) bool {
	c, ok := v.(*FloatConst)
	return ok && c.IsZero()
}

func isFloatOne(v Value) bool {
	c, ok := v.(*FloatConst)
	return ok && c.IsOne()
}
