package ir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scalar is a runtime value: integers are held zero-extended in bits,
// floats in f.
type scalar struct {
	bits uint64
	f    float64
}

func intArg(v int64) scalar    { return scalar{bits: uint64(v)} }
func floatArg(v float64) scalar { return scalar{f: v} }

// interpret executes fn on args. Calls evaluate to zero.
func interpret(t *testing.T, fn *Function, args ...scalar) scalar {
	t.Helper()
	require.Len(t, args, len(fn.Params()))

	env := make(map[ValueID]scalar)
	for i, p := range fn.Params() {
		env[p.ID()] = truncate(p.Type(), args[i])
	}
	get := func(v Value) scalar {
		switch c := v.(type) {
		case *IntConst:
			return scalar{bits: c.ZExtValue()}
		case *FloatConst:
			return scalar{f: c.Float64()}
		}
		s, ok := env[v.ID()]
		require.True(t, ok, "value %s read before definition", v.Ref())
		return s
	}

	block := fn.Blocks()[0]
	for steps := 0; steps < 10000; steps++ {
	run:
		for inst := block.First(); inst != nil; inst = inst.Next() {
			switch op := inst.Opcode(); {
			case op == OpRet:
				if inst.NumOperands() == 0 {
					return scalar{}
				}
				return get(inst.Operand(0))
			case op == OpBr:
				targets := inst.Targets()
				block = targets[0]
				if inst.NumOperands() == 1 && get(inst.Operand(0)).bits&1 == 0 {
					block = targets[1]
				}
				break run
			case op == OpCall:
				env[inst.ID()] = scalar{}
			default:
				env[inst.ID()] = evalBinary(t, inst.Type(), op, get(inst.Operand(0)), get(inst.Operand(1)))
			}
		}
	}
	t.Fatalf("@%s did not return", fn.Name)
	return scalar{}
}

func truncate(typ Type, s scalar) scalar {
	if t, ok := typ.(IntType); ok && t.Bits < 64 {
		s.bits &= 1<<uint(t.Bits) - 1
	}
	return s
}

func sext(x uint64, bits int) int64 {
	shift := uint(64 - bits)
	return int64(x<<shift) >> shift
}

func evalBinary(t *testing.T, typ Type, op Opcode, x, y scalar) scalar {
	if op.IsFloatArith() {
		switch op {
		case OpFAdd:
			return scalar{f: x.f + y.f}
		case OpFSub:
			return scalar{f: x.f - y.f}
		case OpFMul:
			return scalar{f: x.f * y.f}
		default:
			return scalar{f: x.f / y.f}
		}
	}

	it, ok := typ.(IntType)
	require.True(t, ok && it.Bits <= 64, "interpreter only handles integers up to 64 bits, got %s", typ)
	w := it.Bits

	var r uint64
	switch op {
	case OpAdd:
		r = x.bits + y.bits
	case OpSub:
		r = x.bits - y.bits
	case OpMul:
		r = x.bits * y.bits
	case OpUDiv:
		require.NotZero(t, y.bits, "division by zero")
		r = x.bits / y.bits
	case OpSDiv:
		require.NotZero(t, y.bits, "division by zero")
		r = uint64(sext(x.bits, w) / sext(y.bits, w))
	case OpShl:
		r = x.bits << y.bits
	case OpLShr:
		r = x.bits >> y.bits
	case OpAShr:
		r = uint64(sext(x.bits, w) >> y.bits)
	case OpAnd:
		r = x.bits & y.bits
	case OpOr:
		r = x.bits | y.bits
	case OpXor:
		r = x.bits ^ y.bits
	default:
		t.Fatalf("cannot evaluate %s", op)
	}
	return truncate(typ, scalar{bits: r})
}
