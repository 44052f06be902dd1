package ir

import (
	"math"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	cases := map[string]Type{
		"i1":     I1,
		"i32":    I32,
		"i128":   IntType{Bits: 128},
		"half":   Half,
		"float":  Float,
		"double": Double,
		"void":   Void,
		"label":  Label,
		"ptr":    Ptr,
	}
	for name, want := range cases {
		got, ok := ParseType(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
		assert.Equal(t, name, got.String())
	}

	for _, bad := range []string{"i0", "i1025", "int", "i", "f64"} {
		_, ok := ParseType(bad)
		assert.False(t, ok, bad)
	}
}

func TestIntConstNormalisation(t *testing.T) {
	fn := NewFunction("f", I32)

	minusOne := fn.ConstIntBig(I8, big.NewInt(-1))
	assert.Equal(t, uint64(255), minusOne.ZExtValue())
	assert.Equal(t, int64(-1), minusOne.SExtValue().Int64())
	assert.Equal(t, "-1", minusOne.Ref())

	wrapped := fn.ConstInt(I8, 256)
	assert.True(t, wrapped.IsZero())

	one := fn.ConstInt(I32, 1)
	assert.True(t, one.IsOne())
	assert.False(t, one.IsZero())

	assert.Equal(t, "true", fn.ConstInt(I1, 1).Ref())
	assert.Equal(t, "false", fn.ConstInt(I1, 0).Ref())
}

func TestIntConstWideZExt(t *testing.T) {
	fn := NewFunction("f", I32)

	// 2^64 + 5 keeps only its low 64 bits
	v := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 64), big.NewInt(5))
	c := fn.ConstIntBig(IntType{Bits: 128}, v)
	assert.Equal(t, uint64(5), c.ZExtValue())
	assert.False(t, c.IsOne())
	assert.Equal(t, v.String(), c.Value().String())
}

func TestConstantsAreInterned(t *testing.T) {
	fn := NewFunction("f", I32)

	assert.Same(t, fn.ConstInt(I32, 0), fn.ConstInt(I32, 0))
	assert.NotSame(t, fn.ConstInt(I32, 0), fn.ConstInt(I64, 0))
	assert.Same(t, fn.ConstFloat(Double, 1.5), fn.ConstFloat(Double, 1.5))
	assert.NotSame(t, fn.ConstFloat(Double, 0), fn.ConstFloat(Double, math.Copysign(0, -1)))
	assert.Same(t, fn.Global("puts"), fn.Global("puts"))

	// An integer zero and a float zero of the same type stay distinct
	assert.NotEqual(t, fn.ConstInt(Double, 0).ID(), fn.ConstFloat(Double, 0).ID())
}

func TestFloatConst(t *testing.T) {
	fn := NewFunction("f", Double)

	assert.True(t, fn.ConstFloat(Double, 0).IsZero())
	assert.True(t, fn.ConstFloat(Double, math.Copysign(0, -1)).IsZero())
	assert.True(t, fn.ConstFloat(Double, 1).IsOne())
	assert.True(t, fn.ConstFloat(Double, -1).IsOne())
	assert.False(t, fn.ConstFloat(Double, 2).IsOne())

	// 32-bit constants are rounded to single precision
	assert.Equal(t, float64(float32(0.1)), fn.ConstFloat(Float, 0.1).Float64())
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "4.0", formatFloat(4))
	assert.Equal(t, "-0.5", formatFloat(-0.5))
	assert.Equal(t, "1e+21", formatFloat(1e21))
	assert.Equal(t, "0x7FF0000000000000", formatFloat(math.Inf(1)))
	assert.Equal(t, "0xFFF0000000000000", formatFloat(math.Inf(-1)))
}

func TestOpcodeNames(t *testing.T) {
	for op := OpAdd; op < opcodeEnd; op++ {
		parsed, ok := ParseOpcode(op.String())
		assert.True(t, ok)
		assert.Equal(t, op, parsed)
	}
	_, ok := ParseOpcode("invalid")
	assert.False(t, ok)

	assert.True(t, OpXor.IsBinary())
	assert.False(t, OpCall.IsBinary())
	assert.True(t, OpBr.IsTerminator())
	assert.Len(t, BinaryOpcodeNames(), 15)
}
