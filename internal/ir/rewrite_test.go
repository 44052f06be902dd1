package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildChain creates @f(i32 %x) { %a = add %x, %x; %b = mul %a, %a; ret %b }
func buildChain(t *testing.T) (*Function, *Argument, *Instruction, *Instruction) {
	t.Helper()
	m := NewModule("test")
	fn := NewFunction("f", I32)
	require.NoError(t, m.AddFunction(fn))
	x := fn.AddParam(I32, "x")

	entry := fn.NewBlock("entry")
	a := fn.NewBinary(OpAdd, x, x)
	a.SetName("a")
	entry.Append(a)
	b := fn.NewBinary(OpMul, a, a)
	b.SetName("b")
	entry.Append(b)
	entry.Append(fn.NewRet(b))
	return fn, x, a, b
}

func TestReplaceAndErase(t *testing.T) {
	fn, x, a, b := buildChain(t)
	require.Len(t, a.Users(), 2)

	fn.ReplaceAndErase(a, x)

	assert.True(t, a.IsErased())
	assert.Nil(t, a.Block())
	assert.Nil(t, fn.Value(a.ID()), "erased handles resolve to nil")
	assert.Equal(t, x.ID(), b.OperandID(0))
	assert.Equal(t, x.ID(), b.OperandID(1))
	assert.Len(t, x.Users(), 2)
	assert.Equal(t, []Opcode{OpMul, OpRet}, opcodes(fn.Blocks()[0]))
	checkUseLists(t, fn)
}

func TestReplaceAndEraseTypeMismatch(t *testing.T) {
	fn, _, a, _ := buildChain(t)

	assert.PanicsWithValue(t,
		"localopts: replacement 0 of type i64 does not match %a of type i32",
		func() { fn.ReplaceAndErase(a, fn.ConstInt(I64, 0)) })

	// Nothing was touched
	assert.False(t, a.IsErased())
	assert.Len(t, a.Users(), 2)
	checkUseLists(t, fn)
}

func TestEraseWithUsersPanics(t *testing.T) {
	fn, _, a, _ := buildChain(t)
	assert.Panics(t, func() { fn.Erase(a) })
	assert.False(t, a.IsErased())
}

func TestReplaceInPlace(t *testing.T) {
	fn, x, a, b := buildChain(t)

	shl := fn.NewBinary(OpShl, x, fn.ConstInt(I32, 1))
	fn.ReplaceInPlace(a, shl)

	entry := fn.Blocks()[0]
	assert.Equal(t, []Opcode{OpShl, OpMul, OpRet}, opcodes(entry))
	assert.Same(t, shl, entry.First())
	assert.Equal(t, "a", shl.Name(), "the replacement inherits the old name")
	assert.Equal(t, shl.ID(), b.OperandID(0))
	assert.Equal(t, shl.ID(), b.OperandID(1))
	assert.True(t, a.IsErased())
	checkUseLists(t, fn)
}

func TestReplaceInPlaceKeepsOwnName(t *testing.T) {
	fn, x, _, b := buildChain(t)

	sub := fn.NewBinary(OpSub, x, x)
	sub.SetName("fresh")
	fn.ReplaceInPlace(b, sub)

	assert.Equal(t, "fresh", sub.Name())
	ret := fn.Blocks()[0].Last()
	assert.Equal(t, sub.ID(), ret.OperandID(0))
	checkUseLists(t, fn)
}

func TestReplaceInPlaceRejectsAttached(t *testing.T) {
	fn, _, a, b := buildChain(t)
	assert.Panics(t, func() { fn.ReplaceInPlace(b, a) })
}

func TestReplaceAllUsesWithSelfPanics(t *testing.T) {
	fn, _, a, _ := buildChain(t)
	assert.Panics(t, func() { fn.ReplaceAllUsesWith(a, a) })
}

func TestBlockLinkedList(t *testing.T) {
	fn, x, a, b := buildChain(t)
	entry := fn.Blocks()[0]

	first := fn.NewBinary(OpXor, x, x)
	entry.InsertBefore(first, a)

	assert.Equal(t, 4, entry.Len())
	assert.Same(t, first, entry.First())
	assert.Same(t, a, first.Next())
	assert.Same(t, first, a.Prev())
	assert.Nil(t, first.Prev())
	assert.Equal(t, OpRet, entry.Terminator().Opcode())

	insts := entry.Instructions()
	require.Len(t, insts, 4)
	assert.Same(t, b, insts[2])
}

func TestOperandsMustBelongToFunction(t *testing.T) {
	f := NewFunction("f", I32)
	g := NewFunction("g", I32)
	x := f.AddParam(I32, "x")
	assert.Panics(t, func() { g.NewBinary(OpAdd, x, x) })
}
