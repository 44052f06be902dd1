package ir

import (
	"math"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestPrintModule(t *testing.T) {
	m := loadExample(t)
	newGoldie(t).Assert(t, "peephole_parsed", []byte(PrintModule(m)))
}

func TestPrintRoundTrip(t *testing.T) {
	first := PrintModule(loadExample(t))
	second := PrintModule(mustParse(t, first))
	assert.Equal(t, first, second)
}

func TestPrintInstructions(t *testing.T) {
	m := mustParse(t, `declare void @sink(ptr)

define i1 @f(i1 %c, float %x, i64 %n) {
  br i1 %c, label %yes, label %no
yes:
  %s = fmul float %x, 0.5
  %h = lshr i64 %n, 0x10
  call void @sink(ptr @f)
  ret i1 true
no:
  ret i1 false
}`)
	fn := m.Function("f")
	require.Len(t, fn.Blocks(), 3)

	var lines []string
	for _, b := range fn.Blocks() {
		for _, inst := range b.Instructions() {
			lines = append(lines, inst.String())
		}
	}
	assert.Equal(t, []string{
		"br i1 %c, label %yes, label %no",
		"%s = fmul float %x, 0.5",
		"%h = lshr i64 %n, 16",
		"call void @sink(ptr @f)",
		"ret i1 true",
		"ret i1 false",
	}, lines)
	assert.Equal(t, "bb0", fn.Blocks()[0].Name)
}

func TestPrintUnnamedValues(t *testing.T) {
	m := NewModule("test")
	fn := NewFunction("f", I32)
	require.NoError(t, m.AddFunction(fn))
	x := fn.AddParam(I32, "")

	entry := fn.NewBlock("")
	sum := fn.NewBinary(OpAdd, x, fn.ConstInt(I32, 0xFFFFFFFF))
	entry.Append(sum)
	entry.Append(fn.NewRet(sum))

	assert.Equal(t, "define i32 @f(i32 %0) {\nbb0:\n  %1 = add i32 %0, -1\n  ret i32 %1\n}\n", fn.String())
	assert.Equal(t, "%1 = add i32 %0, -1", sum.String())
}

func TestPrintNumbersAroundNumericNames(t *testing.T) {
	m := mustParse(t, `declare i32 @g(i32)

define i32 @f(i32 %0) {
entry:
  %2 = add i32 %0, 1
  call i32 @g(i32 %2)
  %r = call i32 @g(i32 %2)
  call i32 @g(i32 %r)
  ret i32 %r
}`)

	first := PrintModule(m)
	assert.Contains(t, first, "  %1 = call i32 @g(i32 %2)\n")
	assert.Contains(t, first, "  %3 = call i32 @g(i32 %r)\n")

	again, diags := ParseModule("printed.ll", first)
	require.Empty(t, diags, "printed IR must read back: %v", diags)
	assert.Equal(t, first, PrintModule(again))
}

func TestPrintSpecialFloats(t *testing.T) {
	m := NewModule("test")
	fn := NewFunction("f", Double)
	require.NoError(t, m.AddFunction(fn))
	entry := fn.NewBlock("entry")
	entry.Append(fn.NewRet(fn.ConstFloat(Double, math.Inf(1))))

	text := PrintModule(m)
	assert.Contains(t, text, "ret double 0x7FF0000000000000")

	// The hex form reads back as the same bit pattern
	again := mustParse(t, text)
	c := retValue(t, again.Function("f")).(*FloatConst)
	assert.Equal(t, fn.ConstFloat(Double, math.Inf(1)).Float64(), c.Float64())
}
