package ir

import (
	"os"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"localopts/internal/errors"
)

func mustParse(t *testing.T, src string) *Module {
	t.Helper()
	m, diags := ParseModule("test.ll", src)
	require.False(t, errors.HasErrors(diags), "unexpected diagnostics:\n%s", spew.Sdump(diags))
	return m
}

// loadExample parses the sample module shipped in examples/
func loadExample(t *testing.T) *Module {
	t.Helper()
	src, err := os.ReadFile("../../examples/peephole.ll")
	require.NoError(t, err)
	return mustParse(t, string(src))
}

func runFunctionPass(m *Module, pass FunctionPass) bool {
	changed := false
	for _, fn := range m.Functions() {
		if !fn.IsDeclaration() && pass.RunOnFunction(fn) {
			changed = true
		}
	}
	return changed
}

// checkUseLists verifies that every live value's user list matches the
// operand slots of the instructions attached to the function.
func checkUseLists(t *testing.T, fn *Function) {
	t.Helper()

	expected := make(map[ValueID]int)
	for _, b := range fn.Blocks() {
		for inst := b.First(); inst != nil; inst = inst.Next() {
			for n := 0; n < inst.NumOperands(); n++ {
				id := inst.OperandID(n)
				require.NotNil(t, fn.Value(id), "%s uses erased value %d", inst, id)
				expected[id]++
			}
		}
	}

	for id, v := range fn.values {
		if v == nil {
			continue
		}
		users := v.Users()
		assert.Equal(t, expected[ValueID(id)], len(users), "user list of %s: %s", v.Ref(), spew.Sdump(users))
		for _, u := range users {
			user := fn.Instruction(u)
			if assert.NotNil(t, user, "%s has dangling user %d", v.Ref(), u) {
				assert.NotNil(t, user.Block(), "%s is used by detached %s", v.Ref(), user.Ref())
			}
		}
	}
}

func opcodes(b *BasicBlock) []Opcode {
	var ops []Opcode
	for inst := b.First(); inst != nil; inst = inst.Next() {
		ops = append(ops, inst.Opcode())
	}
	return ops
}

// retValue returns the operand of the function's final ret
func retValue(t *testing.T, fn *Function) Value {
	t.Helper()
	blocks := fn.Blocks()
	term := blocks[len(blocks)-1].Terminator()
	require.NotNil(t, term)
	require.Equal(t, OpRet, term.Opcode())
	require.Equal(t, 1, term.NumOperands())
	return term.Operand(0)
}
