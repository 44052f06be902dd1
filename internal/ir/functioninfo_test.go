package ir

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionInfo(t *testing.T) {
	m := loadExample(t)
	before := PrintModule(m)

	var out bytes.Buffer
	assert.False(t, (&FunctionInfo{Out: &out}).RunOnModule(m))

	newGoldie(t).Assert(t, "function_info", out.Bytes())
	assert.Equal(t, before, PrintModule(m), "function-info must not modify the module")
}

func TestFunctionInfoCountsEveryCallSite(t *testing.T) {
	m := mustParse(t, `declare void @log(ptr)

define void @helper() {
  ret void
}

define void @main() {
entry:
  call void @helper()
  call void @helper()
  call void @log(ptr @helper)
  br label %next
next:
  call void @helper()
  ret void
}

define void @other() {
  call void @helper()
  ret void
}`)

	assert.Equal(t, 5, countCalls(m, m.Function("helper")))
	assert.Equal(t, 1, countCalls(m, m.Function("log")))
	assert.Equal(t, 0, countCalls(m, m.Function("main")))
}

func TestFunctionInfoAfterOptimization(t *testing.T) {
	m := loadExample(t)
	pipeline, err := NewPipeline(NewRegistry(nil), DefaultPasses...)
	require.NoError(t, err)
	pipeline.Run(m)

	var out bytes.Buffer
	(&FunctionInfo{Out: &out}).RunOnModule(m)

	assert.Contains(t, out.String(), "Function Name: identities\nNumber of Arguments: 1\nNumber OF BBs: 1\nNumber of Instructions 1\n")
	assert.Contains(t, out.String(), "Function Name: fold\nNumber of Arguments: 1\nNumber OF BBs: 2\nNumber of Instructions 4\n")
}
