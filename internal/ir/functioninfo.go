package ir

import (
	"fmt"
	"io"
	"os"
)

// FunctionInfoName is the registry name of FunctionInfo
const FunctionInfoName = "function-info"

// FunctionInfo prints a summary of every function in the module. It never
// modifies the IR.
type FunctionInfo struct {
	Out io.Writer
}

func (FunctionInfo) Name() string            { return FunctionInfoName }
func (FunctionInfo) Description() string     { return "Function Information" }
func (FunctionInfo) PreservesAnalyses() bool { return true }

func (p *FunctionInfo) RunOnModule(m *Module) bool {
	out := p.Out
	if out == nil {
		out = os.Stdout
	}

	for _, fn := range m.Functions() {
		fmt.Fprintf(out, "Function Name: %s\n", fn.Name)
		if fn.Variadic {
			fmt.Fprintf(out, "Number of Arguments: *\n")
		} else {
			fmt.Fprintf(out, "Number of Arguments: %d\n", len(fn.Params()))
		}
		fmt.Fprintf(out, "Number OF BBs: %d\n", len(fn.Blocks()))
		fmt.Fprintf(out, "Number of Instructions %d\n", fn.InstructionCount())
		fmt.Fprintf(out, "Number of Calls: %d\n", countCalls(m, fn))
		fmt.Fprintf(out, "-----------------\n")
	}
	return false
}

// countCalls counts the uses of fn whose user is a call instruction
func countCalls(m *Module, fn *Function) int {
	n := 0
	for _, user := range m.Uses(fn) {
		if user.Opcode() == OpCall {
			n++
		}
	}
	return n
}
