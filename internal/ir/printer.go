package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Printer provides pretty-printing for IR in the same textual form the
// reader accepts
type Printer struct {
	indent int
	output strings.Builder

	// Numbers given to unnamed values of the function being printed
	slots map[ValueID]string
}

// NewPrinter creates a new IR printer
func NewPrinter() *Printer {
	return &Printer{indent: 0}
}

// Print returns the string representation of an IR module
func Print(m *Module) string {
	p := NewPrinter()
	p.printModule(m)
	return p.output.String()
}

// Helper methods

func (p *Printer) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.output.WriteString("  ")
	}
}

func (p *Printer) writeLine(format string, args ...interface{}) {
	p.writeIndent()
	p.output.WriteString(fmt.Sprintf(format, args...))
	p.output.WriteString("\n")
}

func (p *Printer) write(format string, args ...interface{}) {
	p.output.WriteString(fmt.Sprintf(format, args...))
}

// printModule prints every function separated by a blank line
func (p *Printer) printModule(m *Module) {
	for i, fn := range m.Functions() {
		if i > 0 {
			p.writeLine("")
		}
		p.printFunction(fn)
	}
}

// printFunction prints a definition with its blocks, or a declaration
func (p *Printer) printFunction(fn *Function) {
	p.number(fn)
	params := make([]string, 0, len(fn.Params())+1)
	for _, arg := range fn.Params() {
		if fn.IsDeclaration() {
			params = append(params, arg.Type().String())
		} else {
			params = append(params, arg.Type().String()+" "+p.ref(arg))
		}
	}
	if fn.Variadic {
		params = append(params, "...")
	}

	if fn.IsDeclaration() {
		p.writeLine("declare %s @%s(%s)", fn.Result, fn.Name, strings.Join(params, ", "))
		return
	}

	p.writeLine("define %s @%s(%s) {", fn.Result, fn.Name, strings.Join(params, ", "))
	for _, b := range fn.Blocks() {
		p.writeLine("%s:", b.Name)
		p.indent++
		for inst := b.First(); inst != nil; inst = inst.Next() {
			p.writeIndent()
			p.printInstruction(inst)
			p.write("\n")
		}
		p.indent--
	}
	p.writeLine("}")
}

// printInstruction prints a single instruction without indentation or newline
func (p *Printer) printInstruction(inst *Instruction) {
	if inst.HasResult() {
		p.write("%s = ", p.ref(inst))
	}

	switch op := inst.Opcode(); {
	case op.IsBinary():
		p.write("%s %s %s, %s", op, inst.Type(), p.operand(inst, 0), p.operand(inst, 1))
	case op == OpCall:
		args := make([]string, 0, inst.NumOperands()-1)
		for n := 1; n < inst.NumOperands(); n++ {
			args = append(args, p.typedOperand(inst, n))
		}
		p.write("call %s %s(%s)", inst.Type(), p.operand(inst, 0), strings.Join(args, ", "))
	case op == OpRet:
		if inst.NumOperands() == 0 {
			p.write("ret void")
		} else {
			p.write("ret %s", p.typedOperand(inst, 0))
		}
	case op == OpBr:
		targets := inst.Targets()
		if inst.NumOperands() == 0 {
			p.write("br label %%%s", targets[0].Name)
		} else {
			p.write("br %s, label %%%s, label %%%s", p.typedOperand(inst, 0), targets[0].Name, targets[1].Name)
		}
	default:
		p.write("<%s>", op)
	}
}

func (p *Printer) operand(inst *Instruction, n int) string {
	v := inst.Operand(n)
	if v == nil {
		return fmt.Sprintf("<erased %d>", inst.OperandID(n))
	}
	return p.ref(v)
}

func (p *Printer) typedOperand(inst *Instruction, n int) string {
	v := inst.Operand(n)
	if v == nil {
		return p.operand(inst, n)
	}
	return v.Type().String() + " " + p.ref(v)
}

// number assigns %0, %1, ... to the unnamed arguments and results of fn in
// layout order, skipping numbers the function already uses as names.
func (p *Printer) number(fn *Function) {
	taken := make(map[string]bool)
	for _, arg := range fn.Params() {
		taken[arg.Name()] = true
	}
	for _, b := range fn.Blocks() {
		for inst := b.First(); inst != nil; inst = inst.Next() {
			taken[inst.Name()] = true
		}
	}

	p.slots = make(map[ValueID]string)
	next := 0
	assign := func(v Value) {
		if v.Name() != "" {
			return
		}
		for taken[strconv.Itoa(next)] {
			next++
		}
		p.slots[v.ID()] = "%" + strconv.Itoa(next)
		next++
	}
	for _, arg := range fn.Params() {
		assign(arg)
	}
	for _, b := range fn.Blocks() {
		for inst := b.First(); inst != nil; inst = inst.Next() {
			if inst.HasResult() {
				assign(inst)
			}
		}
	}
}

// ref renders an operand, using the printed number for unnamed values
func (p *Printer) ref(v Value) string {
	if slot, ok := p.slots[v.ID()]; ok {
		return slot
	}
	return v.Ref()
}
