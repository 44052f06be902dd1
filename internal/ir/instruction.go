package ir

// Instruction is an operation inside a basic block. It is itself a value;
// its result type equals the type of its first operand for binary ops.
//
// Call instructions keep the callee as operand 0 followed by the
// arguments. A conditional branch keeps its condition as operand 0 and
// its destinations in Targets.
type Instruction struct {
	valueBase
	op       Opcode
	operands []ValueID
	targets  []*BasicBlock

	fn         *Function
	block      *BasicBlock
	prev, next ValueID
	erased     bool
}

func (i *Instruction) Kind() ValueKind { return KindInstruction }

// Opcode returns the operation performed by the instruction
func (i *Instruction) Opcode() Opcode { return i.op }

// Function returns the function owning the instruction's arena slot
func (i *Instruction) Function() *Function { return i.fn }

// Block returns the containing block, or nil when detached or erased
func (i *Instruction) Block() *BasicBlock { return i.block }

// IsErased reports whether the instruction has been removed from its function
func (i *Instruction) IsErased() bool { return i.erased }

// NumOperands returns the length of the operand list
func (i *Instruction) NumOperands() int { return len(i.operands) }

// OperandID returns the handle stored in operand slot n
func (i *Instruction) OperandID(n int) ValueID { return i.operands[n] }

// Operand resolves operand slot n
func (i *Instruction) Operand(n int) Value { return i.fn.Value(i.operands[n]) }

// Operands resolves the whole operand list
func (i *Instruction) Operands() []Value {
	ops := make([]Value, len(i.operands))
	for n, id := range i.operands {
		ops[n] = i.fn.Value(id)
	}
	return ops
}

// Callee returns the called symbol of a call instruction
func (i *Instruction) Callee() *GlobalRef {
	if i.op != OpCall {
		return nil
	}
	g, _ := i.Operand(0).(*GlobalRef)
	return g
}

// Args returns the call arguments
func (i *Instruction) Args() []Value {
	if i.op != OpCall || len(i.operands) == 0 {
		return nil
	}
	return i.Operands()[1:]
}

// Targets returns the destinations of a branch
func (i *Instruction) Targets() []*BasicBlock { return i.targets }

// Next returns the following instruction in the block, or nil at the end
func (i *Instruction) Next() *Instruction {
	if i.block == nil || i.next == 0 {
		return nil
	}
	return i.fn.Instruction(i.next)
}

// Prev returns the preceding instruction in the block, or nil at the start
func (i *Instruction) Prev() *Instruction {
	if i.block == nil || i.prev == 0 {
		return nil
	}
	return i.fn.Instruction(i.prev)
}

// SetName renames the value the instruction defines
func (i *Instruction) SetName(name string) { i.name = name }

// HasResult reports whether the instruction defines a usable value
func (i *Instruction) HasResult() bool { return i.typ != Void }

func (i *Instruction) Ref() string { return i.localRef() }

// String prints the instruction in textual IR form
func (i *Instruction) String() string {
	p := NewPrinter()
	if !i.erased {
		p.number(i.fn)
	}
	p.printInstruction(i)
	return p.output.String()
}

// setOperand rebinds slot n, keeping both user lists consistent
func (i *Instruction) setOperand(n int, v Value) {
	if old := i.fn.Value(i.operands[n]); old != nil {
		old.base().removeUser(i.id)
	}
	i.operands[n] = v.ID()
	v.base().addUser(i.id)
}

func (i *Instruction) addOperand(v Value) {
	i.operands = append(i.operands, v.ID())
	v.base().addUser(i.id)
}

// dropOperands releases every use held by the instruction
func (i *Instruction) dropOperands() {
	for _, id := range i.operands {
		if v := i.fn.Value(id); v != nil {
			v.base().removeUser(i.id)
		}
	}
	i.operands = nil
	i.targets = nil
}
