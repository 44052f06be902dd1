package ir

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
)

// Function owns an arena of values addressed by ValueID. Erased
// instructions leave a nil slot behind so stale handles resolve to nil.
type Function struct {
	Name     string
	Result   Type
	Variadic bool

	params []*Argument
	blocks []*BasicBlock
	values []Value
	consts map[constKey]ValueID
	module *Module
}

type constKey struct {
	kind ValueKind
	typ  Type
	lit  string
}

// NewFunction creates a detached function; use Module.AddFunction to attach it
func NewFunction(name string, result Type) *Function {
	return &Function{
		Name:   name,
		Result: result,
		values: []Value{nil},
		consts: make(map[constKey]ValueID),
	}
}

// Module returns the module the function belongs to, if any
func (fn *Function) Module() *Module { return fn.module }

// Params returns the formal parameters
func (fn *Function) Params() []*Argument { return fn.params }

// Blocks returns the basic blocks in layout order
func (fn *Function) Blocks() []*BasicBlock { return fn.blocks }

// IsDeclaration reports whether the function has no body
func (fn *Function) IsDeclaration() bool { return len(fn.blocks) == 0 }

// InstructionCount returns the number of instructions across all blocks
func (fn *Function) InstructionCount() int {
	n := 0
	for _, b := range fn.blocks {
		n += b.Len()
	}
	return n
}

// Value resolves a handle; erased or unknown handles yield nil
func (fn *Function) Value(id ValueID) Value {
	if id <= 0 || int(id) >= len(fn.values) {
		return nil
	}
	return fn.values[id]
}

// Instruction resolves a handle that names an instruction
func (fn *Function) Instruction(id ValueID) *Instruction {
	inst, _ := fn.Value(id).(*Instruction)
	return inst
}

func (fn *Function) register(v Value) ValueID {
	id := ValueID(len(fn.values))
	v.base().id = id
	fn.values = append(fn.values, v)
	return id
}

// AddParam appends a formal parameter
func (fn *Function) AddParam(typ Type, name string) *Argument {
	arg := &Argument{valueBase: valueBase{typ: typ, name: name}, index: len(fn.params)}
	fn.register(arg)
	fn.params = append(fn.params, arg)
	return arg
}

// NewBlock appends an empty block; an empty name gets a generated one
func (fn *Function) NewBlock(name string) *BasicBlock {
	if name == "" {
		name = fmt.Sprintf("bb%d", len(fn.blocks))
	}
	b := &BasicBlock{Name: name, fn: fn}
	fn.blocks = append(fn.blocks, b)
	return b
}

// Block looks up a block by name
func (fn *Function) Block(name string) *BasicBlock {
	for _, b := range fn.blocks {
		if b.Name == name {
			return b
		}
	}
	return nil
}

// ConstInt returns the interned integer constant v of type typ, truncated
// to the type's width.
func (fn *Function) ConstInt(typ Type, v uint64) *IntConst {
	return fn.ConstIntBig(typ, new(big.Int).SetUint64(v))
}

// ConstIntBig returns the interned integer constant v mod 2^width
func (fn *Function) ConstIntBig(typ Type, v *big.Int) *IntConst {
	bits := bitWidth(typ)
	if bits == 0 {
		panic(fmt.Sprintf("localopts: integer constant of non-arithmetic type %s", typ))
	}
	norm := new(big.Int).Mod(v, new(big.Int).Lsh(big.NewInt(1), uint(bits)))

	key := constKey{kind: KindIntConst, typ: typ, lit: norm.String()}
	if id, ok := fn.consts[key]; ok {
		return fn.values[id].(*IntConst)
	}
	c := &IntConst{valueBase: valueBase{typ: typ}, value: norm}
	fn.consts[key] = fn.register(c)
	return c
}

// ConstFloat returns the interned float constant v of type typ. Values of
// 32-bit type are rounded to single precision.
func (fn *Function) ConstFloat(typ Type, v float64) *FloatConst {
	if bitWidth(typ) == 0 {
		panic(fmt.Sprintf("localopts: float constant of non-arithmetic type %s", typ))
	}
	if typ == Float {
		v = float64(float32(v))
	}

	key := constKey{kind: KindFloatConst, typ: typ, lit: strconv.FormatUint(math.Float64bits(v), 16)}
	if id, ok := fn.consts[key]; ok {
		return fn.values[id].(*FloatConst)
	}
	c := &FloatConst{valueBase: valueBase{typ: typ}, value: v}
	fn.consts[key] = fn.register(c)
	return c
}

// Global returns the interned reference to a module-level symbol
func (fn *Function) Global(symbol string) *GlobalRef {
	key := constKey{kind: KindGlobal, typ: Ptr, lit: symbol}
	if id, ok := fn.consts[key]; ok {
		return fn.values[id].(*GlobalRef)
	}
	g := &GlobalRef{valueBase: valueBase{typ: Ptr, name: symbol}}
	fn.consts[key] = fn.register(g)
	return g
}

func (fn *Function) newInstruction(op Opcode, typ Type, operands ...Value) *Instruction {
	inst := &Instruction{valueBase: valueBase{typ: typ}, op: op, fn: fn}
	fn.register(inst)
	for _, v := range operands {
		fn.checkOwned(v)
		inst.addOperand(v)
	}
	return inst
}

func (fn *Function) checkOwned(v Value) {
	if v == nil || fn.Value(v.ID()) != v {
		panic(fmt.Sprintf("localopts: operand does not belong to function @%s", fn.Name))
	}
}

// NewBinary creates a detached two-operand instruction typed after x
func (fn *Function) NewBinary(op Opcode, x, y Value) *Instruction {
	if !op.IsBinary() {
		panic(fmt.Sprintf("localopts: %s is not a binary opcode", op))
	}
	return fn.newInstruction(op, x.Type(), x, y)
}

// NewCall creates a detached call of callee returning result
func (fn *Function) NewCall(result Type, callee *GlobalRef, args ...Value) *Instruction {
	return fn.newInstruction(OpCall, result, append([]Value{callee}, args...)...)
}

// NewRet creates a detached return; v is nil for ret void
func (fn *Function) NewRet(v Value) *Instruction {
	if v == nil {
		return fn.newInstruction(OpRet, Void)
	}
	return fn.newInstruction(OpRet, Void, v)
}

// NewBr creates a detached unconditional branch
func (fn *Function) NewBr(target *BasicBlock) *Instruction {
	inst := fn.newInstruction(OpBr, Void)
	inst.targets = []*BasicBlock{target}
	return inst
}

// NewCondBr creates a detached two-way branch on cond
func (fn *Function) NewCondBr(cond Value, then, els *BasicBlock) *Instruction {
	inst := fn.newInstruction(OpBr, Void, cond)
	inst.targets = []*BasicBlock{then, els}
	return inst
}

// String prints the function in textual IR form
func (fn *Function) String() string {
	p := NewPrinter()
	p.printFunction(fn)
	return p.output.String()
}
