package ir

import (
	"fmt"
	"math"
	"math/big"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"
	"github.com/oleiade/lane"

	"localopts/grammar"
	"localopts/internal/errors"
)

// Builder converts a parsed grammar.Module into IR
type Builder struct {
	module *Module
	errors []errors.CompilerError

	// Per-function state
	currentFunc *Function
	values      map[string]Value
	labels      map[string]*BasicBlock

	// Layout position of each instruction and the instruction whose
	// operands are being resolved
	order map[ValueID]int
	user  *Instruction

	// Operands are resolved after every name in the function is known,
	// so instructions may refer to values defined further down.
	fixups *lane.Queue
}

// fixup resolves the operands of one instruction shell
type fixup struct {
	inst *Instruction
	src  *grammar.Inst
}

// NewBuilder creates a new IR builder for a module called name
func NewBuilder(name string) *Builder {
	return &Builder{
		module: NewModule(name),
		fixups: lane.NewQueue(),
	}
}

// Build lowers src into a module. The module is only usable when the
// returned diagnostics contain no errors.
func Build(filename string, src *grammar.Module) (*Module, []errors.CompilerError) {
	b := NewBuilder(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	return b.Build(src)
}

// Build lowers src into the builder's module
func (b *Builder) Build(src *grammar.Module) (*Module, []errors.CompilerError) {
	// Declare every function first so calls can reference any of them
	bodies := make(map[*Function]*grammar.Function)
	for _, gf := range src.Functions {
		fn := b.declareFunction(gf)
		if fn != nil && gf.Body != nil {
			bodies[fn] = gf
		}
	}

	for _, fn := range b.module.Functions() {
		if gf, ok := bodies[fn]; ok {
			b.buildBody(fn, gf)
		}
	}
	return b.module, b.errors
}

func (b *Builder) report(err errors.CompilerError) {
	b.errors = append(b.errors, err)
}

func position(pos lexer.Position) errors.Position {
	return errors.Position{Filename: pos.Filename, Line: pos.Line, Column: pos.Column}
}

func (b *Builder) resolveType(t *grammar.Type) (Type, bool) {
	typ, ok := ParseType(t.Name)
	if !ok {
		b.report(errors.UnknownType(t.Name, position(t.Pos), KnownTypeNames))
	}
	return typ, ok
}

func (b *Builder) declareFunction(gf *grammar.Function) *Function {
	name := strings.TrimPrefix(gf.Name, "@")
	result, ok := b.resolveType(gf.Result)
	if !ok {
		return nil
	}

	switch {
	case gf.Kind == "declare" && gf.Body != nil:
		b.report(errors.InvalidOperands(fmt.Sprintf("declaration of '@%s' cannot have a body", name), position(gf.Pos)))
	case gf.Kind == "define" && gf.Body == nil:
		b.report(errors.EmptyFunction(name, position(gf.Pos)))
	}

	fn := NewFunction(name, result)
	for i, param := range gf.Params {
		if param.Variadic {
			if i != len(gf.Params)-1 {
				b.report(errors.InvalidOperands("'...' must be the last parameter", position(param.Pos)))
			}
			fn.Variadic = true
			continue
		}
		typ, ok := b.resolveType(param.Type)
		if !ok {
			continue
		}
		fn.AddParam(typ, strings.TrimPrefix(param.Name, "%"))
	}

	if err := b.module.AddFunction(fn); err != nil {
		b.report(errors.DuplicateDefinition("function", gf.Name, position(gf.Pos)))
		return nil
	}
	return fn
}

func (b *Builder) buildBody(fn *Function, gf *grammar.Function) {
	b.currentFunc = fn
	b.values = make(map[string]Value)
	b.labels = make(map[string]*BasicBlock)
	b.order = make(map[ValueID]int)

	for _, arg := range fn.Params() {
		if arg.Name() == "" {
			continue
		}
		if _, exists := b.values[arg.Name()]; exists {
			b.report(errors.DuplicateDefinition("value", "%"+arg.Name(), position(gf.Pos)))
			continue
		}
		b.values[arg.Name()] = arg
	}

	// Blocks first, so branches can target labels further down
	for _, item := range gf.Body.Items {
		if item.Label == nil {
			continue
		}
		if _, exists := b.labels[*item.Label]; exists {
			b.report(errors.DuplicateDefinition("label", *item.Label, position(item.Pos)))
			continue
		}
		b.labels[*item.Label] = nil
	}

	var block *BasicBlock
	for _, item := range gf.Body.Items {
		if item.Label != nil {
			if b.labels[*item.Label] == nil {
				block = fn.NewBlock(*item.Label)
				b.labels[*item.Label] = block
			}
			continue
		}
		if block == nil {
			block = fn.NewBlock("")
		}
		if inst := b.createShell(item.Inst); inst != nil {
			block.Append(inst)
			b.order[inst.ID()] = len(b.order)
			b.fixups.Enqueue(fixup{inst: inst, src: item.Inst})
		}
	}

	for !b.fixups.Empty() {
		f := b.fixups.Dequeue().(fixup)
		b.resolveOperands(f.inst, f.src)
	}
}

// createShell creates an instruction with its opcode, type and name but
// no operands yet, and registers the name in the function scope.
func (b *Builder) createShell(src *grammar.Inst) *Instruction {
	var (
		op  Opcode
		typ Type
		ok  bool
	)

	switch {
	case src.Binary != nil:
		op, ok = ParseOpcode(src.Binary.Opcode)
		if !ok || !op.IsBinary() {
			known := append(BinaryOpcodeNames(), "call", "ret", "br")
			b.report(errors.UnknownOpcode(src.Binary.Opcode, position(src.Binary.Pos), known))
			return nil
		}
		if typ, ok = b.resolveType(src.Binary.Type); !ok {
			return nil
		}
		if !b.checkArithmeticType(op, typ, src.Binary.Type.Pos) {
			return nil
		}
	case src.Call != nil:
		op = OpCall
		if typ, ok = b.resolveType(src.Call.Type); !ok {
			return nil
		}
	case src.Ret != nil:
		op, typ = OpRet, Void
	case src.Br != nil:
		op, typ = OpBr, Void
	default:
		return nil
	}

	inst := b.currentFunc.newInstruction(op, typ)
	if src.Result == "" {
		return inst
	}

	name := strings.TrimPrefix(src.Result, "%")
	if typ == Void {
		b.report(errors.InvalidOperands(fmt.Sprintf("instruction defining '%s' does not produce a value", src.Result), position(src.Pos)))
		return inst
	}
	if _, exists := b.values[name]; exists {
		b.report(errors.DuplicateDefinition("value", src.Result, position(src.Pos)))
		return inst
	}
	inst.SetName(name)
	b.values[name] = inst
	return inst
}

// checkArithmeticType enforces the operand class of an opcode. Shifts and
// bitwise ops also accept float types, which strength reduction produces.
func (b *Builder) checkArithmeticType(op Opcode, typ Type, pos lexer.Position) bool {
	switch {
	case op.IsFloatArith() && !IsFloat(typ):
		b.report(errors.TypeMismatch("floating point type", typ.String(), position(pos)))
		return false
	case op >= OpAdd && op <= OpSDiv && !IsInteger(typ):
		b.report(errors.TypeMismatch("integer type", typ.String(), position(pos)))
		return false
	case !IsInteger(typ) && !IsFloat(typ):
		b.report(errors.TypeMismatch("integer or floating point type", typ.String(), position(pos)))
		return false
	}
	return true
}

func (b *Builder) resolveOperands(inst *Instruction, src *grammar.Inst) {
	b.user = inst
	defer func() { b.user = nil }()

	switch {
	case src.Binary != nil:
		for _, operand := range []*grammar.Operand{src.Binary.X, src.Binary.Y} {
			if v := b.resolveOperand(inst.Type(), operand); v != nil {
				inst.addOperand(v)
			}
		}
	case src.Call != nil:
		b.resolveCall(inst, src.Call)
	case src.Ret != nil:
		b.resolveRet(inst, src.Ret)
	case src.Br != nil:
		b.resolveBr(inst, src.Br)
	}
}

func (b *Builder) resolveCall(inst *Instruction, call *grammar.CallInst) {
	name := strings.TrimPrefix(call.Callee, "@")
	callee := b.module.Function(name)
	if callee == nil {
		b.report(errors.UndefinedFunction(name, position(call.Pos), b.module.FunctionNames()))
		return
	}
	inst.addOperand(b.currentFunc.Global(name))

	if callee.Result != inst.Type() {
		b.report(errors.TypeMismatch(callee.Result.String(), inst.Type().String(), position(call.Type.Pos)))
	}

	params := callee.Params()
	if len(call.Args) < len(params) || (!callee.Variadic && len(call.Args) != len(params)) {
		b.report(errors.InvalidOperands(fmt.Sprintf("function '@%s' expects %d arguments, got %d",
			name, len(params), len(call.Args)), position(call.Pos)))
		return
	}

	for i, arg := range call.Args {
		typ, ok := b.resolveType(arg.Type)
		if !ok {
			continue
		}
		if i < len(params) && params[i].Type() != typ {
			b.report(errors.TypeMismatch(params[i].Type().String(), typ.String(), position(arg.Pos)))
			continue
		}
		if v := b.resolveOperand(typ, arg.Value); v != nil {
			inst.addOperand(v)
		}
	}
}

func (b *Builder) resolveRet(inst *Instruction, ret *grammar.RetInst) {
	typ, ok := b.resolveType(ret.Type)
	if !ok {
		return
	}
	if typ != b.currentFunc.Result {
		b.report(errors.TypeMismatch(b.currentFunc.Result.String(), typ.String(), position(ret.Type.Pos)))
		return
	}

	switch {
	case typ == Void && ret.Value != nil:
		b.report(errors.InvalidOperands("'ret void' takes no operand", position(ret.Value.Pos)))
	case typ != Void && ret.Value == nil:
		b.report(errors.InvalidOperands(fmt.Sprintf("'ret %s' needs an operand", typ), position(ret.Pos)))
	case ret.Value != nil:
		if v := b.resolveOperand(typ, ret.Value); v != nil {
			inst.addOperand(v)
		}
	}
}

func (b *Builder) resolveBr(inst *Instruction, br *grammar.BrInst) {
	targets := br.Targets
	switch len(targets) {
	case 1:
	case 3:
		typ, ok := b.resolveType(targets[0].Type)
		if !ok {
			return
		}
		if typ != I1 {
			b.report(errors.TypeMismatch("i1", typ.String(), position(targets[0].Pos)))
			return
		}
		cond := b.resolveOperand(typ, targets[0].Value)
		if cond == nil {
			return
		}
		inst.addOperand(cond)
		targets = targets[1:]
	default:
		b.report(errors.InvalidOperands("br takes either one label or a condition and two labels", position(br.Pos)))
		return
	}

	for _, target := range targets {
		if block := b.resolveLabel(target); block != nil {
			inst.targets = append(inst.targets, block)
		}
	}
}

func (b *Builder) resolveLabel(target *grammar.TypedOperand) *BasicBlock {
	if target.Type.Name != "label" || target.Value.Local == nil {
		b.report(errors.TypeMismatch("label", target.Type.Name, position(target.Pos)))
		return nil
	}
	name := strings.TrimPrefix(*target.Value.Local, "%")
	block := b.labels[name]
	if block == nil {
		known := make([]string, 0, len(b.labels))
		for label := range b.labels {
			known = append(known, label)
		}
		b.report(errors.UndefinedLabel(name, position(target.Value.Pos), known))
	}
	return block
}

// resolveOperand turns an operand into a value of type typ
func (b *Builder) resolveOperand(typ Type, op *grammar.Operand) Value {
	fn := b.currentFunc
	pos := position(op.Pos)

	switch {
	case op.Local != nil:
		name := strings.TrimPrefix(*op.Local, "%")
		v, ok := b.values[name]
		if !ok {
			known := make([]string, 0, len(b.values))
			for n := range b.values {
				known = append(known, n)
			}
			b.report(errors.UndefinedValue(name, pos, known))
			return nil
		}
		if v.Type() != typ {
			b.report(errors.TypeMismatch(typ.String(), v.Type().String(), pos))
			return nil
		}
		if def, ok := v.(*Instruction); ok && b.user != nil && def.Block() == b.user.Block() &&
			b.order[def.ID()] >= b.order[b.user.ID()] {
			b.report(errors.UseBeforeDefinition(name, pos))
			return nil
		}
		return v

	case op.Global != nil:
		name := strings.TrimPrefix(*op.Global, "@")
		if b.module.Function(name) == nil {
			b.report(errors.UndefinedFunction(name, pos, b.module.FunctionNames()))
			return nil
		}
		if typ != Ptr {
			b.report(errors.TypeMismatch(typ.String(), Ptr.String(), pos))
			return nil
		}
		return fn.Global(name)

	case op.Int != nil:
		return b.intLiteral(typ, *op.Int, pos)

	case op.Float != nil:
		if !IsFloat(typ) {
			b.report(errors.InvalidLiteral(*op.Float, typ.String(), pos))
			return nil
		}
		v, err := strconv.ParseFloat(*op.Float, 64)
		if err != nil {
			b.report(errors.InvalidLiteral(*op.Float, typ.String(), pos))
			return nil
		}
		return fn.ConstFloat(typ, v)

	case op.Bool != nil:
		if typ != I1 {
			b.report(errors.InvalidLiteral(*op.Bool, typ.String(), pos))
			return nil
		}
		if *op.Bool == "true" {
			return fn.ConstInt(I1, 1)
		}
		return fn.ConstInt(I1, 0)
	}
	return nil
}

// intLiteral parses decimal or 0x-prefixed hex text. For float types a hex
// literal is the IEEE double bit pattern and a decimal one is converted.
func (b *Builder) intLiteral(typ Type, text string, pos errors.Position) Value {
	fn := b.currentFunc

	digits, neg := strings.CutPrefix(text, "-")
	digits = strings.TrimPrefix(digits, "+")
	base := 10
	if hex, ok := strings.CutPrefix(digits, "0x"); ok {
		digits, base = hex, 16
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		b.report(errors.InvalidLiteral(text, typ.String(), pos))
		return nil
	}
	if neg {
		v.Neg(v)
	}

	switch t := typ.(type) {
	case IntType:
		lo := new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), uint(t.Bits-1)))
		hi := new(big.Int).Lsh(big.NewInt(1), uint(t.Bits))
		if v.Cmp(lo) < 0 || v.Cmp(hi) >= 0 {
			b.report(errors.InvalidLiteral(text, typ.String(), pos))
			return nil
		}
		return fn.ConstIntBig(typ, v)
	case FloatType:
		if base == 16 {
			if neg || !v.IsUint64() {
				b.report(errors.InvalidLiteral(text, typ.String(), pos))
				return nil
			}
			return fn.ConstFloat(typ, math.Float64frombits(v.Uint64()))
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return fn.ConstFloat(typ, f)
	default:
		b.report(errors.InvalidLiteral(text, typ.String(), pos))
		return nil
	}
}
