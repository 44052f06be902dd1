package grammar

import "github.com/alecthomas/participle/v2/lexer"

type Module struct {
	Pos       lexer.Position
	Functions []*Function `@@*`
}

type Function struct {
	Pos    lexer.Position
	Kind   string   `@("define" | "declare")`
	Result *Type    `@@`
	Name   string   `@Global`
	Params []*Param `"(" [ @@ { "," @@ } ] ")"`
	Body   *Body    `[ @@ ]`
}

type Param struct {
	Pos      lexer.Position
	Variadic bool   `  @"..."`
	Type     *Type  `| @@`
	Name     string `  @Local?`
}

type Type struct {
	Pos  lexer.Position
	Name string `@Ident`
}

type Body struct {
	Items []*BodyItem `"{" @@* "}"`
}

// BodyItem is either a block label or an instruction. Instructions that
// precede the first label belong to an implicit entry block.
type BodyItem struct {
	Pos   lexer.Position
	Label *string `  @Ident ":"`
	Inst  *Inst   `| @@`
}

type Inst struct {
	Pos    lexer.Position
	Result string      `[ @Local "=" ]`
	Call   *CallInst   `(  @@`
	Ret    *RetInst    ` | @@`
	Br     *BrInst     ` | @@`
	Binary *BinaryInst ` | @@ )`
}

type CallInst struct {
	Pos    lexer.Position
	Type   *Type           `"call" @@`
	Callee string          `@Global`
	Args   []*TypedOperand `"(" [ @@ { "," @@ } ] ")"`
}

type RetInst struct {
	Pos   lexer.Position
	Type  *Type    `"ret" @@`
	Value *Operand `[ @@ ]`
}

type BrInst struct {
	Pos     lexer.Position
	Targets []*TypedOperand `"br" @@ { "," @@ }`
}

type BinaryInst struct {
	Pos    lexer.Position
	Opcode string   `@Ident`
	Type   *Type    `@@`
	X      *Operand `@@ ","`
	Y      *Operand `@@`
}

type TypedOperand struct {
	Pos   lexer.Position
	Type  *Type    `@@`
	Value *Operand `@@`
}

type Operand struct {
	Pos    lexer.Position
	Local  *string `  @Local`
	Global *string `| @Global`
	Float  *string `| @Float`
	Int    *string `| @Int`
	Bool   *string `| @("true" | "false")`
}
