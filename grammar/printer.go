package grammar

import (
	"fmt"
	"strings"
)

func indent(level int) string {
	return strings.Repeat("  ", level)
}

func (m *Module) String() string {
	var b strings.Builder
	for i, f := range m.Functions {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(f.String())
	}
	return b.String()
}

func (f *Function) String() string {
	var b strings.Builder
	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.String()
	}
	b.WriteString(fmt.Sprintf("%s %s %s(%s)", f.Kind, f.Result, f.Name, strings.Join(params, ", ")))
	if f.Body == nil {
		b.WriteString("\n")
		return b.String()
	}
	b.WriteString(" {\n")
	for _, item := range f.Body.Items {
		b.WriteString(item.StringWithIndent(1))
	}
	b.WriteString("}\n")
	return b.String()
}

func (p *Param) String() string {
	if p.Variadic {
		return "..."
	}
	if p.Name != "" {
		return p.Type.String() + " " + p.Name
	}
	return p.Type.String()
}

func (t *Type) String() string {
	if t == nil {
		return "void"
	}
	return t.Name
}

func (item *BodyItem) StringWithIndent(level int) string {
	if item.Label != nil {
		return *item.Label + ":\n"
	}
	return indent(level) + item.Inst.String() + "\n"
}

func (i *Inst) String() string {
	var body string
	switch {
	case i.Call != nil:
		body = i.Call.String()
	case i.Ret != nil:
		body = i.Ret.String()
	case i.Br != nil:
		body = i.Br.String()
	case i.Binary != nil:
		body = i.Binary.String()
	}
	if i.Result != "" {
		return i.Result + " = " + body
	}
	return body
}

func (c *CallInst) String() string {
	return fmt.Sprintf("call %s %s(%s)", c.Type, c.Callee, joinTyped(c.Args))
}

func (r *RetInst) String() string {
	if r.Value == nil {
		return "ret " + r.Type.String()
	}
	return fmt.Sprintf("ret %s %s", r.Type, r.Value)
}

func (br *BrInst) String() string {
	return "br " + joinTyped(br.Targets)
}

func (bin *BinaryInst) String() string {
	return fmt.Sprintf("%s %s %s, %s", bin.Opcode, bin.Type, bin.X, bin.Y)
}

func (t *TypedOperand) String() string {
	return t.Type.String() + " " + t.Value.String()
}

func (o *Operand) String() string {
	switch {
	case o.Local != nil:
		return *o.Local
	case o.Global != nil:
		return *o.Global
	case o.Float != nil:
		return *o.Float
	case o.Int != nil:
		return *o.Int
	case o.Bool != nil:
		return *o.Bool
	}
	return "<nil>"
}

func joinTyped(ops []*TypedOperand) string {
	parts := make([]string, len(ops))
	for i, op := range ops {
		parts[i] = op.String()
	}
	return strings.Join(parts, ", ")
}
