package ir

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
)

// ValueID is a stable handle into a function's value arena. The zero ID
// never names a value.
type ValueID int

// ValueKind discriminates the concrete value variants
type ValueKind int

const (
	KindInstruction ValueKind = iota
	KindIntConst
	KindFloatConst
	KindArgument
	KindGlobal
)

func (k ValueKind) String() string {
	switch k {
	case KindInstruction:
		return "instruction"
	case KindIntConst:
		return "int constant"
	case KindFloatConst:
		return "float constant"
	case KindArgument:
		return "argument"
	case KindGlobal:
		return "global"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Value is anything an instruction can consume as an operand
type Value interface {
	ID() ValueID
	Type() Type
	Kind() ValueKind
	Name() string
	// Users returns one entry per operand slot that references this value
	Users() []ValueID
	// Ref renders the value the way an operand is printed
	Ref() string

	base() *valueBase
}

type valueBase struct {
	id    ValueID
	typ   Type
	name  string
	users []ValueID
}

func (v *valueBase) ID() ValueID      { return v.id }
func (v *valueBase) Type() Type       { return v.typ }
func (v *valueBase) Name() string     { return v.name }
func (v *valueBase) base() *valueBase { return v }

func (v *valueBase) Users() []ValueID {
	users := make([]ValueID, len(v.users))
	copy(users, v.users)
	return users
}

// NumUses returns the number of operand slots referencing the value
func (v *valueBase) NumUses() int { return len(v.users) }

func (v *valueBase) addUser(user ValueID) {
	v.users = append(v.users, user)
}

// removeUser drops a single occurrence of user
func (v *valueBase) removeUser(user ValueID) {
	for i, u := range v.users {
		if u == user {
			v.users = append(v.users[:i], v.users[i+1:]...)
			return
		}
	}
}

// localRef names unnamed values by their arena handle. Printed IR numbers
// them per function instead, see Printer.number.
func (v *valueBase) localRef() string {
	if v.name != "" {
		return "%" + v.name
	}
	return fmt.Sprintf("%%%d", v.id)
}

// IntConst is an integer literal normalised to [0, 2^bits)
type IntConst struct {
	valueBase
	value *big.Int
}

func (c *IntConst) Kind() ValueKind { return KindIntConst }

// IsZero reports whether the constant is 0
func (c *IntConst) IsZero() bool { return c.value.Sign() == 0 }

// IsOne reports whether the constant is 1
func (c *IntConst) IsOne() bool { return c.value.IsUint64() && c.value.Uint64() == 1 }

// ZExtValue returns the low 64 bits of the zero-extended value
func (c *IntConst) ZExtValue() uint64 {
	if c.value.IsUint64() {
		return c.value.Uint64()
	}
	low := new(big.Int).And(c.value, new(big.Int).SetUint64(math.MaxUint64))
	return low.Uint64()
}

// SExtValue interprets the constant as a two's complement integer of its width
func (c *IntConst) SExtValue() *big.Int {
	bits := bitWidth(c.typ)
	v := new(big.Int).Set(c.value)
	if bits > 0 && v.Bit(bits-1) == 1 {
		v.Sub(v, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	}
	return v
}

// Value returns a copy of the normalised magnitude
func (c *IntConst) Value() *big.Int { return new(big.Int).Set(c.value) }

func (c *IntConst) Ref() string {
	// An integer constant carrying a float type only comes out of the
	// fmul-by-zero rule. It prints without a fraction so it stays visible.
	if IsFloat(c.typ) {
		return c.value.String()
	}
	if bitWidth(c.typ) == 1 {
		if c.IsZero() {
			return "false"
		}
		return "true"
	}
	return c.SExtValue().String()
}

// FloatConst is a floating point literal
type FloatConst struct {
	valueBase
	value float64
}

func (c *FloatConst) Kind() ValueKind { return KindFloatConst }

// IsZero reports whether the constant is +0.0 or -0.0
func (c *FloatConst) IsZero() bool { return c.value == 0 }

// IsOne reports whether the constant is 1.0 or -1.0
func (c *FloatConst) IsOne() bool { return c.value == 1 || c.value == -1 }

// Float64 returns the constant as a double
func (c *FloatConst) Float64() float64 { return c.value }

func (c *FloatConst) Ref() string {
	return formatFloat(c.value)
}

// formatFloat prints finite values in decimal and the rest as IEEE double bits
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprintf("0x%016X", math.Float64bits(v))
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

// Argument is a formal parameter of a function
type Argument struct {
	valueBase
	index int
}

func (a *Argument) Kind() ValueKind { return KindArgument }

// Index returns the parameter position
func (a *Argument) Index() int { return a.index }

func (a *Argument) Ref() string { return a.localRef() }

// GlobalRef is a reference to a module-level symbol, typically a function
type GlobalRef struct {
	valueBase
}

func (g *GlobalRef) Kind() ValueKind { return KindGlobal }

// Symbol returns the referenced name without the @ sigil
func (g *GlobalRef) Symbol() string { return g.name }

func (g *GlobalRef) Ref() string { return "@" + g.name }

// IsConstant reports whether v is an integer or float literal
func IsConstant(v Value) bool {
	k := v.Kind()
	return k == KindIntConst || k == KindFloatConst
}
