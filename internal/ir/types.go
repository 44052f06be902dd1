package ir

import (
	"fmt"
	"strconv"
	"strings"
)

// Type is the type of an IR value. Every implementation is a comparable
// value type, so two types are equal exactly when they compare equal with ==.
type Type interface {
	String() string
	isType()
}

// IntType is an integer of Bits width (i1 ... i1024)
type IntType struct {
	Bits int
}

// FloatType is an IEEE floating point type: half, float or double
type FloatType struct {
	Bits int
}

// VoidType is the result type of instructions that produce no value
type VoidType struct{}

// LabelType is the type of basic block references in branches
type LabelType struct{}

// PtrType is the type of global symbols such as function references
type PtrType struct{}

func (IntType) isType()   {}
func (FloatType) isType() {}
func (VoidType) isType()  {}
func (LabelType) isType() {}
func (PtrType) isType()   {}

func (t IntType) String() string { return fmt.Sprintf("i%d", t.Bits) }

func (t FloatType) String() string {
	switch t.Bits {
	case 16:
		return "half"
	case 32:
		return "float"
	default:
		return "double"
	}
}

func (VoidType) String() string  { return "void" }
func (LabelType) String() string { return "label" }
func (PtrType) String() string   { return "ptr" }

// Commonly used types
var (
	I1     Type = IntType{Bits: 1}
	I8     Type = IntType{Bits: 8}
	I16    Type = IntType{Bits: 16}
	I32    Type = IntType{Bits: 32}
	I64    Type = IntType{Bits: 64}
	Half   Type = FloatType{Bits: 16}
	Float  Type = FloatType{Bits: 32}
	Double Type = FloatType{Bits: 64}
	Void   Type = VoidType{}
	Label  Type = LabelType{}
	Ptr    Type = PtrType{}
)

// MaxIntBits is the widest integer type the reader accepts
const MaxIntBits = 1024

// KnownTypeNames lists the non-integer type keywords, used for suggestions
var KnownTypeNames = []string{"half", "float", "double", "void", "label", "ptr", "i1", "i8", "i16", "i32", "i64"}

// ParseType resolves a type keyword
func ParseType(name string) (Type, bool) {
	switch name {
	case "half":
		return Half, true
	case "float":
		return Float, true
	case "double":
		return Double, true
	case "void":
		return Void, true
	case "label":
		return Label, true
	case "ptr":
		return Ptr, true
	}

	if !strings.HasPrefix(name, "i") {
		return nil, false
	}
	bits, err := strconv.Atoi(name[1:])
	if err != nil || bits < 1 || bits > MaxIntBits {
		return nil, false
	}
	return IntType{Bits: bits}, true
}

// IsInteger reports whether t is an integer type
func IsInteger(t Type) bool {
	_, ok := t.(IntType)
	return ok
}

// IsFloat reports whether t is a floating point type
func IsFloat(t Type) bool {
	_, ok := t.(FloatType)
	return ok
}

// bitWidth returns the storage width of arithmetic types, 0 otherwise
func bitWidth(t Type) int {
	switch t := t.(type) {
	case IntType:
		return t.Bits
	case FloatType:
		return t.Bits
	default:
		return 0
	}
}
