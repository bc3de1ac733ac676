package types

import "fmt"

// Type is the common interface implemented by every scalar, set, struct, or
// control-flow type that can be attached to an IR node's Type field (C1).
type Type interface {
	fmt.Stringer
	IsConst() bool
	// WithConst returns a copy of the type with its is_const flag set to c.
	WithConst(c bool) Type
	Equal(other Type) bool
}

// NoType represents the "unset" type assigned to a freshly created node
// before the type checker (C4) annotates it. Invariant I4 requires that no
// NoType survive on a node reachable from a spec after type checking.
type NoType struct{}

func (NoType) String() string          { return "unset" }
func (NoType) IsConst() bool           { return false }
func (NoType) WithConst(bool) Type     { return NoType{} }
func (NoType) Equal(other Type) bool   { _, ok := other.(NoType); return ok }

// BoolType is the type of every logical and temporal expression.
type BoolType struct{ Const bool }

func (t BoolType) String() string      { return "bool" }
func (t BoolType) IsConst() bool       { return t.Const }
func (t BoolType) WithConst(c bool) Type { return BoolType{Const: c} }
func (t BoolType) Equal(other Type) bool {
	o, ok := other.(BoolType)
	return ok && o == t
}

// IntType is a signed or unsigned integer of a configured bit width. Width
// and signedness come from the per-compile Config (C3) rather than a global
// singleton -- see DESIGN.md "global mutable state".
type IntType struct {
	Width  int
	Signed bool
	Const  bool
}

func (t IntType) String() string {
	if t.Signed {
		return fmt.Sprintf("int%d", t.Width)
	}
	return fmt.Sprintf("uint%d", t.Width)
}
func (t IntType) IsConst() bool         { return t.Const }
func (t IntType) WithConst(c bool) Type { t.Const = c; return t }
func (t IntType) Equal(other Type) bool {
	o, ok := other.(IntType)
	return ok && o.Width == t.Width && o.Signed == t.Signed
}

// Representable reports whether value fits in the configured integer width.
func (t IntType) Representable(value int64) bool {
	if t.Width <= 0 || t.Width > 63 {
		return true
	}
	if t.Signed {
		lo := -(int64(1) << (t.Width - 1))
		hi := (int64(1) << (t.Width - 1)) - 1
		return value >= lo && value <= hi
	}
	hi := (int64(1) << t.Width) - 1
	return value >= 0 && value <= hi
}

// FloatType is an IEEE-754 float of a configured bit width.
type FloatType struct {
	Width int
	Const bool
}

func (t FloatType) String() string      { return fmt.Sprintf("float%d", t.Width) }
func (t FloatType) IsConst() bool       { return t.Const }
func (t FloatType) WithConst(c bool) Type { t.Const = c; return t }
func (t FloatType) Equal(other Type) bool {
	o, ok := other.(FloatType)
	return ok && o.Width == t.Width
}

// SetType is the compile-time-only type of a SetExpression.
type SetType struct {
	Member Type
	Const  bool
}

func (t SetType) String() string      { return fmt.Sprintf("set<%s>", t.Member) }
func (t SetType) IsConst() bool       { return t.Const }
func (t SetType) WithConst(c bool) Type { t.Const = c; return t }
func (t SetType) Equal(other Type) bool {
	o, ok := other.(SetType)
	return ok && o.Member.Equal(t.Member)
}

// StructType is the compile-time-only type of a Struct instantiation.
type StructType struct {
	Symbol string
	Const  bool
}

func (t StructType) String() string      { return t.Symbol }
func (t StructType) IsConst() bool       { return t.Const }
func (t StructType) WithConst(c bool) Type { t.Const = c; return t }
func (t StructType) Equal(other Type) bool {
	o, ok := other.(StructType)
	return ok && o.Symbol == t.Symbol
}

// ContractValueType is the type assigned to a resolved Contract node.
type ContractValueType struct{}

func (ContractValueType) String() string      { return "contract" }
func (ContractValueType) IsConst() bool       { return false }
func (ContractValueType) WithConst(bool) Type { return ContractValueType{} }
func (ContractValueType) Equal(other Type) bool {
	_, ok := other.(ContractValueType)
	return ok
}

func IsBoolType(t Type) bool {
	_, ok := t.(BoolType)
	return ok
}

func IsIntegerType(t Type) bool {
	_, ok := t.(IntType)
	return ok
}

func IsSetType(t Type) bool {
	_, ok := t.(SetType)
	return ok
}
