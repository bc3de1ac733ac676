package ir

import (
	"fmt"
	"strings"

	"mltlc/internal/types"
)

// children is embedded by node kinds with a mutable, positional child list;
// it implements the Children/SetChild half of Expression.
type children struct {
	kids []Expression
}

func (c *children) Children() []Expression { return c.kids }

func (c *children) SetChild(i int, e Expression) {
	c.kids[i] = e
}

func attach(parent Expression, kids ...Expression) {
	for _, k := range kids {
		if k != nil {
			k.AddParent(parent)
		}
	}
}

// ---- Constant ----

type ConstKind int

const (
	ConstBool ConstKind = iota
	ConstInt
	ConstFloat
)

type Constant struct {
	Base
	children
	CKind   ConstKind
	BoolVal bool
	IntVal  int64
	FltVal  float64
}

func NewConstantBool(pos types.Position, v bool) *Constant {
	c := &Constant{Base: newBase(pos), CKind: ConstBool, BoolVal: v}
	c.SetType(types.BoolType{Const: true})
	return c
}

func NewConstantInt(pos types.Position, v int64) *Constant {
	c := &Constant{Base: newBase(pos), CKind: ConstInt, IntVal: v}
	return c
}

func NewConstantFloat(pos types.Position, v float64) *Constant {
	c := &Constant{Base: newBase(pos), CKind: ConstFloat, FltVal: v}
	return c
}

func (c *Constant) Kind() string { return "Constant" }

func (c *Constant) String() string {
	switch c.CKind {
	case ConstBool:
		if c.BoolVal {
			return "True"
		}
		return "False"
	case ConstInt:
		return fmt.Sprintf("%d", c.IntVal)
	default:
		return fmt.Sprintf("%g", c.FltVal)
	}
}

func (c *Constant) Prefix() string { return c.String() }

// IsTrue/IsFalse are used pervasively by the rewrite optimizer.
func (c *Constant) IsTrue() bool  { return c.CKind == ConstBool && c.BoolVal }
func (c *Constant) IsFalse() bool { return c.CKind == ConstBool && !c.BoolVal }

// ---- Signal ----

type Signal struct {
	Base
	children
	Symbol   string
	SignalID int // -1 until resolved against the signal mapping
}

func NewSignal(pos types.Position, symbol string) *Signal {
	return &Signal{Base: newBase(pos), Symbol: symbol, SignalID: -1}
}

func (s *Signal) Kind() string   { return "Signal" }
func (s *Signal) String() string { return s.Symbol }
func (s *Signal) Prefix() string { return s.Symbol }

// ---- Variable ----

// Variable is an unresolved symbol reference, eliminated by expand_definitions
// (C5 step 1) or by rename() during set-aggregation unrolling.
type Variable struct {
	Base
	children
	Symbol string
}

func NewVariable(pos types.Position, symbol string) *Variable {
	return &Variable{Base: newBase(pos), Symbol: symbol}
}

func (v *Variable) Kind() string   { return "Variable" }
func (v *Variable) String() string { return v.Symbol }
func (v *Variable) Prefix() string { return v.Symbol }

// ---- AtomicRef ----

// AtomicRef is a named relation bound to a signal/constant comparison,
// legal only under the AtomicChecker frontend.
type AtomicRef struct {
	Base
	children
	Symbol string
	Def    Expression // the relational expression this atomic names
}

func NewAtomicRef(pos types.Position, symbol string, def Expression) *AtomicRef {
	a := &AtomicRef{Base: newBase(pos), Symbol: symbol, Def: def}
	a.kids = []Expression{def}
	attach(a, def)
	return a
}

func (a *AtomicRef) Kind() string   { return "AtomicRef" }
func (a *AtomicRef) String() string { return a.Symbol }
func (a *AtomicRef) Prefix() string { return a.Symbol }

// ---- Operator ----

type Operator struct {
	Base
	children
	OpKind OperatorKind
}

func NewOperator(pos types.Position, kind OperatorKind, operands ...Expression) *Operator {
	o := &Operator{Base: newBase(pos), OpKind: kind}
	o.kids = operands
	attach(o, operands...)
	return o
}

func (o *Operator) Kind() string { return "Operator" }

func (o *Operator) String() string {
	if len(o.kids) == 1 {
		return fmt.Sprintf("%s%s", o.OpKind, o.kids[0])
	}
	parts := make([]string, len(o.kids))
	for i, k := range o.kids {
		parts[i] = k.String()
	}
	return "(" + strings.Join(parts, " "+o.OpKind.String()+" ") + ")"
}

func (o *Operator) Prefix() string {
	parts := make([]string, 0, len(o.kids)+1)
	parts = append(parts, o.OpKind.String())
	for _, k := range o.kids {
		parts = append(parts, k.Prefix())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ---- TemporalOperator ----

type TemporalOperator struct {
	Base
	children
	TKind    TemporalKind
	Interval types.Interval
}

// NewTemporalOperator builds Global/Future (one operand) or Until/Release
// (two operands: left, right).
func NewTemporalOperator(pos types.Position, kind TemporalKind, interval types.Interval, operands ...Expression) *TemporalOperator {
	t := &TemporalOperator{Base: newBase(pos), TKind: kind, Interval: interval}
	t.kids = operands
	attach(t, operands...)
	return t
}

func (t *TemporalOperator) Kind() string { return "TemporalOperator" }

func (t *TemporalOperator) String() string {
	if len(t.kids) == 1 {
		return fmt.Sprintf("%s%s%s", t.TKind, t.Interval, t.kids[0])
	}
	return fmt.Sprintf("(%s %s%s %s)", t.kids[0], t.TKind, t.Interval, t.kids[1])
}

func (t *TemporalOperator) Prefix() string {
	parts := []string{t.TKind.String(), t.Interval.String()}
	for _, k := range t.kids {
		parts = append(parts, k.Prefix())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ---- ProbabilityOperator ----

type ProbabilityOperator struct {
	Base
	children
	Bound float64
}

func NewProbabilityOperator(pos types.Position, bound float64, body Expression) *ProbabilityOperator {
	p := &ProbabilityOperator{Base: newBase(pos), Bound: bound}
	p.kids = []Expression{body}
	attach(p, body)
	return p
}

func (p *ProbabilityOperator) Kind() string   { return "ProbabilityOperator" }
func (p *ProbabilityOperator) String() string { return fmt.Sprintf("Pr(%s) >= %g", p.kids[0], p.Bound) }
func (p *ProbabilityOperator) Prefix() string {
	return fmt.Sprintf("(Pr %g %s)", p.Bound, p.kids[0].Prefix())
}

// ---- SetExpression ----

// SetExpression is a compile-time-only literal set, eliminated by C5.
type SetExpression struct {
	Base
	children
}

func NewSetExpression(pos types.Position, members ...Expression) *SetExpression {
	s := &SetExpression{Base: newBase(pos)}
	s.kids = members
	attach(s, members...)
	return s
}

func (s *SetExpression) Kind() string { return "SetExpression" }
func (s *SetExpression) String() string {
	parts := make([]string, len(s.kids))
	for i, k := range s.kids {
		parts[i] = k.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
func (s *SetExpression) Prefix() string {
	parts := []string{"Set"}
	for _, k := range s.kids {
		parts = append(parts, k.Prefix())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ---- Struct ----

// Struct is a compile-time-only struct instantiation, eliminated by C5.
type Struct struct {
	Base
	children
	Symbol  string
	Members []string
}

func NewStruct(pos types.Position, symbol string, members []string, values []Expression) *Struct {
	s := &Struct{Base: newBase(pos), Symbol: symbol, Members: members}
	s.kids = values
	attach(s, values...)
	return s
}

func (s *Struct) Kind() string { return "Struct" }
func (s *Struct) String() string {
	parts := make([]string, len(s.kids))
	for i, k := range s.kids {
		parts[i] = fmt.Sprintf("%s: %s", s.Members[i], k)
	}
	return s.Symbol + "{" + strings.Join(parts, ", ") + "}"
}
func (s *Struct) Prefix() string {
	parts := []string{"Struct", s.Symbol}
	for _, k := range s.kids {
		parts = append(parts, k.Prefix())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ---- StructAccess ----

// StructAccess is `base.Member`, eliminated by C5 step 5.
type StructAccess struct {
	Base
	children
	Member string
}

func NewStructAccess(pos types.Position, base Expression, member string) *StructAccess {
	s := &StructAccess{Base: newBase(pos), Member: member}
	s.kids = []Expression{base}
	attach(s, base)
	return s
}

func (s *StructAccess) Kind() string   { return "StructAccess" }
func (s *StructAccess) String() string { return fmt.Sprintf("%s.%s", s.kids[0], s.Member) }
func (s *StructAccess) Prefix() string { return fmt.Sprintf("(Access %s %s)", s.Member, s.kids[0].Prefix()) }

// ---- FunctionCall ----

// FunctionCall is `symbol(args...)`, eliminated by C5 step 2 (converted to
// a Struct) or step 1 (inlined if it names a definition).
type FunctionCall struct {
	Base
	children
	Symbol string
}

func NewFunctionCall(pos types.Position, symbol string, args ...Expression) *FunctionCall {
	f := &FunctionCall{Base: newBase(pos), Symbol: symbol}
	f.kids = args
	attach(f, args...)
	return f
}

func (f *FunctionCall) Kind() string { return "FunctionCall" }
func (f *FunctionCall) String() string {
	parts := make([]string, len(f.kids))
	for i, k := range f.kids {
		parts[i] = k.String()
	}
	return f.Symbol + "(" + strings.Join(parts, ", ") + ")"
}
func (f *FunctionCall) Prefix() string {
	parts := []string{"Call", f.Symbol}
	for _, k := range f.kids {
		parts = append(parts, k.Prefix())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// ---- SetAggregation ----

// SetAggregation is `forall/forsome/... x in Set. body`, eliminated by C5
// step 4.
type SetAggregation struct {
	Base
	children // kids[0] = set, kids[1] = body
	AggKind  SetAggKind
	BoundVar string
	N        int // threshold for ForExactly/ForAtLeast/ForAtMost
}

func NewSetAggregation(pos types.Position, kind SetAggKind, boundVar string, set, body Expression, n int) *SetAggregation {
	s := &SetAggregation{Base: newBase(pos), AggKind: kind, BoundVar: boundVar, N: n}
	s.kids = []Expression{set, body}
	attach(s, set, body)
	return s
}

func (s *SetAggregation) Set() Expression  { return s.kids[0] }
func (s *SetAggregation) Body() Expression { return s.kids[1] }

func (s *SetAggregation) Kind() string { return "SetAggregation" }
func (s *SetAggregation) String() string {
	return fmt.Sprintf("%s %s in %s. %s", s.AggKind, s.BoundVar, s.kids[0], s.kids[1])
}
func (s *SetAggregation) Prefix() string {
	return fmt.Sprintf("(%s %s %s %s)", s.AggKind, s.BoundVar, s.kids[0].Prefix(), s.kids[1].Prefix())
}

// ---- Formula ----

// Formula is a top-level named specification: `name: body` (or, with a
// formula number, `name, N: body`).
type Formula struct {
	Base
	children
	Symbol        string
	FormulaNumber int
}

func NewFormula(pos types.Position, symbol string, formulaNumber int, body Expression) *Formula {
	f := &Formula{Base: newBase(pos), Symbol: symbol, FormulaNumber: formulaNumber}
	f.kids = []Expression{body}
	attach(f, body)
	return f
}

func (f *Formula) Body() Expression { return f.kids[0] }

func (f *Formula) Kind() string   { return "Formula" }
func (f *Formula) String() string { return fmt.Sprintf("%s: %s", f.Symbol, f.kids[0]) }
func (f *Formula) Prefix() string { return f.kids[0].Prefix() }

// ---- Contract ----

// Contract is `name: assume => guarantee`, eliminated by C5 step 3 into
// three synthesized Formula entries.
type Contract struct {
	Base
	children // kids[0] = assume, kids[1] = guarantee
	Symbol        string
	FormulaNumber int
}

func NewContract(pos types.Position, symbol string, formulaNumber int, assume, guarantee Expression) *Contract {
	c := &Contract{Base: newBase(pos), Symbol: symbol, FormulaNumber: formulaNumber}
	c.kids = []Expression{assume, guarantee}
	attach(c, assume, guarantee)
	c.SetType(types.ContractValueType{})
	return c
}

func (c *Contract) Assume() Expression    { return c.kids[0] }
func (c *Contract) Guarantee() Expression { return c.kids[1] }

func (c *Contract) Kind() string { return "Contract" }
func (c *Contract) String() string {
	return fmt.Sprintf("%s: %s => %s", c.Symbol, c.kids[0], c.kids[1])
}
func (c *Contract) Prefix() string {
	return fmt.Sprintf("(Contract %s %s)", c.kids[0].Prefix(), c.kids[1].Prefix())
}
