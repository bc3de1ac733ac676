// Package typecheck implements the bottom-up, single-pass type checker
// (C4): it annotates every IR node's Type field and enforces the language's
// well-formedness rules.
package typecheck

import (
	"fmt"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

// inTime tracks which spec set (future-time or past-time) the node being
// checked descends from, since temporal operators are legal only in their
// own time domain and past-time operators require the C target. timeNone
// marks an atomic checker's definition.
type inTime int

const (
	timeNone inTime = iota
	timeFuture
	timePast
)

// Check type-checks every declared atomic and every FT/PT formula in p.
// It returns true iff no errors were recorded.
func Check(ctx *program.Context) bool {
	for symbol, a := range ctx.Program.Atomics {
		checkAtomicDef(ctx, symbol, a)
	}
	for _, f := range ctx.Program.FTSpecs {
		checkExpr(ctx, f, timeFuture)
	}
	for _, f := range ctx.Program.PTSpecs {
		checkExpr(ctx, f, timePast)
	}
	for _, c := range ctx.Program.Contracts {
		checkExpr(ctx, c, timeFuture)
	}
	return !ctx.HasErrors()
}

func fail(ctx *program.Context, e ir.Expression, format string, args ...interface{}) types.Type {
	msg := fmt.Sprintf(format, args...)
	err := diag.NewError(diag.CodeTypeCheck, msg)
	if e.Pos() != types.EmptyPosition {
		err = err.At(e.Pos(), 1)
	}
	ctx.AddError(err)
	e.SetType(types.NoType{})
	return types.NoType{}
}

// checkAtomicDef validates an atomic-checker definition: it must be a
// relational operator over (Signal|Constant) x (Signal|Constant), with no
// nested function calls (§4.2).
func checkAtomicDef(ctx *program.Context, symbol string, a *ir.AtomicRef) {
	op, ok := a.Def.(*ir.Operator)
	if !ok || !op.OpKind.IsRelational() {
		fail(ctx, a, "atomic %q must be defined by a relational expression", symbol)
		return
	}
	for _, child := range op.Children() {
		switch child.(type) {
		case *ir.Signal, *ir.Constant:
		default:
			fail(ctx, a, "atomic %q operands must be signals or constants, found %s", symbol, child.Kind())
			return
		}
	}
	checkExpr(ctx, op, timeNone)
	a.SetType(types.BoolType{})
}

// checkExpr infers and attaches e's type, recursing into children first
// (postorder), and records a diagnostic for every rule violation in §4.2.
func checkExpr(ctx *program.Context, e ir.Expression, t inTime) types.Type {
	childTime := t
	if _, isAtomic := e.(*ir.AtomicRef); isAtomic {
		childTime = timeNone
	}
	for _, c := range e.Children() {
		checkExpr(ctx, c, childTime)
	}

	cfg := ctx.Config

	switch n := e.(type) {
	case *ir.Constant:
		switch n.CKind {
		case ir.ConstBool:
			n.SetType(types.BoolType{Const: true})
		case ir.ConstInt:
			it := types.IntType{Width: cfg.IntWidth, Signed: cfg.IntSigned, Const: true}
			if !it.Representable(n.IntVal) {
				return fail(ctx, e, "constant %d is not representable in %s", n.IntVal, it)
			}
			n.SetType(it)
		case ir.ConstFloat:
			n.SetType(types.FloatType{Width: cfg.FloatWidth, Const: true})
		}
		return e.Type()

	case *ir.Signal:
		sig, declared := ctx.Program.Signals[n.Symbol]
		if !declared {
			return fail(ctx, e, "undeclared signal %q", n.Symbol)
		}
		if n.Type() == (types.NoType{}) {
			n.SetType(sig.Type())
		}
		// Inside an atomic definition (timeNone) the atomic checker
		// compares non-bool signals directly.
		if !types.IsBoolType(n.Type()) && cfg.Frontend != types.EngineBooleanizer && t != timeNone {
			return fail(ctx, e, "signal %q has non-bool type %s and requires the booleanizer frontend", n.Symbol, n.Type())
		}
		return n.Type()

	case *ir.Variable:
		target, ok := ctx.LookupSymbol(n.Symbol)
		if !ok {
			return fail(ctx, e, "undefined symbol %q", n.Symbol)
		}
		ty := checkExpr(ctx, target, t)
		n.SetType(ty)
		return ty

	case *ir.AtomicRef:
		if cfg.Frontend != types.EngineAtomicChecker {
			return fail(ctx, e, "atomic %q requires the atomic-checker frontend", n.Symbol)
		}
		n.SetType(types.BoolType{})
		return n.Type()

	case *ir.Operator:
		return checkOperator(ctx, n, cfg)

	case *ir.TemporalOperator:
		return checkTemporal(ctx, n, t, cfg)

	case *ir.ProbabilityOperator:
		if n.Bound < 0.0 || n.Bound > 1.0 {
			return fail(ctx, e, "probability bound %g is not in [0.0, 1.0]", n.Bound)
		}
		body := n.Children()[0]
		if !types.IsBoolType(body.Type()) {
			return fail(ctx, e, "probability operator body must be bool, found %s", body.Type())
		}
		n.SetType(types.BoolType{})
		return n.Type()

	case *ir.SetExpression:
		return checkSetExpression(ctx, n)

	case *ir.Struct:
		return checkStruct(ctx, n)

	case *ir.StructAccess:
		return checkStructAccess(ctx, n)

	case *ir.FunctionCall:
		// Resolved to a Struct or inlined definition by C5; at type-check
		// time we only validate that the symbol exists as a struct or
		// a definition, without requiring argument types to match yet.
		if _, ok := ctx.Program.Structs[n.Symbol]; ok {
			n.SetType(types.StructType{Symbol: n.Symbol})
			return n.Type()
		}
		if _, ok := ctx.Program.Defines[n.Symbol]; ok {
			n.SetType(types.NoType{})
			return n.Type()
		}
		return fail(ctx, e, "call to undefined function or struct %q", n.Symbol)

	case *ir.SetAggregation:
		return checkSetAggregation(ctx, n)

	case *ir.Formula:
		body := n.Body()
		if !types.IsBoolType(body.Type()) {
			return fail(ctx, e, "formula %q body must be bool, found %s", n.Symbol, body.Type())
		}
		n.SetType(types.BoolType{})
		return n.Type()

	case *ir.Contract:
		if !types.IsBoolType(n.Assume().Type()) {
			return fail(ctx, e, "contract %q assumption must be bool", n.Symbol)
		}
		if !types.IsBoolType(n.Guarantee().Type()) {
			return fail(ctx, e, "contract %q guarantee must be bool", n.Symbol)
		}
		n.SetType(types.ContractValueType{})
		return n.Type()

	default:
		return fail(ctx, e, "unhandled expression kind %s", e.Kind())
	}
}

func checkOperator(ctx *program.Context, n *ir.Operator, cfg *program.Config) types.Type {
	kids := n.Children()

	switch {
	case n.OpKind.IsLogical():
		for _, c := range kids {
			if !types.IsBoolType(c.Type()) {
				return fail(ctx, n, "operator %s requires bool operands, found %s", n.OpKind, c.Type())
			}
		}
		n.SetType(types.BoolType{})

	case n.OpKind.IsRelational():
		if n.OpKind == ir.OpEqual || n.OpKind == ir.OpNotEqual {
			for _, c := range kids {
				if _, isFloat := c.Type().(types.FloatType); isFloat {
					return fail(ctx, n, "equality on float operands is not allowed")
				}
			}
		}
		n.SetType(types.BoolType{})

	case n.OpKind.IsArithmetic():
		if cfg.Impl != types.ImplC {
			return fail(ctx, n, "arithmetic operator %s requires the C target", n.OpKind)
		}
		if cfg.Frontend != types.EngineBooleanizer {
			return fail(ctx, n, "arithmetic operator %s requires the booleanizer frontend", n.OpKind)
		}
		if n.OpKind == ir.OpDivide && len(kids) == 2 {
			if c, ok := kids[1].(*ir.Constant); ok && c.CKind == ir.ConstInt && c.IntVal == 0 {
				return fail(ctx, n, "division by constant zero")
			}
		}
		n.SetType(kids[0].Type())

	case n.OpKind.IsBitwise():
		if cfg.Impl != types.ImplC {
			return fail(ctx, n, "bitwise operator %s requires the C target", n.OpKind)
		}
		if cfg.Frontend != types.EngineBooleanizer {
			return fail(ctx, n, "bitwise operator %s requires the booleanizer frontend", n.OpKind)
		}
		n.SetType(kids[0].Type())

	default:
		return fail(ctx, n, "unrecognized operator kind")
	}
	return n.Type()
}

func checkTemporal(ctx *program.Context, n *ir.TemporalOperator, t inTime, cfg *program.Config) types.Type {
	if !n.Interval.Valid() {
		return fail(ctx, n, "invalid interval %s: lower bound must be <= upper bound", n.Interval)
	}
	for _, c := range n.Children() {
		if !types.IsBoolType(c.Type()) {
			return fail(ctx, n, "temporal operator %s requires bool operands, found %s", n.TKind, c.Type())
		}
	}
	if t == timePast && cfg.Impl != types.ImplC {
		return fail(ctx, n, "past-time operators require the C target")
	}
	n.SetType(types.BoolType{})
	return n.Type()
}

func checkSetExpression(ctx *program.Context, n *ir.SetExpression) types.Type {
	kids := n.Children()
	if len(kids) == 0 {
		n.SetType(types.SetType{Member: types.NoType{}})
		return n.Type()
	}
	member := kids[0].Type()
	isConst := member.IsConst()
	for _, c := range kids[1:] {
		if !c.Type().Equal(member) {
			return fail(ctx, n, "set elements must be homogeneously typed: %s vs %s", member, c.Type())
		}
		isConst = isConst && c.Type().IsConst()
	}
	n.SetType(types.SetType{Member: member, Const: isConst})
	return n.Type()
}

func checkStruct(ctx *program.Context, n *ir.Struct) types.Type {
	def, ok := ctx.Program.Structs[n.Symbol]
	if !ok {
		return fail(ctx, n, "undeclared struct %q", n.Symbol)
	}
	kids := n.Children()
	if len(kids) != len(def.Members) {
		return fail(ctx, n, "struct %q expects %d members, got %d", n.Symbol, len(def.Members), len(kids))
	}
	for i, c := range kids {
		if i < len(def.MemberTypes) && def.MemberTypes[i] != nil && !c.Type().Equal(def.MemberTypes[i]) {
			return fail(ctx, n, "struct %q member %q expects %s, found %s", n.Symbol, def.Members[i], def.MemberTypes[i], c.Type())
		}
	}
	n.SetType(types.StructType{Symbol: n.Symbol})
	return n.Type()
}

func checkStructAccess(ctx *program.Context, n *ir.StructAccess) types.Type {
	base := n.Children()[0]
	st, ok := base.Type().(types.StructType)
	if !ok {
		return fail(ctx, n, "member access on non-struct type %s", base.Type())
	}
	def, ok := ctx.Program.Structs[st.Symbol]
	if !ok {
		return fail(ctx, n, "undeclared struct %q", st.Symbol)
	}
	mt, ok := def.TypeOf(n.Member)
	if !ok {
		return fail(ctx, n, "struct %q has no member %q", st.Symbol, n.Member)
	}
	n.SetType(mt)
	return n.Type()
}

func checkSetAggregation(ctx *program.Context, n *ir.SetAggregation) types.Type {
	if _, ok := n.Set().Type().(types.SetType); !ok {
		return fail(ctx, n, "aggregation requires a set operand, found %s", n.Set().Type())
	}
	body := n.Body()
	switch n.AggKind {
	case ir.ForEach, ir.ForSome:
		if !types.IsBoolType(body.Type()) {
			return fail(ctx, n, "%s body must be bool, found %s", n.AggKind, body.Type())
		}
	default:
		if !types.IsIntegerType(body.Type()) && !types.IsBoolType(body.Type()) {
			return fail(ctx, n, "%s body must be numeric or bool, found %s", n.AggKind, body.Type())
		}
	}
	n.SetType(types.BoolType{})
	return n.Type()
}
