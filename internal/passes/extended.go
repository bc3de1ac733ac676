package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// removeExtendedOperators rewrites ∨, ⊕, →, ↔, F, R into ¬, ∧, U using the
// dualities of §4.3 step 10. It is generalized to n-ary ∨/∧ since this
// pass runs before multi-arity flattening.
func removeExtendedOperators(ctx *program.Context) {
	for _, f := range ctx.Program.AllFormulas() {
		for _, n := range ir.Postorder(f.Body()) {
			if replacement := eliminateExtended(n); replacement != nil {
				ir.Replace(n, replacement)
			}
		}
	}
}

// toBNF converts to the {¬,∧,U} operator set required by Boolean Normal
// Form; it shares the rewrite rules with removeExtendedOperators (§4.3
// step 9 is a no-op unless extended operators remain).
func toBNF(ctx *program.Context) {
	removeExtendedOperators(ctx)
}

func eliminateExtended(n ir.Expression) ir.Expression {
	switch t := n.(type) {
	case *ir.Operator:
		switch t.OpKind {
		case ir.OpOr:
			negs := make([]ir.Expression, len(t.Children()))
			for i, c := range t.Children() {
				negs[i] = notOfExpr(c)
			}
			return notOfExpr(ir.NewOperator(t.Pos(), ir.OpAnd, negs...))
		case ir.OpImplies:
			p, q := t.Children()[0], t.Children()[1]
			return notOfExpr(ir.NewOperator(t.Pos(), ir.OpAnd, p, notOfExpr(q)))
		case ir.OpEquiv:
			p, q := t.Children()[0], t.Children()[1]
			a := ir.NewOperator(t.Pos(), ir.OpAnd, p, notOfExpr(q))
			b := ir.NewOperator(t.Pos(), ir.OpAnd, notOfExpr(p), q)
			return ir.NewOperator(t.Pos(), ir.OpAnd, notOfExpr(a), notOfExpr(b))
		case ir.OpXor:
			p, q := t.Children()[0], t.Children()[1]
			a := ir.NewOperator(t.Pos(), ir.OpAnd, p, notOfExpr(q))
			b := ir.NewOperator(t.Pos(), ir.OpAnd, notOfExpr(p), q)
			equivBody := ir.NewOperator(t.Pos(), ir.OpAnd, notOfExpr(a), notOfExpr(b))
			return notOfExpr(equivBody)
		}
	case *ir.TemporalOperator:
		switch t.TKind {
		case ir.TFuture:
			trueConst := ir.NewConstantBool(t.Pos(), true)
			return ir.NewTemporalOperator(t.Pos(), ir.TUntil, t.Interval, trueConst, t.Children()[0])
		case ir.TRelease:
			p, q := t.Children()[0], t.Children()[1]
			inner := ir.NewTemporalOperator(t.Pos(), ir.TUntil, t.Interval, notOfExpr(p), notOfExpr(q))
			return notOfExpr(inner)
		}
	}
	return nil
}

func notOfExpr(e ir.Expression) ir.Expression {
	if op, ok := e.(*ir.Operator); ok && op.OpKind == ir.OpNot {
		return op.Children()[0]
	}
	return ir.NewOperator(e.Pos(), ir.OpNot, e)
}
