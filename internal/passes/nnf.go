package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// toNNF pushes negation inward until it applies only to literals (signals,
// atomics, constants), using De Morgan's laws over ∧/∨ and the temporal
// dualities G/F and U/R (§4.3 step 9). It is a no-op on a tree that
// already contains only literal-level negations.
func toNNF(ctx *program.Context) {
	for _, f := range ctx.Program.AllFormulas() {
		newBody := nnf(f.Body(), false)
		ir.Replace(f.Body(), newBody)
	}
}

func nnf(e ir.Expression, neg bool) ir.Expression {
	switch t := e.(type) {
	case *ir.Constant:
		if neg && t.CKind == ir.ConstBool {
			return ir.NewConstantBool(t.Pos(), !t.BoolVal)
		}
		if neg {
			return ir.NewOperator(t.Pos(), ir.OpNot, t)
		}
		return t

	case *ir.Operator:
		switch t.OpKind {
		case ir.OpNot:
			return nnf(t.Children()[0], !neg)
		case ir.OpAnd, ir.OpOr:
			kind := t.OpKind
			if neg {
				if kind == ir.OpAnd {
					kind = ir.OpOr
				} else {
					kind = ir.OpAnd
				}
			}
			kids := make([]ir.Expression, len(t.Children()))
			for i, c := range t.Children() {
				kids[i] = nnf(c, neg)
			}
			return ir.NewOperator(t.Pos(), kind, kids...)
		case ir.OpImplies:
			p, q := t.Children()[0], t.Children()[1]
			// p -> q == !p || q
			or := ir.NewOperator(t.Pos(), ir.OpOr, ir.NewOperator(t.Pos(), ir.OpNot, p), q)
			return nnf(or, neg)
		case ir.OpEquiv:
			p, q := t.Children()[0], t.Children()[1]
			a := ir.NewOperator(t.Pos(), ir.OpAnd, p, q)
			b := ir.NewOperator(t.Pos(), ir.OpAnd, ir.NewOperator(t.Pos(), ir.OpNot, p), ir.NewOperator(t.Pos(), ir.OpNot, q))
			return nnf(ir.NewOperator(t.Pos(), ir.OpOr, a, b), neg)
		case ir.OpXor:
			p, q := t.Children()[0], t.Children()[1]
			a := ir.NewOperator(t.Pos(), ir.OpAnd, p, ir.NewOperator(t.Pos(), ir.OpNot, q))
			b := ir.NewOperator(t.Pos(), ir.OpAnd, ir.NewOperator(t.Pos(), ir.OpNot, p), q)
			return nnf(ir.NewOperator(t.Pos(), ir.OpOr, a, b), neg)
		default:
			if neg {
				return ir.NewOperator(t.Pos(), ir.OpNot, t)
			}
			return t
		}

	case *ir.TemporalOperator:
		switch t.TKind {
		case ir.TGlobal, ir.TFuture:
			kind := t.TKind
			if neg {
				if kind == ir.TGlobal {
					kind = ir.TFuture
				} else {
					kind = ir.TGlobal
				}
			}
			return ir.NewTemporalOperator(t.Pos(), kind, t.Interval, nnf(t.Children()[0], neg))
		case ir.TUntil, ir.TRelease:
			kind := t.TKind
			if neg {
				if kind == ir.TUntil {
					kind = ir.TRelease
				} else {
					kind = ir.TUntil
				}
			}
			p := nnf(t.Children()[0], neg)
			q := nnf(t.Children()[1], neg)
			return ir.NewTemporalOperator(t.Pos(), kind, t.Interval, p, q)
		}
		return t

	default:
		if neg {
			return ir.NewOperator(e.Pos(), ir.OpNot, e)
		}
		return e
	}
}
