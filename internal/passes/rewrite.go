package passes

import (
	"sort"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

// optimizeRewriteRules applies the exhaustive local-rewrite rule set of
// §4.4 postorder over each spec's body. Fixed point is approximated by the
// single postorder traversal: because replace() rewires a node's children
// in place as they are simplified, a parent visited after its children
// always sees their final rewritten form.
func optimizeRewriteRules(ctx *program.Context) {
	for _, f := range ctx.Program.AllFormulas() {
		ComputePD(f.Body())
		for _, n := range ir.Postorder(f.Body()) {
			if op, ok := n.(*ir.Operator); ok && op.OpKind.IsCommutative() {
				sortByWPD(op)
			}
			rewriteNode(n)
		}
	}
}

func sortByWPD(op *ir.Operator) {
	kids := append([]ir.Expression(nil), op.Children()...)
	sort.SliceStable(kids, func(i, j int) bool { return kids[i].WPD() < kids[j].WPD() })
	for i, k := range kids {
		op.SetChild(i, k)
	}
}

func rewriteNode(n ir.Expression) {
	switch t := n.(type) {
	case *ir.Operator:
		switch t.OpKind {
		case ir.OpNot:
			rewriteNot(t)
		case ir.OpEqual:
			rewriteEqual(t)
		case ir.OpAnd:
			rewriteAndOr(t, true)
		case ir.OpOr:
			rewriteAndOr(t, false)
		}
	case *ir.TemporalOperator:
		rewriteTemporal(t)
	}
}

func boolConst(e ir.Expression, want bool) bool {
	c, ok := e.(*ir.Constant)
	return ok && c.CKind == ir.ConstBool && c.BoolVal == want
}

// rewriteNot applies ¬True→False, ¬False→True, ¬¬p→p, and the
// De Morgan-style temporal dualities ¬G[l,u]¬p→F[l,u]p, ¬F[l,u]¬p→G[l,u]p.
func rewriteNot(t *ir.Operator) {
	child := t.Children()[0]

	if c, ok := child.(*ir.Constant); ok && c.CKind == ir.ConstBool {
		ir.Replace(t, ir.NewConstantBool(t.Pos(), !c.BoolVal))
		return
	}
	if inner, ok := child.(*ir.Operator); ok && inner.OpKind == ir.OpNot {
		ir.Replace(t, inner.Children()[0])
		return
	}
	if temp, ok := child.(*ir.TemporalOperator); ok && len(temp.Children()) == 1 {
		if negated, ok := temp.Children()[0].(*ir.Operator); ok && negated.OpKind == ir.OpNot {
			p := negated.Children()[0]
			switch temp.TKind {
			case ir.TGlobal:
				ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TFuture, temp.Interval, p))
			case ir.TFuture:
				ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TGlobal, temp.Interval, p))
			}
		}
	}
}

// rewriteEqual applies True == p → p, p == True → p.
func rewriteEqual(t *ir.Operator) {
	a, b := t.Children()[0], t.Children()[1]
	if boolConst(a, true) {
		ir.Replace(t, b)
		return
	}
	if boolConst(b, true) {
		ir.Replace(t, a)
	}
}

func rewriteTemporal(t *ir.TemporalOperator) {
	switch t.TKind {
	case ir.TGlobal:
		rewriteGlobal(t)
	case ir.TFuture:
		rewriteFuture(t)
	case ir.TUntil:
		rewriteUntil(t)
	}
}

func rewriteGlobal(t *ir.TemporalOperator) {
	child := t.Children()[0]

	if t.Interval.LB == 0 && t.Interval.UB == 0 {
		ir.Replace(t, child)
		return
	}
	if boolConst(child, true) {
		ir.Replace(t, ir.NewConstantBool(t.Pos(), true))
		return
	}
	if inner, ok := child.(*ir.TemporalOperator); ok {
		switch inner.TKind {
		case ir.TGlobal:
			ni := types.NewInterval(t.Interval.LB+inner.Interval.LB, t.Interval.UB+inner.Interval.UB)
			ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TGlobal, ni, inner.Children()[0]))
			return
		case ir.TFuture:
			if t.Interval.LB == t.Interval.UB {
				a := t.Interval.LB
				ni := types.NewInterval(inner.Interval.LB+a, inner.Interval.UB+a)
				ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TFuture, ni, inner.Children()[0]))
				return
			}
			if inner.Interval.LB == inner.Interval.UB {
				a := inner.Interval.LB
				ni := types.NewInterval(t.Interval.LB+a, t.Interval.UB+a)
				ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TGlobal, ni, inner.Children()[0]))
				return
			}
		}
	}
}

func rewriteFuture(t *ir.TemporalOperator) {
	child := t.Children()[0]

	if t.Interval.LB == 0 && t.Interval.UB == 0 {
		ir.Replace(t, child)
		return
	}
	if boolConst(child, false) {
		ir.Replace(t, ir.NewConstantBool(t.Pos(), false))
		return
	}
	if inner, ok := child.(*ir.TemporalOperator); ok {
		switch inner.TKind {
		case ir.TFuture:
			ni := types.NewInterval(t.Interval.LB+inner.Interval.LB, t.Interval.UB+inner.Interval.UB)
			ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TFuture, ni, inner.Children()[0]))
			return
		case ir.TGlobal:
			if t.Interval.LB == t.Interval.UB {
				a := t.Interval.LB
				ni := types.NewInterval(inner.Interval.LB+a, inner.Interval.UB+a)
				ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TGlobal, ni, inner.Children()[0]))
				return
			}
			if inner.Interval.LB == inner.Interval.UB {
				a := inner.Interval.LB
				ni := types.NewInterval(t.Interval.LB+a, t.Interval.UB+a)
				ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TFuture, ni, inner.Children()[0]))
				return
			}
		}
	}
}

// rewriteUntil applies p U[l,u1] (G[0,u2] p) → G[l, l+u2] p and
// p U[l,u1] (F[0,u2] p) → F[l, l+u2] p.
func rewriteUntil(t *ir.TemporalOperator) {
	p, q := t.Children()[0], t.Children()[1]
	qt, ok := q.(*ir.TemporalOperator)
	if !ok || qt.Interval.LB != 0 || !ir.StructurallyEqual(qt.Children()[0], p) {
		return
	}
	ni := types.NewInterval(t.Interval.LB, t.Interval.LB+qt.Interval.UB)
	switch qt.TKind {
	case ir.TGlobal:
		ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TGlobal, ni, p))
	case ir.TFuture:
		ir.Replace(t, ir.NewTemporalOperator(t.Pos(), ir.TFuture, ni, p))
	}
}

// rewriteAndOr scans every pair of operands for a collapsible or
// factorable temporal pattern and rebuilds the operator if any pair
// combined (§4.4's interval-coalescing, factoring, and Until-absorption
// rules, generalized across an n-ary operand list).
func rewriteAndOr(t *ir.Operator, isAnd bool) {
	kids := append([]ir.Expression(nil), t.Children()...)
	changed := false

restart:
	for i := 0; i < len(kids); i++ {
		for j := i + 1; j < len(kids); j++ {
			var combined ir.Expression
			var ok bool
			if isAnd {
				combined, ok = combinePairAnd(t.Pos(), kids[i], kids[j])
			} else {
				combined, ok = combinePairOr(t.Pos(), kids[i], kids[j])
			}
			if !ok {
				continue
			}
			next := make([]ir.Expression, 0, len(kids)-1)
			next = append(next, kids[:i]...)
			next = append(next, combined)
			next = append(next, kids[i+1:j]...)
			next = append(next, kids[j+1:]...)
			kids = next
			changed = true
			goto restart
		}
	}

	if !changed {
		return
	}
	if len(kids) == 1 {
		ir.Replace(t, kids[0])
		return
	}
	ir.Replace(t, ir.NewOperator(t.Pos(), t.OpKind, kids...))
}

func intervalsOverlapOrAdjacent(a, b types.Interval) bool {
	return a.UB+1 >= b.LB && b.UB+1 >= a.LB
}

func intersectIntervals(a, b types.Interval) (types.Interval, bool) {
	lb := max(a.LB, b.LB)
	ub := min(a.UB, b.UB)
	if lb > ub {
		return types.Interval{}, false
	}
	return types.NewInterval(lb, ub), true
}

func factorGlobal(pos types.Position, a, b *ir.TemporalOperator) ir.Expression {
	l1, u1 := a.Interval.LB, a.Interval.UB
	l2, u2 := b.Interval.LB, b.Interval.UB
	l3 := min(l1, l2)
	u3 := l3 + min(u1-l1, u2-l2)
	inner := ir.NewOperator(pos, ir.OpAnd,
		ir.NewTemporalOperator(pos, ir.TGlobal, types.NewInterval(l1-l3, u1-u3), a.Children()[0]),
		ir.NewTemporalOperator(pos, ir.TGlobal, types.NewInterval(l2-l3, u2-u3), b.Children()[0]))
	return ir.NewTemporalOperator(pos, ir.TGlobal, types.NewInterval(l3, u3), inner)
}

func factorFuture(pos types.Position, a, b *ir.TemporalOperator) ir.Expression {
	l1, u1 := a.Interval.LB, a.Interval.UB
	l2, u2 := b.Interval.LB, b.Interval.UB
	l3 := min(l1, l2)
	u3 := l3 + min(u1-l1, u2-l2)
	inner := ir.NewOperator(pos, ir.OpOr,
		ir.NewTemporalOperator(pos, ir.TFuture, types.NewInterval(l1-l3, u1-u3), a.Children()[0]),
		ir.NewTemporalOperator(pos, ir.TFuture, types.NewInterval(l2-l3, u2-u3), b.Children()[0]))
	return ir.NewTemporalOperator(pos, ir.TFuture, types.NewInterval(l3, u3), inner)
}

func combinePairAnd(pos types.Position, a, b ir.Expression) (ir.Expression, bool) {
	ta, aok := a.(*ir.TemporalOperator)
	tb, bok := b.(*ir.TemporalOperator)
	if !aok || !bok {
		return nil, false
	}

	if ta.TKind == ir.TGlobal && tb.TKind == ir.TGlobal {
		if ir.StructurallyEqual(ta.Children()[0], tb.Children()[0]) {
			if intervalsOverlapOrAdjacent(ta.Interval, tb.Interval) {
				return ir.NewTemporalOperator(pos, ir.TGlobal, ta.Interval.Union(tb.Interval), ta.Children()[0]), true
			}
			return nil, false
		}
		return factorGlobal(pos, ta, tb), true
	}

	if ta.TKind == ir.TFuture && tb.TKind == ir.TFuture {
		if ir.StructurallyEqual(ta.Children()[0], tb.Children()[0]) {
			if iv, ok := intersectIntervals(ta.Interval, tb.Interval); ok {
				return ir.NewTemporalOperator(pos, ir.TFuture, iv, ta.Children()[0]), true
			}
		}
		return nil, false
	}

	if ta.TKind == ir.TUntil && tb.TKind == ir.TUntil {
		p, q := ta.Children()[0], ta.Children()[1]
		r, s := tb.Children()[0], tb.Children()[1]
		if ta.Interval.LB == tb.Interval.LB && ir.StructurallyEqual(q, s) {
			ub := min(ta.Interval.UB, tb.Interval.UB)
			and := ir.NewOperator(pos, ir.OpAnd, p, r)
			return ir.NewTemporalOperator(pos, ir.TUntil, types.NewInterval(ta.Interval.LB, ub), and, q), true
		}
	}
	return nil, false
}

func combinePairOr(pos types.Position, a, b ir.Expression) (ir.Expression, bool) {
	ta, aok := a.(*ir.TemporalOperator)
	tb, bok := b.(*ir.TemporalOperator)
	if !aok || !bok {
		return nil, false
	}

	if ta.TKind == ir.TFuture && tb.TKind == ir.TFuture {
		if ir.StructurallyEqual(ta.Children()[0], tb.Children()[0]) {
			if intervalsOverlapOrAdjacent(ta.Interval, tb.Interval) {
				return ir.NewTemporalOperator(pos, ir.TFuture, ta.Interval.Union(tb.Interval), ta.Children()[0]), true
			}
			return nil, false
		}
		return factorFuture(pos, ta, tb), true
	}

	if ta.TKind == ir.TGlobal && tb.TKind == ir.TGlobal {
		if ir.StructurallyEqual(ta.Children()[0], tb.Children()[0]) {
			if iv, ok := intersectIntervals(ta.Interval, tb.Interval); ok {
				return ir.NewTemporalOperator(pos, ir.TGlobal, iv, ta.Children()[0]), true
			}
		}
		return nil, false
	}

	return nil, false
}
