package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// unrollSetAggregation rewrites ForEach/ForSome into a finite conjunction/
// disjunction over the set's members, with the bound variable renamed into
// each copy, and ForExactly/ForAtLeast/ForAtMost into a sum-of-members
// comparison against the threshold (§4.3 step 4, mandatory).
func unrollSetAggregation(ctx *program.Context) {
	changed := true
	for changed {
		changed = false
		for _, root := range allRoots(ctx) {
			for _, e := range ir.Preorder(root) {
				agg, ok := e.(*ir.SetAggregation)
				if !ok {
					continue
				}
				set, ok := agg.Set().(*ir.SetExpression)
				if !ok {
					continue // not yet resolved (e.g. via a Variable) -- retried next outer iteration
				}
				replacement := unrollOne(agg, set)
				ir.Replace(agg, replacement)
				changed = true
			}
			if changed {
				break
			}
		}
	}
}

func unrollOne(agg *ir.SetAggregation, set *ir.SetExpression) ir.Expression {
	members := set.Children()
	copies := make([]ir.Expression, len(members))
	for i, m := range members {
		copies[i] = ir.Rename(agg.BoundVar, m, agg.Body())
	}

	switch agg.AggKind {
	case ir.ForEach:
		if len(copies) == 1 {
			return copies[0]
		}
		return ir.NewOperator(agg.Pos(), ir.OpAnd, copies...)
	case ir.ForSome:
		if len(copies) == 1 {
			return copies[0]
		}
		return ir.NewOperator(agg.Pos(), ir.OpOr, copies...)
	default:
		var sum ir.Expression
		if len(copies) == 1 {
			sum = copies[0]
		} else {
			sum = ir.NewOperator(agg.Pos(), ir.OpAdd, copies...)
		}
		n := ir.NewConstantInt(agg.Pos(), int64(agg.N))
		switch agg.AggKind {
		case ir.ForExactly:
			return ir.NewOperator(agg.Pos(), ir.OpEqual, sum, n)
		case ir.ForAtLeast:
			return ir.NewOperator(agg.Pos(), ir.OpGreaterEqual, sum, n)
		default: // ForAtMost
			return ir.NewOperator(agg.Pos(), ir.OpLessEqual, sum, n)
		}
	}
}
