package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// multiOperatorsToBinary left-associatively reassociates n-ary ∧, ∨, +, ×
// (n >= 3) into nested binary operators (§4.3 step 11).
func multiOperatorsToBinary(ctx *program.Context) {
	for _, f := range ctx.Program.AllFormulas() {
		for _, n := range ir.Postorder(f.Body()) {
			op, ok := n.(*ir.Operator)
			if !ok || !isFlattenable(op.OpKind) || len(op.Children()) < 3 {
				continue
			}
			ir.Replace(op, leftAssociate(op))
		}
	}
}

func isFlattenable(k ir.OperatorKind) bool {
	switch k {
	case ir.OpAnd, ir.OpOr, ir.OpAdd, ir.OpMultiply:
		return true
	}
	return false
}

func leftAssociate(op *ir.Operator) ir.Expression {
	kids := op.Children()
	acc := kids[0]
	for _, k := range kids[1:] {
		acc = ir.NewOperator(op.Pos(), op.OpKind, acc, k)
	}
	return acc
}
