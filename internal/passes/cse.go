package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// optimizeCSE eliminates syntactically duplicate subexpressions, keyed on
// prefix string, applied independently within the FT and PT spec sets so
// neither set ever shares a node with the other (§4.3 step 12).
// Subexpressions reached through a ProbabilityOperator live in a disjoint
// key namespace ("Pr(...)") so a probabilistic and non-probabilistic use
// of the same expression never alias.
func optimizeCSE(ctx *program.Context) {
	cseSet(ctx.Program.FTSpecs)
	cseSet(ctx.Program.PTSpecs)
}

func cseSet(formulas []*ir.Formula) {
	seen := map[string]ir.Expression{}
	for _, f := range formulas {
		newBody := cseWalk(f.Body(), seen, false)
		if newBody.ID() != f.Body().ID() {
			ir.Replace(f.Body(), newBody)
		}
	}
}

func cseWalk(e ir.Expression, seen map[string]ir.Expression, underProb bool) ir.Expression {
	_, isProb := e.(*ir.ProbabilityOperator)
	childProb := underProb || isProb

	for i, c := range e.Children() {
		newc := cseWalk(c, seen, childProb)
		if newc.ID() != c.ID() {
			e.SetChild(i, newc)
			newc.AddParent(e)
			c.RemoveParent(e)
		}
	}

	key := e.Prefix()
	if underProb {
		key = "Pr(" + key + ")"
	}
	if canon, ok := seen[key]; ok {
		return canon
	}
	seen[key] = e
	return e
}
