package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

// resolveContracts replaces each Contract (A, G) with three synthesized
// Formula entries tracking active=A, valid=A->G, verified=A&&G (§4.3 step
// 3, mandatory). Invariant I3 requires no Contract node survive this pass.
func resolveContracts(ctx *program.Context) {
	contracts := ctx.Program.Contracts
	ctx.Program.Contracts = nil

	for _, c := range contracts {
		a, g := c.Assume(), c.Guarantee()

		active := ir.NewFormula(c.Pos(), c.Symbol+"_active", c.FormulaNumber, ir.Clone(a))

		notG := ir.NewOperator(c.Pos(), ir.OpNot, ir.Clone(g))
		validBody := ir.NewOperator(c.Pos(), ir.OpNot, ir.NewOperator(c.Pos(), ir.OpAnd, ir.Clone(a), notG))
		valid := ir.NewFormula(c.Pos(), c.Symbol+"_valid", c.FormulaNumber, validBody)

		verifiedBody := ir.NewOperator(c.Pos(), ir.OpAnd, ir.Clone(a), ir.Clone(g))
		verified := ir.NewFormula(c.Pos(), c.Symbol+"_verified", c.FormulaNumber, verifiedBody)

		for _, f := range []*ir.Formula{active, valid, verified} {
			f.SetType(types.BoolType{})
		}

		ctx.Program.FTSpecs = append(ctx.Program.FTSpecs, active, valid, verified)
	}
}
