package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

// computeAtomics assigns the engine tag and, where applicable, the stable
// atomic id described by invariant I5 (§4.3 step 6). Boolean combinators
// and temporal operators reachable from a spec root are tagged
// TEMPORAL_LOGIC; the first non-logical, non-temporal node encountered
// below a temporal-logic parent is the atomic frontier and receives an
// atomic id, shared across syntactically equal subtrees.
func computeAtomics(ctx *program.Context) {
	for _, f := range ctx.Program.AllFormulas() {
		f.SetEngine(types.EngineTemporalLogic)
		markAtomics(ctx, f.Body(), true)
	}
}

func markAtomics(ctx *program.Context, e ir.Expression, underTemporal bool) {
	switch n := e.(type) {
	case *ir.TemporalOperator:
		n.SetEngine(types.EngineTemporalLogic)
		for _, c := range n.Children() {
			markAtomics(ctx, c, true)
		}
	case *ir.ProbabilityOperator:
		n.SetEngine(types.EngineTemporalLogic)
		for _, c := range n.Children() {
			markAtomics(ctx, c, true)
		}
	case *ir.Operator:
		if n.OpKind.IsLogical() {
			n.SetEngine(types.EngineTemporalLogic)
			for _, c := range n.Children() {
				markAtomics(ctx, c, true)
			}
			return
		}
		markAtomicLeaf(ctx, n, underTemporal)
	case *ir.Signal:
		markAtomicLeaf(ctx, n, underTemporal)
	case *ir.AtomicRef:
		n.SetEngine(types.EngineAtomicChecker)
		if underTemporal {
			n.SetAtomicID(ctx.AtomicIDFor(n))
		}
	case *ir.Constant:
		markAtomicLeaf(ctx, n, underTemporal)
	default:
		// Compile-time-only node kinds should already be eliminated by
		// this point; mark conservatively without assigning an atomic id.
		for _, c := range e.Children() {
			markAtomics(ctx, c, underTemporal)
		}
	}
}

// markAtomicLeaf handles any node that sits at the boundary between the
// temporal-logic engine and an atomic/booleanizer engine: Signals,
// Constants, and relational/arithmetic/bitwise Operators.
func markAtomicLeaf(ctx *program.Context, e ir.Expression, underTemporal bool) {
	frontend := ctx.Config.Frontend

	if sig, ok := e.(*ir.Signal); ok && frontend != types.EngineBooleanizer {
		sig.SetEngine(types.EngineNone)
		if underTemporal {
			id := sig.SignalID
			if id < 0 {
				id = ctx.AtomicIDFor(sig)
			}
			sig.SetAtomicID(id)
		}
		return
	}

	if frontend == types.EngineBooleanizer {
		e.SetEngine(types.EngineBooleanizer)
	} else {
		e.SetEngine(types.EngineAtomicChecker)
	}
	if underTemporal {
		e.SetAtomicID(ctx.AtomicIDFor(e))
	}
}
