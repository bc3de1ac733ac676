package smt

import (
	"fmt"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// DefaultSolver is the binary name probed when a compile enables check_sat.
// The original drives z3 the same way, as a subprocess given a .smt2 file.
const DefaultSolver = "z3"

// CheckResult records the outcome for one FT spec.
type CheckResult struct {
	Formula string
	Verdict Verdict
	Output  string
}

// CheckSatisfiability runs the satisfiability check (C8) over every FT spec
// in the program, skipping PT specs and already-desugared contracts (§4.7).
// It never fails the compile: an unsat or unknown formula is reported as a
// warning, since a vacuously unsatisfiable requirement is a spec-author
// error, not a compiler error.
func CheckSatisfiability(ctx *program.Context, wd *program.Workdir) ([]CheckResult, error) {
	if !SolverAvailable(DefaultSolver) {
		ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("solver %q not found on PATH, skipping check_sat", DefaultSolver))
		return nil, nil
	}

	var results []CheckResult
	for i, f := range ctx.Program.FTSpecs {
		query, err := EncodeSatQuery(f.Body())
		if err != nil {
			if _, ok := err.(ErrReleaseUnsupported); ok {
				ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("%s: %v, skipping", f.Symbol, err))
				continue
			}
			return results, err
		}

		scratch := wd.File(fmt.Sprintf("sat_%s_%d.smt2", f.Symbol, i))
		verdict, out, err := Run(DefaultSolver, query, ctx.Config.TimeoutSATSeconds, scratch)
		if err != nil {
			return results, err
		}
		results = append(results, CheckResult{Formula: f.Symbol, Verdict: verdict, Output: out})

		if verdict == Unsat {
			ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("%s is unsatisfiable: no trace can satisfy it", f.Symbol))
		} else if verdict == Unknown {
			ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("%s: solver returned unknown within %ds", f.Symbol, ctx.Config.TimeoutSATSeconds))
		}
	}
	return results, nil
}

// CheckEquivalent reports whether a and b are logically equivalent; internal/eqsat
// records the verdict as telemetry for its extraction candidate (§4.5, §9).
// It returns an error, which eqsat records as unknown, when the solver is
// absent, when a Release operator cannot be encoded, or when the solver's
// verdict is unknown.
func CheckEquivalent(ctx *program.Context, wd *program.Workdir, tag string, a, b ir.Expression) (bool, error) {
	if !SolverAvailable(DefaultSolver) {
		ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("solver %q not found on PATH, skipping equivalence check for %s", DefaultSolver, tag))
		return false, fmt.Errorf("smt: solver %q not available", DefaultSolver)
	}

	query, err := EncodeEquivQuery(a, b)
	if err != nil {
		if _, ok := err.(ErrReleaseUnsupported); ok {
			ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("%s: %v, skipping equivalence check", tag, err))
		}
		return false, err
	}

	scratch := wd.File(fmt.Sprintf("equiv_%s.smt2", tag))
	verdict, _, err := Run(DefaultSolver, query, ctx.Config.TimeoutSATSeconds, scratch)
	if err != nil {
		return false, err
	}

	switch verdict {
	case Unsat:
		return true, nil
	case Sat:
		ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("%s: rewrite candidate is not equivalent to the original", tag))
		return false, nil
	default:
		ctx.Log.Warning(diag.CodeSat, fmt.Sprintf("%s: equivalence check returned unknown", tag))
		return false, fmt.Errorf("smt: equivalence of %s is unknown", tag)
	}
}
