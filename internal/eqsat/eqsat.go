package eqsat

import (
	"fmt"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/smt"
)

// DefaultPrelude is the rule prelude every saturation run is built from.
// It declares the MLTL sort with the fixed-arity constructors (Bool, Var,
// Not, Implies, Equiv, Xor, Interval, Global, Future, Until, Release) and
// an empty mltl-rules ruleset. It declares no arity-tagged AndN<k>/OrN<k>
// constructors and no rewrite rules.
const DefaultPrelude = `
(datatype MLTL
  (Bool bool)
  (Var String)
  (Not MLTL)
  (Implies MLTL MLTL)
  (Equiv MLTL MLTL)
  (Xor MLTL MLTL)
  (Interval i64 i64)
  (Global Interval MLTL)
  (Future Interval MLTL)
  (Until Interval MLTL MLTL)
  (Release Interval MLTL MLTL))
(ruleset mltl-rules)
`

// Telemetry is the outcome recorded for one eqsat run; the set is exactly
// {equiv, not-equiv, unknown, timeout} per P8.
type Telemetry string

const (
	TelemetryEquiv    Telemetry = "equiv"
	TelemetryNotEquiv Telemetry = "not-equiv"
	TelemetryUnknown  Telemetry = "unknown"
	TelemetryTimeout  Telemetry = "timeout"
)

// Result is one formula's saturation outcome.
type Result struct {
	Formula   string
	Replaced  ir.Expression
	Telemetry Telemetry
}

// Optimize runs equality saturation over every FT and PT spec (C7) and
// replaces each formula's body with the extracted candidate. Per the
// explicit design knob recorded in DESIGN.md, the replacement is
// unconditional: the equivalence verdict is recorded as telemetry only.
func Optimize(ctx *program.Context) ([]Result, error) {
	if ctx.Workdir == nil {
		return nil, fmt.Errorf("eqsat: optimize_eqsat requires a working directory")
	}
	if !EngineAvailable(DefaultEngine) {
		ctx.Log.Warning(diag.CodeEqSat, fmt.Sprintf("saturation engine %q not found on PATH, skipping optimize_eqsat", DefaultEngine))
		return nil, nil
	}

	var results []Result
	for _, f := range ctx.Program.AllFormulas() {
		res, err := optimizeOne(ctx, f)
		if err != nil {
			ctx.Log.Warning(diag.CodeEqSat, fmt.Sprintf("%s: %v, leaving formula unchanged", f.Symbol, err))
			continue
		}
		if res != nil {
			results = append(results, *res)
		}
	}
	return results, nil
}

func optimizeOne(ctx *program.Context, f *ir.Formula) (*Result, error) {
	root := f.Body()

	sexpr, err := EncodeExpr(root)
	if err != nil {
		return nil, err
	}
	eggSource := BuildEggFile(DefaultPrelude, sexpr)

	eggPath := ctx.Workdir.File(f.Symbol + ".egg")
	g, err := Saturate(DefaultEngine, eggPath, eggSource, ctx.Config.TimeoutEgglogSeconds)
	if err != nil {
		if _, isTimeout := err.(ErrTimeout); isTimeout {
			ctx.Log.Warning(diag.CodeEqSat, fmt.Sprintf("%s: saturation timed out", f.Symbol))
			return &Result{Formula: f.Symbol, Replaced: root, Telemetry: TelemetryTimeout}, nil
		}
		return nil, err
	}

	rootClass, err := FindRoot(root, g)
	if err != nil {
		return nil, err
	}

	classPD := ComputePD(g)
	extraction := Extract(g, classPD)
	atomics := CollectAtomics(root)

	extracted, err := BuildIR(rootClass, extraction, atomics, root.Pos())
	if err != nil {
		return nil, err
	}

	telemetry := TelemetryUnknown
	equivalent, err := smt.CheckEquivalent(ctx, ctx.Workdir, f.Symbol+"_eqsat", root, extracted)
	if err == nil {
		if equivalent {
			telemetry = TelemetryEquiv
		} else {
			telemetry = TelemetryNotEquiv
		}
	}

	ctx.Program.ReplaceFormula(f, extracted)

	return &Result{Formula: f.Symbol, Replaced: extracted, Telemetry: telemetry}, nil
}
