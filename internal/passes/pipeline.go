// Package passes implements the fixed-order transformation pipeline (C5),
// the rewrite optimizer (C6), and the glue that invokes equality saturation
// (C7), the SMT satisfiability check (C8), and SCQ sizing (C9).
package passes

import (
	"mltlc/internal/diag"
	"mltlc/internal/program"
)

// Run executes every pass in the fixed order of §4.3, skipping passes the
// Config disables (mandatory passes always run). NNF and BNF are mutually
// exclusive (NNF wins, with a warning); equality saturation is mutually
// exclusive with the rewrite optimizer, CSE, extended-operator removal, and
// multi-arity-to-binary conversion.
func Run(ctx *program.Context) error {
	cfg := ctx.Config

	expandDefinitions(ctx)
	convertFunctionCallsToStructs(ctx)
	resolveContracts(ctx)
	unrollSetAggregation(ctx)
	resolveStructAccesses(ctx)

	if cfg.PassEnabled(program.PassComputeAtomics) {
		computeAtomics(ctx)
	}

	eqsatRequested := cfg.PassEnabled(program.PassEqualitySaturation)

	if !eqsatRequested && cfg.PassEnabled(program.PassRewriteOptimize) {
		optimizeRewriteRules(ctx)
	}

	if eqsatRequested {
		if err := optimizeEqSat(ctx); err != nil {
			return err
		}
	}

	nnf := cfg.PassEnabled(program.PassToNNF)
	bnf := cfg.PassEnabled(program.PassToBNF)
	if nnf && bnf {
		ctx.Log.Warning(diag.CodePasses, "both NNF and BNF requested; NNF takes precedence")
		bnf = false
	}
	if nnf {
		toNNF(ctx)
	} else if bnf {
		toBNF(ctx)
	}

	if !eqsatRequested && cfg.PassEnabled(program.PassRemoveExtendedOps) {
		removeExtendedOperators(ctx)
	}

	if !eqsatRequested && cfg.PassEnabled(program.PassMultiArityToBinary) {
		multiOperatorsToBinary(ctx)
	}

	if !eqsatRequested && cfg.PassEnabled(program.PassCSE) {
		optimizeCSE(ctx)
	}

	if cfg.PassEnabled(program.PassCheckSat) {
		if err := checkSat(ctx); err != nil {
			return err
		}
	}

	computeSCQSizes(ctx)

	return nil
}
