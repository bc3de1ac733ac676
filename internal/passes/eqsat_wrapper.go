package passes

import (
	"mltlc/internal/eqsat"
	"mltlc/internal/program"
)

// optimizeEqSat is the equality-saturation pipeline step (§4.3 step 8),
// mutually exclusive with the rewrite optimizer, extended-operator removal,
// multi-arity-to-binary, and CSE (pipeline.go guards all four on the same
// eqsatRequested flag).
func optimizeEqSat(ctx *program.Context) error {
	if ctx.Workdir == nil {
		return errNoWorkdir{}
	}
	_, err := eqsat.Optimize(ctx)
	return err
}
