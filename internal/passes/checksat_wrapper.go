package passes

import (
	"mltlc/internal/program"
	"mltlc/internal/smt"
)

// checkSat is the optional pipeline step (§4.3 step 13) that asks an
// external SMT solver whether each FT spec is satisfiable. It requires a
// scoped workdir to drop query files in; compiles that enable check_sat
// without acquiring one get a clear error instead of a silent skip.
func checkSat(ctx *program.Context) error {
	if ctx.Workdir == nil {
		return errNoWorkdir{}
	}
	_, err := smt.CheckSatisfiability(ctx, ctx.Workdir)
	return err
}

type errNoWorkdir struct{}

func (errNoWorkdir) Error() string {
	return "check_sat requires a working directory to stage SMT queries in"
}
