package passes

import (
	"mltlc/internal/program"
	"mltlc/internal/scq"
)

// computeSCQSizes is the mandatory, always-last pipeline step (§4.3 step
// 14). Atomic ids and engine tags are re-derived from the final tree
// immediately before sizing: every earlier pass that replaces a node with
// a freshly built one (the rewrite optimizer, NNF, extended-operator
// removal, CSE) produces nodes with no engine/atomic-id tag of their own,
// so invariant I6 ("SCQ sizing applies to the final IR only") requires
// recomputing these structural tags against the settled tree rather than
// trusting whatever a node happened to carry mid-pipeline.
func computeSCQSizes(ctx *program.Context) {
	computeAtomics(ctx)
	for _, f := range ctx.Program.FTSpecs {
		ComputePD(f.Body())
	}
	scq.Compute(ctx)
}
