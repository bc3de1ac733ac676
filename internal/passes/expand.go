package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// expandDefinitions inlines every Variable whose symbol names a DEFINE
// entry or a specification, replacing it with a fresh copy of that
// definition's expression (§4.3 step 1, mandatory). Each inlining site
// gets an independently identified subtree so that a later structural
// mutation at one use site cannot affect another.
func expandDefinitions(ctx *program.Context) {
	for _, f := range ctx.Program.AllFormulas() {
		expandInBody(ctx, f)
	}
	for _, c := range ctx.Program.Contracts {
		expandInBody(ctx, c)
	}
}

func expandInBody(ctx *program.Context, root ir.Expression) {
	changed := true
	for changed {
		changed = false
		for _, e := range ir.Preorder(root) {
			v, ok := e.(*ir.Variable)
			if !ok {
				continue
			}
			target, found := ctx.LookupSymbol(v.Symbol)
			if !found {
				continue
			}
			replacement := ir.Clone(target)
			ir.Replace(v, replacement)
			changed = true
			break // node set changed; restart preorder from the (new) root
		}
	}
}
