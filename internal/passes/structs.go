package passes

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// convertFunctionCallsToStructs rewrites any FunctionCall whose symbol
// names a struct into a Struct node with positional member assignment
// (§4.3 step 2, mandatory).
func convertFunctionCallsToStructs(ctx *program.Context) {
	for _, root := range allRoots(ctx) {
		for _, e := range ir.Preorder(root) {
			call, ok := e.(*ir.FunctionCall)
			if !ok {
				continue
			}
			def, ok := ctx.Program.Structs[call.Symbol]
			if !ok {
				continue
			}
			s := ir.NewStruct(call.Pos(), call.Symbol, append([]string(nil), def.Members...), call.Children())
			ir.Replace(call, s)
		}
	}
}

// resolveStructAccesses replaces each StructAccess with the corresponding
// member expression from its struct (§4.3 step 5, mandatory).
func resolveStructAccesses(ctx *program.Context) {
	changed := true
	for changed {
		changed = false
		for _, root := range allRoots(ctx) {
			for _, e := range ir.Preorder(root) {
				acc, ok := e.(*ir.StructAccess)
				if !ok {
					continue
				}
				st, ok := acc.Children()[0].(*ir.Struct)
				if !ok {
					continue
				}
				idx := -1
				for i, m := range st.Members {
					if m == acc.Member {
						idx = i
						break
					}
				}
				if idx < 0 || idx >= len(st.Children()) {
					continue
				}
				ir.Replace(acc, ir.Clone(st.Children()[idx]))
				changed = true
			}
			if changed {
				break
			}
		}
	}
}

// allRoots returns every formula/contract body root the pipeline mutates.
func allRoots(ctx *program.Context) []ir.Expression {
	out := make([]ir.Expression, 0)
	for _, f := range ctx.Program.AllFormulas() {
		out = append(out, f)
	}
	for _, c := range ctx.Program.Contracts {
		out = append(out, c)
	}
	return out
}
