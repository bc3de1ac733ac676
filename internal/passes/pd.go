package passes

import "mltlc/internal/ir"

// ComputePD computes and attaches the best/worst-case propagation-delay
// pair to every node in root's subtree, postorder. Nodes at the atomic
// frontier (AtomicID already assigned) are treated as zero-delay leaves:
// their content is opaque to the temporal-logic engine's delay accounting.
// This is the same recurrence §4.5 defines over e-classes, applied
// directly to IR nodes so the rewrite optimizer can use it for the
// commutative-operand sort it specifies (§4.4).
func ComputePD(root ir.Expression) {
	for _, n := range ir.Postorder(root) {
		if n.AtomicID() >= 0 {
			n.SetPD(0, 0)
			continue
		}
		switch t := n.(type) {
		case *ir.Constant, *ir.Signal, *ir.Variable, *ir.AtomicRef:
			n.SetPD(0, 0)
		case *ir.Operator:
			if t.OpKind == ir.OpNot {
				c := t.Children()[0]
				n.SetPD(c.BPD(), c.WPD())
				continue
			}
			bpd, wpd := combineMinMax(t.Children())
			n.SetPD(bpd, wpd)
		case *ir.TemporalOperator:
			bpd, wpd := combineMinMax(t.Children())
			n.SetPD(bpd+t.Interval.LB, wpd+t.Interval.UB)
		case *ir.ProbabilityOperator:
			c := t.Children()[0]
			n.SetPD(c.BPD(), c.WPD())
		default:
			bpd, wpd := combineMinMax(n.Children())
			n.SetPD(bpd, wpd)
		}
	}
}

func combineMinMax(children []ir.Expression) (bpd, wpd int) {
	if len(children) == 0 {
		return 0, 0
	}
	bpd, wpd = children[0].BPD(), children[0].WPD()
	for _, c := range children[1:] {
		if c.BPD() < bpd {
			bpd = c.BPD()
		}
		if c.WPD() > wpd {
			wpd = c.WPD()
		}
	}
	return bpd, wpd
}
