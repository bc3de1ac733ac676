package eqsat

// PD is a propagation-delay pair computed over an e-class rather than a
// single node: bpd_max is the best achievable bpd across its e-nodes,
// wpd_min the best achievable wpd (§4.5).
type PD struct {
	BPD int
	WPD int
}

// ComputePD computes bpd_max/wpd_min for every e-class, traversing twice so
// that classes whose children were visited out of order still converge.
func ComputePD(g *EGraph) map[string]PD {
	cur := make(map[string]PD, len(g.EClasses))
	for id := range g.EClasses {
		cur[id] = PD{0, 0}
	}

	for pass := 0; pass < 2; pass++ {
		next := make(map[string]PD, len(cur))
		for id, nodes := range g.EClasses {
			var bpdMax, wpdMin int
			first := true
			for _, n := range nodes {
				b, w := nodePD(n, cur)
				if first || b > bpdMax {
					bpdMax = b
				}
				if first || w < wpdMin {
					wpdMin = w
				}
				first = false
			}
			next[id] = PD{bpdMax, wpdMin}
		}
		cur = next
	}
	return cur
}

func nodePD(n ENode, classPD map[string]PD) (int, int) {
	if len(n.Children) == 0 {
		return 0, 0
	}
	if n.Op == "Not" {
		p := classPD[n.Children[0]]
		return p.BPD, p.WPD
	}
	bpd, wpd := combineChildren(n.Children, classPD)
	if n.Interval != nil {
		bpd += n.Interval[0]
		wpd += n.Interval[1]
	}
	return bpd, wpd
}

func combineChildren(ids []string, classPD map[string]PD) (int, int) {
	var bpd, wpd int
	first := true
	for _, id := range ids {
		p := classPD[id]
		if first || p.BPD < bpd {
			bpd = p.BPD
		}
		if first || p.WPD > wpd {
			wpd = p.WPD
		}
		first = false
	}
	return bpd, wpd
}
