package eqsat

import "strings"

// ownCost is the local SCQ cost of a single e-node (§4.5): constants and
// variables cost 1; Global/Future/Not have no sibling set to account for
// and also cost 1; every other combinator pays 1 plus, per child, the slack
// between that child's best-case delay and the highest worst-case delay
// among its siblings.
func ownCost(n ENode, classPD map[string]PD) int {
	if len(n.Children) == 0 {
		return 1
	}
	if n.Op == "Not" || strings.HasPrefix(n.Op, "Global") || strings.HasPrefix(n.Op, "Future") {
		return 1
	}

	wpds := make([]int, len(n.Children))
	bpds := make([]int, len(n.Children))
	for i, id := range n.Children {
		p := classPD[id]
		wpds[i] = p.WPD
		bpds[i] = p.BPD
	}

	cost := 1
	for i := range n.Children {
		maxSib := 0
		first := true
		for j := range n.Children {
			if j == i {
				continue
			}
			if first || wpds[j] > maxSib {
				maxSib = wpds[j]
			}
			first = false
		}
		slack := maxSib - bpds[i]
		if slack < 0 {
			slack = 0
		}
		cost += slack
	}
	return cost
}

// Extraction picks, for every e-class, the e-node minimizing total_cost =
// own_cost + sum(total_cost(best representative of each child e-class)).
type Extraction struct {
	Best map[string]ENode
	Cost map[string]int
}

// Extract runs the cost-minimizing extraction over the whole e-graph. It
// uses a Bellman-Ford-style relaxation rather than naive recursion since an
// e-graph's e-class dependency graph is not guaranteed acyclic.
func Extract(g *EGraph, classPD map[string]PD) *Extraction {
	best := map[string]ENode{}
	cost := map[string]int{}

	limit := 2*len(g.EClasses) + 2
	for iter := 0; iter < limit; iter++ {
		changed := false
		for id, nodes := range g.EClasses {
			for _, n := range nodes {
				total := ownCost(n, classPD)
				ok := true
				for _, childID := range n.Children {
					c, known := cost[childID]
					if !known {
						ok = false
						break
					}
					total += c
				}
				if !ok {
					continue
				}
				if cur, known := cost[id]; !known || total < cur {
					cost[id] = total
					best[id] = n
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return &Extraction{Best: best, Cost: cost}
}
