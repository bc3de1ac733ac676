// Package scq implements the Shared Connection Queue sizer (C9): the final
// memory-budget pass that runs after every rewrite has settled (I6).
package scq

import (
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

// Compute sizes every node reachable from an FT spec, allocating a
// sequential [start,end) offset into the program-wide SCQ address space as
// it goes (§4.6). Callers must have already populated BPD/WPD on the final
// IR (see passes.ComputePD) before calling this.
func Compute(ctx *program.Context) {
	offset := 0
	for _, f := range ctx.Program.FTSpecs {
		sizeOne(ctx, f, &offset)
	}
}

func sizeOne(ctx *program.Context, f *ir.Formula, offset *int) {
	f.SetSCQSize(1)

	nodes := ir.Postorder(f.Body())
	for _, n := range nodes {
		sizeNode(ctx, n)
	}

	total := make(map[uint64]int, len(nodes)+1)
	for _, n := range nodes {
		sum := n.SCQSize()
		for _, c := range n.Children() {
			sum += total[c.ID()]
		}
		total[n.ID()] = sum
		n.SetTotalSCQSize(sum)

		start := *offset
		*offset += n.SCQSize()
		n.SetSCQOffset(start, *offset)
	}

	bodyTotal := total[f.Body().ID()]
	f.SetTotalSCQSize(bodyTotal + 1)
	start := *offset
	*offset++
	f.SetSCQOffset(start, *offset)
}

func sizeNode(ctx *program.Context, n ir.Expression) {
	isTemporal := n.Engine() == types.EngineTemporalLogic
	isAtomic := n.AtomicID() >= 0
	if !isTemporal && !isAtomic {
		n.SetSCQSize(0)
		return
	}

	maxWPD := 0
	for _, p := range n.Parents() {
		for _, sib := range p.Children() {
			if sib == nil || sib.ID() == n.ID() {
				continue
			}
			if sib.WPD() > maxWPD {
				maxWPD = sib.WPD()
			}
		}
	}

	q := maxWPD - n.BPD()
	if q < 0 {
		q = 0
	}

	if _, isProb := n.(*ir.ProbabilityOperator); isProb {
		buffer := 0
		for _, p := range n.Parents() {
			if top, ok := p.(*ir.TemporalOperator); ok {
				if w := top.Interval.UB - top.Interval.LB; w > buffer {
					buffer = w
				}
			}
		}
		q += buffer
	}

	h := ctx.Config.MaxPredictionHorizon - 1
	if h < 0 {
		h = 0
	}
	m := q
	if h < m {
		m = h
	}
	n.SetSCQSize(q + m + 1)
}
