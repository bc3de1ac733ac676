package eqsat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/eqsat"
	"mltlc/internal/ir"
	"mltlc/internal/types"
)

// graph encodes (AndN2 a0 (Global [0,3] a1)), with a redundant second,
// pricier e-node in the And e-class to verify extraction picks the cheaper
// representative.
func sampleGraph() *eqsat.EGraph {
	return &eqsat.EGraph{
		Root: "c-and",
		EClasses: map[string][]eqsat.ENode{
			"c-a0": {{Op: "Var", Str: "a0"}},
			"c-a1": {{Op: "Var", Str: "a1"}},
			"c-g":  {{Op: "Global", Interval: &[2]int{0, 3}, Children: []string{"c-a1"}}},
			"c-and": {
				{Op: "AndN2", Children: []string{"c-a0", "c-g"}},
				{Op: "AndN2", Children: []string{"c-g", "c-g"}},
			},
		},
	}
}

func TestComputePDPropagatesThroughGlobal(t *testing.T) {
	g := sampleGraph()
	pds := eqsat.ComputePD(g)

	assert.Equal(t, eqsat.PD{BPD: 0, WPD: 0}, pds["c-a1"])
	assert.Equal(t, eqsat.PD{BPD: 0, WPD: 3}, pds["c-g"])
}

func TestExtractPicksLowerCostRepresentative(t *testing.T) {
	g := sampleGraph()
	pds := eqsat.ComputePD(g)
	ex := eqsat.Extract(g, pds)

	require.Contains(t, ex.Best, "c-and")
	assert.Equal(t, []string{"c-a0", "c-g"}, ex.Best["c-and"].Children)
}

func TestBuildIRReconstructsAtomicsByID(t *testing.T) {
	g := sampleGraph()
	pds := eqsat.ComputePD(g)
	ex := eqsat.Extract(g, pds)

	a0 := ir.NewSignal(types.EmptyPosition, "a")
	a0.SetAtomicID(0)
	a1 := ir.NewSignal(types.EmptyPosition, "b")
	a1.SetAtomicID(1)
	atomics := map[int]ir.Expression{0: a0, 1: a1}

	rebuilt, err := eqsat.BuildIR("c-and", ex, atomics, types.EmptyPosition)
	require.NoError(t, err)

	and, ok := rebuilt.(*ir.Operator)
	require.True(t, ok)
	assert.Equal(t, ir.OpAnd, and.OpKind)
	require.Len(t, and.Children(), 2)
	assert.Equal(t, a0.ID(), and.Children()[0].ID())

	global, ok := and.Children()[1].(*ir.TemporalOperator)
	require.True(t, ok)
	assert.Equal(t, ir.TGlobal, global.TKind)
	assert.Equal(t, 0, global.Interval.LB)
	assert.Equal(t, 3, global.Interval.UB)
	assert.Equal(t, a1.ID(), global.Children()[0].ID())
}

func TestCollectAtomicsDedupesByID(t *testing.T) {
	shared := ir.NewSignal(types.EmptyPosition, "shared")
	shared.SetAtomicID(0)
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, shared, shared)

	atomics := eqsat.CollectAtomics(and)
	require.Len(t, atomics, 1)
	assert.Equal(t, shared.ID(), atomics[0].ID())
}
