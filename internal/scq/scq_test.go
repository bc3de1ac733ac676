package scq_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/scq"
	"mltlc/internal/types"
)

func TestComputeAssignsSequentialOffsetsAcrossNodesAndFormula(t *testing.T) {
	signal := ir.NewSignal(types.EmptyPosition, "a")
	rel := ir.NewOperator(types.EmptyPosition, ir.OpGreaterThan, signal, ir.NewConstantInt(types.EmptyPosition, 0))
	atomic := ir.NewAtomicRef(types.EmptyPosition, "atomic_0", rel)
	atomic.SetAtomicID(0)
	atomic.SetPD(0, 0)

	g := ir.NewTemporalOperator(types.EmptyPosition, ir.TGlobal, types.NewInterval(0, 3), atomic)
	g.SetEngine(types.EngineTemporalLogic)
	g.SetPD(0, 3)

	f := ir.NewFormula(types.EmptyPosition, "p0", 0, g)

	p := program.New()
	p.FTSpecs = append(p.FTSpecs, f)
	ctx := program.NewContext(p, program.DefaultConfig(), nil)

	scq.Compute(ctx)

	require.Equal(t, 1, atomic.SCQSize())
	start, end := atomic.SCQOffset()
	assert.Equal(t, 0, start)
	assert.Equal(t, 1, end)

	require.Equal(t, 1, g.SCQSize())
	start, end = g.SCQOffset()
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, end)
	assert.Equal(t, 2, g.TotalSCQSize())

	assert.Equal(t, 1, f.SCQSize())
	assert.Equal(t, 3, f.TotalSCQSize())
	start, end = f.SCQOffset()
	assert.Equal(t, 2, start)
	assert.Equal(t, 3, end)
}

func TestComputeSkipsSizingForNonTemporalNonAtomicNodes(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	b := ir.NewSignal(types.EmptyPosition, "b")
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, and)

	p := program.New()
	p.FTSpecs = append(p.FTSpecs, f)
	ctx := program.NewContext(p, program.DefaultConfig(), nil)

	scq.Compute(ctx)

	assert.Equal(t, 0, a.SCQSize())
	assert.Equal(t, 0, b.SCQSize())
	assert.Equal(t, 0, and.SCQSize())
}
