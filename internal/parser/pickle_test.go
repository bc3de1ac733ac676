package parser

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

func buildSampleProgram() *program.Program {
	p := program.New()
	p.AddSection(program.Section{Kind: program.SectionSignals, Symbols: []string{"a", "b"}})

	a := ir.NewSignal(noPos, "a")
	a.SetType(types.BoolType{})
	b := ir.NewSignal(noPos, "b")
	b.SetType(types.BoolType{})
	p.Signals["a"] = a
	p.Signals["b"] = b

	and := ir.NewOperator(noPos, ir.OpAnd, a, b)
	g := ir.NewTemporalOperator(noPos, ir.TGlobal, types.NewInterval(0, 5), and)
	g.SetAtomicID(7)
	g.SetPD(1, 6)
	g.SetSCQSize(4)
	g.SetTotalSCQSize(9)
	g.SetSCQOffset(2, 6)
	g.SetEngine(types.EngineTemporalLogic)

	atomic := ir.NewAtomicRef(noPos, "atomic_0", g)
	p.Atomics["atomic_0"] = atomic

	f := ir.NewFormula(noPos, "p0", 0, atomic)
	p.FTSpecs = append(p.FTSpecs, f)

	p.Structs["Pt"] = &program.StructDef{
		Symbol:      "Pt",
		Members:     []string{"x", "y"},
		MemberTypes: []types.Type{types.IntType{Width: 32, Signed: true}, types.IntType{Width: 32, Signed: true}},
	}

	return p
}

func TestPickleRoundTripPreservesStructureAndMetadata(t *testing.T) {
	orig := buildSampleProgram()
	path := filepath.Join(t.TempDir(), "out.pickle")

	require.NoError(t, SavePickle(path, orig))

	got, err := LoadPickle(path)
	require.NoError(t, err)

	require.Len(t, got.FTSpecs, 1)
	f := got.FTSpecs[0]
	assert.Equal(t, "p0", f.Symbol)

	atomic, ok := f.Body().(*ir.AtomicRef)
	require.True(t, ok)
	assert.Equal(t, "atomic_0", atomic.Symbol)

	g, ok := atomic.Def.(*ir.TemporalOperator)
	require.True(t, ok)
	assert.Equal(t, ir.TGlobal, g.TKind)
	assert.Equal(t, 0, g.Interval.LB)
	assert.Equal(t, 5, g.Interval.UB)
	assert.Equal(t, 7, g.AtomicID())
	assert.Equal(t, types.EngineTemporalLogic, g.Engine())

	bpd, wpd := g.BPD(), g.WPD()
	assert.Equal(t, 1, bpd)
	assert.Equal(t, 6, wpd)
	assert.Equal(t, 4, g.SCQSize())
	assert.Equal(t, 9, g.TotalSCQSize())
	start, end := g.SCQOffset()
	assert.Equal(t, 2, start)
	assert.Equal(t, 6, end)

	and, ok := g.Children()[0].(*ir.Operator)
	require.True(t, ok)
	assert.Equal(t, ir.OpAnd, and.OpKind)
	require.Len(t, and.Children(), 2)

	gotA, ok := and.Children()[0].(*ir.Signal)
	require.True(t, ok)
	assert.Equal(t, "a", gotA.Symbol)
	assert.Equal(t, types.BoolType{}, gotA.Type())

	require.Contains(t, got.Signals, "a")
	assert.Equal(t, gotA.ID(), got.Signals["a"].ID())

	require.Contains(t, got.Structs, "Pt")
	assert.Equal(t, []string{"x", "y"}, got.Structs["Pt"].Members)
	require.Len(t, got.Structs["Pt"].MemberTypes, 2)
	assert.Equal(t, types.IntType{Width: 32, Signed: true}, got.Structs["Pt"].MemberTypes[0])

	require.Len(t, got.Sections, 1)
	assert.Equal(t, program.SectionSignals, got.Sections[0].Kind)
}

func TestPickleSharedSubtreeStaysSharedAcrossRoundTrip(t *testing.T) {
	shared := ir.NewSignal(noPos, "shared")
	and := ir.NewOperator(noPos, ir.OpAnd, shared, shared)
	f := ir.NewFormula(noPos, "p0", 0, and)

	p := program.New()
	p.Signals["shared"] = shared
	p.FTSpecs = append(p.FTSpecs, f)

	path := filepath.Join(t.TempDir(), "shared.pickle")
	require.NoError(t, SavePickle(path, p))

	got, err := LoadPickle(path)
	require.NoError(t, err)

	body := got.FTSpecs[0].Body().(*ir.Operator)
	require.Len(t, body.Children(), 2)
	assert.Equal(t, body.Children()[0].ID(), body.Children()[1].ID())
}
