package typecheck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/typecheck"
	"mltlc/internal/types"
)

func newCtx(p *program.Program) *program.Context {
	return program.NewContext(p, program.DefaultConfig(), diag.NewLogger(0, false))
}

func TestCheckAcceptsBoolSignalFormula(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.BoolType{})
	p.Signals["a"] = a

	f := ir.NewFormula(types.EmptyPosition, "p0", 0, a)
	p.FTSpecs = append(p.FTSpecs, f)

	ctx := newCtx(p)
	ok := typecheck.Check(ctx)
	require.True(t, ok)
	assert.Equal(t, types.BoolType{}, a.Type())
}

func TestCheckRejectsUndeclaredSignal(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "missing")

	f := ir.NewFormula(types.EmptyPosition, "p0", 0, a)
	p.FTSpecs = append(p.FTSpecs, f)

	ctx := newCtx(p)
	ok := typecheck.Check(ctx)
	assert.False(t, ok)
	assert.True(t, ctx.HasErrors())
}

func TestCheckRejectsNonBoolSignalWithoutBooleanizerFrontend(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.IntType{Width: 32, Signed: true})
	p.Signals["a"] = a

	f := ir.NewFormula(types.EmptyPosition, "p0", 0, a)
	p.FTSpecs = append(p.FTSpecs, f)

	ctx := newCtx(p)
	ok := typecheck.Check(ctx)
	assert.False(t, ok)
}

func TestCheckAcceptsAtomicDefWithAtomicCheckerFrontend(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.IntType{Width: 32, Signed: true})
	p.Signals["a"] = a

	rel := ir.NewOperator(types.EmptyPosition, ir.OpGreaterThan, a, ir.NewConstantInt(types.EmptyPosition, 0))
	atomic := ir.NewAtomicRef(types.EmptyPosition, "atomic_0", rel)
	p.Atomics["atomic_0"] = atomic

	f := ir.NewFormula(types.EmptyPosition, "p0", 0, atomic)
	p.FTSpecs = append(p.FTSpecs, f)

	cfg := program.DefaultConfig()
	cfg.Frontend = types.EngineAtomicChecker
	ctx := program.NewContext(p, cfg, diag.NewLogger(0, false))

	ok := typecheck.Check(ctx)
	require.True(t, ok)
	assert.Equal(t, types.BoolType{}, atomic.Type())
}

func TestCheckRejectsAtomicDefWithNonRelationalBody(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.BoolType{})
	p.Signals["a"] = a

	atomic := ir.NewAtomicRef(types.EmptyPosition, "atomic_0", a)
	p.Atomics["atomic_0"] = atomic

	cfg := program.DefaultConfig()
	cfg.Frontend = types.EngineAtomicChecker
	ctx := program.NewContext(p, cfg, diag.NewLogger(0, false))

	ok := typecheck.Check(ctx)
	assert.False(t, ok)
}

func TestCheckRejectsOutOfRangeProbabilityBound(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.BoolType{})
	p.Signals["a"] = a

	prob := ir.NewProbabilityOperator(types.EmptyPosition, 1.5, a)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, prob)
	p.FTSpecs = append(p.FTSpecs, f)

	ctx := newCtx(p)
	ok := typecheck.Check(ctx)
	assert.False(t, ok)
}
