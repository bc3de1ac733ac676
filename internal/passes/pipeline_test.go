package passes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/passes"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

func TestRunAssignsEngineTagsAndSCQSizesWithDefaultConfig(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.BoolType{})
	b := ir.NewSignal(types.EmptyPosition, "b")
	b.SetType(types.BoolType{})
	p.Signals["a"] = a
	p.Signals["b"] = b

	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b)
	g := ir.NewTemporalOperator(types.EmptyPosition, ir.TGlobal, types.NewInterval(0, 2), and)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, g)
	p.FTSpecs = append(p.FTSpecs, f)

	cfg := program.DefaultConfig()
	cfg.EnabledPasses[program.PassEqualitySaturation] = false
	cfg.EnabledPasses[program.PassCheckSat] = false
	ctx := program.NewContext(p, cfg, diag.NewLogger(0, false))

	require.NoError(t, passes.Run(ctx))

	assert.Equal(t, types.EngineTemporalLogic, f.Engine())
	assert.GreaterOrEqual(t, f.SCQSize(), 0)
}

func TestRunNNFTakesPrecedenceOverBNF(t *testing.T) {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.BoolType{})
	p.Signals["a"] = a

	not := ir.NewOperator(types.EmptyPosition, ir.OpNot, a)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, not)
	p.FTSpecs = append(p.FTSpecs, f)

	cfg := program.DefaultConfig()
	cfg.EnabledPasses[program.PassToNNF] = true
	cfg.EnabledPasses[program.PassToBNF] = true
	cfg.EnabledPasses[program.PassEqualitySaturation] = false
	cfg.EnabledPasses[program.PassCheckSat] = false
	log := diag.NewLogger(0, false)
	ctx := program.NewContext(p, cfg, log)

	require.NoError(t, passes.Run(ctx))
}
