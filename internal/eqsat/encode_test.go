package eqsat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/eqsat"
	"mltlc/internal/ir"
	"mltlc/internal/types"
)

func TestEncodeExprAtomicRendersAsVar(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetAtomicID(3)

	s, err := eqsat.EncodeExpr(a)
	require.NoError(t, err)
	assert.Equal(t, `(Var "a3")`, s)
}

func TestEncodeExprAndUsesArityTaggedConstructor(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetAtomicID(0)
	b := ir.NewSignal(types.EmptyPosition, "b")
	b.SetAtomicID(1)
	c := ir.NewSignal(types.EmptyPosition, "c")
	c.SetAtomicID(2)
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b, c)

	s, err := eqsat.EncodeExpr(and)
	require.NoError(t, err)
	assert.Equal(t, `(AndN3 (Var "a0") (Var "a1") (Var "a2"))`, s)
}

func TestEncodeExprGlobalEncodesInterval(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetAtomicID(0)
	g := ir.NewTemporalOperator(types.EmptyPosition, ir.TGlobal, types.NewInterval(2, 7), a)

	s, err := eqsat.EncodeExpr(g)
	require.NoError(t, err)
	assert.Equal(t, `(Global (Interval 2 7) (Var "a0"))`, s)
}

func TestEncodeExprBoolConstant(t *testing.T) {
	c := ir.NewConstantBool(types.EmptyPosition, true)
	s, err := eqsat.EncodeExpr(c)
	require.NoError(t, err)
	assert.Equal(t, "(Bool true)", s)
}

func TestEncodeExprNonBoolConstantUnsupported(t *testing.T) {
	c := ir.NewConstantInt(types.EmptyPosition, 5)
	_, err := eqsat.EncodeExpr(c)
	require.Error(t, err)
	assert.IsType(t, eqsat.ErrUnsupportedNode{}, err)
}

func TestBuildEggFileWrapsRootAndSchedule(t *testing.T) {
	out := eqsat.BuildEggFile("(prelude)", `(Var "a0")`)
	assert.Contains(t, out, "(prelude)")
	assert.Contains(t, out, `(let mltlc-root (Var "a0"))`)
	assert.Contains(t, out, "(run-schedule (saturate mltl-rules))")
}
