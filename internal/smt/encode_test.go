package smt_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
	"mltlc/internal/smt"
	"mltlc/internal/types"
)

func TestEncodeSatQueryGlobal(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	g := ir.NewTemporalOperator(types.EmptyPosition, ir.TGlobal, types.NewInterval(0, 3), a)

	query, err := smt.EncodeSatQuery(g)
	require.NoError(t, err)

	assert.Contains(t, query, "(set-logic AUFLIA)")
	assert.Contains(t, query, "declare-fun a")
	assert.Contains(t, query, "forall ((i Int))")
	assert.Contains(t, query, "(check-sat)")
}

func TestEncodeSatQueryUntil(t *testing.T) {
	p := ir.NewSignal(types.EmptyPosition, "p")
	q := ir.NewSignal(types.EmptyPosition, "q")
	u := ir.NewTemporalOperator(types.EmptyPosition, ir.TUntil, types.NewInterval(1, 4), p, q)

	query, err := smt.EncodeSatQuery(u)
	require.NoError(t, err)
	assert.Contains(t, query, "exists ((i Int))")
	assert.Contains(t, query, "forall ((j Int))")
}

func TestEncodeSatQueryReleaseUnsupported(t *testing.T) {
	p := ir.NewSignal(types.EmptyPosition, "p")
	q := ir.NewSignal(types.EmptyPosition, "q")
	r := ir.NewTemporalOperator(types.EmptyPosition, ir.TRelease, types.NewInterval(0, 2), p, q)

	_, err := smt.EncodeSatQuery(r)
	require.Error(t, err)
	assert.IsType(t, smt.ErrReleaseUnsupported{}, err)
}

func TestEncodeEquivQueryAssertsNegatedEquality(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	b := ir.NewSignal(types.EmptyPosition, "b")
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b)

	query, err := smt.EncodeEquivQuery(a, and)
	require.NoError(t, err)
	assert.Contains(t, query, "(not (=")
}

func TestEncodeEquivQueryDoesNotRedefineSharedNode(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	b := ir.NewSignal(types.EmptyPosition, "b")
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b)

	query, err := smt.EncodeEquivQuery(a, and)
	require.NoError(t, err)

	name := fmt.Sprintf("define-fun f_e%d ", a.ID())
	assert.Equal(t, 1, strings.Count(query, name), "shared node %s must be defined exactly once", name)
}

func TestEncodeSatQueryDoesNotRedefineSharedSubexpression(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	b := ir.NewSignal(types.EmptyPosition, "b")
	or := ir.NewOperator(types.EmptyPosition, ir.OpOr, a, b)
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, or)

	query, err := smt.EncodeSatQuery(and)
	require.NoError(t, err)

	name := fmt.Sprintf("define-fun f_e%d ", a.ID())
	assert.Equal(t, 1, strings.Count(query, name))
}

func TestConstantsEncodeWithoutLengthGuard(t *testing.T) {
	c := ir.NewConstantBool(types.EmptyPosition, true)
	query, err := smt.EncodeSatQuery(c)
	require.NoError(t, err)
	assert.Contains(t, query, "Bool true")
	assert.NotContains(t, query, "declare-fun a")
}
