package eqsat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/eqsat"
	"mltlc/internal/ir"
	"mltlc/internal/types"
)

func TestFindRootMatchesStructurally(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetAtomicID(0)
	b := ir.NewSignal(types.EmptyPosition, "b")
	b.SetAtomicID(1)
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b)

	g := &eqsat.EGraph{EClasses: map[string][]eqsat.ENode{
		"c-a": {{Op: "Var", Str: "a0"}},
		"c-b": {{Op: "Var", Str: "a1"}},
		"c-and": {{Op: "AndN2", Children: []string{"c-a", "c-b"}}},
		"c-other": {{Op: "Var", Str: "a0"}},
	}}

	id, err := eqsat.FindRoot(and, g)
	require.NoError(t, err)
	assert.Equal(t, "c-and", id)
}

func TestFindRootAmbiguousIsError(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetAtomicID(0)

	g := &eqsat.EGraph{EClasses: map[string][]eqsat.ENode{
		"c1": {{Op: "Var", Str: "a0"}},
		"c2": {{Op: "Var", Str: "a0"}},
	}}

	_, err := eqsat.FindRoot(a, g)
	require.Error(t, err)
}

func TestFindRootNoMatchIsError(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetAtomicID(0)

	g := &eqsat.EGraph{EClasses: map[string][]eqsat.ENode{
		"c1": {{Op: "Var", Str: "a9"}},
	}}

	_, err := eqsat.FindRoot(a, g)
	require.Error(t, err)
}
