package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
	"mltlc/internal/types"
)

func TestOperatorPrefix(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	b := ir.NewSignal(types.EmptyPosition, "b")
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, b)

	assert.Equal(t, "(& a b)", and.Prefix())
	assert.Equal(t, "Operator", and.Kind())
}

func TestTemporalOperatorPrefix(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	g := ir.NewTemporalOperator(types.EmptyPosition, ir.TGlobal, types.NewInterval(0, 5), a)

	assert.Equal(t, "(G [0,5] a)", g.Prefix())
}

func TestConstantStringAndPrefix(t *testing.T) {
	assert.Equal(t, "True", ir.NewConstantBool(types.EmptyPosition, true).String())
	assert.Equal(t, "False", ir.NewConstantBool(types.EmptyPosition, false).String())
	assert.Equal(t, "3", ir.NewConstantInt(types.EmptyPosition, 3).Prefix())
}

func TestPostorderVisitsChildrenBeforeParentsAndDedupes(t *testing.T) {
	shared := ir.NewSignal(types.EmptyPosition, "shared")
	left := ir.NewOperator(types.EmptyPosition, ir.OpNot, shared)
	right := ir.NewOperator(types.EmptyPosition, ir.OpNot, shared)
	root := ir.NewOperator(types.EmptyPosition, ir.OpAnd, left, right)

	order := ir.Postorder(root)

	// shared appears exactly once despite being reachable via two paths.
	count := 0
	for _, n := range order {
		if n.ID() == shared.ID() {
			count++
		}
	}
	assert.Equal(t, 1, count)

	// root is last, its operands precede it.
	require.Equal(t, root.ID(), order[len(order)-1].ID())
}

func TestReplaceRewiresParentsAndPreservesMultiplicity(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	b := ir.NewSignal(types.EmptyPosition, "b")
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, a, a, b)

	replacement := ir.NewConstantBool(types.EmptyPosition, true)
	ir.Replace(a, replacement)

	children := and.Children()
	require.Len(t, children, 3)
	assert.Equal(t, replacement.ID(), children[0].ID())
	assert.Equal(t, replacement.ID(), children[1].ID())
	assert.Equal(t, b.ID(), children[2].ID())

	foundParent := false
	for _, p := range replacement.Parents() {
		if p.ID() == and.ID() {
			foundParent = true
		}
	}
	assert.True(t, foundParent)
}

func TestAtomicIDDefaultsToNegativeOne(t *testing.T) {
	s := ir.NewSignal(types.EmptyPosition, "x")
	assert.Equal(t, -1, s.AtomicID())

	s.SetAtomicID(4)
	assert.Equal(t, 4, s.AtomicID())
}

func TestFormulaBody(t *testing.T) {
	body := ir.NewConstantBool(types.EmptyPosition, true)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, body)

	assert.Equal(t, body.ID(), f.Body().ID())
	assert.Equal(t, "p0: True", f.String())
}
