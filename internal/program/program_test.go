package program_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

func TestStructDefTypeOfLooksUpByMemberName(t *testing.T) {
	sd := &program.StructDef{
		Symbol:      "Pt",
		Members:     []string{"x", "y"},
		MemberTypes: []types.Type{types.IntType{Width: 32, Signed: true}, types.BoolType{}},
	}

	typ, ok := sd.TypeOf("y")
	require.True(t, ok)
	assert.Equal(t, types.BoolType{}, typ)

	_, ok = sd.TypeOf("z")
	assert.False(t, ok)
}

func TestAllFormulasReturnsFTBeforePT(t *testing.T) {
	p := program.New()
	ft := ir.NewFormula(types.EmptyPosition, "p0", 0, ir.NewConstantBool(types.EmptyPosition, true))
	pt := ir.NewFormula(types.EmptyPosition, "q0", 0, ir.NewConstantBool(types.EmptyPosition, false))
	p.FTSpecs = append(p.FTSpecs, ft)
	p.PTSpecs = append(p.PTSpecs, pt)

	all := p.AllFormulas()
	require.Len(t, all, 2)
	assert.Equal(t, "p0", all[0].Symbol)
	assert.Equal(t, "q0", all[1].Symbol)
}

func TestReplaceFormulaRewiresBody(t *testing.T) {
	p := program.New()
	oldBody := ir.NewConstantBool(types.EmptyPosition, true)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, oldBody)
	p.FTSpecs = append(p.FTSpecs, f)

	newBody := ir.NewConstantBool(types.EmptyPosition, false)
	p.ReplaceFormula(f, newBody)

	assert.Equal(t, newBody.ID(), f.Body().ID())
}

func TestSectionKindString(t *testing.T) {
	assert.Equal(t, "INPUT", program.SectionSignals.String())
	assert.Equal(t, "FTSPEC", program.SectionFTSpecs.String())
}
