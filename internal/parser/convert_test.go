package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
)

func parseAndConvert(t *testing.T, src string) *SourceFile {
	t.Helper()
	sf, err := buildParser.ParseString("<test>", src)
	require.NoError(t, err)
	return sf
}

func TestToProgramLowersSignalsAndGlobalFormula(t *testing.T) {
	src := `
INPUT
  a: bool;
  b: bool;

FTSPEC
  p0: G [0, 5] (a && b);
`
	sf := parseAndConvert(t, src)
	p, err := ToProgram(sf)
	require.NoError(t, err)

	require.Contains(t, p.Signals, "a")
	require.Contains(t, p.Signals, "b")
	require.Len(t, p.FTSpecs, 1)

	f := p.FTSpecs[0]
	assert.Equal(t, "p0", f.Symbol)

	g, ok := f.Body().(*ir.TemporalOperator)
	require.True(t, ok)
	assert.Equal(t, ir.TGlobal, g.TKind)
	assert.Equal(t, 0, g.Interval.LB)
	assert.Equal(t, 5, g.Interval.UB)

	and, ok := g.Children()[0].(*ir.Operator)
	require.True(t, ok)
	assert.Equal(t, ir.OpAnd, and.OpKind)
	require.Len(t, and.Children(), 2)
}

func TestToProgramLowersUntilWithInterval(t *testing.T) {
	src := `
INPUT
  p: bool;
  q: bool;

FTSPEC
  p1: p U [1, 4] q;
`
	sf := parseAndConvert(t, src)
	p, err := ToProgram(sf)
	require.NoError(t, err)

	f := p.FTSpecs[0]
	u, ok := f.Body().(*ir.TemporalOperator)
	require.True(t, ok)
	assert.Equal(t, ir.TUntil, u.TKind)
	assert.Equal(t, 1, u.Interval.LB)
	assert.Equal(t, 4, u.Interval.UB)
	require.Len(t, u.Children(), 2)
}

func TestToProgramLowersDefineAndAtomicSections(t *testing.T) {
	src := `
INPUT
  x: int(32);

DEFINE
  half := x / 2;

ATOMIC
  pos := x > 0;

FTSPEC
  p0: G [0, 1] pos;
`
	sf := parseAndConvert(t, src)
	p, err := ToProgram(sf)
	require.NoError(t, err)

	require.Contains(t, p.Defines, "half")
	require.Contains(t, p.Atomics, "pos")

	atomic := p.Atomics["pos"]
	rel, ok := atomic.Def.(*ir.Operator)
	require.True(t, ok)
	assert.Equal(t, ir.OpGreaterThan, rel.OpKind)
}

func TestParseFileRejectsUnknownExtension(t *testing.T) {
	_, err := ParseFile("formula.txt")
	require.Error(t, err)
}
