package serialize

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/diag"
	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

func TestResolvePathDisabledWhenDotOrAbsent(t *testing.T) {
	_, ok := resolvePath(map[string]string{"c2po": "."}, "c2po", "in.mltl", ".out.c2po")
	assert.False(t, ok)

	_, ok = resolvePath(map[string]string{}, "c2po", "in.mltl", ".out.c2po")
	assert.False(t, ok)
}

func TestResolvePathEmptyStringUsesDefaultSuffix(t *testing.T) {
	path, ok := resolvePath(map[string]string{"c2po": ""}, "c2po", "dir/in.mltl", ".out.c2po")
	require.True(t, ok)
	assert.Equal(t, "dir/in.out.c2po", path)
}

func TestResolvePathExplicitPathUsedVerbatim(t *testing.T) {
	path, ok := resolvePath(map[string]string{"c2po": "/tmp/explicit.c2po"}, "c2po", "in.mltl", ".out.c2po")
	require.True(t, ok)
	assert.Equal(t, "/tmp/explicit.c2po", path)
}

func samplePickleProgram() *program.Program {
	p := program.New()
	a := ir.NewSignal(types.EmptyPosition, "a")
	a.SetType(types.BoolType{})
	p.Signals["a"] = a
	p.AddSection(program.Section{Kind: program.SectionSignals, Symbols: []string{"a"}})

	f := ir.NewFormula(types.EmptyPosition, "p0", 0, a)
	p.FTSpecs = append(p.FTSpecs, f)
	p.AddSection(program.Section{Kind: program.SectionFTSpecs, Symbols: []string{"p0"}})
	return p
}

func TestRenderSourceReconstructsSignalsAndFormulas(t *testing.T) {
	out := renderSource(samplePickleProgram())
	assert.Contains(t, out, "INPUT")
	assert.Contains(t, out, "a:")
	assert.Contains(t, out, "FTSPEC")
	assert.Contains(t, out, "p0")
}

func TestRenderPrefixDumpsFormulaPrefixNotation(t *testing.T) {
	out := renderPrefix(samplePickleProgram())
	assert.Contains(t, out, "p0: a")
}

func TestRenderMLTLStandardNumbersFTThenPT(t *testing.T) {
	p := samplePickleProgram()
	p.PTSpecs = append(p.PTSpecs, ir.NewFormula(types.EmptyPosition, "q0", 0, p.Signals["a"]))
	out := renderMLTLStandard(p)
	assert.Contains(t, out, "p0:")
	assert.Contains(t, out, "p0: a;\nq0: a;\n")
}

func TestWriteOutputsWritesPrefixFileWhenEnabled(t *testing.T) {
	dir := t.TempDir()
	inputPath := dir + "/in.mltl"

	p := samplePickleProgram()
	cfg := program.DefaultConfig()
	cfg.InputPath = inputPath
	cfg.WritePaths[KindPrefix] = ""
	cfg.WritePaths[KindC2PO] = "."
	cfg.WritePaths[KindMLTL] = "."
	cfg.WritePaths[KindPickle] = "."
	cfg.WritePaths[KindSMT] = "."

	ctx := program.NewContext(p, cfg, diag.NewLogger(0, false))

	require.NoError(t, WriteOutputs(ctx))

	data, err := os.ReadFile(dir + "/in.prefix.c2po")
	require.NoError(t, err)
	assert.Contains(t, string(data), "p0: a")

	_, err = os.Stat(dir + "/in.out.c2po")
	assert.True(t, os.IsNotExist(err))
}
