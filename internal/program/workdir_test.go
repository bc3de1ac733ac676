package program_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/program"
)

func TestAcquireWorkdirGeneratesUniqueNameWhenExplicitEmpty(t *testing.T) {
	w1, err := program.AcquireWorkdir("", false)
	require.NoError(t, err)
	defer w1.Close()

	w2, err := program.AcquireWorkdir("", false)
	require.NoError(t, err)
	defer w2.Close()

	assert.NotEqual(t, w1.Path, w2.Path)

	info, err := os.Stat(w1.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestWorkdirCloseRemovesDirectoryUnlessKept(t *testing.T) {
	w, err := program.AcquireWorkdir("", false)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, err = os.Stat(w.Path)
	assert.True(t, os.IsNotExist(err))
}

func TestWorkdirCloseKeepsDirectoryWhenRequested(t *testing.T) {
	w, err := program.AcquireWorkdir("", true)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	info, err := os.Stat(w.Path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	os.RemoveAll(w.Path)
}

func TestWorkdirFileJoinsUnderPath(t *testing.T) {
	w, err := program.AcquireWorkdir("", false)
	require.NoError(t, err)
	defer w.Close()

	assert.Equal(t, w.Path+"/foo.egg", w.File("foo.egg"))
}

func TestConfigPassEnabledDefaultsMatchDocumentedSet(t *testing.T) {
	cfg := program.DefaultConfig()

	assert.True(t, cfg.PassEnabled(program.PassComputeAtomics))
	assert.True(t, cfg.PassEnabled(program.PassRewriteOptimize))
	assert.False(t, cfg.PassEnabled(program.PassEqualitySaturation))
	assert.False(t, cfg.PassEnabled("not-a-real-pass"))
}
