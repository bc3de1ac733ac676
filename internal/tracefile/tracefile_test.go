package tracefile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/diag"
	"mltlc/internal/tracefile"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessTraceFileWithoutHeaderInfersMissionTimeFromRowCount(t *testing.T) {
	path := writeTemp(t, "trace.csv", "1,0,1\n0,1,0\n1,1,1\n")

	mt, mapping, err := tracefile.ProcessTraceFile(diag.NewLogger(0, false), path, false)
	require.NoError(t, err)
	assert.Equal(t, 3, mt)
	assert.Nil(t, mapping)
}

func TestProcessTraceFileWithHeaderBuildsSignalMapping(t *testing.T) {
	path := writeTemp(t, "trace.csv", "#a,b,c\n1,0,1\n0,1,0\n")

	mt, mapping, err := tracefile.ProcessTraceFile(diag.NewLogger(0, false), path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, mt)
	require.NotNil(t, mapping)
	assert.Equal(t, 0, mapping["a"])
	assert.Equal(t, 1, mapping["b"])
	assert.Equal(t, 2, mapping["c"])
}

func TestProcessTraceFileHeaderDuplicateIDRightmostWins(t *testing.T) {
	path := writeTemp(t, "trace.csv", "#a,b,a\n1,0,1\n")

	_, mapping, err := tracefile.ProcessTraceFile(diag.NewLogger(0, false), path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, mapping["a"])
}

func TestProcessTraceFileEmptyFileReturnsSentinel(t *testing.T) {
	path := writeTemp(t, "trace.csv", "")

	mt, mapping, err := tracefile.ProcessTraceFile(diag.NewLogger(0, false), path, false)
	require.NoError(t, err)
	assert.Equal(t, -1, mt)
	assert.Nil(t, mapping)
}

func TestProcessMapFileParsesSymbolIndexPairs(t *testing.T) {
	path := writeTemp(t, "map.txt", "a:0\nb:1\nc:2\n")

	mapping, err := tracefile.ProcessMapFile(diag.NewLogger(0, false), path)
	require.NoError(t, err)
	assert.Equal(t, 0, mapping["a"])
	assert.Equal(t, 1, mapping["b"])
	assert.Equal(t, 2, mapping["c"])
}

func TestProcessMapFileDuplicateIDLatestWins(t *testing.T) {
	path := writeTemp(t, "map.txt", "a:0\na:5\n")

	mapping, err := tracefile.ProcessMapFile(diag.NewLogger(0, false), path)
	require.NoError(t, err)
	assert.Equal(t, 5, mapping["a"])
}

func TestProcessMapFileMalformedLineIsError(t *testing.T) {
	path := writeTemp(t, "map.txt", "a:0\nnotvalid\n")

	_, err := tracefile.ProcessMapFile(diag.NewLogger(0, false), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}
