package smt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyChecksUnsatBeforeSat(t *testing.T) {
	assert.Equal(t, Unsat, classify("some preamble\nunsat\n"))
	assert.Equal(t, Sat, classify("sat\n"))
	assert.Equal(t, Unknown, classify("timeout\n"))
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "sat", Sat.String())
	assert.Equal(t, "unsat", Unsat.String())
	assert.Equal(t, "unknown", Unknown.String())
}

func TestSolverAvailableFalseForNonexistentBinary(t *testing.T) {
	assert.False(t, SolverAvailable("definitely-not-a-real-solver-binary"))
}
