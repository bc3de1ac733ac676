package assemble

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

func TestLinearizeStopsAtAtomicBoundary(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	rel := ir.NewOperator(types.EmptyPosition, ir.OpGreaterThan, a, ir.NewConstantInt(types.EmptyPosition, 0))
	atomic := ir.NewAtomicRef(types.EmptyPosition, "atomic_0", rel)
	atomic.SetAtomicID(2)
	atomic.SetSCQOffset(4, 8)

	g := ir.NewTemporalOperator(types.EmptyPosition, ir.TGlobal, types.NewInterval(0, 3), atomic)

	instrs, err := linearize(g)
	require.NoError(t, err)

	require.Len(t, instrs, 2)
	assert.Equal(t, OpAtomicLoad, instrs[0].Op)
	assert.Equal(t, int32(2), instrs[0].AtomicID)
	assert.Equal(t, int32(4), instrs[0].SCQStart)
	assert.Equal(t, int32(8), instrs[0].SCQEnd)

	assert.Equal(t, OpGlobal, instrs[1].Op)
	assert.Equal(t, int32(0), instrs[1].IntervalLB)
	assert.Equal(t, int32(3), instrs[1].IntervalUB)
	assert.Equal(t, []uint32{0}, instrs[1].Operands)
}

func TestLinearizeSharedSubtreeEmittedOnce(t *testing.T) {
	shared := ir.NewSignal(types.EmptyPosition, "shared")
	and := ir.NewOperator(types.EmptyPosition, ir.OpAnd, shared, shared)

	instrs, err := linearize(and)
	require.NoError(t, err)

	require.Len(t, instrs, 2)
	assert.Equal(t, OpSignal, instrs[0].Op)
	assert.Equal(t, OpAnd, instrs[1].Op)
	assert.Equal(t, []uint32{0, 0}, instrs[1].Operands)
}

func TestLinearizeRejectsUnencodableNodeKind(t *testing.T) {
	a := ir.NewSignal(types.EmptyPosition, "a")
	setExpr := ir.NewSetExpression(types.EmptyPosition, a)

	_, err := linearize(setExpr)
	require.Error(t, err)
}

func TestByteOrderSelection(t *testing.T) {
	cfg := program.DefaultConfig()

	cfg.ByteOrder = "big"
	assert.Equal(t, binary.BigEndian, byteOrder(cfg))

	cfg.ByteOrder = "network"
	assert.Equal(t, binary.BigEndian, byteOrder(cfg))

	cfg.ByteOrder = "little"
	assert.Equal(t, binary.LittleEndian, byteOrder(cfg))

	cfg.ByteOrder = "native"
	assert.Equal(t, binary.LittleEndian, byteOrder(cfg))
}

func TestAssembleWritesMagicHeaderAndFormulaCounts(t *testing.T) {
	p := program.New()
	body := ir.NewConstantBool(types.EmptyPosition, true)
	f := ir.NewFormula(types.EmptyPosition, "p0", 0, body)
	p.FTSpecs = append(p.FTSpecs, f)

	cfg := program.DefaultConfig()
	cfg.ByteOrder = "little"
	ctx := program.NewContext(p, cfg, nil)

	data, err := Assemble(ctx)
	require.NoError(t, err)
	require.True(t, len(data) >= 14)

	assert.Equal(t, Magic, binary.LittleEndian.Uint32(data[0:4]))
	assert.Equal(t, Version, binary.LittleEndian.Uint16(data[4:6]))
	assert.Equal(t, uint32(1), binary.LittleEndian.Uint32(data[6:10]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(data[10:14]))
}
