package assemble

import "mltlc/internal/ir"

// OpCode is the one-byte instruction tag emitted for each IR node, in the
// postorder linearization the runtime walks to rebuild the operand stack.
// This is an interface-compatible encoding of the node kinds the pipeline
// produces, not a bit-accurate reproduction of any particular runtime's
// native instruction set (§6 treats the real assembler as an external
// collaborator; this module only has to emit something a consumer with the
// same node-kind inventory could decode).
type OpCode byte

const (
	OpConstBool OpCode = iota
	OpConstInt
	OpConstFloat
	OpSignal
	OpAtomicLoad // load a precomputed atomic's current truth value

	OpNot
	OpAnd
	OpOr
	OpXor
	OpImplies
	OpEquiv
	OpEqual
	OpNotEqual
	OpLessThan
	OpLessEqual
	OpGreaterThan
	OpGreaterEqual
	OpAdd
	OpSubtract
	OpMultiply
	OpDivide
	OpModulo
	OpBitAnd
	OpBitOr
	OpBitXor
	OpBitNot
	OpBitShiftLeft
	OpBitShiftRight
	OpNegate

	OpGlobal
	OpFuture
	OpUntil
	OpRelease
)

var operatorOpcodes = map[ir.OperatorKind]OpCode{
	ir.OpNot: OpNot, ir.OpAnd: OpAnd, ir.OpOr: OpOr, ir.OpXor: OpXor,
	ir.OpImplies: OpImplies, ir.OpEquiv: OpEquiv,
	ir.OpEqual: OpEqual, ir.OpNotEqual: OpNotEqual,
	ir.OpLessThan: OpLessThan, ir.OpLessEqual: OpLessEqual,
	ir.OpGreaterThan: OpGreaterThan, ir.OpGreaterEqual: OpGreaterEqual,
	ir.OpAdd: OpAdd, ir.OpSubtract: OpSubtract, ir.OpMultiply: OpMultiply,
	ir.OpDivide: OpDivide, ir.OpModulo: OpModulo,
	ir.OpBitAnd: OpBitAnd, ir.OpBitOr: OpBitOr, ir.OpBitXor: OpBitXor,
	ir.OpBitNot: OpBitNot, ir.OpBitShiftLeft: OpBitShiftLeft,
	ir.OpBitShiftRight: OpBitShiftRight, ir.OpNegate: OpNegate,
}

var temporalOpcodes = map[ir.TemporalKind]OpCode{
	ir.TGlobal: OpGlobal, ir.TFuture: OpFuture, ir.TUntil: OpUntil, ir.TRelease: OpRelease,
}

// instruction is one linearized step: an opcode, its operand node ids
// (indices into the enclosing formula's instruction stream), and the
// interval bounds a temporal opcode needs.
type instruction struct {
	Op        OpCode
	Operands  []uint32
	IntervalLB, IntervalUB int32
	IntVal    int64
	FltVal    float64
	BoolVal   bool
	SignalID  int32
	AtomicID  int32
	SCQStart, SCQEnd int32
}
