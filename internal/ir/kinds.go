package ir

// OperatorKind tags the variant of a non-temporal Operator node.
type OperatorKind int

const (
	OpNot OperatorKind = iota
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
)

var operatorSymbols = map[OperatorKind]string{
	OpNot: "!", OpAnd: "&", OpOr: "|", OpXor: "^",
	OpImplies: "->", OpEquiv: "<->",
	OpEqual: "==", OpNotEqual: "!=",
	OpLessThan: "<", OpLessEqual: "<=", OpGreaterThan: ">", OpGreaterEqual: ">=",
	OpAdd: "+", OpSubtract: "-", OpMultiply: "*", OpDivide: "/", OpModulo: "%",
	OpBitAnd: "&&&", OpBitOr: "|||", OpBitXor: "^^^", OpBitNot: "~",
	OpBitShiftLeft: "<<", OpBitShiftRight: ">>", OpNegate: "neg",
}

func (k OperatorKind) String() string {
	if s, ok := operatorSymbols[k]; ok {
		return s
	}
	return "?op"
}

// IsLogical reports whether the operator's operands and result are boolean.
func (k OperatorKind) IsLogical() bool {
	switch k {
	case OpNot, OpAnd, OpOr, OpXor, OpImplies, OpEquiv:
		return true
	}
	return false
}

// IsArithmetic reports whether the operator requires numeric operands.
func (k OperatorKind) IsArithmetic() bool {
	switch k {
	case OpAdd, OpSubtract, OpMultiply, OpDivide, OpModulo, OpNegate:
		return true
	}
	return false
}

// IsBitwise reports whether the operator requires integer operands and
// operates bit-by-bit.
func (k OperatorKind) IsBitwise() bool {
	switch k {
	case OpBitAnd, OpBitOr, OpBitXor, OpBitNot, OpBitShiftLeft, OpBitShiftRight:
		return true
	}
	return false
}

func (k OperatorKind) IsRelational() bool {
	switch k {
	case OpEqual, OpNotEqual, OpLessThan, OpLessEqual, OpGreaterThan, OpGreaterEqual:
		return true
	}
	return false
}

// IsCommutative is consulted by the rewrite optimizer's operand-sorting
// normalization step (§4.4).
func (k OperatorKind) IsCommutative() bool {
	switch k {
	case OpAnd, OpOr, OpXor, OpEquiv, OpAdd, OpMultiply, OpBitAnd, OpBitOr, OpBitXor:
		return true
	}
	return false
}

// TemporalKind tags the variant of a TemporalOperator node.
type TemporalKind int

const (
	TGlobal TemporalKind = iota
	TFuture
	TUntil
	TRelease
)

func (k TemporalKind) String() string {
	switch k {
	case TGlobal:
		return "G"
	case TFuture:
		return "F"
	case TUntil:
		return "U"
	case TRelease:
		return "R"
	default:
		return "?temporal"
	}
}

// SetAggKind tags the variant of a SetAggregation node (§3, eliminated by C5
// step 4).
type SetAggKind int

const (
	ForEach SetAggKind = iota
	ForSome
	ForExactly
	ForAtLeast
	ForAtMost
)

func (k SetAggKind) String() string {
	switch k {
	case ForEach:
		return "foreach"
	case ForSome:
		return "forsome"
	case ForExactly:
		return "forexactly"
	case ForAtLeast:
		return "foratleast"
	case ForAtMost:
		return "foratmost"
	default:
		return "?setagg"
	}
}
