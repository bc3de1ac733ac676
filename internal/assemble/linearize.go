package assemble

import (
	"fmt"

	"mltlc/internal/ir"
)

// linearize walks root postorder, stopping at AtomicRef boundaries (the
// runtime's atomic checker evaluates those independently and hands the
// temporal logic engine only the resulting truth value, per the atomic
// frontier established by C5 step 6), and assigns each visited node a
// dense instruction index.
func linearize(root ir.Expression) ([]instruction, error) {
	var instrs []instruction
	index := map[uint64]uint32{}

	var visit func(e ir.Expression) error
	visit = func(e ir.Expression) error {
		if e == nil {
			return nil
		}
		if _, ok := index[e.ID()]; ok {
			return nil
		}

		if a, ok := e.(*ir.AtomicRef); ok {
			instrs = append(instrs, instruction{
				Op:       OpAtomicLoad,
				AtomicID: int32(a.AtomicID()),
				SCQStart: int32(func() int { s, _ := a.SCQOffset(); return s }()),
				SCQEnd:   int32(func() int { _, e := a.SCQOffset(); return e }()),
			})
			index[e.ID()] = uint32(len(instrs) - 1)
			return nil
		}

		for _, c := range e.Children() {
			if err := visit(c); err != nil {
				return err
			}
		}

		instr, err := encodeOne(e, index)
		if err != nil {
			return err
		}
		instrs = append(instrs, instr)
		index[e.ID()] = uint32(len(instrs) - 1)
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return instrs, nil
}

func operandIndices(kids []ir.Expression, index map[uint64]uint32) []uint32 {
	out := make([]uint32, len(kids))
	for i, k := range kids {
		out[i] = index[k.ID()]
	}
	return out
}

func withSCQ(instr instruction, e ir.Expression) instruction {
	instr.SCQStart, instr.SCQEnd = func() (int32, int32) {
		s, en := e.SCQOffset()
		return int32(s), int32(en)
	}()
	instr.AtomicID = int32(e.AtomicID())
	return instr
}

func encodeOne(e ir.Expression, index map[uint64]uint32) (instruction, error) {
	switch n := e.(type) {
	case *ir.Constant:
		switch n.CKind {
		case ir.ConstBool:
			return withSCQ(instruction{Op: OpConstBool, BoolVal: n.BoolVal}, e), nil
		case ir.ConstInt:
			return withSCQ(instruction{Op: OpConstInt, IntVal: n.IntVal}, e), nil
		default:
			return withSCQ(instruction{Op: OpConstFloat, FltVal: n.FltVal}, e), nil
		}

	case *ir.Signal:
		return withSCQ(instruction{Op: OpSignal, SignalID: int32(n.SignalID)}, e), nil

	case *ir.Operator:
		op, ok := operatorOpcodes[n.OpKind]
		if !ok {
			return instruction{}, fmt.Errorf("assemble: unencodable operator %s", n.OpKind)
		}
		return withSCQ(instruction{Op: op, Operands: operandIndices(n.Children(), index)}, e), nil

	case *ir.TemporalOperator:
		op, ok := temporalOpcodes[n.TKind]
		if !ok {
			return instruction{}, fmt.Errorf("assemble: unencodable temporal operator %s", n.TKind)
		}
		return withSCQ(instruction{
			Op:         op,
			Operands:   operandIndices(n.Children(), index),
			IntervalLB: int32(n.Interval.LB),
			IntervalUB: int32(n.Interval.UB),
		}, e), nil

	default:
		return instruction{}, fmt.Errorf("assemble: unencodable node kind %s", e.Kind())
	}
}
