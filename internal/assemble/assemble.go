// Package assemble implements the primary binary spec file emitter: a
// small, explicit instruction encoding for the post-pipeline IR, written
// in the byte order the compile was configured with. It is not a
// bit-accurate reproduction of any particular runtime's native bytecode;
// it exists to give the pipeline's output format (§6) a concrete, testable
// shape.
package assemble

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"mltlc/internal/ir"
	"mltlc/internal/program"
)

// Magic identifies the spec file format; version allows the instruction
// encoding to evolve without breaking header detection.
const (
	Magic   uint32 = 0x4D4C5443 // "MLTC"
	Version uint16 = 1
)

func byteOrder(cfg *program.Config) binary.ByteOrder {
	switch cfg.ByteOrder {
	case "big", "network":
		return binary.BigEndian
	default: // "little", "native"
		return binary.LittleEndian
	}
}

// Assemble linearizes every FT and PT spec and encodes the result as a
// single binary blob: a header followed by one section per formula.
func Assemble(ctx *program.Context) ([]byte, error) {
	order := byteOrder(ctx.Config)
	var buf bytes.Buffer

	binary.Write(&buf, order, Magic)
	binary.Write(&buf, order, Version)
	binary.Write(&buf, order, uint32(len(ctx.Program.FTSpecs)))
	binary.Write(&buf, order, uint32(len(ctx.Program.PTSpecs)))

	for _, f := range ctx.Program.FTSpecs {
		if err := assembleFormula(&buf, order, f.Symbol, f.Body()); err != nil {
			return nil, fmt.Errorf("assembling %s: %w", f.Symbol, err)
		}
	}
	for _, f := range ctx.Program.PTSpecs {
		if err := assembleFormula(&buf, order, f.Symbol, f.Body()); err != nil {
			return nil, fmt.Errorf("assembling %s: %w", f.Symbol, err)
		}
	}

	return buf.Bytes(), nil
}

func assembleFormula(buf *bytes.Buffer, order binary.ByteOrder, symbol string, body ir.Expression) error {
	instrs, err := linearize(body)
	if err != nil {
		return err
	}

	nameBytes := []byte(symbol)
	binary.Write(buf, order, uint16(len(nameBytes)))
	buf.Write(nameBytes)
	binary.Write(buf, order, uint32(len(instrs)))

	for _, in := range instrs {
		binary.Write(buf, order, byte(in.Op))
		binary.Write(buf, order, uint16(len(in.Operands)))
		for _, o := range in.Operands {
			binary.Write(buf, order, o)
		}
		binary.Write(buf, order, in.IntervalLB)
		binary.Write(buf, order, in.IntervalUB)
		binary.Write(buf, order, in.IntVal)
		binary.Write(buf, order, in.FltVal)
		binary.Write(buf, order, in.BoolVal)
		binary.Write(buf, order, in.SignalID)
		binary.Write(buf, order, in.AtomicID)
		binary.Write(buf, order, in.SCQStart)
		binary.Write(buf, order, in.SCQEnd)
	}

	return nil
}
