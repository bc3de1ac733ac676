package parser

import (
	"fmt"
	"strings"

	"mltlc/internal/ir"
	"mltlc/internal/program"
	"mltlc/internal/types"
)

var noPos = types.EmptyPosition

// ToProgram converts a parsed SourceFile into a Program, building the
// signal/define/atomic symbol tables and FT/PT spec sets in file order.
func ToProgram(sf *SourceFile) (*program.Program, error) {
	p := program.New()

	for _, sec := range sf.Sections {
		switch {
		case sec.Input != nil:
			var names []string
			for _, d := range sec.Input.Decls {
				p.Signals[d.Name] = ir.NewSignal(noPos, d.Name)
				names = append(names, d.Name)
			}
			p.AddSection(program.Section{Kind: program.SectionSignals, Symbols: names})

		case sec.Define != nil:
			var names []string
			for _, d := range sec.Define.Decls {
				e, err := convertExpr(d.Expr)
				if err != nil {
					return nil, fmt.Errorf("define %s: %w", d.Name, err)
				}
				p.Defines[d.Name] = e
				names = append(names, d.Name)
			}
			p.AddSection(program.Section{Kind: program.SectionDefines, Symbols: names})

		case sec.Atomic != nil:
			var names []string
			for _, d := range sec.Atomic.Decls {
				e, err := convertExpr(d.Expr)
				if err != nil {
					return nil, fmt.Errorf("atomic %s: %w", d.Name, err)
				}
				p.Atomics[d.Name] = ir.NewAtomicRef(noPos, d.Name, e)
				names = append(names, d.Name)
			}
			p.AddSection(program.Section{Kind: program.SectionAtomics, Symbols: names})

		case sec.FTSpecs != nil:
			var names []string
			for _, sd := range sec.FTSpecs.Specs {
				f, err := convertSpec(sd)
				if err != nil {
					return nil, fmt.Errorf("FTSPEC %s: %w", sd.Name, err)
				}
				p.FTSpecs = append(p.FTSpecs, f)
				names = append(names, sd.Name)
			}
			p.AddSection(program.Section{Kind: program.SectionFTSpecs, Symbols: names})

		case sec.PTSpecs != nil:
			var names []string
			for _, sd := range sec.PTSpecs.Specs {
				f, err := convertSpec(sd)
				if err != nil {
					return nil, fmt.Errorf("PTSPEC %s: %w", sd.Name, err)
				}
				p.PTSpecs = append(p.PTSpecs, f)
				names = append(names, sd.Name)
			}
			p.AddSection(program.Section{Kind: program.SectionPTSpecs, Symbols: names})
		}
	}

	return p, nil
}

func convertSpec(sd *SpecDecl) (*ir.Formula, error) {
	body, err := convertExpr(sd.Expr)
	if err != nil {
		return nil, err
	}
	num := 0
	if sd.Number != nil {
		num = *sd.Number
	}
	return ir.NewFormula(noPos, sd.Name, num, body), nil
}

func convertExpr(e *Expr) (ir.Expression, error) {
	return convertEquiv(e.Equiv)
}

func convertEquiv(e *EquivExpr) (ir.Expression, error) {
	left, err := convertImplies(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Right == nil {
		return left, nil
	}
	right, err := convertImplies(e.Right)
	if err != nil {
		return nil, err
	}
	return ir.NewOperator(noPos, ir.OpEquiv, left, right), nil
}

func convertImplies(e *ImpliesExpr) (ir.Expression, error) {
	left, err := convertOr(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Right == nil {
		return left, nil
	}
	right, err := convertOr(e.Right)
	if err != nil {
		return nil, err
	}
	return ir.NewOperator(noPos, ir.OpImplies, left, right), nil
}

func convertOr(e *OrExpr) (ir.Expression, error) {
	acc, err := convertXor(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		rhs, err := convertXor(r)
		if err != nil {
			return nil, err
		}
		acc = ir.NewOperator(noPos, ir.OpOr, acc, rhs)
	}
	return acc, nil
}

func convertXor(e *XorExpr) (ir.Expression, error) {
	acc, err := convertAnd(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		rhs, err := convertAnd(r)
		if err != nil {
			return nil, err
		}
		acc = ir.NewOperator(noPos, ir.OpXor, acc, rhs)
	}
	return acc, nil
}

func convertAnd(e *AndExpr) (ir.Expression, error) {
	acc, err := convertEquality(e.Left)
	if err != nil {
		return nil, err
	}
	for _, r := range e.Rest {
		rhs, err := convertEquality(r)
		if err != nil {
			return nil, err
		}
		acc = ir.NewOperator(noPos, ir.OpAnd, acc, rhs)
	}
	return acc, nil
}

func convertEquality(e *EqualityExpr) (ir.Expression, error) {
	left, err := convertRel(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == nil {
		return left, nil
	}
	right, err := convertRel(e.Right)
	if err != nil {
		return nil, err
	}
	kind := ir.OpEqual
	if *e.Op == "!=" {
		kind = ir.OpNotEqual
	}
	return ir.NewOperator(noPos, kind, left, right), nil
}

func convertRel(e *RelExpr) (ir.Expression, error) {
	left, err := convertAdd(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == nil {
		return left, nil
	}
	right, err := convertAdd(e.Right)
	if err != nil {
		return nil, err
	}
	kind := map[string]ir.OperatorKind{
		"<": ir.OpLessThan, "<=": ir.OpLessEqual,
		">": ir.OpGreaterThan, ">=": ir.OpGreaterEqual,
	}[*e.Op]
	return ir.NewOperator(noPos, kind, left, right), nil
}

func convertAdd(e *AddExpr) (ir.Expression, error) {
	acc, err := convertMul(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Rest {
		rhs, err := convertMul(op.Term)
		if err != nil {
			return nil, err
		}
		kind := ir.OpAdd
		if op.Op == "-" {
			kind = ir.OpSubtract
		}
		acc = ir.NewOperator(noPos, kind, acc, rhs)
	}
	return acc, nil
}

func convertMul(e *MulExpr) (ir.Expression, error) {
	acc, err := convertUnary(e.Left)
	if err != nil {
		return nil, err
	}
	for _, op := range e.Rest {
		rhs, err := convertUnary(op.Term)
		if err != nil {
			return nil, err
		}
		var kind ir.OperatorKind
		switch op.Op {
		case "*":
			kind = ir.OpMultiply
		case "/":
			kind = ir.OpDivide
		default:
			kind = ir.OpModulo
		}
		acc = ir.NewOperator(noPos, kind, acc, rhs)
	}
	return acc, nil
}

func convertUnary(e *UnaryExpr) (ir.Expression, error) {
	val, err := convertTemporal(e.Value)
	if err != nil {
		return nil, err
	}
	if e.Op == nil {
		return val, nil
	}
	switch *e.Op {
	case "!":
		return ir.NewOperator(noPos, ir.OpNot, val), nil
	case "-":
		return ir.NewOperator(noPos, ir.OpNegate, val), nil
	default:
		return ir.NewOperator(noPos, ir.OpBitNot, val), nil
	}
}

func convertTemporal(e *TemporalExpr) (ir.Expression, error) {
	switch {
	case e.Global != nil:
		body, err := convertUnary(e.Global.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewTemporalOperator(noPos, ir.TGlobal, convertInterval(e.Global.Interval), body), nil

	case e.Future != nil:
		body, err := convertUnary(e.Future.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewTemporalOperator(noPos, ir.TFuture, convertInterval(e.Future.Interval), body), nil

	case e.Base != nil:
		return convertUntil(e.Base)

	default:
		return nil, fmt.Errorf("empty temporal expression")
	}
}

func convertUntil(e *UntilExpr) (ir.Expression, error) {
	left, err := convertPrimary(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Kind == nil {
		return left, nil
	}
	right, err := convertUnary(e.Right)
	if err != nil {
		return nil, err
	}
	kind := ir.TUntil
	if *e.Kind == "R" {
		kind = ir.TRelease
	}
	return ir.NewTemporalOperator(noPos, kind, convertInterval(e.Interval), left, right), nil
}

func convertInterval(i *Interval) types.Interval {
	return types.NewInterval(i.LB, i.UB)
}

func convertPrimary(e *PrimaryExpr) (ir.Expression, error) {
	switch {
	case e.Prob != nil:
		body, err := convertExpr(e.Prob.Body)
		if err != nil {
			return nil, err
		}
		return ir.NewProbabilityOperator(noPos, e.Prob.Bound, body), nil

	case e.Call != nil:
		args := make([]ir.Expression, len(e.Call.Args))
		for i, a := range e.Call.Args {
			v, err := convertExpr(a)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return ir.NewFunctionCall(noPos, e.Call.Name, args...), nil

	case e.Float != nil:
		return ir.NewConstantFloat(noPos, *e.Float), nil

	case e.Number != nil:
		return ir.NewConstantInt(noPos, *e.Number), nil

	case e.Ident != nil:
		return identExpr(*e.Ident), nil

	case e.Paren != nil:
		return convertExpr(e.Paren)

	default:
		return nil, fmt.Errorf("empty primary expression")
	}
}

func identExpr(name string) ir.Expression {
	switch strings.ToLower(name) {
	case "true":
		return ir.NewConstantBool(noPos, true)
	case "false":
		return ir.NewConstantBool(noPos, false)
	default:
		return ir.NewVariable(noPos, name)
	}
}
