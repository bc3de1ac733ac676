// Package eqsat implements the equality-saturation optimizer (C7): encoding
// IR into the external saturation engine's S-expression language, parsing
// its e-graph output, and extracting the lowest-SCQ-cost representative.
package eqsat

import (
	"fmt"
	"strings"

	"mltlc/internal/ir"
)

// ErrUnsupportedNode is returned by Encode when a node kind has no
// saturation-engine encoding (everything C5 is supposed to have already
// eliminated, plus any residual compile-time-only construct).
type ErrUnsupportedNode struct{ Kind string }

func (e ErrUnsupportedNode) Error() string {
	return fmt.Sprintf("eqsat: no encoding for node kind %s", e.Kind)
}

// EncodeExpr renders e as a saturation-engine S-expression (§4.5). Atomics
// (AtomicRef and, below the temporal frontier, Signal/relational Operator
// nodes) are rendered as `(Var "a<id>")`, keyed on the node's atomic id.
func EncodeExpr(e ir.Expression) (string, error) {
	if e.AtomicID() >= 0 && !isTemporalShaped(e) {
		return fmt.Sprintf("(Var \"a%d\")", e.AtomicID()), nil
	}

	switch n := e.(type) {
	case *ir.Constant:
		if n.CKind == ir.ConstBool {
			if n.BoolVal {
				return "(Bool true)", nil
			}
			return "(Bool false)", nil
		}
		return "", ErrUnsupportedNode{Kind: "non-bool Constant"}

	case *ir.Operator:
		return encodeOperator(n)

	case *ir.TemporalOperator:
		return encodeTemporal(n)

	default:
		return "", ErrUnsupportedNode{Kind: e.Kind()}
	}
}

func encodeOperator(n *ir.Operator) (string, error) {
	kids := n.Children()
	args := make([]string, len(kids))
	for i, k := range kids {
		s, err := EncodeExpr(k)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	var ctor string
	switch n.OpKind {
	case ir.OpNot:
		ctor = "Not"
	case ir.OpAnd:
		ctor = fmt.Sprintf("AndN%d", len(kids))
	case ir.OpOr:
		ctor = fmt.Sprintf("OrN%d", len(kids))
	case ir.OpImplies:
		ctor = "Implies"
	case ir.OpEquiv:
		ctor = "Equiv"
	case ir.OpXor:
		ctor = "Xor"
	default:
		return "", ErrUnsupportedNode{Kind: "Operator/" + n.OpKind.String()}
	}
	return "(" + strings.Join(append([]string{ctor}, args...), " ") + ")", nil
}

func encodeTemporal(n *ir.TemporalOperator) (string, error) {
	interval := fmt.Sprintf("(Interval %d %d)", n.Interval.LB, n.Interval.UB)
	kids := n.Children()
	args := make([]string, len(kids))
	for i, k := range kids {
		s, err := EncodeExpr(k)
		if err != nil {
			return "", err
		}
		args[i] = s
	}

	var ctor string
	switch n.TKind {
	case ir.TGlobal:
		ctor = "Global"
	case ir.TFuture:
		ctor = "Future"
	case ir.TUntil:
		ctor = "Until"
	case ir.TRelease:
		ctor = "Release"
	}
	parts := append([]string{ctor, interval}, args...)
	return "(" + strings.Join(parts, " ") + ")", nil
}

// isTemporalShaped reports whether e is a temporal combinator that must be
// encoded structurally even though an earlier pass stamped it with an
// atomic id (computeAtomics only tags nodes below the temporal frontier, so
// in practice this never fires for well-formed input; kept defensive).
func isTemporalShaped(e ir.Expression) bool {
	switch e.(type) {
	case *ir.TemporalOperator:
		return true
	default:
		return false
	}
}

// BuildEggFile concatenates the external rule prelude with the encoded root
// expression and a saturation schedule directive, ready to be written to a
// `.egg` file for the engine to consume.
func BuildEggFile(prelude, exprSexpr string) string {
	var b strings.Builder
	b.WriteString(prelude)
	b.WriteString("\n(let mltlc-root ")
	b.WriteString(exprSexpr)
	b.WriteString(")\n(run-schedule (saturate mltl-rules))\n")
	return b.String()
}
