// Package smt implements the SMT-LIB2 (AUFLIA) encoder and the external
// solver driver (C8).
package smt

import (
	"fmt"
	"sort"
	"strings"

	"mltlc/internal/ir"
)

// ErrReleaseUnsupported is returned when a tree still contains a Release
// operator; the SMT encoding has no rule for it (§4.7, §9).
type ErrReleaseUnsupported struct{}

func (ErrReleaseUnsupported) Error() string {
	return "the SMT encoder does not support the release operator"
}

type encoder struct {
	funcNames map[uint64]string
	emitted   map[uint64]bool
	atomics   map[int]bool
	decls     []string
	defs      []string
}

func newEncoder() *encoder {
	return &encoder{funcNames: map[uint64]string{}, emitted: map[uint64]bool{}, atomics: map[int]bool{}}
}

func (enc *encoder) nameOf(n ir.Expression) string {
	if name, ok := enc.funcNames[n.ID()]; ok {
		return name
	}
	name := fmt.Sprintf("f_e%d", n.ID())
	enc.funcNames[n.ID()] = name
	return name
}

// encode renders root's defining chain of functions and returns the name
// of root's function, ready to be asserted against a length. It walks the
// graph postorder and, like the original's to_smt_sat_query, emits exactly
// one define-fun per unique node id: a shared subexpression (CSE, or an
// eqsat-extracted tree's atomics remapped onto the original's shared
// nodes) is named once and referenced by that name everywhere else.
func (enc *encoder) encode(n ir.Expression) (string, error) {
	name := enc.nameOf(n)
	if enc.emitted[n.ID()] {
		return name, nil
	}
	enc.emitted[n.ID()] = true

	for _, c := range n.Children() {
		if _, err := enc.encode(c); err != nil {
			return "", err
		}
	}

	switch t := n.(type) {
	case *ir.Constant:
		if t.CKind == ir.ConstBool {
			val := "false"
			if t.BoolVal {
				val = "true"
			}
			enc.defs = append(enc.defs, fmt.Sprintf(
				"(define-fun %s ((k Int) (len Int)) Bool %s)", name, val))
			return name, nil
		}
		enc.defs = append(enc.defs, fmt.Sprintf(
			"(define-fun %s ((k Int) (len Int)) Bool true)", name))
		return name, nil

	case *ir.Signal, *ir.AtomicRef:
		id := n.AtomicID()
		if id < 0 {
			id = int(n.ID())
		}
		if !enc.atomics[id] {
			enc.atomics[id] = true
			enc.decls = append(enc.decls, fmt.Sprintf("(declare-fun a%d (Int) Bool)", id))
		}
		enc.defs = append(enc.defs, fmt.Sprintf(
			"(define-fun %s ((k Int) (len Int)) Bool (and (> len k) (a%d k)))", name, id))
		return name, nil

	case *ir.Operator:
		return enc.encodeOperator(name, t)

	case *ir.TemporalOperator:
		return enc.encodeTemporal(name, t)

	default:
		// Any other node reaching the encoder (e.g. a probability wrapper)
		// is treated as an opaque atomic over its own id.
		id := n.AtomicID()
		if id < 0 {
			id = int(n.ID())
		}
		if !enc.atomics[id] {
			enc.atomics[id] = true
			enc.decls = append(enc.decls, fmt.Sprintf("(declare-fun a%d (Int) Bool)", id))
		}
		enc.defs = append(enc.defs, fmt.Sprintf(
			"(define-fun %s ((k Int) (len Int)) Bool (and (> len k) (a%d k)))", name, id))
		return name, nil
	}
}

func (enc *encoder) encodeOperator(name string, op *ir.Operator) (string, error) {
	kids := op.Children()
	names := make([]string, len(kids))
	for i, k := range kids {
		names[i] = enc.nameOf(k)
	}

	var body string
	switch op.OpKind {
	case ir.OpNot:
		body = fmt.Sprintf("(not (%s k len))", names[0])
	case ir.OpAnd:
		body = applyN("and", names)
	case ir.OpOr:
		body = applyN("or", names)
	case ir.OpImplies:
		body = fmt.Sprintf("(=> (%s k len) (%s k len))", names[0], names[1])
	case ir.OpEquiv:
		body = fmt.Sprintf("(= (%s k len) (%s k len))", names[0], names[1])
	case ir.OpXor:
		body = fmt.Sprintf("(xor (%s k len) (%s k len))", names[0], names[1])
	default:
		// Relational/arithmetic/bitwise operators sit below the atomic
		// frontier and are never reached directly by the temporal
		// encoder; treat conservatively as true.
		body = "true"
	}
	enc.defs = append(enc.defs, fmt.Sprintf("(define-fun %s ((k Int) (len Int)) Bool %s)", name, body))
	return name, nil
}

func applyN(op string, names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = fmt.Sprintf("(%s k len)", n)
	}
	return "(" + op + " " + strings.Join(parts, " ") + ")"
}

func (enc *encoder) encodeTemporal(name string, t *ir.TemporalOperator) (string, error) {
	l, u := t.Interval.LB, t.Interval.UB
	switch t.TKind {
	case ir.TGlobal:
		p := enc.nameOf(t.Children()[0])
		body := fmt.Sprintf(
			"(or (<= len (+ %d k)) (forall ((i Int)) (=> (and (<= (+ %d k) i) (<= i (+ %d k)) (< i len)) (%s i len))))",
			l, l, u, p)
		enc.defs = append(enc.defs, fmt.Sprintf("(define-fun %s ((k Int) (len Int)) Bool %s)", name, body))
		return name, nil

	case ir.TFuture:
		p := enc.nameOf(t.Children()[0])
		body := fmt.Sprintf(
			"(and (> len (+ %d k)) (exists ((i Int)) (and (<= (+ %d k) i) (<= i (+ %d k)) (< i len) (%s i len))))",
			l, l, u, p)
		enc.defs = append(enc.defs, fmt.Sprintf("(define-fun %s ((k Int) (len Int)) Bool %s)", name, body))
		return name, nil

	case ir.TUntil:
		p := enc.nameOf(t.Children()[0])
		q := enc.nameOf(t.Children()[1])
		body := fmt.Sprintf(
			"(and (> len (+ %d k)) (exists ((i Int)) (and (<= (+ %d k) i) (<= i (+ %d k)) (< i len) (%s i len) (forall ((j Int)) (=> (and (<= (+ %d k) j) (< j i)) (%s j len))))))",
			l, l, u, q, l, p)
		enc.defs = append(enc.defs, fmt.Sprintf("(define-fun %s ((k Int) (len Int)) Bool %s)", name, body))
		return name, nil

	case ir.TRelease:
		return "", ErrReleaseUnsupported{}
	}
	return "", fmt.Errorf("unhandled temporal operator")
}

// EncodeSatQuery renders a complete SMT-LIB2 script asking whether root is
// satisfiable.
func EncodeSatQuery(root ir.Expression) (string, error) {
	enc := newEncoder()
	rootName, err := enc.encode(root)
	if err != nil {
		return "", err
	}
	return enc.render(fmt.Sprintf("(assert (exists ((len Int)) (%s 0 len)))", rootName)), nil
}

// EncodeEquivQuery renders a complete SMT-LIB2 script asking whether a and
// b are NOT logically equivalent (unsat here means equivalent, per §4.7).
func EncodeEquivQuery(a, b ir.Expression) (string, error) {
	enc := newEncoder()
	na, err := enc.encode(a)
	if err != nil {
		return "", err
	}
	nb, err := enc.encode(b)
	if err != nil {
		return "", err
	}
	assertion := fmt.Sprintf(
		"(assert (exists ((len Int)) (not (= (%s 0 len) (%s 0 len)))))", na, nb)
	return enc.render(assertion), nil
}

func (enc *encoder) render(assertion string) string {
	var b strings.Builder
	b.WriteString("(set-logic AUFLIA)\n")

	decls := append([]string(nil), enc.decls...)
	sort.Strings(decls)
	for _, d := range decls {
		b.WriteString(d)
		b.WriteString("\n")
	}
	for _, d := range enc.defs {
		b.WriteString(d)
		b.WriteString("\n")
	}
	b.WriteString(assertion)
	b.WriteString("\n(check-sat)\n")
	return b.String()
}
