package eqsat

import (
	"fmt"

	"mltlc/internal/ir"
)

// FindRoot locates the e-class that corresponds to origRoot by top-down
// structural search (§4.5): an e-node is a candidate iff its operator tag
// (plus arity/interval) matches origRoot's, confirmed by requiring every
// child subtree of origRoot to find at least one matching e-node in the
// corresponding child e-class. Exactly one candidate e-class is required.
func FindRoot(origRoot ir.Expression, g *EGraph) (string, error) {
	var candidates []string
	for id := range g.EClasses {
		if matchNode(origRoot, id, g) {
			candidates = append(candidates, id)
		}
	}
	if len(candidates) == 0 {
		return "", fmt.Errorf("eqsat: no e-class matches the original root")
	}
	if len(candidates) > 1 {
		return "", fmt.Errorf("eqsat: %d e-classes match the original root, expected exactly one", len(candidates))
	}
	return candidates[0], nil
}

func matchNode(orig ir.Expression, eclassID string, g *EGraph) bool {
	nodes, ok := g.EClasses[eclassID]
	if !ok {
		return false
	}
	for _, n := range nodes {
		if nodeMatches(orig, n, g) {
			return true
		}
	}
	return false
}

func nodeMatches(orig ir.Expression, n ENode, g *EGraph) bool {
	if orig.AtomicID() >= 0 {
		if _, isTemporal := orig.(*ir.TemporalOperator); !isTemporal {
			return n.Op == "Var" && n.Str == fmt.Sprintf("a%d", orig.AtomicID())
		}
	}

	switch t := orig.(type) {
	case *ir.Constant:
		if t.CKind != ir.ConstBool {
			return false
		}
		return n.Op == "Bool" && n.Bool != nil && *n.Bool == t.BoolVal

	case *ir.Operator:
		want := operatorTag(t)
		if n.Op != want || len(n.Children) != len(t.Children()) {
			return false
		}
		return childrenMatch(t.Children(), n.Children, g)

	case *ir.TemporalOperator:
		want := temporalTag(t.TKind)
		if n.Op != want || n.Interval == nil {
			return false
		}
		if n.Interval[0] != t.Interval.LB || n.Interval[1] != t.Interval.UB {
			return false
		}
		if len(n.Children) != len(t.Children()) {
			return false
		}
		return childrenMatch(t.Children(), n.Children, g)

	default:
		return false
	}
}

func childrenMatch(origKids []ir.Expression, classIDs []string, g *EGraph) bool {
	for i, k := range origKids {
		if !matchNode(k, classIDs[i], g) {
			return false
		}
	}
	return true
}

func operatorTag(o *ir.Operator) string {
	switch o.OpKind {
	case ir.OpNot:
		return "Not"
	case ir.OpAnd:
		return fmt.Sprintf("AndN%d", len(o.Children()))
	case ir.OpOr:
		return fmt.Sprintf("OrN%d", len(o.Children()))
	case ir.OpImplies:
		return "Implies"
	case ir.OpEquiv:
		return "Equiv"
	case ir.OpXor:
		return "Xor"
	default:
		return o.OpKind.String()
	}
}

func temporalTag(k ir.TemporalKind) string {
	switch k {
	case ir.TGlobal:
		return "Global"
	case ir.TFuture:
		return "Future"
	case ir.TUntil:
		return "Until"
	default:
		return "Release"
	}
}
