package eqsat

import (
	"fmt"
	"strconv"
	"strings"

	"mltlc/internal/ir"
	"mltlc/internal/types"
)

// BuildIR reconstructs an expression tree from the root e-class downward,
// using each e-class's extraction-chosen representative. Atomics are
// mapped back onto the original node sharing that atomic id, so the
// rewritten tree keeps invariant I5 (stable atomic ids) without
// reallocating new ones.
func BuildIR(rootID string, ex *Extraction, atomics map[int]ir.Expression, pos types.Position) (ir.Expression, error) {
	return buildNode(rootID, ex, atomics, pos)
}

func buildNode(classID string, ex *Extraction, atomics map[int]ir.Expression, pos types.Position) (ir.Expression, error) {
	n, ok := ex.Best[classID]
	if !ok {
		return nil, fmt.Errorf("eqsat: no extracted representative for e-class %s", classID)
	}

	if n.Op == "Var" {
		id, err := parseAtomicID(n.Str)
		if err != nil {
			return nil, err
		}
		if orig, ok := atomics[id]; ok {
			return orig, nil
		}
		return nil, fmt.Errorf("eqsat: extracted atomic a%d has no original expression to map back to", id)
	}
	if n.Op == "Bool" {
		if n.Bool == nil {
			return nil, fmt.Errorf("eqsat: Bool e-node missing its literal payload")
		}
		return ir.NewConstantBool(pos, *n.Bool), nil
	}

	children := make([]ir.Expression, len(n.Children))
	for i, cid := range n.Children {
		c, err := buildNode(cid, ex, atomics, pos)
		if err != nil {
			return nil, err
		}
		children[i] = c
	}

	switch {
	case n.Op == "Not":
		return ir.NewOperator(pos, ir.OpNot, children...), nil
	case strings.HasPrefix(n.Op, "AndN"):
		return ir.NewOperator(pos, ir.OpAnd, children...), nil
	case strings.HasPrefix(n.Op, "OrN"):
		return ir.NewOperator(pos, ir.OpOr, children...), nil
	case n.Op == "Implies":
		return ir.NewOperator(pos, ir.OpImplies, children...), nil
	case n.Op == "Equiv":
		return ir.NewOperator(pos, ir.OpEquiv, children...), nil
	case n.Op == "Xor":
		return ir.NewOperator(pos, ir.OpXor, children...), nil
	case n.Op == "Global", n.Op == "Future", n.Op == "Until", n.Op == "Release":
		if n.Interval == nil {
			return nil, fmt.Errorf("eqsat: temporal e-node %s missing its interval payload", n.Op)
		}
		interval := types.NewInterval(n.Interval[0], n.Interval[1])
		kind := map[string]ir.TemporalKind{
			"Global": ir.TGlobal, "Future": ir.TFuture,
			"Until": ir.TUntil, "Release": ir.TRelease,
		}[n.Op]
		return ir.NewTemporalOperator(pos, kind, interval, children...), nil
	default:
		return nil, fmt.Errorf("eqsat: cannot reconstruct IR for operator tag %q", n.Op)
	}
}

func parseAtomicID(s string) (int, error) {
	if !strings.HasPrefix(s, "a") {
		return 0, fmt.Errorf("eqsat: malformed atomic name %q", s)
	}
	return strconv.Atoi(s[1:])
}

// CollectAtomics gathers every node with a non-negative atomic id reachable
// from root, so extraction can map saturated Var references back onto the
// original tree's shared atomic nodes.
func CollectAtomics(root ir.Expression) map[int]ir.Expression {
	out := map[int]ir.Expression{}
	for _, n := range ir.Postorder(root) {
		if n.AtomicID() >= 0 {
			if _, isTemporal := n.(*ir.TemporalOperator); !isTemporal {
				if _, exists := out[n.AtomicID()]; !exists {
					out[n.AtomicID()] = n
				}
			}
		}
	}
	return out
}
